package admin

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSortedListings(t *testing.T) {
	users := map[string]*User{
		"c@y.com": {Email: "c@y.com"},
		"a@x.com": {Email: "a@x.com"},
		"b@x.com": {Email: "b@x.com"},
	}
	emails := []string{}
	for _, u := range SortedUsers(users) {
		emails = append(emails, u.Email)
	}
	require.Equal(t, []string{"a@x.com", "b@x.com", "c@y.com"}, emails)

	libraries := map[string]Library{
		"1": {Id: "1", Name: "Zeta", Owner: "a@x.com"},
		"2": {Id: "2", Name: "Beta", Owner: "b@x.com"},
		"3": {Id: "3", Name: "Alpha", Owner: "b@x.com"},
	}
	require.Equal(t, []string{"Zeta", "Alpha", "Beta"}, libraryNames(SortedLibraries(libraries)))

	links := map[string]*Link{
		"1": {Id: "1", Name: "b.txt", Owner: "z@x.com"},
		"2": {Id: "2", Name: "a.txt", Owner: "z@x.com"},
		"3": {Id: "3", Name: "c.txt", Owner: "a@x.com"},
	}
	require.Equal(t, []string{"c.txt", "a.txt", "b.txt"}, linkNames(SortedLinks(links)))

	groups := map[string]Group{
		"1": {Id: "1", Name: "Team"},
		"2": {Id: "2", Name: "Alpha"},
		"3": {Id: "3", Name: "Team"},
	}
	sorted := SortedGroups(groups)
	require.Equal(t, "Alpha", sorted[0].Name)
	require.Equal(t, "1", sorted[1].Id)
	require.Equal(t, "3", sorted[2].Id)
}

func TestFindGroup(t *testing.T) {
	groups := map[string]Group{
		"3": {Id: "3", Name: "Team"},
		"4": {Id: "4", Name: "3"},
	}

	g, ok := FindGroup(groups, "3")
	require.True(t, ok)
	require.Equal(t, "Team", g.Name)

	g, ok = FindGroup(groups, "Team")
	require.True(t, ok)
	require.Equal(t, "3", g.Id)

	_, ok = FindGroup(groups, "Nobody")
	require.False(t, ok)
}

func TestInferLinkType(t *testing.T) {
	require.Equal(t, LinkDirectory, InferLinkType("/projects"))
	require.Equal(t, LinkDirectory, InferLinkType("/"))
	require.Equal(t, LinkFile, InferLinkType("projects/"))
	require.Equal(t, LinkFile, InferLinkType(""))
	require.Equal(t, "d", LinkDirectory.code())
	require.Equal(t, "f", LinkFile.code())
}

func TestSuggest(t *testing.T) {
	candidates := []string{"alice@example.com", "alicia@example.com", "bob@example.org"}

	suggestions := Suggest("alice@exmaple.com", candidates, 2)
	require.NotEmpty(t, suggestions)
	require.Equal(t, "alice@example.com", suggestions[0])
	require.NotContains(t, suggestions, "bob@example.org")

	require.Empty(t, Suggest("zzz", candidates, 0))
}
