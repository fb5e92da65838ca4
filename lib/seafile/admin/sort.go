package admin

import (
	"cmp"
	"slices"
	"strings"

	"github.com/antzucaro/matchr"
)

func sortedValues[K comparable, V any](m map[K]V, compare func(a, b V) int) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	slices.SortFunc(out, compare)
	return out
}

// SortedUsers lists users by e-mail.
func SortedUsers(users map[string]*User) []*User {
	return sortedValues(users, func(a, b *User) int {
		return cmp.Compare(a.Email, b.Email)
	})
}

// SortedLibraries lists libraries by (owner, name).
func SortedLibraries(libraries map[string]Library) []Library {
	return sortedValues(libraries, func(a, b Library) int {
		return cmp.Or(
			cmp.Compare(a.Owner, b.Owner),
			cmp.Compare(a.Name, b.Name),
			cmp.Compare(a.Id, b.Id),
		)
	})
}

// SortedLinks lists links by (owner, name).
func SortedLinks(links map[string]*Link) []*Link {
	return sortedValues(links, func(a, b *Link) int {
		return cmp.Or(
			cmp.Compare(a.Owner, b.Owner),
			cmp.Compare(a.Name, b.Name),
			cmp.Compare(a.Id, b.Id),
		)
	})
}

// SortedGroups lists groups by name.
func SortedGroups(groups map[string]Group) []Group {
	return sortedValues(groups, func(a, b Group) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Id, b.Id))
	})
}

// FindGroup resolves a group by id first and by name second.
func FindGroup(groups map[string]Group, idOrName string) (Group, bool) {
	if g, ok := groups[idOrName]; ok {
		return g, true
	}
	for _, g := range SortedGroups(groups) {
		if g.Name == idOrName {
			return g, true
		}
	}
	return Group{}, false
}

const minSuggestionSimilarity = 0.8

// Suggest returns the candidates most similar to target, best match first,
// used to point out typos in e-mails and names.
func Suggest(target string, candidates []string, limit int) []string {
	type scored struct {
		value      string
		similarity float64
	}

	target = strings.ToLower(target)
	matches := []scored{}
	for _, c := range candidates {
		similarity := matchr.JaroWinkler(target, strings.ToLower(c), false)
		if similarity < minSuggestionSimilarity {
			continue
		}
		matches = append(matches, scored{value: c, similarity: similarity})
	}
	slices.SortFunc(matches, func(a, b scored) int {
		return cmp.Or(cmp.Compare(b.similarity, a.similarity), cmp.Compare(a.value, b.value))
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.value
	}
	return out
}
