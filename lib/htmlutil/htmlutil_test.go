package htmlutil

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestNormalizeText(t *testing.T) {
	testCases := []struct {
		in       string
		expected string
	}{
		{in: "  hello  ", expected: "hello"},
		{in: "line one\nline two", expected: "line one line two"},
		{in: "\t spaced \n\n   out\t", expected: "spaced out"},
		{in: "", expected: ""},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, NormalizeText(test.in))
	}
}

func TestLastPathSegment(t *testing.T) {
	testCases := []struct {
		href     string
		expected string
	}{
		{href: "/sys/publink/remove/abc123/", expected: "abc123"},
		{href: "/sys/groupadmin/7", expected: "7"},
		{href: "https://files.example.com/group/12/?tab=1", expected: "12"},
		{href: "/", expected: ""},
		{href: "", expected: ""},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, LastPathSegment(test.href), test.href)
	}
}

func TestGetAnchors(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
		<div>
			<a href="/group/1/"> Engineering
				team </a>
			<a href="/group/2/">Sales<br>EMEA</a>
			<button data-url="/sys/publink/remove/x1/">Remove</button>
			<a href="%zz">Broken</a>
		</div>`))
	require.NoError(t, err)

	anchors := GetAnchors(context.Background(), doc.Find("a, button"))
	require.Equal(t, []Anchor{
		{Name: "Engineering team", Href: "/group/1/"},
		{Name: "Sales EMEA", Href: "/group/2/"},
		{Name: "Remove", Href: "/sys/publink/remove/x1/"},
	}, anchors)

	require.Empty(t, GetAnchors(context.Background(), doc.Find("table")))
}

func TestActionUrl(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
		<a id="a" href="#" data-url="/sys/publink/remove/x1/">Remove</a>
		<a id="b" href="/sys/seafadmin/repo/r1/">Open</a>`))
	require.NoError(t, err)

	require.Equal(t, "/sys/publink/remove/x1/", ActionUrl(doc.Find("#a")))
	require.Equal(t, "/sys/seafadmin/repo/r1/", ActionUrl(doc.Find("#b")))
}
