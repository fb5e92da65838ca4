package htmlutil

import (
	"context"
	"net/url"
	"path"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"
)

var tracer = otel.Tracer("seafadmin.lib.htmlutil")

// GetText concatenates the text below node, line breaks count as
// whitespace so that "a<br>b" does not collapse into "ab".
func GetText(node *html.Node) string {
	var text strings.Builder
	collectText(node, &text)
	return text.String()
}

func collectText(node *html.Node, text *strings.Builder) {
	if node == nil {
		return
	}
	switch {
	case node.Type == html.TextNode:
		text.WriteString(node.Data)
		return
	case node.Type == html.ElementNode && node.Data == "br":
		text.WriteString(" ")
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, text)
	}
}

type Anchor struct {
	Name string
	Href string
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) || unicode.IsSpace(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// NormalizeText drops non-printable runes, trims the string and collapses
// runs of whitespace (line breaks included) into a single space.
func NormalizeText(s string) string {
	s = removeNonPrintable(s)
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\n", " ")
	return innerWhitespace.ReplaceAllString(s, " ")
}

// ActionUrl returns the url an element points to, admin pages keep it in
// data-url for javascript driven buttons and in href for plain anchors.
func ActionUrl(sel *goquery.Selection) string {
	if v, ok := sel.Attr("data-url"); ok && v != "" {
		return v
	}
	return sel.AttrOr("href", "")
}

// LastPathSegment returns the trailing segment of the path of a (possibly
// relative) url, ignoring a trailing slash.
// ex. "/sys/publink/remove/abc123/" -> "abc123"
func LastPathSegment(href string) string {
	link, err := url.Parse(href)
	if err != nil {
		return ""
	}
	p := strings.TrimRight(link.Path, "/")
	if p == "" {
		return ""
	}
	return path.Base(p)
}

// GetAnchors returns the normalized text and action url (see ActionUrl) of
// every element in sel, elements whose url does not parse are skipped.
func GetAnchors(ctx context.Context, sel *goquery.Selection) []Anchor {
	_, span := tracer.Start(ctx, "GetAnchors")
	defer span.End()

	anchors := []Anchor{}
	sel.Each(func(_ int, el *goquery.Selection) {
		link, err := url.Parse(ActionUrl(el))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "got error while parsing url")
			return
		}

		name := NormalizeText(GetText(el.Get(0)))
		linkStr := link.String()
		anchors = append(anchors, Anchor{
			Name: name,
			Href: linkStr,
		})
		span.AddEvent("anchor", trace.WithAttributes(
			attribute.String("name", name),
			attribute.String("url", linkStr),
		))
	})

	return anchors
}
