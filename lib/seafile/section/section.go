// Package section locates named blocks of tabular data inside admin pages
// and yields their rows.
//
// A section is found either by a heading whose text equals the section name
// (the table is the first following sibling table) or, failing that, by an
// element whose id equals the section name (the table is the first table
// nested in it). A page without the section yields no rows.
package section

import (
	"iter"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const headings = "h1, h2, h3, h4, h5, h6"

// Cell is a single data cell, Text is the trimmed text content and Sel
// keeps the markup around so callers can dig out anchors and attributes.
type Cell struct {
	Text string
	Sel  *goquery.Selection
}

type Row []Cell

// Texts returns the plain text of every cell in the row.
func (r Row) Texts() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.Text
	}
	return out
}

func byHeading(root *goquery.Selection, name string) *goquery.Selection {
	var table *goquery.Selection
	root.Find(headings).EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if strings.TrimSpace(h.Text()) != name {
			return true
		}
		next := h.NextAllFiltered("table").First()
		if next.Length() == 0 {
			return true
		}
		table = next
		return false
	})
	return table
}

func byContainerId(root *goquery.Selection, name string) *goquery.Selection {
	container := root.Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.AttrOr("id", "") == name
	}).First()
	if container.Length() == 0 {
		return nil
	}
	table := container.Find("table").First()
	if table.Length() == 0 {
		return nil
	}
	return table
}

// Locate resolves the table backing the named section, it returns nil when
// the section is absent.
func Locate(root *goquery.Selection, name string) *goquery.Selection {
	if table := byHeading(root, name); table != nil {
		return table
	}
	return byContainerId(root, name)
}

// ownRows returns the rows of table, excluding rows that belong to tables
// nested inside of it.
func ownRows(table *goquery.Selection) *goquery.Selection {
	return table.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return tr.Closest("table").IsSelection(table)
	})
}

// Rows yields the data rows of the named section in document order, each
// cell carries its trimmed text and its markup. Rows without any data cell
// (header rows) are skipped.
func Rows(root *goquery.Selection, name string) iter.Seq[Row] {
	return func(yield func(Row) bool) {
		table := Locate(root, name)
		if table == nil {
			return
		}
		trs := ownRows(table)
		for i := range trs.Length() {
			tds := trs.Eq(i).ChildrenFiltered("td")
			if tds.Length() == 0 {
				continue
			}
			row := make(Row, tds.Length())
			for j := range tds.Length() {
				td := tds.Eq(j)
				row[j] = Cell{
					Text: strings.TrimSpace(td.Text()),
					Sel:  td,
				}
			}
			if !yield(row) {
				return
			}
		}
	}
}

// TextRows yields the rows of the named section as flattened text, embedded
// line breaks are replaced by spaces.
func TextRows(root *goquery.Selection, name string) iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		for row := range Rows(root, name) {
			texts := make([]string, len(row))
			for i, c := range row {
				text := strings.ReplaceAll(c.Sel.Text(), "\r", "")
				texts[i] = strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
			}
			if !yield(texts) {
				return
			}
		}
	}
}
