package admin

import (
	"context"
	"fmt"
	"seafadmin/lib/htmlutil"
	"seafadmin/lib/seafile/section"
	"strconv"
	"strings"
)

// the displayed creation time is relative ("3 days ago"), the exact one is
// kept in an attribute of the time marker
func exactTime(c section.Cell) string {
	if v, ok := c.Sel.Find("time[datetime]").First().Attr("datetime"); ok {
		return strings.TrimSpace(v)
	}
	if v, ok := c.Sel.Find("[title]").First().Attr("title"); ok {
		return strings.TrimSpace(v)
	}
	return c.Text
}

func (s Scraper) publicUrl(t LinkType, id string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.origin, "/"), t.code(), id)
}

// columns: name | owner | created | visits | operations
func (s Scraper) linkFromRow(ctx context.Context, row section.Row) (*Link, error) {
	if len(row) < 5 {
		return nil, fmt.Errorf("expected at least 5 cells, got %d", len(row))
	}
	id := cellActionId(ctx, row[4])
	if id == "" {
		return nil, fmt.Errorf("no link id in operations cell")
	}

	name := htmlutil.NormalizeText(row[0].Text)
	linkType := InferLinkType(name)

	count, err := strconv.Atoi(row[3].Text)
	if err != nil {
		s.tel.ReportWarning(report_links_build, fmt.Errorf("parse visit count: %w", err), id)
		count = 0
	}

	return &Link{
		Id:      id,
		Name:    name,
		Owner:   htmlutil.NormalizeText(row[1].Text),
		Created: exactTime(row[2]),
		Count:   count,
		Type:    linkType,
		Url:     s.publicUrl(linkType, id),
	}, nil
}

// Links builds the public link mapping keyed by link id.
func (s Scraper) Links(ctx context.Context) (map[string]*Link, error) {
	ctx, span := tracer.Start(ctx, "scraper:Links")
	defer span.End()

	doc, err := s.document(ctx, s.listing(linksPath))
	if err != nil {
		s.tel.ReportBroken(report_links_build, err)
		return nil, err
	}

	links := map[string]*Link{}
	for row := range section.Rows(doc.Selection, listingSection) {
		link, err := s.linkFromRow(ctx, row)
		if err != nil {
			s.tel.ReportWarning(report_links_build, err, row.Texts())
			continue
		}
		links[link.Id] = link
	}
	s.tel.ReportCount(report_links_build, int64(len(links)))
	return links, nil
}
