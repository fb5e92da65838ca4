package admin

import (
	"context"
	"fmt"
	"seafadmin/lib/htmlutil"
	"seafadmin/lib/seafile/section"
	"slices"

	"github.com/PuerkitoBio/goquery"
)

// columns: name (links to the group) | owner | created | operations
func groupFromRow(ctx context.Context, row section.Row) (Group, error) {
	if len(row) < 3 {
		return Group{}, fmt.Errorf("expected at least 3 cells, got %d", len(row))
	}
	anchors := htmlutil.GetAnchors(ctx, row[0].Sel.Find("a[href]"))
	if len(anchors) == 0 {
		return Group{}, fmt.Errorf("no anchor in name cell")
	}
	id := htmlutil.LastPathSegment(anchors[0].Href)
	if id == "" {
		return Group{}, fmt.Errorf("no group id in name anchor")
	}
	return Group{
		Id:      id,
		Name:    anchors[0].Name,
		Owner:   htmlutil.NormalizeText(row[1].Text),
		Created: htmlutil.NormalizeText(row[2].Text),
	}, nil
}

// members fills in the member list and description from the group's
// members page.
func (s Scraper) members(ctx context.Context, group *Group) error {
	doc, err := s.document(ctx, groupMembersPath(group.Id))
	if err != nil {
		return err
	}

	members := []string{}
	doc.Find(groupMembersSelector).Each(func(_ int, li *goquery.Selection) {
		text := htmlutil.NormalizeText(li.Text())
		if text != "" {
			members = append(members, text)
		}
	})
	slices.Sort(members)

	group.Members = members
	group.Description = htmlutil.NormalizeText(doc.Find(groupDescSelector).First().Text())
	return nil
}

// Groups builds the group mapping keyed by group id, it fetches the members
// page of every group.
func (s Scraper) Groups(ctx context.Context) (map[string]Group, error) {
	ctx, span := tracer.Start(ctx, "scraper:Groups")
	defer span.End()

	doc, err := s.document(ctx, s.listing(groupsPath))
	if err != nil {
		s.tel.ReportBroken(report_groups_build, err)
		return nil, err
	}

	groups := map[string]Group{}
	for row := range section.Rows(doc.Selection, listingSection) {
		group, err := groupFromRow(ctx, row)
		if err != nil {
			s.tel.ReportWarning(report_groups_build, err, row.Texts())
			continue
		}
		err = s.members(ctx, &group)
		if err != nil {
			s.tel.ReportBroken(report_groups_members, err, group.Id)
			return nil, err
		}
		groups[group.Id] = group
	}
	s.tel.ReportCount(report_groups_build, int64(len(groups)))
	return groups, nil
}
