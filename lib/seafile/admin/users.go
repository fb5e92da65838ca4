package admin

import (
	"context"
	"fmt"
	"seafadmin/lib/htmlutil"
	"seafadmin/lib/seafile/section"
	"strings"
)

// Domain is everything after the first "@" of an e-mail.
func Domain(email string) string {
	_, domain, _ := strings.Cut(email, "@")
	return domain
}

// cellAnchorText is the text of the first anchor in the cell, or the cell
// text if it has none.
func cellAnchorText(ctx context.Context, c section.Cell) string {
	anchors := htmlutil.GetAnchors(ctx, c.Sel.Find("a"))
	if len(anchors) == 0 {
		return htmlutil.NormalizeText(c.Text)
	}
	return anchors[0].Name
}

// cellActionId is the trailing path segment of the first action url found
// in the cell, javascript buttons (data-url) win over plain anchors.
func cellActionId(ctx context.Context, c section.Cell) string {
	for _, selector := range []string{"[data-url]", "a[href]"} {
		anchors := htmlutil.GetAnchors(ctx, c.Sel.Find(selector))
		if len(anchors) > 0 {
			return htmlutil.LastPathSegment(anchors[0].Href)
		}
	}
	return ""
}

// beforeSlash keeps the absolute part of "<date> / <relative time>" cells.
func beforeSlash(text string) string {
	head, _, _ := strings.Cut(text, "/")
	return strings.TrimSpace(head)
}

// columns: email | status | used / quota | created / last login | operations
func (s Scraper) userFromRow(ctx context.Context, row section.Row) (*User, error) {
	if len(row) < 4 {
		return nil, fmt.Errorf("expected at least 4 cells, got %d", len(row))
	}
	email := cellAnchorText(ctx, row[0])
	if email == "" {
		return nil, fmt.Errorf("empty e-mail cell")
	}

	used, quota, err := ParseUsage(row[2].Text)
	if err != nil {
		s.tel.ReportWarning(report_users_build, fmt.Errorf("parse usage: %w", err), email)
	}

	user := &User{
		Email:     email,
		Created:   beforeSlash(row[3].Text),
		UsedSpace: used,
		Quota:     quota,
	}
	if len(row) > 4 {
		user.Id = cellActionId(ctx, row[4])
	}
	return user, nil
}

// Users builds the user mapping keyed by e-mail.
func (s Scraper) Users(ctx context.Context) (map[string]*User, error) {
	ctx, span := tracer.Start(ctx, "scraper:Users")
	defer span.End()

	doc, err := s.document(ctx, s.listing(usersPath))
	if err != nil {
		s.tel.ReportBroken(report_users_build, err)
		return nil, err
	}

	users := map[string]*User{}
	for row := range section.Rows(doc.Selection, listingSection) {
		user, err := s.userFromRow(ctx, row)
		if err != nil {
			s.tel.ReportWarning(report_users_build, err, row.Texts())
			continue
		}
		users[user.Email] = user
	}
	s.tel.ReportCount(report_users_build, int64(len(users)))
	return users, nil
}
