package admin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// implemented by fetch errors caused by a non-2xx response
type statusCoder interface {
	HTTPStatus() int
}

// without the trailing slash the public page answers with a redirect first
func withTrailingSlash(u string) string {
	if strings.HasSuffix(u, "/") {
		return u
	}
	return u + "/"
}

// Validate probes the public url of the link. A link is invalid when the
// page answers with an http error or renders an error panel. The verdict is
// stored on the link and later calls return it without probing again.
//
// Network failures are returned as errors and leave the link unknown.
func (s Scraper) Validate(ctx context.Context, link *Link) (bool, error) {
	if link.Validity != ValidityUnknown {
		return link.Validity == Valid, nil
	}

	ctx, span := tracer.Start(ctx, "scraper:Validate")
	defer span.End()

	body, err := s.fetch.Fetch(ctx, withTrailingSlash(link.Url), nil)
	if err != nil {
		var status statusCoder
		if !errors.As(err, &status) {
			s.tel.ReportBroken(report_links_validate, err, link.Id)
			return false, fmt.Errorf("validate link %s: %w", link.Id, err)
		}
		s.tel.ReportDebug("link answered with an error status", link.Id, status.HTTPStatus())
		link.Validity = Invalid
		return false, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBufferString(body))
	if err != nil {
		return false, fmt.Errorf("validate link %s: parse: %w", link.Id, err)
	}
	if doc.Find(errorPanelSelector).Length() > 0 {
		link.Validity = Invalid
		return false, nil
	}
	link.Validity = Valid
	return true, nil
}

// ValidateAll validates every link one after another and partitions them,
// both halves are sorted by (owner, name). The first network failure aborts
// the whole pass, verdicts reached before it stay on the links.
func (s Scraper) ValidateAll(ctx context.Context, links map[string]*Link) (valid []*Link, invalid []*Link, err error) {
	sorted := SortedLinks(links)
	for i, link := range sorted {
		ok, err := s.Validate(ctx, link)
		if err != nil {
			return nil, nil, fmt.Errorf(
				"link validation aborted after %d of %d link(s), at %s owned by %s: %w",
				i, len(sorted), link.Id, link.Owner, err,
			)
		}
		if ok {
			valid = append(valid, link)
		} else {
			invalid = append(invalid, link)
		}
	}
	s.tel.ReportCount(report_links_validate, int64(len(invalid)))
	return valid, invalid, nil
}
