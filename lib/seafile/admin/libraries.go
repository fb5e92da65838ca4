package admin

import (
	"context"
	"fmt"
	"seafadmin/lib/htmlutil"
	"seafadmin/lib/seafile/section"
)

// columns: name (links to the library) | owner | description | operations
func libraryFromRow(ctx context.Context, row section.Row) (Library, error) {
	if len(row) < 3 {
		return Library{}, fmt.Errorf("expected at least 3 cells, got %d", len(row))
	}
	id := cellActionId(ctx, row[0])
	if id == "" {
		return Library{}, fmt.Errorf("no library id in name cell")
	}
	return Library{
		Id:          id,
		Name:        htmlutil.NormalizeText(row[0].Text),
		Owner:       cellAnchorText(ctx, row[1]),
		Description: htmlutil.NormalizeText(row[2].Text),
	}, nil
}

// Libraries builds the library mapping keyed by library id.
func (s Scraper) Libraries(ctx context.Context) (map[string]Library, error) {
	ctx, span := tracer.Start(ctx, "scraper:Libraries")
	defer span.End()

	doc, err := s.document(ctx, s.listing(librariesPath))
	if err != nil {
		s.tel.ReportBroken(report_libraries_build, err)
		return nil, err
	}

	libraries := map[string]Library{}
	for row := range section.Rows(doc.Selection, listingSection) {
		library, err := libraryFromRow(ctx, row)
		if err != nil {
			s.tel.ReportWarning(report_libraries_build, err, row.Texts())
			continue
		}
		libraries[library.Id] = library
	}
	s.tel.ReportCount(report_libraries_build, int64(len(libraries)))
	return libraries, nil
}
