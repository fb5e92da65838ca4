// Package admin builds the entity mappings of a seafile server out of its
// admin pages and performs administrative actions against it.
package admin

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"seafadmin/lib/telemetry"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("seafadmin.lib.seafile.admin")

const (
	report_users_build      = "users.build"
	report_libraries_build  = "libraries.build"
	report_links_build      = "links.build"
	report_groups_build     = "groups.build"
	report_groups_members   = "groups.members"
	report_collect_shares   = "collect.shares"
	report_links_validate   = "links.validate"
	report_scraper_mutation = "scraper.mutation"
)

// pages and sections
const (
	usersPath      = "/sys/useradmin/"
	librariesPath  = "/sys/seafadmin/"
	linksPath      = "/sys/publinkadmin/"
	groupsPath     = "/sys/groupadmin/"
	listingSection = "right-panel"

	userSharesSection    = "Shared Libraries"
	groupSharesSection   = "Libraries"
	groupMembersSelector = "#group-members li"
	groupDescSelector    = "#group-desc"

	errorPanelSelector = ".error"
)

func userInfoPath(email string) string {
	return fmt.Sprintf("/sys/userinfo/%s/", url.PathEscape(email))
}

func groupInfoPath(id string) string {
	return fmt.Sprintf("/sys/groupadmin/%s/", url.PathEscape(id))
}

func groupMembersPath(id string) string {
	return fmt.Sprintf("/group/%s/members/", url.PathEscape(id))
}

// Fetcher retrieves markup from the service, it issues a GET when form is
// nil and a POST otherwise. Non-2xx responses are errors.
type Fetcher interface {
	Fetch(ctx context.Context, pathOrUrl string, form map[string]string) (string, error)
}

type Options struct {
	// scheme and host of the service, public link urls are built on it
	Origin string
	// number of rows requested from listings, large enough to fit every
	// record on a single page
	PageSize  int
	Telemetry telemetry.API
}

const DefaultPageSize = 100000

// Scraper turns admin pages into entities, it holds no state besides its
// configuration so every call re-derives everything from the server.
type Scraper struct {
	fetch    Fetcher
	origin   string
	pageSize int
	tel      telemetry.API
}

func NewScraper(fetch Fetcher, opts Options) Scraper {
	if fetch == nil {
		panic("expected fetcher to be not nil")
	}

	tel := opts.Telemetry
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	return Scraper{
		fetch:    fetch,
		origin:   opts.Origin,
		pageSize: pageSize,
		tel:      telemetry.NewScopedAPI("seafile_admin", tel),
	}
}

func (s Scraper) listing(path string) string {
	query := url.Values{}
	query.Set("per_page", strconv.Itoa(s.pageSize))
	return path + "?" + query.Encode()
}

func (s Scraper) document(ctx context.Context, path string) (*goquery.Document, error) {
	ctx, span := tracer.Start(ctx, "scraper:document")
	defer span.End()

	body, err := s.fetch.Fetch(ctx, path, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBufferString(body))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// All builds every entity mapping, one page after another.
func (s Scraper) All(ctx context.Context) (Entities, error) {
	users, err := s.Users(ctx)
	if err != nil {
		return Entities{}, err
	}
	libraries, err := s.Libraries(ctx)
	if err != nil {
		return Entities{}, err
	}
	groups, err := s.Groups(ctx)
	if err != nil {
		return Entities{}, err
	}
	links, err := s.Links(ctx)
	if err != nil {
		return Entities{}, err
	}
	return Entities{
		Users:     users,
		Libraries: libraries,
		Groups:    groups,
		Links:     links,
	}, nil
}
