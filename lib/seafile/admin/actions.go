package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
)

var ErrMissingId = errors.New("entity has no id")

func (s Scraper) post(ctx context.Context, path string, form map[string]string) error {
	ctx, span := tracer.Start(ctx, "scraper:post")
	defer span.End()

	if form == nil {
		form = map[string]string{}
	}
	_, err := s.fetch.Fetch(ctx, path, form)
	if err != nil {
		span.RecordError(err)
		s.tel.ReportBroken(report_scraper_mutation, err, path)
		return fmt.Errorf("post %s: %w", path, err)
	}
	return nil
}

func (s Scraper) DeleteUser(ctx context.Context, user *User) error {
	if user.Id == "" {
		return fmt.Errorf("delete user %s: %w", user.Email, ErrMissingId)
	}
	err := s.post(ctx, fmt.Sprintf("/sys/useradmin/remove/%s/", url.PathEscape(user.Id)), nil)
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "deleted user", "email", user.Email)
	return nil
}

// SetQuota sets the quota of the user in megabytes.
func (s Scraper) SetQuota(ctx context.Context, email string, quota int64) error {
	err := s.post(ctx, fmt.Sprintf("/sys/useradmin/%s/set_quota/", url.PathEscape(email)), map[string]string{
		"email":       email,
		"space_quota": strconv.FormatInt(quota, 10),
	})
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "set quota", "email", email, "quota_mb", quota)
	return nil
}

func (s Scraper) DeleteLibrary(ctx context.Context, library Library) error {
	if library.Id == "" {
		return fmt.Errorf("delete library %s: %w", library.Name, ErrMissingId)
	}
	err := s.post(ctx, fmt.Sprintf("/sys/seafadmin/repo/%s/remove/", url.PathEscape(library.Id)), nil)
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "deleted library", "name", library.Name, "owner", library.Owner)
	return nil
}

func (s Scraper) RemoveLink(ctx context.Context, link *Link) error {
	if link.Id == "" {
		return fmt.Errorf("remove link %s: %w", link.Name, ErrMissingId)
	}
	err := s.post(ctx, fmt.Sprintf("/sys/publink/remove/%s/", url.PathEscape(link.Id)), nil)
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "removed link", "name", link.Name, "owner", link.Owner, "url", link.Url)
	return nil
}

func (s Scraper) DeleteGroup(ctx context.Context, group Group) error {
	if group.Id == "" {
		return fmt.Errorf("delete group %s: %w", group.Name, ErrMissingId)
	}
	err := s.post(ctx, fmt.Sprintf("/sys/groupadmin/%s/remove/", url.PathEscape(group.Id)), nil)
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "deleted group", "name", group.Name)
	return nil
}

// SetQuotas applies the quota to every user in order, it stops at the first
// failure and returns how many users were updated before it. Updates that
// went through are not rolled back.
func (s Scraper) SetQuotas(ctx context.Context, users []*User, quota int64) (int, error) {
	for i, u := range users {
		err := s.SetQuota(ctx, u.Email, quota)
		if err != nil {
			return i, err
		}
	}
	return len(users), nil
}

// RemoveLinks removes every link in order, it stops at the first failure.
func (s Scraper) RemoveLinks(ctx context.Context, links []*Link) (int, error) {
	for i, l := range links {
		err := s.RemoveLink(ctx, l)
		if err != nil {
			return i, err
		}
	}
	return len(links), nil
}
