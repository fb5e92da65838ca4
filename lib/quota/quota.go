// Package quota selects the users affected by a quota change scoped to a
// set of e-mail domains.
package quota

import (
	"errors"
	"fmt"
	"seafadmin/lib/seafile/admin"
	"slices"
	"strconv"
	"strings"
)

var (
	ErrInvalidQuota = errors.New("quota must be an integer number of megabytes")
	ErrUnknownMode  = errors.New("unknown quota mode")
	ErrNoDomains    = errors.New("no domains given")
)

type Mode string

const (
	// users whose domain is in the set
	ModeNormal Mode = "normal"
	// users whose domain is not in the set
	ModeReverse Mode = "reverse"
	// users whose domain is in the set and whose quota is below the requested one
	ModeMin Mode = "min"
)

var modes = []Mode{ModeNormal, ModeReverse, ModeMin}

func ParseMode(text string) (Mode, error) {
	mode := Mode(strings.ToLower(strings.TrimSpace(text)))
	if !slices.Contains(modes, mode) {
		return "", fmt.Errorf("%w %q, expected one of %v", ErrUnknownMode, text, modes)
	}
	return mode, nil
}

// ParseQuota parses a quota in megabytes.
func ParseQuota(text string) (int64, error) {
	quota, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil || quota < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuota, text)
	}
	return quota, nil
}

// ParseDomains splits a comma separated domain list, empty entries are
// dropped and a leading "@" is tolerated.
func ParseDomains(text string) []string {
	domains := []string{}
	for _, d := range strings.Split(text, ",") {
		d = strings.TrimPrefix(strings.TrimSpace(d), "@")
		if d == "" || slices.Contains(domains, d) {
			continue
		}
		domains = append(domains, d)
	}
	return domains
}

type Request struct {
	Mode    Mode
	Domains []string
	// megabytes
	Quota int64
}

// ParseRequest validates every part of a quota change before anything is
// selected.
func ParseRequest(mode, domains, quota string) (Request, error) {
	q, err := ParseQuota(quota)
	if err != nil {
		return Request{}, err
	}
	m, err := ParseMode(mode)
	if err != nil {
		return Request{}, err
	}
	d := ParseDomains(domains)
	if len(d) == 0 {
		return Request{}, ErrNoDomains
	}
	return Request{Mode: m, Domains: d, Quota: q}, nil
}

func (r Request) inDomains(u *admin.User) bool {
	return slices.Contains(r.Domains, u.Domain())
}

// Selects reports whether the user is affected by the request.
func (r Request) Selects(u *admin.User) bool {
	switch r.Mode {
	case ModeNormal:
		return r.inDomains(u)
	case ModeReverse:
		return !r.inDomains(u)
	case ModeMin:
		// an unlimited quota is never below the requested one
		return r.inDomains(u) && u.Quota.Known() && float64(u.Quota) < float64(r.Quota)
	}
	return false
}

// Select returns the affected users sorted by e-mail, it has no side
// effects.
func Select(users map[string]*admin.User, r Request) []*admin.User {
	selected := []*admin.User{}
	for _, u := range admin.SortedUsers(users) {
		if r.Selects(u) {
			selected = append(selected, u)
		}
	}
	return selected
}
