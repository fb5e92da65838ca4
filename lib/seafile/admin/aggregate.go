package admin

import (
	"cmp"
	"context"
	"fmt"
	"iter"
	"seafadmin/lib/seafile/section"
	"slices"
)

// OwnedLibraries returns the libraries owned by email sorted by name.
func OwnedLibraries(email string, libraries map[string]Library) []Library {
	owned := []Library{}
	for _, l := range libraries {
		if l.Owner == email {
			owned = append(owned, l)
		}
	}
	slices.SortFunc(owned, func(a, b Library) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Id, b.Id))
	})
	return owned
}

// Memberships returns the groups email belongs to (as member or owner)
// sorted by name.
func Memberships(email string, groups map[string]Group) []Membership {
	memberships := []Membership{}
	for _, g := range groups {
		owner := g.Owner == email
		if !owner && !g.HasMember(email) {
			continue
		}
		memberships = append(memberships, Membership{Group: g, Owner: owner})
	}
	slices.SortFunc(memberships, func(a, b Membership) int {
		return cmp.Or(cmp.Compare(a.Group.Name, b.Group.Name), cmp.Compare(a.Group.Id, b.Group.Id))
	})
	return memberships
}

// OwnedLinks returns the links owned by email sorted by name.
func OwnedLinks(email string, links map[string]*Link) []*Link {
	owned := []*Link{}
	for _, l := range links {
		if l.Owner == email {
			owned = append(owned, l)
		}
	}
	slices.SortFunc(owned, func(a, b *Link) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Id, b.Id))
	})
	return owned
}

// columns: library name | shared by | description
func sharesFromRows(rows iter.Seq[[]string], shareType ShareType, group string) []Share {
	shares := []Share{}
	for cells := range rows {
		if len(cells) < 2 {
			continue
		}
		share := Share{
			Name:  cells[0],
			Owner: cells[1],
			Type:  shareType,
			Group: group,
		}
		if len(cells) > 2 {
			share.Description = cells[2]
		}
		shares = append(shares, share)
	}
	return shares
}

// UserShares returns the libraries shared directly with email.
func (s Scraper) UserShares(ctx context.Context, email string) ([]Share, error) {
	doc, err := s.document(ctx, userInfoPath(email))
	if err != nil {
		s.tel.ReportBroken(report_collect_shares, err, email)
		return nil, err
	}
	return sharesFromRows(section.TextRows(doc.Selection, userSharesSection), ShareUser, ""), nil
}

// GroupShares returns the libraries shared with the group.
func (s Scraper) GroupShares(ctx context.Context, group Group) ([]Share, error) {
	doc, err := s.document(ctx, groupInfoPath(group.Id))
	if err != nil {
		s.tel.ReportBroken(report_collect_shares, err, group.Id)
		return nil, err
	}
	return sharesFromRows(section.TextRows(doc.Selection, groupSharesSection), ShareGroup, group.Name), nil
}

// Shares returns the direct shares of email followed by the shares of each
// of its groups, in the order the memberships are given. A library reaching
// the user through several groups shows up once per group.
func (s Scraper) Shares(ctx context.Context, email string, memberships []Membership) ([]Share, error) {
	ctx, span := tracer.Start(ctx, "scraper:Shares")
	defer span.End()

	shares, err := s.UserShares(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("shares of %s: %w", email, err)
	}
	for _, m := range memberships {
		groupShares, err := s.GroupShares(ctx, m.Group)
		if err != nil {
			return nil, fmt.Errorf("shares of group %s: %w", m.Group.Name, err)
		}
		shares = append(shares, groupShares...)
	}
	return shares, nil
}

// CollectInfo fills in the derived views of user. The user is only modified
// when every fetch succeeded, running it again with the same entities
// yields the same result.
func (s Scraper) CollectInfo(ctx context.Context, user *User, e Entities) error {
	ctx, span := tracer.Start(ctx, "scraper:CollectInfo")
	defer span.End()

	memberships := Memberships(user.Email, e.Groups)
	shares, err := s.Shares(ctx, user.Email, memberships)
	if err != nil {
		return err
	}

	user.Libraries = OwnedLibraries(user.Email, e.Libraries)
	user.Groups = memberships
	user.Links = OwnedLinks(user.Email, e.Links)
	user.Shares = shares
	return nil
}

// GroupInfo is the group side of the aggregation.
type GroupInfo struct {
	Group Group
	// nil when the owner has no user record
	Owner *User
	// members with a user record, sorted by e-mail
	Members []*User
	// libraries owned by the group owner
	Libraries []Library
	// libraries shared with the group
	Shares []Share
}

func (s Scraper) CollectGroupInfo(ctx context.Context, group Group, e Entities) (GroupInfo, error) {
	ctx, span := tracer.Start(ctx, "scraper:CollectGroupInfo")
	defer span.End()

	shares, err := s.GroupShares(ctx, group)
	if err != nil {
		return GroupInfo{}, err
	}

	members := []*User{}
	for _, email := range group.Members {
		if u, ok := e.Users[email]; ok {
			members = append(members, u)
		}
	}
	slices.SortFunc(members, func(a, b *User) int {
		return cmp.Compare(a.Email, b.Email)
	})

	return GroupInfo{
		Group:     group,
		Owner:     e.Users[group.Owner],
		Members:   members,
		Libraries: OwnedLibraries(group.Owner, e.Libraries),
		Shares:    shares,
	}, nil
}
