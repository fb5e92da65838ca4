package commands

import (
	"context"
	"fmt"
	"maps"
	"seafadmin/lib/seafile/admin"
	"slices"

	"github.com/spf13/cobra"
)

// unknownError names the closest known candidates.
func unknownError(kind, name string, candidates []string) error {
	suggestions := admin.Suggest(name, candidates, 3)
	if len(suggestions) == 0 {
		return fmt.Errorf("unknown %s %q", kind, name)
	}
	return fmt.Errorf("unknown %s %q, did you mean %v?", kind, name, suggestions)
}

func resolveUsers(users map[string]*admin.User, emails []string) ([]*admin.User, error) {
	resolved := []*admin.User{}
	for _, email := range emails {
		u, ok := users[email]
		if !ok {
			return nil, unknownError("user", email, slices.Collect(maps.Keys(users)))
		}
		resolved = append(resolved, u)
	}
	return resolved, nil
}

func newUsersCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "Lists every user sorted by e-mail.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, func(ctx context.Context, s *session) error {
				users, err := s.scraper.Users(ctx)
				if err != nil {
					return err
				}
				usersTable(s.out, admin.SortedUsers(users)).Render()
				return nil
			})
		},
	}
}

func newUserCmd(opts *rootOptions) *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Inspects and deletes single users.",
	}

	infoCmd := &cobra.Command{
		Use:   "info <email>",
		Short: "Shows the libraries, groups, links and shares of a user.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, func(ctx context.Context, s *session) error {
				e, err := s.scraper.All(ctx)
				if err != nil {
					return err
				}
				users, err := resolveUsers(e.Users, args)
				if err != nil {
					return err
				}
				user := users[0]
				err = s.scraper.CollectInfo(ctx, user, e)
				if err != nil {
					return err
				}

				usersTable(s.out, []*admin.User{user}).Render()
				printTitle(s.out, "Owned libraries")
				librariesTable(s.out, user.Libraries).Render()
				printTitle(s.out, "Groups")
				membershipsTable(s.out, user.Groups).Render()
				printTitle(s.out, "Public links")
				linksTable(s.out, user.Links, false).Render()
				printTitle(s.out, "Shared with the user")
				sharesTable(s.out, user.Shares).Render()
				return nil
			})
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <email>...",
		Short: "Deletes users along with their libraries.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, func(ctx context.Context, s *session) error {
				all, err := s.scraper.Users(ctx)
				if err != nil {
					return err
				}
				users, err := resolveUsers(all, args)
				if err != nil {
					return err
				}

				usersTable(s.out, users).Render()
				ok, err := s.confirm(fmt.Sprintf("Delete %d user(s)?", len(users)))
				if err != nil || !ok {
					return err
				}
				for _, u := range users {
					err := s.scraper.DeleteUser(ctx, u)
					if err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	userCmd.AddCommand(infoCmd, deleteCmd)
	return userCmd
}
