package commands

import (
	"context"
	"fmt"
	"seafadmin/lib/quota"

	"github.com/spf13/cobra"
)

func newQuotaCmd(opts *rootOptions) *cobra.Command {
	quotaCmd := &cobra.Command{
		Use:   "quota",
		Short: "Changes user quotas.",
	}

	setCmd := &cobra.Command{
		Use:   "set <email> <mb>",
		Short: "Sets the quota of a single user in megabytes.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mb, err := quota.ParseQuota(args[1])
			if err != nil {
				return err
			}
			return opts.withSession(cmd, func(ctx context.Context, s *session) error {
				all, err := s.scraper.Users(ctx)
				if err != nil {
					return err
				}
				users, err := resolveUsers(all, args[:1])
				if err != nil {
					return err
				}
				return s.scraper.SetQuota(ctx, users[0].Email, mb)
			})
		},
	}

	domainCmd := &cobra.Command{
		Use:   "domain <normal|reverse|min> <domain[,domain...]> <mb>",
		Short: "Sets the quota of every user selected by e-mail domain.",
		Long: `Sets the quota of every user selected by e-mail domain.

normal   users in one of the domains
reverse  users in none of the domains
min      users in one of the domains whose quota is below <mb>`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := quota.ParseRequest(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			return opts.withSession(cmd, func(ctx context.Context, s *session) error {
				users, err := s.scraper.Users(ctx)
				if err != nil {
					return err
				}
				selected := quota.Select(users, req)
				if len(selected) == 0 {
					fmt.Fprintln(s.out, "No users selected.")
					return nil
				}

				usersTable(s.out, selected).Render()
				ok, err := s.confirm(fmt.Sprintf("Set the quota of %d user(s) to %d MB?", len(selected), req.Quota))
				if err != nil || !ok {
					return err
				}
				applied, err := s.scraper.SetQuotas(ctx, selected, req.Quota)
				fmt.Fprintf(s.out, "Updated %d of %d user(s).\n", applied, len(selected))
				return err
			})
		},
	}

	quotaCmd.AddCommand(setCmd, domainCmd)
	return quotaCmd
}
