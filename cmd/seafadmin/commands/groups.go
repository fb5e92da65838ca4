package commands

import (
	"context"
	"fmt"
	"seafadmin/lib/seafile/admin"

	"github.com/spf13/cobra"
)

func resolveGroup(groups map[string]admin.Group, idOrName string) (admin.Group, error) {
	g, ok := admin.FindGroup(groups, idOrName)
	if ok {
		return g, nil
	}
	names := []string{}
	for _, g := range groups {
		names = append(names, g.Name)
	}
	return admin.Group{}, unknownError("group", idOrName, names)
}

func newGroupsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "Lists every group sorted by name.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, func(ctx context.Context, s *session) error {
				groups, err := s.scraper.Groups(ctx)
				if err != nil {
					return err
				}
				groupsTable(s.out, admin.SortedGroups(groups)).Render()
				return nil
			})
		},
	}
}

func newGroupCmd(opts *rootOptions) *cobra.Command {
	groupCmd := &cobra.Command{
		Use:   "group",
		Short: "Inspects and deletes single groups.",
	}

	infoCmd := &cobra.Command{
		Use:   "info <id|name>",
		Short: "Shows the members and the libraries shared with a group.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, func(ctx context.Context, s *session) error {
				e, err := s.scraper.All(ctx)
				if err != nil {
					return err
				}
				group, err := resolveGroup(e.Groups, args[0])
				if err != nil {
					return err
				}
				info, err := s.scraper.CollectGroupInfo(ctx, group, e)
				if err != nil {
					return err
				}

				groupsTable(s.out, []admin.Group{info.Group}).Render()
				if info.Group.Description != "" {
					fmt.Fprintln(s.out, info.Group.Description)
				}
				printTitle(s.out, "Members")
				usersTable(s.out, info.Members).Render()
				printTitle(s.out, "Libraries of the owner")
				librariesTable(s.out, info.Libraries).Render()
				printTitle(s.out, "Shared with the group")
				sharesTable(s.out, info.Shares).Render()
				return nil
			})
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id|name>...",
		Short: "Deletes groups.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, func(ctx context.Context, s *session) error {
				all, err := s.scraper.Groups(ctx)
				if err != nil {
					return err
				}
				groups := []admin.Group{}
				for _, arg := range args {
					g, err := resolveGroup(all, arg)
					if err != nil {
						return err
					}
					groups = append(groups, g)
				}

				groupsTable(s.out, groups).Render()
				ok, err := s.confirm(fmt.Sprintf("Delete %d group(s)?", len(groups)))
				if err != nil || !ok {
					return err
				}
				for _, g := range groups {
					err := s.scraper.DeleteGroup(ctx, g)
					if err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	groupCmd.AddCommand(infoCmd, deleteCmd)
	return groupCmd
}
