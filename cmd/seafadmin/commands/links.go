package commands

import (
	"context"
	"fmt"
	"maps"
	"seafadmin/lib/seafile/admin"
	"slices"

	"github.com/spf13/cobra"
)

func newLinksCmd(opts *rootOptions) *cobra.Command {
	var check bool
	linksCmd := &cobra.Command{
		Use:   "links [--check]",
		Short: "Lists every public link sorted by owner and name.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, func(ctx context.Context, s *session) error {
				links, err := s.scraper.Links(ctx)
				if err != nil {
					return err
				}
				if !check {
					linksTable(s.out, admin.SortedLinks(links), false).Render()
					return nil
				}

				valid, invalid, err := s.scraper.ValidateAll(ctx, links)
				if err != nil {
					return err
				}
				printTitle(s.out, "Valid")
				linksTable(s.out, valid, true).Render()
				printTitle(s.out, "Invalid")
				linksTable(s.out, invalid, true).Render()
				return nil
			})
		},
	}
	linksCmd.Flags().BoolVar(&check, "check", false, "Probe every public url and split the links into valid and invalid ones, a network failure aborts the listing.")

	linksCmd.AddCommand(&cobra.Command{
		Use:   "prune",
		Short: "Removes every public link whose page is gone.",
		Long: `Removes every public link whose page is gone.

Links are probed one after another. A link is invalid when its page answers
with an http error or shows an error panel. A network failure on any link
aborts the whole pass before anything is removed, rerun the command once the
service is reachable again.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, func(ctx context.Context, s *session) error {
				links, err := s.scraper.Links(ctx)
				if err != nil {
					return err
				}
				_, invalid, err := s.scraper.ValidateAll(ctx, links)
				if err != nil {
					return err
				}
				if len(invalid) == 0 {
					fmt.Fprintln(s.out, "No invalid links.")
					return nil
				}

				linksTable(s.out, invalid, true).Render()
				ok, err := s.confirm(fmt.Sprintf("Remove %d invalid link(s)?", len(invalid)))
				if err != nil || !ok {
					return err
				}
				removed, err := s.scraper.RemoveLinks(ctx, invalid)
				fmt.Fprintf(s.out, "Removed %d of %d link(s).\n", removed, len(invalid))
				return err
			})
		},
	})
	return linksCmd
}

func newLinkCmd(opts *rootOptions) *cobra.Command {
	linkCmd := &cobra.Command{
		Use:   "link",
		Short: "Removes single public links.",
	}
	linkCmd.AddCommand(&cobra.Command{
		Use:   "delete <id>...",
		Short: "Removes public links by id.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, func(ctx context.Context, s *session) error {
				all, err := s.scraper.Links(ctx)
				if err != nil {
					return err
				}
				links := []*admin.Link{}
				for _, id := range args {
					l, ok := all[id]
					if !ok {
						return unknownError("link", id, slices.Collect(maps.Keys(all)))
					}
					links = append(links, l)
				}

				linksTable(s.out, links, false).Render()
				ok, err := s.confirm(fmt.Sprintf("Remove %d link(s)?", len(links)))
				if err != nil || !ok {
					return err
				}
				_, err = s.scraper.RemoveLinks(ctx, links)
				return err
			})
		},
	})
	return linkCmd
}
