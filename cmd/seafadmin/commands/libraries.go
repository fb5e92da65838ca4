package commands

import (
	"context"
	"fmt"
	"maps"
	"seafadmin/lib/seafile/admin"
	"slices"

	"github.com/spf13/cobra"
)

func newLibrariesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "libraries",
		Short: "Lists every library sorted by owner and name.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, func(ctx context.Context, s *session) error {
				libraries, err := s.scraper.Libraries(ctx)
				if err != nil {
					return err
				}
				librariesTable(s.out, admin.SortedLibraries(libraries)).Render()
				return nil
			})
		},
	}
}

func newLibraryCmd(opts *rootOptions) *cobra.Command {
	libraryCmd := &cobra.Command{
		Use:   "library",
		Short: "Deletes single libraries.",
	}
	libraryCmd.AddCommand(&cobra.Command{
		Use:   "delete <id>...",
		Short: "Deletes libraries by id.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, func(ctx context.Context, s *session) error {
				all, err := s.scraper.Libraries(ctx)
				if err != nil {
					return err
				}
				libraries := []admin.Library{}
				for _, id := range args {
					l, ok := all[id]
					if !ok {
						return unknownError("library", id, slices.Collect(maps.Keys(all)))
					}
					libraries = append(libraries, l)
				}

				librariesTable(s.out, libraries).Render()
				ok, err := s.confirm(fmt.Sprintf("Delete %d library(s)?", len(libraries)))
				if err != nil || !ok {
					return err
				}
				for _, l := range libraries {
					err := s.scraper.DeleteLibrary(ctx, l)
					if err != nil {
						return err
					}
				}
				return nil
			})
		},
	})
	return libraryCmd
}
