package commands

import (
	"context"
	"fmt"
	"os"
	"seafadmin/internal/chrono"
	"seafadmin/lib/telemetry"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	verbose    bool
	yes        bool
	clock      chrono.TimeAPI
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{clock: chrono.NewStandardTime()}

	root := &cobra.Command{
		Use:           "seafadmin",
		Short:         "seafadmin administers a seafile server through its admin console.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			telemetry.InitSlog(opts.verbose)
		},
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "seafadmin.json5", "The config file to read.")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output and dump http exchanges to .dev/resty.")
	root.PersistentFlags().BoolVarP(&opts.yes, "yes", "y", false, "Do not ask for confirmation before destructive actions.")

	root.AddCommand(
		newUsersCmd(opts),
		newUserCmd(opts),
		newLibrariesCmd(opts),
		newLibraryCmd(opts),
		newGroupsCmd(opts),
		newGroupCmd(opts),
		newLinksCmd(opts),
		newLinkCmd(opts),
		newQuotaCmd(opts),
		newReportCmd(opts),
	)
	return root
}

// ExecuteContext runs the command line and returns the process exit code.
func ExecuteContext(ctx context.Context) int {
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
