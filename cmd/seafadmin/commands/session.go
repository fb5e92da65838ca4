package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"seafadmin/lib/restyutil"
	"seafadmin/lib/seafile/admin"
	"seafadmin/lib/seafile/core"

	"github.com/spf13/cobra"
)

const restyDumpDir = ".dev/resty"

type session struct {
	config  Config
	client  *core.Client
	scraper admin.Scraper
	out     io.Writer
	opts    *rootOptions
	cmd     *cobra.Command
}

// withSession logs in, runs fn and logs out again regardless of how fn
// went.
func (o *rootOptions) withSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	ctx := cmd.Context()

	config, err := LoadConfig(o.configPath)
	if err != nil {
		return err
	}

	var output restyutil.InstrumentOutput
	if o.verbose {
		fsOutput, err := restyutil.NewFilesystemOutput(restyDumpDir)
		if err != nil {
			return err
		}
		output = fsOutput
	}

	client, err := core.NewClient(core.ClientOptions{
		BaseUrl:          config.Url,
		Timeout:          config.Timeout(),
		RateLimit:        config.RateLimit,
		BypassCloudflare: config.BypassCloudflare,
		InstrumentOutput: output,
	})
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	slog.DebugContext(ctx, "logging in", "url", config.Url, "username", config.Username)
	err = client.Login(ctx, config.Username, config.Password)
	if err != nil {
		return err
	}
	// builders read a missing session as an empty system
	if !client.LoggedIn() {
		return core.ErrLoginFailed
	}
	defer func() {
		err := client.Logout(context.WithoutCancel(ctx))
		if err != nil {
			slog.WarnContext(ctx, "failed to logout", "err", err)
		}
	}()

	err = fn(ctx, &session{
		config: config,
		client: client,
		scraper: admin.NewScraper(client, admin.Options{
			Origin:   client.Origin(),
			PageSize: config.PageSize,
		}),
		out:  cmd.OutOrStdout(),
		opts: o,
		cmd:  cmd,
	})
	if errors.Is(err, core.ErrSessionExpired) {
		return fmt.Errorf("%w, nothing after the last reported change was applied", err)
	}
	return err
}

// confirm asks the user on the command's input unless --yes was given.
func (s *session) confirm(prompt string) (bool, error) {
	return confirm(s.cmd, s.opts.yes, prompt)
}
