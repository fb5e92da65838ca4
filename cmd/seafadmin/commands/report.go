package commands

import (
	"context"
	"errors"
	"fmt"
	"html"
	"os"
	"seafadmin/lib/mailutil"
	"seafadmin/lib/seafile/admin"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var errMailNotConfigured = errors.New("mail requires smtp.server, smtp.email_address and admin_email in the config")

func htmlTable(t table.Writer) string {
	t.SetStyle(table.StyleDefault)
	options := table.DefaultHTMLOptions
	options.CSSClass = "seafadmin-report"
	t.Style().HTML = options
	return t.RenderHTML()
}

// renderReport renders the users and links of the server as an html page.
func renderReport(origin string, e admin.Entities, now time.Time) string {
	users := newTable(nil)
	users.AppendHeader(table.Row{"Email", "Used (MB)", "Quota (MB)", "Libraries", "Links", "Created"})
	for _, u := range admin.SortedUsers(e.Users) {
		users.AppendRow(table.Row{
			u.Email,
			u.UsedSpace.String(),
			u.Quota.String(),
			len(admin.OwnedLibraries(u.Email, e.Libraries)),
			len(admin.OwnedLinks(u.Email, e.Links)),
			u.Created,
		})
	}

	sorted := admin.SortedLinks(e.Links)
	links := linksTable(nil, sorted, true)

	var b strings.Builder
	b.WriteString("<html><body>\n")
	fmt.Fprintf(&b, "<h1>Seafile report for %s</h1>\n", html.EscapeString(origin))
	fmt.Fprintf(&b, "<p>Generated %s.</p>\n", now.Format(time.RFC1123))
	fmt.Fprintf(&b, "<h2>Users (%d)</h2>\n", len(e.Users))
	b.WriteString(htmlTable(users))
	fmt.Fprintf(&b, "\n<h2>Public links (%d)</h2>\n", len(sorted))
	b.WriteString(htmlTable(links))
	b.WriteString("\n</body></html>\n")
	return b.String()
}

func newReportCmd(opts *rootOptions) *cobra.Command {
	var (
		mail   bool
		check  bool
		output string
	)
	reportCmd := &cobra.Command{
		Use:   "report [--mail] [--check] [--output <file>]",
		Short: "Renders an html report of users and public links.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, func(ctx context.Context, s *session) error {
				if mail && (!s.config.Smtp.Configured() || s.config.AdminEmail == "") {
					return errMailNotConfigured
				}

				e, err := s.scraper.All(ctx)
				if err != nil {
					return err
				}
				if check {
					_, _, err := s.scraper.ValidateAll(ctx, e.Links)
					if err != nil {
						return err
					}
				}
				report := renderReport(s.client.Origin(), e, opts.clock.Now())

				switch {
				case output != "":
					err := os.WriteFile(output, []byte(report), 0644)
					if err != nil {
						return err
					}
				case !mail:
					fmt.Fprint(s.out, report)
				}

				if !mail {
					return nil
				}
				message := mailutil.Compose(
					s.config.Smtp,
					[]string{s.config.AdminEmail},
					fmt.Sprintf("Seafile report for %s", s.client.Origin()),
					fmt.Sprintf("%d users, %d public links.", len(e.Users), len(e.Links)),
					report,
				)
				return mailutil.Send(ctx, s.config.Smtp, message)
			})
		},
	}
	reportCmd.Flags().BoolVar(&mail, "mail", false, "E-mail the report to the admin e-mail of the config.")
	reportCmd.Flags().BoolVar(&check, "check", false, "Probe public links before reporting their validity, a network failure aborts the report.")
	reportCmd.Flags().StringVarP(&output, "output", "o", "", "Write the report to a file instead of stdout.")
	return reportCmd
}
