package commands

import (
	"bufio"
	"fmt"
	"io"
	"seafadmin/lib/seafile/admin"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	if out != nil {
		t.SetOutputMirror(out)
	}
	return t
}

func confirm(cmd *cobra.Command, yes bool, prompt string) (bool, error) {
	if yes {
		return true, nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", prompt)
	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

func usersTable(out io.Writer, users []*admin.User) table.Writer {
	t := newTable(out)
	t.AppendHeader(table.Row{"Email", "Id", "Used (MB)", "Quota (MB)", "Created"})
	for _, u := range users {
		t.AppendRow(table.Row{u.Email, u.Id, u.UsedSpace.String(), u.Quota.String(), u.Created})
	}
	t.AppendFooter(table.Row{"", "", "", "Total", len(users)})
	return t
}

func librariesTable(out io.Writer, libraries []admin.Library) table.Writer {
	t := newTable(out)
	t.AppendHeader(table.Row{"Owner", "Name", "Id", "Description"})
	for _, l := range libraries {
		t.AppendRow(table.Row{l.Owner, l.Name, l.Id, l.Description})
	}
	return t
}

func groupsTable(out io.Writer, groups []admin.Group) table.Writer {
	t := newTable(out)
	t.AppendHeader(table.Row{"Name", "Id", "Owner", "Created", "Members"})
	for _, g := range groups {
		t.AppendRow(table.Row{g.Name, g.Id, g.Owner, g.Created, len(g.Members)})
	}
	return t
}

func membershipsTable(out io.Writer, memberships []admin.Membership) table.Writer {
	t := newTable(out)
	t.AppendHeader(table.Row{"Group", "Id", "Owner"})
	for _, m := range memberships {
		role := ""
		if m.Owner {
			role = "yes"
		}
		t.AppendRow(table.Row{m.Group.Name, m.Group.Id, role})
	}
	return t
}

func linksTable(out io.Writer, links []*admin.Link, withValidity bool) table.Writer {
	t := newTable(out)
	header := table.Row{"Owner", "Name", "Type", "Visits", "Created", "Url"}
	if withValidity {
		header = append(header, "Valid")
	}
	t.AppendHeader(header)
	for _, l := range links {
		row := table.Row{l.Owner, l.Name, string(l.Type), l.Count, l.Created, l.Url}
		if withValidity {
			row = append(row, l.Validity.String())
		}
		t.AppendRow(row)
	}
	return t
}

func sharesTable(out io.Writer, shares []admin.Share) table.Writer {
	t := newTable(out)
	t.AppendHeader(table.Row{"Name", "Type", "Shared by", "Group", "Description"})
	for _, s := range shares {
		t.AppendRow(table.Row{s.Name, string(s.Type), s.Owner, s.Group, s.Description})
	}
	return t
}

func printTitle(out io.Writer, title string) {
	fmt.Fprintf(out, "\n%s\n", title)
}
