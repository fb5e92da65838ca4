package section

import (
	"slices"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parse(t testing.TB, markup string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return doc.Selection
}

const headingPage = `
<html><body>
	<h3>Owned Libraries</h3>
	<p>unrelated</p>
	<table>
		<tr><th>Name</th><th>Owner</th></tr>
		<tr>
			<td>  docs </td>
			<td><a href="/sys/userinfo/a@x.com/">a@x.com</a></td>
		</tr>
		<tr>
			<td>photos</td>
			<td>b@x.com</td>
		</tr>
	</table>
	<h3>Shared Libraries</h3>
	<table>
		<tr><td>shared</td><td>c@y.com</td></tr>
	</table>
</body></html>`

const containerPage = `
<html><body>
	<div id="left-panel"><table><tr><td>nav</td></tr></table></div>
	<div id="right-panel">
		<div class="wrapper">
			<table>
				<tr><th>Email</th></tr>
				<tr><td>a@x.com</td><td>line one
line two</td></tr>
				<tr>
				</tr>
				<tr><td>b@x.com</td><td>
					<table><tr><td>nested</td></tr></table>
				</td></tr>
			</table>
		</div>
	</div>
</body></html>`

func TestRowsByHeading(t *testing.T) {
	root := parse(t, headingPage)

	rows := slices.Collect(TextRows(root, "Owned Libraries"))
	require.Equal(t, [][]string{
		{"docs", "a@x.com"},
		{"photos", "b@x.com"},
	}, rows)

	rows = slices.Collect(TextRows(root, "Shared Libraries"))
	require.Equal(t, [][]string{{"shared", "c@y.com"}}, rows)
}

func TestRowsByContainerId(t *testing.T) {
	root := parse(t, containerPage)

	var emails []string
	for row := range Rows(root, "right-panel") {
		emails = append(emails, row[0].Text)
	}
	require.Equal(t, []string{"a@x.com", "b@x.com"}, emails)

	rows := slices.Collect(TextRows(root, "right-panel"))
	require.Len(t, rows, 2)
	require.Equal(t, "line one line two", rows[0][1])
}

func TestRowsKeepMarkup(t *testing.T) {
	root := parse(t, headingPage)

	var owners []string
	for row := range Rows(root, "Owned Libraries") {
		if a := row[1].Sel.Find("a"); a.Length() > 0 {
			owners = append(owners, a.AttrOr("href", ""))
		}
	}
	require.Equal(t, []string{"/sys/userinfo/a@x.com/"}, owners)
}

func TestAbsentSection(t *testing.T) {
	root := parse(t, headingPage)

	require.Nil(t, Locate(root, "Groups"))
	require.Empty(t, slices.Collect(Rows(root, "Groups")))
	require.Empty(t, slices.Collect(TextRows(parse(t, ""), "right-panel")))

	// a heading without a following table does not resolve
	root = parse(t, `<h3>Libraries</h3><p>No libraries.</p>`)
	require.Empty(t, slices.Collect(Rows(root, "Libraries")))
}

func TestHeadingBeatsContainer(t *testing.T) {
	root := parse(t, `
		<div id="Libraries"><table><tr><td>by id</td></tr></table></div>
		<h4>Libraries</h4>
		<table><tr><td>by heading</td></tr></table>`)

	rows := slices.Collect(TextRows(root, "Libraries"))
	require.Equal(t, [][]string{{"by heading"}}, rows)
}

func TestRowsStopEarly(t *testing.T) {
	root := parse(t, headingPage)

	count := 0
	for range Rows(root, "Owned Libraries") {
		count++
		break
	}
	require.Equal(t, 1, count)
}
