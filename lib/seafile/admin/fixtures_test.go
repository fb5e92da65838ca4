package admin

import (
	"seafadmin/lib/testutil"
	"testing"
)

const testOrigin = "https://files.example.com"

const usersPage = `<html><body>
<div id="right-panel">
<table>
	<tr><th>Email</th><th>Status</th><th>Space Used / Quota</th><th>Create At / Last Login</th><th>Operations</th></tr>
	<tr>
		<td><a href="/sys/userinfo/a@x.com/">a@x.com</a></td>
		<td>Active</td>
		<td>512.00 KB / 10.00 GB</td>
		<td>2020-01-01 / 3 years ago</td>
		<td><a href="#" class="remove-user-btn" data-url="/sys/useradmin/remove/11/">Delete</a></td>
	</tr>
	<tr>
		<td><a href="/sys/userinfo/b@x.com/">b@x.com</a></td>
		<td>Active</td>
		<td>1.50 GB / --</td>
		<td>2021-02-03 / 2 years ago</td>
		<td><a href="#" data-url="/sys/useradmin/remove/12/">Delete</a></td>
	</tr>
	<tr>
		<td><a href="/sys/userinfo/c@y.com/">c@y.com</a></td>
		<td>Inactive</td>
		<td>0 bytes / 100.00 MB</td>
		<td>2022-03-04 / 1 year ago</td>
		<td><a href="#" data-url="/sys/useradmin/remove/13/">Delete</a></td>
	</tr>
</table>
</div>
</body></html>`

const librariesPage = `<html><body>
<div id="right-panel">
<table>
	<tr><th>Name</th><th>Owner</th><th>Description</th><th>Operations</th></tr>
	<tr>
		<td><a href="/sys/seafadmin/repo/r1/">Docs</a></td>
		<td><a href="/sys/userinfo/a@x.com/">a@x.com</a></td>
		<td>team
documents</td>
		<td><a href="#" data-url="/sys/seafadmin/repo/r1/remove/">Delete</a></td>
	</tr>
	<tr>
		<td><a href="/sys/seafadmin/repo/r2/">Archive</a></td>
		<td><a href="/sys/userinfo/a@x.com/">a@x.com</a></td>
		<td></td>
		<td></td>
	</tr>
	<tr>
		<td><a href="/sys/seafadmin/repo/r3/">Photos</a></td>
		<td><a href="/sys/userinfo/ghost@x.com/">ghost@x.com</a></td>
		<td>orphaned</td>
		<td></td>
	</tr>
</table>
</div>
</body></html>`

const linksPage = `<html><body>
<div id="right-panel">
<table>
	<tr><th>Name</th><th>Owner</th><th>Created</th><th>Visits</th><th>Operations</th></tr>
	<tr>
		<td>report.pdf</td>
		<td>a@x.com</td>
		<td><time datetime="2023-04-05T10:00:00">2 days ago</time></td>
		<td>7</td>
		<td><a href="#" data-url="/sys/publink/remove/f1a2/">Remove</a></td>
	</tr>
	<tr>
		<td>/projects</td>
		<td>a@x.com</td>
		<td><span title="2023-01-01 08:00:00">3 months ago</span></td>
		<td>many</td>
		<td><a href="#" data-url="/sys/publink/remove/d3b4/">Remove</a></td>
	</tr>
	<tr>
		<td>old.txt</td>
		<td>c@y.com</td>
		<td>2020-12-12</td>
		<td>0</td>
		<td><a href="#" data-url="/sys/publink/remove/e5c6/">Remove</a></td>
	</tr>
</table>
</div>
</body></html>`

const groupsPage = `<html><body>
<div id="right-panel">
<table>
	<tr><th>Name</th><th>Owner</th><th>Created</th><th>Operations</th></tr>
	<tr>
		<td><a href="/sys/groupadmin/3/">Team</a></td>
		<td>b@x.com</td>
		<td>2021-05-01</td>
		<td></td>
	</tr>
	<tr>
		<td><a href="/sys/groupadmin/4/">Alpha</a></td>
		<td>c@y.com</td>
		<td>2022-06-01</td>
		<td></td>
	</tr>
</table>
</div>
</body></html>`

const teamMembersPage = `<html><body>
<p id="group-desc">The
team</p>
<ul id="group-members">
	<li>c@y.com</li>
	<li>a@x.com</li>
	<li>ghost@x.com</li>
</ul>
</body></html>`

const alphaMembersPage = `<html><body>
<ul id="group-members">
	<li>a@x.com</li>
</ul>
</body></html>`

const userInfoPage = `<html><body>
<h3>Owned Libraries</h3>
<table><tr><td>Docs</td><td>a@x.com</td></tr></table>
<h3>Shared Libraries</h3>
<table>
	<tr><th>Name</th><th>Share From</th><th>Description</th></tr>
	<tr><td>Budget</td><td>b@x.com</td><td>numbers</td></tr>
</table>
</body></html>`

const teamInfoPage = `<html><body>
<h3>Libraries</h3>
<table>
	<tr><th>Name</th><th>Share From</th><th>Description</th></tr>
	<tr><td>Roadmap</td><td>b@x.com</td><td>plans</td></tr>
	<tr><td>Budget</td><td>b@x.com</td><td>numbers</td></tr>
</table>
</body></html>`

const alphaInfoPage = `<html><body>
<h3>Libraries</h3>
<table>
	<tr><td>Budget</td><td>b@x.com</td><td>numbers</td></tr>
</table>
</body></html>`

func listingPath(path string) string {
	return path + "?per_page=100000"
}

func fixturePages() map[string]string {
	return map[string]string{
		listingPath(usersPath):     usersPage,
		listingPath(librariesPath): librariesPage,
		listingPath(linksPath):     linksPage,
		listingPath(groupsPath):    groupsPage,
		"/group/3/members/":        teamMembersPage,
		"/group/4/members/":        alphaMembersPage,
		"/sys/userinfo/a@x.com/":   userInfoPage,
		"/sys/groupadmin/3/":       teamInfoPage,
		"/sys/groupadmin/4/":       alphaInfoPage,
	}
}

func newTestScraper(t testing.TB) (Scraper, *testutil.FakeFetcher, *testutil.RecordingAPI) {
	t.Helper()
	testutil.SetupForTesting(t)
	fetch := testutil.NewFakeFetcher(fixturePages())
	tel := testutil.NewRecordingAPI()
	s := NewScraper(fetch, Options{
		Origin:    testOrigin,
		Telemetry: tel,
	})
	return s, fetch, tel
}
