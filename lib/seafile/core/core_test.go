package core

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const loginForm = `<html><body>
<form method="post" action="/accounts/login/">
	<input type="hidden" name="csrfmiddlewaretoken" value="page-token">
	<input name="login"><input type="password" name="password">
</form>
</body></html>`

type fakeService struct {
	mu      sync.Mutex
	posts   []map[string]string
	logouts int
	// only render the token into the form, like setups that keep the csrf
	// token in the session
	noCsrfCookie bool
}

func (s *fakeService) csrfToken() string {
	if s.noCsrfCookie {
		return "page-token"
	}
	return "cookie-token"
}

func (s *fakeService) loggedIn(r *http.Request) bool {
	c, err := r.Cookie("sessionid")
	return err == nil && c.Value == "admin-session"
}

func (s *fakeService) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/accounts/login/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			if !s.noCsrfCookie {
				http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "cookie-token", Path: "/"})
			}
			fmt.Fprint(w, loginForm)
			return
		}
		if r.FormValue("csrfmiddlewaretoken") != s.csrfToken() {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		if r.FormValue("login") != "admin@example.com" || r.FormValue("password") != "secret" {
			fmt.Fprint(w, loginForm)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "admin-session", Path: "/"})
		http.Redirect(w, r, "/sys/useradmin/", http.StatusFound)
	})
	mux.HandleFunc("/sys/useradmin/", func(w http.ResponseWriter, r *http.Request) {
		if !s.loggedIn(r) {
			fmt.Fprint(w, loginForm)
			return
		}
		fmt.Fprint(w, `<div id="right-panel"><table></table></div>`)
	})
	mux.HandleFunc("/sys/useradmin/remove/7/", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		_ = r.ParseForm()
		form := map[string]string{"_header": r.Header.Get("X-CSRFToken")}
		for k := range r.PostForm {
			form[k] = r.PostForm.Get(k)
		}
		s.posts = append(s.posts, form)
		fmt.Fprint(w, "ok")
	})
	mux.HandleFunc("/sys/expired/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/accounts/login/?next=/sys/expired/", http.StatusFound)
	})
	mux.HandleFunc("/accounts/logout/", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.logouts++
		fmt.Fprint(w, loginForm)
	})
	return mux
}

func newTestClient(t testing.TB) (*Client, *fakeService) {
	t.Helper()
	return newTestClientFor(t, &fakeService{})
}

func newTestClientFor(t testing.TB, service *fakeService) (*Client, *fakeService) {
	t.Helper()
	server := httptest.NewServer(service.handler())
	t.Cleanup(server.Close)

	client, err := NewClient(ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)
	return client, service
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	client, service := newTestClient(t)

	require.False(t, client.LoggedIn())
	require.NoError(t, client.Login(ctx, "admin@example.com", "secret"))
	require.True(t, client.LoggedIn())

	_, err := client.Fetch(ctx, "/sys/useradmin/remove/7/", map[string]string{})
	require.NoError(t, err)
	require.Len(t, service.posts, 1)
	require.Equal(t, "cookie-token", service.posts[0]["csrfmiddlewaretoken"])
	require.Equal(t, "cookie-token", service.posts[0]["_header"])

	require.NoError(t, client.Logout(ctx))
	require.False(t, client.LoggedIn())
	require.Equal(t, 1, service.logouts)

	// already logged out
	require.NoError(t, client.Logout(ctx))
	require.Equal(t, 1, service.logouts)
}

func TestLoginCookieTokenSkipsPageScrape(t *testing.T) {
	client, _ := newTestClient(t)

	require.NoError(t, client.Login(context.Background(), "admin@example.com", "secret"))
	require.Empty(t, client.pageToken)
}

func TestLoginPageToken(t *testing.T) {
	ctx := context.Background()
	client, service := newTestClientFor(t, &fakeService{noCsrfCookie: true})

	require.NoError(t, client.Login(ctx, "admin@example.com", "secret"))
	require.Equal(t, "page-token", client.pageToken)

	_, err := client.Fetch(ctx, "/sys/useradmin/remove/7/", map[string]string{})
	require.NoError(t, err)
	require.Equal(t, "page-token", service.posts[0]["csrfmiddlewaretoken"])
}

func TestSessionExpired(t *testing.T) {
	ctx := context.Background()
	client, service := newTestClient(t)
	require.NoError(t, client.Login(ctx, "admin@example.com", "secret"))

	_, err := client.Fetch(ctx, "/sys/expired/", nil)
	require.ErrorIs(t, err, ErrSessionExpired)
	require.False(t, client.LoggedIn())

	// nothing left to log out of
	require.NoError(t, client.Logout(ctx))
	require.Equal(t, 0, service.logouts)
}

func TestLoginWrongPassword(t *testing.T) {
	client, _ := newTestClient(t)

	err := client.Login(context.Background(), "admin@example.com", "wrong")
	require.ErrorIs(t, err, ErrLoginFailed)
	require.False(t, client.LoggedIn())
}

func TestFetchStatusError(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.Fetch(context.Background(), "/does-not-exist/", nil)
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	require.Equal(t, http.MethodGet, statusErr.Method)
}

func TestDocument(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(t)
	require.NoError(t, client.Login(ctx, "admin@example.com", "secret"))

	doc, err := client.Document(ctx, "/sys/useradmin/", nil)
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("#right-panel").Length())
}

func TestNewClient(t *testing.T) {
	_, err := NewClient(ClientOptions{BaseUrl: "files.example.com"})
	require.Error(t, err)

	client, err := NewClient(ClientOptions{BaseUrl: "https://files.example.com/seafile/"})
	require.NoError(t, err)
	require.Equal(t, "https://files.example.com", client.Origin())
}
