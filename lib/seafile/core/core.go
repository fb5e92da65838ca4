package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"seafadmin/lib/restyutil"
	"seafadmin/lib/telemetry"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"golang.org/x/time/rate"
)

var tracer = otel.Tracer("seafadmin.lib.seafile.core")

const (
	report_client_login  = "client.login"
	report_client_logout = "client.logout"
	report_client_fetch  = "client.fetch"
)

const (
	loginPath  = "/accounts/login/"
	logoutPath = "/accounts/logout/"
	// only reachable by staff, used to check that the login worked
	adminProbePath = "/sys/useradmin/"

	csrfCookie = "csrftoken"
	csrfField  = "csrfmiddlewaretoken"
)

var (
	ErrLoginFailed    = errors.New("failed to login as admin")
	ErrSessionExpired = errors.New("admin session expired")
)

// StatusError is returned for responses with a non-2xx status.
type StatusError struct {
	Method     string
	Url        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Url, e.StatusCode)
}

func (e *StatusError) HTTPStatus() int {
	return e.StatusCode
}

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client

	// csrf token from the last page that rendered one, the cookie takes
	// precedence when present
	pageToken string
	loggedIn  bool
	tel       telemetry.API
}

type ClientOptions struct {
	BaseUrl string
	Timeout time.Duration
	// requests per second, <= 0 disables rate limiting
	RateLimit        float64
	BypassCloudflare bool
	Telemetry        telemetry.API
	InstrumentOutput restyutil.InstrumentOutput
}

func NewClient(opts ClientOptions) (*Client, error) {
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}
	if baseUrl.Scheme == "" || baseUrl.Host == "" {
		return nil, fmt.Errorf("base url must be absolute: %q", opts.BaseUrl)
	}

	tel := opts.Telemetry
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}
	tel = telemetry.NewScopedAPI("seafile_core", tel)

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = time.Second * 30
	}

	client := resty.New()
	client.SetBaseURL(baseUrl.String())
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	if opts.BypassCloudflare {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(timeout)

	if opts.RateLimit > 0 {
		// burst of 1, requests are issued one after another anyways
		rateLimiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
		client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return rateLimiter.Wait(req.Context())
		})
	}

	telemetry.InstrumentResty(client, "seafadmin.seafile.http")
	restyutil.InstrumentClient(client, opts.InstrumentOutput)

	return &Client{
		BaseUrl: baseUrl,
		Http:    client,
		tel:     tel,
	}, nil
}

// Origin is the scheme and host of the service, ex. "https://files.example.com".
func (c *Client) Origin() string {
	return (&url.URL{Scheme: c.BaseUrl.Scheme, Host: c.BaseUrl.Host}).String()
}

// LoggedIn reports whether the client holds an admin session. It turns false
// after Logout and once a request gets bounced to the login page.
func (c *Client) LoggedIn() bool {
	return c.loggedIn
}

func (c *Client) cookieToken() string {
	for _, cookie := range c.Http.GetClient().Jar.Cookies(c.BaseUrl) {
		if cookie.Name == csrfCookie && cookie.Value != "" {
			return cookie.Value
		}
	}
	return ""
}

func (c *Client) csrfToken() string {
	if token := c.cookieToken(); token != "" {
		return token
	}
	return c.pageToken
}

// rememberToken keeps the hidden form token of the page, only consulted
// while the service did not set the csrf cookie.
func (c *Client) rememberToken(body []byte) {
	if c.cookieToken() != "" {
		return
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(body))
	if err != nil {
		return
	}
	token := doc.Find(fmt.Sprintf("input[name=%s]", csrfField)).AttrOr("value", "")
	if token != "" {
		c.pageToken = token
	}
}

// Fetch issues a GET when form is nil and a POST carrying the form plus the
// csrf token otherwise. pathOrUrl is resolved against the base url unless it
// is absolute. Non-2xx responses are returned as *StatusError.
func (c *Client) Fetch(ctx context.Context, pathOrUrl string, form map[string]string) (string, error) {
	ctx, span := tracer.Start(ctx, "client:Fetch")
	defer span.End()

	req := c.Http.R().SetContext(ctx)

	var res *resty.Response
	var err error
	if form == nil {
		res, err = req.Get(pathOrUrl)
	} else {
		token := c.csrfToken()
		data := make(map[string]string, len(form)+1)
		for k, v := range form {
			data[k] = v
		}
		data[csrfField] = token
		res, err = req.
			SetFormData(data).
			SetHeader("X-CSRFToken", token).
			SetHeader("Referer", c.BaseUrl.ResolveReference(&url.URL{Path: "/"}).String()).
			Post(pathOrUrl)
	}
	if err != nil {
		span.RecordError(err)
		c.tel.ReportBroken(report_client_fetch, fmt.Errorf("request: %w", err), pathOrUrl)
		return "", err
	}
	if res.IsError() {
		statusErr := &StatusError{
			Method:     res.Request.Method,
			Url:        res.Request.URL,
			StatusCode: res.StatusCode(),
		}
		span.RecordError(statusErr)
		c.tel.ReportDebug("non-2xx response", pathOrUrl, res.StatusCode())
		return "", statusErr
	}

	if c.loggedIn && bouncedToLogin(pathOrUrl, res) {
		c.loggedIn = false
		c.tel.ReportWarning(report_client_fetch, ErrSessionExpired, pathOrUrl)
		return "", ErrSessionExpired
	}

	c.rememberToken(res.Body())
	return res.String(), nil
}

// bouncedToLogin is true when a request for some other page was redirected
// to the login form.
func bouncedToLogin(requested string, res *resty.Response) bool {
	if res.RawResponse == nil || res.RawResponse.Request == nil {
		return false
	}
	requestedUrl, err := url.Parse(requested)
	if err != nil || requestedUrl.Path == loginPath || requestedUrl.Path == logoutPath {
		return false
	}
	return res.RawResponse.Request.URL.Path == loginPath
}

// Document fetches a page and parses it.
func (c *Client) Document(ctx context.Context, pathOrUrl string, form map[string]string) (*goquery.Document, error) {
	body, err := c.Fetch(ctx, pathOrUrl, form)
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(bytes.NewBufferString(body))
}

func (c *Client) Login(ctx context.Context, username, password string) error {
	ctx, span := tracer.Start(ctx, "client:Login")
	defer span.End()

	loginError := func(err error) error {
		return fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}

	_, err := c.Fetch(ctx, loginPath, nil)
	if err != nil {
		c.tel.ReportBroken(report_client_login, fmt.Errorf("login page request: %w", err))
		return loginError(err)
	}
	if c.csrfToken() == "" {
		err := fmt.Errorf("could not find csrf token")
		c.tel.ReportBroken(report_client_login, err)
		return loginError(err)
	}

	_, err = c.Fetch(ctx, loginPath, map[string]string{
		"login":    username,
		"password": password,
	})
	if err != nil {
		var statusErr *StatusError
		if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusForbidden {
			c.tel.ReportBroken(report_client_login, fmt.Errorf("login request: %w", err))
		}
		return loginError(err)
	}

	doc, err := c.Document(ctx, adminProbePath, nil)
	if err != nil {
		c.tel.ReportWarning(report_client_login, fmt.Errorf("request admin page: %w", err))
		return loginError(err)
	}
	if doc.Find("input[name=password]").Length() > 0 {
		c.tel.ReportWarning(report_client_login, "still on the login form after logging in", username)
		return ErrLoginFailed
	}

	c.loggedIn = true
	c.tel.ReportDebug("logged in", username)
	return nil
}

// Logout ends the admin session, it is a no-op when not logged in.
func (c *Client) Logout(ctx context.Context) error {
	if !c.loggedIn {
		return nil
	}
	_, err := c.Fetch(ctx, logoutPath, nil)
	if err != nil {
		c.tel.ReportWarning(report_client_logout, err)
		return err
	}
	c.loggedIn = false
	return nil
}
