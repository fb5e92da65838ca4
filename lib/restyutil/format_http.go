package restyutil

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
)

// headers and form fields that carry credentials, never written to disk
// verbatim
var (
	redactedHeaders    = []string{"Cookie", "Set-Cookie", "X-Csrftoken"}
	redactedFormFields = []string{"password", "csrfmiddlewaretoken"}
)

func formatHeaders(headers http.Header) string {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var lines []string
	for _, k := range keys {
		for _, v := range headers[k] {
			if slices.Contains(redactedHeaders, http.CanonicalHeaderKey(k)) {
				v = "<redacted>"
			}
			lines = append(lines, fmt.Sprintf("%s: %s", k, v))
		}
	}
	return strings.Join(lines, "\n")
}

func formatForm(form url.Values) string {
	redacted := make(url.Values, len(form))
	for k, v := range form {
		if slices.Contains(redactedFormFields, strings.ToLower(k)) {
			redacted[k] = []string{"<redacted>"}
			continue
		}
		redacted[k] = v
	}
	// Encode escapes "<" and ">"
	return strings.ReplaceAll(redacted.Encode(), "%3Credacted%3E", "<redacted>")
}

func formatRequestBody(req *resty.Request) string {
	if len(req.FormData) > 0 {
		return formatForm(req.FormData)
	}
	raw := req.RawRequest
	if raw == nil || raw.GetBody == nil {
		return ""
	}
	body, err := raw.GetBody()
	if err != nil {
		return fmt.Sprintf("failed to get request body: %s", err.Error())
	}
	if body == nil {
		return ""
	}
	readBody, err := io.ReadAll(body)
	if err != nil {
		return fmt.Sprintf("failed to read request body: %s", err.Error())
	}
	if strings.HasPrefix(raw.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		form, err := url.ParseQuery(string(readBody))
		if err == nil {
			return formatForm(form)
		}
	}
	return string(readBody)
}

// 1: request method
// 2: request url
// 3: request headers in ("Key: Value" format)
// 4: request body
// 5: response status
// 6: response url
// 7: response headers in ("Key: Value" format)
// 8: response body
const messageInfoTemplate = `---- REQUEST ----

%s %s

%s

%s

---- RESPONSE ----

%s %s

%s

%s`

func formatHttpMessage(res *resty.Response) string {
	var requestHeaders http.Header
	if res.Request.RawRequest != nil {
		requestHeaders = res.Request.RawRequest.Header
	}

	responseUrl := res.Request.URL
	if res.RawResponse != nil {
		redirected, err := res.RawResponse.Location()
		if err == nil {
			responseUrl = redirected.String()
		}
	}

	return fmt.Sprintf(
		messageInfoTemplate,

		res.Request.Method, res.Request.URL,
		formatHeaders(requestHeaders),
		formatRequestBody(res.Request),

		strconv.Itoa(res.StatusCode()), responseUrl,
		formatHeaders(res.Header()),
		res.String(),
	)
}
