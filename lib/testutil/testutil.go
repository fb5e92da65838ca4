package testutil

import (
	"context"
	"fmt"
	"seafadmin/lib/telemetry"
	"sync"
	"testing"
)

// SetupForTesting routes every log line through the verbose slog handler.
func SetupForTesting(t testing.TB) {
	t.Helper()
	telemetry.InitSlog(true)
}

type Report struct {
	Kind   string
	Id     string
	Params []any
}

// RecordingAPI is a telemetry.API that keeps everything reported to it so
// tests can assert on brokenness and warnings.
type RecordingAPI struct {
	mu      sync.Mutex
	reports []Report
	counts  map[string]int64
}

var _ telemetry.API = (*RecordingAPI)(nil)

func NewRecordingAPI() *RecordingAPI {
	return &RecordingAPI{counts: map[string]int64{}}
}

func (r *RecordingAPI) record(kind, id string, params []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, Report{Kind: kind, Id: id, Params: params})
}

func (r *RecordingAPI) ReportBroken(id string, params ...any) {
	r.record("broken", id, params)
}

func (r *RecordingAPI) ReportWarning(id string, params ...any) {
	r.record("warning", id, params)
}

func (r *RecordingAPI) ReportDebug(msg string, params ...any) {
	r.record("debug", msg, params)
}

func (r *RecordingAPI) ReportCount(id string, count int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[id] = count
}

// Ids returns the ids of every report of the given kind in order.
func (r *RecordingAPI) Ids(kind string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := []string{}
	for _, rep := range r.reports {
		if rep.Kind == kind {
			ids = append(ids, rep.Id)
		}
	}
	return ids
}

// Count returns the last count reported under id.
func (r *RecordingAPI) Count(id string) (int64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.counts[id]
	return n, ok
}

// StatusError is returned by FakeFetcher for paths with a configured status.
type StatusError struct {
	Path string
	Code int
}

func (e StatusError) Error() string {
	return fmt.Sprintf("%s: status %d", e.Path, e.Code)
}

func (e StatusError) HTTPStatus() int {
	return e.Code
}

type Post struct {
	Path string
	Form map[string]string
}

// FakeFetcher serves canned pages keyed by path (query included) and
// records every POST. Unknown paths answer 404.
type FakeFetcher struct {
	mu     sync.Mutex
	Pages  map[string]string
	Status map[string]int
	// set to make every request fail with a non-http error
	Err error
	// non-http errors for single paths
	Errs map[string]error

	Gets  []string
	Posts []Post
}

func NewFakeFetcher(pages map[string]string) *FakeFetcher {
	return &FakeFetcher{Pages: pages, Status: map[string]int{}, Errs: map[string]error{}}
}

func (f *FakeFetcher) Fetch(ctx context.Context, path string, form map[string]string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Err != nil {
		return "", f.Err
	}
	if err, ok := f.Errs[path]; ok {
		return "", err
	}
	if code, ok := f.Status[path]; ok {
		return "", StatusError{Path: path, Code: code}
	}
	if form != nil {
		copied := map[string]string{}
		for k, v := range form {
			copied[k] = v
		}
		f.Posts = append(f.Posts, Post{Path: path, Form: copied})
		return "", nil
	}

	f.Gets = append(f.Gets, path)
	page, ok := f.Pages[path]
	if !ok {
		return "", StatusError{Path: path, Code: 404}
	}
	return page, nil
}

// GetCount returns how many times path was fetched with GET.
func (f *FakeFetcher) GetCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.Gets {
		if p == path {
			n++
		}
	}
	return n
}
