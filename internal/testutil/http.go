// internal/testutil/http.go
package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
)

// T is the subset of *testing.T the assertions need.
type T interface {
	Helper()
	Errorf(format string, args ...any)
}

// ResponseRecorder wraps httptest.ResponseRecorder with assertion helpers.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// Get serves a GET for target through h and returns the recorded response.
func Get(h http.Handler, target string) *ResponseRecorder {
	rec := &ResponseRecorder{httptest.NewRecorder()}
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t T, expected int) {
	t.Helper()
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// AssertHeader checks a response header value.
func (r *ResponseRecorder) AssertHeader(t T, key, expected string) {
	t.Helper()
	if got := r.Header().Get(key); got != expected {
		t.Errorf("header %s: got %q, want %q", key, got, expected)
	}
}

// AssertRedirect checks for a 303 to the expected location.
func (r *ResponseRecorder) AssertRedirect(t T, expectedLocation string) {
	t.Helper()
	if r.Code != http.StatusSeeOther {
		t.Errorf("expected 303 redirect, got %d", r.Code)
	}
	if location := r.Header().Get("Location"); location != expectedLocation {
		t.Errorf("redirect location: got %q, want %q", location, expectedLocation)
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t T, expected string) {
	t.Helper()
	if !strings.Contains(r.Body.String(), expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}
