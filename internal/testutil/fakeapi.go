package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/dalemusser/floodrelief/internal/domain/models"
)

// TestAPIKey is the key the fake API expects in x-api-key.
const TestAPIKey = "test-key"

// Call is one request received by a FakeAPI.
type Call struct {
	Query  url.Values
	Header http.Header
}

// FakeAPI is an httptest server standing in for the relief data API. It
// records every call and answers with whatever the current responder
// returns.
type FakeAPI struct {
	*httptest.Server

	mu        sync.Mutex
	calls     []Call
	responder http.HandlerFunc
}

// NewFakeAPI starts a FakeAPI that answers with responder. The server is
// closed when the test ends.
func NewFakeAPI(t testing.TB, responder http.HandlerFunc) *FakeAPI {
	t.Helper()
	f := &FakeAPI{responder: responder}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

func (f *FakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.calls = append(f.calls, Call{Query: r.URL.Query(), Header: r.Header.Clone()})
	responder := f.responder
	f.mu.Unlock()
	responder(w, r)
}

// SetResponder swaps the handler used for subsequent calls.
func (f *FakeAPI) SetResponder(h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responder = h
}

// Calls returns a copy of the recorded calls.
func (f *FakeAPI) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// LastCall returns the most recent call, failing the test if there is none.
func (f *FakeAPI) LastCall(t testing.TB) Call {
	t.Helper()
	calls := f.Calls()
	if len(calls) == 0 {
		t.Fatal("fake API received no calls")
	}
	return calls[len(calls)-1]
}

// ServeEnvelope answers every call with env as JSON.
func ServeEnvelope(env models.Envelope) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(env)
	}
}

// ServeError answers every call with status and a JSON {"error": msg} body.
// An empty msg sends an empty body.
func ServeError(status int, msg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if msg != "" {
			_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
		}
	}
}

// ServeRaw answers every call with status and body verbatim.
func ServeRaw(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}
