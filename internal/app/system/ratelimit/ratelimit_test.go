package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/floodrelief/internal/app/system/clock"
)

var epoch = time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC)

func TestLimiter_Window(t *testing.T) {
	clk := clock.Fake(epoch)
	l := New(2, time.Minute, clk)

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatal("first two requests were refused")
	}
	if l.Allow("a") {
		t.Error("third request in the window was allowed")
	}
	if !l.Allow("b") {
		t.Error("a different key was limited")
	}
	if got := l.Remaining("a"); got != 0 {
		t.Errorf("Remaining(a) = %d, want 0", got)
	}
	if got := l.RetryAfter("a"); got != time.Minute {
		t.Errorf("RetryAfter(a) = %v, want 1m", got)
	}

	clk.Advance(time.Minute)
	if !l.Allow("a") {
		t.Error("request after the window reset was refused")
	}
	if got := l.Remaining("a"); got != 1 {
		t.Errorf("Remaining(a) = %d, want 1", got)
	}
}

func TestLimiter_SweepsExpired(t *testing.T) {
	clk := clock.Fake(epoch)
	l := New(1, time.Minute, clk)
	l.Allow("old")

	clk.Advance(2 * time.Minute)
	l.Allow("new")

	l.mu.Lock()
	_, kept := l.windows["old"]
	l.mu.Unlock()
	if kept {
		t.Error("expired window survived the sweep")
	}
}

func TestMiddleware(t *testing.T) {
	l := New(2, 30*time.Second, clock.Fake(epoch))
	h := Middleware(l, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/export.csv", nil)
	req.RemoteAddr = "10.0.0.1:5555"

	for i, want := range []string{"1", "0"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, rec.Code)
		}
		if got := rec.Header().Get("X-RateLimit-Remaining"); got != want {
			t.Errorf("request %d X-RateLimit-Remaining = %q, want %q", i+1, got, want)
		}
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third request status = %d, want 429", rec.Code)
	}
	if got := rec.Header().Get("X-RateLimit-Remaining"); got != "0" {
		t.Errorf("X-RateLimit-Remaining = %q, want 0", got)
	}
	if got := rec.Header().Get("Retry-After"); got != "30" {
		t.Errorf("Retry-After = %q, want 30", got)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "10.0.0.1:80", "203.0.113.7"},
		{"real ip", map[string]string{"X-Real-IP": " 198.51.100.2 "}, "10.0.0.1:80", "198.51.100.2"},
		{"remote addr", nil, "192.0.2.9:4321", "192.0.2.9"},
		{"no port", nil, "192.0.2.9", "192.0.2.9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := ClientIP(req); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
