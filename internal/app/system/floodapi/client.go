// internal/app/system/floodapi/client.go
package floodapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dalemusser/floodrelief/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 8 << 20

// Config holds everything the client needs. It is built once at startup
// from app configuration and passed in explicitly.
type Config struct {
	BaseURL   string        // full endpoint URL, e.g. https://<project>.supabase.co/functions/v1/public-data-api
	APIKey    string        // sent as x-api-key
	Timeout   time.Duration // per-request HTTP timeout; 0 means no client-side limit beyond ctx
	UserAgent string
}

// Client fetches request/contribution pages from the relief data API.
// A Client is safe for concurrent use.
type Client struct {
	base      *url.URL
	apiKey    string
	userAgent string
	http      *http.Client
	log       *zap.Logger
}

// New validates cfg and returns a Client. logger may be nil.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("floodapi: base URL is required")
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("floodapi: invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("floodapi: base URL must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("floodapi: base URL %q has no host", cfg.BaseURL)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = "floodrelief"
	}
	return &Client{
		base:      u,
		apiKey:    cfg.APIKey,
		userAgent: ua,
		http:      &http.Client{Timeout: cfg.Timeout},
		log:       logger,
	}, nil
}

// Result is the normalized outcome of one fetch. Exactly one of Data and
// Err is set.
type Result struct {
	Data      *models.Envelope
	Err       error
	Status    int // HTTP status, 0 when no response was received
	RequestID string
}

// OK reports whether the fetch succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Message returns the human-readable failure text, or "".
func (r Result) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// URL returns the full request URL for q.
func (c *Client) URL(q Query) string {
	u := *c.base
	values := u.Query()
	for k, vs := range q.Values() {
		values[k] = vs
	}
	u.RawQuery = values.Encode()
	return u.String()
}

// Fetch performs one GET for q. It never returns a Go error; failures are
// folded into Result.Err as an *Error.
func (c *Client) Fetch(ctx context.Context, q Query) Result {
	reqID := uuid.NewString()
	res := Result{RequestID: reqID}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(q), nil)
	if err != nil {
		res.Err = &Error{Kind: KindNetwork, Message: msgNetwork, Err: err}
		return res
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("X-Request-ID", reqID)
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("relief api unreachable",
			zap.String("request_id", reqID),
			zap.Error(err))
		res.Err = &Error{Kind: KindNetwork, Message: msgNetwork, Err: err}
		return res
	}
	defer resp.Body.Close()
	res.Status = resp.StatusCode

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.log.Warn("relief api body read failed",
			zap.String("request_id", reqID),
			zap.Int("status", resp.StatusCode),
			zap.Error(err))
		res.Err = &Error{Kind: KindNetwork, Status: resp.StatusCode, Message: msgNetwork, Err: err}
		return res
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := statusError(resp.StatusCode, body)
		c.log.Warn("relief api returned error status",
			zap.String("request_id", reqID),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message))
		res.Err = apiErr
		return res
	}

	var env models.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		c.log.Warn("relief api response decode failed",
			zap.String("request_id", reqID),
			zap.Error(err))
		res.Err = &Error{Kind: KindDecode, Status: resp.StatusCode, Message: msgDecode, Err: err}
		return res
	}

	c.log.Debug("relief api fetch",
		zap.String("request_id", reqID),
		zap.String("type", q.Type),
		zap.Int("offset", q.Offset),
		zap.Int("returned_requests", len(env.Requests)),
		zap.Int("returned_contributions", len(env.Contributions)),
		zap.Duration("took", time.Since(start)))

	res.Data = &env
	return res
}

// Ping checks that the API answers a minimal query.
func (c *Client) Ping(ctx context.Context) error {
	return c.Fetch(ctx, Query{Type: "requests", Limit: 1}).Err
}

// CloseIdleConnections releases pooled connections. Used at shutdown.
func (c *Client) CloseIdleConnections() {
	c.http.CloseIdleConnections()
}
