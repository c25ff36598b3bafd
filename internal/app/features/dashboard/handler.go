// internal/app/features/dashboard/handler.go
package dashboard

import (
	"time"

	"github.com/dalemusser/floodrelief/internal/app/system/clock"
	"github.com/dalemusser/floodrelief/internal/app/system/fetcher"
	"github.com/dalemusser/floodrelief/internal/app/system/querystate"
	"github.com/dalemusser/floodrelief/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

// Handler serves the relief dashboard and its exports. Each request parses
// its own query state from the URL, so the handler holds no per-user state.
type Handler struct {
	API      fetcher.Source
	Defaults querystate.State
	Loc      *time.Location
	Clock    clock.Clock
	Log      *zap.Logger

	// ExportLimiter throttles CSV and TSV downloads per client; nil means
	// unlimited.
	ExportLimiter *ratelimit.Limiter
}

// NewHandler creates a dashboard Handler. defaults seeds any parameter the
// URL leaves out; loc is the display time zone (nil means UTC).
func NewHandler(api fetcher.Source, defaults querystate.State, loc *time.Location, logger *zap.Logger) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		API:      api,
		Defaults: defaults,
		Loc:      loc,
		Clock:    clock.Real(),
		Log:      logger,
	}
}
