// internal/app/bootstrap/appconfig.go
package bootstrap

import (
	"time"

	"github.com/dalemusser/floodrelief/internal/app/system/querystate"
	"github.com/dalemusser/floodrelief/internal/app/system/timezones"
)

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration (ports, TLS, log level).
//
// The same struct configures both the web dashboard and the terminal
// client, so TUI-only settings (ExportDir, TUILogPath) live here too.
type AppConfig struct {
	// Relief data API
	APIURL     string        // Base URL of the records endpoint
	APIKey     string        // Sent as x-api-key on every request
	APITimeout time.Duration // HTTP client timeout for a single call

	// Initial dashboard state
	DefaultPerPage int
	DefaultTab     string
	DefaultSort    string
	SearchDebounce time.Duration

	// Presentation
	DisplayTimezone string // IANA zone from the curated list
	SiteName        string

	// Terminal client
	ExportDir  string // Where "e" writes CSV files
	TUILogPath string // Log file; the terminal itself stays clean

	// Operation timeouts
	TimeoutFetch  time.Duration
	TimeoutExport time.Duration

	// Exports per client IP per minute on the web dashboard; 0 disables
	ExportRateLimit int
}

// DefaultState returns the dashboard state a fresh session starts from.
// Values are assumed to have passed ValidateConfig.
func (c AppConfig) DefaultState() querystate.State {
	s := querystate.Default()
	if t := querystate.Tab(c.DefaultTab); querystate.ValidTab(t) {
		s.Tab = t
	}
	if o := querystate.Sort(c.DefaultSort); querystate.ValidSort(o) && o != querystate.SortNearest {
		s.Sort = o
	}
	if next, err := s.WithPerPage(c.DefaultPerPage); err == nil {
		s = next
	}
	return s
}

// Location returns the display time zone, falling back to UTC.
func (c AppConfig) Location() *time.Location {
	loc, err := timezones.Location(c.DisplayTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
