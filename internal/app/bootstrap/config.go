// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/dalemusser/floodrelief/internal/app/system/debounce"
	"github.com/dalemusser/floodrelief/internal/app/system/paging"
	"github.com/dalemusser/floodrelief/internal/app/system/querystate"
	"github.com/dalemusser/floodrelief/internal/app/system/timeouts"
	"github.com/dalemusser/floodrelief/internal/app/system/timezones"
	"github.com/dalemusser/floodrelief/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the flood relief
// dashboard. These are loaded via WAFFLE's config system with support for:
//   - Config files: api_url, api_key, etc.
//   - Environment variables: FLOODRELIEF_API_URL, FLOODRELIEF_API_KEY, etc.
//   - Command-line flags: --api_url, --api_key, etc.
var appConfigKeys = []config.AppKey{
	// Relief data API
	{Name: "api_url", Default: "http://localhost:3000/api/public/records", Desc: "Relief data API endpoint"},
	{Name: "api_key", Default: "", Desc: "API key sent as x-api-key"},
	{Name: "api_timeout", Default: "20s", Desc: "HTTP timeout for one API call (e.g., 20s)"},

	// Initial dashboard state
	{Name: "default_per_page", Default: paging.DefaultPageSize, Desc: "Rows per page: 10, 25, 50 or 100"},
	{Name: "default_tab", Default: string(querystate.TabRequests), Desc: "Initial tab: requests, contributions or all"},
	{Name: "default_sort", Default: string(querystate.SortNewest), Desc: "Initial sort: newest or oldest"},
	{Name: "search_debounce", Default: "500ms", Desc: "Idle time before a typed search is applied (terminal client)"},

	// Presentation
	{Name: "display_timezone", Default: "UTC", Desc: "Time zone for displayed and exported timestamps"},
	{Name: "site_name", Default: models.DefaultSiteName, Desc: "Name shown in page headers"},

	// Terminal client
	{Name: "export_dir", Default: ".", Desc: "Directory the terminal client writes CSV exports to"},
	{Name: "tui_log_path", Default: "floodrelief-tui.log", Desc: "Log file for the terminal client"},

	// Timeouts
	{Name: "timeout_fetch", Default: "15s", Desc: "Deadline for a dashboard fetch"},
	{Name: "timeout_export", Default: "30s", Desc: "Deadline for an export fetch"},

	// Web exports
	{Name: "export_rate_limit", Default: 30, Desc: "CSV/TSV exports per client IP per minute (0 disables)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, FLOODRELIEF_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "FLOODRELIEF", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		APIURL:     appValues.String("api_url"),
		APIKey:     appValues.String("api_key"),
		APITimeout: appValues.Duration("api_timeout", 20*time.Second),

		DefaultPerPage: appValues.Int("default_per_page"),
		DefaultTab:     appValues.String("default_tab"),
		DefaultSort:    appValues.String("default_sort"),
		SearchDebounce: appValues.Duration("search_debounce", debounce.DefaultDelay),

		DisplayTimezone: appValues.String("display_timezone"),
		SiteName:        appValues.String("site_name"),

		ExportDir:  appValues.String("export_dir"),
		TUILogPath: appValues.String("tui_log_path"),

		TimeoutFetch:  appValues.Duration("timeout_fetch", timeouts.DefaultFetch),
		TimeoutExport: appValues.Duration("timeout_export", timeouts.DefaultExport),

		ExportRateLimit: appValues.Int("export_rate_limit"),
	}

	if appCfg.APIKey == "" {
		logger.Warn("api_key is empty; the relief data API may reject requests")
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := validateAppConfig(appCfg); err != nil {
		logger.Error("invalid app config", zap.Error(err))
		return err
	}
	return nil
}

var errInvalidConfig = errors.New("invalid config")

func validateAppConfig(c AppConfig) error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: api_url %q must be an absolute http(s) URL", errInvalidConfig, c.APIURL)
	}
	if !paging.ValidPageSize(c.DefaultPerPage) {
		return fmt.Errorf("%w: default_per_page %d: %w", errInvalidConfig, c.DefaultPerPage, querystate.ErrInvalidPageSize)
	}
	if !querystate.ValidTab(querystate.Tab(c.DefaultTab)) {
		return fmt.Errorf("%w: default_tab %q: %w", errInvalidConfig, c.DefaultTab, querystate.ErrInvalidTab)
	}
	// Nearest needs a location, which a default cannot supply.
	if s := querystate.Sort(c.DefaultSort); !querystate.ValidSort(s) || s == querystate.SortNearest {
		return fmt.Errorf("%w: default_sort %q: %w", errInvalidConfig, c.DefaultSort, querystate.ErrInvalidSort)
	}
	if _, err := timezones.Location(c.DisplayTimezone); err != nil {
		return fmt.Errorf("%w: display_timezone: %w", errInvalidConfig, err)
	}
	if c.ExportRateLimit < 0 {
		return fmt.Errorf("%w: export_rate_limit must not be negative", errInvalidConfig)
	}
	for name, d := range map[string]time.Duration{
		"api_timeout":     c.APITimeout,
		"search_debounce": c.SearchDebounce,
		"timeout_fetch":   c.TimeoutFetch,
		"timeout_export":  c.TimeoutExport,
	} {
		if d <= 0 {
			return fmt.Errorf("%w: %s must be positive", errInvalidConfig, name)
		}
	}
	return nil
}
