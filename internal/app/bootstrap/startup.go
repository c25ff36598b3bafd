// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/floodrelief/internal/app/resources"
	"github.com/dalemusser/floodrelief/internal/app/system/timeouts"
	"github.com/dalemusser/floodrelief/internal/app/system/timezones"
	"github.com/dalemusser/floodrelief/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after the API client is
// built, but before the HTTP handler is. It loads shared templates and
// applies configured timeouts and presentation settings.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()
	if err := timezones.Load(); err != nil {
		return err
	}
	ApplySettings(appCfg, logger)
	return nil
}

// ApplySettings pushes config into the process-wide settings packages.
// The terminal client calls it too.
func ApplySettings(appCfg AppConfig, logger *zap.Logger) {
	timeouts.Configure(timeouts.Config{
		Ping:   timeouts.DefaultPing,
		Fetch:  appCfg.TimeoutFetch,
		Export: appCfg.TimeoutExport,
	})
	viewdata.SetSiteName(appCfg.SiteName)
	logger.Info("settings applied",
		zap.Duration("timeout_fetch", appCfg.TimeoutFetch),
		zap.Duration("timeout_export", appCfg.TimeoutExport),
		zap.String("display_timezone", appCfg.DisplayTimezone))
}
