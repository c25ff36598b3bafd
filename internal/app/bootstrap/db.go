// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/floodrelief/internal/app/system/floodapi"
	"github.com/dalemusser/floodrelief/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// ConnectDB builds the relief data API client. No connection is opened
// here; the first request dials.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	client, err := floodapi.New(floodapi.Config{
		BaseURL:   appCfg.APIURL,
		APIKey:    appCfg.APIKey,
		Timeout:   appCfg.APITimeout,
		UserAgent: "floodrelief/" + coreCfg.Env,
	}, logger)
	if err != nil {
		return DBDeps{}, fmt.Errorf("relief api client: %w", err)
	}
	logger.Info("relief api client ready", zap.String("api_url", appCfg.APIURL))
	return DBDeps{API: client}, nil
}

// EnsureSchema probes the API once so a bad URL or key shows up in the
// startup log. The API being down is not fatal: the dashboard shows an
// error banner with a retry until it comes back.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	pctx, cancel := timeouts.WithTimeout(ctx, timeouts.Ping(), logger, "startup api probe")
	defer cancel()

	if err := deps.API.Ping(pctx); err != nil {
		logger.Warn("relief api probe failed; continuing", zap.Error(err))
		return nil
	}
	logger.Info("relief api reachable")
	return nil
}
