// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	dashboardfeature "github.com/dalemusser/floodrelief/internal/app/features/dashboard"
	errorsfeature "github.com/dalemusser/floodrelief/internal/app/features/errors"
	healthfeature "github.com/dalemusser/floodrelief/internal/app/features/health"
	"github.com/dalemusser/floodrelief/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, the API client, and Startup have
// completed. The dashboard is mounted at the site root; health and static
// assets sit beside it.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	return newRouter(appCfg, deps, logger), nil
}

// newRouter mounts the feature routers. Split from BuildHandler so tests can
// exercise routing without booting templates.
func newRouter(appCfg AppConfig, deps DBDeps, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.API, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.NotFound(errorsHandler.NotFound)

	// Dashboard and exports
	dashboardHandler := dashboardfeature.NewHandler(deps.API, appCfg.DefaultState(), appCfg.Location(), logger)
	if appCfg.ExportRateLimit > 0 {
		dashboardHandler.ExportLimiter = ratelimit.New(appCfg.ExportRateLimit, time.Minute, nil)
	}
	r.Mount("/", dashboardfeature.Routes(dashboardHandler))

	return r
}
