// internal/app/features/dashboard/routes.go
package dashboard

import (
	"github.com/dalemusser/floodrelief/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Mount-relative paths. Links rendered by the dashboard assume it is
// mounted at the site root.
const (
	dashboardPath = "/"
	csvPath       = "/export.csv"
	tsvPath       = "/export.tsv"
)

// Routes wires the dashboard and its export downloads. Exports each cost
// an upstream API call and are throttled when the handler has a limiter.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get(dashboardPath, h.ServeDashboard)
	r.Group(func(r chi.Router) {
		if h.ExportLimiter != nil {
			r.Use(ratelimit.Middleware(h.ExportLimiter, h.Log))
		}
		r.Get(csvPath, h.ServeCSV)
		r.Get(tsvPath, h.ServeTSV)
	})
	return r
}
