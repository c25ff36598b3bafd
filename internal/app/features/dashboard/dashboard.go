// internal/app/features/dashboard/dashboard.go
package dashboard

import (
	"context"
	"net/http"

	"github.com/dalemusser/floodrelief/internal/app/system/fetcher"
	"github.com/dalemusser/floodrelief/internal/app/system/querystate"
	"github.com/dalemusser/floodrelief/internal/app/system/timeouts"
	"github.com/dalemusser/floodrelief/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ServeDashboard renders one page of requests and/or contributions.
// GET /
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Fetch(), h.Log, "dashboard fetch")
	defer cancel()

	ctrl, snap := h.load(ctx, r)
	defer ctrl.Close()

	// A page past the end (stale link, shrinking result set) goes to the
	// last page that exists.
	if snap.Err == nil && ctrl.State().Page > ctrl.TotalPages() {
		ctrl.LastPage()
		http.Redirect(w, r, ctrl.State().Href(dashboardPath), http.StatusSeeOther)
		return
	}

	data := buildDashboard(ctrl, snap, h.Loc)
	data.BaseVM = viewdata.NewBaseVM(r, "Relief Dashboard")

	templates.Render(w, r, "dashboard", data)
}

// load parses the query state from the URL and runs the fetch it implies.
// Totals from a successful fetch are fed back to the controller so that
// pagination can be computed.
func (h *Handler) load(ctx context.Context, r *http.Request) (*querystate.Controller, fetcher.Snapshot) {
	state := querystate.ParseRequest(r, h.Defaults)
	ctrl := querystate.NewController(state, querystate.Options{Clock: h.Clock, Log: h.Log})

	orch := fetcher.New(h.API, h.Log)
	snap := orch.Fetch(ctx, ctrl.Query())
	if snap.Err != nil || snap.Data == nil {
		ctrl.ObserveTotals(nil)
		h.Log.Warn("dashboard fetch failed",
			zap.String("tab", string(state.Tab)),
			zap.Int("page", state.Page),
			zap.Error(snap.Err))
		return ctrl, snap
	}
	ctrl.ObserveTotals(&snap.Data.Meta)
	return ctrl, snap
}
