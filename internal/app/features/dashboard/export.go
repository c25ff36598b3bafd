// internal/app/features/dashboard/export.go
package dashboard

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/dalemusser/floodrelief/internal/app/system/csvutil"
	"github.com/dalemusser/floodrelief/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeCSV downloads the current page of the active tab as a CSV file.
// GET /export.csv
func (h *Handler) ServeCSV(w http.ResponseWriter, r *http.Request) {
	tbl, ok := h.exportTable(w, r)
	if !ok {
		return
	}

	filename := csvutil.FileName(tbl.Kind, h.Clock.Now().In(h.Loc))
	w.Header().Set("Content-Type", csvutil.ContentTypeCSV)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(filename)))

	if err := tbl.WriteCSV(w); err != nil {
		h.Log.Warn("csv export write failed", zap.String("file", filename), zap.Error(err))
		return
	}
	h.Log.Info("csv export", zap.String("file", filename), zap.Int("rows", len(tbl.Rows)))
}

// ServeTSV returns the current page as tab-separated text, the same rows
// the copy-for-spreadsheet action places on the clipboard.
// GET /export.tsv
func (h *Handler) ServeTSV(w http.ResponseWriter, r *http.Request) {
	tbl, ok := h.exportTable(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", csvutil.ContentTypeTSV)
	_, _ = io.WriteString(w, tbl.TSV())
}

// exportTable fetches the page described by the URL and builds its table.
// On failure it writes a 502 with the upstream message and reports false.
func (h *Handler) exportTable(w http.ResponseWriter, r *http.Request) (csvutil.Table, bool) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Export(), h.Log, "export fetch")
	defer cancel()

	ctrl, snap := h.load(ctx, r)
	defer ctrl.Close()

	if snap.Err != nil || snap.Data == nil {
		msg := snap.Message()
		if msg == "" {
			msg = "export failed"
		}
		http.Error(w, msg, http.StatusBadGateway)
		return csvutil.Table{}, false
	}
	return csvutil.TableFor(string(ctrl.State().Tab), snap.Data, h.Loc), true
}
