package ui

import (
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"modboard/domain/core"
	"modboard/domain/stats"
	"modboard/internal/report"
)

// handleStats selects a period for the calling client. Concurrent
// selections of the same client resolve to the latest one; its earlier
// requests get 409 SUPERSEDED. Other clients are unaffected.
func (a *App) handleStats(w http.ResponseWriter, r *http.Request) {
	period, err := stats.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	dashboard, err := a.svc.Loaders.For(clientID(w, r)).Load(r.Context(), period)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

func (a *App) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := report.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	var data stats.ExportData
	if raw := r.URL.Query().Get("period"); raw != "" {
		period, err := stats.ParsePeriod(raw)
		if err != nil {
			a.writeError(w, r, err)
			return
		}
		dashboard, err := a.svc.Dashboards.Load(r.Context(), period)
		if err != nil {
			a.writeError(w, r, err)
			return
		}
		data = dashboard.Export
	} else {
		dashboard, ok := a.svc.Loaders.For(clientID(w, r)).Current()
		if !ok {
			a.writeError(w, r, fmt.Errorf("%w: no period selected yet", core.ErrNoData))
			return
		}
		data = dashboard.Export
	}

	rep, err := a.svc.Exports.Export(r.Context(), format, data)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	// The body is complete before any header goes out.
	w.Header().Set("Content-Type", rep.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": rep.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(rep.Body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(rep.Body)
}
