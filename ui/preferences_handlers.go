package ui

import (
	"encoding/json"
	"net/http"

	"modboard/domain/core"
	"modboard/internal/preferences"
)

type themeBody struct {
	Theme preferences.ThemeMode `json:"theme"`
}

func (a *App) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, themeBody{Theme: a.svc.Theme.Theme()})
}

func (a *App) handlePutTheme(w http.ResponseWriter, r *http.Request) {
	var body themeBody
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&body); err != nil {
		a.writeError(w, r, core.NewValidationError("body", err.Error()))
		return
	}
	if err := a.svc.Theme.SetTheme(body.Theme); err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, themeBody{Theme: a.svc.Theme.Theme()})
}

func (a *App) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	mode, err := a.svc.Theme.ToggleTheme()
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, themeBody{Theme: mode})
}
