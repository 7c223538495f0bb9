package handlers

import (
	"net/http"

	"vesta/core/store"
	"vesta/core/utils"
)

type SettingsHandler struct {
	prefs  store.PrefsStore
	logger *utils.Logger
}

func NewSettingsHandler(prefs store.PrefsStore, logger *utils.Logger) *SettingsHandler {
	return &SettingsHandler{prefs: prefs, logger: logger}
}

func (h *SettingsHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	ws := WorkspaceFrom(r)
	theme, err := h.prefs.Get(r.Context(), ws.User.ID, store.PrefTheme)
	if err != nil {
		h.logger.Errorf("read theme: %v", err)
	}
	if theme == "" {
		theme = "light"
	}
	writeJSON(w, http.StatusOK, map[string]string{"theme": theme})
}

func (h *SettingsHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}
	if req.Theme != "light" && req.Theme != "dark" {
		writeError(w, http.StatusBadRequest, "unknown theme")
		return
	}
	ws := WorkspaceFrom(r)
	if err := h.prefs.Set(r.Context(), ws.User.ID, store.PrefTheme, req.Theme); err != nil {
		h.logger.Errorf("save theme: %v", err)
		writeError(w, http.StatusInternalServerError, "could not save theme")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"theme": req.Theme})
}
