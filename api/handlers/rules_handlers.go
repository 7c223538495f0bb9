package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"vesta/core/store"
	"vesta/core/utils"
)

// RulesHandler manages dismissal rules: finding titles the analysis engine
// suppresses on future runs.
type RulesHandler struct {
	logger *utils.Logger
}

func NewRulesHandler(logger *utils.Logger) *RulesHandler {
	return &RulesHandler{logger: logger}
}

func (h *RulesHandler) List(w http.ResponseWriter, r *http.Request) {
	ws := WorkspaceFrom(r)
	rules := ws.Nav.DismissalRules(r.Context())
	if rules == nil {
		rules = []store.DismissalRule{}
	}
	writeJSON(w, http.StatusOK, rules)
}

func (h *RulesHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title  string `json:"title"`
		Reason string `json:"reason"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "rule title is required")
		return
	}
	ws := WorkspaceFrom(r)
	rule := ws.Nav.AddDismissalRule(r.Context(), req.Title, strings.TrimSpace(req.Reason))
	if rule == nil {
		writeError(w, http.StatusInternalServerError, "could not add rule")
		return
	}
	writeJSON(w, http.StatusCreated, rule)
}

func (h *RulesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ws := WorkspaceFrom(r)
	ws.Nav.DeleteDismissalRule(r.Context(), chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
