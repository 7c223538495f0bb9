package handlers

import (
	"net/http"

	"vesta/core/nav"
	"vesta/core/utils"
)

// StateHandler exposes the workspace's render instruction and the two plain
// state mutations: navigation and plan editing.
type StateHandler struct {
	logger *utils.Logger
}

func NewStateHandler(logger *utils.Logger) *StateHandler {
	return &StateHandler{logger: logger}
}

// View returns the current render instruction. Clients poll it while the
// in-progress screens reveal their step captions.
func (h *StateHandler) View(w http.ResponseWriter, r *http.Request) {
	renderView(w, WorkspaceFrom(r))
}

func (h *StateHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Screen nav.Screen `json:"screen"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}
	if !req.Screen.Valid() {
		writeError(w, http.StatusBadRequest, "unknown screen")
		return
	}
	ws := WorkspaceFrom(r)
	ws.Nav.NavigateTo(req.Screen)
	renderView(w, ws)
}

func (h *StateHandler) SetPlan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}
	ws := WorkspaceFrom(r)
	ws.Nav.SetPlanContent(req.Content)
	renderView(w, ws)
}
