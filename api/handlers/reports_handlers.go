package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"vesta/core/store"
	"vesta/core/utils"
)

type ReportsHandler struct {
	reports store.ReportsStore
	logger  *utils.Logger
}

func NewReportsHandler(reports store.ReportsStore, logger *utils.Logger) *ReportsHandler {
	return &ReportsHandler{reports: reports, logger: logger}
}

func (h *ReportsHandler) List(w http.ResponseWriter, r *http.Request) {
	ws := WorkspaceFrom(r)
	reports := ws.Nav.Reports(r.Context())
	if reports == nil {
		reports = []store.AnalysisReport{}
	}
	writeJSON(w, http.StatusOK, reports)
}

// Open loads a stored report into the workspace and navigates to it. An
// unknown id still navigates; the report screen renders its empty fallback.
func (h *ReportsHandler) Open(w http.ResponseWriter, r *http.Request) {
	ws := WorkspaceFrom(r)
	id := chi.URLParam(r, "id")
	report, err := h.reports.Get(r.Context(), ws.User.ID, id)
	if err != nil {
		h.logger.Errorf("load report %s: %v", id, err)
	}
	ws.Nav.OpenReport(report)
	renderView(w, ws)
}

// UpdateFinding annotates a finding's status. The report body is immutable;
// resolving or dismissing never re-analyzes or rescores.
func (h *ReportsHandler) UpdateFinding(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status store.FindingStatus `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}
	switch req.Status {
	case store.FindingActive, store.FindingResolved, store.FindingDismissed:
	default:
		writeError(w, http.StatusBadRequest, "unknown finding status")
		return
	}
	ws := WorkspaceFrom(r)
	findingID := chi.URLParam(r, "findingID")
	if err := h.reports.UpdateFindingStatus(r.Context(), ws.User.ID, findingID, req.Status); err != nil {
		h.logger.Errorf("update finding %s: %v", findingID, err)
		writeError(w, http.StatusInternalServerError, "update failed")
		return
	}
	// Refresh the in-memory copy so the next render reflects the annotation.
	if active := ws.Nav.ActiveReport(); active != nil {
		if fresh, err := h.reports.Get(r.Context(), ws.User.ID, active.ID); err == nil && fresh != nil {
			ws.Nav.OpenReport(fresh)
		}
	}
	renderView(w, ws)
}
