package handlers

import (
	"net/http"
	"strings"

	"vesta/core/utils"
)

// AnalysisHandler starts the two asynchronous engine runs. Both return the
// in-progress render instruction immediately; completion lands in the
// workspace and shows up on the next poll of the view.
type AnalysisHandler struct {
	metrics *Metrics
	logger  *utils.Logger
}

func NewAnalysisHandler(metrics *Metrics, logger *utils.Logger) *AnalysisHandler {
	return &AnalysisHandler{metrics: metrics, logger: logger}
}

func (h *AnalysisHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "document is empty")
		return
	}
	ws := WorkspaceFrom(r)
	ws.Nav.SetPlanContent(req.Content)
	ws.Nav.StartAnalysis(req.Content)
	h.metrics.Analyses.Inc()
	renderView(w, ws)
}

func (h *AnalysisHandler) Improve(w http.ResponseWriter, r *http.Request) {
	ws := WorkspaceFrom(r)
	if ws.Nav.ActiveReport() == nil || ws.Nav.PlanContent() == "" {
		writeError(w, http.StatusConflict, "no analyzed plan to improve")
		return
	}
	ws.Nav.StartImprovement()
	h.metrics.Improvements.Inc()
	renderView(w, ws)
}
