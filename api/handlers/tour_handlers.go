package handlers

import (
	"net/http"

	"vesta/core/tour"
	"vesta/core/utils"
)

// TourHandler drives the guided tour. Movement endpoints answer with both
// the tour snapshot and the (decorated) render instruction, since advancing
// a step can force navigation.
type TourHandler struct {
	logger *utils.Logger
}

func NewTourHandler(logger *utils.Logger) *TourHandler {
	return &TourHandler{logger: logger}
}

type tourResponse struct {
	Tour tour.State  `json:"tour"`
	View interface{} `json:"view"`
}

func (h *TourHandler) respond(w http.ResponseWriter, ws *Workspace) {
	writeJSON(w, http.StatusOK, tourResponse{
		Tour: ws.Tour.Snapshot(),
		View: ws.Tour.Decorate(ws.Nav.View()),
	})
}

func (h *TourHandler) State(w http.ResponseWriter, r *http.Request) {
	h.respond(w, WorkspaceFrom(r))
}

func (h *TourHandler) Start(w http.ResponseWriter, r *http.Request) {
	ws := WorkspaceFrom(r)
	ws.Tour.Start()
	h.respond(w, ws)
}

func (h *TourHandler) Next(w http.ResponseWriter, r *http.Request) {
	ws := WorkspaceFrom(r)
	ws.Tour.Next(r.Context())
	h.respond(w, ws)
}

func (h *TourHandler) Back(w http.ResponseWriter, r *http.Request) {
	ws := WorkspaceFrom(r)
	ws.Tour.Back()
	h.respond(w, ws)
}

func (h *TourHandler) End(w http.ResponseWriter, r *http.Request) {
	ws := WorkspaceFrom(r)
	ws.Tour.End(r.Context())
	h.respond(w, ws)
}

// Placement computes where the overlay tooltip goes for a measured target.
// The client reports the box it measured; the geometry decision stays on
// this side so every client agrees on it.
func (h *TourHandler) Placement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Target         tour.Rect `json:"target"`
		TooltipHeight  float64   `json:"tooltipHeight"`
		ViewportHeight float64   `json:"viewportHeight"`
		Margin         *float64  `json:"margin"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}
	margin := tour.DefaultMargin
	if req.Margin != nil {
		margin = *req.Margin
	}
	writeJSON(w, http.StatusOK, tour.PlaceTooltip(req.Target, req.TooltipHeight, req.ViewportHeight, margin))
}
