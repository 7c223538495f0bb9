package handlers

import (
	"net/http"
	"strconv"

	"vesta/core/store"
	"vesta/core/utils"
)

type AuditHandler struct {
	logger *utils.Logger
}

func NewAuditHandler(logger *utils.Logger) *AuditHandler {
	return &AuditHandler{logger: logger}
}

func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	ws := WorkspaceFrom(r)
	records := ws.Nav.AuditLogs(r.Context(), limit)
	if records == nil {
		records = []store.AuditRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}
