package handlers

import (
	"fmt"
	"net/http"

	"vesta/core/analysis"
	"vesta/core/export"
	"vesta/core/utils"
)

type ExportHandler struct {
	metrics *Metrics
	logger  *utils.Logger
}

func NewExportHandler(metrics *Metrics, logger *utils.Logger) *ExportHandler {
	return &ExportHandler{metrics: metrics, logger: logger}
}

// Download serves the workspace's improved plan in the requested format.
func (h *ExportHandler) Download(w http.ResponseWriter, r *http.Request) {
	format := export.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = export.FormatTxt
	}
	if !format.Valid() {
		writeError(w, http.StatusBadRequest, "unsupported export format")
		return
	}
	ws := WorkspaceFrom(r)
	content := ws.Nav.ImprovedContent()
	if content == "" {
		writeError(w, http.StatusConflict, "no improved plan to export")
		return
	}
	title := analysis.TitleFor(ws.Nav.PlanContent())
	if report := ws.Nav.ActiveReport(); report != nil {
		title = report.Title
	}
	data, err := export.Encode(content, format)
	if err != nil {
		h.logger.Errorf("export %s: %v", format, err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	h.metrics.Exports.WithLabelValues(string(format)).Inc()
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(title, format)))
	_, _ = w.Write(data)
}
