package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"vesta/core/store"
	"vesta/core/utils"
)

type KnowledgeHandler struct {
	logger *utils.Logger
}

func NewKnowledgeHandler(logger *utils.Logger) *KnowledgeHandler {
	return &KnowledgeHandler{logger: logger}
}

func (h *KnowledgeHandler) List(w http.ResponseWriter, r *http.Request) {
	ws := WorkspaceFrom(r)
	sources := ws.Nav.KnowledgeSources(r.Context())
	if sources == nil {
		sources = []store.KnowledgeSource{}
	}
	writeJSON(w, http.StatusOK, sources)
}

func (h *KnowledgeHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}
	req.URL = strings.TrimSpace(req.URL)
	if err := utils.ValidateSourceURL(req.URL); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ws := WorkspaceFrom(r)
	src := ws.Nav.AddKnowledgeSource(r.Context(), req.URL)
	if src == nil {
		writeError(w, http.StatusInternalServerError, "could not add source")
		return
	}
	writeJSON(w, http.StatusCreated, src)
}

func (h *KnowledgeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ws := WorkspaceFrom(r)
	ws.Nav.DeleteKnowledgeSource(r.Context(), chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
