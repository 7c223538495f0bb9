package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"vesta/core/nav"
	"vesta/core/store"
	"vesta/core/tour"
)

// Workspace is one authenticated client's live state: the navigation
// controller that owns its screen and payloads, and the tour controller
// layered on top. The session middleware resolves it and puts it on the
// request context.
type Workspace struct {
	SessionID string
	User      *store.User
	Nav       *nav.Controller
	Tour      *tour.Controller
}

// Registry hands out the workspace bound to a session, creating it on first
// use, and tears it down when the session ends.
type Registry interface {
	Acquire(ctx context.Context, sess *store.SessionRecord, user *store.User) *Workspace
	Release(sessionID string)
}

type ctxKey int

const workspaceKey ctxKey = iota

func WithWorkspace(ctx context.Context, ws *Workspace) context.Context {
	return context.WithValue(ctx, workspaceKey, ws)
}

// WorkspaceFrom returns the request's workspace, or nil outside a session.
func WorkspaceFrom(r *http.Request) *Workspace {
	ws, _ := r.Context().Value(workspaceKey).(*Workspace)
	return ws
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// renderView is the one way every state-changing endpoint answers: the full
// render instruction after the change, sample data substituted while the
// tour is active.
func renderView(w http.ResponseWriter, ws *Workspace) {
	writeJSON(w, http.StatusOK, ws.Tour.Decorate(ws.Nav.View()))
}
