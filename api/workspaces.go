package api

import (
	"context"
	"sync"

	"vesta/api/handlers"
	"vesta/config"
	"vesta/core/nav"
	"vesta/core/store"
	"vesta/core/tour"
	"vesta/core/utils"
)

// workspaceRegistry holds one workspace per live session. Controllers are
// created lazily on the first request a session makes after process start,
// which is also how a persisted session resumes straight onto the dashboard.
type workspaceRegistry struct {
	cfg     *config.AppConfig
	navDeps nav.Deps
	logger  *utils.Logger

	mu         sync.Mutex
	workspaces map[string]*handlers.Workspace
}

func newWorkspaceRegistry(cfg *config.AppConfig, navDeps nav.Deps, logger *utils.Logger) *workspaceRegistry {
	return &workspaceRegistry{
		cfg:        cfg,
		navDeps:    navDeps,
		logger:     logger,
		workspaces: map[string]*handlers.Workspace{},
	}
}

func (reg *workspaceRegistry) Acquire(ctx context.Context, sess *store.SessionRecord, user *store.User) *handlers.Workspace {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if ws, ok := reg.workspaces[sess.ID]; ok {
		return ws
	}
	navc := nav.NewController(reg.navDeps)
	navc.Initialize(user)
	ws := &handlers.Workspace{
		SessionID: sess.ID,
		User:      user,
		Nav:       navc,
		Tour:      tour.NewController(navc, reg.navDeps.Prefs, reg.cfg.Tour, reg.logger),
	}
	// Every new workspace arms the welcome prompt, so a persisted session
	// resuming after a restart still gets first-run onboarding until the
	// completion flag is on record.
	ws.Tour.ScheduleWelcome(ctx, user.ID)
	reg.workspaces[sess.ID] = ws
	return ws
}

func (reg *workspaceRegistry) Release(sessionID string) {
	reg.mu.Lock()
	ws, ok := reg.workspaces[sessionID]
	delete(reg.workspaces, sessionID)
	reg.mu.Unlock()
	if ok {
		ws.Tour.Close()
	}
}
