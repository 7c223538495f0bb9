package auth

import (
	"context"
	"time"

	"vesta/config"
	"vesta/core/store"
	"vesta/core/utils"
)

// SessionManager issues and validates persisted login sessions. A session
// resuming on startup is what sends a returning user straight to the
// dashboard instead of the login screen.
type SessionManager struct {
	sessions store.SessionStore
	cfg      *config.AppConfig
	logger   *utils.Logger
}

func NewSessionManager(sessions store.SessionStore, cfg *config.AppConfig, logger *utils.Logger) *SessionManager {
	return &SessionManager{sessions: sessions, cfg: cfg, logger: logger}
}

// Issue creates a session keyed by the SHA-256 of a random token. The raw
// token goes into the cookie; only its hash is persisted, so a leaked
// sessions table does not hand out live cookies.
func (m *SessionManager) Issue(ctx context.Context, user *store.User) (*store.SessionRecord, error) {
	token, err := utils.RandString(32)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	sess := &store.SessionRecord{
		ID:         utils.Sha256Hex([]byte(token)),
		Token:      token,
		UserID:     user.ID,
		Email:      user.Email,
		Name:       user.Name,
		CreatedAt:  now,
		LastSeenAt: now,
		ExpiresAt:  now.Add(m.cfg.SessionTTL),
	}
	if err := m.sessions.SaveSession(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Resolve returns the live session for the cookie token, or nil when it is
// missing, revoked, or expired.
func (m *SessionManager) Resolve(ctx context.Context, token string) (*store.SessionRecord, error) {
	if token == "" {
		return nil, nil
	}
	return m.sessions.GetSession(ctx, utils.Sha256Hex([]byte(token)))
}

func (m *SessionManager) Touch(ctx context.Context, id string) {
	if err := m.sessions.UpdateActivity(ctx, id, time.Now().UTC(), m.cfg.SessionTTL); err != nil && m.logger != nil {
		m.logger.Errorf("session touch: %v", err)
	}
}

func (m *SessionManager) Revoke(ctx context.Context, id string) error {
	return m.sessions.DeleteSession(ctx, id)
}
