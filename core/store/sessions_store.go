package store

import (
	"context"
	"database/sql"
	"time"
)

type SessionStore interface {
	SaveSession(ctx context.Context, sess *SessionRecord) error
	GetSession(ctx context.Context, id string) (*SessionRecord, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteAllForUser(ctx context.Context, userID string) error
	UpdateActivity(ctx context.Context, id string, now time.Time, extendBy time.Duration) error
}

type sessionsStore struct {
	db *sql.DB
}

func NewSessionsStore(db *sql.DB) SessionStore {
	return &sessionsStore{db: db}
}

func (s *sessionsStore) SaveSession(ctx context.Context, sess *SessionRecord) error {
	now := time.Now().UTC()
	if sess.ID == "" {
		sess.ID = newID()
	}
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = now
	}
	if sess.LastSeenAt.IsZero() {
		sess.LastSeenAt = sess.CreatedAt
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions(id, user_id, email, name, created_at, last_seen_at, expires_at, revoked)
		VALUES(?,?,?,?,?,?,?,?)`,
		sess.ID, sess.UserID, sess.Email, sess.Name, sess.CreatedAt, sess.LastSeenAt, sess.ExpiresAt, boolToInt(sess.Revoked))
	return err
}

func (s *sessionsStore) GetSession(ctx context.Context, id string) (*SessionRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, email, name, created_at, last_seen_at, expires_at, revoked
		FROM sessions WHERE id=?`, id)
	var sr SessionRecord
	var revoked int
	if err := row.Scan(&sr.ID, &sr.UserID, &sr.Email, &sr.Name, &sr.CreatedAt, &sr.LastSeenAt, &sr.ExpiresAt, &revoked); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	sr.Revoked = revoked == 1
	if sr.Revoked {
		return nil, nil
	}
	if time.Now().After(sr.ExpiresAt) {
		_ = s.DeleteSession(ctx, id)
		return nil, nil
	}
	return &sr, nil
}

func (s *sessionsStore) DeleteSession(ctx context.Context, id string) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `UPDATE sessions SET revoked=1, expires_at=? WHERE id=?`, now, id)
	return err
}

func (s *sessionsStore) DeleteAllForUser(ctx context.Context, userID string) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `UPDATE sessions SET revoked=1, expires_at=? WHERE user_id=?`, now, userID)
	return err
}

func (s *sessionsStore) UpdateActivity(ctx context.Context, id string, now time.Time, extendBy time.Duration) error {
	_, err := s.db.ExecContext(ctx, `UPDATE sessions SET last_seen_at=?, expires_at=? WHERE id=? AND revoked=0`, now, now.Add(extendBy), id)
	return err
}
