package store

import (
	"context"
	"database/sql"
	"time"
)

// Preference keys. The tour-completed flag is what makes the tour's Ended
// state sticky across restarts.
const (
	PrefTourCompleted = "tour.completed"
	PrefTheme         = "theme"
)

type PrefsStore interface {
	Get(ctx context.Context, userID, key string) (string, error)
	Set(ctx context.Context, userID, key, value string) error
}

type prefsStore struct {
	db *sql.DB
}

func NewPrefsStore(db *sql.DB) PrefsStore {
	return &prefsStore{db: db}
}

func (s *prefsStore) Get(ctx context.Context, userID, key string) (string, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT pref_value FROM preferences WHERE user_id=? AND pref_key=?`, userID, key)
	var v string
	if err := row.Scan(&v); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return v, nil
}

func (s *prefsStore) Set(ctx context.Context, userID, key, value string) error {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE preferences SET pref_value=?, updated_at=? WHERE user_id=? AND pref_key=?`,
		value, now, userID, key)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO preferences(user_id, pref_key, pref_value, updated_at)
		VALUES(?,?,?,?)`, userID, key, value, now)
	return err
}
