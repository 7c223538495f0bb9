package store

import (
	"context"
	"database/sql"
	"time"
)

type RulesStore interface {
	Add(ctx context.Context, rule *DismissalRule) error
	List(ctx context.Context) ([]DismissalRule, error)
	Delete(ctx context.Context, id string) error
}

type rulesStore struct {
	db *sql.DB
}

func NewRulesStore(db *sql.DB) RulesStore {
	return &rulesStore{db: db}
}

func (s *rulesStore) Add(ctx context.Context, rule *DismissalRule) error {
	if rule.ID == "" {
		rule.ID = newID()
	}
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO dismissal_rules(id, title, reason, created_at)
		VALUES(?,?,?,?)`, rule.ID, rule.Title, rule.Reason, rule.CreatedAt)
	return err
}

func (s *rulesStore) List(ctx context.Context) ([]DismissalRule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, reason, created_at FROM dismissal_rules ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []DismissalRule
	for rows.Next() {
		var r DismissalRule
		if err := rows.Scan(&r.ID, &r.Title, &r.Reason, &r.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, rows.Err()
}

func (s *rulesStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM dismissal_rules WHERE id=?`, id)
	return err
}
