package store

import (
	"context"
	"database/sql"
	"time"
)

type AuditStore interface {
	Log(ctx context.Context, userEmail, action, details string) error
	List(ctx context.Context, limit int) ([]AuditRecord, error)
	ListSince(ctx context.Context, since time.Time, limit int) ([]AuditRecord, error)
}

type auditStore struct {
	db *sql.DB
}

func NewAuditStore(db *sql.DB) AuditStore {
	return &auditStore{db: db}
}

func (s *auditStore) Log(ctx context.Context, userEmail, action, details string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_log(id, user_email, action, details, created_at)
		VALUES(?,?,?,?,?)`, newID(), userEmail, action, details, time.Now().UTC())
	return err
}

func (s *auditStore) List(ctx context.Context, limit int) ([]AuditRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_email, action, details, created_at
		FROM audit_log ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAuditRows(rows)
}

func (s *auditStore) ListSince(ctx context.Context, since time.Time, limit int) ([]AuditRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_email, action, details, created_at
		FROM audit_log WHERE created_at>=? ORDER BY created_at DESC, id DESC LIMIT ?`, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAuditRows(rows)
}

func scanAuditRows(rows *sql.Rows) ([]AuditRecord, error) {
	var res []AuditRecord
	for rows.Next() {
		var r AuditRecord
		if err := rows.Scan(&r.ID, &r.UserEmail, &r.Action, &r.Details, &r.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, rows.Err()
}
