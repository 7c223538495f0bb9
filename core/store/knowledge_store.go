package store

import (
	"context"
	"database/sql"
	"time"
)

type KnowledgeStore interface {
	Add(ctx context.Context, src *KnowledgeSource) error
	List(ctx context.Context) ([]KnowledgeSource, error)
	ListByStatus(ctx context.Context, status SourceStatus) ([]KnowledgeSource, error)
	SetStatus(ctx context.Context, id string, status SourceStatus) error
	Delete(ctx context.Context, id string) error
}

type knowledgeStore struct {
	db *sql.DB
}

func NewKnowledgeStore(db *sql.DB) KnowledgeStore {
	return &knowledgeStore{db: db}
}

func (s *knowledgeStore) Add(ctx context.Context, src *KnowledgeSource) error {
	if src.ID == "" {
		src.ID = newID()
	}
	if src.AddedAt.IsZero() {
		src.AddedAt = time.Now().UTC()
	}
	if src.Status == "" {
		src.Status = SourceCrawling
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO knowledge_sources(id, url, status, added_at)
		VALUES(?,?,?,?)`, src.ID, src.URL, string(src.Status), src.AddedAt)
	return err
}

func (s *knowledgeStore) List(ctx context.Context) ([]KnowledgeSource, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, status, added_at FROM knowledge_sources ORDER BY added_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSources(rows)
}

func (s *knowledgeStore) ListByStatus(ctx context.Context, status SourceStatus) ([]KnowledgeSource, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, status, added_at FROM knowledge_sources WHERE status=? ORDER BY added_at DESC`, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSources(rows)
}

func scanSources(rows *sql.Rows) ([]KnowledgeSource, error) {
	var res []KnowledgeSource
	for rows.Next() {
		var src KnowledgeSource
		var st string
		if err := rows.Scan(&src.ID, &src.URL, &st, &src.AddedAt); err != nil {
			return nil, err
		}
		src.Status = SourceStatus(st)
		res = append(res, src)
	}
	return res, rows.Err()
}

func (s *knowledgeStore) SetStatus(ctx context.Context, id string, status SourceStatus) error {
	_, err := s.db.ExecContext(ctx, `UPDATE knowledge_sources SET status=? WHERE id=?`, string(status), id)
	return err
}

func (s *knowledgeStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM knowledge_sources WHERE id=?`, id)
	return err
}
