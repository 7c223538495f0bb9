package store

import (
	"context"
	"database/sql"
	"time"
)

type ReportsStore interface {
	// Insert stores a report with its findings. When a report with the same
	// title already exists for the user, the existing report is kept and
	// returned; the incoming one is discarded (first writer wins).
	Insert(ctx context.Context, userID string, report *AnalysisReport) (*AnalysisReport, error)
	Get(ctx context.Context, userID, reportID string) (*AnalysisReport, error)
	FindByTitle(ctx context.Context, userID, title string) (*AnalysisReport, error)
	List(ctx context.Context, userID string) ([]AnalysisReport, error)
	UpdateFindingStatus(ctx context.Context, userID, findingID string, status FindingStatus) error
	Delete(ctx context.Context, userID, reportID string) error
}

type reportsStore struct {
	db *sql.DB
}

func NewReportsStore(db *sql.DB) ReportsStore {
	return &reportsStore{db: db}
}

func (s *reportsStore) Insert(ctx context.Context, userID string, report *AnalysisReport) (*AnalysisReport, error) {
	existing, err := s.FindByTitle(ctx, userID, report.Title)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	if report.ID == "" {
		report.ID = newID()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO reports(id, user_id, title, resilience_score, critical_count, warning_count, checks_count, created_at)
		VALUES(?,?,?,?,?,?,?,?)`,
		report.ID, userID, report.Title, report.ResilienceScore,
		report.Summary.Critical, report.Summary.Warning, report.Summary.Checks, report.CreatedAt)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	for i := range report.Findings {
		f := &report.Findings[i]
		if f.ID == "" {
			f.ID = newID()
		}
		if f.Status == "" {
			f.Status = FindingActive
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO findings(id, report_id, position, title, severity, source_snippet, recommendation, status)
			VALUES(?,?,?,?,?,?,?,?)`,
			f.ID, report.ID, i, f.Title, string(f.Severity), f.SourceSnippet, f.Recommendation, string(f.Status))
		if err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *reportsStore) Get(ctx context.Context, userID, reportID string) (*AnalysisReport, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, resilience_score, critical_count, warning_count, checks_count, created_at
		FROM reports WHERE user_id=? AND id=?`, userID, reportID)
	return s.scanReport(ctx, row)
}

func (s *reportsStore) FindByTitle(ctx context.Context, userID, title string) (*AnalysisReport, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, resilience_score, critical_count, warning_count, checks_count, created_at
		FROM reports WHERE user_id=? AND title=?`, userID, title)
	return s.scanReport(ctx, row)
}

func (s *reportsStore) scanReport(ctx context.Context, row *sql.Row) (*AnalysisReport, error) {
	var r AnalysisReport
	if err := row.Scan(&r.ID, &r.Title, &r.ResilienceScore, &r.Summary.Critical, &r.Summary.Warning, &r.Summary.Checks, &r.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	findings, err := s.findingsFor(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	r.Findings = findings
	return &r, nil
}

func (s *reportsStore) findingsFor(ctx context.Context, reportID string) ([]Finding, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, severity, source_snippet, recommendation, status
		FROM findings WHERE report_id=? ORDER BY position`, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Finding
	for rows.Next() {
		var f Finding
		var sev, st string
		if err := rows.Scan(&f.ID, &f.Title, &sev, &f.SourceSnippet, &f.Recommendation, &st); err != nil {
			return nil, err
		}
		f.Severity = Severity(sev)
		f.Status = FindingStatus(st)
		res = append(res, f)
	}
	return res, rows.Err()
}

func (s *reportsStore) List(ctx context.Context, userID string) ([]AnalysisReport, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, resilience_score, critical_count, warning_count, checks_count, created_at
		FROM reports WHERE user_id=? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []AnalysisReport
	for rows.Next() {
		var r AnalysisReport
		if err := rows.Scan(&r.ID, &r.Title, &r.ResilienceScore, &r.Summary.Critical, &r.Summary.Warning, &r.Summary.Checks, &r.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range res {
		findings, err := s.findingsFor(ctx, res[i].ID)
		if err != nil {
			return nil, err
		}
		res[i].Findings = findings
	}
	return res, nil
}

func (s *reportsStore) UpdateFindingStatus(ctx context.Context, userID, findingID string, status FindingStatus) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE findings SET status=? WHERE id=? AND report_id IN (SELECT id FROM reports WHERE user_id=?)`,
		string(status), findingID, userID)
	return err
}

func (s *reportsStore) Delete(ctx context.Context, userID, reportID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM findings WHERE report_id=?`, reportID); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM reports WHERE user_id=? AND id=?`, userID, reportID); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
