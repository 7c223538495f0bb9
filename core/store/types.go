package store

import "time"

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type SessionRecord struct {
	ID         string    `json:"id"`
	Token      string    `json:"-"` // raw cookie token, never persisted
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
	ExpiresAt  time.Time `json:"expires_at"`
	Revoked    bool      `json:"-"`
}

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
)

type FindingStatus string

const (
	FindingActive    FindingStatus = "active"
	FindingResolved  FindingStatus = "resolved"
	FindingDismissed FindingStatus = "dismissed"
)

type Finding struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Severity       Severity      `json:"severity"`
	SourceSnippet  string        `json:"sourceSnippet"`
	Recommendation string        `json:"recommendation"`
	Status         FindingStatus `json:"status"`
}

type ReportSummary struct {
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Checks   int `json:"checks"`
}

// AnalysisReport is immutable once produced by the analysis engine; only the
// per-finding review status may change afterwards.
type AnalysisReport struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	ResilienceScore int           `json:"resilienceScore"`
	Findings        []Finding     `json:"findings"`
	Summary         ReportSummary `json:"summary"`
	CreatedAt       time.Time     `json:"created_at"`
}

type SourceStatus string

const (
	SourceActive   SourceStatus = "active"
	SourceCrawling SourceStatus = "crawling"
)

type KnowledgeSource struct {
	ID      string       `json:"id"`
	URL     string       `json:"url"`
	Status  SourceStatus `json:"status"`
	AddedAt time.Time    `json:"added_at"`
}

type DismissalRule struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

type AuditRecord struct {
	ID        string    `json:"id"`
	UserEmail string    `json:"user_email"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}
