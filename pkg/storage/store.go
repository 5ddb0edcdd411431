package storage

import (
	"context"
	"time"

	"infoprom/poaudit/pkg/compliance"
)

// StoredVerdict is a persisted verdict plus its run context.
type StoredVerdict struct {
	// RunID identifies the batch run that produced the verdict.
	RunID string `json:"run_id"`

	// CaseID, Category, Compliant and Violations mirror the verdict.
	CaseID     string   `json:"case_id"`
	Category   string   `json:"category"`
	Compliant  bool     `json:"compliant"`
	Violations []string `json:"violations,omitempty"`

	// EvaluatedAt is the verdict timestamp.
	EvaluatedAt time.Time `json:"evaluated_at"`
}

// Query filters stored verdicts. Zero-valued fields match everything.
type Query struct {
	// RunID restricts results to one batch run.
	RunID string

	// Category restricts results to one procurement flow.
	Category string

	// Compliant restricts results by compliance result when non-nil.
	Compliant *bool

	// Limit caps the number of results; zero means no cap.
	Limit int
}

// CategoryCount is one row of a per-category verdict count summary.
type CategoryCount struct {
	Category     string `json:"category"`
	Total        int    `json:"total_cases"`
	Compliant    int    `json:"compliant_cases"`
	NonCompliant int    `json:"non_compliant_cases"`
}

// Store is the verdict persistence interface.
type Store interface {
	// StoreVerdicts persists all verdicts under the given run ID.
	StoreVerdicts(ctx context.Context, runID string, verdicts []*compliance.Verdict) error

	// QueryVerdicts returns the verdicts matching the query, ordered by
	// category then case ID.
	QueryVerdicts(ctx context.Context, q *Query) ([]*StoredVerdict, error)

	// Summary returns per-category counts for one run, ordered by
	// category.
	Summary(ctx context.Context, runID string) ([]CategoryCount, error)

	// Runs returns the known run IDs, most recent first.
	Runs(ctx context.Context) ([]string, error)

	// Close releases the backend.
	Close() error
}

// NewStoredVerdict converts an engine verdict for persistence.
func NewStoredVerdict(runID string, v *compliance.Verdict) *StoredVerdict {
	return &StoredVerdict{
		RunID:       runID,
		CaseID:      v.CaseID,
		Category:    v.Category.String(),
		Compliant:   v.Compliant,
		Violations:  append([]string(nil), v.Violations...),
		EvaluatedAt: v.EvaluatedAt,
	}
}
