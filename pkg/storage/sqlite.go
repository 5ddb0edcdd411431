package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"infoprom/poaudit/pkg/compliance"
)

// SQLiteConfig contains configuration for the SQLite verdict store.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds.
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:        "data/verdicts.db",
		BusyTimeout: 5 * time.Second,
	}
}

// SQLiteStore implements Store using an embedded SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStore opens (creating if necessary) the verdict database and
// initializes the schema.
func NewSQLiteStore(config *SQLiteConfig) (*SQLiteStore, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	if config.BusyTimeout <= 0 {
		config.BusyTimeout = 5 * time.Second
	}

	if dir := filepath.Dir(config.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory %q: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open verdict database %q: %w", config.Path, err)
	}

	s := &SQLiteStore{
		db:     db,
		config: config,
		logger: slog.Default().With("component", "storage.sqlite"),
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", config.BusyTimeout.Milliseconds())); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	s.logger.Debug("verdict database opened", "path", config.Path)
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to initialize verdict schema: %w", err)
	}
	return nil
}

// StoreVerdicts persists all verdicts under the run ID in one transaction.
func (s *SQLiteStore) StoreVerdicts(ctx context.Context, runID string, verdicts []*compliance.Verdict) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO verdicts (run_id, case_id, category, compliant, violations, evaluated_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, v := range verdicts {
		violations, err := json.Marshal(v.Violations)
		if err != nil {
			return fmt.Errorf("failed to encode violations for case %q: %w", v.CaseID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			runID,
			v.CaseID,
			v.Category.String(),
			v.Compliant,
			string(violations),
			v.EvaluatedAt.UTC().Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("failed to insert verdict for case %q: %w", v.CaseID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit verdicts: %w", err)
	}
	s.logger.Debug("verdicts stored", "run_id", runID, "count", len(verdicts))
	return nil
}

// QueryVerdicts returns the verdicts matching the query, ordered by
// category then case ID.
func (s *SQLiteStore) QueryVerdicts(ctx context.Context, q *Query) ([]*StoredVerdict, error) {
	if q == nil {
		q = &Query{}
	}

	query := `SELECT run_id, case_id, category, compliant, violations, evaluated_at FROM verdicts WHERE 1=1`
	var args []any
	if q.RunID != "" {
		query += " AND run_id = ?"
		args = append(args, q.RunID)
	}
	if q.Category != "" {
		query += " AND category = ?"
		args = append(args, q.Category)
	}
	if q.Compliant != nil {
		query += " AND compliant = ?"
		args = append(args, *q.Compliant)
	}
	query += " ORDER BY category, case_id"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query verdicts: %w", err)
	}
	defer rows.Close()

	var results []*StoredVerdict
	for rows.Next() {
		sv, err := scanVerdict(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, sv)
	}
	return results, rows.Err()
}

func scanVerdict(rows *sql.Rows) (*StoredVerdict, error) {
	var (
		sv          StoredVerdict
		violations  string
		evaluatedAt string
	)
	if err := rows.Scan(&sv.RunID, &sv.CaseID, &sv.Category, &sv.Compliant, &violations, &evaluatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan verdict row: %w", err)
	}
	if violations != "" && violations != "null" {
		if err := json.Unmarshal([]byte(violations), &sv.Violations); err != nil {
			return nil, fmt.Errorf("failed to decode violations for case %q: %w", sv.CaseID, err)
		}
	}
	if ts, err := time.Parse(time.RFC3339Nano, evaluatedAt); err == nil {
		sv.EvaluatedAt = ts
	}
	return &sv, nil
}

// Summary returns per-category counts for one run.
func (s *SQLiteStore) Summary(ctx context.Context, runID string) ([]CategoryCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category,
		       COUNT(*),
		       SUM(CASE WHEN compliant THEN 1 ELSE 0 END),
		       SUM(CASE WHEN compliant THEN 0 ELSE 1 END)
		FROM verdicts
		WHERE run_id = ?
		GROUP BY category
		ORDER BY category`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run summary: %w", err)
	}
	defer rows.Close()

	var counts []CategoryCount
	for rows.Next() {
		var cc CategoryCount
		if err := rows.Scan(&cc.Category, &cc.Total, &cc.Compliant, &cc.NonCompliant); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		counts = append(counts, cc)
	}
	return counts, rows.Err()
}

// Runs returns the known run IDs, most recent first.
func (s *SQLiteStore) Runs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id
		FROM verdicts
		GROUP BY run_id
		ORDER BY MAX(evaluated_at) DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		runs = append(runs, id)
	}
	return runs, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
