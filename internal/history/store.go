package history

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"lyrebird/internal/config"
	"lyrebird/internal/reconcile"
)

// Store persists run summaries to SQLite. It is an audit trail only: scan
// planning never consults it, so deleting the database is always safe.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database and applies
// migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.StateDir, "history.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Run is one persisted scan summary.
type Run struct {
	RunID         string
	StartedAt     time.Time
	Duration      time.Duration
	Scanned       int
	Skipped       int
	Matched       int
	Unmatched     int
	Failed        int
	LyricsWritten int
	CoversWritten int
	TagsUpdated   int
}

// Failure is one persisted per-track failure.
type Failure struct {
	TrackPath string
	Reason    string
}

// RecordRun stores a completed run and its failures in one transaction.
func (s *Store) RecordRun(ctx context.Context, summary *reconcile.Summary) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin run tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO runs (
            run_id, started_at, duration_ms, scanned, skipped, matched,
            unmatched, failed, lyrics_written, covers_written, tags_updated
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.RunID,
		summary.StartedAt.UTC().Format(time.RFC3339Nano),
		summary.Duration.Milliseconds(),
		summary.Scanned,
		summary.Skipped,
		summary.Matched,
		summary.Unmatched,
		summary.Failed,
		summary.LyricsWritten,
		summary.CoversWritten,
		summary.TagsUpdated,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, failure := range summary.Failures {
		if _, err := tx.ExecContext(
			ctx,
			"INSERT INTO run_failures (run_id, track_path, reason) VALUES (?, ?, ?)",
			summary.RunID, failure.Path, failure.Reason,
		); err != nil {
			return fmt.Errorf("insert run failure: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run tx: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT run_id, started_at, duration_ms, scanned, skipped, matched,
            unmatched, failed, lyrics_written, covers_written, tags_updated
        FROM runs ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var (
			run        Run
			startedAt  string
			durationMS int64
		)
		if err := rows.Scan(
			&run.RunID, &startedAt, &durationMS, &run.Scanned, &run.Skipped,
			&run.Matched, &run.Unmatched, &run.Failed, &run.LyricsWritten,
			&run.CoversWritten, &run.TagsUpdated,
		); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, fmt.Errorf("parse run timestamp: %w", err)
		}
		run.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// FailuresForRun returns a run's per-track failures in insertion order.
func (s *Store) FailuresForRun(ctx context.Context, runID string) ([]Failure, error) {
	rows, err := s.db.QueryContext(
		ctx,
		"SELECT track_path, reason FROM run_failures WHERE run_id = ? ORDER BY id",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query run failures: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var failures []Failure
	for rows.Next() {
		var failure Failure
		if err := rows.Scan(&failure.TrackPath, &failure.Reason); err != nil {
			return nil, fmt.Errorf("scan failure row: %w", err)
		}
		failures = append(failures, failure)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run failures: %w", err)
	}
	return failures, nil
}

// Prune deletes runs older than the cutoff, cascading their failures.
func (s *Store) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := s.db.ExecContext(
		ctx,
		"DELETE FROM runs WHERE started_at < ?",
		olderThan.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune rows affected: %w", err)
	}
	return affected, nil
}
