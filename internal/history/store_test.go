package history_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"lyrebird/internal/config"
	"lyrebird/internal/history"
	"lyrebird/internal/reconcile"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	store, err := history.Open(&cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

func sampleSummary(runID string, started time.Time) *reconcile.Summary {
	return &reconcile.Summary{
		RunID:         runID,
		StartedAt:     started,
		Duration:      90 * time.Second,
		Scanned:       42,
		Skipped:       30,
		Matched:       10,
		Unmatched:     1,
		Failed:        1,
		LyricsWritten: 9,
		CoversWritten: 3,
		TagsUpdated:   5,
		Failures: []reconcile.TrackFailure{
			{Path: "/music/Jay/Fantasy/01.mp3", Reason: "write failed"},
		},
	}
}

func TestRecordRunRoundTrip(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	started := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	if err := store.RecordRun(ctx, sampleSummary("run-1", started)); err != nil {
		t.Fatalf("record run: %v", err)
	}

	runs, err := store.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	run := runs[0]
	if run.RunID != "run-1" || !run.StartedAt.Equal(started) {
		t.Fatalf("run = %+v", run)
	}
	if run.Scanned != 42 || run.Failed != 1 || run.LyricsWritten != 9 {
		t.Fatalf("run counters = %+v", run)
	}
	if run.Duration != 90*time.Second {
		t.Fatalf("duration = %v, want 90s", run.Duration)
	}

	failures, err := store.FailuresForRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("failures: %v", err)
	}
	if len(failures) != 1 || failures[0].TrackPath != "/music/Jay/Fantasy/01.mp3" || failures[0].Reason != "write failed" {
		t.Fatalf("failures = %+v", failures)
	}
}

func TestRecentRunsOrdersNewestFirst(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-a", "run-b", "run-c"} {
		if err := store.RecordRun(ctx, sampleSummary(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("record %s: %v", id, err)
		}
	}

	runs, err := store.RecentRuns(ctx, 2)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].RunID != "run-c" || runs[1].RunID != "run-b" {
		t.Fatalf("order = %s, %s", runs[0].RunID, runs[1].RunID)
	}
}

func TestPruneCascadesFailures(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	old := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	if err := store.RecordRun(ctx, sampleSummary("run-old", old)); err != nil {
		t.Fatalf("record old: %v", err)
	}
	if err := store.RecordRun(ctx, sampleSummary("run-new", recent)); err != nil {
		t.Fatalf("record new: %v", err)
	}

	pruned, err := store.Prune(ctx, recent.Add(-time.Hour))
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if pruned != 1 {
		t.Fatalf("pruned = %d, want 1", pruned)
	}

	runs, err := store.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(runs) != 1 || runs[0].RunID != "run-new" {
		t.Fatalf("runs after prune = %+v", runs)
	}
	failures, err := store.FailuresForRun(ctx, "run-old")
	if err != nil {
		t.Fatalf("failures: %v", err)
	}
	if len(failures) != 0 {
		t.Fatalf("old run failures survived prune: %+v", failures)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	first, err := history.Open(&cfg)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := history.Open(&cfg)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer second.Close()
	if second.Path() == "" {
		t.Fatal("expected database path")
	}
}
