package reconcile

import (
	"sync"
	"time"
)

// Outcome is the terminal state of one track within a run.
type Outcome string

const (
	OutcomeDone      Outcome = "done"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeUnmatched Outcome = "unmatched"
	OutcomeFailed    Outcome = "failed"
)

// TrackFailure pairs a track path with the failure that ended it.
type TrackFailure struct {
	Path   string
	Reason string
}

// Summary aggregates one run's counters.
type Summary struct {
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
	Failures      []TrackFailure
}

// trackResult is the per-track contribution folded into the summary.
type trackResult struct {
	outcome       Outcome
	matched       bool
	lyricsWritten bool
	coverWritten  bool
	tagsUpdated   bool
	failure       string
}

type summaryCollector struct {
	mu      sync.Mutex
	summary Summary
}

func (c *summaryCollector) add(path string, res trackResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.summary.Scanned++
	if res.matched {
		c.summary.Matched++
	}
	if res.lyricsWritten {
		c.summary.LyricsWritten++
	}
	if res.coverWritten {
		c.summary.CoversWritten++
	}
	if res.tagsUpdated {
		c.summary.TagsUpdated++
	}
	switch res.outcome {
	case OutcomeSkipped:
		c.summary.Skipped++
	case OutcomeUnmatched:
		c.summary.Unmatched++
	case OutcomeFailed:
		c.summary.Failed++
		c.summary.Failures = append(c.summary.Failures, TrackFailure{Path: path, Reason: res.failure})
	}
}
