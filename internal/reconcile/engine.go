package reconcile

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"lyrebird/internal/config"
	"lyrebird/internal/identity"
	"lyrebird/internal/imageutil"
	"lyrebird/internal/library"
	"lyrebird/internal/logging"
	"lyrebird/internal/provider"
	"lyrebird/internal/services"
	"lyrebird/internal/sidecar"
	"lyrebird/internal/tags"
)

// Engine drives one reconciliation pass: walk the library, derive per-track
// identity and existing state, decide what to fetch, call the provider, and
// land the results on disk and in embedded tags.
type Engine struct {
	cfg       *config.Config
	gateway   provider.Gateway
	walker    *library.Walker
	resolver  *identity.Resolver
	inspector *sidecar.Inspector
	logger    *slog.Logger
}

// NewEngine wires an engine over the configured provider gateway.
func NewEngine(cfg *config.Config, gateway provider.Gateway, logger *slog.Logger) *Engine {
	return &Engine{
		cfg:       cfg,
		gateway:   gateway,
		walker:    library.NewWalker(cfg, logger),
		resolver:  identity.NewResolver(cfg, logger),
		inspector: sidecar.NewInspector(logger),
		logger:    logging.NewComponentLogger(logger, "engine"),
	}
}

// Run executes one full pass. Track processing is parallelized across a
// bounded worker pool; no single track's failure aborts the run. The returned
// summary is valid even when err reports cancellation.
func (e *Engine) Run(ctx context.Context) (*Summary, error) {
	runID := uuid.NewString()
	start := time.Now()
	ctx = services.WithRunID(ctx, runID)
	logger := e.logger.With(logging.String(logging.FieldRunID, runID))

	candidates, err := e.walker.Walk(ctx)
	if err != nil {
		return nil, err
	}

	logger.Info("scan started",
		logging.Int("tracks", len(candidates)),
		logging.Int("workers", e.cfg.Scan.Workers),
		logging.String(logging.FieldProvider, e.gateway.Name()))

	covers := newCoverCache()
	collector := &summaryCollector{summary: Summary{RunID: runID, StartedAt: start}}

	var group errgroup.Group
	group.SetLimit(e.cfg.Scan.Workers)
	for _, candidate := range candidates {
		if ctx.Err() != nil {
			break
		}
		group.Go(func() error {
			res := e.processTrack(ctx, candidate, covers, logger)
			collector.add(candidate.Path, res)
			return nil
		})
	}
	group.Wait() //nolint:errcheck // workers never return errors

	summary := collector.summary
	summary.Duration = time.Since(start)

	logger.Info("scan finished",
		logging.Int("scanned", summary.Scanned),
		logging.Int("skipped", summary.Skipped),
		logging.Int("matched", summary.Matched),
		logging.Int("unmatched", summary.Unmatched),
		logging.Int("failed", summary.Failed),
		logging.Int("lyrics_written", summary.LyricsWritten),
		logging.Int("covers_written", summary.CoversWritten),
		logging.Int("tags_updated", summary.TagsUpdated),
		logging.Duration("duration", summary.Duration))

	return &summary, ctx.Err()
}

func (e *Engine) processTrack(ctx context.Context, candidate library.Candidate, covers *coverCache, logger *slog.Logger) trackResult {
	if ctx.Err() != nil {
		return trackResult{outcome: OutcomeSkipped}
	}
	ctx = services.WithTrack(ctx, candidate.Path)

	id := e.resolver.Resolve(candidate)
	state := e.inspector.Inspect(candidate)
	plan := BuildPlan(e.cfg, candidate, state)
	if plan.Empty() {
		return trackResult{outcome: OutcomeSkipped}
	}

	trackLogger := logger.With(
		logging.String(logging.FieldTrack, candidate.Path),
		logging.String(logging.FieldArtist, id.Artist),
		logging.String(logging.FieldTitle, id.Title))

	dir := candidate.Dir()

	// A settled album directory satisfies the cover need without another
	// provider round trip, and without a search when nothing else is needed.
	var coverData []byte
	coverSettled := false
	if plan.NeedCover() {
		coverData, coverSettled = covers.peek(dir)
	}

	usedNetwork := false
	defer func() {
		if usedNetwork {
			e.politenessDelay(ctx)
		}
	}()

	var match *provider.Match
	if plan.NeedLyrics() || plan.EmbedBasic || (plan.NeedCover() && !coverSettled) {
		usedNetwork = true
		found, err := e.gateway.Search(ctx, id)
		if err != nil {
			trackLogger.Warn("provider search failed", logging.Error(err))
			return trackResult{outcome: OutcomeFailed, failure: err.Error()}
		}
		if found == nil {
			trackLogger.Info("no match", logging.String(logging.FieldOutcome, string(OutcomeUnmatched)))
			return trackResult{outcome: OutcomeUnmatched}
		}
		match = found
	}

	var lyricsText string
	if plan.NeedLyrics() && match != nil {
		text, err := e.gateway.FetchLyrics(ctx, match)
		if err != nil {
			trackLogger.Warn("lyrics fetch failed", logging.Error(err))
		} else {
			lyricsText = text
		}
	}

	if plan.NeedCover() && !coverSettled {
		data, err := covers.get(ctx, dir, func() ([]byte, error) {
			raw, fetchErr := e.gateway.FetchCover(ctx, match)
			if fetchErr != nil {
				return nil, fetchErr
			}
			if len(raw) == 0 {
				return nil, nil
			}
			normalized, convErr := imageutil.EnsureJPEG(raw)
			if convErr != nil {
				trackLogger.Warn("discarding undecodable cover", logging.Error(convErr))
				return nil, nil
			}
			return normalized, nil
		})
		if err != nil {
			if ctx.Err() != nil {
				return trackResult{outcome: OutcomeSkipped}
			}
			trackLogger.Warn("cover fetch failed", logging.Error(err))
		} else {
			coverData = data
		}
	}

	res := trackResult{outcome: OutcomeDone, matched: match != nil}

	// Sidecars land first; embedded updates apply only after every requested
	// sidecar write succeeded, so on-disk and embedded state never diverge.
	if plan.SidecarLyrics && lyricsText != "" {
		if err := sidecar.WriteLyrics(candidate.Path, lyricsText); err != nil {
			trackLogger.Error("lyrics sidecar write failed", logging.Error(err))
			return trackResult{outcome: OutcomeFailed, matched: res.matched, failure: err.Error()}
		}
		res.lyricsWritten = true
	}
	if plan.SidecarCover && coverData != nil && covers.claimWrite(dir) {
		if err := sidecar.WriteCover(candidate.Path, coverData); err != nil {
			covers.releaseWrite(dir)
			trackLogger.Error("cover sidecar write failed", logging.Error(err))
			return trackResult{outcome: OutcomeFailed, matched: res.matched, lyricsWritten: res.lyricsWritten, failure: err.Error()}
		}
		res.coverWritten = true
	}

	fields := tags.Fields{}
	if plan.EmbedLyrics && lyricsText != "" {
		fields.Lyrics = lyricsText
	}
	if plan.EmbedCover && coverData != nil {
		fields.Cover = coverData
	}
	if plan.EmbedBasic && match != nil {
		fields.Basic = tags.Basic{Artist: match.Artist, Title: match.Title, Album: match.Album}
	}
	if !fields.Empty() {
		if err := tags.Write(candidate.Path, fields); err != nil {
			trackLogger.Error("embedded tag write failed", logging.Error(err))
			return trackResult{outcome: OutcomeFailed, matched: res.matched, lyricsWritten: res.lyricsWritten, coverWritten: res.coverWritten, failure: err.Error()}
		}
		res.tagsUpdated = true
	}

	return res
}

// politenessDelay spaces provider calls out so scans do not hammer the
// upstream services.
func (e *Engine) politenessDelay(ctx context.Context) {
	delay := time.Duration(e.cfg.Provider.RequestDelayMS) * time.Millisecond
	if delay <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(delay):
	}
}
