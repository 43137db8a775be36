package provider

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"lyrebird/internal/config"
	"lyrebird/internal/identity"
	"lyrebird/internal/logging"
	"lyrebird/internal/provider/tunehub"
)

// tuneHubGateway adapts the aggregate-search client: one search across all
// upstream platforms, then local best-match scoring.
type tuneHubGateway struct {
	client    *tunehub.Client
	platforms []string
	attempts  int
	logger    *slog.Logger
}

func newTuneHubGateway(cfg *config.Config, logger *slog.Logger) (Gateway, error) {
	client, err := tunehub.New(cfg.Provider.TuneHub.BaseURL, time.Duration(cfg.Provider.RequestTimeout)*time.Second)
	if err != nil {
		return nil, err
	}
	return &tuneHubGateway{
		client:    client,
		platforms: cfg.Provider.Platforms,
		attempts:  cfg.Provider.RetryAttempts,
		logger:    logging.NewComponentLogger(logger, "tunehub"),
	}, nil
}

func (g *tuneHubGateway) Name() string { return config.ProviderTuneHub }

func (g *tuneHubGateway) Search(ctx context.Context, id identity.Identity) (*Match, error) {
	keyword := strings.TrimSpace(strings.TrimSpace(id.Artist) + " " + strings.TrimSpace(id.Title))
	if keyword == "" {
		return nil, nil
	}

	var results []tunehub.Result
	err := withRetry(ctx, g.attempts, func() error {
		var searchErr error
		results, searchErr = g.client.Search(ctx, keyword)
		return searchErr
	})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	candidates := make([]Match, 0, len(results))
	for _, r := range results {
		candidates = append(candidates, Match{
			ID:        r.ID,
			Title:     r.Name,
			Artist:    r.Artist,
			Album:     r.Album,
			Platform:  r.Platform,
			LyricsURL: r.LrcURL,
			CoverURL:  r.PicURL,
		})
	}

	best := BestMatch(id, candidates, g.platforms)
	if best == nil {
		g.logger.Debug("no candidate cleared the match threshold",
			logging.String(logging.FieldArtist, id.Artist),
			logging.String(logging.FieldTitle, id.Title),
			logging.Int("candidates", len(candidates)))
		return nil, nil
	}
	return best, nil
}

func (g *tuneHubGateway) FetchLyrics(ctx context.Context, match *Match) (string, error) {
	var text string
	err := withRetry(ctx, g.attempts, func() error {
		var fetchErr error
		text, fetchErr = g.client.FetchLyrics(ctx, tunehub.Result{LrcURL: match.LyricsURL})
		return fetchErr
	})
	return text, err
}

func (g *tuneHubGateway) FetchCover(ctx context.Context, match *Match) ([]byte, error) {
	var data []byte
	err := withRetry(ctx, g.attempts, func() error {
		var fetchErr error
		data, fetchErr = g.client.FetchCover(ctx, tunehub.Result{PicURL: match.CoverURL})
		return fetchErr
	})
	return data, err
}
