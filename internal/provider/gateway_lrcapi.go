package provider

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"lyrebird/internal/config"
	"lyrebird/internal/identity"
	"lyrebird/internal/logging"
	"lyrebird/internal/provider/lrcapi"
)

// lrcAPIGateway adapts the parameter-driven LrcApi service. There is no
// search endpoint, so Search yields a synthetic match carrying the identity
// and the fetches resolve directly from title/artist/album parameters.
type lrcAPIGateway struct {
	client   *lrcapi.Client
	attempts int
	logger   *slog.Logger
}

func newLrcAPIGateway(cfg *config.Config, logger *slog.Logger) (Gateway, error) {
	client, err := lrcapi.New(cfg.Provider.LrcAPI.BaseURL, cfg.Provider.LrcAPI.AuthKey, time.Duration(cfg.Provider.RequestTimeout)*time.Second)
	if err != nil {
		return nil, err
	}
	return &lrcAPIGateway{
		client:   client,
		attempts: cfg.Provider.RetryAttempts,
		logger:   logging.NewComponentLogger(logger, "lrcapi"),
	}, nil
}

func (g *lrcAPIGateway) Name() string { return config.ProviderLrcAPI }

func (g *lrcAPIGateway) Search(_ context.Context, id identity.Identity) (*Match, error) {
	if strings.TrimSpace(id.Title) == "" {
		return nil, nil
	}
	return &Match{
		ID:       id.Artist + "_" + id.Title + "_" + id.Album,
		Title:    id.Title,
		Artist:   id.Artist,
		Album:    id.Album,
		Platform: config.ProviderLrcAPI,
	}, nil
}

func (g *lrcAPIGateway) FetchLyrics(ctx context.Context, match *Match) (string, error) {
	var text string
	err := withRetry(ctx, g.attempts, func() error {
		var fetchErr error
		text, fetchErr = g.client.FetchLyrics(ctx, match.Title, match.Artist)
		return fetchErr
	})
	return text, err
}

func (g *lrcAPIGateway) FetchCover(ctx context.Context, match *Match) ([]byte, error) {
	var data []byte
	err := withRetry(ctx, g.attempts, func() error {
		var fetchErr error
		data, fetchErr = g.client.FetchCover(ctx, match.Title, match.Artist, match.Album)
		return fetchErr
	})
	return data, err
}
