package provider

import (
	"context"
	"fmt"
	"log/slog"

	"lyrebird/internal/config"
	"lyrebird/internal/identity"
	"lyrebird/internal/services"
)

// Match is a provider-confirmed track, carrying whatever corrected metadata
// the provider knows plus the handles needed to fetch lyrics and cover art.
type Match struct {
	ID       string
	Title    string
	Artist   string
	Album    string
	Platform string

	// LyricsURL and CoverURL are set by providers whose search results
	// embed direct fetch URLs; parameter-driven providers leave them empty.
	LyricsURL string
	CoverURL  string
}

// Gateway is the capability the reconciliation engine consumes. Search
// returns (nil, nil) on a miss; fetches return the zero value to signal the
// provider found nothing, distinct from an error.
type Gateway interface {
	Name() string
	Search(ctx context.Context, id identity.Identity) (*Match, error)
	FetchLyrics(ctx context.Context, match *Match) (string, error)
	FetchCover(ctx context.Context, match *Match) ([]byte, error)
}

// New selects the configured gateway implementation.
func New(cfg *config.Config, logger *slog.Logger) (Gateway, error) {
	switch cfg.Provider.Kind {
	case config.ProviderTuneHub:
		return newTuneHubGateway(cfg, logger)
	case config.ProviderLrcAPI:
		return newLrcAPIGateway(cfg, logger)
	default:
		return nil, services.Wrap(services.ErrConfiguration, "provider", "new",
			fmt.Sprintf("unknown provider %q", cfg.Provider.Kind), nil)
	}
}
