package reconcile

import (
	"lyrebird/internal/config"
	"lyrebird/internal/library"
	"lyrebird/internal/sidecar"
	"lyrebird/internal/tags"
)

// Plan records which writes a track still needs. Each consumer is tracked
// separately so a sidecar miss and an embedded miss can be satisfied by the
// same fetch.
type Plan struct {
	SidecarLyrics bool
	SidecarCover  bool
	EmbedLyrics   bool
	EmbedCover    bool
	EmbedBasic    bool
}

// NeedLyrics reports whether any consumer wants lyrics fetched.
func (p Plan) NeedLyrics() bool { return p.SidecarLyrics || p.EmbedLyrics }

// NeedCover reports whether any consumer wants cover art fetched.
func (p Plan) NeedCover() bool { return p.SidecarCover || p.EmbedCover }

// Empty reports whether the track needs nothing, which skips all network
// access for it.
func (p Plan) Empty() bool {
	return !p.NeedLyrics() && !p.NeedCover() && !p.EmbedBasic
}

// BuildPlan derives the fetch plan from existing state and the configured
// download/overwrite/update toggles. A field is planned only when it is
// absent or its overwrite toggle allows refetching, and only for consumers
// the configuration enables. STRM pointers never plan embedded writes.
func BuildPlan(cfg *config.Config, candidate library.Candidate, state sidecar.State) Plan {
	var plan Plan

	if cfg.Download.Lyrics && (!state.HasLyricsSidecar || cfg.Overwrite.Lyrics) {
		plan.SidecarLyrics = true
	}
	if cfg.Download.Cover && (!state.HasCoverSidecar || cfg.Overwrite.Cover) {
		plan.SidecarCover = true
	}

	if candidate.Kind != library.KindAudio || !tags.SupportsEmbedding(candidate.Path) {
		return plan
	}

	if cfg.Update.Lyrics && (!state.HasEmbeddedLyrics || cfg.Overwrite.Lyrics) {
		plan.EmbedLyrics = true
	}
	if cfg.Update.Cover && (!state.HasEmbeddedCover || cfg.Overwrite.Cover) {
		plan.EmbedCover = true
	}
	if cfg.Update.BasicInfo && !state.HasEmbeddedBasic {
		plan.EmbedBasic = true
	}

	return plan
}
