package sidecar

import (
	"log/slog"
	"os"

	"lyrebird/internal/library"
	"lyrebird/internal/logging"
	"lyrebird/internal/tags"
)

// State reports what already exists for a track, on disk and embedded.
// It is derived fresh per track on every run and never cached across runs.
type State struct {
	HasLyricsSidecar  bool
	HasCoverSidecar   bool
	HasEmbeddedLyrics bool
	HasEmbeddedCover  bool
	HasEmbeddedBasic  bool
}

// Inspector probes sidecar files and embedded tags.
type Inspector struct {
	logger *slog.Logger
}

// NewInspector builds an inspector.
func NewInspector(logger *slog.Logger) *Inspector {
	return &Inspector{logger: logging.NewComponentLogger(logger, "inspector")}
}

// Inspect probes the candidate's sidecars and, for audio files, its embedded
// tags. STRM pointers never report embedded presence. Probing is read-only;
// probe failures degrade to "absent" so a damaged file still gets a fetch
// attempt rather than aborting the track.
func (i *Inspector) Inspect(candidate library.Candidate) State {
	state := State{
		HasLyricsSidecar: fileExists(LyricsPath(candidate.Path)),
		HasCoverSidecar:  fileExists(CoverPath(candidate.Path)),
	}

	if candidate.Kind != library.KindAudio {
		return state
	}

	presence, err := tags.Probe(candidate.Path)
	if err != nil {
		i.logger.Debug("embedded tag probe failed",
			logging.String(logging.FieldTrack, candidate.Path),
			logging.Error(err))
		return state
	}
	state.HasEmbeddedLyrics = presence.Lyrics
	state.HasEmbeddedCover = presence.Cover
	state.HasEmbeddedBasic = presence.Basic
	return state
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && info.Size() > 0
}
