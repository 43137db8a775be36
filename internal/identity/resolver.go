package identity

import (
	"log/slog"
	"strings"

	"lyrebird/internal/config"
	"lyrebird/internal/library"
	"lyrebird/internal/logging"
	"lyrebird/internal/tags"
)

// Identity is the canonical artist/album/title triple for a track.
// Title is always non-empty; artist and album may be empty when no
// source yields them.
type Identity struct {
	Artist string
	Album  string
	Title  string
}

// Resolver derives track identity from embedded tags, folder structure,
// and filename heuristics, in that precedence order.
type Resolver struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewResolver builds a resolver over the library configuration.
func NewResolver(cfg *config.Config, logger *slog.Logger) *Resolver {
	return &Resolver{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "identity"),
	}
}

// Resolve produces the identity for a candidate. Each source fills only the
// fields the previous sources left empty:
//
//  1. embedded tags (audio files only; STRM pointers carry none)
//  2. folder inference when use_folder_structure is enabled
//  3. the filename stem, split on the first "Artist - Title" separator
//  4. the configured default artist
//
// Resolve never fails: the filename stem guarantees a title.
func (r *Resolver) Resolve(candidate library.Candidate) Identity {
	var id Identity

	if candidate.Kind == library.KindAudio {
		if basic, err := tags.ReadBasic(candidate.Path); err == nil {
			id.Artist = basic.Artist
			id.Title = basic.Title
			id.Album = basic.Album
		} else {
			r.logger.Debug("embedded tags unreadable",
				logging.String(logging.FieldTrack, candidate.Path),
				logging.Error(err))
		}
	}

	if r.cfg.Library.UseFolderStructure {
		applyFolderInference(&id, candidate.FolderChain)
	}

	if id.Title == "" {
		artist, title := SplitStem(candidate.Stem)
		id.Title = title
		if id.Artist == "" && artist != "" {
			id.Artist = artist
		}
	}

	if id.Artist == "" {
		id.Artist = r.cfg.Library.DefaultArtist
	}

	return id
}

// applyFolderInference maps the directory layout onto missing fields.
// At depth two or more the parent is the album and the grandparent the
// artist; at depth one the parent is the artist and album stays empty.
func applyFolderInference(id *Identity, chain []string) {
	switch {
	case len(chain) >= 2:
		if id.Artist == "" {
			id.Artist = chain[len(chain)-2]
		}
		if id.Album == "" {
			id.Album = chain[len(chain)-1]
		}
	case len(chain) == 1:
		if id.Artist == "" {
			id.Artist = chain[0]
		}
	}
}

// SplitStem splits a filename stem of the form "Artist - Title" at the first
// separator occurrence; later separators stay inside the title. Stems without
// a separator are all title. This is a heuristic: titles that themselves
// start with " - " text will mis-split.
func SplitStem(stem string) (artist, title string) {
	stem = strings.TrimSpace(stem)
	before, after, found := strings.Cut(stem, " - ")
	if !found {
		return "", stem
	}
	artist = strings.TrimSpace(before)
	title = strings.TrimSpace(after)
	if title == "" {
		return "", stem
	}
	return artist, title
}
