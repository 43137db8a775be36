package library

import (
	"path/filepath"
	"strings"

	"lyrebird/internal/config"
)

const strmExtension = ".strm"

// Classifier decides whether a filesystem entry is a track candidate.
type Classifier struct {
	cfg *config.Config
}

// NewClassifier builds a classifier over the configured extension list.
func NewClassifier(cfg *config.Config) *Classifier {
	return &Classifier{cfg: cfg}
}

// Classify inspects path relative to root and returns a candidate, or
// ok=false when the entry is not a track (sidecars, covers, hidden files,
// unrecognized extensions). It never touches the filesystem.
func (c *Classifier) Classify(root, path string) (Candidate, bool) {
	base := filepath.Base(path)
	if base == "" || strings.HasPrefix(base, ".") {
		return Candidate{}, false
	}

	ext := strings.ToLower(filepath.Ext(base))
	switch {
	case ext == ".lrc":
		return Candidate{}, false
	case strings.EqualFold(base, "cover.jpg"), strings.EqualFold(base, "cover.jpeg"), strings.EqualFold(base, "cover.png"):
		return Candidate{}, false
	}

	var kind Kind
	switch {
	case ext == strmExtension:
		kind = KindSTRM
	case ext != "" && c.cfg.IsAudioExtension(ext):
		kind = KindAudio
	default:
		return Candidate{}, false
	}

	return Candidate{
		Path:        path,
		Kind:        kind,
		FolderChain: folderChain(root, path),
		Stem:        strings.TrimSuffix(base, filepath.Ext(base)),
	}, true
}

// folderChain lists directory names between root and the file. Paths outside
// root produce an empty chain so folder inference stays disabled for them.
func folderChain(root, path string) []string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return nil
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) <= 1 {
		return nil
	}
	return parts[:len(parts)-1]
}

func dirOf(path string) string {
	return filepath.Dir(path)
}
