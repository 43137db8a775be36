package sidecar

import (
	"os"
	"path/filepath"
	"strings"

	"lyrebird/internal/services"
)

// WriteLyrics writes the .lrc sidecar for a track atomically. The text is
// normalized to end with a single trailing newline.
func WriteLyrics(trackPath, text string) error {
	normalized := strings.TrimRight(text, "\n") + "\n"
	return writeAtomic(LyricsPath(trackPath), []byte(normalized), "lyrics")
}

// WriteCover writes the album-directory cover sidecar atomically.
func WriteCover(trackPath string, data []byte) error {
	return writeAtomic(CoverPath(trackPath), data, "cover")
}

// writeAtomic lands content via a temporary file plus rename so a crash
// never leaves a partial sidecar in place.
func writeAtomic(path string, data []byte, what string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return services.Wrap(services.ErrWrite, "sidecar", what, "create temp file", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return services.Wrap(services.ErrWrite, "sidecar", what, "write temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return services.Wrap(services.ErrWrite, "sidecar", what, "close temp file", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return services.Wrap(services.ErrWrite, "sidecar", what, "set permissions", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return services.Wrap(services.ErrWrite, "sidecar", what, "move into place", err)
	}
	return nil
}
