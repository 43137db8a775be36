package sidecar

import (
	"path/filepath"
	"strings"
)

// CoverFileName is the per-album-directory cover sidecar name.
const CoverFileName = "cover.jpg"

// LyricsPath returns the .lrc sidecar path for a track: same directory,
// same stem, .lrc extension.
func LyricsPath(trackPath string) string {
	ext := filepath.Ext(trackPath)
	return strings.TrimSuffix(trackPath, ext) + ".lrc"
}

// CoverPath returns the cover sidecar path for a track's album directory.
func CoverPath(trackPath string) string {
	return filepath.Join(filepath.Dir(trackPath), CoverFileName)
}
