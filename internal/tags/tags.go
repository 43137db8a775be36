package tags

import (
	"path/filepath"
	"strings"
)

// Basic holds the narrow identity subset of embedded metadata.
type Basic struct {
	Artist string
	Title  string
	Album  string
}

// Empty reports whether no field carries a value.
func (b Basic) Empty() bool {
	return b.Artist == "" && b.Title == "" && b.Album == ""
}

// Presence reports which embedded fields a file already carries.
type Presence struct {
	Lyrics bool
	Cover  bool
	Basic  bool
}

// Fields describes an embedded-tag update. Zero-value fields are left
// untouched; only non-empty values are written.
type Fields struct {
	Lyrics string
	Cover  []byte
	Basic  Basic
}

// Empty reports whether the update would write nothing.
func (f Fields) Empty() bool {
	return f.Lyrics == "" && len(f.Cover) == 0 && f.Basic.Empty()
}

// SupportsEmbedding reports whether the file format has a writable tag
// container. STRM pointers and exotic formats are read-only here.
func SupportsEmbedding(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3", ".flac", ".m4a", ".mp4":
		return true
	default:
		return false
	}
}
