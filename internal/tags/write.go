package tags

import (
	"fmt"
	"path/filepath"
	"strings"

	"lyrebird/internal/services"
)

// Write applies the requested embedded-tag update using the container's
// native mechanism. Formats without a writable container return a write
// error; callers should consult SupportsEmbedding first.
func Write(path string, fields Fields) error {
	if fields.Empty() {
		return nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return writeMP3(path, fields)
	case ".flac":
		return writeFLAC(path, fields)
	case ".m4a", ".mp4":
		return writeMP4(path, fields)
	default:
		return services.Wrap(services.ErrWrite, "tags", "write",
			fmt.Sprintf("embedding unsupported for %s", filepath.Ext(path)), nil)
	}
}
