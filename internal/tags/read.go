package tags

import (
	"os"
	"strings"

	"github.com/dhowden/tag"
)

// ReadBasic extracts artist/title/album from the file's embedded tags.
// Files without a readable tag block return an empty Basic and no error;
// only filesystem failures surface as errors.
func ReadBasic(path string) (Basic, error) {
	meta, err := readMetadata(path)
	if err != nil {
		return Basic{}, err
	}
	if meta == nil {
		return Basic{}, nil
	}
	return Basic{
		Artist: strings.TrimSpace(meta.Artist()),
		Title:  strings.TrimSpace(meta.Title()),
		Album:  strings.TrimSpace(meta.Album()),
	}, nil
}

// Probe reports which embedded fields the file already carries. Unreadable
// or untagged files report nothing present.
func Probe(path string) (Presence, error) {
	meta, err := readMetadata(path)
	if err != nil {
		return Presence{}, err
	}
	if meta == nil {
		return Presence{}, nil
	}
	basic := meta.Artist() != "" && meta.Title() != ""
	return Presence{
		Lyrics: strings.TrimSpace(meta.Lyrics()) != "",
		Cover:  meta.Picture() != nil,
		Basic:  basic,
	}, nil
}

func readMetadata(path string) (tag.Metadata, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	meta, err := tag.ReadFrom(file)
	if err != nil {
		// Untagged or unrecognized containers are not errors for probing.
		return nil, nil
	}
	return meta, nil
}
