package tags

import (
	"strings"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"

	"lyrebird/internal/services"
)

const vorbisLyricsField = "LYRICS"

func writeFLAC(path string, fields Fields) error {
	file, err := flac.ParseFile(path)
	if err != nil {
		return services.Wrap(services.ErrWrite, "tags", "flac", "parse flac stream", err)
	}

	cmts, cmtIdx, err := vorbisComment(file)
	if err != nil {
		return services.Wrap(services.ErrWrite, "tags", "flac", "parse vorbis comment", err)
	}

	if fields.Basic.Artist != "" {
		setVorbisField(cmts, flacvorbis.FIELD_ARTIST, fields.Basic.Artist)
	}
	if fields.Basic.Title != "" {
		setVorbisField(cmts, flacvorbis.FIELD_TITLE, fields.Basic.Title)
	}
	if fields.Basic.Album != "" {
		setVorbisField(cmts, flacvorbis.FIELD_ALBUM, fields.Basic.Album)
	}
	if fields.Lyrics != "" {
		setVorbisField(cmts, vorbisLyricsField, fields.Lyrics)
	}

	block := cmts.Marshal()
	if cmtIdx >= 0 {
		file.Meta[cmtIdx] = &block
	} else {
		file.Meta = append(file.Meta, &block)
	}

	if len(fields.Cover) > 0 {
		picture, err := flacpicture.NewFromImageData(flacpicture.PictureTypeFrontCover, "Front cover", fields.Cover, "image/jpeg")
		if err != nil {
			return services.Wrap(services.ErrWrite, "tags", "flac", "build picture block", err)
		}
		pictureBlock := picture.Marshal()

		kept := file.Meta[:0]
		for _, meta := range file.Meta {
			if meta.Type == flac.Picture {
				continue
			}
			kept = append(kept, meta)
		}
		file.Meta = append(kept, &pictureBlock)
	}

	if err := file.Save(path); err != nil {
		return services.Wrap(services.ErrWrite, "tags", "flac", "save flac stream", err)
	}
	return nil
}

func vorbisComment(file *flac.File) (*flacvorbis.MetaDataBlockVorbisComment, int, error) {
	for idx, meta := range file.Meta {
		if meta.Type == flac.VorbisComment {
			cmts, err := flacvorbis.ParseFromMetaDataBlock(*meta)
			if err != nil {
				return nil, -1, err
			}
			return cmts, idx, nil
		}
	}
	return flacvorbis.New(), -1, nil
}

// setVorbisField replaces any existing values for the field. The comment
// block stores raw KEY=value strings, so replacement is a prefix filter.
func setVorbisField(cmts *flacvorbis.MetaDataBlockVorbisComment, field, value string) {
	prefix := strings.ToUpper(field) + "="
	kept := cmts.Comments[:0]
	for _, comment := range cmts.Comments {
		if strings.HasPrefix(strings.ToUpper(comment), prefix) {
			continue
		}
		kept = append(kept, comment)
	}
	cmts.Comments = kept
	cmts.Add(strings.ToUpper(field), value) //nolint:errcheck // only fails on NUL in field name
}
