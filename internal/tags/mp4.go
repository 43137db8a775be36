package tags

import (
	mp4tag "github.com/Sorrow446/go-mp4tag"

	"lyrebird/internal/services"
)

func writeMP4(path string, fields Fields) error {
	mp4, err := mp4tag.Open(path)
	if err != nil {
		return services.Wrap(services.ErrWrite, "tags", "mp4", "open container", err)
	}
	defer mp4.Close()

	update := &mp4tag.MP4Tags{
		Title:  fields.Basic.Title,
		Artist: fields.Basic.Artist,
		Album:  fields.Basic.Album,
		Lyrics: fields.Lyrics,
	}
	if len(fields.Cover) > 0 {
		update.Pictures = []*mp4tag.MP4Picture{{Data: fields.Cover}}
	}

	if err := mp4.Write(update, []string{}); err != nil {
		return services.Wrap(services.ErrWrite, "tags", "mp4", "write atoms", err)
	}
	return nil
}
