package tags

import (
	"github.com/bogem/id3v2/v2"

	"lyrebird/internal/services"
)

func writeMP3(path string, fields Fields) error {
	id3, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return services.Wrap(services.ErrWrite, "tags", "mp3", "open id3 tag", err)
	}
	defer id3.Close()

	id3.SetDefaultEncoding(id3v2.EncodingUTF8)

	if fields.Basic.Artist != "" {
		id3.SetArtist(fields.Basic.Artist)
	}
	if fields.Basic.Title != "" {
		id3.SetTitle(fields.Basic.Title)
	}
	if fields.Basic.Album != "" {
		id3.SetAlbum(fields.Basic.Album)
	}

	if fields.Lyrics != "" {
		id3.DeleteFrames(id3.CommonID("Unsynchronised lyrics/text transcription"))
		id3.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
			Encoding:          id3v2.EncodingUTF8,
			Language:          "und",
			ContentDescriptor: "",
			Lyrics:            fields.Lyrics,
		})
	}

	if len(fields.Cover) > 0 {
		id3.DeleteFrames(id3.CommonID("Attached picture"))
		id3.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    "image/jpeg",
			PictureType: id3v2.PTFrontCover,
			Description: "Front cover",
			Picture:     fields.Cover,
		})
	}

	if err := id3.Save(); err != nil {
		return services.Wrap(services.ErrWrite, "tags", "mp3", "save id3 tag", err)
	}
	return nil
}
