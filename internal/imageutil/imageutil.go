// Package imageutil normalizes fetched cover art into JPEG.
package imageutil

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"
)

const (
	jpegQuality  = 90
	maxDimension = 1200
)

// IsJPEG reports whether data starts with the JPEG magic bytes.
func IsJPEG(data []byte) bool {
	return len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF
}

// EnsureJPEG returns cover bytes guaranteed to be JPEG. JPEG input within the
// dimension bound passes through untouched; PNG and oversized images are
// decoded, scaled down with Catmull-Rom when needed, and re-encoded. Data that
// does not decode as an image comes back as an error so callers can discard
// the fetch instead of writing junk next to the track.
func EnsureJPEG(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if IsJPEG(data) && width <= maxDimension && height <= maxDimension {
		return data, nil
	}

	if width > maxDimension || height > maxDimension {
		ratio := float64(width) / float64(height)
		if ratio >= 1 {
			width = maxDimension
			height = int(float64(maxDimension) / ratio)
		} else {
			height = maxDimension
			width = int(float64(maxDimension) * ratio)
		}
		if width < 1 {
			width = 1
		}
		if height < 1 {
			height = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
