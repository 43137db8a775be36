package imageutil_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"lyrebird/internal/imageutil"
)

func encodeTestImage(t *testing.T, encode func(*bytes.Buffer, image.Image) error, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestEnsureJPEGPassesThroughSmallJPEG(t *testing.T) {
	data := encodeTestImage(t, func(buf *bytes.Buffer, img image.Image) error {
		return jpeg.Encode(buf, img, &jpeg.Options{Quality: 90})
	}, 400, 400)

	out, err := imageutil.EnsureJPEG(data)
	if err != nil {
		t.Fatalf("EnsureJPEG returned error: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Fatal("small jpeg input should pass through unchanged")
	}
}

func TestEnsureJPEGConvertsPNG(t *testing.T) {
	data := encodeTestImage(t, func(buf *bytes.Buffer, img image.Image) error {
		return png.Encode(buf, img)
	}, 64, 64)

	out, err := imageutil.EnsureJPEG(data)
	if err != nil {
		t.Fatalf("EnsureJPEG returned error: %v", err)
	}
	if !imageutil.IsJPEG(out) {
		t.Fatal("expected jpeg output for png input")
	}
}

func TestEnsureJPEGScalesOversizedInput(t *testing.T) {
	data := encodeTestImage(t, func(buf *bytes.Buffer, img image.Image) error {
		return jpeg.Encode(buf, img, &jpeg.Options{Quality: 90})
	}, 2400, 1200)

	out, err := imageutil.EnsureJPEG(data)
	if err != nil {
		t.Fatalf("EnsureJPEG returned error: %v", err)
	}
	decoded, _, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if decoded.Bounds().Dx() != 1200 || decoded.Bounds().Dy() != 600 {
		t.Fatalf("bounds = %v, want 1200x600", decoded.Bounds())
	}
}

func TestEnsureJPEGRejectsGarbage(t *testing.T) {
	if _, err := imageutil.EnsureJPEG([]byte("<html>not found</html>")); err == nil {
		t.Fatal("expected error for non-image input")
	}
}
