package tags_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"lyrebird/internal/services"
	"lyrebird/internal/tags"
)

func TestSupportsEmbedding(t *testing.T) {
	supported := []string{"a.mp3", "b.FLAC", "c.m4a", "d.mp4"}
	for _, name := range supported {
		if !tags.SupportsEmbedding(name) {
			t.Fatalf("expected %s to support embedding", name)
		}
	}
	unsupported := []string{"a.strm", "b.wav", "c.ogg", "d"}
	for _, name := range unsupported {
		if tags.SupportsEmbedding(name) {
			t.Fatalf("expected %s to reject embedding", name)
		}
	}
}

func TestProbeUntaggedFileReportsNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.mp3")
	if err := os.WriteFile(path, []byte("not really audio"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	presence, err := tags.Probe(path)
	if err != nil {
		t.Fatalf("Probe returned error: %v", err)
	}
	if presence.Lyrics || presence.Cover || presence.Basic {
		t.Fatalf("expected empty presence, got %+v", presence)
	}
}

func TestProbeMissingFileFails(t *testing.T) {
	if _, err := tags.Probe(filepath.Join(t.TempDir(), "nope.mp3")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWriteRejectsUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pointer.strm")
	if err := os.WriteFile(path, []byte("https://example.com/a"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	err := tags.Write(path, tags.Fields{Lyrics: "[00:01.00]La la"})
	if err == nil {
		t.Fatal("expected error for strm embedding")
	}
	if !errors.Is(err, services.ErrWrite) {
		t.Fatalf("expected write marker, got %v", err)
	}
}

func TestWriteEmptyFieldsIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "untouched.strm")
	if err := os.WriteFile(path, []byte("https://example.com/a"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := tags.Write(path, tags.Fields{}); err != nil {
		t.Fatalf("empty update should be a no-op, got %v", err)
	}
}

func TestMP3RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.mp3")
	if err := os.WriteFile(path, make([]byte, 128), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	fields := tags.Fields{
		Lyrics: "[00:01.00]La la",
		Cover:  []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10},
		Basic:  tags.Basic{Artist: "Jay", Title: "Blue Storm", Album: "Fantasy"},
	}
	if err := tags.Write(path, fields); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	basic, err := tags.ReadBasic(path)
	if err != nil {
		t.Fatalf("ReadBasic returned error: %v", err)
	}
	if basic.Artist != "Jay" || basic.Title != "Blue Storm" || basic.Album != "Fantasy" {
		t.Fatalf("basic = %+v", basic)
	}

	presence, err := tags.Probe(path)
	if err != nil {
		t.Fatalf("Probe returned error: %v", err)
	}
	if !presence.Lyrics || !presence.Cover || !presence.Basic {
		t.Fatalf("expected full presence, got %+v", presence)
	}
}
