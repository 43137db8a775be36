package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lyrebird/internal/config"
)

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if cfg.Library.Root != "/music" {
		t.Fatalf("unexpected library root: %q", cfg.Library.Root)
	}
	if cfg.Provider.Kind != config.ProviderTuneHub {
		t.Fatalf("unexpected provider kind: %q", cfg.Provider.Kind)
	}
	if !cfg.Download.Lyrics || !cfg.Download.Cover {
		t.Fatal("expected downloads enabled by default")
	}
	if cfg.Overwrite.Lyrics || cfg.Overwrite.Cover {
		t.Fatal("expected overwrites disabled by default")
	}
	if cfg.Update.Lyrics || cfg.Update.Cover || cfg.Update.BasicInfo {
		t.Fatal("expected tag updates disabled by default")
	}
	if cfg.Scan.Workers != 4 {
		t.Fatalf("unexpected worker count: %d", cfg.Scan.Workers)
	}
	if cfg.Scan.Interval != 0 {
		t.Fatalf("expected single-pass default, got interval %d", cfg.Scan.Interval)
	}
	if !cfg.IsAudioExtension(".MP3") {
		t.Fatal("expected extension match to be case-insensitive")
	}
	wantState := filepath.Join(tempHome, ".local", "share", "lyrebird")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
}

func TestLoadParsesFileAndExpandsPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[library]
root = "` + dir + `/music"
extensions = ["mp3", ".FLAC"]

[provider]
kind = "lrcapi"

[provider.lrcapi]
base_url = "http://localhost:28883/"
auth_key = " secret "

[scan]
workers = 2
interval = 3600
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if cfg.Provider.Kind != config.ProviderLrcAPI {
		t.Fatalf("unexpected kind: %q", cfg.Provider.Kind)
	}
	if cfg.Provider.LrcAPI.BaseURL != "http://localhost:28883" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Provider.LrcAPI.BaseURL)
	}
	if cfg.Provider.LrcAPI.AuthKey != "secret" {
		t.Fatalf("expected auth key trimmed, got %q", cfg.Provider.LrcAPI.AuthKey)
	}
	if got := cfg.Library.Extensions; len(got) != 2 || got[0] != ".mp3" || got[1] != ".flac" {
		t.Fatalf("unexpected normalized extensions: %v", got)
	}
	if cfg.Scan.Workers != 2 || cfg.Scan.Interval != 3600 {
		t.Fatalf("unexpected scan settings: %+v", cfg.Scan)
	}
}

func TestEnvOverrides(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("LYREBIRD_LIBRARY_ROOT", filepath.Join(tempHome, "tunes"))
	t.Setenv("LYREBIRD_PROVIDER", "lrcapi")
	t.Setenv("LYREBIRD_DOWNLOAD_COVER", "false")
	t.Setenv("LYREBIRD_UPDATE_LYRICS", "true")
	t.Setenv("LYREBIRD_SCAN_INTERVAL", "86400")
	t.Setenv("LYREBIRD_DEFAULT_ARTIST", "Unknown Artist")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Library.Root != filepath.Join(tempHome, "tunes") {
		t.Fatalf("unexpected root: %q", cfg.Library.Root)
	}
	if cfg.Provider.Kind != config.ProviderLrcAPI {
		t.Fatalf("unexpected provider kind: %q", cfg.Provider.Kind)
	}
	if cfg.Download.Cover {
		t.Fatal("expected cover download disabled via env")
	}
	if !cfg.Update.Lyrics {
		t.Fatal("expected lyric updates enabled via env")
	}
	if cfg.Scan.Interval != 86400 {
		t.Fatalf("unexpected interval: %d", cfg.Scan.Interval)
	}
	if cfg.Library.DefaultArtist != "Unknown Artist" {
		t.Fatalf("unexpected default artist: %q", cfg.Library.DefaultArtist)
	}
}

func TestEnvOverrideRejectsInvalidBool(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("LYREBIRD_DOWNLOAD_LYRICS", "yes-please")

	_, _, _, err := config.Load("")
	if err == nil {
		t.Fatal("expected error for invalid boolean")
	}
	if !strings.Contains(err.Error(), "LYREBIRD_DOWNLOAD_LYRICS") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsUnknownProvider(t *testing.T) {
	cfg := config.Default()
	cfg.Provider.Kind = "genius"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for unknown provider")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Provider.Kind != config.ProviderTuneHub {
		t.Fatalf("unexpected provider kind from sample: %q", cfg.Provider.Kind)
	}
}
