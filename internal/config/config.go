package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Library contains configuration for the scanned music library.
type Library struct {
	Root               string   `toml:"root"`
	Extensions         []string `toml:"extensions"`
	DefaultArtist      string   `toml:"default_artist"`
	UseFolderStructure bool     `toml:"use_folder_structure"`
}

// Download controls which sidecar files are fetched and written.
type Download struct {
	Lyrics bool `toml:"lyrics"`
	Cover  bool `toml:"cover"`
}

// Overwrite controls whether existing lyrics/cover data is replaced.
type Overwrite struct {
	Lyrics bool `toml:"lyrics"`
	Cover  bool `toml:"cover"`
}

// Update controls which embedded tag fields are written back to audio files.
type Update struct {
	Lyrics    bool `toml:"lyrics"`
	Cover     bool `toml:"cover"`
	BasicInfo bool `toml:"basic_info"`
}

// TuneHub contains configuration for the aggregator provider.
type TuneHub struct {
	BaseURL string `toml:"base_url"`
}

// LrcAPI contains configuration for a self-hosted LrcApi provider.
type LrcAPI struct {
	BaseURL string `toml:"base_url"`
	AuthKey string `toml:"auth_key"`
}

// Provider selects and tunes the remote metadata provider.
type Provider struct {
	Kind           string   `toml:"kind"`
	Platforms      []string `toml:"platforms"`
	RequestTimeout int      `toml:"request_timeout"`
	RequestDelayMS int      `toml:"request_delay_ms"`
	RetryAttempts  int      `toml:"retry_attempts"`
	TuneHub        TuneHub  `toml:"tunehub"`
	LrcAPI         LrcAPI   `toml:"lrcapi"`
}

// Scan contains configuration for scan scheduling and concurrency.
type Scan struct {
	Workers  int `toml:"workers"`
	Interval int `toml:"interval"` // seconds; 0 means a single pass
}

// Paths contains directory configuration for daemon state and logs.
type Paths struct {
	StateDir string `toml:"state_dir"`
	LogDir   string `toml:"log_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for lyrebird.
//
// Configuration sections by subsystem:
//   - Library: music root, recognized extensions, identity fallbacks
//   - Download/Overwrite: sidecar fetch and replacement policy
//   - Update: embedded tag write policy
//   - Provider: remote metadata provider selection and tuning
//   - Scan: worker pool size and rescan interval
//   - Paths: state (history database, lock) and log directories
//   - Logging: log format and level
type Config struct {
	Library   Library   `toml:"library"`
	Download  Download  `toml:"download"`
	Overwrite Overwrite `toml:"overwrite"`
	Update    Update    `toml:"update"`
	Provider  Provider  `toml:"provider"`
	Scan      Scan      `toml:"scan"`
	Paths     Paths     `toml:"paths"`
	Logging   Logging   `toml:"logging"`
}

// Provider kinds accepted by provider.kind.
const (
	ProviderTuneHub = "tunehub"
	ProviderLrcAPI  = "lrcapi"
)

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/lyrebird/config.toml")
}

// Load locates, parses, and validates a configuration file. Environment
// overrides (LYREBIRD_*) are applied after the file is parsed. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("lyrebird.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for daemon operation.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// IsAudioExtension reports whether ext (including the leading dot) is a
// recognized audio extension. Comparison is case-insensitive.
func (c *Config) IsAudioExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, known := range c.Library.Extensions {
		if ext == known {
			return true
		}
	}
	return false
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
