package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLibrary()
	c.normalizeProvider()
	c.normalizeScan()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Library.Root, err = expandPath(strings.TrimSpace(c.Library.Root)); err != nil {
		return fmt.Errorf("library.root: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLibrary() {
	c.Library.DefaultArtist = strings.TrimSpace(c.Library.DefaultArtist)
	if len(c.Library.Extensions) == 0 {
		c.Library.Extensions = defaultExtensions()
	}
	normalized := make([]string, 0, len(c.Library.Extensions))
	for _, ext := range c.Library.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	c.Library.Extensions = normalized
}

func (c *Config) normalizeProvider() {
	c.Provider.Kind = strings.ToLower(strings.TrimSpace(c.Provider.Kind))
	if c.Provider.Kind == "" {
		c.Provider.Kind = defaultProviderKind
	}
	c.Provider.TuneHub.BaseURL = strings.TrimRight(strings.TrimSpace(c.Provider.TuneHub.BaseURL), "/")
	if c.Provider.TuneHub.BaseURL == "" {
		c.Provider.TuneHub.BaseURL = defaultTuneHubBaseURL
	}
	c.Provider.LrcAPI.BaseURL = strings.TrimRight(strings.TrimSpace(c.Provider.LrcAPI.BaseURL), "/")
	if c.Provider.LrcAPI.BaseURL == "" {
		c.Provider.LrcAPI.BaseURL = defaultLrcAPIBaseURL
	}
	c.Provider.LrcAPI.AuthKey = strings.TrimSpace(c.Provider.LrcAPI.AuthKey)
	if c.Provider.RequestTimeout <= 0 {
		c.Provider.RequestTimeout = defaultRequestTimeout
	}
	if c.Provider.RequestDelayMS < 0 {
		c.Provider.RequestDelayMS = defaultRequestDelayMS
	}
	if c.Provider.RetryAttempts <= 0 {
		c.Provider.RetryAttempts = defaultRetryAttempts
	}
	if len(c.Provider.Platforms) == 0 {
		c.Provider.Platforms = defaultPlatforms()
	}
}

func (c *Config) normalizeScan() {
	if c.Scan.Workers <= 0 {
		c.Scan.Workers = defaultScanWorkers
	}
	if c.Scan.Interval < 0 {
		c.Scan.Interval = 0
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
