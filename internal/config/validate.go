package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLibrary(); err != nil {
		return err
	}
	if err := c.validateProvider(); err != nil {
		return err
	}
	if err := c.validateScan(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateLibrary() error {
	if strings.TrimSpace(c.Library.Root) == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/lyrebird/config.toml"
		}
		return fmt.Errorf("library.root is required. Set LYREBIRD_LIBRARY_ROOT or edit %s (create with 'lyrebird config init')", defaultPath)
	}
	if len(c.Library.Extensions) == 0 {
		return errors.New("library.extensions must include at least one extension")
	}
	return nil
}

func (c *Config) validateProvider() error {
	switch c.Provider.Kind {
	case ProviderTuneHub:
		if c.Provider.TuneHub.BaseURL == "" {
			return errors.New("provider.tunehub.base_url must be set")
		}
	case ProviderLrcAPI:
		if c.Provider.LrcAPI.BaseURL == "" {
			return errors.New("provider.lrcapi.base_url must be set")
		}
	default:
		return fmt.Errorf("provider.kind: unsupported value %q (expected %q or %q)", c.Provider.Kind, ProviderTuneHub, ProviderLrcAPI)
	}
	if c.Provider.RequestTimeout <= 0 {
		return errors.New("provider.request_timeout must be positive (seconds)")
	}
	if c.Provider.RetryAttempts <= 0 {
		return errors.New("provider.retry_attempts must be positive")
	}
	return nil
}

func (c *Config) validateScan() error {
	if c.Scan.Workers <= 0 {
		return errors.New("scan.workers must be positive")
	}
	if c.Scan.Interval < 0 {
		return errors.New("scan.interval must be >= 0 (seconds)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
