// Package config loads, normalizes, and validates lyrebird configuration
// from a TOML file with LYREBIRD_* environment overrides.
package config
