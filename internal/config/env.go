package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// applyEnv overlays LYREBIRD_* environment variables onto the config. The
// file remains the primary source; env vars exist for container deployments
// where editing a config file is inconvenient.
func (c *Config) applyEnv() error {
	stringVars := map[string]*string{
		"LYREBIRD_LIBRARY_ROOT":   &c.Library.Root,
		"LYREBIRD_DEFAULT_ARTIST": &c.Library.DefaultArtist,
		"LYREBIRD_PROVIDER":       &c.Provider.Kind,
		"LYREBIRD_TUNEHUB_URL":    &c.Provider.TuneHub.BaseURL,
		"LYREBIRD_LRCAPI_URL":     &c.Provider.LrcAPI.BaseURL,
		"LYREBIRD_LRCAPI_AUTH":    &c.Provider.LrcAPI.AuthKey,
		"LYREBIRD_LOG_LEVEL":      &c.Logging.Level,
		"LYREBIRD_LOG_FORMAT":     &c.Logging.Format,
	}
	for name, target := range stringVars {
		if value, ok := os.LookupEnv(name); ok {
			*target = strings.TrimSpace(value)
		}
	}

	boolVars := map[string]*bool{
		"LYREBIRD_DOWNLOAD_LYRICS":      &c.Download.Lyrics,
		"LYREBIRD_DOWNLOAD_COVER":       &c.Download.Cover,
		"LYREBIRD_OVERWRITE_LYRICS":     &c.Overwrite.Lyrics,
		"LYREBIRD_OVERWRITE_COVER":      &c.Overwrite.Cover,
		"LYREBIRD_UPDATE_LYRICS":        &c.Update.Lyrics,
		"LYREBIRD_UPDATE_COVER":         &c.Update.Cover,
		"LYREBIRD_UPDATE_BASIC_INFO":    &c.Update.BasicInfo,
		"LYREBIRD_USE_FOLDER_STRUCTURE": &c.Library.UseFolderStructure,
	}
	for name, target := range boolVars {
		value, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		parsed, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%s: invalid boolean %q", name, value)
		}
		*target = parsed
	}

	intVars := map[string]*int{
		"LYREBIRD_SCAN_INTERVAL": &c.Scan.Interval,
		"LYREBIRD_SCAN_WORKERS":  &c.Scan.Workers,
	}
	for name, target := range intVars {
		value, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%s: invalid integer %q", name, value)
		}
		*target = parsed
	}

	return nil
}
