package config

const (
	defaultLibraryRoot     = "/music"
	defaultStateDir        = "~/.local/share/lyrebird"
	defaultLogDir          = "~/.local/share/lyrebird/logs"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultProviderKind    = ProviderTuneHub
	defaultTuneHubBaseURL  = "https://music-dl.sayqz.com"
	defaultLrcAPIBaseURL   = "https://api.lrc.cx"
	defaultRequestTimeout  = 30
	defaultRequestDelayMS  = 200
	defaultRetryAttempts   = 3
	defaultScanWorkers     = 4
	defaultScanInterval    = 0
	defaultFolderInference = true
)

func defaultExtensions() []string {
	return []string{".mp3", ".flac", ".m4a", ".mp4", ".ogg", ".wav", ".wma", ".ape", ".strm"}
}

func defaultPlatforms() []string {
	return []string{"tencent", "netease", "kugou", "kuwo", "migu"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Library: Library{
			Root:               defaultLibraryRoot,
			Extensions:         defaultExtensions(),
			UseFolderStructure: defaultFolderInference,
		},
		Download: Download{
			Lyrics: true,
			Cover:  true,
		},
		Update: Update{},
		Provider: Provider{
			Kind:           defaultProviderKind,
			Platforms:      defaultPlatforms(),
			RequestTimeout: defaultRequestTimeout,
			RequestDelayMS: defaultRequestDelayMS,
			RetryAttempts:  defaultRetryAttempts,
			TuneHub: TuneHub{
				BaseURL: defaultTuneHubBaseURL,
			},
			LrcAPI: LrcAPI{
				BaseURL: defaultLrcAPIBaseURL,
			},
		},
		Scan: Scan{
			Workers:  defaultScanWorkers,
			Interval: defaultScanInterval,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
