package config

const (
	defaultConfigPath         = "~/.config/mediashelf/config.toml"
	defaultStateDir           = "~/.local/share/mediashelf"
	defaultLogDir             = "~/.local/share/mediashelf/logs"
	defaultDataFile           = "~/.local/share/mediashelf/data.txt"
	defaultSourceTimeout      = 10
	defaultGitHubBaseURL      = "https://api.github.com"
	defaultGitHubBranch       = "main"
	defaultGitHubPath         = "data/data.txt"
	defaultGitHubTimeout      = 30
	defaultSessionTTLMinutes  = 720
	defaultLocale             = "en"
	defaultView               = "grid"
	defaultSort               = "title"
	defaultServerBind         = "127.0.0.1:7489"
	defaultServerCacheEntries = 16
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	maxSessionTTLMinutes      = 7 * 24 * 60
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
			DataFile: defaultDataFile,
		},
		Source: Source{
			TimeoutSeconds: defaultSourceTimeout,
		},
		GitHub: GitHub{
			Branch:         defaultGitHubBranch,
			Path:           defaultGitHubPath,
			BaseURL:        defaultGitHubBaseURL,
			TimeoutSeconds: defaultGitHubTimeout,
		},
		Auth: Auth{
			SessionTTLMinutes: defaultSessionTTLMinutes,
		},
		Display: Display{
			Locale: defaultLocale,
			View:   defaultView,
			Sort:   defaultSort,
		},
		Server: Server{
			Bind:         defaultServerBind,
			CacheEntries: defaultServerCacheEntries,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
