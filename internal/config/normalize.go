package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSource()
	c.normalizeGitHub()
	c.normalizeAuth()
	c.normalizeDisplay()
	c.normalizeServer()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
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
	if c.Paths.DataFile, err = expandPath(strings.TrimSpace(c.Paths.DataFile)); err != nil {
		return fmt.Errorf("paths.data_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeSource() {
	c.Source.URL = strings.TrimSpace(c.Source.URL)
	if c.Source.URL == "" {
		if value, ok := os.LookupEnv("MEDIASHELF_SOURCE_URL"); ok {
			c.Source.URL = strings.TrimSpace(value)
		}
	}
	if c.Source.TimeoutSeconds <= 0 {
		c.Source.TimeoutSeconds = defaultSourceTimeout
	}
}

func (c *Config) normalizeGitHub() {
	c.GitHub.Owner = strings.TrimSpace(c.GitHub.Owner)
	c.GitHub.Repo = strings.TrimSpace(c.GitHub.Repo)
	c.GitHub.Branch = strings.TrimSpace(c.GitHub.Branch)
	if c.GitHub.Branch == "" {
		c.GitHub.Branch = defaultGitHubBranch
	}
	c.GitHub.Path = strings.Trim(strings.TrimSpace(c.GitHub.Path), "/")
	if c.GitHub.Path == "" {
		c.GitHub.Path = defaultGitHubPath
	}
	c.GitHub.Token = strings.TrimSpace(c.GitHub.Token)
	if c.GitHub.Token == "" {
		if value, ok := os.LookupEnv("MEDIASHELF_GITHUB_TOKEN"); ok {
			c.GitHub.Token = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("GITHUB_TOKEN"); ok {
			c.GitHub.Token = strings.TrimSpace(value)
		}
	}
	c.GitHub.BaseURL = strings.TrimRight(strings.TrimSpace(c.GitHub.BaseURL), "/")
	if c.GitHub.BaseURL == "" {
		c.GitHub.BaseURL = defaultGitHubBaseURL
	}
	if c.GitHub.TimeoutSeconds <= 0 {
		c.GitHub.TimeoutSeconds = defaultGitHubTimeout
	}
}

func (c *Config) normalizeAuth() {
	c.Auth.Secret = strings.TrimSpace(c.Auth.Secret)
	if c.Auth.Secret == "" {
		if value, ok := os.LookupEnv("MEDIASHELF_AUTH_SECRET"); ok {
			c.Auth.Secret = strings.TrimSpace(value)
		}
	}
	if c.Auth.SessionTTLMinutes == 0 {
		c.Auth.SessionTTLMinutes = defaultSessionTTLMinutes
	}
}

func (c *Config) normalizeDisplay() {
	c.Display.Locale = strings.TrimSpace(c.Display.Locale)
	if c.Display.Locale == "" {
		c.Display.Locale = defaultLocale
	}
	c.Display.View = strings.ToLower(strings.TrimSpace(c.Display.View))
	if c.Display.View == "" {
		c.Display.View = defaultView
	}
	c.Display.Sort = strings.ToLower(strings.TrimSpace(c.Display.Sort))
	if c.Display.Sort == "" {
		c.Display.Sort = defaultSort
	}
}

func (c *Config) normalizeServer() {
	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	if c.Server.Bind == "" {
		c.Server.Bind = defaultServerBind
	}
	if c.Server.CacheEntries == 0 {
		c.Server.CacheEntries = defaultServerCacheEntries
	}
}

func (c *Config) normalizeLogging() {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch format {
	case "", "console", "text", "pretty":
		format = "console"
	}
	c.Logging.Format = format
	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "" {
		level = defaultLogLevel
	}
	c.Logging.Level = level
}
