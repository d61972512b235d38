package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"golang.org/x/text/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateSource(); err != nil {
		return err
	}
	if err := c.validateGitHub(); err != nil {
		return err
	}
	if err := c.validateAuth(); err != nil {
		return err
	}
	if err := c.validateDisplay(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.StateDir == "" {
		return errors.New("paths.state_dir must be set")
	}
	return nil
}

func (c *Config) validateSource() error {
	if c.Source.URL == "" {
		return nil
	}
	if err := validateHTTPURL(c.Source.URL); err != nil {
		return fmt.Errorf("source.url: %w", err)
	}
	return nil
}

func (c *Config) validateGitHub() error {
	if (c.GitHub.Owner == "") != (c.GitHub.Repo == "") {
		return errors.New("github.owner and github.repo must be set together")
	}
	if strings.Contains(c.GitHub.Owner, "/") || strings.Contains(c.GitHub.Repo, "/") {
		return errors.New("github.owner and github.repo must not contain '/'")
	}
	if err := validateHTTPURL(c.GitHub.BaseURL); err != nil {
		return fmt.Errorf("github.base_url: %w", err)
	}
	return nil
}

func (c *Config) validateAuth() error {
	if c.Auth.SessionTTLMinutes < 1 || c.Auth.SessionTTLMinutes > maxSessionTTLMinutes {
		return fmt.Errorf("auth.session_ttl_minutes must be between 1 and %d", maxSessionTTLMinutes)
	}
	if c.Auth.Secret != "" && len(c.Auth.Secret) < 16 {
		return errors.New("auth.secret must be at least 16 characters")
	}
	return nil
}

func (c *Config) validateDisplay() error {
	if _, err := language.Parse(c.Display.Locale); err != nil {
		return fmt.Errorf("display.locale %q is not a valid BCP 47 tag", c.Display.Locale)
	}
	switch c.Display.View {
	case "grid", "list":
	default:
		return fmt.Errorf("display.view must be grid or list (got %q)", c.Display.View)
	}
	switch c.Display.Sort {
	case "title", "year", "rating":
	default:
		return fmt.Errorf("display.sort must be title, year or rating (got %q)", c.Display.Sort)
	}
	return nil
}

func (c *Config) validateServer() error {
	if _, _, err := net.SplitHostPort(c.Server.Bind); err != nil {
		return fmt.Errorf("server.bind: %w", err)
	}
	if c.Server.CacheEntries < 1 {
		return errors.New("server.cache_entries must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error (got %q)", c.Logging.Level)
	}
	return nil
}

func validateHTTPURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return errors.New("missing host")
	}
	return nil
}
