package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"mediashelf/internal/config"
)

func clearCredentialEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"GITHUB_TOKEN", "MEDIASHELF_GITHUB_TOKEN", "MEDIASHELF_AUTH_SECRET", "MEDIASHELF_SOURCE_URL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	clearCredentialEnv(t)
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

	wantState := filepath.Join(tempHome, ".local", "share", "mediashelf")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.Paths.DataFile != filepath.Join(wantState, "data.txt") {
		t.Fatalf("unexpected data file: %q", cfg.Paths.DataFile)
	}
	if cfg.StatePath() != filepath.Join(wantState, "state.db") {
		t.Fatalf("unexpected state path: %q", cfg.StatePath())
	}
	if cfg.Server.Bind != "127.0.0.1:7489" {
		t.Fatalf("unexpected server bind: %q", cfg.Server.Bind)
	}
	if cfg.GitHub.Branch != "main" || cfg.GitHub.Path != "data/data.txt" {
		t.Fatalf("unexpected github defaults: %+v", cfg.GitHub)
	}
	if cfg.GitHub.BaseURL != config.Default().GitHub.BaseURL {
		t.Fatalf("unexpected github base url: %q", cfg.GitHub.BaseURL)
	}
	if cfg.GitHub.Token != "" {
		t.Fatalf("expected empty token, got %q", cfg.GitHub.Token)
	}
	if cfg.Auth.SessionTTLMinutes != 720 {
		t.Fatalf("unexpected session ttl: %d", cfg.Auth.SessionTTLMinutes)
	}
	if cfg.Display.View != "grid" || cfg.Display.Sort != "title" || cfg.Display.Locale != "en" {
		t.Fatalf("unexpected display defaults: %+v", cfg.Display)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.StateDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	clearCredentialEnv(t)
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	configPath := filepath.Join(t.TempDir(), "mediashelf.toml")
	type payload struct {
		Paths struct {
			StateDir string `toml:"state_dir"`
			DataFile string `toml:"data_file"`
		} `toml:"paths"`
		GitHub struct {
			Owner   string `toml:"owner"`
			Repo    string `toml:"repo"`
			Path    string `toml:"path"`
			BaseURL string `toml:"base_url"`
		} `toml:"github"`
		Display struct {
			View string `toml:"view"`
			Sort string `toml:"sort"`
		} `toml:"display"`
		Logging struct {
			Format string `toml:"format"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.StateDir = "~/shelf"
	custom.Paths.DataFile = "~/shelf/catalog.txt"
	custom.GitHub.Owner = "octo"
	custom.GitHub.Repo = "media"
	custom.GitHub.Path = "/catalog/data.txt/"
	custom.GitHub.BaseURL = "https://github.example.com/api/v3/"
	custom.Display.View = " LIST "
	custom.Display.Sort = "Rating"
	custom.Logging.Format = "JSON"

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Paths.StateDir != filepath.Join(tempHome, "shelf") {
		t.Fatalf("unexpected state dir: %q", cfg.Paths.StateDir)
	}
	if cfg.Paths.DataFile != filepath.Join(tempHome, "shelf", "catalog.txt") {
		t.Fatalf("unexpected data file: %q", cfg.Paths.DataFile)
	}
	if cfg.GitHub.Path != "catalog/data.txt" {
		t.Fatalf("expected trimmed github path, got %q", cfg.GitHub.Path)
	}
	if cfg.GitHub.BaseURL != "https://github.example.com/api/v3" {
		t.Fatalf("expected trailing slash removed, got %q", cfg.GitHub.BaseURL)
	}
	if cfg.Display.View != "list" || cfg.Display.Sort != "rating" {
		t.Fatalf("unexpected display: %+v", cfg.Display)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging format: %q", cfg.Logging.Format)
	}
	if cfg.Paths.LogDir != filepath.Join(tempHome, ".local", "share", "mediashelf", "logs") {
		t.Fatalf("expected default log dir, got %q", cfg.Paths.LogDir)
	}
}

func TestEnvVarFallbacksForCredentials(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GITHUB_TOKEN", " env-token ")
	t.Setenv("MEDIASHELF_AUTH_SECRET", "0123456789abcdef-secret")

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.GitHub.Token != "env-token" {
		t.Fatalf("expected token from env, got %q", cfg.GitHub.Token)
	}
	if cfg.Auth.Secret != "0123456789abcdef-secret" {
		t.Fatalf("expected secret from env, got %q", cfg.Auth.Secret)
	}

	t.Setenv("MEDIASHELF_GITHUB_TOKEN", "preferred")
	cfg, _, _, err = config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.GitHub.Token != "preferred" {
		t.Fatalf("expected MEDIASHELF_GITHUB_TOKEN to win, got %q", cfg.GitHub.Token)
	}
}

func TestConfigFileTokenWinsOverEnv(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GITHUB_TOKEN", "env-token")

	configPath := filepath.Join(t.TempDir(), "mediashelf.toml")
	if err := os.WriteFile(configPath, []byte("[github]\ntoken = \"file-token\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.GitHub.Token != "file-token" {
		t.Fatalf("expected file token, got %q", cfg.GitHub.Token)
	}
}

func TestLoadDotEnvFromWorkingDirectory(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("MEDIASHELF_SOURCE_URL=https://example.com/data.txt\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Chdir(dir)
	defer os.Unsetenv("MEDIASHELF_SOURCE_URL")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Source.URL != "https://example.com/data.txt" {
		t.Fatalf("expected source url from .env, got %q", cfg.Source.URL)
	}
}

func TestCreateSample(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	for _, section := range []string{"[paths]", "[source]", "[github]", "[auth]", "[display]", "[server]", "[logging]"} {
		if !strings.Contains(string(data), section) {
			t.Fatalf("sample config missing %s", section)
		}
	}
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"owner without repo", func(c *config.Config) { c.GitHub.Owner = "octo" }, "github.owner"},
		{"bad view", func(c *config.Config) { c.Display.View = "table" }, "display.view"},
		{"bad sort", func(c *config.Config) { c.Display.Sort = "runtime" }, "display.sort"},
		{"bad locale", func(c *config.Config) { c.Display.Locale = "not a locale!" }, "display.locale"},
		{"bad bind", func(c *config.Config) { c.Server.Bind = "7489" }, "server.bind"},
		{"zero cache", func(c *config.Config) { c.Server.CacheEntries = 0 }, "server.cache_entries"},
		{"ttl", func(c *config.Config) { c.Auth.SessionTTLMinutes = -1 }, "auth.session_ttl_minutes"},
		{"short secret", func(c *config.Config) { c.Auth.Secret = "short" }, "auth.secret"},
		{"bad source", func(c *config.Config) { c.Source.URL = "ftp://example.com/data.txt" }, "source.url"},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}
