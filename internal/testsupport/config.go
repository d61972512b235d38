package testsupport

import (
	"path/filepath"
	"testing"

	"mediashelf/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.DataFile = filepath.Join(base, "data", "data.txt")
	cfgVal.Auth.Secret = "test-secret-0123456789"
	cfgVal.Server.Bind = "127.0.0.1:0"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithSourceURL points catalog loading at a remote URL, usually an httptest server.
func WithSourceURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Source.URL = url
	}
}

// WithGitHub configures the repository settings and API base URL.
func WithGitHub(baseURL, owner, repo, token string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.GitHub.BaseURL = baseURL
		b.cfg.GitHub.Owner = owner
		b.cfg.GitHub.Repo = repo
		b.cfg.GitHub.Token = token
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
