package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"mediashelf/internal/config"
	"mediashelf/internal/logging"
	"mediashelf/internal/store"
)

// TestResult reports a successful connectivity check.
type TestResult struct {
	SHA      string `json:"sha"`
	ShortSHA string `json:"shortSha"`
}

// Publisher commits catalog text to the configured repository.
type Publisher struct {
	cfg        *config.Config
	state      store.Backend
	httpClient *http.Client
	now        func() time.Time
	logger     *slog.Logger
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithPublisherHTTPClient overrides the HTTP client used for API calls.
func WithPublisherHTTPClient(client *http.Client) PublisherOption {
	return func(p *Publisher) {
		if client != nil {
			p.httpClient = client
		}
	}
}

// WithPublisherClock overrides the time source used for commit messages.
func WithPublisherClock(now func() time.Time) PublisherOption {
	return func(p *Publisher) {
		if now != nil {
			p.now = now
		}
	}
}

// NewPublisher constructs a Publisher.
func NewPublisher(cfg *config.Config, state store.Backend, logger *slog.Logger, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		cfg:        cfg,
		state:      state,
		httpClient: &http.Client{Timeout: time.Duration(cfg.GitHub.TimeoutSeconds) * time.Second},
		now:        time.Now,
		logger:     logging.NewComponentLogger(logger, "github"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Settings returns the effective settings with override applied.
func (p *Publisher) Settings(ctx context.Context, override Settings) (Settings, error) {
	s, err := LoadSettings(ctx, p.cfg, p.state)
	if err != nil {
		return Settings{}, err
	}
	return s.Merge(override), nil
}

func (p *Publisher) client(token string) (*Client, error) {
	return New(p.cfg.GitHub.BaseURL, WithHTTPClient(p.httpClient), WithToken(token))
}

// Test fetches the target file to confirm the settings work.
func (p *Publisher) Test(ctx context.Context, override Settings) (TestResult, error) {
	s, err := p.Settings(ctx, override)
	if err != nil {
		return TestResult{}, err
	}
	if err := s.Validate(); err != nil {
		return TestResult{}, err
	}
	client, err := p.client(s.Token)
	if err != nil {
		return TestResult{}, err
	}
	file, err := client.GetFile(ctx, s.Owner, s.Repo, s.Path, s.Branch)
	if err != nil {
		return TestResult{}, fmt.Errorf("connection failed: %w", err)
	}
	return TestResult{SHA: file.SHA, ShortSHA: ShortSHA(file.SHA)}, nil
}

// Commit replaces the remote file with text. The current blob SHA is fetched
// first; a missing file is created. On success the settings and the new blob
// SHA are saved to local state.
func (p *Publisher) Commit(ctx context.Context, override Settings, text string) (Commit, error) {
	s, err := p.Settings(ctx, override)
	if err != nil {
		return Commit{}, err
	}
	if err := s.ValidateForCommit(); err != nil {
		return Commit{}, err
	}
	client, err := p.client(s.Token)
	if err != nil {
		return Commit{}, err
	}

	var currentSHA string
	current, err := client.GetFile(ctx, s.Owner, s.Repo, s.Path, s.Branch)
	switch {
	case err == nil:
		currentSHA = current.SHA
	case errors.Is(err, ErrNotFound):
		p.logger.Info("remote file missing, creating it", logging.String(logging.FieldPath, s.Path))
	default:
		return Commit{}, fmt.Errorf("get current file: %w", err)
	}

	message := CommitMessage(s.Path, p.now())
	commit, err := client.PutFile(ctx, PutRequest{
		Owner:   s.Owner,
		Repo:    s.Repo,
		Path:    s.Path,
		Message: message,
		Content: text,
		Branch:  s.Branch,
		SHA:     currentSHA,
	})
	if err != nil {
		return Commit{}, fmt.Errorf("commit failed: %w", err)
	}
	commit.Message = message

	if err := SaveSettings(ctx, p.state, s); err != nil {
		return commit, err
	}
	if err := p.state.Set(ctx, store.KeyCatalogSHA, commit.SHA); err != nil {
		return commit, fmt.Errorf("record sha: %w", err)
	}
	p.logger.Info("catalog committed",
		logging.String(logging.FieldPath, s.Path),
		logging.String(logging.FieldSHA, ShortSHA(commit.SHA)),
		logging.String("commit_url", commit.CommitURL))
	return commit, nil
}

// CommitMessage formats the message used for catalog commits.
func CommitMessage(path string, at time.Time) string {
	return fmt.Sprintf("Update %s - %s", path, at.UTC().Format("2006-01-02T15:04:05.000Z"))
}

// ShortSHA returns the first seven characters of sha.
func ShortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
