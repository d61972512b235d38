package github

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"mediashelf/internal/config"
	"mediashelf/internal/store"
)

// Settings identifies the repository file that receives catalog commits.
type Settings struct {
	Owner  string `json:"owner" validate:"required,excludesall=/"`
	Repo   string `json:"repo" validate:"required,excludesall=/"`
	Branch string `json:"branch" validate:"required"`
	Path   string `json:"path" validate:"required"`
	Token  string `json:"-"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrInvalidSettings wraps every settings validation failure.
var ErrInvalidSettings = errors.New("invalid github settings")

// Validate reports missing or malformed repository coordinates.
func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return describeValidation(err)
	}
	return nil
}

// ValidateForCommit additionally requires a token.
func (s Settings) ValidateForCommit() error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := validate.Var(s.Token, "required"); err != nil {
		return fmt.Errorf("%w: token is required to commit (set GITHUB_TOKEN or run 'mediashelf github settings --token')", ErrInvalidSettings)
	}
	return nil
}

// Redacted returns a copy safe for display.
func (s Settings) Redacted() Settings {
	if s.Token != "" {
		s.Token = "********"
	}
	return s
}

func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "excludesall":
			msgs = append(msgs, field+" must not contain '/'")
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidSettings, strings.Join(msgs, "; "))
}

var settingKeys = []string{
	store.KeyGitHubOwner,
	store.KeyGitHubRepo,
	store.KeyGitHubBranch,
	store.KeyGitHubPath,
	store.KeyGitHubToken,
}

// LoadSettings merges configuration defaults with values saved in state.
// Saved values win.
func LoadSettings(ctx context.Context, cfg *config.Config, state store.Backend) (Settings, error) {
	s := Settings{
		Owner:  cfg.GitHub.Owner,
		Repo:   cfg.GitHub.Repo,
		Branch: cfg.GitHub.Branch,
		Path:   cfg.GitHub.Path,
		Token:  cfg.GitHub.Token,
	}
	targets := []*string{&s.Owner, &s.Repo, &s.Branch, &s.Path, &s.Token}
	for i, key := range settingKeys {
		value, ok, err := store.Lookup(ctx, state, key)
		if err != nil {
			return Settings{}, fmt.Errorf("load github settings: %w", err)
		}
		if ok && value != "" {
			*targets[i] = value
		}
	}
	return s, nil
}

// SaveSettings persists s. An empty token leaves any saved token untouched.
func SaveSettings(ctx context.Context, state store.Backend, s Settings) error {
	values := []string{s.Owner, s.Repo, s.Branch, s.Path, s.Token}
	for i, key := range settingKeys {
		if key == store.KeyGitHubToken && values[i] == "" {
			continue
		}
		if err := state.Set(ctx, key, values[i]); err != nil {
			return fmt.Errorf("save github settings: %w", err)
		}
	}
	return nil
}

// ClearSettings removes every saved GitHub setting, token included.
func ClearSettings(ctx context.Context, state store.Backend) error {
	return state.Delete(ctx, settingKeys...)
}

// Merge overlays non-empty fields of override onto s.
func (s Settings) Merge(override Settings) Settings {
	if override.Owner != "" {
		s.Owner = override.Owner
	}
	if override.Repo != "" {
		s.Repo = override.Repo
	}
	if override.Branch != "" {
		s.Branch = override.Branch
	}
	if override.Path != "" {
		s.Path = strings.Trim(override.Path, "/")
	}
	if override.Token != "" {
		s.Token = override.Token
	}
	return s
}
