package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"mediashelf/internal/api"
	"mediashelf/internal/auth"
	"mediashelf/internal/config"
	"mediashelf/internal/datastore"
	"mediashelf/internal/github"
	"mediashelf/internal/logging"
	"mediashelf/internal/store"
	"mediashelf/internal/theme"
)

var errLoginRequired = errors.New("admin session required; run 'mediashelf auth login' first")

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// app bundles the services a single command invocation works with.
type app struct {
	cfg    *config.Config
	state  *store.Store
	logger *slog.Logger
	data   *datastore.Store
}

// withApp opens the state store for the duration of fn.
func (c *commandContext) withApp(cmd *cobra.Command, fn func(*app) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	state, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer state.Close()

	return fn(&app{
		cfg:    cfg,
		state:  state,
		logger: logger,
		data:   datastore.New(cfg, state, logger),
	})
}

func (a *app) catalogService() (*api.CatalogService, error) {
	return api.NewCatalogService(a.data, a.cfg.Display.Locale, a.cfg.Server.CacheEntries)
}

func (a *app) gate(ctx context.Context) (*auth.Gate, error) {
	return auth.New(ctx, a.cfg, a.state, a.logger)
}

func (a *app) publisher() *github.Publisher {
	return github.NewPublisher(a.cfg, a.state, a.logger)
}

// requireSession checks the stored admin session, replacing it when it is
// due for renewal.
func (a *app) requireSession(ctx context.Context) (*auth.Gate, error) {
	gate, err := a.gate(ctx)
	if err != nil {
		return nil, err
	}
	token, ok, err := store.Lookup(ctx, a.state, store.KeyAuthSession)
	if err != nil {
		return nil, err
	}
	if !ok || token == "" {
		return nil, errLoginRequired
	}
	if _, err := gate.Verify(token); err != nil {
		_ = a.state.Delete(ctx, store.KeyAuthSession)
		if errors.Is(err, auth.ErrSessionExpired) {
			return nil, fmt.Errorf("session expired: %w", errLoginRequired)
		}
		return nil, errLoginRequired
	}
	if session, refreshed, err := gate.Refresh(token); err == nil && refreshed {
		if err := a.state.Set(ctx, store.KeyAuthSession, session.Token); err != nil {
			return nil, fmt.Errorf("store refreshed session: %w", err)
		}
	}
	return gate, nil
}

// palette returns the status colours for cmd's stdout, or nil when output
// is not a terminal.
func (a *app) palette(cmd *cobra.Command) *theme.Palette {
	if !shouldColorize(cmd.OutOrStdout()) {
		return nil
	}
	t, err := theme.Get(cmd.Context(), a.state)
	if err != nil {
		t = theme.Default
	}
	p := t.Palette()
	return &p
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
