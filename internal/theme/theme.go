// Package theme persists the colour theme preference and maps it onto the
// ANSI palette used for terminal status output.
package theme

import (
	"context"
	"fmt"
	"strings"

	"mediashelf/internal/store"
)

// Theme is the stored colour preference.
type Theme string

const (
	Light  Theme = "light"
	Dark   Theme = "dark"
	System Theme = "system"
)

// Default is used when nothing has been stored.
const Default = System

// Parse maps s onto a Theme. Unknown values mean System.
func Parse(s string) Theme {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light
	case Dark:
		return Dark
	default:
		return System
	}
}

// Next returns the theme that follows t in the light, dark, system cycle.
func (t Theme) Next() Theme {
	switch t {
	case Light:
		return Dark
	case Dark:
		return System
	default:
		return Light
	}
}

// Get returns the stored theme, or Default.
func Get(ctx context.Context, b store.Backend) (Theme, error) {
	value, ok, err := store.Lookup(ctx, b, store.KeyDisplayTheme)
	if err != nil {
		return "", fmt.Errorf("load theme: %w", err)
	}
	if !ok {
		return Default, nil
	}
	return Parse(value), nil
}

// Set stores t.
func Set(ctx context.Context, b store.Backend, t Theme) error {
	if err := b.Set(ctx, store.KeyDisplayTheme, string(Parse(string(t)))); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// Toggle advances the stored theme one step and returns the new value.
func Toggle(ctx context.Context, b store.Backend) (Theme, error) {
	current, err := Get(ctx, b)
	if err != nil {
		return "", err
	}
	next := current.Next()
	if err := Set(ctx, b, next); err != nil {
		return "", err
	}
	return next, nil
}
