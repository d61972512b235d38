package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mediashelf/internal/render"
	"mediashelf/internal/store"
	"mediashelf/internal/theme"
)

func newThemeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [show|toggle|light|dark|system]",
		Short:     "Show or change the colour theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"show", "toggle", "light", "dark", "system"},
		RunE: func(cmd *cobra.Command, args []string) error {
			action := "show"
			if len(args) == 1 {
				action = strings.ToLower(strings.TrimSpace(args[0]))
			}
			return ctx.withApp(cmd, func(a *app) error {
				c := cmd.Context()
				var (
					current theme.Theme
					err     error
				)
				switch action {
				case "show":
					current, err = theme.Get(c, a.state)
				case "toggle":
					current, err = theme.Toggle(c, a.state)
				case string(theme.Light), string(theme.Dark), string(theme.System):
					current = theme.Theme(action)
					err = theme.Set(c, a.state, current)
				default:
					return fmt.Errorf("unknown theme action %q (want show, toggle, light, dark or system)", action)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", current)
				return nil
			})
		},
	}
}

func newViewCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:       "view [show|toggle|grid|list]",
		Short:     "Show or change the default list view",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"show", "toggle", "grid", "list"},
		RunE: func(cmd *cobra.Command, args []string) error {
			action := "show"
			if len(args) == 1 {
				action = strings.ToLower(strings.TrimSpace(args[0]))
			}
			return ctx.withApp(cmd, func(a *app) error {
				c := cmd.Context()
				current, err := resolveView(cmd, a, "")
				if err != nil {
					return err
				}
				switch action {
				case "show":
				case "toggle":
					current = toggleView(current)
				case string(render.ViewGrid), string(render.ViewList):
					current = render.View(action)
				default:
					return fmt.Errorf("unknown view action %q (want show, toggle, grid or list)", action)
				}
				if action != "show" {
					if err := a.state.Set(c, store.KeyDisplayView, string(current)); err != nil {
						return fmt.Errorf("save view: %w", err)
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "View: %s\n", current)
				return nil
			})
		},
	}
}

func toggleView(v render.View) render.View {
	if v == render.ViewGrid {
		return render.ViewList
	}
	return render.ViewGrid
}
