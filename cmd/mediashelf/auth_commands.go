package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mediashelf/internal/auth"
	"mediashelf/internal/logging"
	"mediashelf/internal/store"
)

func newAuthCommand(ctx *commandContext) *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the admin session",
	}
	authCmd.AddCommand(newAuthLoginCommand(ctx))
	authCmd.AddCommand(newAuthLogoutCommand(ctx))
	authCmd.AddCommand(newAuthPasswdCommand(ctx))
	authCmd.AddCommand(newAuthStatusCommand(ctx))
	return authCmd
}

// readPassword returns flagValue, or prompts on stderr and reads one line
// from stdin.
func readPassword(cmd *cobra.Command, flagValue, prompt string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newAuthLoginCommand(ctx *commandContext) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Start an admin session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				c := cmd.Context()
				gate, err := a.gate(c)
				if err != nil {
					return err
				}
				pw, err := readPassword(cmd, password, "Password: ")
				if err != nil {
					return err
				}
				session, err := gate.Login(c, pw)
				if err != nil {
					if errors.Is(err, auth.ErrInvalidPassword) {
						return errors.New("incorrect password")
					}
					return err
				}
				if err := a.state.Set(c, store.KeyAuthSession, session.Token); err != nil {
					return fmt.Errorf("store session: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Logged in until %s\n", session.ExpiresAt.Local().Format(time.DateTime))
				if isDefault, err := gate.UsingDefaultPassword(c); err == nil && isDefault {
					fmt.Fprintln(cmd.ErrOrStderr(), "The default password is in use; change it with 'mediashelf auth passwd'.")
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "Admin password (prompted when omitted)")
	return cmd
}

func newAuthLogoutCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the admin session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				c := cmd.Context()
				token, ok, err := store.Lookup(c, a.state, store.KeyAuthSession)
				if err != nil {
					return err
				}
				if ok {
					gate, err := a.gate(c)
					if err != nil {
						return err
					}
					if err := gate.Logout(token); err != nil {
						a.logger.Debug("discarding unusable session", logging.Error(err))
					}
				}
				if err := a.state.Delete(c, store.KeyAuthSession); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
				return nil
			})
		},
	}
}

func newAuthPasswdCommand(ctx *commandContext) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change the admin password (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				c := cmd.Context()
				gate, err := a.requireSession(c)
				if err != nil {
					return err
				}
				pw, err := readPassword(cmd, password, "New password: ")
				if err != nil {
					return err
				}
				if err := gate.SetPassword(c, pw); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Password updated")
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "New admin password (prompted when omitted)")
	return cmd
}

func newAuthStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether an admin session is active",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				c := cmd.Context()
				gate, err := a.gate(c)
				if err != nil {
					return err
				}
				palette := a.palette(cmd)
				out := cmd.OutOrStdout()

				token, ok, err := store.Lookup(c, a.state, store.KeyAuthSession)
				if err != nil {
					return err
				}
				switch claims, verr := gate.Verify(token); {
				case !ok:
					fmt.Fprintln(out, renderStatusLine("Session", statusInfo, "Not logged in", palette))
				case errors.Is(verr, auth.ErrSessionExpired):
					fmt.Fprintln(out, renderStatusLine("Session", statusWarn, "Expired; log in again", palette))
				case verr != nil:
					fmt.Fprintln(out, renderStatusLine("Session", statusWarn, "Invalid; log in again", palette))
				default:
					expires := claims.ExpiresAt.Local().Format(time.DateTime)
					fmt.Fprintln(out, renderStatusLine("Session", statusOK, "Logged in until "+expires, palette))
				}

				isDefault, err := gate.UsingDefaultPassword(c)
				if err != nil {
					return err
				}
				kind := statusOK
				if isDefault {
					kind = statusWarn
				}
				fmt.Fprintln(out, renderStatusLine("Password", kind, "Default in use: "+yesNo(isDefault), palette))
				return nil
			})
		},
	}
}
