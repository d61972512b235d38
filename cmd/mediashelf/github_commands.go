package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mediashelf/internal/api"
	"mediashelf/internal/catalog"
	"mediashelf/internal/github"
)

func newGitHubCommand(ctx *commandContext) *cobra.Command {
	githubCmd := &cobra.Command{
		Use:   "github",
		Short: "Publish the catalog to a GitHub repository",
	}
	githubCmd.AddCommand(newGitHubSettingsCommand(ctx))
	githubCmd.AddCommand(newGitHubTestCommand(ctx))
	githubCmd.AddCommand(newGitHubCommitCommand(ctx))
	return githubCmd
}

func addSettingsFlags(cmd *cobra.Command, s *github.Settings) {
	cmd.Flags().StringVar(&s.Owner, "owner", "", "Repository owner")
	cmd.Flags().StringVar(&s.Repo, "repo", "", "Repository name")
	cmd.Flags().StringVar(&s.Branch, "branch", "", "Branch to read and commit to")
	cmd.Flags().StringVar(&s.Path, "path", "", "Catalog file path within the repository")
	cmd.Flags().StringVar(&s.Token, "token", "", "Personal access token with contents write access")
}

func newGitHubSettingsCommand(ctx *commandContext) *cobra.Command {
	var (
		override   github.Settings
		clearSaved bool
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or update saved GitHub settings",
		Long: "Without flags, print the effective settings (saved values over config).\n" +
			"With --owner/--repo/--branch/--path/--token, save them first. Saving or\n" +
			"clearing requires an admin session.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				c := cmd.Context()
				changing := clearSaved || override != (github.Settings{})
				if changing {
					if _, err := a.requireSession(c); err != nil {
						return err
					}
				}
				if clearSaved {
					if err := github.ClearSettings(c, a.state); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), "Cleared GitHub settings")
					return nil
				}

				effective, err := a.publisher().Settings(c, override)
				if err != nil {
					return err
				}
				if changing {
					if err := effective.Validate(); err != nil {
						return err
					}
					if err := github.SaveSettings(c, a.state, effective); err != nil {
						return err
					}
				}

				shown := effective.Redacted()
				if asJSON {
					return writeJSON(cmd, struct {
						github.Settings
						TokenSet bool `json:"tokenSet"`
					}{shown, effective.Token != ""})
				}
				token := shown.Token
				if token == "" {
					token = "(not set)"
				}
				rows := [][]string{
					{"Owner", shown.Owner},
					{"Repo", shown.Repo},
					{"Branch", shown.Branch},
					{"Path", shown.Path},
					{"Token", token},
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Setting", "Value"}, rows, nil))
				return nil
			})
		},
	}
	addSettingsFlags(cmd, &override)
	cmd.Flags().BoolVar(&clearSaved, "clear", false, "Remove saved settings and token")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newGitHubTestCommand(ctx *commandContext) *cobra.Command {
	var (
		override github.Settings
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Check that the configured catalog file can be read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				result, err := a.publisher().Test(cmd.Context(), override)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, api.TestResponse{SHA: result.SHA, ShortSHA: result.ShortSHA})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderStatusLine("GitHub", statusOK,
					"Connection successful! File SHA: "+result.ShortSHA, a.palette(cmd)))
				return nil
			})
		},
	}
	addSettingsFlags(cmd, &override)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newGitHubCommitCommand(ctx *commandContext) *cobra.Command {
	var (
		override github.Settings
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "commit [file]",
		Short: "Commit the catalog to GitHub (admin)",
		Long: "Commit the current catalog, in canonical form, to the configured\n" +
			"repository file. When a file (or \"-\" for stdin) is given its text is\n" +
			"committed verbatim instead. Settings used for a successful commit are saved.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				c := cmd.Context()
				if _, err := a.requireSession(c); err != nil {
					return err
				}

				var text string
				if len(args) == 1 {
					raw, err := readText(cmd, args[0])
					if err != nil {
						return err
					}
					text = raw
				} else {
					result, err := a.data.Load(c)
					if err != nil {
						return err
					}
					text = catalog.Format(result.Records)
				}

				commit, err := a.publisher().Commit(c, override, text)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, api.CommitResponse{
						SHA:       commit.SHA,
						ShortSHA:  github.ShortSHA(commit.SHA),
						CommitURL: commit.CommitURL,
						Message:   commit.Message,
					})
				}
				palette := a.palette(cmd)
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderStatusLine("GitHub", statusOK, "Committed successfully! File SHA: "+github.ShortSHA(commit.SHA), palette))
				if commit.CommitURL != "" {
					fmt.Fprintln(out, renderStatusLine("Commit", statusInfo, commit.CommitURL, palette))
				}
				return nil
			})
		},
	}
	addSettingsFlags(cmd, &override)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
