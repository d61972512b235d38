package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"mediashelf/internal/api"
	"mediashelf/internal/catalog"
)

// readCatalogFile parses path, or stdin when path is "-".
func readCatalogFile(cmd *cobra.Command, path string) ([]catalog.Record, error) {
	text, err := readText(cmd, path)
	if err != nil {
		return nil, err
	}
	return catalog.Parse(text), nil
}

func readText(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func canonicalText(records []catalog.Record) string {
	text := catalog.Format(records)
	if text != "" {
		text += "\n"
	}
	return text
}

func newFmtCommand(ctx *commandContext) *cobra.Command {
	var write, check bool

	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Rewrite a catalog file in canonical field order",
		Long: "Parse a catalog file and print it with canonical field order and escaping.\n" +
			"Comment and blank lines are not records and are dropped.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			original, err := readText(cmd, path)
			if err != nil {
				return err
			}
			records := catalog.Parse(original)
			formatted := canonicalText(records)
			out := cmd.OutOrStdout()

			switch {
			case check:
				if original != formatted {
					fmt.Fprintln(out, path)
					return fmt.Errorf("%s is not canonically formatted", path)
				}
				return nil
			case write:
				if path == "-" {
					return fmt.Errorf("--write needs a file path")
				}
				return ctx.withApp(cmd, func(a *app) error {
					if err := a.data.Export(cmd.Context(), path, records); err != nil {
						return err
					}
					fmt.Fprintf(out, "Formatted %d records in %s\n", len(records), path)
					return nil
				})
			default:
				_, err := io.WriteString(out, formatted)
				return err
			}
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result back to the file")
	cmd.Flags().BoolVar(&check, "check", false, "Exit non-zero if the file is not canonically formatted")
	cmd.MarkFlagsMutuallyExclusive("write", "check")
	return cmd
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the locally saved catalog with a file's contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				records, err := a.data.Import(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records into local storage\n", len(records))
				return nil
			})
		},
	}
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write the current catalog to a file (\"-\" for stdout)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				result, err := a.data.Load(cmd.Context())
				if err != nil {
					return err
				}
				if args[0] == "-" {
					_, err := io.WriteString(cmd.OutOrStdout(), canonicalText(result.Records))
					return err
				}
				if err := a.data.Export(cmd.Context(), args[0], result.Records); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records from %s catalog to %s\n", len(result.Records), result.Origin, args[0])
				return nil
			})
		},
	}
}

func newSaveCommand(ctx *commandContext) *cobra.Command {
	var clearSaved bool

	cmd := &cobra.Command{
		Use:   "save [file]",
		Short: "Save catalog text to local storage (admin)",
		Long: "Parse catalog text from a file (or stdin with \"-\") and save it to local\n" +
			"storage, where it takes precedence over the data file. Invalid records are\n" +
			"reported but still saved. --clear removes the saved catalog instead.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !clearSaved && len(args) == 0 {
				return fmt.Errorf("save needs a file argument (or --clear)")
			}
			return ctx.withApp(cmd, func(a *app) error {
				if _, err := a.requireSession(cmd.Context()); err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if clearSaved {
					if err := a.data.ClearLocal(cmd.Context()); err != nil {
						return err
					}
					fmt.Fprintln(out, "Cleared locally saved catalog")
					return nil
				}

				records, err := readCatalogFile(cmd, args[0])
				if err != nil {
					return err
				}
				if _, err := a.data.SaveLocal(cmd.Context(), records); err != nil {
					return err
				}
				fmt.Fprintf(out, "Saved %d records to local storage\n", len(records))
				if resp := api.ValidateRecords(records, nil); !resp.Valid {
					palette := a.palette(cmd)
					for _, msg := range resp.Messages {
						fmt.Fprintln(out, renderStatusLine("Warning", statusWarn, msg, palette))
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&clearSaved, "clear", false, "Remove the locally saved catalog")
	return cmd
}
