package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mediashelf/internal/api"
	"mediashelf/internal/catalog"
	"mediashelf/internal/query"
	"mediashelf/internal/render"
	"mediashelf/internal/store"
	"mediashelf/internal/textutil"
	"mediashelf/internal/theme"
)

const defaultTerminalWidth = 100

func newListCommand(ctx *commandContext) *cobra.Command {
	var (
		filter   query.Filter
		sortFlag string
		viewFlag string
		width    int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List catalog items",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				svc, err := a.catalogService()
				if err != nil {
					return err
				}
				sortKey := query.ParseSortKey(firstNonEmpty(sortFlag, a.cfg.Display.Sort))
				resp, err := svc.Items(cmd.Context(), filter, sortKey)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, resp)
				}

				view, err := resolveView(cmd, a, viewFlag)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if err := render.Items(out, resp.Items, view, terminalWidth(width)); err != nil {
					return err
				}
				if len(resp.Items) > 0 {
					fmt.Fprintf(out, "%d of %d items (%s)\n", len(resp.Items), resp.Total, resp.Origin)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&filter.Search, "search", "s", "", "Case-insensitive text matched against title, series, genres and tags")
	cmd.Flags().StringVarP(&filter.Type, "type", "t", "", "Only show this type (movie or episode)")
	cmd.Flags().StringVar(&filter.Status, "status", "", "Only show this status")
	cmd.Flags().StringVarP(&filter.Genre, "genre", "g", "", "Only show items whose genres contain this text")
	cmd.Flags().StringVar(&filter.Tag, "tag", "", "Only show items whose tags contain this text")
	cmd.Flags().StringVar(&sortFlag, "sort", "", "Sort by title, year or rating (default from config)")
	cmd.Flags().StringVar(&viewFlag, "view", "", "Render as grid or list (default from saved preference)")
	cmd.Flags().IntVar(&width, "width", 0, "Terminal width used to lay out cards")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

// resolveView picks the flag value, then the saved preference, then config.
func resolveView(cmd *cobra.Command, a *app, flagValue string) (render.View, error) {
	if strings.TrimSpace(flagValue) != "" {
		return render.ParseView(flagValue), nil
	}
	saved, ok, err := store.Lookup(cmd.Context(), a.state, store.KeyDisplayView)
	if err != nil {
		return "", err
	}
	if ok {
		return render.ParseView(saved), nil
	}
	return render.ParseView(a.cfg.Display.View), nil
}

func terminalWidth(flagValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && cols > 0 {
		return cols
	}
	return defaultTerminalWidth
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <title>",
		Short: "Show every field of the best-matching item",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := strings.Join(args, " ")
			return ctx.withApp(cmd, func(a *app) error {
				result, err := a.data.Load(cmd.Context())
				if err != nil {
					return err
				}
				rec, others, ok := findRecord(result.Records, q)
				if !ok {
					return fmt.Errorf("no item matches %q", q)
				}
				if asJSON {
					return writeJSON(cmd, rec)
				}
				out := cmd.OutOrStdout()
				if err := render.Detail(out, rec); err != nil {
					return err
				}
				if len(others) > 0 {
					fmt.Fprintf(out, "\nOther matches: %s\n", strings.Join(others, "; "))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

const maxOtherMatches = 3

// findRecord prefers an exact title match and otherwise ranks titles by
// token similarity. others names the next best candidates.
func findRecord(records []catalog.Record, q string) (catalog.Record, []string, bool) {
	full := make([]string, len(records))
	plain := make([]string, len(records))
	for i, rec := range records {
		full[i] = render.ListTitle(rec)
		plain[i] = rec.Title
	}
	if i := textutil.Exact(q, full); i >= 0 {
		return records[i], nil, true
	}
	if i := textutil.Exact(q, plain); i >= 0 {
		return records[i], nil, true
	}
	matches := textutil.Rank(q, full)
	if len(matches) == 0 {
		return catalog.Record{}, nil, false
	}
	var others []string
	for _, m := range matches[1:min(len(matches), maxOtherMatches+1)] {
		others = append(others, full[m.Index])
	}
	return records[matches[0].Index], others, true
}

func newMetaCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "meta",
		Short: "List the distinct genres, tags, statuses and years",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				svc, err := a.catalogService()
				if err != nil {
					return err
				}
				snap, origin, err := svc.Current(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, api.FromMeta(snap.Meta, string(origin)))
				}
				meta := snap.Meta.Compact()
				rows := [][]string{
					{"Genres", strconv.Itoa(len(meta.Genres)), strings.Join(meta.Genres, ", ")},
					{"Tags", strconv.Itoa(len(meta.Tags)), strings.Join(meta.Tags, ", ")},
					{"Statuses", strconv.Itoa(len(meta.Statuses)), strings.Join(meta.Statuses, ", ")},
					{"Years", strconv.Itoa(len(meta.Years)), strings.Join(meta.Years, ", ")},
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Facet", "Count", "Values"}, rows, []columnAlignment{alignLeft, alignRight, alignLeft}))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newValidateCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check the catalog (or a catalog file) for invalid records",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				var resp api.ValidateResponse
				if len(args) == 1 {
					records, err := readCatalogFile(cmd, args[0])
					if err != nil {
						return err
					}
					resp = api.ValidateRecords(records, nil)
				} else {
					svc, err := a.catalogService()
					if err != nil {
						return err
					}
					if resp, err = svc.Validate(cmd.Context()); err != nil {
						return err
					}
				}

				if asJSON {
					if err := writeJSON(cmd, resp); err != nil {
						return err
					}
				} else {
					printValidation(cmd, resp, a.palette(cmd))
				}
				if !resp.Valid {
					return fmt.Errorf("%d error(s) found", len(resp.Diagnostics))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func printValidation(cmd *cobra.Command, resp api.ValidateResponse, palette *theme.Palette) {
	out := cmd.OutOrStdout()
	for _, line := range renderSectionHeader("Validation", palette) {
		fmt.Fprintln(out, line)
	}
	for _, d := range resp.Diagnostics {
		fmt.Fprintln(out, renderStatusLine(fmt.Sprintf("Line %d", d.Line), statusError, d.Message, palette))
	}
	if resp.Valid {
		fmt.Fprintln(out, renderStatusLine("Catalog", statusOK, fmt.Sprintf("Data is valid (%d records)", resp.Records), palette))
		return
	}
	fmt.Fprintln(out, renderStatusLine("Catalog", statusError, fmt.Sprintf("%d error(s) found in %d records", len(resp.Diagnostics), resp.Records), palette))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
