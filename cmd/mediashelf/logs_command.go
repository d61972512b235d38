package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"mediashelf/internal/logging"
	"mediashelf/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var (
		lines  int
		follow bool
		raw    bool
		filter logs.Filter
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print recent entries from the mediashelf log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := filepath.Join(cfg.Paths.LogDir, logging.LogFileName)
			out := cmd.OutOrStdout()

			result, err := logs.Tail(path, logs.TailOptions{Offset: -1, Limit: lines})
			if err != nil {
				return err
			}
			if len(result.Lines) == 0 && !follow {
				fmt.Fprintf(out, "No log entries in %s\n", path)
				return nil
			}
			printLogLines(out, result.Lines, filter, raw)
			if !follow {
				return nil
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return logs.Follow(runCtx, path, result.Offset, 500*time.Millisecond, func(batch []string) error {
				printLogLines(out, batch, filter, raw)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of trailing lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new entries")
	cmd.Flags().BoolVar(&raw, "json", false, "Print raw JSON lines")
	cmd.Flags().StringVar(&filter.Level, "level", "", "Minimum level (debug, info, warn, error)")
	cmd.Flags().StringVar(&filter.Component, "component", "", "Only show entries from this component")
	return cmd
}

func printLogLines(w io.Writer, lines []string, filter logs.Filter, raw bool) {
	for _, line := range lines {
		entry, ok := logs.ParseEntry(line)
		if !ok {
			fmt.Fprintln(w, line)
			continue
		}
		if !filter.Match(entry) {
			continue
		}
		if raw {
			fmt.Fprintln(w, line)
			continue
		}
		fmt.Fprintln(w, entry.Format())
	}
}
