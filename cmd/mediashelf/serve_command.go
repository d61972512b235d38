package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"mediashelf/internal/server"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog over a local HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				if strings.TrimSpace(bind) != "" {
					a.cfg.Server.Bind = bind
				}
				runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				gate, err := a.gate(runCtx)
				if err != nil {
					return err
				}
				svc, err := a.catalogService()
				if err != nil {
					return err
				}
				srv, err := server.New(a.cfg, server.Deps{
					Catalog:   svc,
					Data:      a.data,
					Gate:      gate,
					Publisher: a.publisher(),
				}, a.logger)
				if err != nil {
					return err
				}
				if err := srv.Start(runCtx); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Serving catalog API on http://%s (Ctrl+C to stop)\n", srv.Addr())
				<-runCtx.Done()
				srv.Stop()
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&bind, "bind", "", "Address to listen on (default from config)")
	return cmd
}
