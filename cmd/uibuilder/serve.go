package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-uibuilder/internal/preview"
	"github.com/spf13/cobra"
)

func serveCmd(g *globals) *cobra.Command {
	var (
		flags  renderFlags
		listen string
	)

	cmd := &cobra.Command{
		Use:   "serve [structure.yaml]",
		Short: "Start the preview server",
		Long: `Start an HTTP server that re-renders the structure file on every request.

Routes:
  GET  /          full page
  GET  /render    HTML fragment
  POST /render    render a YAML structure posted as the body
  GET  /views     registered views
  GET  /metrics   Prometheus metrics

Examples:
  uibuilder serve admin/settings.yaml
  uibuilder serve --listen :8080 --views-dir ./views`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := flags.overrides(cmd)
			overrides.Listen = listen
			if len(args) == 1 {
				overrides.Structure = args[0]
			}
			cfg, err := g.loadConfig(overrides)
			if err != nil {
				return err
			}

			srv, err := preview.New(cfg, preview.WithLogger(g.logger()))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "Listen address (default from uibuilder.yaml or localhost:7070)")

	return cmd
}
