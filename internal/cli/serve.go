// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shauraya-mohan/chatbot/internal/config"
	"github.com/shauraya-mohan/chatbot/internal/server"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP backend for the website widget",
		Long: `Run the HTTP backend for the website chat widget.

Endpoints:
  POST /api/messages               send a message, receive the reply
  POST /api/quick-actions/{index}  send a quick action
  GET  /api/greeting               the greeting shown when the widget opens
  GET  /api/history                the conversation so far
  GET  /api/transcript?format=F     the conversation as markdown, html or json
  GET  /api/quick-actions          the quick action buttons
  GET  /healthz                    readiness (503 until reference data loads)
  GET  /metrics                    Prometheus metrics

SIGINT or SIGTERM shuts the server down gracefully.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Server.Listen = listen
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runServer(ctx, cfg)
		},
	}
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (overrides server.listen)")
	return cmd
}

func runServer(ctx context.Context, cfg *config.Config) error {
	// The widget animates progressive replies itself.
	a, err := newApp(ctx, cfg, appOptions{instant: true})
	if err != nil {
		return err
	}
	defer a.Close()

	srv := server.New(a.session, serverOptions(cfg),
		server.WithLogger(a.logger),
		server.WithGatherer(a.registry),
		server.WithUsage(a.usage),
	)
	a.logger.Info("starting server",
		zap.String("listen", cfg.Server.Listen),
		zap.String("model", cfg.Completion.Model),
	)
	return srv.ListenAndServe(ctx)
}

func serverOptions(cfg *config.Config) server.Options {
	interval := cfg.Reveal.Interval()
	if cfg.Reveal.Disabled {
		interval = 0
	}
	return server.Options{
		Listen:          cfg.Server.Listen,
		RateLimit:       cfg.Server.RateLimit,
		Burst:           cfg.Server.Burst,
		MaxBodyBytes:    cfg.Server.MaxBodyBytes,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		RevealInterval:  interval,
		ShutdownTimeout: cfg.Server.ShutdownTimeout(),
	}
}
