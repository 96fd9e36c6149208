package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/healthsense/healthsense/internal/api"
	"github.com/healthsense/healthsense/internal/report"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Serve the application over HTTP for frontends and integrations.

The API exposes vitals, readings, series windows, alerts, profile, the AI
summary, and report export under /api. Ctrl+C shuts down gracefully.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}

		// Serve mode works without a key; AI endpoints degrade to fallbacks.
		client, err := newAIClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v; AI endpoints will return fallbacks\n", err)
			client = nil
		}

		server := api.New(controller, client, report.TextRenderer{})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return server.Start(ctx, addr, cfg.Server.AllowedOrigins)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
