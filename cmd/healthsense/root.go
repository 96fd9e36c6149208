package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/healthsense/healthsense/internal/ai"
	"github.com/healthsense/healthsense/internal/app"
	"github.com/healthsense/healthsense/internal/config"
	"github.com/healthsense/healthsense/internal/registry"
	"github.com/healthsense/healthsense/internal/storage"
)

var (
	cfgPath string
	dbPath  string
	verbose bool

	cfg            *config.Config
	store          storage.Storage
	controller     *app.Controller
	metricRegistry registry.Registry
)

var rootCmd = &cobra.Command{
	Use:   "healthsense",
	Short: "Personal health tracker with AI insights",
	Long: `HealthSense tracks your vital signs and custom health metrics,
keeps 7-day and 30-day history windows, and uses AI to summarize trends,
raise alerts, answer questions, and build exportable medical reports.

Data is stored locally in SQLite. AI features require ANTHROPIC_API_KEY.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; real environment variables win
		_ = godotenv.Load()

		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))

		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		if dbPath != "" {
			cfg.Database.Path = dbPath
		}

		ctx := context.Background()
		store, err = storage.NewStorage(ctx, &storage.Config{Path: cfg.Database.Path})
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}

		metricRegistry = registry.Default()
		controller, err = app.New(ctx, store, metricRegistry)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if store != nil {
			if err := store.Close(); err != nil {
				slog.Warn("failed to close database", "error", err)
			}
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// newAIClient builds the AI client from config and environment. Commands
// that need the model call this; everything else works offline.
func newAIClient() (*ai.Client, error) {
	client, err := ai.NewClient(&ai.Config{
		Model:      cfg.AI.Model,
		LightModel: cfg.AI.LightModel,
	})
	if err != nil {
		return nil, fmt.Errorf("AI features unavailable: %w", err)
	}
	return client, nil
}

// requireOnboarded stops commands that need a profile before onboarding ran
func requireOnboarded() error {
	if controller.State() != app.StateReady {
		return fmt.Errorf("no profile yet: run 'healthsense profile setup' first")
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "healthsense.yaml", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
