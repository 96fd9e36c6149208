package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var cleanupDays int

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete old readings",
	Long: `Delete raw readings older than the retention period. The history
windows only ever look back 30 days; older rows just grow the database.

The retention period comes from the config file (retention.reading_days)
and can be overridden with --days.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		days := cfg.Retention.ReadingDays
		if cmd.Flags().Changed("days") {
			days = cleanupDays
		}

		deleted, err := store.CleanupReadings(ctx, days)
		if err != nil {
			return err
		}

		if cfg.Retention.Vacuum && deleted > 0 {
			if err := store.VacuumDatabase(ctx); err != nil {
				return err
			}
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Deleted %d readings older than %d days\n", green("✓"), deleted, days)
		return nil
	},
}

func init() {
	cleanupCmd.Flags().IntVar(&cleanupDays, "days", 90, "Retention period in days")
	rootCmd.AddCommand(cleanupCmd)
}
