package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/healthsense/healthsense/internal/timeseries"
)

var historyMonth bool

var historyCmd = &cobra.Command{
	Use:   "history <metric>",
	Short: "Show a metric's history window",
	Long: `Print a metric's trailing history window, one day per row.
The default window is the last 7 days; --month switches to 30.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		metric := args[0]
		window := timeseries.WeeklyWindow
		if historyMonth {
			window = timeseries.MonthlyWindow
		}

		points := controller.MetricHistory(metric, window)

		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()
		unit := metricRegistry.Unit(metric)

		fmt.Printf("\n%s\n\n", cyan(fmt.Sprintf("=== %s (last %d days) ===", metric, window)))
		for _, p := range points {
			if p.Value == 0 {
				fmt.Printf("  %-4s %s  %s\n", p.Label, p.Date, gray("—"))
				continue
			}
			fmt.Printf("  %-4s %s  %g %s\n", p.Label, p.Date, p.Value, unit)
		}

		if stats, ok := timeseries.Stats(points); ok {
			fmt.Printf("\n  avg %.1f  min %.1f  max %.1f  (%d readings)\n\n",
				stats.Average, stats.Min, stats.Max, stats.Count)
		} else {
			fmt.Printf("\n  %s\n\n", gray("No readings in this window."))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().BoolVar(&historyMonth, "month", false, "Show the 30-day window")
	rootCmd.AddCommand(historyCmd)
}
