package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/healthsense/healthsense/internal/ai"
	"github.com/healthsense/healthsense/internal/profile"
	"github.com/healthsense/healthsense/internal/timeseries"
	"github.com/healthsense/healthsense/internal/types"
)

var dashboardNoAI bool

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show current vitals, tracked metrics, and the AI summary",
	Long: `Display the dashboard: every vital sign with its latest value and
weekly trend, the tracked extra metrics, and a streamed AI summary of the
current readings. Alerts extracted from the summary are merged into the
alert feed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireOnboarded(); err != nil {
			return err
		}
		ctx := context.Background()

		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()

		p := controller.Profile()
		fmt.Printf("\n%s\n", cyan(fmt.Sprintf("=== Hello, %s ===", profile.DisplayName(p))))
		fmt.Println()

		yellow := color.New(color.FgYellow).SprintFunc()
		fmt.Printf("%s\n", yellow("Vitals:"))
		for _, vital := range controller.VitalsForDisplay() {
			fmt.Printf("  %-16s %8s %-8s %s\n",
				vital.Name, vital.Value, vital.Unit, gray(sparkline(vital.History)))
		}
		fmt.Println()

		extras := controller.ExtraMetricsForDisplay()
		if len(extras) > 0 {
			fmt.Printf("%s\n", yellow("Tracked Metrics:"))
			for _, metric := range extras {
				fmt.Printf("  %-16s %8s %s\n", metric.Name, metric.Value, metric.Unit)
			}
			fmt.Println()
		}

		if dashboardNoAI {
			return nil
		}

		fmt.Printf("%s\n", yellow("AI Summary:"))
		line := controller.MetricsLine()
		if line == "" {
			fmt.Printf("  %s\n", gray(ai.FallbackNoData))
			return nil
		}

		client, err := newAIClient()
		if err != nil {
			fmt.Printf("  %s\n", gray(ai.FallbackGeneric))
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			return nil
		}

		fmt.Print("  ")
		result, err := client.StreamSummary(ctx, line, func(delta string) {
			fmt.Print(delta)
		})
		fmt.Println()
		if err != nil {
			fmt.Printf("  %s\n", gray(ai.FallbackMessage(err)))
			return nil
		}

		if result.Critical {
			red := color.New(color.FgRed, color.Bold).SprintFunc()
			fmt.Printf("\n%s\n", red("⚠ Critical readings detected — seek medical attention if symptoms persist."))
		}

		changed, err := controller.AddAlerts(ctx, result.Alerts)
		if err != nil {
			return err
		}
		if changed {
			fmt.Printf("\n%s\n", gray("New alerts added. Run 'healthsense alerts' to review."))
		}
		return nil
	},
}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// sparkline renders a weekly window as a tiny inline trend. Days without a
// reading show as spaces.
func sparkline(points []types.HealthDataPoint) string {
	stats, ok := timeseries.Stats(points)
	if !ok {
		return ""
	}
	span := stats.Max - stats.Min

	runes := make([]rune, 0, len(points))
	for _, p := range points {
		if p.Value == 0 {
			runes = append(runes, ' ')
			continue
		}
		idx := 0
		if span > 0 {
			idx = int((p.Value - stats.Min) / span * float64(len(sparkRunes)-1))
		}
		runes = append(runes, sparkRunes[idx])
	}
	return string(runes)
}

func init() {
	dashboardCmd.Flags().BoolVar(&dashboardNoAI, "no-ai", false, "Skip the AI summary")
	rootCmd.AddCommand(dashboardCmd)
}
