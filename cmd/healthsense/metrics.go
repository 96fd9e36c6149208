package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Manage tracked extra metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var metricsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the selectable metric catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		tracked := make(map[string]bool)
		for _, name := range controller.ExtraMetrics() {
			tracked[name] = true
		}

		yellow := color.New(color.FgYellow).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()

		for _, category := range controller.Catalog() {
			fmt.Printf("%s\n", yellow(category.Name))
			for _, metric := range category.Metrics {
				marker := gray("○")
				if tracked[metric.Name] {
					marker = green("●")
				}
				fmt.Printf("  %s %-24s %s\n", marker, metric.Name, gray(metric.Unit))
			}
			fmt.Println()
		}
		return nil
	},
}

var metricsTrackCmd = &cobra.Command{
	Use:   "track <metric>...",
	Short: "Replace the tracked metric set",
	Long: `Replace the set of tracked extra metrics. Names must come from the
catalog (see 'healthsense metrics list'), e.g.:

  healthsense metrics track Steps "Sleep Stages" BMI`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireOnboarded(); err != nil {
			return err
		}
		if err := controller.SetExtraMetrics(context.Background(), args); err != nil {
			return err
		}
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Tracking: %s\n", green("✓"), strings.Join(controller.ExtraMetrics(), ", "))
		return nil
	},
}

var metricsUntrackCmd = &cobra.Command{
	Use:   "untrack <metric>...",
	Short: "Stop tracking metrics",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireOnboarded(); err != nil {
			return err
		}
		drop := make(map[string]bool, len(args))
		for _, name := range args {
			drop[name] = true
		}
		var keep []string
		for _, name := range controller.ExtraMetrics() {
			if !drop[name] {
				keep = append(keep, name)
			}
		}
		if err := controller.SetExtraMetrics(context.Background(), keep); err != nil {
			return err
		}
		green := color.New(color.FgGreen).SprintFunc()
		if len(keep) == 0 {
			fmt.Printf("%s No extra metrics tracked\n", green("✓"))
		} else {
			fmt.Printf("%s Tracking: %s\n", green("✓"), strings.Join(keep, ", "))
		}
		return nil
	},
}

func init() {
	metricsCmd.AddCommand(metricsListCmd)
	metricsCmd.AddCommand(metricsTrackCmd)
	metricsCmd.AddCommand(metricsUntrackCmd)
	rootCmd.AddCommand(metricsCmd)
}
