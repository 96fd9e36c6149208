package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var recordCmd = &cobra.Command{
	Use:   "record <metric> <value>",
	Short: "Record a measurement",
	Long: `Record one measurement for a vital sign or tracked metric.

Composite values are supported where the metric uses them, e.g.:

  healthsense record "Blood Pressure" 120/80
  healthsense record "Heart Rate" 72
  healthsense record Glucose 95`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireOnboarded(); err != nil {
			return err
		}
		metric, value := args[0], args[1]

		if err := controller.RecordMetric(context.Background(), metric, value); err != nil {
			return err
		}

		green := color.New(color.FgGreen).SprintFunc()
		unit := metricRegistry.Unit(metric)
		if unit != "" {
			fmt.Printf("%s Recorded %s: %s %s\n", green("✓"), metric, value, unit)
		} else {
			fmt.Printf("%s Recorded %s: %s\n", green("✓"), metric, value)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recordCmd)
}
