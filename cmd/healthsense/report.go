package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/healthsense/healthsense/internal/report"
)

var (
	reportOut  string
	reportNoAI bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export a medical report",
	Long: `Build an exportable medical report: per-metric statistics over the
weekly and monthly windows plus an AI interpretation of each section.
Metrics with no recorded data are skipped.

By default the report is written to stdout; use --out to write a file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireOnboarded(); err != nil {
			return err
		}
		ctx := context.Background()

		var interp report.Interpreter
		if !reportNoAI {
			client, err := newAIClient()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v; sections will carry fallback text\n", err)
			} else {
				interp = client
			}
		}

		doc := report.Build(ctx, interp, controller.ReportInput())

		out := os.Stdout
		if reportOut != "" {
			f, err := os.Create(reportOut)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		if err := (report.TextRenderer{}).Render(doc, out); err != nil {
			return err
		}

		if reportOut != "" {
			green := color.New(color.FgGreen).SprintFunc()
			fmt.Printf("%s Report written to %s (%d sections)\n", green("✓"), reportOut, len(doc.Sections))
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "Write the report to a file")
	reportCmd.Flags().BoolVar(&reportNoAI, "no-ai", false, "Skip AI interpretations")
	rootCmd.AddCommand(reportCmd)
}
