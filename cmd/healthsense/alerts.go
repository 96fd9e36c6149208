package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/healthsense/healthsense/internal/types"
)

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Show the alert feed",
	Long:  `List health alerts raised by AI analysis, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		alerts := controller.Alerts()

		if len(alerts) == 0 {
			gray := color.New(color.FgHiBlack).SprintFunc()
			fmt.Printf("%s\n", gray("No alerts."))
			return nil
		}

		for _, alert := range alerts {
			fmt.Printf("%s %s %s\n", riskBadge(alert.Risk), alert.Title, riskLabel(alert.Risk))
			if alert.Detail != "" {
				fmt.Printf("    %s\n", alert.Detail)
			}
			gray := color.New(color.FgHiBlack).SprintFunc()
			fmt.Printf("    %s\n\n", gray(alert.Timestamp))
		}
		return nil
	},
}

func riskBadge(risk types.RiskLevel) string {
	switch risk {
	case types.RiskCritical:
		return color.New(color.FgRed, color.Bold).Sprint("●")
	case types.RiskModerate:
		return color.New(color.FgYellow).Sprint("●")
	default:
		return color.New(color.FgGreen).Sprint("●")
	}
}

func riskLabel(risk types.RiskLevel) string {
	switch risk {
	case types.RiskCritical:
		return color.New(color.FgRed).Sprintf("[%s]", risk)
	case types.RiskModerate:
		return color.New(color.FgYellow).Sprintf("[%s]", risk)
	default:
		return color.New(color.FgGreen).Sprintf("[%s]", risk)
	}
}

func init() {
	rootCmd.AddCommand(alertsCmd)
}
