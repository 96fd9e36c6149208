package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/healthsense/healthsense/internal/repl"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the health assistant",
	Long: `Start an interactive chat with the AI health assistant.

The assistant sees your current readings and both history windows, so you
can ask things like "how has my heart rate trended this week?". It does not
diagnose; for medical concerns it will point you to a professional.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireOnboarded(); err != nil {
			return err
		}
		client, err := newAIClient()
		if err != nil {
			return err
		}

		r, err := repl.New(&repl.Config{
			Controller: controller,
			AI:         client,
		})
		if err != nil {
			return err
		}
		return r.Run(context.Background())
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
