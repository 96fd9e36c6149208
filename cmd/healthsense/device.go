package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/healthsense/healthsense/internal/ble"
)

var deviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Work with paired health devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var deviceImportCmd = &cobra.Command{
	Use:   "import <capture-file>",
	Short: "Import a GATT notification capture",
	Long: `Decode a captured GATT notification log and record the measurements.

The capture format is one frame per line: the characteristic name followed
by the frame bytes in hex. '#' starts a comment. Example:

  # resting measurements
  heart_rate_measurement 00 48
  plx_spot_check_measurement 00 d6 03
  blood_pressure_measurement 00 78 00 50 00
  temperature_measurement 00 cd cc 13 42

Supported characteristics: heart_rate_measurement,
plx_spot_check_measurement, blood_pressure_measurement,
temperature_measurement, battery_level.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireOnboarded(); err != nil {
			return err
		}
		ctx := context.Background()

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open capture: %w", err)
		}
		defer f.Close()

		frames, err := ble.ParseFrames(f)
		if err != nil {
			return err
		}
		if len(frames) == 0 {
			return fmt.Errorf("capture contains no frames")
		}

		recorded := 0
		var firstErr error
		transport := ble.NewReplayTransport(frames)
		session := ble.NewSession(transport, func(metric, value string) {
			if err := controller.RecordMetric(ctx, metric, value); err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			recorded++
			fmt.Printf("  %s: %s\n", metric, value)
		})
		transport.SetDisconnectCallback(session.OnDeviceDropped)

		if err := session.Connect(ctx); err != nil {
			return err
		}
		if err := transport.Play(); err != nil {
			return err
		}
		if err := session.Disconnect(); err != nil {
			return err
		}
		if firstErr != nil {
			return firstErr
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Imported %d measurements from %d frames\n", green("✓"), recorded, len(frames))
		return nil
	},
}

func init() {
	deviceCmd.AddCommand(deviceImportCmd)
	rootCmd.AddCommand(deviceCmd)
}
