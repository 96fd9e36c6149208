package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/healthsense/healthsense/internal/app"
	"github.com/healthsense/healthsense/internal/profile"
	"github.com/healthsense/healthsense/internal/types"
)

var (
	profileName   string
	profileAge    string
	profileGender string
	profilePhoto  string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the user profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireOnboarded(); err != nil {
			return err
		}
		p := controller.Profile()

		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()

		fmt.Printf("\n%s\n\n", cyan("=== Profile ==="))
		fmt.Printf("  Name:   %s\n", profile.DisplayName(p))
		fmt.Printf("  Age:    %s\n", p.Age)
		fmt.Printf("  Gender: %s\n", profile.Capitalize(string(p.Gender)))
		fmt.Printf("  Email:  %s\n", profile.DerivedEmail(p))
		if p.Photo != "" {
			fmt.Printf("  Photo:  %s\n", gray(truncate(p.Photo, 48)))
		}
		fmt.Println()
		return nil
	},
}

var profileSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Complete onboarding or update the profile",
	Long: `Create or update the user profile. Name and age are required; when
no photo is supplied a deterministic avatar is assigned from the gender's
built-in set, e.g.:

  healthsense profile setup --name Maria --age 29 --gender female`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		p := mergeProfileFlags(controller.Profile(),
			profileName, profileAge, profileGender,
			profilePhoto, cmd.Flags().Changed("photo"))

		var err error
		if controller.State() == app.StateReady {
			err = controller.UpdateProfile(ctx, p)
		} else {
			err = controller.CompleteOnboarding(ctx, p)
		}
		if err != nil {
			return err
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Profile saved for %s\n", green("✓"), profile.DisplayName(controller.Profile()))
		return nil
	},
}

// mergeProfileFlags overlays the setup flags onto the stored profile.
// Unset flags keep the current values; the photo only changes when --photo
// was given, so `--photo ""` clears it (re-deriving the avatar) while
// omitting the flag keeps whatever photo is already set.
func mergeProfileFlags(p types.UserProfile, name, age, gender, photo string, photoSet bool) types.UserProfile {
	if name != "" {
		p.Name = name
	}
	if age != "" {
		p.Age = age
	}
	if gender != "" {
		p.Gender = types.Gender(gender)
	}
	if photoSet {
		p.Photo = photo
	}
	return p
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

func init() {
	profileSetupCmd.Flags().StringVar(&profileName, "name", "", "User name")
	profileSetupCmd.Flags().StringVar(&profileAge, "age", "", "User age")
	profileSetupCmd.Flags().StringVar(&profileGender, "gender", "", "Gender: male, female, or other")
	profileSetupCmd.Flags().StringVar(&profilePhoto, "photo", "", "Photo as a data URI (optional)")
	profileCmd.AddCommand(profileSetupCmd)
	rootCmd.AddCommand(profileCmd)
}
