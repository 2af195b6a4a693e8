package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ravlabs/ravos/internal/numerology"
	"github.com/ravlabs/ravos/internal/progress"
)

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Create the operator profile",
	Long:  "Runs the one-time calibration: derives the numerology readout and operator archetype from your name and date of birth.",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		fullName, _ := cmd.Flags().GetString("full-name")
		dob, _ := cmd.Flags().GetString("dob")
		birthTime, _ := cmd.Flags().GetString("birth-time")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if fullName == "" {
			fullName = name
		}
		num := numerology.Calculate(fullName, dob)
		arch := a.Tutor.DecryptIdentity(cmd.Context(), name, dob, num)
		if arch == nil {
			return fmt.Errorf("identity decryption failed; calibration aborted. Retry when an LLM provider is reachable")
		}

		p, err := a.Progress.CompleteCalibration(progress.CalibrationInput{
			Name:      name,
			FullName:  fullName,
			DOB:       dob,
			BirthTime: birthTime,
			Archetype: arch,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Calibration complete. Welcome, %s.\n", p.Name)
		fmt.Printf("Signature: %s  ·  life path %d\n", p.VibrationalSignature, p.Numerology.LifePath)
		fmt.Printf("Archetype: %s — %s\n", p.Archetype.Type, p.Archetype.Strategy)
		return nil
	},
}

func init() {
	calibrateCmd.Flags().String("name", "", "Display name")
	calibrateCmd.Flags().String("full-name", "", "Full birth name (defaults to --name)")
	calibrateCmd.Flags().String("dob", "", "Date of birth, YYYY-MM-DD")
	calibrateCmd.Flags().String("birth-time", "", "Time of birth, HH:MM (optional)")
	calibrateCmd.MarkFlagRequired("name")
	calibrateCmd.MarkFlagRequired("dob")
}
