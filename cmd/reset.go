package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all learner data",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("this erases the profile, progress and all caches; re-run with --yes to confirm")
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Purge(); err != nil {
			return err
		}
		fmt.Println("All learner data erased.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the purge")
}
