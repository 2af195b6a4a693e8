package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Mirror the session to the cloud endpoint",
	Long:  "Pushes the local session to RAVOS_SYNC_URL. With --restore, pulls the remote snapshot onto a blank local session instead.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if !a.Mirror.Enabled() {
			return fmt.Errorf("no sync endpoint configured; set RAVOS_SYNC_URL")
		}

		if restore, _ := cmd.Flags().GetBool("restore"); restore {
			if a.RestoreFromMirror(cmd.Context()) {
				fmt.Println("Session restored from mirror.")
			} else {
				fmt.Println("Nothing restored: local session is calibrated or the mirror is empty.")
			}
			return nil
		}

		if err := a.Mirror.Push(cmd.Context(), a.Progress.Session()); err != nil {
			return fmt.Errorf("push failed: %w", err)
		}
		fmt.Println("Session mirrored.")
		return nil
	},
}

func init() {
	syncCmd.Flags().Bool("restore", false, "Pull the remote snapshot instead of pushing")
}
