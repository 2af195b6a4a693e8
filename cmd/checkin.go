package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkinCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Run the daily check-in",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		insight, streak, err := a.DailyBriefing(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Sync streak: %d day(s)\n", streak)
		fmt.Println(insight)
		return nil
	},
}
