package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ravlabs/ravos/internal/catalog"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show exam statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		sess := a.Progress.Session()
		if sess.Profile == nil {
			fmt.Println("No operator profile yet. Run `ravos calibrate` first.")
			return nil
		}

		stats := a.Progress.Stats()
		fmt.Printf("XP: %d  ·  level %d  ·  rank %s\n", stats.XP, stats.Level, stats.Rank)
		fmt.Printf("Average score: %d%%  ·  exams taken: %d\n", stats.AverageScore, len(sess.Profile.Results))
		fmt.Println()
		for _, d := range catalog.Domains() {
			cell := stats.DomainMatrix[d]
			pct := 0
			if cell.Total > 0 {
				pct = cell.Correct * 100 / cell.Total
			}
			fmt.Printf("  %-24s %3d%%  (%d/%d)\n", d, pct, cell.Correct, cell.Total)
		}
		return nil
	},
}
