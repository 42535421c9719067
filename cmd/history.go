package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gramtest/gramtest/internal/report"
	"github.com/gramtest/gramtest/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent attempts from the history database",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		attempts, err := s.AttemptRepo().Recent(cmd.Context(), store.QueryOpts{Participant: name, Limit: limit})
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}
		if len(attempts) == 0 {
			fmt.Println("No attempts found.")
			return nil
		}

		fmt.Printf("%-19s  %-32s  %-16s  %-7s  %7s  %s\n",
			"Finished", "Session", "Participant", "Score", "Percent", "Correct")
		fmt.Println(strings.Repeat("─", 100))
		for _, a := range attempts {
			mark := ""
			if a.Exhausted {
				mark = "  (bank exhausted)"
			}
			fmt.Printf("%-19s  %-32s  %-16s  %-7s  %6.1f%%  %d/%d%s\n",
				a.FinishedAt.Local().Format(report.TimeLayout),
				a.SessionID,
				report.Truncate(a.Participant, 13),
				fmt.Sprintf("%d/%d", a.Score, a.MaxScore),
				a.Percentage,
				a.CorrectCount, a.Total, mark)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().String("name", "", "Only show this participant")
	historyCmd.Flags().Int("limit", 10, "Number of attempts to show")
}
