package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gramtest/gramtest/internal/report"
	"github.com/gramtest/gramtest/internal/results"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "List rows of the results CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		rows, err := results.New(cfg.Results).ReadAll()
		if err != nil {
			return fmt.Errorf("read results: %w", err)
		}

		var shown []results.Row
		for _, r := range rows {
			if name == "" || r.ParticipantName == name {
				shown = append(shown, r)
			}
		}
		if limit > 0 && len(shown) > limit {
			shown = shown[len(shown)-limit:]
		}

		if len(shown) == 0 {
			fmt.Println("No results found.")
			return nil
		}

		fmt.Printf("%-19s  %-20s  %-9s  %7s  %7s  %s\n",
			"Timestamp", "Participant", "Score", "Percent", "Correct", "E/M/H")
		fmt.Println(strings.Repeat("─", 80))
		for _, r := range shown {
			fmt.Printf("%-19s  %-20s  %-9s  %6.1f%%  %3d/%-3d  %d/%d/%d\n",
				r.Timestamp.Format(report.TimeLayout),
				report.Truncate(r.ParticipantName, 17),
				fmt.Sprintf("%d/%d", r.Score, r.MaxScore),
				r.Percentage,
				r.CorrectCount, r.TotalQuestions,
				r.EasyCount, r.MediumCount, r.HardCount)
		}
		fmt.Printf("\n%d results\n", len(shown))
		return nil
	},
}

func init() {
	resultsCmd.Flags().String("name", "", "Only show this participant")
	resultsCmd.Flags().Int("limit", 0, "Show only the last N rows (0 = all)")
}
