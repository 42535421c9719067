package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gramtest/gramtest/internal/bank"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Inspect the question bank",
}

var bankCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Load the question bank and list skipped rows and warnings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		_, rep, err := loadBank(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}

		fmt.Printf("Bank: %s (marker policy: %s)\n\n", rep.Path, cfg.MarkerPolicy)
		for _, d := range bank.Tiers {
			fmt.Printf("  %-8s %4d\n", d, rep.Loaded[d])
		}
		fmt.Printf("  %-8s %4d\n", "total", rep.Total())

		printIssues("Skipped rows", rep.Skipped)
		printIssues("Warnings", rep.Warnings)
		return nil
	},
}

func printIssues(title string, issues []bank.RowIssue) {
	if len(issues) == 0 {
		return
	}
	fmt.Printf("\n%s (%d)\n", title, len(issues))
	fmt.Println(strings.Repeat("─", 60))
	for _, is := range issues {
		fmt.Printf("  %-8s line %-5d %s\n", is.Difficulty, is.Line, is.Reason)
	}
}

func init() {
	bankCmd.AddCommand(bankCheckCmd)
}
