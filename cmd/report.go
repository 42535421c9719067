package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gramtest/gramtest/internal/i18n"
	"github.com/gramtest/gramtest/internal/report"
	"github.com/gramtest/gramtest/internal/store"
)

var reportCmd = &cobra.Command{
	Use:   "report <session-id>",
	Short: "Print the text report of a stored attempt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outDir, _ := cmd.Flags().GetString("out")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		a, err := s.AttemptRepo().Get(cmd.Context(), args[0])
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no attempt with session id %q", args[0])
		}
		if err != nil {
			return fmt.Errorf("load attempt: %w", err)
		}

		tr, err := i18n.New(cfg.Lang, nil)
		if err != nil {
			return err
		}

		if outDir == "" {
			return report.Write(os.Stdout, a.Summary(), tr)
		}
		path, err := report.Save(outDir, a.Summary(), tr)
		if err != nil {
			return err
		}
		fmt.Println("Report written to", path)
		return nil
	},
}

func init() {
	reportCmd.Flags().String("out", "", "Write the report file into this directory instead of printing it")
}
