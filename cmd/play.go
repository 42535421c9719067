package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gramtest/gramtest/internal/app"
	"github.com/gramtest/gramtest/internal/i18n"
	"github.com/gramtest/gramtest/internal/logger"
	"github.com/gramtest/gramtest/internal/results"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Take the grammar test",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func init() {
	addPlayFlags(playCmd.Flags())
}

// runPlay loads the bank, opens the stores and launches the TUI.
func runPlay(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	log, err := logger.New(logger.ForTUI(cfg.Log, dbPath))
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	repo, _, err := loadBank(ctx, cfg, log)
	if err != nil {
		return err
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	tr, err := i18n.New(cfg.Lang, log)
	if err != nil {
		return err
	}

	name, _ := cmd.Flags().GetString("name")
	return app.Run(app.Options{
		Repo:        repo,
		Attempts:    st.AttemptRepo(),
		Results:     results.New(cfg.Results),
		ReportDir:   cfg.ReportDir,
		Translator:  tr,
		Logger:      log,
		Questions:   cfg.Questions,
		Seed:        cfg.Seed,
		Participant: name,
	})
}
