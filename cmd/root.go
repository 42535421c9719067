package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/gramtest/gramtest/internal/bank"
	"github.com/gramtest/gramtest/internal/config"
	"github.com/gramtest/gramtest/internal/logger"
	"github.com/gramtest/gramtest/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "gramtest",
	Short: "Adaptive English grammar test",
	Long: "gramtest runs an adaptive multiple-choice grammar test in the terminal. " +
		"Question difficulty follows your answers; results are kept in a CSV file and a local history database.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default ./gramtest.yaml or ~/.config/gramtest/gramtest.yaml)")
	pf.String("bank", "", "Question bank file (.xlsx or .yaml)")
	pf.String("marker-policy", "", "Handling of bad correct_option markers: lenient or strict")
	pf.String("db", "", "Path to SQLite history database (overrides GRAMTEST_DB env var)")
	pf.String("results", "", "Results CSV file")
	pf.String("lang", "", "Language for screens and reports (en, zh)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("log-format", "", "Log format: console or json")
	pf.String("log-file", "", "Log file (default stderr, or gramtest.log next to the database while testing)")

	addPlayFlags(rootCmd.Flags())

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// addPlayFlags registers the flags that shape an attempt.
func addPlayFlags(fs *pflag.FlagSet) {
	fs.Int("questions", 0, "Questions per attempt (default 20)")
	fs.Uint64("seed", 0, "Seed for question selection (0 = random)")
	fs.String("report-dir", "", "Write a text report for every attempt into this directory")
	fs.String("name", "", "Participant name (skips the name prompt)")
}

// loadConfig reads and validates configuration for cmd. Only flags the user
// set override lower layers.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")

	set := pflag.NewFlagSet(cmd.Name(), pflag.ContinueOnError)
	cmd.Flags().Visit(func(f *pflag.Flag) { set.AddFlag(f) })

	cfg, err := config.Load(configFile, set)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveDBPath returns the database path from configuration (--db flag,
// GRAMTEST_DB env var or config file), then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// openStore opens the attempt history database.
func openStore(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// loadBank loads the configured question bank.
func loadBank(ctx context.Context, cfg *config.Config, log *zap.Logger) (*bank.Repository, *bank.LoadReport, error) {
	opts, err := cfg.BankOptions()
	if err != nil {
		return nil, nil, err
	}
	opts.Logger = log
	return bank.Load(ctx, cfg.Bank, opts)
}

// newLogger builds the command-line logger writing to stderr or the
// configured file.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log, nil
}
