package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gramtest/gramtest/internal/bank"
)

// isolate keeps Load away from the developer's own config and .env files.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "questions.xlsx", cfg.Bank)
	assert.Equal(t, Sheets{Easy: "Sheet1", Medium: "Sheet2", Hard: "Sheet3"}, cfg.Sheets)
	assert.Equal(t, "lenient", cfg.MarkerPolicy)
	assert.Equal(t, 20, cfg.Questions)
	assert.Equal(t, uint64(0), cfg.Seed)
	assert.Equal(t, "test_results.csv", cfg.Results)
	assert.Equal(t, "en", cfg.Lang)
	assert.Equal(t, Log{Level: "info", Format: "console"}, cfg.Log)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFileInWorkingDir(t *testing.T) {
	dir := isolate(t)
	content := `
bank: bank.yaml
questions: 12
lang: zh
sheets:
  easy: Easy
  medium: Medium
  hard: Hard
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gramtest.yaml"), []byte(content), 0o644))

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "bank.yaml", cfg.Bank)
	assert.Equal(t, 12, cfg.Questions)
	assert.Equal(t, "zh", cfg.Lang)
	assert.Equal(t, "Medium", cfg.Sheets.Medium)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadExplicitConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 99\nmarker_policy: strict\n"), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, "strict", cfg.MarkerPolicy)

	_, err = Load(filepath.Join(dir, "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestLoadEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("GRAMTEST_QUESTIONS", "5")
	t.Setenv("GRAMTEST_LOG_LEVEL", "warn")
	t.Setenv("GRAMTEST_SHEETS_HARD", "Difficult")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Questions)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "Difficult", cfg.Sheets.Hard)
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GRAMTEST_RESULTS=out/r.csv\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("GRAMTEST_RESULTS") })

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "out/r.csv", cfg.Results)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("GRAMTEST_LANG", "zh")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("lang", "", "")
	fs.String("bank", "", "")
	fs.Int("questions", 0, "")
	require.NoError(t, fs.Parse([]string{"--lang", "en", "--questions", "3"}))

	cfg, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.Lang)
	assert.Equal(t, 3, cfg.Questions)
	// Unset flags keep the default.
	assert.Equal(t, "questions.xlsx", cfg.Bank)
}

func TestValidate(t *testing.T) {
	isolate(t)
	base, err := Load("", nil)
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty bank", func(c *Config) { c.Bank = " " }},
		{"bad marker policy", func(c *Config) { c.MarkerPolicy = "loose" }},
		{"zero questions", func(c *Config) { c.Questions = 0 }},
		{"empty sheet", func(c *Config) { c.Sheets.Hard = "" }},
		{"duplicate sheet", func(c *Config) { c.Sheets.Hard = c.Sheets.Easy }},
		{"unsupported lang", func(c *Config) { c.Lang = "fr" }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := *base
			tt.mutate(&c)
			assert.ErrorIs(t, c.Validate(), ErrInvalid)
		})
	}
}

func TestBankOptions(t *testing.T) {
	c := Config{MarkerPolicy: "strict", Sheets: Sheets{Easy: "E", Medium: "M", Hard: "H"}}
	opts, err := c.BankOptions()
	require.NoError(t, err)
	assert.Equal(t, bank.MarkerStrict, opts.MarkerPolicy)
	assert.Equal(t, "M", opts.Sheets[bank.Medium])
}
