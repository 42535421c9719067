// Package config loads gramtest settings from defaults, an optional config
// file, a .env file, GRAMTEST_* environment variables and command flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/gramtest/gramtest/internal/bank"
	"github.com/gramtest/gramtest/internal/i18n"
	"github.com/gramtest/gramtest/internal/results"
	"github.com/gramtest/gramtest/internal/session"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "GRAMTEST"

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds application configuration.
type Config struct {
	Bank         string `mapstructure:"bank"`          // question bank file (.xlsx or .yaml)
	Sheets       Sheets `mapstructure:"sheets"`        // sheet name per tier
	MarkerPolicy string `mapstructure:"marker_policy"` // lenient or strict
	Questions    int    `mapstructure:"questions"`     // answers per attempt
	Seed         uint64 `mapstructure:"seed"`          // 0 = time based
	Results      string `mapstructure:"results"`       // results CSV path
	DB           string `mapstructure:"db"`            // attempt history database ("" = default path)
	ReportDir    string `mapstructure:"report_dir"`    // write a text report per attempt when set
	Lang         string `mapstructure:"lang"`          // report and screen language
	Log          Log    `mapstructure:"log"`
}

// Sheets names the workbook sheet of each tier.
type Sheets struct {
	Easy   string `mapstructure:"easy"`
	Medium string `mapstructure:"medium"`
	Hard   string `mapstructure:"hard"`
}

// Log configures the zap logger.
type Log struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // console or json
	File   string `mapstructure:"file"`   // "" = stderr, or a default file while the TUI runs
}

// flagKeys maps command flag names to configuration keys.
var flagKeys = map[string]string{
	"bank":          "bank",
	"marker-policy": "marker_policy",
	"questions":     "questions",
	"seed":          "seed",
	"results":       "results",
	"db":            "db",
	"report-dir":    "report_dir",
	"lang":          "lang",
	"log-level":     "log.level",
	"log-format":    "log.format",
	"log-file":      "log.file",
}

func setDefaults(v *viper.Viper) {
	sheets := bank.DefaultSheets()
	v.SetDefault("bank", "questions.xlsx")
	v.SetDefault("sheets.easy", sheets[bank.Easy])
	v.SetDefault("sheets.medium", sheets[bank.Medium])
	v.SetDefault("sheets.hard", sheets[bank.Hard])
	v.SetDefault("marker_policy", string(bank.MarkerLenient))
	v.SetDefault("questions", session.DefaultLength)
	v.SetDefault("seed", 0)
	v.SetDefault("results", results.DefaultPath)
	v.SetDefault("db", "")
	v.SetDefault("report_dir", "")
	v.SetDefault("lang", i18n.DefaultLang)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
}

// Load reads configuration. configFile, when set, replaces the config file
// search; flags may be nil.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("gramtest")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/gramtest")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Bank) == "" {
		return fmt.Errorf("%w: bank path is empty", ErrInvalid)
	}
	if _, err := bank.ParseMarkerPolicy(c.MarkerPolicy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Questions <= 0 {
		return fmt.Errorf("%w: questions must be positive, got %d", ErrInvalid, c.Questions)
	}

	seen := map[string]bank.Difficulty{}
	for d, name := range c.SheetMap() {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: sheet name for %s is empty", ErrInvalid, d)
		}
		if other, ok := seen[name]; ok {
			return fmt.Errorf("%w: sheet %q used for both %s and %s", ErrInvalid, name, other, d)
		}
		seen[name] = d
	}

	if !i18n.Supported(c.Lang) {
		return fmt.Errorf("%w: unsupported language %q (have %s)", ErrInvalid, c.Lang, strings.Join(i18n.Languages(), ", "))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log level: %v", ErrInvalid, err)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log format %q (want console or json)", ErrInvalid, c.Log.Format)
	}
	return nil
}

// SheetMap returns the sheet names keyed by tier.
func (c *Config) SheetMap() map[bank.Difficulty]string {
	return map[bank.Difficulty]string{
		bank.Easy:   c.Sheets.Easy,
		bank.Medium: c.Sheets.Medium,
		bank.Hard:   c.Sheets.Hard,
	}
}

// BankOptions builds the loader options for the configured bank.
func (c *Config) BankOptions() (bank.Options, error) {
	policy, err := bank.ParseMarkerPolicy(c.MarkerPolicy)
	if err != nil {
		return bank.Options{}, err
	}
	return bank.Options{Sheets: c.SheetMap(), MarkerPolicy: policy}, nil
}
