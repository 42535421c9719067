// Package logger builds the zap logger used across gramtest.
package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gramtest/gramtest/internal/config"
)

// New builds a logger from cfg. JSON format uses zap's production encoder,
// console the development one. Output goes to cfg.File when set, else
// stderr.
func New(cfg config.Log) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	var zc zap.Config
	if cfg.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.DisableStacktrace = level > zapcore.DebugLevel

	out := "stderr"
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		out = cfg.File
	}
	zc.OutputPaths = []string{out}
	zc.ErrorOutputPaths = []string{out}

	return zc.Build()
}

// ForTUI returns cfg with a log file set, so nothing is written over the
// terminal UI. An explicit file is kept; otherwise gramtest.log next to
// dbPath is used.
func ForTUI(cfg config.Log, dbPath string) config.Log {
	if cfg.File == "" {
		cfg.File = filepath.Join(filepath.Dir(dbPath), "gramtest.log")
	}
	return cfg
}
