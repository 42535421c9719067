package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gramtest/gramtest/internal/config"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "gramtest.log")

	log, err := New(config.Log{Level: "info", Format: "json", File: path})
	require.NoError(t, err)
	log.Debug("hidden")
	log.Info("attempt finished")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"attempt finished"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestNewConsoleDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	log, err := New(config.Log{Level: "debug", Format: "console", File: path})
	require.NoError(t, err)
	log.Debug("row skipped")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "row skipped")
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(config.Log{Level: "shout", Format: "console"})
	assert.Error(t, err)
}

func TestForTUI(t *testing.T) {
	got := ForTUI(config.Log{Level: "info"}, filepath.Join("data", "gramtest.db"))
	assert.Equal(t, filepath.Join("data", "gramtest.log"), got.File)

	got = ForTUI(config.Log{File: "mine.log"}, "data/gramtest.db")
	assert.Equal(t, "mine.log", got.File)
}
