package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gramtest/gramtest/internal/i18n"
	"github.com/gramtest/gramtest/internal/session"
)

// FileName is the report file name for an attempt.
func FileName(s *session.Summary) string {
	return fmt.Sprintf("report_%s_%s.txt", session.SafeName(s.ParticipantName), s.SessionID)
}

// Save writes the report for s into dir, creating dir if needed, and returns
// the file path.
func Save(dir string, s *session.Summary, tr *i18n.Translator) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(dir, FileName(s))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	if err := Write(f, s, tr); err != nil {
		f.Close()
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close report: %w", err)
	}
	return path, nil
}
