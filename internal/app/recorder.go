package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gramtest/gramtest/internal/i18n"
	"github.com/gramtest/gramtest/internal/report"
	"github.com/gramtest/gramtest/internal/results"
	"github.com/gramtest/gramtest/internal/screens/summary"
	"github.com/gramtest/gramtest/internal/session"
	"github.com/gramtest/gramtest/internal/store"
)

// recorder writes a finished attempt to the history store, the results CSV
// and, when a directory is configured, a text report. A failing sink does
// not stop the others.
type recorder struct {
	attempts  store.AttemptRepo
	results   *results.Store
	reportDir string
	tr        *i18n.Translator
	log       *zap.Logger
	now       func() time.Time
}

var _ summary.Recorder = (*recorder)(nil)

func (r *recorder) Record(ctx context.Context, s *session.Summary) (summary.Saved, error) {
	var saved summary.Saved
	var errs []error

	if r.attempts != nil {
		if err := r.attempts.Save(ctx, store.AttemptFromSummary(s)); err != nil {
			errs = append(errs, fmt.Errorf("save attempt: %w", err))
		}
	}

	if r.results != nil {
		if err := r.results.Append(results.RowFromSummary(s, r.now())); err != nil {
			errs = append(errs, fmt.Errorf("append result: %w", err))
		} else {
			saved.ResultsPath = r.results.Path()
		}
	}

	if r.reportDir != "" {
		path, err := report.Save(r.reportDir, s, r.tr)
		if err != nil {
			errs = append(errs, fmt.Errorf("write report: %w", err))
		} else {
			saved.ReportPath = path
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		r.log.Error("record attempt",
			zap.String("session_id", s.SessionID),
			zap.Error(err))
	} else {
		r.log.Info("attempt recorded",
			zap.String("session_id", s.SessionID),
			zap.Int("score", s.Score),
			zap.Int("max_score", s.MaxScore),
			zap.String("results", saved.ResultsPath),
			zap.String("report", saved.ReportPath))
	}
	return saved, err
}
