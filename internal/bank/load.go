package bank

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

var (
	ErrEmptyBank         = errors.New("no valid questions in source")
	ErrMissingPartition  = errors.New("difficulty partition not found")
	ErrUnsupportedFormat = errors.New("unsupported question source format")
)

// DefaultSheets names the workbook sheet holding each tier.
func DefaultSheets() map[Difficulty]string {
	return map[Difficulty]string{
		Easy:   "Sheet1",
		Medium: "Sheet2",
		Hard:   "Sheet3",
	}
}

// Options configures Load.
type Options struct {
	// Sheets maps each tier to its partition name in the source.
	// Missing entries fall back to DefaultSheets.
	Sheets       map[Difficulty]string
	MarkerPolicy MarkerPolicy
	Logger       *zap.Logger
}

// RowIssue describes a row that was skipped or loaded with a fallback.
type RowIssue struct {
	Difficulty Difficulty
	Line       int
	Reason     string
}

// LoadReport summarises a load for diagnostics.
type LoadReport struct {
	Path     string
	Loaded   map[Difficulty]int
	Skipped  []RowIssue
	Warnings []RowIssue
}

// Total returns the number of loaded questions.
func (r *LoadReport) Total() int {
	n := 0
	for _, c := range r.Loaded {
		n += c
	}
	return n
}

// partitionReader reads the raw rows of every tier from a source.
type partitionReader func(ctx context.Context, path string, sheets map[Difficulty]string) (map[Difficulty][]Row, error)

func readerFor(path string) (partitionReader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readXLSX, nil
	case ".yaml", ".yml":
		return readYAML, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Load reads a question source and builds the repository. Every failure is
// a *LoadError. Malformed rows are skipped and listed in the report.
func Load(ctx context.Context, path string, opts Options) (*Repository, *LoadReport, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	if _, err := os.Stat(path); err != nil {
		return nil, nil, loadErr(path, err)
	}
	read, err := readerFor(path)
	if err != nil {
		return nil, nil, loadErr(path, err)
	}

	parts, err := read(ctx, path, mergeSheets(opts.Sheets))
	if err != nil {
		return nil, nil, loadErr(path, err)
	}

	repo, report := FromRows(parts, opts.MarkerPolicy)
	report.Path = path

	for _, s := range report.Skipped {
		log.Debug("skipped question row",
			zap.String("difficulty", string(s.Difficulty)),
			zap.Int("line", s.Line),
			zap.String("reason", s.Reason))
	}
	for _, w := range report.Warnings {
		log.Warn("question row loaded with fallback",
			zap.String("difficulty", string(w.Difficulty)),
			zap.Int("line", w.Line),
			zap.String("reason", w.Reason))
	}

	if repo.Len() == 0 {
		return nil, report, loadErr(path, ErrEmptyBank)
	}

	log.Info("question bank loaded",
		zap.String("path", path),
		zap.Int("easy", repo.Count(Easy)),
		zap.Int("medium", repo.Count(Medium)),
		zap.Int("hard", repo.Count(Hard)),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("warnings", len(report.Warnings)))

	return repo, report, nil
}

// FromRows converts raw partition rows into a repository, applying the
// skip and marker rules.
func FromRows(parts map[Difficulty][]Row, policy MarkerPolicy) (*Repository, *LoadReport) {
	if policy == "" {
		policy = MarkerLenient
	}
	report := &LoadReport{Loaded: make(map[Difficulty]int, len(Tiers))}

	var questions []Question
	seen := make(map[string]struct{})
	for _, d := range Tiers {
		for _, row := range parts[d] {
			q, issue := row.toQuestion(d, policy)
			if issue != nil && issue.fatal {
				report.Skipped = append(report.Skipped, RowIssue{Difficulty: d, Line: row.Line, Reason: issue.reason})
				continue
			}
			// The first row with an ID wins.
			if _, dup := seen[q.ID]; dup {
				report.Skipped = append(report.Skipped, RowIssue{Difficulty: d, Line: row.Line, Reason: ReasonDuplicateID})
				continue
			}
			seen[q.ID] = struct{}{}
			if issue != nil {
				report.Warnings = append(report.Warnings, RowIssue{Difficulty: d, Line: row.Line, Reason: issue.reason})
			}
			questions = append(questions, q)
		}
	}

	repo := NewRepository(questions)
	for _, d := range Tiers {
		report.Loaded[d] = repo.Count(d)
	}
	return repo, report
}

func mergeSheets(in map[Difficulty]string) map[Difficulty]string {
	out := DefaultSheets()
	for d, name := range in {
		if name != "" {
			out[d] = name
		}
	}
	return out
}
