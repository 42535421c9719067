// Package results appends finished attempts to a CSV file that accumulates
// across runs.
package results

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/gramtest/gramtest/internal/bank"
	"github.com/gramtest/gramtest/internal/session"
)

// DefaultPath is the results file used when none is configured.
const DefaultPath = "test_results.csv"

// TimeLayout is the timestamp format of the timestamp column.
const TimeLayout = "2006-01-02 15:04:05"

// bom marks the file as UTF-8 for spreadsheet tools.
var bom = []byte{0xEF, 0xBB, 0xBF}

// Header lists the columns in file order.
var Header = []string{
	"session_id",
	"participant_name",
	"timestamp",
	"score",
	"percentage",
	"correct_count",
	"total_questions",
	"easy_count",
	"medium_count",
	"hard_count",
}

// ErrMalformed is returned by ReadAll for rows that cannot be parsed.
var ErrMalformed = errors.New("malformed results row")

// Row is one completed attempt.
type Row struct {
	SessionID       string
	ParticipantName string
	Timestamp       time.Time
	Score           int
	MaxScore        int
	Percentage      float64
	CorrectCount    int
	TotalQuestions  int
	EasyCount       int
	MediumCount     int
	HardCount       int
}

// RowFromSummary converts an attempt summary. The timestamp is cut to whole
// seconds and the percentage to one decimal, matching what the file keeps.
func RowFromSummary(s *session.Summary, at time.Time) Row {
	return Row{
		SessionID:       s.SessionID,
		ParticipantName: s.ParticipantName,
		Timestamp:       at.Truncate(time.Second),
		Score:           s.Score,
		MaxScore:        s.MaxScore,
		Percentage:      math.Round(s.Percentage*10) / 10,
		CorrectCount:    s.CorrectCount,
		TotalQuestions:  s.Total(),
		EasyCount:       s.PerTier[bank.Easy].Answered,
		MediumCount:     s.PerTier[bank.Medium].Answered,
		HardCount:       s.PerTier[bank.Hard].Answered,
	}
}

// csvRow is the on-disk shape of a Row. Field order is column order.
type csvRow struct {
	SessionID       string        `csv:"session_id"`
	ParticipantName string        `csv:"participant_name"`
	Timestamp       timestampCell `csv:"timestamp"`
	Score           scoreCell     `csv:"score"`
	Percentage      percentCell   `csv:"percentage"`
	CorrectCount    int           `csv:"correct_count"`
	TotalQuestions  int           `csv:"total_questions"`
	EasyCount       int           `csv:"easy_count"`
	MediumCount     int           `csv:"medium_count"`
	HardCount       int           `csv:"hard_count"`
}

func toCSV(r Row) *csvRow {
	return &csvRow{
		SessionID:       r.SessionID,
		ParticipantName: r.ParticipantName,
		Timestamp:       timestampCell{r.Timestamp},
		Score:           scoreCell{Score: r.Score, Max: r.MaxScore},
		Percentage:      percentCell(r.Percentage),
		CorrectCount:    r.CorrectCount,
		TotalQuestions:  r.TotalQuestions,
		EasyCount:       r.EasyCount,
		MediumCount:     r.MediumCount,
		HardCount:       r.HardCount,
	}
}

func (c *csvRow) row() Row {
	return Row{
		SessionID:       c.SessionID,
		ParticipantName: c.ParticipantName,
		Timestamp:       c.Timestamp.Time,
		Score:           c.Score.Score,
		MaxScore:        c.Score.Max,
		Percentage:      float64(c.Percentage),
		CorrectCount:    c.CorrectCount,
		TotalQuestions:  c.TotalQuestions,
		EasyCount:       c.EasyCount,
		MediumCount:     c.MediumCount,
		HardCount:       c.HardCount,
	}
}

// timestampCell is a local time in TimeLayout.
type timestampCell struct{ time.Time }

func (c *timestampCell) MarshalCSV() (string, error) {
	return c.Format(TimeLayout), nil
}

func (c *timestampCell) UnmarshalCSV(s string) error {
	t, err := time.ParseInLocation(TimeLayout, s, time.Local)
	if err != nil {
		return fmt.Errorf("%w: timestamp %q", ErrMalformed, s)
	}
	c.Time = t
	return nil
}

// scoreCell is written as "score/max".
type scoreCell struct {
	Score, Max int
}

func (c *scoreCell) MarshalCSV() (string, error) {
	return fmt.Sprintf("%d/%d", c.Score, c.Max), nil
}

func (c *scoreCell) UnmarshalCSV(s string) error {
	score, maxScore, ok := strings.Cut(s, "/")
	if !ok {
		return fmt.Errorf("%w: score %q", ErrMalformed, s)
	}
	var err error
	if c.Score, err = strconv.Atoi(score); err != nil {
		return fmt.Errorf("%w: score %q", ErrMalformed, s)
	}
	if c.Max, err = strconv.Atoi(maxScore); err != nil {
		return fmt.Errorf("%w: score %q", ErrMalformed, s)
	}
	return nil
}

// percentCell is written with one decimal and a percent sign.
type percentCell float64

func (c *percentCell) MarshalCSV() (string, error) {
	return fmt.Sprintf("%.1f%%", float64(*c)), nil
}

func (c *percentCell) UnmarshalCSV(s string) error {
	f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return fmt.Errorf("%w: percentage %q", ErrMalformed, s)
	}
	*c = percentCell(f)
	return nil
}

// Store is an append-only results file. It is safe for concurrent use
// within one process.
type Store struct {
	mu   sync.Mutex
	path string
}

// New returns a Store for path. The file is created on first Append.
func New(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path}
}

// Path returns the results file path.
func (s *Store) Path() string {
	return s.path
}

// Append adds one row, creating the file (with BOM and header) and its
// parent directory when absent. Existing rows are never rewritten.
func (s *Store) Append(r Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create results dir: %w", err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open results: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat results: %w", err)
	}

	var buf bytes.Buffer
	rows := []*csvRow{toCSV(r)}
	if info.Size() == 0 {
		buf.Write(bom)
		err = gocsv.Marshal(rows, &buf)
	} else {
		err = gocsv.MarshalWithoutHeaders(rows, &buf)
	}
	if err != nil {
		return fmt.Errorf("write row: %w", err)
	}

	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("append results: %w", err)
	}
	return f.Close()
}

// ReadAll returns every row in file order. A missing file yields no rows.
func (s *Store) ReadAll() ([]Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open results: %w", err)
	}
	defer f.Close()

	return readRows(f)
}

func readRows(r io.Reader) ([]Row, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(bom)); err == nil && bytes.Equal(head, bom) {
		_, _ = br.Discard(len(bom))
	}
	if _, err := br.Peek(1); err == io.EOF {
		return nil, nil
	}

	var recs []*csvRow
	if err := gocsv.Unmarshal(br, &recs); err != nil {
		if errors.Is(err, ErrMalformed) {
			return nil, fmt.Errorf("read results: %w", err)
		}
		return nil, fmt.Errorf("read results: %w: %w", ErrMalformed, err)
	}

	rows := make([]Row, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, rec.row())
	}
	return rows, nil
}
