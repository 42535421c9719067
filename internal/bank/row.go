package bank

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MarkerPolicy decides what happens to a row whose correct_option marker
// does not name a usable option.
type MarkerPolicy string

const (
	// MarkerLenient maps an unknown marker to option A and records a warning.
	MarkerLenient MarkerPolicy = "lenient"
	// MarkerStrict rejects the row.
	MarkerStrict MarkerPolicy = "strict"
)

// ParseMarkerPolicy converts a config value into a MarkerPolicy.
func ParseMarkerPolicy(s string) (MarkerPolicy, error) {
	switch p := MarkerPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case MarkerLenient, MarkerStrict:
		return p, nil
	case "":
		return MarkerLenient, nil
	}
	return "", fmt.Errorf("unknown marker policy %q", s)
}

// Column names recognised in every source format.
const (
	ColID            = "id"
	ColQuestion      = "question"
	ColOptionA       = "option_a"
	ColOptionB       = "option_b"
	ColOptionC       = "option_c"
	ColOptionD       = "option_d"
	ColCorrectOption = "correct_option"
)

// Row is one raw record from a source partition. A nil field is a missing cell.
type Row struct {
	Line          int // 1-based position within the partition, header excluded
	ID            *string
	Question      *string
	Options       [OptionCount]*string
	CorrectOption *string
}

// Skip reasons recorded in the LoadReport.
const (
	ReasonMissingQuestion = "missing question"
	ReasonMissingMarker   = "missing correct_option"
	ReasonBadID           = "id is not an integer"
	ReasonInvalidMarker   = "invalid correct_option"
	ReasonEmptyCorrect    = "correct_option points at an empty option"
	ReasonDuplicateID     = "duplicate id"
)

// rowIssue is a skip or warning attached to a single row.
type rowIssue struct {
	reason string
	fatal  bool
}

// toQuestion converts a raw row to a Question. A fatal issue means the row
// must be skipped; a non-fatal one means the question was built with a
// fallback and a warning should be recorded.
func (r Row) toQuestion(d Difficulty, policy MarkerPolicy) (Question, *rowIssue) {
	prompt, ok := present(r.Question)
	if !ok {
		return Question{}, &rowIssue{reason: ReasonMissingQuestion, fatal: true}
	}
	marker, ok := present(r.CorrectOption)
	if !ok {
		return Question{}, &rowIssue{reason: ReasonMissingMarker, fatal: true}
	}
	rowID, ok := parseRowID(r.ID)
	if !ok {
		return Question{}, &rowIssue{reason: ReasonBadID, fatal: true}
	}

	q := Question{
		ID:         QuestionID(d, rowID),
		Prompt:     prompt,
		Difficulty: d,
	}
	for i, opt := range r.Options {
		if opt != nil {
			q.Options[i] = strings.TrimSpace(*opt)
		}
	}

	var issue *rowIssue
	idx, ok := markerIndex(marker)
	if !ok {
		if policy == MarkerStrict {
			return Question{}, &rowIssue{reason: ReasonInvalidMarker, fatal: true}
		}
		issue = &rowIssue{reason: ReasonInvalidMarker}
		idx = 0
	}
	q.CorrectIndex = idx

	if q.Options[idx] == "" {
		if policy == MarkerStrict {
			return Question{}, &rowIssue{reason: ReasonEmptyCorrect, fatal: true}
		}
		if issue == nil {
			issue = &rowIssue{reason: ReasonEmptyCorrect}
		}
	}
	return q, issue
}

// present returns the trimmed cell value and whether the cell holds anything.
func present(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	v := strings.TrimSpace(*s)
	if v == "" || strings.EqualFold(v, "nan") {
		return "", false
	}
	return v, true
}

// parseRowID accepts integer cells, including spreadsheet floats like "12.0".
func parseRowID(s *string) (int, bool) {
	v, ok := present(s)
	if !ok {
		return 0, false
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return int(f), true
}

func markerIndex(marker string) (int, bool) {
	m := strings.ToUpper(strings.TrimSpace(marker))
	for i, l := range OptionLabels {
		if m == l {
			return i, true
		}
	}
	return 0, false
}
