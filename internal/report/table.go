package report

import (
	"github.com/gramtest/gramtest/internal/bank"
	"github.com/gramtest/gramtest/internal/session"
)

// DetailWidth is the rune limit for answer text in detail rows.
const DetailWidth = 30

// Truncate shortens s to n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// DetailRow is one answered question in tabular form.
type DetailRow struct {
	Index      int
	QuestionID string
	Difficulty bank.Difficulty
	Chosen     string
	Correct    string
	IsCorrect  bool
}

// Detail lists the answers of s with answer text truncated to DetailWidth.
func Detail(s *session.Summary) []DetailRow {
	rows := make([]DetailRow, len(s.Answers))
	for i, a := range s.Answers {
		rows[i] = DetailRow{
			Index:      i + 1,
			QuestionID: a.QuestionID,
			Difficulty: a.Difficulty,
			Chosen:     Truncate(a.ChosenText, DetailWidth),
			Correct:    Truncate(a.CorrectText, DetailWidth),
			IsCorrect:  a.IsCorrect,
		}
	}
	return rows
}

// TierShare is one slice of the difficulty distribution.
type TierShare struct {
	Difficulty bank.Difficulty
	Count      int
	Share      float64
}

// Distribution returns how many answered questions came from each tier and
// the percentage share of each. Shares are 0 when nothing was answered.
func Distribution(s *session.Summary) []TierShare {
	total := s.Total()
	out := make([]TierShare, 0, len(bank.Tiers))
	for _, d := range bank.Tiers {
		n := s.PerTier[d].Answered
		ts := TierShare{Difficulty: d, Count: n}
		if total > 0 {
			ts.Share = 100 * float64(n) / float64(total)
		}
		out = append(out, ts)
	}
	return out
}
