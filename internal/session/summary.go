package session

import (
	"time"

	"github.com/gramtest/gramtest/internal/bank"
)

// TierStats counts answers on one tier.
type TierStats struct {
	Answered int
	Correct  int
}

// Rate returns the correct percentage on this tier (0 when unanswered).
func (t TierStats) Rate() float64 {
	if t.Answered == 0 {
		return 0
	}
	return 100 * float64(t.Correct) / float64(t.Answered)
}

// Summary is the scoring view of an attempt. Every field derives from the
// answer history.
type Summary struct {
	ParticipantName string
	SessionID       string
	StartedAt       time.Time
	FinishedAt      time.Time
	Exhausted       bool

	Answers      []AnswerRecord
	Score        int
	MaxScore     int
	Percentage   float64
	CorrectCount int
	PerTier      map[bank.Difficulty]TierStats
}

// Total returns the number of answered questions.
func (s *Summary) Total() int {
	return len(s.Answers)
}

// Trajectory returns the tier of each answered question in order.
func (s *Summary) Trajectory() []bank.Difficulty {
	out := make([]bank.Difficulty, len(s.Answers))
	for i, a := range s.Answers {
		out[i] = a.Difficulty
	}
	return out
}

// Score returns the weighted score, the maximum achievable score over the
// same answers, and the percentage (0 when nothing was answered).
func Score(history []AnswerRecord) (score, maxScore int, percentage float64) {
	for _, a := range history {
		w := a.Difficulty.Weight()
		maxScore += w
		if a.IsCorrect {
			score += w
		}
	}
	if maxScore > 0 {
		percentage = 100 * float64(score) / float64(maxScore)
	}
	return score, maxScore, percentage
}

// TierBreakdown counts answers and correct answers per tier.
func TierBreakdown(history []AnswerRecord) map[bank.Difficulty]TierStats {
	out := make(map[bank.Difficulty]TierStats, len(bank.Tiers))
	for _, d := range bank.Tiers {
		out[d] = TierStats{}
	}
	for _, a := range history {
		ts := out[a.Difficulty]
		ts.Answered++
		if a.IsCorrect {
			ts.Correct++
		}
		out[a.Difficulty] = ts
	}
	return out
}

// BuildSummary creates a Summary from the current session state.
func BuildSummary(state *SessionState) *Summary {
	answers := make([]AnswerRecord, len(state.AnswerHistory))
	copy(answers, state.AnswerHistory)

	score, maxScore, pct := Score(answers)
	correct := 0
	for _, a := range answers {
		if a.IsCorrect {
			correct++
		}
	}

	return &Summary{
		ParticipantName: state.ParticipantName,
		SessionID:       state.SessionID,
		StartedAt:       state.StartedAt,
		FinishedAt:      state.FinishedAt,
		Exhausted:       state.Exhausted,
		Answers:         answers,
		Score:           score,
		MaxScore:        maxScore,
		Percentage:      pct,
		CorrectCount:    correct,
		PerTier:         TierBreakdown(answers),
	}
}
