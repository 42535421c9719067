package store

import (
	"context"
	"errors"
	"time"

	"github.com/gramtest/gramtest/internal/session"
)

// ErrNotFound is returned when no attempt matches a lookup.
var ErrNotFound = errors.New("attempt not found")

// QueryOpts filters attempt listings.
type QueryOpts struct {
	Participant string // exact match ("" = everyone)
	Limit       int    // max results (0 = unlimited)
}

// Attempt is a stored, finished attempt with its answers in order.
type Attempt struct {
	Sequence     int64
	SessionID    string
	Participant  string
	StartedAt    time.Time
	FinishedAt   time.Time
	Exhausted    bool
	Score        int
	MaxScore     int
	Percentage   float64
	CorrectCount int
	Total        int
	Answers      []session.AnswerRecord
}

// AttemptFromSummary captures a summary for storage.
func AttemptFromSummary(s *session.Summary) *Attempt {
	answers := make([]session.AnswerRecord, len(s.Answers))
	copy(answers, s.Answers)
	return &Attempt{
		SessionID:    s.SessionID,
		Participant:  s.ParticipantName,
		StartedAt:    s.StartedAt,
		FinishedAt:   s.FinishedAt,
		Exhausted:    s.Exhausted,
		Score:        s.Score,
		MaxScore:     s.MaxScore,
		Percentage:   s.Percentage,
		CorrectCount: s.CorrectCount,
		Total:        s.Total(),
		Answers:      answers,
	}
}

// Summary rebuilds the scoring view from the stored answers.
func (a *Attempt) Summary() *session.Summary {
	st := session.NewSessionState(a.Participant, a.SessionID, a.Total, a.StartedAt)
	st.AnswerHistory = append(st.AnswerHistory, a.Answers...)
	st.FinishedAt = a.FinishedAt
	st.Exhausted = a.Exhausted
	return session.BuildSummary(st)
}

// AttemptRepo stores finished attempts.
type AttemptRepo interface {
	// Save stores a finished attempt and its answers, assigning Sequence.
	Save(ctx context.Context, a *Attempt) error

	// Get returns the attempt with the given session ID, or ErrNotFound.
	Get(ctx context.Context, sessionID string) (*Attempt, error)

	// Recent returns attempts newest first, without answers.
	Recent(ctx context.Context, opts QueryOpts) ([]Attempt, error)

	// Count returns the number of stored attempts.
	Count(ctx context.Context) (int, error)

	// DeleteAll removes every attempt and answer.
	DeleteAll(ctx context.Context) error
}
