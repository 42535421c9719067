package session

import (
	"time"

	"github.com/gramtest/gramtest/internal/bank"
)

// DefaultLength is the number of answers that completes an attempt.
const DefaultLength = 20

// AnswerRecord is an immutable entry in the answer history.
type AnswerRecord struct {
	QuestionID  string
	ChosenText  string
	CorrectText string
	IsCorrect   bool
	Difficulty  bank.Difficulty
}

// SessionState tracks one attempt. It is owned by a single Controller.
type SessionState struct {
	ParticipantName string
	SessionID       string

	// QuestionIndex is the 1-based index of the question being asked.
	// Always len(AnswerHistory)+1.
	QuestionIndex int

	// CurrentDifficulty is the target tier for the next selection.
	CurrentDifficulty bank.Difficulty

	// UsedQuestionIDs holds the ID of every answered question.
	UsedQuestionIDs map[string]struct{}

	AnswerHistory []AnswerRecord

	// FirstTwoCorrectness records the outcomes of the two probe questions.
	FirstTwoCorrectness []bool

	// PendingQuestion is the displayed, unanswered question (nil between questions).
	PendingQuestion *bank.Question

	// Length is the number of answers that completes the attempt.
	Length int

	// Exhausted is set when selection ran out of questions.
	Exhausted bool

	StartedAt  time.Time
	FinishedAt time.Time
}

// NewSessionState creates a fresh attempt state.
func NewSessionState(participant, sessionID string, length int, now time.Time) *SessionState {
	if length <= 0 {
		length = DefaultLength
	}
	return &SessionState{
		ParticipantName:   participant,
		SessionID:         sessionID,
		QuestionIndex:     1,
		CurrentDifficulty: bank.Medium,
		UsedQuestionIDs:   make(map[string]struct{}),
		Length:            length,
		StartedAt:         now,
	}
}

// Used reports whether the question id has already been answered.
func (s *SessionState) Used(id string) bool {
	_, ok := s.UsedQuestionIDs[id]
	return ok
}

// Answered returns the number of recorded answers.
func (s *SessionState) Answered() int {
	return len(s.AnswerHistory)
}

// Finished reports whether the attempt has ended, either by reaching its
// length or by bank exhaustion.
func (s *SessionState) Finished() bool {
	return s.QuestionIndex > s.Length || s.Exhausted
}
