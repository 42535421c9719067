package session

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/gramtest/gramtest/internal/bank"
)

// Options configures a Controller.
type Options struct {
	// Length is the number of answers per attempt (DefaultLength if zero).
	Length int

	// Selector draws questions (time-seeded if nil).
	Selector *Selector

	Logger *zap.Logger

	// Now returns the current time (time.Now if nil).
	Now func() time.Time
}

// Controller drives one attempt at a time over a shared, read-only
// repository. It is not safe for concurrent use.
type Controller struct {
	repo     *bank.Repository
	selector *Selector
	log      *zap.Logger
	now      func() time.Time
	length   int
	state    *SessionState
}

// NewController starts a fresh attempt for participant.
func NewController(repo *bank.Repository, participant, sessionID string, opts Options) *Controller {
	c := &Controller{
		repo:     repo,
		selector: opts.Selector,
		log:      opts.Logger,
		now:      opts.Now,
		length:   opts.Length,
	}
	if c.selector == nil {
		c.selector = NewRandomSelector()
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.length <= 0 {
		c.length = DefaultLength
	}
	c.reset(participant, sessionID)
	return c
}

// Restart discards the current attempt and begins a new one for the same
// participant. Nothing carries over from the previous attempt.
func (c *Controller) Restart(sessionID string) {
	c.reset(c.state.ParticipantName, sessionID)
}

func (c *Controller) reset(participant, sessionID string) {
	c.state = NewSessionState(participant, sessionID, c.length, c.now())
	c.log.Info("attempt started",
		zap.String("session_id", sessionID),
		zap.String("participant", participant),
		zap.Int("length", c.length))
}

// State returns the live attempt state. Callers must treat it as read-only.
func (c *Controller) State() *SessionState {
	return c.state
}

// Finished reports whether the attempt has ended.
func (c *Controller) Finished() bool {
	return c.state.Finished()
}

// TargetDifficulty returns the tier the next selection will aim for.
func (c *Controller) TargetDifficulty() bank.Difficulty {
	if c.state.QuestionIndex <= ProbeCount {
		return bank.Medium
	}
	return c.state.CurrentDifficulty
}

// Next returns the question for the current slot. Repeated calls before
// Submit return the same question. ErrBankExhausted ends the attempt.
func (c *Controller) Next() (bank.Question, error) {
	s := c.state
	if s.PendingQuestion != nil {
		return *s.PendingQuestion, nil
	}
	if s.Finished() {
		return bank.Question{}, ErrSessionFinished
	}

	target := c.TargetDifficulty()
	q, fallback, err := c.selector.Select(c.repo, target, s.UsedQuestionIDs)
	if err != nil {
		if errors.Is(err, ErrBankExhausted) {
			s.Exhausted = true
			s.FinishedAt = c.now()
			c.log.Info("attempt ended early, bank exhausted",
				zap.String("session_id", s.SessionID),
				zap.Int("answered", s.Answered()))
		}
		return bank.Question{}, err
	}
	if fallback {
		c.log.Debug("target tier exhausted, using fallback",
			zap.String("session_id", s.SessionID),
			zap.String("target", string(target)),
			zap.String("selected", q.ID))
	}

	s.PendingQuestion = &q
	return q, nil
}

// Submit records the chosen option text for the pending question and
// computes the next target tier.
func (c *Controller) Submit(chosen string) (AnswerRecord, error) {
	s := c.state
	q := s.PendingQuestion
	if q == nil {
		return AnswerRecord{}, ErrNoPendingQuestion
	}

	rec := AnswerRecord{
		QuestionID:  q.ID,
		ChosenText:  chosen,
		CorrectText: q.CorrectText(),
		IsCorrect:   q.IsCorrect(chosen),
		Difficulty:  q.Difficulty,
	}

	s.AnswerHistory = append(s.AnswerHistory, rec)
	s.UsedQuestionIDs[q.ID] = struct{}{}
	if s.QuestionIndex <= ProbeCount {
		s.FirstTwoCorrectness = append(s.FirstTwoCorrectness, rec.IsCorrect)
	}
	current := s.CurrentDifficulty
	s.PendingQuestion = nil
	s.QuestionIndex++
	s.CurrentDifficulty = NextDifficulty(s.QuestionIndex, current, rec.IsCorrect, s.FirstTwoCorrectness)

	c.log.Debug("answer recorded",
		zap.String("session_id", s.SessionID),
		zap.String("question_id", q.ID),
		zap.Bool("correct", rec.IsCorrect),
		zap.String("next_difficulty", string(s.CurrentDifficulty)))

	if s.Finished() {
		s.FinishedAt = c.now()
		c.log.Info("attempt completed",
			zap.String("session_id", s.SessionID),
			zap.Int("answered", s.Answered()))
	}
	return rec, nil
}

// Summary computes the scoring summary of the attempt so far.
func (c *Controller) Summary() *Summary {
	return BuildSummary(c.state)
}
