package session

import (
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/gramtest/gramtest/internal/bank"
	"github.com/gramtest/gramtest/internal/i18n"
	"github.com/gramtest/gramtest/internal/router"
	"github.com/gramtest/gramtest/internal/screen"
	sess "github.com/gramtest/gramtest/internal/session"
	"github.com/gramtest/gramtest/internal/ui/components"
	"github.com/gramtest/gramtest/internal/ui/layout"
)

// Finisher builds the screen that replaces the session screen once the
// attempt has ended.
type Finisher func(ctrl *sess.Controller, summary *sess.Summary) screen.Screen

type phase int

const (
	phaseLoading phase = iota
	phaseQuestion
	phaseFeedback
)

// SessionScreen presents the controller's questions one at a time and
// shows feedback after every answer.
type SessionScreen struct {
	ctrl   *sess.Controller
	tr     *i18n.Translator
	finish Finisher

	phase       phase
	confirmQuit bool
	question    bank.Question
	choice      components.MultiChoice
	last        sess.AnswerRecord
	errMsg      string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.StatusProvider = (*SessionScreen)(nil)

// New creates a SessionScreen driving ctrl. finish is called with the final
// summary when the attempt ends.
func New(ctrl *sess.Controller, tr *i18n.Translator, finish Finisher) *SessionScreen {
	if tr == nil {
		tr = i18n.English()
	}
	return &SessionScreen{
		ctrl:   ctrl,
		tr:     tr,
		finish: finish,
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	return func() tea.Msg { return nextQuestionMsg{} }
}

func (s *SessionScreen) Title() string {
	return s.tr.T("TitleQuestion")
}

// Status shows the participant and the number of answered questions.
func (s *SessionScreen) Status() string {
	st := s.ctrl.State()
	return fmt.Sprintf("%s  %d/%d", st.ParticipantName, st.Answered(), st.Length)
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: s.tr.T("KeyQuit")}}
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: s.tr.T("KeyEndTest")},
			{Key: "N", Description: s.tr.T("KeyKeepGoing")},
		}
	case s.phase == phaseFeedback:
		return []layout.KeyHint{{Key: "any key", Description: s.tr.T("KeyContinue")}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: s.tr.T("KeyNavigate")},
		{Key: "A-D", Description: s.tr.T("KeyChoose")},
		{Key: "Enter", Description: s.tr.T("KeySubmit")},
		{Key: "Esc", Description: s.tr.T("KeyQuit")},
	}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case nextQuestionMsg:
		return s.nextQuestion()
	case attemptEndMsg:
		return s.end()
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

// nextQuestion pulls the question for the current slot. Exhaustion and a
// completed attempt both end the screen.
func (s *SessionScreen) nextQuestion() (screen.Screen, tea.Cmd) {
	if s.ctrl.Finished() {
		return s, endCmd
	}
	q, err := s.ctrl.Next()
	switch {
	case errors.Is(err, sess.ErrBankExhausted), errors.Is(err, sess.ErrSessionFinished):
		return s, endCmd
	case err != nil:
		s.errMsg = err.Error()
		return s, nil
	}
	s.question = q
	s.choice = components.NewMultiChoice(q)
	s.phase = phaseQuestion
	return s, nil
}

func (s *SessionScreen) end() (screen.Screen, tea.Cmd) {
	if s.finish == nil {
		return s, tea.Quit
	}
	next := s.finish(s.ctrl, s.ctrl.Summary())
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *SessionScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, tea.Quit
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			return s, tea.Quit
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch s.phase {
	case phaseFeedback:
		if s.ctrl.Finished() {
			return s, endCmd
		}
		return s, func() tea.Msg { return nextQuestionMsg{} }

	case phaseQuestion:
		if key == "esc" {
			s.confirmQuit = true
			return s, nil
		}
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		if s.choice.Submitted {
			return s.submit()
		}
		return s, cmd
	}
	return s, nil
}

// submit records the chosen option with the controller.
func (s *SessionScreen) submit() (screen.Screen, tea.Cmd) {
	rec, err := s.ctrl.Submit(s.choice.ChosenText())
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.last = rec
	s.phase = phaseFeedback
	return s, nil
}

func endCmd() tea.Msg {
	return attemptEndMsg{}
}
