package history

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gramtest/gramtest/internal/bank"
	"github.com/gramtest/gramtest/internal/router"
	"github.com/gramtest/gramtest/internal/session"
	"github.com/gramtest/gramtest/internal/store"
)

type fakeRepo struct {
	store.AttemptRepo
	attempts []store.Attempt
	err      error
	gets     int
}

func (f *fakeRepo) Recent(_ context.Context, opts store.QueryOpts) ([]store.Attempt, error) {
	return f.attempts, f.err
}

func (f *fakeRepo) Get(_ context.Context, id string) (*store.Attempt, error) {
	f.gets++
	for _, a := range f.attempts {
		if a.SessionID == id {
			a.Answers = []session.AnswerRecord{
				{QuestionID: "medium_7", ChosenText: "has gone", CorrectText: "has gone", IsCorrect: true, Difficulty: bank.Medium},
				{QuestionID: "hard_2", ChosenText: "whom", CorrectText: "who", IsCorrect: false, Difficulty: bank.Hard},
			}
			return &a, nil
		}
	}
	return nil, store.ErrNotFound
}

func testRepo() *fakeRepo {
	at := time.Date(2025, 12, 12, 14, 30, 0, 0, time.UTC)
	return &fakeRepo{attempts: []store.Attempt{
		{SessionID: "Ada_2", Participant: "Ada", FinishedAt: at, Score: 2, MaxScore: 5, Percentage: 40, CorrectCount: 1, Total: 2},
		{SessionID: "Bo_1", Participant: "Bo", FinishedAt: at.Add(-time.Hour), Score: 30, MaxScore: 40, Percentage: 75, CorrectCount: 15, Total: 20},
	}}
}

func loaded(t *testing.T, repo *fakeRepo) *HistoryScreen {
	t.Helper()
	s := New(repo, nil)
	s.Update(s.Init()())
	return s
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestHistoryScreen_Loading(t *testing.T) {
	s := New(testRepo(), nil)
	assert.Contains(t, s.View(100, 30), "Loading history...")
	assert.Equal(t, "History", s.Title())
}

func TestHistoryScreen_ListsAttempts(t *testing.T) {
	s := loaded(t, testRepo())
	view := s.View(120, 30)
	assert.Contains(t, view, "Ada  2/5  40.0%  1/2 correct")
	assert.Contains(t, view, "Bo  30/40  75.0%  15/20 correct")
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := loaded(t, &fakeRepo{})
	assert.Contains(t, s.View(100, 30), "No attempts yet.")
}

func TestHistoryScreen_Error(t *testing.T) {
	s := loaded(t, &fakeRepo{err: errors.New("database locked")})
	assert.Contains(t, s.View(100, 30), "Error: database locked")
}

func TestHistoryScreen_Navigation(t *testing.T) {
	s := loaded(t, testRepo())

	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 0, s.selected)
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, s.selected)
	s.Update(keyPress('j'))
	assert.Equal(t, 1, s.selected)
	s.Update(keyPress('k'))
	assert.Equal(t, 0, s.selected)
}

func TestHistoryScreen_ExpandLoadsAnswersOnce(t *testing.T) {
	repo := testRepo()
	s := loaded(t, repo)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	s.Update(cmd())

	view := s.View(120, 30)
	assert.Contains(t, view, "hard_2")
	assert.Contains(t, view, "M → H")
	assert.Equal(t, 1, repo.gets)

	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.NotContains(t, s.View(120, 30), "hard_2")

	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Contains(t, s.View(120, 30), "hard_2")
	assert.Equal(t, 1, repo.gets)
}

func TestHistoryScreen_EscPops(t *testing.T) {
	s := loaded(t, testRepo())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}
