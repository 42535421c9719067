package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/gramtest/gramtest/internal/bank"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testQuestion() bank.Question {
	return bank.Question{
		ID:           "easy_1",
		Prompt:       "She ___ to school every day.",
		Options:      [4]string{"go", "goes", "going", "gone"},
		CorrectIndex: 1,
		Difficulty:   bank.Easy,
	}
}

func TestMultiChoiceArrowsAndEnter(t *testing.T) {
	mc := NewMultiChoice(testQuestion())

	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 0, mc.Selected, "cursor stays at top")

	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	assert.True(t, mc.Submitted)
	assert.Equal(t, "goes", mc.ChosenText())
	assert.True(t, mc.IsCorrect())
}

func TestMultiChoiceLetterAndNumberKeys(t *testing.T) {
	mc := NewMultiChoice(testQuestion())
	mc, _ = mc.Update(keyPress('c'))
	assert.Equal(t, "going", mc.ChosenText())
	assert.False(t, mc.IsCorrect())

	mc = NewMultiChoice(testQuestion())
	mc, _ = mc.Update(keyPress('4'))
	assert.Equal(t, "gone", mc.ChosenText())

	mc = NewMultiChoice(testQuestion())
	mc, _ = mc.Update(keyPress('z'))
	assert.False(t, mc.Submitted, "out of range letter ignored")
}

func TestMultiChoiceLocksAfterSubmit(t *testing.T) {
	mc := NewMultiChoice(testQuestion())
	mc, _ = mc.Update(keyPress('a'))
	mc, _ = mc.Update(keyPress('b'))
	assert.Equal(t, "go", mc.ChosenText())
}

func TestMultiChoiceTextMatch(t *testing.T) {
	q := testQuestion()
	q.Options = [4]string{"was", "were", "was", "is"}
	q.CorrectIndex = 0

	mc := NewMultiChoice(q)
	mc, _ = mc.Update(keyPress('c'))
	assert.True(t, mc.IsCorrect(), "duplicate text counts as correct")
}

func TestMultiChoiceView(t *testing.T) {
	view := NewMultiChoice(testQuestion()).View()
	assert.Contains(t, view, "She ___ to school every day.")
	assert.Contains(t, view, "▸ A)  go")
	assert.Contains(t, view, "D)  gone")
}

func TestProgressBar(t *testing.T) {
	p := NewProgressBar("Progress", 5, 20, true, 60)
	assert.InDelta(t, 0.25, p.Fraction(), 1e-9)
	assert.Contains(t, p.View(), "5/20")

	assert.Equal(t, 0.0, NewProgressBar("", 1, 0, false, 10).Fraction())
	assert.Equal(t, 1.0, NewProgressBar("", 30, 20, false, 10).Fraction())
}

func TestTextInput(t *testing.T) {
	ti := NewTextInput("Your name", 40)
	ti.Model.SetValue("  Ada  ")
	assert.Equal(t, "Ada", ti.Value())

	ti.SetError("required")
	assert.Contains(t, ti.View(), "required")

	ti, _ = ti.Update(keyPress('x'))
	assert.Empty(t, ti.Err())
}
