package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/gramtest/gramtest/internal/bank"
	"github.com/gramtest/gramtest/internal/ui/theme"
)

// MultiChoice is a lettered multiple-choice selector. Arrow keys move the
// cursor; enter, a number (1-4) or a letter (a-d) submits.
type MultiChoice struct {
	Question     string
	Options      []string
	CorrectIndex int
	Selected     int
	Submitted    bool
	ChosenIndex  int
}

// NewMultiChoice creates a multiple-choice component for q.
func NewMultiChoice(q bank.Question) MultiChoice {
	return MultiChoice{
		Question:     q.Prompt,
		Options:      q.Options[:],
		CorrectIndex: q.CorrectIndex,
		ChosenIndex:  -1,
	}
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	key := strings.ToLower(kmsg.String())
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
		return m, nil
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
		return m, nil
	case "enter":
		m.submit(m.Selected)
		return m, nil
	}

	if len(key) == 1 {
		switch c := key[0]; {
		case c >= '1' && c <= '9':
			m.submit(int(c - '1'))
		case c >= 'a' && c <= 'z' && c != 'j' && c != 'k':
			m.submit(int(c - 'a'))
		}
	}
	return m, nil
}

func (m *MultiChoice) submit(i int) {
	if i < 0 || i >= len(m.Options) {
		return
	}
	m.Selected = i
	m.ChosenIndex = i
	m.Submitted = true
}

// ChosenText returns the text of the submitted option ("" before submit).
func (m MultiChoice) ChosenText() string {
	if !m.Submitted || m.ChosenIndex < 0 {
		return ""
	}
	return m.Options[m.ChosenIndex]
}

// View renders the question and its options. After submission the correct
// option is green and a wrong choice red.
func (m MultiChoice) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := questionStyle.Render(m.Question) + "\n\n"

	for i, opt := range m.Options {
		label := "?"
		if i < len(bank.OptionLabels) {
			label = bank.OptionLabels[i]
		}
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		var style lipgloss.Style
		switch {
		case m.Submitted && i == m.CorrectIndex:
			style = theme.Correct
		case m.Submitted && i == m.ChosenIndex:
			style = theme.Incorrect
		case m.Submitted:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		s += style.Render(line) + "\n"
	}

	return s
}

// IsCorrect reports whether the submitted option's text matches the
// correct option's text.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.ChosenText() == m.Options[m.CorrectIndex]
}
