package session

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/gramtest/gramtest/internal/report"
	"github.com/gramtest/gramtest/internal/ui/components"
	"github.com/gramtest/gramtest/internal/ui/layout"
	"github.com/gramtest/gramtest/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, s.tr.Td("ErrorLine", map[string]any{"Error": s.errMsg}))
	case s.confirmQuit:
		return s.renderQuitConfirm(width)
	case s.phase == phaseLoading:
		return ""
	}
	return s.renderQuestion(width)
}

// renderQuestion renders the info line, progress bar, question and, after
// an answer, the feedback line.
func (s *SessionScreen) renderQuestion(width int) string {
	st := s.ctrl.State()
	var b strings.Builder

	index := st.QuestionIndex
	if s.phase == phaseFeedback {
		index = st.Answered()
	}
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + s.tr.Td("QuestionHeader", map[string]any{"Index": index, "Total": st.Length}))
	tier := report.TierName(s.tr, s.question.Difficulty)
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(s.tr.Td("TierLabel", map[string]any{"Tier": theme.TierBadge(s.question.Difficulty, tier)}))

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")

	barWidth := min(width-4, 60)
	bar := components.NewProgressBar(s.tr.T("Progress"), st.Answered(), st.Length, true, barWidth)
	b.WriteString(layout.Centered(bar.View(), width))
	b.WriteString("\n")
	b.WriteString(layout.Divider(width, width-4))
	b.WriteString("\n\n")

	card := lipgloss.NewStyle().Width(min(width-8, 76)).Render(s.choice.View())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))

	if s.phase == phaseFeedback {
		b.WriteString("\n")
		b.WriteString(s.renderFeedback(width))
	}
	return b.String()
}

func (s *SessionScreen) renderFeedback(width int) string {
	if s.last.IsCorrect {
		return layout.Centered(theme.Correct.Render(s.tr.T("FeedbackCorrect")), width)
	}
	msg := s.tr.Td("FeedbackIncorrect", map[string]any{"Answer": s.last.CorrectText})
	return layout.Centered(theme.Incorrect.Render(msg), width)
}

func (s *SessionScreen) renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(layout.Centered(
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(s.tr.T("QuitConfirm")), width))
	b.WriteString("\n")
	b.WriteString(layout.Centered(
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.tr.T("QuitConfirmNote")), width))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(
		lipgloss.NewStyle().Foreground(theme.Success).Render("[Y] "+s.tr.T("KeyEndTest")), width))
	b.WriteString("\n")
	b.WriteString(layout.Centered(
		lipgloss.NewStyle().Foreground(theme.Primary).Render("[N] "+s.tr.T("KeyKeepGoing")), width))
	return b.String()
}

func renderError(width int, msg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("\n\n\n  " + msg)
}
