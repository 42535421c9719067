package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/gramtest/gramtest/internal/i18n"
	"github.com/gramtest/gramtest/internal/report"
	"github.com/gramtest/gramtest/internal/router"
	"github.com/gramtest/gramtest/internal/screen"
	"github.com/gramtest/gramtest/internal/store"
	"github.com/gramtest/gramtest/internal/ui/layout"
	"github.com/gramtest/gramtest/internal/ui/theme"
)

// Limit is the number of attempts listed.
const Limit = 50

type historyLoadedMsg struct {
	Attempts []store.Attempt
	Err      error
}

type detailLoadedMsg struct {
	Index   int
	Attempt *store.Attempt
	Err     error
}

// HistoryScreen lists past attempts, newest first. Enter expands the
// per-question answers of the selected attempt.
type HistoryScreen struct {
	repo     store.AttemptRepo
	tr       *i18n.Translator
	attempts []store.Attempt
	details  map[int]*store.Attempt
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen over repo.
func New(repo store.AttemptRepo, tr *i18n.Translator) *HistoryScreen {
	if tr == nil {
		tr = i18n.English()
	}
	return &HistoryScreen{
		repo:     repo,
		tr:       tr,
		details:  make(map[int]*store.Attempt),
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		attempts, err := s.repo.Recent(context.Background(), store.QueryOpts{Limit: Limit})
		return historyLoadedMsg{Attempts: attempts, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return s.tr.T("TitleHistory")
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: s.tr.T("KeyDetails")},
		{Key: "↑↓", Description: s.tr.T("KeyNavigate")},
		{Key: "Esc", Description: s.tr.T("KeyBack")},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
		}
		s.loaded = true
		return s, nil

	case detailLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.details[msg.Index] = msg.Attempt
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			return s, s.toggle(s.selected)
		}
	}
	return s, nil
}

// toggle expands or collapses attempt i, loading its answers on first use.
func (s *HistoryScreen) toggle(i int) tea.Cmd {
	if i < 0 || i >= len(s.attempts) {
		return nil
	}
	s.expanded[i] = !s.expanded[i]
	if !s.expanded[i] || s.details[i] != nil {
		return nil
	}
	id := s.attempts[i].SessionID
	return func() tea.Msg {
		a, err := s.repo.Get(context.Background(), id)
		return detailLoadedMsg{Index: i, Attempt: a, Err: err}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render("\n\n" + s.tr.Td("ErrorLine", map[string]any{"Error": s.errMsg}))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  " + s.tr.T("LoadingHistory"))
	}
	if len(s.attempts) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  " + s.tr.T("NoHistory"))
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, a := range s.attempts {
		prefix := "  "
		if i == s.selected {
			prefix = "▸ "
		}
		line := prefix + s.tr.Td("HistoryLine", map[string]any{
			"Time":       a.FinishedAt.Local().Format(report.TimeLayout),
			"Name":       a.Participant,
			"Score":      a.Score,
			"Max":        a.MaxScore,
			"Percentage": report.Percent(a.Percentage),
			"Correct":    a.CorrectCount,
			"Total":      a.Total,
		})

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(layout.Centered(style.Render(line), width))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderAnswers(i, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderAnswers(i, width int) string {
	a := s.details[i]
	if a == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(layout.Centered(theme.Hint.Render(
		s.tr.Td("ReportTrajectory", map[string]any{"Path": report.Trajectory(a.Summary().Trajectory())})), width))
	b.WriteString("\n")
	for n, ans := range a.Answers {
		mark := theme.Incorrect.Render("✗")
		if ans.IsCorrect {
			mark = theme.Correct.Render("✓")
		}
		line := fmt.Sprintf("    %2d %s %s  %s  %s",
			n+1, mark,
			theme.TierBadge(ans.Difficulty, report.TierName(s.tr, ans.Difficulty)),
			ans.QuestionID,
			report.Truncate(ans.ChosenText, report.DetailWidth))
		b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim).Render(line), width))
		b.WriteString("\n")
	}
	return b.String()
}
