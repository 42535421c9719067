package summary

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/gramtest/gramtest/internal/i18n"
	"github.com/gramtest/gramtest/internal/report"
	"github.com/gramtest/gramtest/internal/router"
	"github.com/gramtest/gramtest/internal/screen"
	"github.com/gramtest/gramtest/internal/session"
	"github.com/gramtest/gramtest/internal/store"
	"github.com/gramtest/gramtest/internal/ui/layout"
	"github.com/gramtest/gramtest/internal/ui/theme"
)

// RecentLimit is the number of previous attempts listed under the results.
const RecentLimit = 3

// Saved reports where a finished attempt was written.
type Saved struct {
	ResultsPath string
	ReportPath  string
}

// Recorder persists a finished attempt.
type Recorder interface {
	Record(ctx context.Context, s *session.Summary) (Saved, error)
}

// Options wires the summary screen to persistence and navigation. Every
// field except Translator is optional.
type Options struct {
	Translator *i18n.Translator
	Recorder   Recorder
	Attempts   store.AttemptRepo

	// Restart returns the screen of a fresh attempt for the same participant.
	Restart func() screen.Screen

	// History returns the attempt history screen.
	History func() screen.Screen
}

type recordedMsg struct {
	Saved     Saved
	Err       error
	Recent    []store.Attempt
	RecentErr error
}

// SummaryScreen shows the score of a finished attempt, saves it and offers
// a restart.
type SummaryScreen struct {
	summary *session.Summary
	opts    Options
	tr      *i18n.Translator

	recorded bool
	saved    Saved
	saveErr  error
	recent   []store.Attempt
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.StatusProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen for summary.
func New(summary *session.Summary, opts Options) *SummaryScreen {
	tr := opts.Translator
	if tr == nil {
		tr = i18n.English()
	}
	return &SummaryScreen{summary: summary, opts: opts, tr: tr}
}

// Init records the attempt, then loads the participant's recent attempts.
func (s *SummaryScreen) Init() tea.Cmd {
	sum := s.summary
	rec := s.opts.Recorder
	attempts := s.opts.Attempts
	return func() tea.Msg {
		ctx := context.Background()
		var msg recordedMsg
		if rec != nil {
			msg.Saved, msg.Err = rec.Record(ctx, sum)
		}
		if attempts != nil {
			msg.Recent, msg.RecentErr = attempts.Recent(ctx, store.QueryOpts{
				Participant: sum.ParticipantName,
				Limit:       RecentLimit,
			})
		}
		return msg
	}
}

func (s *SummaryScreen) Title() string {
	return s.tr.T("TitleSummary")
}

func (s *SummaryScreen) Status() string {
	return s.summary.ParticipantName
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	var hints []layout.KeyHint
	if s.opts.Restart != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: s.tr.T("KeyRestart")})
	}
	if s.opts.History != nil {
		hints = append(hints, layout.KeyHint{Key: "H", Description: s.tr.T("KeyHistory")})
	}
	return append(hints, layout.KeyHint{Key: "Q", Description: s.tr.T("KeyQuit")})
}

// Summary returns the attempt summary shown by the screen.
func (s *SummaryScreen) Summary() *session.Summary {
	return s.summary
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case recordedMsg:
		s.recorded = true
		s.saved = msg.Saved
		s.saveErr = msg.Err
		if msg.RecentErr == nil {
			s.recent = msg.Recent
		}
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "r", "R":
			if s.opts.Restart != nil {
				next := s.opts.Restart()
				return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
			}
		case "h", "H":
			if s.opts.History != nil {
				next := s.opts.History()
				return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
			}
		case "q", "Q", "esc", "ctrl+c":
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render(s.tr.T("SummaryTitle")))
	b.WriteString("\n\n")

	stats := strings.Join([]string{
		s.tr.Td("SummaryScore", map[string]any{"Score": sum.Score, "Max": sum.MaxScore}),
		s.tr.Td("SummaryPercentage", map[string]any{"Percentage": report.Percent(sum.Percentage)}),
		s.tr.Td("SummaryCorrect", map[string]any{"Correct": sum.CorrectCount, "Total": sum.Total()}),
	}, "        ")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(stats), width))
	b.WriteString("\n")

	remark := report.RemarkFor(sum.Percentage)
	b.WriteString(layout.Centered(
		lipgloss.NewStyle().Foreground(remarkColor(remark)).Render(s.tr.T(remark.MessageID())), width))
	b.WriteString("\n")
	if sum.Exhausted {
		b.WriteString(layout.Centered(theme.Hint.Render(s.tr.T("ReportExhausted")), width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(s.section(s.tr.T("Distribution"), width))
	b.WriteString(layout.Centered(s.renderDistribution(), width))
	b.WriteString("\n")
	b.WriteString(layout.Centered(theme.Hint.Render(
		s.tr.Td("ReportTrajectory", map[string]any{"Path": report.Trajectory(sum.Trajectory())})), width))
	b.WriteString("\n\n")

	if sum.Total() > 0 {
		b.WriteString(s.section(s.tr.T("DetailTable"), width))
		b.WriteString(layout.Centered(s.renderDetail(width), width))
		b.WriteString("\n\n")
	}

	b.WriteString(s.section(s.tr.T("RecentAttempts"), width))
	b.WriteString(s.renderRecent(width))
	b.WriteString("\n")
	b.WriteString(s.renderSaveStatus(width))

	return b.String()
}

func (s *SummaryScreen) section(title string, width int) string {
	return layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim).Render(title), width) + "\n" +
		layout.Centered(layout.Divider(width, 60), width) + "\n"
}

func (s *SummaryScreen) renderDistribution() string {
	parts := make([]string, 0, 3)
	for _, ts := range report.Distribution(s.summary) {
		line := s.tr.Td("DistributionLine", map[string]any{
			"Tier":  report.TierName(s.tr, ts.Difficulty),
			"Count": ts.Count,
			"Share": report.Percent(ts.Share),
		})
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.TierColor(ts.Difficulty)).Render(line))
	}
	return strings.Join(parts, "    ")
}

// renderDetail renders the per-question table. The question id column is
// dropped on compact terminals.
func (s *SummaryScreen) renderDetail(width int) string {
	compact := layout.IsCompactWidth(width)
	headers := []string{s.tr.T("ColIndex"), s.tr.T("ColTier"), s.tr.T("ColResult")}
	if !compact {
		headers = append(headers, s.tr.T("ColQuestion"))
	}
	headers = append(headers, s.tr.T("ColChosen"), s.tr.T("ColCorrect"))

	rows := report.Detail(s.summary)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(headers...)
	for _, r := range rows {
		mark := "✗"
		if r.IsCorrect {
			mark = "✓"
		}
		cells := []string{fmt.Sprintf("%d", r.Index), report.TierName(s.tr, r.Difficulty), mark}
		if !compact {
			cells = append(cells, r.QuestionID)
		}
		cells = append(cells, r.Chosen, r.Correct)
		t.Row(cells...)
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		style := lipgloss.NewStyle().Padding(0, 1)
		switch {
		case row == table.HeaderRow:
			return style.Foreground(theme.Primary).Bold(true)
		case row < 0 || row >= len(rows):
			return style
		case col == 1:
			return style.Foreground(theme.TierColor(rows[row].Difficulty))
		case col == 2 && rows[row].IsCorrect:
			return style.Foreground(theme.Success)
		case col == 2:
			return style.Foreground(theme.Error)
		}
		return style.Foreground(theme.Text)
	})
	return t.String()
}

func (s *SummaryScreen) renderRecent(width int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	if !s.recorded {
		return layout.Centered(dim.Render(s.tr.T("Saving")), width) + "\n"
	}
	if len(s.recent) == 0 {
		return layout.Centered(dim.Italic(true).Render(s.tr.T("NoAttempts")), width) + "\n"
	}
	var b strings.Builder
	for _, a := range s.recent {
		line := s.tr.Td("AttemptLine", map[string]any{
			"Time":       a.FinishedAt.Local().Format(report.TimeLayout),
			"Score":      a.Score,
			"Max":        a.MaxScore,
			"Percentage": report.Percent(a.Percentage),
		})
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if a.SessionID == s.summary.SessionID {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(layout.Centered(style.Render(line), width))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *SummaryScreen) renderSaveStatus(width int) string {
	if !s.recorded {
		return ""
	}
	if s.saveErr != nil {
		msg := s.tr.Td("SaveFailed", map[string]any{"Error": s.saveErr.Error()})
		return layout.Centered(lipgloss.NewStyle().Foreground(theme.Error).Render(msg), width)
	}
	var lines []string
	if s.saved.ResultsPath != "" {
		lines = append(lines, s.tr.Td("ResultSaved", map[string]any{"Path": s.saved.ResultsPath}))
	}
	if s.saved.ReportPath != "" {
		lines = append(lines, s.tr.Td("ReportSaved", map[string]any{"Path": s.saved.ReportPath}))
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(layout.Centered(theme.Hint.Render(l), width))
		b.WriteString("\n")
	}
	return b.String()
}

func remarkColor(r report.Remark) color.Color {
	switch r {
	case report.RemarkExcellent:
		return theme.Success
	case report.RemarkAdequate:
		return theme.Accent
	default:
		return theme.Error
	}
}
