package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/gramtest/gramtest/internal/i18n"
	"github.com/gramtest/gramtest/internal/router"
	"github.com/gramtest/gramtest/internal/screen"
	"github.com/gramtest/gramtest/internal/ui/components"
	"github.com/gramtest/gramtest/internal/ui/layout"
	"github.com/gramtest/gramtest/internal/ui/theme"
)

const (
	tickInterval = 400 * time.Millisecond
	maxNameLen   = 40
)

// sparkle frames cycle around the banner
var sparkleFrames = []string{"★", "✦"}

type tickMsg time.Time

// StartFunc builds the first question screen for a participant.
type StartFunc func(name string) screen.Screen

// WelcomeScreen shows the banner and asks for the participant's name.
type WelcomeScreen struct {
	tr        *i18n.Translator
	bankSize  int
	start     StartFunc
	input     components.TextInput
	tickCount int
	started   bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen. start is called with the entered name.
func New(tr *i18n.Translator, bankSize int, start StartFunc) *WelcomeScreen {
	if tr == nil {
		tr = i18n.English()
	}
	return &WelcomeScreen{
		tr:       tr,
		bankSize: bankSize,
		start:    start,
		input:    components.NewTextInput(tr.T("NamePlaceholder"), maxNameLen),
	}
}

func (w *WelcomeScreen) Title() string {
	return w.tr.T("TitleWelcome")
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: w.tr.T("KeyStart")},
		{Key: "Esc", Description: w.tr.T("KeyQuit")},
	}
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tea.Batch(w.input.Init(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return w, tea.Quit
		case "enter":
			return w, w.submit()
		}
	}

	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	return w, cmd
}

// submit validates the name and hands over to the question screen.
func (w *WelcomeScreen) submit() tea.Cmd {
	if w.started {
		return nil
	}
	name := w.input.Value()
	if name == "" {
		w.input.SetError(w.tr.T("NameRequired"))
		return nil
	}
	w.started = true
	next := w.start(name)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

// Name returns the name typed so far.
func (w *WelcomeScreen) Name() string {
	return w.input.Value()
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	banner := RenderBanner(width)
	sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
	s1 := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
	s2 := lipgloss.NewStyle().Foreground(theme.Secondary).Render(sparkle)
	lines := strings.Split(banner, "\n")
	lines[0] = s1 + "  " + lines[0] + "  " + s2
	banner = strings.Join(lines, "\n")
	sections = append(sections, banner, "")

	sections = append(sections,
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(w.tr.T("AppTitle")),
		theme.Hint.Render(w.tr.Tp("BankSize", w.bankSize)),
		"",
		lipgloss.NewStyle().Foreground(theme.Text).Render(w.tr.T("NamePrompt")),
		"",
		w.input.View(),
	)

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
