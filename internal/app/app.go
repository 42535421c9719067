package app

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/gramtest/gramtest/internal/bank"
	"github.com/gramtest/gramtest/internal/i18n"
	"github.com/gramtest/gramtest/internal/results"
	"github.com/gramtest/gramtest/internal/router"
	"github.com/gramtest/gramtest/internal/screen"
	"github.com/gramtest/gramtest/internal/screens/history"
	sessionscreen "github.com/gramtest/gramtest/internal/screens/session"
	"github.com/gramtest/gramtest/internal/screens/summary"
	"github.com/gramtest/gramtest/internal/screens/welcome"
	"github.com/gramtest/gramtest/internal/session"
	"github.com/gramtest/gramtest/internal/store"
	"github.com/gramtest/gramtest/internal/ui/layout"
)

// Options holds the dependencies of the interactive test.
type Options struct {
	Repo       *bank.Repository
	Attempts   store.AttemptRepo
	Results    *results.Store
	ReportDir  string
	Translator *i18n.Translator
	Logger     *zap.Logger

	// Questions is the attempt length (session.DefaultLength if zero).
	Questions int

	// Seed seeds question selection. Zero seeds from the clock.
	Seed uint64

	// Participant skips the name prompt when set.
	Participant string

	Now func() time.Time
}

func (o *Options) defaults() {
	if o.Translator == nil {
		o.Translator = i18n.English()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Questions <= 0 {
		o.Questions = session.DefaultLength
	}
}

// wiring builds the screens and connects them to each other.
type wiring struct {
	opts Options
	rec  *recorder
}

func newWiring(opts Options) *wiring {
	opts.defaults()
	return &wiring{
		opts: opts,
		rec: &recorder{
			attempts:  opts.Attempts,
			results:   opts.Results,
			reportDir: opts.ReportDir,
			tr:        opts.Translator,
			log:       opts.Logger,
			now:       opts.Now,
		},
	}
}

func (w *wiring) first() screen.Screen {
	if w.opts.Participant != "" {
		return w.start(w.opts.Participant)
	}
	return welcome.New(w.opts.Translator, w.opts.Repo.Len(), w.start)
}

// start begins a new attempt for name.
func (w *wiring) start(name string) screen.Screen {
	sel := session.NewRandomSelector()
	if w.opts.Seed != 0 {
		sel = session.NewSelector(w.opts.Seed)
	}
	ctrl := session.NewController(w.opts.Repo, name, session.NewSessionID(name, w.opts.Now()), session.Options{
		Length:   w.opts.Questions,
		Selector: sel,
		Logger:   w.opts.Logger,
		Now:      w.opts.Now,
	})
	return w.question(ctrl)
}

func (w *wiring) question(ctrl *session.Controller) screen.Screen {
	return sessionscreen.New(ctrl, w.opts.Translator, w.finish)
}

// finish shows the results of ctrl's attempt. Restart reuses the controller
// with a new session ID.
func (w *wiring) finish(ctrl *session.Controller, sum *session.Summary) screen.Screen {
	opts := summary.Options{
		Translator: w.opts.Translator,
		Recorder:   w.rec,
		Restart: func() screen.Screen {
			ctrl.Restart(session.NewSessionID(ctrl.State().ParticipantName, w.opts.Now()))
			return w.question(ctrl)
		},
	}
	if w.opts.Attempts != nil {
		opts.Attempts = w.opts.Attempts
		opts.History = func() screen.Screen {
			return history.New(w.opts.Attempts, w.opts.Translator)
		}
	}
	return summary.New(sum, opts)
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	tr     *i18n.Translator
	width  int
	height int
}

// newAppModel creates a new AppModel starting at the name prompt.
func newAppModel(opts Options) AppModel {
	w := newWiring(opts)
	return AppModel{
		router: router.New(w.first()),
		tr:     w.opts.Translator,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	v.SetContent(m.render())
	return v
}

// render draws the header, active screen and footer for the current size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	var title, status string
	var footerHints []layout.KeyHint
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
		if kp, ok := active.(screen.KeyHintProvider); ok {
			footerHints = kp.KeyHints()
		}
	}
	if footerHints == nil {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: m.tr.T("KeyBack")},
			{Key: "Ctrl+C", Description: m.tr.T("KeyQuit")},
		}
	}

	header := layout.RenderHeader(m.tr.T("AppTitle"), title, status, m.width)
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
