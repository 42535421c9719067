package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gramtest/gramtest/internal/i18n"
	"github.com/gramtest/gramtest/internal/router"
	"github.com/gramtest/gramtest/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{ name string }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "question" }
func (s *stubScreen) Title() string                           { return "Question" }

func newTestWelcome() (*WelcomeScreen, *[]string) {
	var names []string
	start := func(name string) screen.Screen {
		names = append(names, name)
		return &stubScreen{name: name}
	}
	return New(nil, 42, start), &names
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func typeText(w *WelcomeScreen, s string) {
	for _, r := range s {
		w.Update(keyPress(r))
	}
}

func TestBannerWidth(t *testing.T) {
	assert.Equal(t, 71, bannerWidth)
	for _, line := range strings.Split(bannerArt(), "\n") {
		assert.Equal(t, bannerWidth, len([]rune(line)))
	}
}

func TestBannerCompactFallback(t *testing.T) {
	assert.Contains(t, RenderBanner(60), bannerCompact)
	assert.NotContains(t, RenderBanner(100), bannerCompact)
	assert.Contains(t, RenderBanner(100), "███")
}

func TestWelcomeView(t *testing.T) {
	w, _ := newTestWelcome()
	view := w.View(100, 30)
	assert.Contains(t, view, "Grammar Test")
	assert.Contains(t, view, "42 questions in the bank")
	assert.Contains(t, view, "Enter your name to begin")
}

func TestWelcomeViewChinese(t *testing.T) {
	tr, err := i18n.New("zh", nil)
	require.NoError(t, err)
	w := New(tr, 1, func(string) screen.Screen { return nil })
	assert.Equal(t, "欢迎", w.Title())
}

func TestEmptyNameRejected(t *testing.T) {
	w, names := newTestWelcome()

	_, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, *names)
	assert.Equal(t, "Please enter your name.", w.input.Err())

	typeText(w, "   ")
	_, cmd = w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, *names)
}

func TestNameStartsSession(t *testing.T) {
	w, names := newTestWelcome()

	typeText(w, "Ada")
	assert.Equal(t, "Ada", w.Name())

	_, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Ada", msg.Screen.(*stubScreen).name)
	assert.Equal(t, []string{"Ada"}, *names)

	// A second enter does not start another attempt.
	_, cmd = w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Len(t, *names, 1)
}

func TestTypingClearsError(t *testing.T) {
	w, _ := newTestWelcome()
	w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotEmpty(t, w.input.Err())

	typeText(w, "B")
	assert.Empty(t, w.input.Err())
}

func TestEscQuits(t *testing.T) {
	w, _ := newTestWelcome()
	_, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestTickAdvancesSparkle(t *testing.T) {
	w, _ := newTestWelcome()
	_, cmd := w.Update(tickMsg(time.Now()))
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, w.tickCount)
}
