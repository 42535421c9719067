package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/gramtest/gramtest/internal/bank"
)

// Color palette: calm classroom tones on a dark background.
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Tier colors.
var (
	TierEasy   = lipgloss.Color("#38BDF8") // Sky
	TierMedium = lipgloss.Color("#F59E0B") // Amber
	TierHard   = lipgloss.Color("#EF4444") // Red
)

// TierColor returns the display color of a difficulty tier.
func TierColor(d bank.Difficulty) color.Color {
	switch d {
	case bank.Easy:
		return TierEasy
	case bank.Hard:
		return TierHard
	default:
		return TierMedium
	}
}

// TierBadge renders a tier name in its color.
func TierBadge(d bank.Difficulty, label string) string {
	return lipgloss.NewStyle().Foreground(TierColor(d)).Bold(true).Render(label)
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)
