package welcome

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/gramtest/gramtest/internal/ui/theme"
)

var glyphs = map[rune][6]string{
	'G': {
		" ██████╗ ",
		"██╔════╝ ",
		"██║  ███╗",
		"██║   ██║",
		"╚██████╔╝",
		" ╚═════╝ ",
	},
	'R': {
		"██████╗ ",
		"██╔══██╗",
		"██████╔╝",
		"██╔══██╗",
		"██║  ██║",
		"╚═╝  ╚═╝",
	},
	'A': {
		" █████╗ ",
		"██╔══██╗",
		"███████║",
		"██╔══██║",
		"██║  ██║",
		"╚═╝  ╚═╝",
	},
	'M': {
		"███╗   ███╗",
		"████╗ ████║",
		"██╔████╔██║",
		"██║╚██╔╝██║",
		"██║ ╚═╝ ██║",
		"╚═╝     ╚═╝",
	},
	'T': {
		"████████╗",
		"╚══██╔══╝",
		"   ██║   ",
		"   ██║   ",
		"   ██║   ",
		"   ╚═╝   ",
	},
	'E': {
		"███████╗",
		"██╔════╝",
		"█████╗  ",
		"██╔══╝  ",
		"███████╗",
		"╚══════╝",
	},
	'S': {
		"███████╗",
		"██╔════╝",
		"███████╗",
		"╚════██║",
		"███████║",
		"╚══════╝",
	},
}

const bannerWord = "GRAMTEST"

const bannerCompact = "G R A M T E S T"

// bannerArt joins the block glyphs of bannerWord line by line.
func bannerArt() string {
	var lines [6]strings.Builder
	for _, r := range bannerWord {
		g := glyphs[r]
		for i := range lines {
			lines[i].WriteString(g[i])
		}
	}
	out := make([]string, len(lines))
	for i := range lines {
		out[i] = " " + lines[i].String()
	}
	return strings.Join(out, "\n")
}

// bannerWidth is the column width of the full banner.
var bannerWidth = lipgloss.Width(bannerArt())

// RenderBanner returns the GRAMTEST banner styled in the primary color.
// Uses a compact fallback for terminals narrower than the banner.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerWidth+2 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt())
}
