package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{79, 24, true},
		{80, 23, true},
		{120, 40, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestRenderHeaderShowsParts(t *testing.T) {
	h := RenderHeader("Grammar Test", "Question", "Ada", 80)
	for _, want := range []string{"Grammar Test", "Question", "Ada"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestRenderFrameHeight(t *testing.T) {
	header := RenderHeader("App", "", "", 80)
	footer := RenderFooter([]KeyHint{{Key: "Esc", Description: "Quit"}}, 80)
	frame := RenderFrame(header, "body", footer, 80, 24)
	if got := lipgloss.Height(frame); got != 24 {
		t.Errorf("frame height = %d, want 24", got)
	}
}

func TestDivider(t *testing.T) {
	if got := lipgloss.Width(Divider(100, 60)); got != 60 {
		t.Errorf("divider width = %d, want 60", got)
	}
	if got := lipgloss.Width(Divider(40, 60)); got != 32 {
		t.Errorf("divider width = %d, want 32", got)
	}
}
