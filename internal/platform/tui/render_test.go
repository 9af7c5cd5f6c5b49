package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func TestRenderScreenPlain(t *testing.T) {
	s := core.NewScreen(5, 2)
	s.DrawText(0, 0, "hello")
	s.DrawText(0, 1, "world")

	if got := RenderScreen(s); got != "hello\nworld" {
		t.Errorf("RenderScreen() = %q, expected %q", got, "hello\nworld")
	}
}

func TestRenderScreenColoredRuns(t *testing.T) {
	s := core.NewScreen(6, 1)
	s.SetColored(0, 0, '#', core.ColorCyan)
	s.SetColored(1, 0, '#', core.ColorCyan)
	s.SetColored(2, 0, '#', core.ColorYellow)

	out := RenderScreen(s)
	if strings.Count(out, "\n") != 0 {
		t.Errorf("expected a single line, got %q", out)
	}
	if !strings.Contains(out, "##") {
		t.Errorf("expected the cyan run to stay together, got %q", out)
	}
	if strings.Count(out, "#") != 3 {
		t.Errorf("expected 3 blocks, got %q", out)
	}
}

func TestStyleForUnknownColor(t *testing.T) {
	if got := styleFor(core.Color(200)).Render("x"); got != "x" {
		t.Errorf("unknown color rendered as %q, expected plain text", got)
	}
}
