package ui

import (
	"image/color"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/canvis/internal/config"
)

func TestFrameStyleBorder(t *testing.T) {
	r := config.Render{ColorMode: config.Dynamic, StaticColor: color.RGBA{R: 255, G: 16, A: 255}}
	if got := frameStyle(r, false).GetBorderTopForeground(); got != accent {
		t.Fatalf("expected accent border, got %v", got)
	}

	r.ColorMode = config.Static
	if got := frameStyle(r, false).GetBorderTopForeground(); got != lipgloss.Color("#FF1000") {
		t.Fatalf("expected static colour border, got %v", got)
	}
	if got := frameStyle(r, true).GetBorderTopForeground(); got != faintColor {
		t.Fatalf("expected faint border while paused, got %v", got)
	}
}
