package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/canvis/internal/config"
)

var (
	inkColor   = lipgloss.AdaptiveColor{Light: "#1C1C1C", Dark: "#F2F2F2"}
	dimColor   = lipgloss.AdaptiveColor{Light: "#7A7A7A", Dark: "#7A7A7A"}
	faintColor = lipgloss.AdaptiveColor{Light: "#A8A8A8", Dark: "#585858"}
	accent     = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#5FD7FF"}
	alertColor = lipgloss.AdaptiveColor{Light: "#AF5F00", Dark: "#FFAF5F"}
)

var (
	brandStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	trackStyle  = lipgloss.NewStyle().Bold(true).Foreground(inkColor)
	creditStyle = lipgloss.NewStyle().Foreground(dimColor)
	clockStyle  = lipgloss.NewStyle().Foreground(dimColor)
	statusStyle = lipgloss.NewStyle().Foreground(inkColor)
	hintStyle   = lipgloss.NewStyle().Foreground(faintColor)
	alertStyle  = lipgloss.NewStyle().Foreground(alertColor)
)

// frameStyle borders the canvas. The border follows the static colour when
// one is in use and fades while playback is paused.
func frameStyle(r config.Render, paused bool) lipgloss.Style {
	var border lipgloss.TerminalColor = accent
	switch {
	case paused:
		border = faintColor
	case r.ColorMode == config.Static:
		c := r.StaticColor
		border = lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))
	}
	return lipgloss.NewStyle().
		MarginLeft(1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border)
}
