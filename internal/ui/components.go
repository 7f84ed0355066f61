package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/harmonica"
)

// volumeMeter eases the drawn volume level towards the player volume.
type volumeMeter struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
}

func newVolumeMeter(fps int, start float64) volumeMeter {
	return volumeMeter{spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 0.8), pos: start}
}

func (v *volumeMeter) step(target float64) float64 {
	v.pos, v.vel = v.spring.Update(v.pos, v.vel, target)
	return v.pos
}

func renderVolumeMeter(level float64, width int) string {
	if width < 4 {
		width = 4
	}
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	filled := int(level*float64(width) + 0.5)
	return strings.Repeat("▮", filled) + strings.Repeat("▯", width-filled)
}

func renderVolumePercent(vol float64) string {
	return fmt.Sprintf("vol %d%%", int(vol*100+0.5))
}

func spaces(n int) string {
	if n < 0 {
		n = 0
	}
	return strings.Repeat(" ", n)
}
