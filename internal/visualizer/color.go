package visualizer

import (
	"image/color"
	"math"
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func channel(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(math.Round(clamp01(v/255) * 255))
}

// rgbColor follows CSS rgb(): channels are clamped to 0..255 and rounded.
func rgbColor(r, g, b float64) color.RGBA {
	return color.RGBA{R: channel(r), G: channel(g), B: channel(b), A: 0xff}
}

// hslColor follows CSS hsl(): hue in degrees wraps, saturation and lightness
// are percentages clamped to 0..100.
func hslColor(h, s, l float64) color.RGBA {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		h = 0
	}
	if math.IsNaN(s) {
		s = 0
	}
	if math.IsNaN(l) {
		l = 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	h /= 360
	s = clamp01(s / 100)
	l = clamp01(l / 100)

	if s == 0 {
		v := l * 255
		return rgbColor(v, v, v)
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	return rgbColor(
		hueToRGB(p, q, h+1.0/3)*255,
		hueToRGB(p, q, h)*255,
		hueToRGB(p, q, h-1.0/3)*255,
	)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

var outlineColor = color.RGBA{A: 0xff}
