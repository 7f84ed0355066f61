// Package video presents rendered canvas frames in the terminal.
package video

import (
	"image"
	"image/color"
	"strings"

	"github.com/muesli/termenv"
)

// Renderer converts a canvas frame into a terminal string.
// It supports two modes:
//   - Color (half-block): uses "▀" with fg/bg colors to pack 2 pixel rows per terminal row.
//   - ASCII (no color): maps each pixel to a brightness character.
type Renderer struct {
	colors colorCache
	sb     strings.Builder
}

// NewRenderer creates a renderer using the current terminal's color capabilities.
func NewRenderer() *Renderer {
	return newRenderer(detectProfile())
}

// NewASCIIRenderer creates a renderer that never emits colour escapes.
func NewASCIIRenderer() *Renderer {
	return newRenderer(termenv.Ascii)
}

func newRenderer(p termenv.Profile) *Renderer {
	return &Renderer{colors: newColorCache(p)}
}

// Color reports whether frames are drawn with half-blocks.
func (r *Renderer) Color() bool { return r.colors.profile != termenv.Ascii }

// Render scales img to outW x outH terminal cells with nearest-neighbour
// sampling. Transparent pixels are shown over black.
func (r *Renderer) Render(img image.Image, outW, outH int) string {
	if img == nil || outW <= 0 || outH <= 0 {
		return ""
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return ""
	}

	r.sb.Reset()
	r.sb.Grow(outW * outH * 24)

	if !r.Color() {
		r.renderASCII(img, outW, outH)
	} else {
		r.renderHalfBlock(img, outW, outH)
	}
	return r.sb.String()
}

func (r *Renderer) renderHalfBlock(img image.Image, outW, outH int) {
	b := img.Bounds()
	pixelRows := outH * 2

	var lastFg, lastBg string
	for row := 0; row < outH; row++ {
		topY := b.Min.Y + row*2*b.Dy()/pixelRows
		botY := b.Min.Y + (row*2+1)*b.Dy()/pixelRows

		for col := 0; col < outW; col++ {
			x := b.Min.X + col*b.Dx()/outW
			tr, tg, tb := samplePixel(img, x, topY)
			br, bg, bb := samplePixel(img, x, botY)

			fg := r.colors.seq(false, tr, tg, tb)
			bgc := r.colors.seq(true, br, bg, bb)
			if fg != lastFg {
				r.sb.WriteString(fg)
				lastFg = fg
			}
			if bgc != lastBg {
				r.sb.WriteString(bgc)
				lastBg = bgc
			}
			r.sb.WriteString("▀")
		}

		r.sb.WriteString(ansiReset)
		lastFg, lastBg = "", ""
		if row < outH-1 {
			r.sb.WriteByte('\n')
		}
	}
}

func (r *Renderer) renderASCII(img image.Image, outW, outH int) {
	b := img.Bounds()
	for row := 0; row < outH; row++ {
		y := b.Min.Y + row*b.Dy()/outH
		for col := 0; col < outW; col++ {
			x := b.Min.X + col*b.Dx()/outW
			r.sb.WriteByte(brightnessChar(luminance(samplePixel(img, x, y))))
		}
		if row < outH-1 {
			r.sb.WriteByte('\n')
		}
	}
}

// samplePixel returns the pixel at (x, y) composited over black.
func samplePixel(img image.Image, x, y int) (uint8, uint8, uint8) {
	if rgba, ok := img.(*image.RGBA); ok {
		c := rgba.RGBAAt(x, y)
		return c.R, c.G, c.B
	}
	c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
	return c.R, c.G, c.B
}

// luminance computes perceived brightness (ITU-R BT.601).
func luminance(r, g, b uint8) uint8 {
	return uint8((299*int(r) + 587*int(g) + 114*int(b)) / 1000)
}

// Fit returns the terminal cell size that shows a srcW x srcH canvas inside
// termW x termH cells without distorting it. Cells are taken to be twice as
// tall as wide.
func Fit(termW, termH, srcW, srcH int) (outW, outH int) {
	if srcW <= 0 || srcH <= 0 || termW <= 0 || termH <= 0 {
		return 0, 0
	}
	aspect := float64(srcW) / float64(srcH)

	// rows needed per column of width
	rowsPerCol := 0.5 / aspect
	outW = termW
	outH = int(float64(outW)*rowsPerCol + 0.5)
	if outH > termH {
		outH = termH
		outW = int(float64(outH)/rowsPerCol + 0.5)
	}
	if outW > termW {
		outW = termW
	}

	if outW < 4 {
		outW = 4
	}
	if outH < 2 {
		outH = 2
	}
	return outW, outH
}
