// Package surface provides the 2D drawing surface the visualizers paint on.
//
// The API follows the immediate-mode canvas model: a current path, fill and
// stroke styles, a line width and a save/restore stack of affine transforms.
// Path points are transformed when they are added, so changing the transform
// after MoveTo does not move the point.
package surface

import (
	"image/color"
	"math"
)

// Context is a mutable 2D drawing surface.
type Context interface {
	Width() int
	Height() int
	// Resize sets the surface dimensions and resets all drawing state.
	Resize(w, h int)
	// Clear makes every pixel transparent.
	Clear()
	// SetBackdrop sets a colour composited under the drawn pixels when the
	// frame is presented. nil removes it.
	SetBackdrop(c color.Color)

	Save()
	Restore()
	Translate(x, y float64)
	Rotate(angle float64)
	Scale(sx, sy float64)

	SetFillColor(c color.Color)
	SetStrokeColor(c color.Color)
	SetLineWidth(w float64)

	FillRect(x, y, w, h float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(cx, cy, x, y float64)
	// Arc adds a clockwise circular arc. A sweep of 2π or more draws the full
	// circle; otherwise the end angle is reduced modulo 2π. Negative radii are
	// ignored.
	Arc(x, y, r, start, end float64)
	Fill()
	Stroke()
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// ArcSweep returns the clockwise sweep an arc from start to end covers.
func ArcSweep(start, end float64) float64 {
	d := end - start
	if d >= 2*math.Pi {
		return 2 * math.Pi
	}
	d = math.Mod(d, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	return d
}
