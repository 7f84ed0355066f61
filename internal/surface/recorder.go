package surface

import (
	"image/color"
	"math"
)

// OpKind identifies a recorded drawing call.
type OpKind int

const (
	OpClear OpKind = iota
	OpBackdrop
	OpFillRect
	OpFill
	OpStroke
)

// Op is one painting call captured by Recorder, with the style in effect.
type Op struct {
	Kind      OpKind
	Rect      [4]float64 // FillRect arguments
	Color     color.RGBA // fill or stroke colour
	LineWidth float64
	// Extent is the device-space bounding box size of what was painted.
	Extent float64
	Depth  int
}

// Recorder is a Context that records painting calls instead of rasterizing.
// Path and transform state are tracked so extents are meaningful.
type Recorder struct {
	w, h    int
	ops     []Op
	m       affine
	stack   []recState
	fill    color.RGBA
	stroke  color.RGBA
	lineW   float64
	pts     [][2]float64
	current bool
	// Backdrop holds the last colour passed to SetBackdrop.
	Backdrop color.Color
}

type recState struct {
	m      affine
	fill   color.RGBA
	stroke color.RGBA
	lineW  float64
}

type affine struct{ a, b, c, d, e, f float64 }

var identity = affine{a: 1, d: 1}

func (m affine) apply(x, y float64) (float64, float64) {
	return m.a*x + m.c*y + m.e, m.b*x + m.d*y + m.f
}

func (m affine) mul(n affine) affine {
	return affine{
		a: m.a*n.a + m.c*n.b,
		b: m.b*n.a + m.d*n.b,
		c: m.a*n.c + m.c*n.d,
		d: m.b*n.c + m.d*n.d,
		e: m.a*n.e + m.c*n.f + m.e,
		f: m.b*n.e + m.d*n.f + m.f,
	}
}

func NewRecorder(w, h int) *Recorder {
	r := &Recorder{}
	r.Resize(w, h)
	return r
}

func (r *Recorder) Width() int  { return r.w }
func (r *Recorder) Height() int { return r.h }

func (r *Recorder) Resize(w, h int) {
	r.w, r.h = w, h
	r.m = identity
	r.stack = r.stack[:0]
	r.fill = color.RGBA{A: 0xff}
	r.stroke = color.RGBA{A: 0xff}
	r.lineW = 1
	r.pts = r.pts[:0]
	r.current = false
}

func (r *Recorder) Clear() { r.ops = append(r.ops, Op{Kind: OpClear}) }

func (r *Recorder) SetBackdrop(c color.Color) {
	r.Backdrop = c
	r.ops = append(r.ops, Op{Kind: OpBackdrop, Color: toRGBA(c)})
}

func (r *Recorder) Save() {
	r.stack = append(r.stack, recState{m: r.m, fill: r.fill, stroke: r.stroke, lineW: r.lineW})
}

func (r *Recorder) Restore() {
	if len(r.stack) == 0 {
		return
	}
	s := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	r.m, r.fill, r.stroke, r.lineW = s.m, s.fill, s.stroke, s.lineW
}

func (r *Recorder) Translate(x, y float64) {
	if finite(x, y) {
		r.m = r.m.mul(affine{a: 1, d: 1, e: x, f: y})
	}
}

func (r *Recorder) Rotate(angle float64) {
	if finite(angle) {
		s, c := math.Sincos(angle)
		r.m = r.m.mul(affine{a: c, b: s, c: -s, d: c})
	}
}

func (r *Recorder) Scale(sx, sy float64) {
	if finite(sx, sy) {
		r.m = r.m.mul(affine{a: sx, d: sy})
	}
}

func (r *Recorder) SetFillColor(c color.Color)   { r.fill = toRGBA(c) }
func (r *Recorder) SetStrokeColor(c color.Color) { r.stroke = toRGBA(c) }

func (r *Recorder) SetLineWidth(w float64) {
	if finite(w) && w > 0 {
		r.lineW = w
	}
}

func (r *Recorder) FillRect(x, y, w, h float64) {
	if !finite(x, y, w, h) {
		return
	}
	r.ops = append(r.ops, Op{
		Kind:   OpFillRect,
		Rect:   [4]float64{x, y, w, h},
		Color:  r.fill,
		Extent: math.Abs(w) * math.Abs(h),
		Depth:  len(r.stack),
	})
}

func (r *Recorder) BeginPath() {
	r.pts = r.pts[:0]
	r.current = false
}

func (r *Recorder) add(x, y float64) {
	px, py := r.m.apply(x, y)
	r.pts = append(r.pts, [2]float64{px, py})
	r.current = true
}

func (r *Recorder) MoveTo(x, y float64) {
	if finite(x, y) {
		r.add(x, y)
	}
}

func (r *Recorder) LineTo(x, y float64) {
	if finite(x, y) {
		r.add(x, y)
	}
}

func (r *Recorder) QuadraticTo(cx, cy, x, y float64) {
	if finite(cx, cy, x, y) {
		r.add(cx, cy)
		r.add(x, y)
	}
}

func (r *Recorder) Arc(x, y, rad, start, end float64) {
	if !finite(x, y, rad, start, end) || rad < 0 {
		return
	}
	sweep := ArcSweep(start, end)
	const n = 16
	for i := 0; i <= n; i++ {
		a := start + sweep*float64(i)/n
		r.add(x+rad*math.Cos(a), y+rad*math.Sin(a))
	}
}

func (r *Recorder) Fill() {
	r.ops = append(r.ops, Op{Kind: OpFill, Color: r.fill, Extent: r.extent(), Depth: len(r.stack)})
}

func (r *Recorder) Stroke() {
	r.ops = append(r.ops, Op{Kind: OpStroke, Color: r.stroke, LineWidth: r.lineW, Extent: r.extent(), Depth: len(r.stack)})
}

// extent is the larger side of the current path's bounding box.
func (r *Recorder) extent() float64 {
	if len(r.pts) == 0 {
		return 0
	}
	minX, minY := r.pts[0][0], r.pts[0][1]
	maxX, maxY := minX, minY
	for _, p := range r.pts[1:] {
		minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
		minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
	}
	return math.Max(maxX-minX, maxY-minY)
}

// Ops returns the calls recorded since the last Reset.
func (r *Recorder) Ops() []Op { return r.ops }

// Reset drops recorded calls but keeps drawing state.
func (r *Recorder) Reset() { r.ops = r.ops[:0] }

// Depth reports the current save stack depth.
func (r *Recorder) Depth() int { return len(r.stack) }

func toRGBA(c color.Color) color.RGBA {
	if c == nil {
		return color.RGBA{}
	}
	if rgba, ok := c.(color.RGBA); ok {
		return rgba
	}
	cr, cg, cb, ca := c.RGBA()
	return color.RGBA{R: uint8(cr >> 8), G: uint8(cg >> 8), B: uint8(cb >> 8), A: uint8(ca >> 8)}
}
