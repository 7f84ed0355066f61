package surface

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/fogleman/gg"
)

type pathOp struct {
	kind byte // 'M', 'L', 'Q'
	pts  [4]float64
}

// Canvas is a raster Context backed by gg. The current path is kept in device
// space and replayed on Fill and Stroke, so filling leaves the path intact for
// a following Stroke.
type Canvas struct {
	dc       *gg.Context
	w, h     int
	path     []pathOp
	current  bool
	lineW    float64
	saved    []float64
	backdrop color.Color
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

func (c *Canvas) Width() int  { return c.w }
func (c *Canvas) Height() int { return c.h }

func (c *Canvas) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if c.dc == nil || w != c.w || h != c.h {
		c.dc = gg.NewContext(w, h)
		c.w, c.h = w, h
	} else {
		c.dc.Identity()
		c.Clear()
	}
	c.dc.SetLineCapButt()
	c.dc.SetLineJoinBevel()
	c.dc.SetFillRuleWinding()
	c.dc.SetFillStyle(gg.NewSolidPattern(color.Black))
	c.dc.SetStrokeStyle(gg.NewSolidPattern(color.Black))
	c.lineW = 1
	c.saved = c.saved[:0]
	c.path = c.path[:0]
	c.current = false
}

func (c *Canvas) Clear() {
	if im, ok := c.dc.Image().(*image.RGBA); ok {
		clear(im.Pix)
	}
}

func (c *Canvas) SetBackdrop(col color.Color) { c.backdrop = col }

func (c *Canvas) Save() {
	c.dc.Push()
	c.saved = append(c.saved, c.lineW)
}

func (c *Canvas) Restore() {
	if len(c.saved) == 0 {
		return
	}
	c.dc.Pop()
	c.lineW = c.saved[len(c.saved)-1]
	c.saved = c.saved[:len(c.saved)-1]
}

func (c *Canvas) Translate(x, y float64) {
	if finite(x, y) {
		c.dc.Translate(x, y)
	}
}

func (c *Canvas) Rotate(angle float64) {
	if finite(angle) {
		c.dc.Rotate(angle)
	}
}

func (c *Canvas) Scale(sx, sy float64) {
	if finite(sx, sy) {
		c.dc.Scale(sx, sy)
	}
}

func (c *Canvas) SetFillColor(col color.Color)   { c.dc.SetFillStyle(gg.NewSolidPattern(col)) }
func (c *Canvas) SetStrokeColor(col color.Color) { c.dc.SetStrokeStyle(gg.NewSolidPattern(col)) }

func (c *Canvas) SetLineWidth(w float64) {
	if finite(w) && w > 0 {
		c.lineW = w
	}
}

func (c *Canvas) FillRect(x, y, w, h float64) {
	if !finite(x, y, w, h) || w == 0 || h == 0 {
		return
	}
	x0, y0 := c.dc.TransformPoint(x, y)
	x1, y1 := c.dc.TransformPoint(x+w, y)
	x2, y2 := c.dc.TransformPoint(x+w, y+h)
	x3, y3 := c.dc.TransformPoint(x, y+h)

	c.dc.Push()
	c.dc.Identity()
	c.dc.ClearPath()
	c.dc.MoveTo(x0, y0)
	c.dc.LineTo(x1, y1)
	c.dc.LineTo(x2, y2)
	c.dc.LineTo(x3, y3)
	c.dc.ClosePath()
	c.dc.Fill()
	c.dc.Pop()
}

func (c *Canvas) BeginPath() {
	c.path = c.path[:0]
	c.current = false
}

func (c *Canvas) MoveTo(x, y float64) {
	if !finite(x, y) {
		return
	}
	dx, dy := c.dc.TransformPoint(x, y)
	c.path = append(c.path, pathOp{kind: 'M', pts: [4]float64{dx, dy}})
	c.current = true
}

func (c *Canvas) LineTo(x, y float64) {
	if !finite(x, y) {
		return
	}
	if !c.current {
		c.MoveTo(x, y)
		return
	}
	dx, dy := c.dc.TransformPoint(x, y)
	c.path = append(c.path, pathOp{kind: 'L', pts: [4]float64{dx, dy}})
}

func (c *Canvas) QuadraticTo(cx, cy, x, y float64) {
	if !finite(cx, cy, x, y) {
		return
	}
	if !c.current {
		c.MoveTo(cx, cy)
	}
	dcx, dcy := c.dc.TransformPoint(cx, cy)
	dx, dy := c.dc.TransformPoint(x, y)
	c.path = append(c.path, pathOp{kind: 'Q', pts: [4]float64{dcx, dcy, dx, dy}})
}

func (c *Canvas) Arc(x, y, r, start, end float64) {
	if !finite(x, y, r, start, end) || r < 0 {
		return
	}
	sweep := ArcSweep(start, end)
	n := int(math.Ceil(sweep / (math.Pi / 32)))
	if n < 1 {
		n = 1
	}
	for i := 0; i <= n; i++ {
		a := start + sweep*float64(i)/float64(n)
		px, py := x+r*math.Cos(a), y+r*math.Sin(a)
		if i == 0 && !c.current {
			c.MoveTo(px, py)
			continue
		}
		c.LineTo(px, py)
	}
}

func (c *Canvas) replay() {
	c.dc.ClearPath()
	for _, op := range c.path {
		switch op.kind {
		case 'M':
			c.dc.MoveTo(op.pts[0], op.pts[1])
		case 'L':
			c.dc.LineTo(op.pts[0], op.pts[1])
		case 'Q':
			c.dc.QuadraticTo(op.pts[0], op.pts[1], op.pts[2], op.pts[3])
		}
	}
}

func (c *Canvas) Fill() {
	if len(c.path) == 0 {
		return
	}
	c.dc.Push()
	c.dc.Identity()
	c.replay()
	c.dc.Fill()
	c.dc.Pop()
}

func (c *Canvas) Stroke() {
	if len(c.path) == 0 {
		return
	}
	w := c.lineW * c.transformScale()
	c.dc.Push()
	c.dc.Identity()
	c.dc.SetLineWidth(w)
	c.replay()
	c.dc.Stroke()
	c.dc.Pop()
}

// transformScale approximates how the current transform scales lengths.
func (c *Canvas) transformScale() float64 {
	ox, oy := c.dc.TransformPoint(0, 0)
	ax, ay := c.dc.TransformPoint(1, 0)
	bx, by := c.dc.TransformPoint(0, 1)
	det := math.Abs((ax-ox)*(by-oy) - (ay-oy)*(bx-ox))
	return math.Sqrt(det)
}

// Image returns the presented frame: the drawn pixels over the backdrop.
func (c *Canvas) Image() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, c.w, c.h))
	if c.backdrop != nil {
		draw.Draw(out, out.Bounds(), image.NewUniform(c.backdrop), image.Point{}, draw.Src)
	}
	draw.Draw(out, out.Bounds(), c.dc.Image(), image.Point{}, draw.Over)
	return out
}
