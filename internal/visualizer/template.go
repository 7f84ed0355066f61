package visualizer

import (
	"image/color"
	"math"

	"github.com/olivier-w/canvis/internal/config"
	"github.com/olivier-w/canvis/internal/surface"
)

// holdDecay is the per-sample decay of the held level while the signal stays
// under the hold threshold.
const holdDecay = 0.00021

// fixedWindow is the sample count some styles were designed around.
const fixedWindow = 256

// frame is the scratch workspace of one Render call.
type frame struct {
	sf    surface.Context
	cfg   config.Render
	w, h  float64
	n     float64 // snapshot length
	bw    float64
	scale float64
	vol   float64
	x, y  float64
	hold  float64
}

// sample is the per-index view the formulas read.
type sample struct {
	i   float64
	v   float64 // byte level, normalized waveform or raw waveform byte
	h   float64
	col color.RGBA
}

type (
	scalarFunc func(f *frame, s *sample) float64
	colorFunc  func(f *frame, s *sample) color.RGBA
	drawFunc   func(f *frame, s *sample)
)

// variant is one catalog row: a parameter set over the shared render loop.
type variant struct {
	name   string
	family Family
	domain Domain
	// window bounds iteration to min(len, window); 0 iterates everything.
	window int
	// raw feeds waveform bytes to the formulas without normalizing.
	raw bool
	// holdAt enables the cross-frame hold when positive.
	holdAt float64

	barWidth  func(f *frame) float64
	height    scalarFunc
	color     colorFunc
	center    bool
	rotate    scalarFunc
	stretch   bool
	lineWidth scalarFunc
	draw      drawFunc
	// advance moves the cursor after each sample; nil means x += bw.
	advance func(f *frame, s *sample)
}

func (v *variant) Name() string   { return v.name }
func (v *variant) Family() Family { return v.family }
func (v *variant) Domain() Domain { return v.domain }
func (v *variant) Stateful() bool { return v.holdAt > 0 }

// paintBackground clears the surface and applies the background colour,
// either as a backdrop behind the canvas or as a full-surface fill.
func paintBackground(sf surface.Context, cfg config.Render) {
	sf.Clear()
	if cfg.TransparentBackground {
		sf.SetBackdrop(cfg.Background)
		return
	}
	sf.SetBackdrop(nil)
	sf.SetFillColor(cfg.Background)
	sf.FillRect(0, 0, float64(sf.Width()), float64(sf.Height()))
}

func newFrame(in Input, hold float64) frame {
	return frame{
		sf:    in.Surface,
		cfg:   in.Config,
		w:     float64(in.Surface.Width()),
		h:     float64(in.Surface.Height()),
		n:     float64(len(in.Samples)),
		scale: in.Config.Scale(),
		hold:  hold,
	}
}

func (v *variant) Render(in Input, st State) State {
	paintBackground(in.Surface, in.Config)
	if len(in.Samples) == 0 {
		return st
	}

	f := newFrame(in, st.Hold)
	if v.domain == Waveform {
		f.vol = RMS(in.Samples)
	}
	if v.barWidth != nil {
		f.bw = v.barWidth(&f)
	} else {
		f.bw = f.w / f.n
	}

	count := len(in.Samples)
	if v.window > 0 && count > v.window {
		count = v.window
	}
	// A silent snapshot still advances the hold but paints nothing.
	silent := SilentSnapshot(in.Samples[:count], v.domain)
	for i := 0; i < count; i++ {
		b := in.Samples[i]
		s := sample{i: float64(i), v: v.level(b)}
		s.h = v.height(&f, &s)
		if in.Config.ColorMode == config.Static {
			s.col = in.Config.StaticColor
		} else {
			s.col = v.color(&f, &s)
		}
		if v.holdAt > 0 {
			if s.h > v.holdAt {
				f.hold = s.h
			} else {
				f.hold -= f.hold * holdDecay
			}
		}
		if !silent {
			v.paint(&f, &s)
		}
		if v.advance != nil {
			v.advance(&f, &s)
		} else {
			f.x += f.bw
		}
	}

	if v.holdAt > 0 {
		return State{Hold: f.hold}
	}
	return st
}

func (v *variant) level(b byte) float64 {
	if v.domain == Waveform && !v.raw {
		return Normalize(b)
	}
	return float64(b)
}

func (v *variant) paint(f *frame, s *sample) {
	sf := f.sf
	sf.Save()
	if v.center {
		sf.Translate(f.w/2, f.h/2)
	}
	if v.rotate != nil {
		sf.Rotate(v.rotate(f, s))
	}
	if v.stretch {
		sf.Scale(1+f.vol*1.2, 1)
	}
	if v.lineWidth != nil {
		sf.SetLineWidth(v.lineWidth(f, s))
	}
	v.draw(f, s)
	sf.Restore()
}

// Shapes.

type rectFunc func(f *frame, s *sample) (x, y, w, h float64)

func fillRect(fn rectFunc) drawFunc {
	return func(f *frame, s *sample) {
		f.sf.SetFillColor(s.col)
		f.sf.FillRect(fn(f, s))
	}
}

type segFunc func(f *frame, s *sample) (x0, y0, x1, y1 float64)

// strokeLines strokes one path made of the given segments.
func strokeLines(segs ...segFunc) drawFunc {
	return func(f *frame, s *sample) {
		f.sf.SetStrokeColor(s.col)
		f.sf.BeginPath()
		for _, seg := range segs {
			x0, y0, x1, y1 := seg(f, s)
			f.sf.MoveTo(x0, y0)
			f.sf.LineTo(x1, y1)
		}
		f.sf.Stroke()
	}
}

type quadFunc func(f *frame, s *sample) (mx, my, cx, cy, x, y float64)

func strokeQuad(fn quadFunc) drawFunc {
	return func(f *frame, s *sample) {
		mx, my, cx, cy, x, y := fn(f, s)
		f.sf.SetStrokeColor(s.col)
		f.sf.BeginPath()
		f.sf.MoveTo(mx, my)
		f.sf.QuadraticTo(cx, cy, x, y)
		f.sf.Stroke()
	}
}

type curveFunc func(f *frame, s *sample) (cx, cy, x, y float64)

// strokeCurve strokes a quadratic curve on an empty path, which starts at its
// own control point.
func strokeCurve(fn curveFunc) drawFunc {
	return func(f *frame, s *sample) {
		cx, cy, x, y := fn(f, s)
		f.sf.SetStrokeColor(s.col)
		f.sf.BeginPath()
		f.sf.QuadraticTo(cx, cy, x, y)
		f.sf.Stroke()
	}
}

type arcFunc func(f *frame, s *sample) (x, y, r, start, end float64)

// fillArcs fills one path made of the given arcs. With outline set the path is
// also stroked in the default outline colour.
func fillArcs(outline bool, arcs ...arcFunc) drawFunc {
	return func(f *frame, s *sample) {
		f.sf.SetFillColor(s.col)
		f.sf.BeginPath()
		for _, a := range arcs {
			f.sf.Arc(a(f, s))
		}
		f.sf.Fill()
		if outline {
			f.sf.SetStrokeColor(outlineColor)
			f.sf.Stroke()
		}
	}
}

// rectAndDot draws a radial bar capped by a disc. With staticBar the bar
// always uses the configured static colour.
func rectAndDot(staticBar bool) drawFunc {
	return func(f *frame, s *sample) {
		bar := s.col
		if staticBar {
			bar = f.cfg.StaticColor
		}
		f.sf.SetFillColor(bar)
		f.sf.FillRect(0, 0, f.bw, s.h)
		f.sf.BeginPath()
		f.sf.SetFillColor(s.col)
		f.sf.Arc(0, s.h, f.bw, 0, 2*math.Pi)
		f.sf.Fill()
	}
}

// Common formula pieces.

func scaled(f *frame, s *sample) float64   { return s.v * f.scale }
func scaled100(f *frame, s *sample) float64 { return s.v * f.scale * 100 }

func perBin(k float64) func(f *frame) float64 {
	return func(f *frame) float64 { return f.w / f.n * k }
}

func perWindow(f *frame) float64 { return f.w / fixedWindow }

func hsl(fn func(f *frame, s *sample) (h, sat, l float64)) colorFunc {
	return func(f *frame, s *sample) color.RGBA { return hslColor(fn(f, s)) }
}

// rainbow is the fully saturated hue ramp several styles share.
func rainbow(hue scalarFunc) colorFunc {
	return func(f *frame, s *sample) color.RGBA { return hslColor(hue(f, s), 100, 50) }
}

func hueIndexTimesWidth(f *frame, s *sample) float64 { return s.i * f.bw }
func hueIndexPlusWidth(f *frame, s *sample) float64  { return s.i + f.bw }

func lineWidthBar(f *frame, s *sample) float64 { return f.bw }

func constant(v float64) scalarFunc { return func(*frame, *sample) float64 { return v } }
