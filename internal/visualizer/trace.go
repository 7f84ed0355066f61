package visualizer

import (
	"image/color"
	"math"

	"github.com/olivier-w/canvis/internal/config"
)

// trace strokes the raw waveform as one continuous polyline, closed off at the
// right edge on the centre line. The stroke colour is the last sample's.
type trace struct {
	name string
}

func (t *trace) Name() string   { return t.name }
func (t *trace) Family() Family { return Wave }
func (t *trace) Domain() Domain { return Waveform }
func (t *trace) Stateful() bool { return false }

func (t *trace) Render(in Input, st State) State {
	sf := in.Surface
	paintBackground(sf, in.Config)
	if len(in.Samples) == 0 || SilentSnapshot(in.Samples, Waveform) {
		return st
	}

	w, h := float64(sf.Width()), float64(sf.Height())
	bw := w / float64(len(in.Samples))
	scale := in.Config.Scale()

	var col color.RGBA
	x := 0.0
	sf.Save()
	sf.SetLineWidth(2)
	sf.BeginPath()
	for i, b := range in.Samples {
		y := float64(b) / 128 * scale * (h / 2)
		if in.Config.ColorMode == config.Static {
			col = in.Config.StaticColor
		} else {
			col = hslColor(math.Sqrt(y)*300, y*0.312, y*0.12)
		}
		if i == 0 {
			sf.MoveTo(x, y)
		} else {
			sf.LineTo(x, y)
		}
		x += bw
	}
	sf.LineTo(w, h/2)
	sf.SetStrokeColor(col)
	sf.Stroke()
	sf.Restore()
	return st
}
