package visualizer

import (
	"image/color"
	"math"
)

func barRGB(f *frame, s *sample) color.RGBA {
	return rgbColor(s.i*s.h/20, s.i*7, s.h/2)
}

func barCatalog() []Renderer {
	return []Renderer{
		&variant{
			name: "barVisualizer", family: Bar, domain: Frequency,
			height: scaled,
			color:  barRGB,
			draw: fillRect(func(f *frame, s *sample) (float64, float64, float64, float64) {
				return f.x, f.h - s.h, f.bw, s.h
			}),
		},
		// Mirrored around the vertical centre line, each half using half the width.
		&variant{
			name: "doubleBarVisualizer", family: Bar, domain: Frequency,
			barWidth: perBin(0.5),
			height:   scaled,
			color:    barRGB,
			draw: func(f *frame, s *sample) {
				f.sf.SetFillColor(s.col)
				f.sf.FillRect(f.w/2-f.x, f.h-s.h, f.bw, s.h)
				f.sf.FillRect(f.w/2+f.x, f.h-s.h, f.bw, s.h)
			},
		},
		&variant{
			name: "horizonatalBarVisualizer", family: Bar, domain: Waveform,
			window:    fixedWindow,
			barWidth:  perWindow,
			height:    scaled100,
			color:     rainbow(hueIndexPlusWidth),
			center:    true,
			stretch:   true,
			lineWidth: lineWidthBar,
			draw: strokeCurve(func(f *frame, s *sample) (float64, float64, float64, float64) {
				return math.Sin(s.i) * f.x, math.Sin(f.vol) * s.h, 0, 0
			}),
		},
	}
}
