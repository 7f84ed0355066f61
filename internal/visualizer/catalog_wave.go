package visualizer

import (
	"image/color"
	"math"
)

// rippleHeight is a frequency level modulated by sin(i*k), flipped and scaled.
func rippleHeight(k, factor float64) scalarFunc {
	return func(f *frame, s *sample) float64 {
		return math.Sin(s.i*k) * s.v * factor * f.scale
	}
}

func rippleColor(f *frame, s *sample) color.RGBA {
	return hslColor(s.i*1.5, 100, math.Abs(s.h)/3)
}

func fanColor(f *frame, s *sample) color.RGBA {
	return hslColor(s.i*1.5, s.i*0.356, math.Abs(s.h)*0.656)
}

func fanRotate(f *frame, s *sample) float64 { return math.Sin(s.i) * math.Cos(s.i*2.115) }

// heldLine is the shared shape of the styles that keep a decaying level
// across frames.
func heldLine(name string, threshold, turn float64, seg segFunc) *variant {
	return &variant{
		name: name, family: Wave, domain: Waveform,
		window:    fixedWindow,
		holdAt:    threshold,
		barWidth:  perWindow,
		height:    scaled100,
		color:     rainbow(hueIndexTimesWidth),
		center:    true,
		rotate:    func(f *frame, s *sample) float64 { return s.i * turn },
		lineWidth: lineWidthBar,
		draw:      strokeLines(seg),
	}
}

func waveCatalog() []Renderer {
	return []Renderer{
		&variant{
			name: "waveVisualizer1", family: Wave, domain: Frequency,
			height: func(f *frame, s *sample) float64 {
				h := s.v * 1.1
				if int(s.i)%10 != 0 {
					h = -h
				}
				return h * f.scale
			},
			color: hsl(func(f *frame, s *sample) (float64, float64, float64) {
				return s.i * 1.65, s.i * 0.589, math.Abs(s.h) * 0.789
			}),
			draw: fillRect(func(f *frame, s *sample) (float64, float64, float64, float64) {
				return f.x, f.h / 2, f.bw, s.h
			}),
		},
		&variant{
			name: "waveVisualizer2", family: Wave, domain: Frequency,
			height: rippleHeight(25, -1.125),
			color:  rippleColor,
			draw: fillRect(func(f *frame, s *sample) (float64, float64, float64, float64) {
				return f.x * 2, f.h / 2, f.bw * 2, s.h
			}),
		},
		&variant{
			name: "waveVisualizer3", family: Wave, domain: Frequency,
			height: rippleHeight(25, -0.659),
			color:  rippleColor,
			draw: fillRect(func(f *frame, s *sample) (float64, float64, float64, float64) {
				return f.x * 2, f.h / 2, s.i * 0.325, s.h
			}),
		},
		&variant{
			name: "waveVisualizer4", family: Wave, domain: Frequency,
			height:    rippleHeight(25, -1.125),
			color:     rippleColor,
			center:    true,
			rotate:    func(f *frame, s *sample) float64 { return math.Sin(s.i) * math.Cos(s.i) },
			lineWidth: constant(1),
			draw: strokeLines(func(f *frame, s *sample) (float64, float64, float64, float64) {
				return 0, 0, f.bw * 0.2, s.h
			}),
		},
		&variant{
			name: "waveVisualizer5", family: Wave, domain: Frequency,
			height:    rippleHeight(36, -1.125),
			color:     fanColor,
			center:    true,
			rotate:    fanRotate,
			lineWidth: constant(1),
			draw: strokeLines(func(f *frame, s *sample) (float64, float64, float64, float64) {
				return 0, s.i, f.x, s.h
			}),
		},
		&variant{
			name: "waveVisualizer6", family: Wave, domain: Frequency,
			height:    rippleHeight(36, -1.125),
			color:     fanColor,
			center:    true,
			rotate:    fanRotate,
			lineWidth: constant(1),
			draw: strokeLines(
				func(f *frame, s *sample) (float64, float64, float64, float64) { return 0, 0, s.i - f.w, s.h },
				func(f *frame, s *sample) (float64, float64, float64, float64) { return 0, 0, f.w - s.i, s.h },
			),
		},
		&variant{
			name: "waveVisualizer7", family: Wave, domain: Frequency,
			height:    rippleHeight(36, -1.125),
			color:     fanColor,
			center:    true,
			rotate:    fanRotate,
			lineWidth: constant(1),
			draw: strokeLines(
				func(f *frame, s *sample) (float64, float64, float64, float64) { return f.x, 0, s.i - f.w, s.h },
				func(f *frame, s *sample) (float64, float64, float64, float64) { return 0, 0, f.w - s.i, s.h },
			),
		},
		// Cursors creep by fixed steps instead of the bar width; the curve
		// end point reads them after the step.
		&variant{
			name: "waveVisualizer8", family: Wave, domain: Frequency,
			height: rippleHeight(10, 1),
			color: hsl(func(f *frame, s *sample) (float64, float64, float64) {
				return s.i * 1.5, s.h * 2.15, s.h * 1.12
			}),
			center:    true,
			rotate:    func(f *frame, s *sample) float64 { return math.Sin(s.i) * 3 },
			lineWidth: lineWidthBar,
			draw: strokeQuad(func(f *frame, s *sample) (float64, float64, float64, float64, float64, float64) {
				x, y := f.x+0.5, f.y+0.6
				return 0, 0, s.i*1.12 - s.h*0.51, s.h - s.i*0.3, math.Sin(x * 0.2), math.Cos(y * s.i * 0.6)
			}),
			advance: func(f *frame, s *sample) {
				f.x += 0.5
				f.y += 0.6
			},
		},
		&trace{name: "waveVisualizer9"},
		&variant{
			name: "waveVisualizer10", family: Wave, domain: Waveform,
			height: func(f *frame, s *sample) float64 { return math.Sin(s.v) * f.vol * 128 },
			color: hsl(func(f *frame, s *sample) (float64, float64, float64) {
				return f.vol * 300, math.Abs(s.h) * 3.15, math.Abs(s.h) * 3.56
			}),
			draw: fillRect(func(f *frame, s *sample) (float64, float64, float64, float64) {
				return s.i, f.h / 2, f.bw, s.h * 2.15
			}),
		},
		&variant{
			name: "waveVisualizer11", family: Wave, domain: Waveform,
			window:   fixedWindow,
			barWidth: perWindow,
			height:   scaled,
			color:    rainbow(hueIndexTimesWidth),
			draw: fillRect(func(f *frame, s *sample) (float64, float64, float64, float64) {
				return f.x, f.h / 2, f.bw, s.h * 100
			}),
		},
		heldLine("waveVisualizer12", 20, 0.0612, func(f *frame, s *sample) (float64, float64, float64, float64) {
			return 0, 0, 0, f.hold
		}),
		heldLine("waveVisualizer13", 20, 9.364, func(f *frame, s *sample) (float64, float64, float64, float64) {
			return f.x * 0.01, s.i, 100, s.h
		}),
		heldLine("waveVisualizer14", 30, 7.369, func(f *frame, s *sample) (float64, float64, float64, float64) {
			return f.x * 0.01, s.i, f.hold, 100
		}),
		heldLine("waveVisualizer15", 30, 3.369, func(f *frame, s *sample) (float64, float64, float64, float64) {
			return f.x * 0.01, f.x * 0.25, f.hold, s.h
		}),
		&variant{
			name: "waveVisualizer16", family: Wave, domain: Frequency,
			height: func(f *frame, s *sample) float64 { return s.v * (f.scale - 0.3) },
			color: hsl(func(f *frame, s *sample) (float64, float64, float64) {
				return s.i + 1.5, 100, s.h / 3
			}),
			center:    true,
			rotate:    func(f *frame, s *sample) float64 { return s.i * f.n / 1.5 },
			lineWidth: func(f *frame, s *sample) float64 { return s.h / 20 },
			draw: strokeLines(func(f *frame, s *sample) (float64, float64, float64, float64) {
				return 0, s.h / 2.7 * math.Sin(s.i*s.h), s.h * 0.5, s.h
			}),
		},
	}
}
