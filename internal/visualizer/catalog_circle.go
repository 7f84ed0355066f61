package visualizer

import (
	"image/color"
	"math"
)

func petalColor(hueOffset, lightDiv float64) colorFunc {
	return hsl(func(f *frame, s *sample) (float64, float64, float64) {
		return s.i + hueOffset, s.h, s.h / lightDiv
	})
}

func dimRamp(f *frame, s *sample) color.RGBA { return hslColor(s.i+1.5, 100, s.h/3) }

// turns returns a rotation of i*n*k, n being the snapshot length.
func turns(k float64) scalarFunc {
	return func(f *frame, s *sample) float64 { return s.i * f.n * k }
}

func turnBy(k float64) scalarFunc {
	return func(f *frame, s *sample) float64 { return s.i * k }
}

// petal is a filled and outlined arc rotated by i*4.5.
func petal(name string, col colorFunc, arc arcFunc) *variant {
	return &variant{
		name: name, family: Circle, domain: Frequency,
		height:    scaled,
		color:     col,
		center:    true,
		rotate:    turnBy(4.5),
		lineWidth: constant(1),
		draw:      fillArcs(true, arc),
	}
}

// bead is a filled and outlined arc on the wide-bar layout.
func bead(name string, rotate scalarFunc, arcs ...arcFunc) *variant {
	return &variant{
		name: name, family: Circle, domain: Frequency,
		barWidth:  perBin(3),
		height:    scaled,
		color:     dimRamp,
		center:    true,
		rotate:    rotate,
		lineWidth: constant(1),
		draw:      fillArcs(true, arcs...),
	}
}

// spoke is a stroked line whose width follows the level.
func spoke(name string, seg segFunc) *variant {
	return &variant{
		name: name, family: Circle, domain: Frequency,
		height:    scaled,
		color:     dimRamp,
		center:    true,
		rotate:    turns(0.15),
		lineWidth: func(f *frame, s *sample) float64 { return s.h / 20 },
		draw:      strokeLines(seg),
	}
}

// disc is a filled arc on a volume-stretched waveform layout.
func disc(name string, arc arcFunc) *variant {
	return &variant{
		name: name, family: Circle, domain: Waveform,
		window:    fixedWindow,
		barWidth:  perWindow,
		height:    scaled100,
		color:     rainbow(hueIndexPlusWidth),
		center:    true,
		stretch:   true,
		lineWidth: lineWidthBar,
		draw:      fillArcs(false, arc),
	}
}

func circleCatalog() []Renderer {
	return []Renderer{
		&variant{
			name: "circleVisualizer1", family: Circle, domain: Frequency,
			height: scaled,
			color: hsl(func(f *frame, s *sample) (float64, float64, float64) {
				return s.i * 0.693, s.h * 1.112, s.i * 0.3
			}),
			center: true,
			rotate: func(f *frame, s *sample) float64 { return s.i + 2*math.Pi/f.n },
			draw: fillRect(func(f *frame, s *sample) (float64, float64, float64, float64) {
				return 0, 0, f.bw, s.h
			}),
		},
		petal("circleVisualizer2", petalColor(1.5, 3), func(f *frame, s *sample) (float64, float64, float64, float64, float64) {
			return 0, s.h / 2, s.h / 2, 0, math.Pi / 4
		}),
		petal("circleVisualizer3", petalColor(1.5, 3), func(f *frame, s *sample) (float64, float64, float64, float64, float64) {
			return 0, s.i / 1.115, s.h / 3.112, 0, math.Pi / 2.776
		}),
		petal("circleVisualizer4", petalColor(4.5, 1.112), func(f *frame, s *sample) (float64, float64, float64, float64, float64) {
			return 0, s.h / 1.115, s.i / 3.112, 0, math.Pi / 3.776
		}),
		petal("circleVisualizer5", petalColor(4.5, 1.112), func(f *frame, s *sample) (float64, float64, float64, float64, float64) {
			return 0, s.h / 1.115, s.i / 0.789, 0, math.Pi / 3.776
		}),
		petal("circleVisualizer6", petalColor(4.5, 1.112), func(f *frame, s *sample) (float64, float64, float64, float64, float64) {
			return 0, s.h / 1.115, s.i * 0.6, 0, math.Pi / 5.776
		}),
		&variant{
			name: "circleVisualizer7", family: Circle, domain: Frequency,
			barWidth: perBin(3),
			height:   scaled,
			color:    dimRamp,
			center:   true,
			rotate:   turns(4),
			draw: fillRect(func(f *frame, s *sample) (float64, float64, float64, float64) {
				return 0, 0, f.bw, s.h
			}),
		},
		&variant{
			name: "circleVisualizer8", family: Circle, domain: Frequency,
			barWidth: perBin(3),
			height:   scaled,
			color: hsl(func(f *frame, s *sample) (float64, float64, float64) {
				return s.i + 1.5, 100, s.h
			}),
			center: true,
			rotate: turns(1),
			draw: fillRect(func(f *frame, s *sample) (float64, float64, float64, float64) {
				return 0, s.i, f.bw, s.h
			}),
		},
		&variant{
			name: "circleVisualizer9", family: Circle, domain: Frequency,
			barWidth: perBin(3),
			height:   scaled,
			color: hsl(func(f *frame, s *sample) (float64, float64, float64) {
				return s.i + 3.36, s.i, s.h
			}),
			center: true,
			rotate: func(f *frame, s *sample) float64 { return s.i * f.n * math.Sin(s.i) },
			draw: fillRect(func(f *frame, s *sample) (float64, float64, float64, float64) {
				return 0, s.i, f.x, s.h * 0.789
			}),
		},
		&variant{
			name: "circleVisualizer10", family: Circle, domain: Frequency,
			barWidth: perBin(3),
			height:   scaled,
			color: hsl(func(f *frame, s *sample) (float64, float64, float64) {
				return s.i + 3.36, s.i * 2.65, s.h * 0.623
			}),
			center: true,
			rotate: func(f *frame, s *sample) float64 { return s.i * f.n * math.Sin(s.i) * math.Cos(f.x) },
			draw: fillRect(func(f *frame, s *sample) (float64, float64, float64, float64) {
				return 0, f.x, f.bw, s.h * math.Sin(s.i)
			}),
		},
		bead("circleVisualizer11", turns(4), func(f *frame, s *sample) (float64, float64, float64, float64, float64) {
			return 0, s.h, s.h * 0.1, 0, math.Pi * 4
		}),
		bead("circleVisualizer12", turns(4), func(f *frame, s *sample) (float64, float64, float64, float64, float64) {
			return f.x, s.i, s.h * 0.2115, 0, math.Pi * 1.112
		}),
		bead("circleVisualizer13", turns(2), func(f *frame, s *sample) (float64, float64, float64, float64, float64) {
			return f.x, s.i, s.h * 0.156, 0, math.Pi * 2.112
		}),
		bead("circleVisualizer14", turns(3.123),
			func(f *frame, s *sample) (float64, float64, float64, float64, float64) {
				return f.x, s.i * 1.115, s.h * 0.115, s.i * 0.015, math.Pi * 3.112
			},
			func(f *frame, s *sample) (float64, float64, float64, float64, float64) {
				return f.x * 1.675, s.i * 1.715, s.h * 0.215, s.i * 0.112, math.Pi * 3.112
			},
		),
		bead("circleVisualizer15", func(f *frame, s *sample) float64 { return s.i * f.n * math.Sin(s.i) * 2 },
			func(f *frame, s *sample) (float64, float64, float64, float64, float64) {
				return f.x, s.i, s.h * 0.156, 0, math.Pi * 2.112
			},
		),
		spoke("circleVisualizer16", func(f *frame, s *sample) (float64, float64, float64, float64) {
			return 0, s.h * 0.127 * math.Sin(s.i*25), s.h * 0.5, s.h
		}),
		spoke("circleVisualizer17", func(f *frame, s *sample) (float64, float64, float64, float64) {
			return 0, s.h * 0.127 * math.Sin(s.i*25), s.i * math.Sin(s.i*25), s.i * 0.015
		}),
		spoke("circleVisualizer18", func(f *frame, s *sample) (float64, float64, float64, float64) {
			return 0, s.h * 0.627 * math.Sin(s.i*1.112), s.i * math.Sin(s.i*36), s.i * math.Cos(s.i*5.112)
		}),
		&variant{
			name: "circleVisualizer19", family: Circle, domain: Waveform,
			window: fixedWindow,
			raw:    true,
			height: scaled,
			color: hsl(func(f *frame, s *sample) (float64, float64, float64) {
				return s.i * 0.45, s.h * 1.15, s.h * 0.42
			}),
			center:    true,
			rotate:    turnBy(1),
			lineWidth: lineWidthBar,
			draw: strokeLines(func(f *frame, s *sample) (float64, float64, float64, float64) {
				return 100, 100, 0, s.h
			}),
		},
		&variant{
			name: "circleVisualizer20", family: Circle, domain: Waveform,
			window:    fixedWindow,
			barWidth:  perWindow,
			height:    scaled,
			color:     rainbow(hueIndexTimesWidth),
			center:    true,
			rotate:    turnBy(1),
			lineWidth: lineWidthBar,
			draw: strokeLines(func(f *frame, s *sample) (float64, float64, float64, float64) {
				return 0, 0, 10, s.i * s.h
			}),
		},
		disc("circleVisualizer21", func(f *frame, s *sample) (float64, float64, float64, float64, float64) {
			return s.h, f.bw, s.i, f.x, math.Pi * 2
		}),
		disc("circleVisualizer22", func(f *frame, s *sample) (float64, float64, float64, float64, float64) {
			return 0, 0, math.Abs(s.h), math.Pi, math.Pi * 2
		}),
		disc("circleVisualizer23", func(f *frame, s *sample) (float64, float64, float64, float64, float64) {
			return 0, 0, math.Abs(s.h), 0, math.Pi * 2
		}),
	}
}
