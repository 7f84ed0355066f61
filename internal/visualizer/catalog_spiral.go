package visualizer

import "math"

// coil is a stroked line on the fixed 256-sample waveform window.
func coil(name string, rotate scalarFunc, stretch bool) *variant {
	return &variant{
		name: name, family: Spiral, domain: Waveform,
		window:    fixedWindow,
		barWidth:  perWindow,
		height:    scaled100,
		color:     rainbow(hueIndexPlusWidth),
		center:    true,
		rotate:    rotate,
		stretch:   stretch,
		lineWidth: lineWidthBar,
		draw: strokeLines(func(f *frame, s *sample) (float64, float64, float64, float64) {
			return s.i + f.bw, 0, s.i + f.bw, s.h + f.bw
		}),
	}
}

// pin is a radial bar with a disc on its tip, wound twice around the centre.
func pin(name string, hue scalarFunc, staticBar bool) *variant {
	return &variant{
		name: name, family: Spiral, domain: Frequency,
		barWidth: perBin(5),
		height:   scaled,
		color:    rainbow(hue),
		center:   true,
		rotate:   func(f *frame, s *sample) float64 { return s.i * math.Pi * 4 / f.n },
		draw:     rectAndDot(staticBar),
	}
}

func levelTimesIndex(f *frame, s *sample) float64 { return s.h * s.i }
func levelHue(f *frame, s *sample) float64        { return s.h }

// curl strokes a quadratic curve per bin, rotated by i*turn.
func curl(name string, height scalarFunc, hueStep, turn float64, q quadFunc) *variant {
	return &variant{
		name: name, family: Spiral, domain: Frequency,
		height: height,
		color: hsl(func(f *frame, s *sample) (float64, float64, float64) {
			return s.i * hueStep, s.h * 2.15, s.h * 1.12
		}),
		center:    true,
		rotate:    turnBy(turn),
		lineWidth: lineWidthBar,
		draw:      strokeQuad(q),
	}
}

func wobble(f *frame, s *sample) float64 { return s.v * math.Sin(s.i*10) * f.scale }

func spiralCatalog() []Renderer {
	return []Renderer{
		coil("spiralVisualizer1", turnBy(0.03), false),
		coil("spiralVisualizer2", func(f *frame, s *sample) float64 { return (s.i + f.vol*100) * 0.04 }, false),
		&variant{
			name: "spiralVisualizer3", family: Spiral, domain: Waveform,
			window:    fixedWindow,
			barWidth:  perWindow,
			height:    scaled100,
			color:     rainbow(hueIndexPlusWidth),
			center:    true,
			rotate:    func(f *frame, s *sample) float64 { return (s.i + f.vol*10) * 0.04 },
			lineWidth: lineWidthBar,
			draw: fillRect(func(f *frame, s *sample) (float64, float64, float64, float64) {
				return s.i + f.bw, 0, 1, s.h * f.vol * 10
			}),
		},
		coil("spiralVisualizer4", func(f *frame, s *sample) float64 { return (s.i*1.15 + s.h*0.09) * 0.0565 }, true),
		pin("spiralVisualizer5", levelTimesIndex, false),
		pin("spiralVisualizer6", levelHue, true),
		pin("spiralVisualizer7", levelTimesIndex, true),
		curl("spiralVisualizer8", wobble, 1.5, 1, func(f *frame, s *sample) (float64, float64, float64, float64, float64, float64) {
			return f.x, 0, f.x * 1.56, f.h / 2, f.x, s.h
		}),
		curl("spiralVisualizer9", wobble, 1.5, 1, func(f *frame, s *sample) (float64, float64, float64, float64, float64, float64) {
			return f.x, 0, s.i, s.h, math.Sin(f.x) * 1.12, f.h / 2
		}),
		curl("spiralVisualizer10", wobble, 1.5, 1, func(f *frame, s *sample) (float64, float64, float64, float64, float64, float64) {
			return s.i, 0, f.bw, f.x, math.Sin(f.x) * 1.12, f.h / 2
		}),
		curl("spiralVisualizer11", scaled, 1.5, 0.112, func(f *frame, s *sample) (float64, float64, float64, float64, float64, float64) {
			return s.i, 0, 2, 3, s.h * 0.112, f.x
		}),
		curl("spiralVisualizer12", scaled, 1.5, 0.312, func(f *frame, s *sample) (float64, float64, float64, float64, float64, float64) {
			return s.i, 0, f.x * 0.01, s.i * 0.12, s.h * 0.112, f.x
		}),
		curl("spiralVisualizer13", scaled, 4.5, 0.012, func(f *frame, s *sample) (float64, float64, float64, float64, float64, float64) {
			return f.x, s.i, s.i * 0.512, s.i, s.h * 2.712, f.x * 0.5112
		}),
		&variant{
			name: "spiralVisualizer14", family: Spiral, domain: Waveform,
			window:    fixedWindow,
			barWidth:  perWindow,
			height:    scaled,
			color:     rainbow(hueIndexTimesWidth),
			center:    true,
			rotate:    turnBy(1),
			lineWidth: lineWidthBar,
			draw: strokeLines(func(f *frame, s *sample) (float64, float64, float64, float64) {
				return f.x, f.h, f.x * 0.651, s.i * s.h * 0.5
			}),
		},
	}
}
