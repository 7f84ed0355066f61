package visualizer

// rotationHold is the level above which the rotation styles refresh their
// held level.
const rotationHold = 30

func spin(name string, barWidth func(f *frame) float64, hue, lineWidth, rotate scalarFunc, seg segFunc, advance func(f *frame, s *sample)) *variant {
	return &variant{
		name: name, family: Rotation, domain: Waveform,
		window:    fixedWindow,
		holdAt:    rotationHold,
		barWidth:  barWidth,
		height:    scaled100,
		color:     rainbow(hue),
		center:    true,
		rotate:    rotate,
		lineWidth: lineWidth,
		draw:      strokeLines(seg),
		advance:   advance,
	}
}

// shrinking advances the cursor by the bar width less i*k.
func shrinking(k float64) func(f *frame, s *sample) {
	return func(f *frame, s *sample) { f.x += f.bw - s.i*k }
}

func widening(f *frame, s *sample) float64 { return f.bw + s.i*0.321 }

func heldTurn(f *frame, s *sample) float64 { return f.x + f.hold*0.09 }

func rotationCatalog() []Renderer {
	return []Renderer{
		spin("rotationVisualizer1", perBin(1), hueIndexTimesWidth,
			func(f *frame, s *sample) float64 { return f.bw * 1.23 },
			turnBy(3.369),
			func(f *frame, s *sample) (float64, float64, float64, float64) { return f.x, f.hold, f.x, s.h },
			nil),
		spin("rotationVisualizer2", perBin(1), hueIndexPlusWidth, widening, turnBy(3.369),
			func(f *frame, s *sample) (float64, float64, float64, float64) { return f.x, f.hold, f.x, s.h },
			shrinking(0.015)),
		spin("rotationVisualizer3", perBin(1), hueIndexPlusWidth, widening, turnBy(1.369),
			func(f *frame, s *sample) (float64, float64, float64, float64) { return f.x, f.hold, s.h, s.i },
			shrinking(0.015)),
		spin("rotationVisualizer4", perBin(1), hueIndexPlusWidth, widening, heldTurn,
			func(f *frame, s *sample) (float64, float64, float64, float64) { return f.x, f.hold, f.x, s.h },
			shrinking(0.0215)),
		spin("rotationVisualizer5", perBin(1), hueIndexPlusWidth, lineWidthBar, heldTurn,
			func(f *frame, s *sample) (float64, float64, float64, float64) { return f.x, s.i * 1.5, f.bw, s.h },
			nil),
		spin("rotationVisualizer6", perWindow, hueIndexPlusWidth, lineWidthBar,
			func(f *frame, s *sample) float64 { return s.i*1.15 + f.hold*0.09 },
			func(f *frame, s *sample) (float64, float64, float64, float64) {
				return s.i * 5, f.x * 2.312, f.x, f.hold * 0.912
			},
			nil),
		spin("rotationVisualizer7", perWindow, hueIndexPlusWidth, lineWidthBar, heldTurn,
			func(f *frame, s *sample) (float64, float64, float64, float64) {
				return s.i * 5, f.x * 2.312, f.x, s.i + f.hold*3.115
			},
			nil),
	}
}
