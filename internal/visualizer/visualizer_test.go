package visualizer

import (
	"errors"
	"image/color"
	"reflect"
	"testing"

	"github.com/olivier-w/canvis/internal/config"
	"github.com/olivier-w/canvis/internal/surface"
)

var black = color.RGBA{A: 255}

func testConfig() config.Render {
	return config.Render{
		ScalePercent: 100,
		ColorMode:    config.Dynamic,
		StaticColor:  color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff},
		Background:   black,
		Width:        800,
		Height:       400,
		FFTSize:      2048,
		FPS:          30,
	}
}

func ramp(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte((i*37 + 11) % 256)
	}
	return out
}

func render(r Renderer, cfg config.Render, samples []byte, st State) (*surface.Recorder, State) {
	rec := surface.NewRecorder(cfg.Width, cfg.Height)
	next := r.Render(Input{Samples: samples, Config: cfg, Surface: rec}, st)
	return rec, next
}

func TestCatalogFamilySizes(t *testing.T) {
	reg := Default()
	if reg.Len() != 63 {
		t.Fatalf("expected 63 renderers, got %d", reg.Len())
	}
	want := map[Family]int{Bar: 3, Wave: 16, Circle: 23, Rotation: 7, Spiral: 14}
	for fam, n := range want {
		if got := len(reg.ByFamily(fam)); got != n {
			t.Fatalf("expected %d %s renderers, got %d", n, fam, got)
		}
	}
}

func TestResolveKnownAndUnknownNames(t *testing.T) {
	reg := Default()
	for _, name := range reg.Names() {
		r, err := reg.Resolve(name)
		if err != nil {
			t.Fatalf("expected %q to resolve, got %v", name, err)
		}
		if r.Name() != name {
			t.Fatalf("expected renderer named %q, got %q", name, r.Name())
		}
	}
	for _, name := range []string{"", "BarVisualizer", "noSuchVisualizer"} {
		if _, err := reg.Resolve(name); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound for %q, got %v", name, err)
		}
	}
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	a := &trace{name: "same"}
	b := &trace{name: "same"}
	if _, err := NewRegistry(a, b); err == nil {
		t.Fatal("expected duplicate name error")
	}
}

func TestNextWrapsAroundCatalog(t *testing.T) {
	reg := Default()
	names := reg.Names()
	first, last := names[0], names[len(names)-1]

	if got := reg.Next(last, 1); got != first {
		t.Fatalf("expected %q after last, got %q", first, got)
	}
	if got := reg.Next(first, -1); got != last {
		t.Fatalf("expected %q before first, got %q", last, got)
	}
	if got := reg.Next("unknown", 1); got != first {
		t.Fatalf("expected unknown name to start at %q, got %q", first, got)
	}
}

func TestSilentSnapshotDrawsBackgroundOnly(t *testing.T) {
	cfg := testConfig()
	for _, r := range Catalog() {
		samples := make([]byte, 1024)
		SilentFill(samples, r.Domain())

		rec, _ := render(r, cfg, samples, State{})
		ops := rec.Ops()
		if len(ops) != 3 {
			t.Fatalf("%s: expected 3 background ops, got %d", r.Name(), len(ops))
		}
		if ops[0].Kind != surface.OpClear || ops[1].Kind != surface.OpBackdrop || ops[2].Kind != surface.OpFillRect {
			t.Fatalf("%s: expected clear, backdrop, fill, got %v", r.Name(), ops)
		}
		if ops[2].Color != black || ops[2].Rect != [4]float64{0, 0, 800, 400} {
			t.Fatalf("%s: expected full black background, got %+v", r.Name(), ops[2])
		}
	}
}

func TestEmptySnapshotDrawsBackgroundOnly(t *testing.T) {
	cfg := testConfig()
	for _, r := range Catalog() {
		rec, st := render(r, cfg, nil, State{Hold: 3})
		if len(rec.Ops()) != 3 {
			t.Fatalf("%s: expected background only, got %d ops", r.Name(), len(rec.Ops()))
		}
		if st.Hold != 3 {
			t.Fatalf("%s: expected state untouched, got %v", r.Name(), st.Hold)
		}
	}
}

func TestTransparentBackgroundSetsBackdrop(t *testing.T) {
	cfg := testConfig()
	cfg.TransparentBackground = true
	r, _ := Default().Resolve("barVisualizer")

	rec, _ := render(r, cfg, make([]byte, 16), State{})
	ops := rec.Ops()
	if len(ops) != 2 || ops[1].Kind != surface.OpBackdrop {
		t.Fatalf("expected clear and backdrop only, got %v", ops)
	}
	if rec.Backdrop != cfg.Background {
		t.Fatalf("expected backdrop %v, got %v", cfg.Background, rec.Backdrop)
	}
}

func TestStatelessRenderersAreDeterministic(t *testing.T) {
	cfg := testConfig()
	samples := ramp(1024)
	for _, r := range Catalog() {
		if r.Stateful() {
			continue
		}
		a, _ := render(r, cfg, samples, State{})
		b, _ := render(r, cfg, samples, State{})
		if !reflect.DeepEqual(a.Ops(), b.Ops()) {
			t.Fatalf("%s: expected identical ops for identical input", r.Name())
		}
		if len(a.Ops()) <= 3 {
			t.Fatalf("%s: expected shapes on a non-silent snapshot", r.Name())
		}
		if a.Depth() != 0 {
			t.Fatalf("%s: expected balanced save/restore, got depth %d", r.Name(), a.Depth())
		}
	}
}

func TestHoldSetAboveThresholdThenDecays(t *testing.T) {
	r, _ := Default().Resolve("waveVisualizer12")
	if !r.Stateful() {
		t.Fatal("expected waveVisualizer12 to be stateful")
	}
	samples := make([]byte, 256)
	SilentFill(samples, Waveform)
	samples[0] = 255

	want := (255.0/128 - 1) * 100
	for i := 1; i < 256; i++ {
		want -= want * holdDecay
	}
	_, st := render(r, testConfig(), samples, State{})
	if st.Hold != want {
		t.Fatalf("expected hold %v, got %v", want, st.Hold)
	}
}

func TestHoldCarriesAcrossFrames(t *testing.T) {
	r, _ := Default().Resolve("rotationVisualizer1")
	samples := make([]byte, 512)
	SilentFill(samples, Waveform)

	want := 50.0
	for i := 0; i < fixedWindow; i++ {
		want -= want * holdDecay
	}
	_, st := render(r, testConfig(), samples, State{Hold: 50})
	if st.Hold != want {
		t.Fatalf("expected decayed hold %v, got %v", want, st.Hold)
	}
}

func TestStatelessRendererReturnsStateUnchanged(t *testing.T) {
	r, _ := Default().Resolve("circleVisualizer7")
	_, st := render(r, testConfig(), ramp(64), State{Hold: 7})
	if st.Hold != 7 {
		t.Fatalf("expected state passed through, got %v", st.Hold)
	}
}

func TestStaticColorChangesEveryRenderer(t *testing.T) {
	samples := ramp(1024)
	for _, r := range Catalog() {
		cfg := testConfig()
		dyn, _ := render(r, cfg, samples, State{Hold: 40})
		cfg.ColorMode = config.Static
		stat, _ := render(r, cfg, samples, State{Hold: 40})

		if len(dyn.Ops()) != len(stat.Ops()) {
			t.Fatalf("%s: expected same op count, got %d and %d", r.Name(), len(dyn.Ops()), len(stat.Ops()))
		}
		differs, static := false, false
		for i, op := range stat.Ops()[3:] {
			if op.Color == cfg.StaticColor {
				static = true
			}
			if dyn.Ops()[i+3].Color != op.Color {
				differs = true
			}
		}
		if !static || !differs {
			t.Fatalf("%s: expected the static colour to replace a dynamic one", r.Name())
		}
	}
}

func TestBarPaintsOnlyStaticColor(t *testing.T) {
	r, _ := Default().Resolve("barVisualizer")
	cfg := testConfig()
	cfg.ColorMode = config.Static
	rec, _ := render(r, cfg, ramp(32), State{})
	for i, op := range rec.Ops()[3:] {
		if op.Color != cfg.StaticColor {
			t.Fatalf("expected static colour on op %d, got %v", i, op.Color)
		}
	}
}

func TestBarFamilyNeverShrinksWithScale(t *testing.T) {
	reg := Default()
	samples := make([]byte, 64)
	for i := range samples {
		samples[i] = 100
	}
	ops := func(r Renderer, scale float64) []surface.Op {
		cfg := testConfig()
		cfg.ScalePercent = scale
		rec, _ := render(r, cfg, samples, State{})
		return rec.Ops()[3:]
	}
	for _, name := range reg.ByFamily(Bar) {
		r, _ := reg.Resolve(name)
		small, large := ops(r, 50), ops(r, 200)
		if len(small) != len(large) || len(small) == 0 {
			t.Fatalf("%s: expected matching non-empty op lists, got %d and %d", name, len(small), len(large))
		}
		grew := false
		for i := range small {
			if large[i].Extent < small[i].Extent {
				t.Fatalf("%s: op %d shrank from %v to %v", name, i, small[i].Extent, large[i].Extent)
			}
			if large[i].Extent > small[i].Extent {
				grew = true
			}
		}
		if !grew {
			t.Fatalf("%s: expected some bar to grow with scale", name)
		}
	}
}

func TestZeroLevelSamplesStillPaint(t *testing.T) {
	samples := make([]byte, 512)
	for i := range samples {
		samples[i] = 128
		if i%2 == 1 {
			samples[i] = 200
		}
	}
	for _, name := range []string{"circleVisualizer19", "waveVisualizer12", "waveVisualizer13", "rotationVisualizer1"} {
		r, err := Default().Resolve(name)
		if err != nil {
			t.Fatalf("expected %s to resolve, got %v", name, err)
		}
		rec, _ := render(r, testConfig(), samples, State{Hold: 40})
		if shapes := len(rec.Ops()) - 3; shapes != fixedWindow {
			t.Fatalf("%s: expected %d shape ops, got %d", name, fixedWindow, shapes)
		}
	}
}

func TestRenderersTolerateDegenerateInput(t *testing.T) {
	cfg := testConfig()
	cfg.Width, cfg.Height = 1, 1
	cfg.ScalePercent = 1000
	loud := make([]byte, 3)
	for i := range loud {
		loud[i] = 255
	}
	for _, r := range Catalog() {
		render(r, cfg, loud, State{Hold: 1e9})
		render(r, cfg, []byte{0}, State{})
	}
}

func TestTraceStrokesOnePolyline(t *testing.T) {
	r, _ := Default().Resolve("waveVisualizer9")
	rec, _ := render(r, testConfig(), ramp(128), State{})
	ops := rec.Ops()
	if len(ops) != 4 {
		t.Fatalf("expected background plus one stroke, got %d ops", len(ops))
	}
	if ops[3].Kind != surface.OpStroke || ops[3].LineWidth != 2 {
		t.Fatalf("expected 2px stroke, got %+v", ops[3])
	}
}

func TestBarVisualizerRastersOnCanvas(t *testing.T) {
	r, _ := Default().Resolve("barVisualizer")
	cfg := testConfig()
	cfg.Width, cfg.Height = 8, 4
	c := surface.NewCanvas(8, 4)

	r.Render(Input{Samples: []byte{255, 255, 255, 255}, Config: cfg, Surface: c}, State{})

	want := color.RGBA{B: 128, A: 255}
	if got := c.Image().RGBAAt(1, 2); got != want {
		t.Fatalf("expected first bar colour %v, got %v", want, got)
	}
}

func TestColorHelpersFollowCSS(t *testing.T) {
	tests := []struct {
		name string
		got  color.RGBA
		want color.RGBA
	}{
		{"red", hslColor(0, 100, 50), color.RGBA{R: 255, A: 255}},
		{"green", hslColor(120, 100, 50), color.RGBA{G: 255, A: 255}},
		{"negative hue wraps", hslColor(-120, 100, 50), color.RGBA{B: 255, A: 255}},
		{"white", hslColor(42, 0, 100), color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{"clamped lightness", hslColor(0, 100, 500), color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{"rgb clamps", rgbColor(300, -5, 127.6), color.RGBA{R: 255, B: 128, A: 255}},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Fatalf("%s: expected %v, got %v", tt.name, tt.want, tt.got)
		}
	}
}

func TestSilentHelpers(t *testing.T) {
	if !Silent(128, Waveform) || Silent(0, Waveform) {
		t.Fatal("expected 128 to be the silent waveform byte")
	}
	if !Silent(0, Frequency) || Silent(128, Frequency) {
		t.Fatal("expected 0 to be the silent frequency byte")
	}
	if RMS([]byte{128, 128}) != 0 {
		t.Fatal("expected zero RMS for silence")
	}
}
