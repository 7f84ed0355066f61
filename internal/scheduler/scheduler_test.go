package scheduler

import (
	"context"
	"errors"
	"image/color"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/olivier-w/canvis/internal/analyser"
	"github.com/olivier-w/canvis/internal/config"
	"github.com/olivier-w/canvis/internal/player"
	"github.com/olivier-w/canvis/internal/surface"
	"github.com/olivier-w/canvis/internal/visualizer"
)

type stubMedia struct {
	tap      *analyser.Tap
	acquired int
	paused   int
}

func newStubMedia() *stubMedia { return &stubMedia{tap: analyser.NewTap(4096)} }

func (m *stubMedia) Analyser(fftSize int) (*analyser.Analyser, error) {
	m.acquired++
	return analyser.New(m.tap, fftSize)
}

func (m *stubMedia) Pause() { m.paused++ }

type stubRenderer struct {
	name     string
	domain   visualizer.Domain
	calls    int
	lastLen  int
	lastByte byte
	holds    []float64
}

func (r *stubRenderer) Name() string              { return r.name }
func (r *stubRenderer) Family() visualizer.Family { return visualizer.Bar }
func (r *stubRenderer) Domain() visualizer.Domain { return r.domain }
func (r *stubRenderer) Stateful() bool            { return true }

func (r *stubRenderer) Render(in visualizer.Input, st visualizer.State) visualizer.State {
	r.calls++
	r.lastLen = len(in.Samples)
	if len(in.Samples) > 0 {
		r.lastByte = in.Samples[0]
	}
	r.holds = append(r.holds, st.Hold)
	in.Surface.SetFillColor(color.RGBA{R: 255, A: 255})
	in.Surface.FillRect(0, 0, 1, 1)
	return visualizer.State{Hold: st.Hold + 1}
}

type fixture struct {
	sched *Scheduler
	host  *ManualHost
	rec   *surface.Recorder
	store *config.Store
	a, b  *stubRenderer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	a := &stubRenderer{name: "a", domain: visualizer.Frequency}
	b := &stubRenderer{name: "b", domain: visualizer.Waveform}
	reg, err := visualizer.NewRegistry(a, b)
	if err != nil {
		t.Fatalf("NewRegistry returned error: %v", err)
	}
	s := config.Default()
	s.Visualizer = "a"
	s.FFTSize = 256
	store, err := config.NewStore(s)
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}
	host := NewManualHost()
	rec := surface.NewRecorder(10, 10)
	return &fixture{
		sched: New(reg, store, rec, host),
		host:  host,
		rec:   rec,
		store: store,
		a:     a,
		b:     b,
	}
}

func TestStartWithoutMediaIsRejected(t *testing.T) {
	f := newFixture(t)
	if err := f.sched.Start("a", nil); !errors.Is(err, ErrNoAudio) {
		t.Fatalf("expected ErrNoAudio, got %v", err)
	}
	if f.sched.State() != Idle || f.host.Pending() != 0 {
		t.Fatalf("expected idle with nothing pending, got %v and %d", f.sched.State(), f.host.Pending())
	}
}

func TestStartRejectsNilPlayer(t *testing.T) {
	f := newFixture(t)
	var p *player.Player
	if err := f.sched.Start("a", p); !errors.Is(err, ErrNoAudio) {
		t.Fatalf("expected ErrNoAudio for a nil player, got %v", err)
	}
	if f.sched.State() != Idle || f.host.Pending() != 0 {
		t.Fatalf("expected idle with nothing pending, got %v and %d", f.sched.State(), f.host.Pending())
	}
}

func TestStartKeepsExactlyOneFramePending(t *testing.T) {
	f := newFixture(t)
	m := newStubMedia()
	if err := f.sched.Start("a", m); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if err := f.sched.Start("a", m); err != nil {
		t.Fatalf("second Start returned error: %v", err)
	}
	for i := 0; i < 3; i++ {
		if got := f.host.Pending(); got != 1 {
			t.Fatalf("expected one pending frame, got %d", got)
		}
		f.host.Step()
	}
	if f.a.calls != 3 {
		t.Fatalf("expected 3 draws, got %d", f.a.calls)
	}
	if f.sched.State() != Running {
		t.Fatalf("expected running, got %v", f.sched.State())
	}
}

func TestFrameUsesConfiguredSizeAndSnapshotLength(t *testing.T) {
	f := newFixture(t)
	f.sched.Start("a", newStubMedia())
	f.host.Step()

	if f.rec.Width() != 800 || f.rec.Height() != 400 {
		t.Fatalf("expected 800x400 surface, got %dx%d", f.rec.Width(), f.rec.Height())
	}
	if f.a.lastLen != 128 {
		t.Fatalf("expected 128 frequency bins, got %d", f.a.lastLen)
	}
	if f.a.lastByte != 0 {
		t.Fatalf("expected silent frequency byte 0, got %d", f.a.lastByte)
	}
}

func TestWaveformRendererGetsWaveformSnapshot(t *testing.T) {
	f := newFixture(t)
	f.sched.Start("b", newStubMedia())
	f.host.Step()

	if f.b.calls != 1 || f.b.lastByte != 128 {
		t.Fatalf("expected one draw with silent waveform byte 128, got %d calls and %d", f.b.calls, f.b.lastByte)
	}
}

func TestStopClearsSurfaceAndCancelsFrame(t *testing.T) {
	f := newFixture(t)
	m := newStubMedia()
	f.sched.Start("a", m)
	f.host.Step()
	f.sched.Stop()

	if f.sched.State() != Idle {
		t.Fatalf("expected idle after stop, got %v", f.sched.State())
	}
	if f.host.Pending() != 0 {
		t.Fatalf("expected no pending frame, got %d", f.host.Pending())
	}
	if m.paused != 1 {
		t.Fatalf("expected media paused once, got %d", m.paused)
	}
	ops := f.rec.Ops()
	if len(ops) < 2 || ops[len(ops)-2].Kind != surface.OpClear {
		t.Fatalf("expected surface cleared on stop, got %v", ops)
	}

	f.host.Step()
	if f.a.calls != 1 {
		t.Fatalf("expected no draw after stop, got %d draws", f.a.calls)
	}

	f.sched.Stop()
	if m.paused != 1 {
		t.Fatalf("expected second stop to be a no-op, got %d pauses", m.paused)
	}
}

func TestStaleCallbackDoesNotDraw(t *testing.T) {
	f := newFixture(t)
	m := newStubMedia()
	f.sched.Start("a", m)
	f.sched.Stop()
	f.sched.Start("a", m)

	if got := f.host.Step(); got != 1 {
		t.Fatalf("expected only the live callback to run, got %d", got)
	}
	if f.a.calls != 1 {
		t.Fatalf("expected one draw, got %d", f.a.calls)
	}
}

func TestUnknownVisualizerStopsCleanly(t *testing.T) {
	f := newFixture(t)
	m := newStubMedia()
	f.sched.Start("missing", m)
	f.host.Step()

	if f.sched.State() != Idle {
		t.Fatalf("expected idle after unknown visualizer, got %v", f.sched.State())
	}
	if f.host.Pending() != 0 {
		t.Fatalf("expected no pending frame, got %d", f.host.Pending())
	}
	if f.sched.Frames() != 0 {
		t.Fatalf("expected no frames drawn, got %d", f.sched.Frames())
	}
}

func TestSelectSwitchesOnNextFrame(t *testing.T) {
	f := newFixture(t)
	f.sched.Start("a", newStubMedia())
	f.host.Step()
	f.sched.Select("b")
	if f.b.calls != 0 {
		t.Fatal("expected no draw before the next frame")
	}
	f.host.Step()

	if f.a.calls != 1 || f.b.calls != 1 {
		t.Fatalf("expected one draw each, got a=%d b=%d", f.a.calls, f.b.calls)
	}
	if f.b.holds[0] != 0 {
		t.Fatalf("expected fresh state for the new visualizer, got %v", f.b.holds[0])
	}
}

func TestRendererStateCarriesAcrossFrames(t *testing.T) {
	f := newFixture(t)
	f.sched.Start("a", newStubMedia())
	for i := 0; i < 3; i++ {
		f.host.Step()
	}
	want := []float64{0, 1, 2}
	for i, h := range want {
		if f.a.holds[i] != h {
			t.Fatalf("expected hold %v on frame %d, got %v", h, i, f.a.holds[i])
		}
	}
}

func TestAnalyserAcquiredOncePerSession(t *testing.T) {
	f := newFixture(t)
	m := newStubMedia()
	f.sched.Start("a", m)
	f.sched.Stop()
	f.sched.Start("a", m)
	if m.acquired != 1 {
		t.Fatalf("expected one acquisition, got %d", m.acquired)
	}

	f.sched.Stop()
	if err := f.store.Update(func(s *config.Settings) { s.FFTSize = 512 }); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	f.sched.Start("a", m)
	f.host.Step()
	if m.acquired != 2 {
		t.Fatalf("expected a new analyser after the size change, got %d acquisitions", m.acquired)
	}
	if f.a.lastLen != 256 {
		t.Fatalf("expected 256 bins, got %d", f.a.lastLen)
	}
}

func TestBindMapsPlayerEvents(t *testing.T) {
	f := newFixture(t)
	m := newStubMedia()
	events := make(chan player.Event)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		f.sched.Bind(ctx, events, m)
		close(done)
	}()

	events <- player.Event{Kind: player.Started}
	events <- player.Event{Kind: player.Paused}
	events <- player.Event{Kind: player.Started}
	events <- player.Event{Kind: player.Ended}
	cancel()
	<-done

	if m.paused != 2 {
		t.Fatalf("expected two stops, got %d pauses", m.paused)
	}
	if f.sched.State() != Idle {
		t.Fatalf("expected idle after end, got %v", f.sched.State())
	}
}

func TestTimerHostCancel(t *testing.T) {
	h := NewTimerHost(func() int { return 1000 })
	fired := make(chan struct{}, 2)
	id := h.RequestFrame(func() { fired <- struct{}{} })
	h.CancelFrame(id)
	h.RequestFrame(func() { fired <- struct{}{} })

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("expected the live timer to fire")
	}
	select {
	case <-fired:
		t.Fatal("expected the cancelled timer not to fire")
	case <-time.After(50 * time.Millisecond):
	}
}

type offlineMedia struct {
	tap *analyser.Tap
}

func (m offlineMedia) Analyser(n int) (*analyser.Analyser, error) { return analyser.New(m.tap, n) }
func (m offlineMedia) Pause()                                      {}

func TestToneRendersOneDrawPerFrame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	if err := player.WriteTone(path, 440, 44100, 2*time.Second); err != nil {
		t.Fatalf("WriteTone returned error: %v", err)
	}
	src, err := player.OpenSource(path)
	if err != nil {
		t.Fatalf("OpenSource returned error: %v", err)
	}
	defer src.Close()

	store, err := config.NewStore(config.Default())
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}
	cfg := store.Snapshot()
	canvas := surface.NewCanvas(cfg.Width, cfg.Height)
	host := NewManualHost()
	sched := New(visualizer.Default(), store, canvas, host)
	draws := 0
	sched.OnFrame(func(surface.Context) { draws++ })

	tap := analyser.NewTap(32768)
	if err := sched.Start("barVisualizer", offlineMedia{tap: tap}); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	chunk := int64(src.BytesPerSecond() / cfg.FPS)
	for i := 0; i < 10; i++ {
		if _, err := io.CopyN(tap, src, chunk); err != nil {
			t.Fatalf("feeding tap: %v", err)
		}
		host.Step()
	}

	if draws != 10 {
		t.Fatalf("expected 10 draws, got %d", draws)
	}
	if canvas.Width() != cfg.Width || canvas.Height() != cfg.Height {
		t.Fatalf("expected %dx%d canvas, got %dx%d", cfg.Width, cfg.Height, canvas.Width(), canvas.Height())
	}
	if sched.State() != Running {
		t.Fatalf("expected running, got %v", sched.State())
	}

	img := canvas.Image()
	lit := false
	for x := 0; x < cfg.Width && !lit; x++ {
		lit = img.RGBAAt(x, cfg.Height-1) != color.RGBA{A: 255}
	}
	if !lit {
		t.Fatal("expected the tone to light up at least one bar")
	}

	sched.Stop()
	if sched.State() != Idle || host.Pending() != 0 {
		t.Fatalf("expected idle with nothing pending, got %v and %d", sched.State(), host.Pending())
	}
	if got := canvas.Image().RGBAAt(0, cfg.Height-1); got.A != 0 {
		t.Fatalf("expected cleared canvas after stop, got %v", got)
	}
}
