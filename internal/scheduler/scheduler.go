// Package scheduler runs the per-frame draw loop: one outstanding frame
// callback, a fresh configuration snapshot each frame, and an orderly stop.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/olivier-w/canvis/internal/analyser"
	"github.com/olivier-w/canvis/internal/config"
	"github.com/olivier-w/canvis/internal/logx"
	"github.com/olivier-w/canvis/internal/player"
	"github.com/olivier-w/canvis/internal/surface"
	"github.com/olivier-w/canvis/internal/visualizer"
)

// ErrNoAudio is returned by Start when there is nothing to analyse.
var ErrNoAudio = errors.New("no audio to visualize")

// State is the scheduler lifecycle state.
type State int

const (
	Idle State = iota
	Running
	Stopping
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	default:
		return "idle"
	}
}

// Media is the playing audio the scheduler visualizes.
type Media interface {
	Analyser(fftSize int) (*analyser.Analyser, error)
	Pause()
}

// Scheduler owns the draw loop for one surface.
type Scheduler struct {
	reg   *visualizer.Registry
	store *config.Store
	sf    surface.Context
	host  Host

	mu      sync.Mutex
	state   State
	name    string
	media   Media
	an      *analyser.Analyser
	buf     []byte
	token   uint64
	pending Handle
	armed   bool
	last    visualizer.Renderer
	rstate  visualizer.State
	frames  int
	onFrame func(surface.Context)
}

func New(reg *visualizer.Registry, store *config.Store, sf surface.Context, host Host) *Scheduler {
	return &Scheduler{
		reg:   reg,
		store: store,
		sf:    sf,
		host:  host,
		name:  store.Visualizer(),
	}
}

// OnFrame registers fn to be called with the surface after every draw. fn
// runs with the scheduler locked and must not call back into it.
func (s *Scheduler) OnFrame(fn func(surface.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onFrame = fn
}

// Start begins drawing the named visualizer from m. Starting while running
// only switches the visualizer. A nil m, including a nil pointer wrapped in
// the interface, returns ErrNoAudio.
func (s *Scheduler) Start(name string, m Media) error {
	if isNil(m) {
		return ErrNoAudio
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.name = name
	if s.state == Running {
		return nil
	}

	fftSize := s.store.Snapshot().FFTSize
	if s.media != m || s.an == nil || s.an.FFTSize() != fftSize {
		an, err := m.Analyser(fftSize)
		if err != nil {
			return fmt.Errorf("acquiring analyser: %w", err)
		}
		s.media, s.an = m, an
		s.buf = make([]byte, an.Len())
	}

	s.token++
	s.state = Running
	s.last = nil
	s.rstate = visualizer.State{}
	s.arm(s.token)
	logx.Debug("Visualizer started: %s (fft %d)", name, fftSize)
	return nil
}

func isNil(m Media) bool {
	if m == nil {
		return true
	}
	v := reflect.ValueOf(m)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

func (s *Scheduler) arm(token uint64) {
	s.pending = s.host.RequestFrame(func() { s.frame(token) })
	s.armed = true
}

func (s *Scheduler) frame(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.token || s.state != Running {
		return
	}
	s.armed = false

	cfg := s.store.Snapshot()
	s.sf.Resize(cfg.Width, cfg.Height)

	r, err := s.reg.Resolve(s.name)
	if err != nil {
		logx.Warn("Stopping visualizer: %v", err)
		s.stopLocked()
		return
	}
	if r != s.last {
		s.last = r
		s.rstate = visualizer.State{}
	}

	if r.Domain() == visualizer.Waveform {
		s.an.WaveformSnapshot(s.buf)
	} else {
		s.an.FrequencySnapshot(s.buf)
	}
	s.rstate = r.Render(visualizer.Input{Samples: s.buf, Config: cfg, Surface: s.sf}, s.rstate)
	s.frames++

	if s.onFrame != nil {
		s.onFrame(s.sf)
	}
	s.arm(token)
}

// Stop pauses the media, clears the surface and cancels the pending frame.
// No draw happens after it returns. Stopping an idle scheduler does nothing.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Scheduler) stopLocked() {
	if s.state != Running {
		return
	}
	s.state = Stopping
	s.token++
	if s.armed {
		s.host.CancelFrame(s.pending)
		s.armed = false
	}
	if s.media != nil {
		s.media.Pause()
	}
	s.sf.Clear()
	s.sf.SetBackdrop(nil)
	s.state = Idle
	logx.Debug("Visualizer stopped after %d frames", s.frames)
}

// Select switches the visualizer. A running scheduler draws it from the next
// frame on.
func (s *Scheduler) Select(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *Scheduler) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Frames counts draws since the scheduler was created.
func (s *Scheduler) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Bind starts and stops the scheduler from player lifecycle events until ctx
// is done or events is closed.
func (s *Scheduler) Bind(ctx context.Context, events <-chan player.Event, m Media) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev.Kind {
			case player.Started:
				if err := s.Start(s.Name(), m); err != nil {
					logx.Error("Starting visualizer: %v", err)
				}
			case player.Paused, player.Ended:
				s.Stop()
			}
		}
	}
}
