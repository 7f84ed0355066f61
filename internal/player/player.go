// Package player plays decoded audio files through oto and copies every byte
// handed to the device into an analyser tap.
package player

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/olivier-w/canvis/internal/analyser"
)

// tapFrames is how much recent audio the tap keeps, enough for the largest
// transform size.
const tapFrames = 32768

// EventKind is a playback lifecycle signal.
type EventKind int

const (
	Started EventKind = iota
	Paused
	Ended
)

func (k EventKind) String() string {
	switch k {
	case Started:
		return "started"
	case Paused:
		return "paused"
	default:
		return "ended"
	}
}

// Event is sent on the channel returned by Events.
type Event struct {
	Kind EventKind
	At   time.Duration
}

// countingReader tracks bytes read and copies them into the tap.
type countingReader struct {
	reader io.Reader
	tap    io.Writer
	pos    int64
	mu     sync.Mutex
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.reader.Read(p)
	if n > 0 && cr.tap != nil {
		cr.tap.Write(p[:n])
	}
	cr.mu.Lock()
	cr.pos += int64(n)
	cr.mu.Unlock()
	return n, err
}

func (cr *countingReader) Pos() int64 {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	return cr.pos
}

func (cr *countingReader) SetPos(pos int64) {
	cr.mu.Lock()
	cr.pos = pos
	cr.mu.Unlock()
}

// Player manages playback of one audio file.
type Player struct {
	src         *Source
	counter     *countingReader
	tap         *analyser.Tap
	otoCtx      *oto.Context
	otoPlayer   *oto.Player
	duration    time.Duration
	bytesPerSec int64
	volume      float64
	paused      bool
	done        chan struct{}
	events      chan Event
	stopMon     chan struct{}
	cleanup     func()
	mu          sync.Mutex
	closed      bool
}

var (
	globalOtoCtx *oto.Context
	otoRate      int
	otoOnce      sync.Once
	otoInitErr   error
)

// initOto opens the process-wide output context at the first file's rate.
func initOto(rate int) (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   rate,
			ChannelCount: channelCount,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		globalOtoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
			otoRate = rate
		}
	})
	if otoInitErr != nil {
		return nil, otoInitErr
	}
	if rate != otoRate {
		return nil, fmt.Errorf("sample rate %d Hz differs from the open output at %d Hz", rate, otoRate)
	}
	return globalOtoCtx, nil
}

// New opens path and starts playing it.
func New(path string) (*Player, error) {
	src, err := OpenSource(path)
	if err != nil {
		return nil, err
	}
	ctx, err := initOto(src.SampleRate())
	if err != nil {
		src.Close()
		return nil, err
	}

	tap := analyser.NewTap(tapFrames)
	p := &Player{
		src:         src,
		counter:     &countingReader{reader: src, tap: tap},
		tap:         tap,
		otoCtx:      ctx,
		duration:    src.Duration(),
		bytesPerSec: int64(src.BytesPerSecond()),
		volume:      0.8,
		done:        make(chan struct{}),
		events:      make(chan Event, 16),
		stopMon:     make(chan struct{}),
	}
	p.cleanup = func() { src.Close() }

	p.otoPlayer = ctx.NewPlayer(p.counter)
	p.otoPlayer.SetVolume(p.volume)
	p.otoPlayer.Play()
	p.emit(Started)

	go p.monitor(p.done, p.stopMon)

	return p, nil
}

func (p *Player) emit(kind EventKind) {
	if p.events == nil {
		return
	}
	select {
	case p.events <- Event{Kind: kind, At: p.Position()}:
	default:
	}
}

func (p *Player) monitor(done, stop chan struct{}) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
		p.mu.Lock()
		finished := !p.paused && p.counter.Pos() >= p.src.Length() && !p.otoPlayer.IsPlaying()
		p.mu.Unlock()
		if finished {
			close(done)
			p.emit(Ended)
			return
		}
	}
}

// Events delivers Started, Paused and Ended signals. Slow readers miss events
// rather than block playback.
func (p *Player) Events() <-chan Event { return p.events }

// Done returns a channel that closes when playback finishes.
func (p *Player) Done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Analyser returns an analyser over the audio sent to the device.
func (p *Player) Analyser(fftSize int) (*analyser.Analyser, error) {
	return analyser.New(p.tap, fftSize)
}

// Restart seeks to the beginning and resumes playback.
func (p *Player) Restart() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.src.Rewind(); err != nil {
		return fmt.Errorf("rewinding: %w", err)
	}
	p.counter.SetPos(0)
	p.tap.Clear()

	p.otoPlayer.Pause()
	p.otoPlayer = p.otoCtx.NewPlayer(p.counter)
	p.otoPlayer.SetVolume(p.volume)

	close(p.stopMon)
	p.stopMon = make(chan struct{})
	p.done = make(chan struct{})
	p.paused = false
	p.otoPlayer.Play()
	go p.monitor(p.done, p.stopMon)
	p.emit(Started)
	return nil
}

// Pause stops output without toggling. It is a no-op when already paused.
func (p *Player) Pause() {
	p.mu.Lock()
	if p.paused {
		p.mu.Unlock()
		return
	}
	p.paused = true
	if p.otoPlayer != nil {
		p.otoPlayer.Pause()
	}
	p.mu.Unlock()
	p.emit(Paused)
}

// Resume continues output after Pause.
func (p *Player) Resume() {
	p.mu.Lock()
	if !p.paused || p.closed {
		p.mu.Unlock()
		return
	}
	p.paused = false
	if p.otoPlayer != nil {
		p.otoPlayer.Play()
	}
	p.mu.Unlock()
	p.emit(Started)
}

// TogglePause toggles between play and pause.
func (p *Player) TogglePause() {
	if p.Paused() {
		p.Resume()
	} else {
		p.Pause()
	}
}

// Paused returns whether playback is paused.
func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// Position returns the current playback position.
func (p *Player) Position() time.Duration {
	if p.counter == nil || p.bytesPerSec == 0 {
		return 0
	}
	secs := float64(p.counter.Pos()) / float64(p.bytesPerSec)
	return time.Duration(secs * float64(time.Second))
}

// Duration returns the total duration of the track.
func (p *Player) Duration() time.Duration {
	return p.duration
}

// Volume returns current volume (0.0 to 1.0).
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// SetVolume sets volume (clamped to 0.0 - 1.0).
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	p.volume = v
	if p.otoPlayer != nil {
		p.otoPlayer.SetVolume(v)
	}
}

// AdjustVolume adjusts volume by delta.
func (p *Player) AdjustVolume(delta float64) {
	p.SetVolume(p.Volume() + delta)
}

// Close releases all resources. It is safe to call more than once.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	if p.stopMon != nil {
		close(p.stopMon)
	}
	if p.otoPlayer != nil {
		p.otoPlayer.Pause()
	}
	if p.cleanup != nil {
		p.cleanup()
	}
}
