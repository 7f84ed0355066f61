// Package analyser turns the PCM stream sent to the audio device into the
// byte snapshots the visualizers draw from.
package analyser

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/cmplx"
	"sync"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"

	"github.com/olivier-w/canvis/internal/config"
)

const (
	smoothing   = 0.8
	minDecibels = -100.0
	maxDecibels = -30.0
)

// Analyser computes frequency and waveform snapshots of the latest fftSize
// frames in a Tap.
type Analyser struct {
	mu     sync.Mutex
	tap    *Tap
	size   int
	win    []float64
	smooth []float64
	mono   []float64
}

// New creates an analyser over tap. fftSize must be a power of two between 32
// and 32768.
func New(tap *Tap, fftSize int) (*Analyser, error) {
	if !config.ValidFFTSize(fftSize) {
		return nil, fmt.Errorf("%w: %d", config.ErrInvalidFFTSize, fftSize)
	}
	return &Analyser{
		tap:    tap,
		size:   fftSize,
		win:    window.Blackman(fftSize),
		smooth: make([]float64, fftSize/2),
		mono:   make([]float64, fftSize),
	}, nil
}

// Len is the length of both snapshots.
func (a *Analyser) Len() int { return a.size / 2 }

// FFTSize returns the transform size the analyser was created with.
func (a *Analyser) FFTSize() int { return a.size }

// load mixes the most recent frames down to mono in [-1, 1). Missing history
// is zero-padded at the front.
func (a *Analyser) load() {
	raw := a.tap.Frames(a.size)
	frames := len(raw) / FrameBytes
	pad := a.size - frames
	for i := 0; i < pad; i++ {
		a.mono[i] = 0
	}
	for i := 0; i < frames; i++ {
		l := int16(binary.LittleEndian.Uint16(raw[i*FrameBytes:]))
		r := int16(binary.LittleEndian.Uint16(raw[i*FrameBytes+2:]))
		a.mono[pad+i] = (float64(l) + float64(r)) / 2 / 32768
	}
}

// FrequencySnapshot fills dst with smoothed magnitudes mapped from
// [-100 dB, -30 dB] onto [0, 255]. At most Len bytes are written.
func (a *Analyser) FrequencySnapshot(dst []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.load()
	in := make([]float64, a.size)
	for i, v := range a.mono {
		in[i] = v * a.win[i]
	}
	spec := fft.FFTReal(in)

	n := a.size / 2
	for k := 0; k < n; k++ {
		mag := cmplx.Abs(spec[k]) / float64(a.size)
		a.smooth[k] = smoothing*a.smooth[k] + (1-smoothing)*mag
		if k < len(dst) {
			dst[k] = toByte(a.smooth[k])
		}
	}
}

func toByte(mag float64) byte {
	if mag <= 0 || math.IsNaN(mag) {
		return 0
	}
	db := 20 * math.Log10(mag)
	v := 255 * (db - minDecibels) / (maxDecibels - minDecibels)
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return byte(v)
}

// WaveformSnapshot fills dst with the most recent Len samples as bytes, 128
// being zero amplitude.
func (a *Analyser) WaveformSnapshot(dst []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.load()
	n := a.size / 2
	if len(dst) < n {
		n = len(dst)
	}
	off := a.size - n
	for i := 0; i < n; i++ {
		v := 128 * (1 + a.mono[off+i])
		switch {
		case v <= 0:
			dst[i] = 0
		case v >= 255:
			dst[i] = 255
		default:
			dst[i] = byte(v)
		}
	}
}

// Reset forgets smoothing history.
func (a *Analyser) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.smooth {
		a.smooth[i] = 0
	}
}
