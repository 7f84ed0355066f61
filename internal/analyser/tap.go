package analyser

import "sync"

// FrameBytes is the size of one interleaved stereo s16le frame.
const FrameBytes = 4

// Tap is a thread-safe circular buffer holding the most recent PCM bytes handed
// to the audio device.
type Tap struct {
	mu    sync.Mutex
	buf   []byte
	size  int
	w     int   // write position
	len   int   // current fill level
	total int64 // bytes written since the last Clear
}

// NewTap creates a tap holding up to frames stereo frames.
func NewTap(frames int) *Tap {
	if frames < 1 {
		frames = 1
	}
	size := frames * FrameBytes
	return &Tap{buf: make([]byte, size), size: size}
}

// Write appends p, overwriting the oldest bytes when full. It never fails.
func (t *Tap) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, b := range p {
		t.buf[t.w] = b
		t.w = (t.w + 1) % t.size
	}
	t.len += len(p)
	if t.len > t.size {
		t.len = t.size
	}
	t.total += int64(len(p))
	return len(p), nil
}

// Frames copies up to n of the most recent complete frames into a new slice.
// A partially written trailing frame is left out.
func (t *Tap) Frames(n int) []byte {
	t.mu.Lock()
	defer t.mu.Unlock()

	partial := int(t.total % FrameBytes)
	avail := (t.len - partial) / FrameBytes
	if n > avail {
		n = avail
	}
	if n <= 0 {
		return nil
	}

	out := make([]byte, n*FrameBytes)
	end := (t.w - partial + t.size) % t.size
	start := (end - len(out) + t.size) % t.size
	for i := range out {
		out[i] = t.buf[(start+i)%t.size]
	}
	return out
}

// Clear resets the buffer.
func (t *Tap) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.w = 0
	t.len = 0
	t.total = 0
}
