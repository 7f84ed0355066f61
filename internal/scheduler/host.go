package scheduler

import (
	"sync"
	"time"
)

// Handle identifies a requested frame callback.
type Handle uint64

// Host is the "next animation frame" primitive the scheduler drives.
// RequestFrame must not run fn synchronously.
type Host interface {
	RequestFrame(fn func()) Handle
	CancelFrame(h Handle)
}

// TimerHost fires each callback once, one frame interval after the request.
type TimerHost struct {
	fps    func() int
	mu     sync.Mutex
	next   Handle
	timers map[Handle]*time.Timer
}

// NewTimerHost paces frames at the rate fps returns when each frame is
// requested.
func NewTimerHost(fps func() int) *TimerHost {
	return &TimerHost{fps: fps, timers: make(map[Handle]*time.Timer)}
}

func (h *TimerHost) RequestFrame(fn func()) Handle {
	rate := h.fps()
	if rate < 1 {
		rate = 1
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	id := h.next
	h.timers[id] = time.AfterFunc(time.Second/time.Duration(rate), func() {
		h.mu.Lock()
		_, live := h.timers[id]
		delete(h.timers, id)
		h.mu.Unlock()
		if live {
			fn()
		}
	})
	return id
}

func (h *TimerHost) CancelFrame(id Handle) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if t, ok := h.timers[id]; ok {
		t.Stop()
		delete(h.timers, id)
	}
}

// ManualHost runs callbacks only when Step is called. It drives headless
// export and tests.
type ManualHost struct {
	mu      sync.Mutex
	next    Handle
	pending map[Handle]func()
	order   []Handle
}

func NewManualHost() *ManualHost {
	return &ManualHost{pending: make(map[Handle]func())}
}

func (h *ManualHost) RequestFrame(fn func()) Handle {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	h.pending[h.next] = fn
	h.order = append(h.order, h.next)
	return h.next
}

func (h *ManualHost) CancelFrame(id Handle) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.pending, id)
}

// Step runs the callbacks pending when it is called and returns how many ran.
// Callbacks requested while stepping wait for the next Step.
func (h *ManualHost) Step() int {
	h.mu.Lock()
	order := h.order
	h.order = nil
	var fns []func()
	for _, id := range order {
		if fn, ok := h.pending[id]; ok {
			fns = append(fns, fn)
			delete(h.pending, id)
		}
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

// Pending reports how many callbacks are waiting.
func (h *ManualHost) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.pending)
}
