package ui

import (
	"sync/atomic"

	"github.com/olivier-w/canvis/internal/surface"
	"github.com/olivier-w/canvis/internal/video"
)

// FramePump converts each drawn canvas into terminal text and hands the
// newest one to the UI. Frames the UI has not picked up yet are replaced.
type FramePump struct {
	r    *video.Renderer
	w, h atomic.Int32
	out  chan string
}

func NewFramePump(r *video.Renderer) *FramePump {
	return &FramePump{r: r, out: make(chan string, 1)}
}

// SetSize sets the output size in terminal cells.
func (p *FramePump) SetSize(w, h int) {
	p.w.Store(int32(w))
	p.h.Store(int32(h))
}

func (p *FramePump) Frames() <-chan string {
	if p == nil {
		return nil
	}
	return p.out
}

// OnFrame is registered with the scheduler.
func (p *FramePump) OnFrame(sf surface.Context) {
	c, ok := sf.(*surface.Canvas)
	if !ok {
		return
	}
	w, h := int(p.w.Load()), int(p.h.Load())
	if w <= 0 || h <= 0 {
		return
	}
	s := p.r.Render(c.Image(), w, h)
	select {
	case <-p.out:
	default:
	}
	select {
	case p.out <- s:
	default:
	}
}
