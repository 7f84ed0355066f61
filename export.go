package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"

	"github.com/olivier-w/canvis/internal/analyser"
	"github.com/olivier-w/canvis/internal/config"
	"github.com/olivier-w/canvis/internal/logx"
	"github.com/olivier-w/canvis/internal/player"
	"github.com/olivier-w/canvis/internal/scheduler"
	"github.com/olivier-w/canvis/internal/surface"
	"github.com/olivier-w/canvis/internal/visualizer"
)

const exportTapFrames = 32768

// fileMedia feeds a decoded file into a tap without an audio device.
type fileMedia struct {
	tap *analyser.Tap
}

func (m *fileMedia) Analyser(fftSize int) (*analyser.Analyser, error) {
	return analyser.New(m.tap, fftSize)
}

func (m *fileMedia) Pause() {}

// runExport decodes path in frame-sized chunks and writes one PNG per drawn
// frame into dir. It stops early when the audio runs out.
func runExport(path string, store *config.Store, reg *visualizer.Registry, dir string, frames int) (int, error) {
	if frames <= 0 {
		return 0, fmt.Errorf("frame count must be positive, got %d", frames)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("creating export directory: %w", err)
	}

	src, err := player.OpenSource(path)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	cfg := store.Snapshot()
	m := &fileMedia{tap: analyser.NewTap(exportTapFrames)}
	canvas := surface.NewCanvas(cfg.Width, cfg.Height)
	host := scheduler.NewManualHost()
	sched := scheduler.New(reg, store, canvas, host)

	written := 0
	var writeErr error
	sched.OnFrame(func(sf surface.Context) {
		if writeErr != nil {
			return
		}
		name := filepath.Join(dir, fmt.Sprintf("frame_%05d.png", written))
		if err := gg.SavePNG(name, canvas.Image()); err != nil {
			writeErr = fmt.Errorf("writing %s: %w", name, err)
			return
		}
		written++
	})

	if err := sched.Start(store.Visualizer(), m); err != nil {
		return 0, err
	}
	defer sched.Stop()

	chunk := int64(src.BytesPerSecond() / cfg.FPS)
	chunk -= chunk % analyser.FrameBytes
	for i := 0; i < frames; i++ {
		n, err := io.CopyN(m.tap, src, chunk)
		if n == 0 && errors.Is(err, io.EOF) {
			logx.Info("Audio ended after %d frames", i)
			break
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return written, fmt.Errorf("decoding: %w", err)
		}
		host.Step()
		if writeErr != nil {
			return written, writeErr
		}
		if sched.State() != scheduler.Running {
			break
		}
	}
	return written, nil
}
