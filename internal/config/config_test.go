package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	r, err := Default().Render()
	if err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if r.Width != 800 || r.Height != 400 {
		t.Fatalf("expected 800x400, got %dx%d", r.Width, r.Height)
	}
	if r.Scale() != 1 {
		t.Fatalf("expected scale 1, got %g", r.Scale())
	}
	if r.ColorMode != Dynamic {
		t.Fatalf("expected dynamic color mode, got %v", r.ColorMode)
	}
	if r.TransparentBackground {
		t.Fatal("expected filled background by default")
	}
}

func TestLoadFromFileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "visualizer: circleVisualizer3\nfft_size: 512\ncolor_mode: static\nforeground: \"#ff8000\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	s := Default()
	if err := s.LoadFromFile(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Visualizer != "circleVisualizer3" {
		t.Fatalf("expected visualizer from file, got %q", s.Visualizer)
	}
	if s.Width != 800 {
		t.Fatalf("expected default width to survive, got %d", s.Width)
	}
	r, err := s.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if r.FFTSize != 512 || r.ColorMode != Static {
		t.Fatalf("expected fft 512 static, got %d %v", r.FFTSize, r.ColorMode)
	}
	if r.StaticColor != (color.RGBA{R: 0xff, G: 0x80, A: 0xff}) {
		t.Fatalf("unexpected static color %v", r.StaticColor)
	}
}

func TestLoadFromFileRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("width: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := Default()
	if err := s.LoadFromFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestRenderValidation(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*Settings)
		want error
	}{
		{"fft not power of two", func(s *Settings) { s.FFTSize = 1000 }, ErrInvalidFFTSize},
		{"fft too small", func(s *Settings) { s.FFTSize = 16 }, ErrInvalidFFTSize},
		{"zero width", func(s *Settings) { s.Width = 0 }, ErrInvalidSize},
		{"scale too big", func(s *Settings) { s.Scale = 1001 }, ErrInvalidScale},
		{"fps zero", func(s *Settings) { s.FPS = 0 }, ErrInvalidFPS},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mut(&s)
			if err := s.Validate(); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#0f8")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c != (color.RGBA{R: 0, G: 0xff, B: 0x88, A: 0xff}) {
		t.Fatalf("unexpected color %v", c)
	}
	if FormatColor(c) != "#00ff88" {
		t.Fatalf("expected #00ff88, got %s", FormatColor(c))
	}
	if _, err := ParseColor("red"); err == nil {
		t.Fatal("expected error for named color")
	}
}

func TestStoreUpdateKeepsPreviousOnError(t *testing.T) {
	st, err := NewStore(Default())
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Update(func(s *Settings) { s.Scale = 250 }); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := st.Snapshot().ScalePercent; got != 250 {
		t.Fatalf("expected scale 250, got %g", got)
	}
	if err := st.Update(func(s *Settings) { s.Scale = -1 }); err == nil {
		t.Fatal("expected invalid scale to be rejected")
	}
	if got := st.Snapshot().ScalePercent; got != 250 {
		t.Fatalf("expected scale to stay 250, got %g", got)
	}
}

func TestStoreSnapshotIsCopy(t *testing.T) {
	st, _ := NewStore(Default())
	snap := st.Snapshot()
	_ = st.Update(func(s *Settings) { s.Width = 320 })
	if snap.Width != 800 {
		t.Fatalf("expected earlier snapshot to be unchanged, got %d", snap.Width)
	}
	if st.Snapshot().Width != 320 {
		t.Fatalf("expected new snapshot width 320, got %d", st.Snapshot().Width)
	}
}
