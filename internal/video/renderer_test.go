package video

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestRenderASCIIUsesBrightnessRamp(t *testing.T) {
	r := NewASCIIRenderer()
	out := r.Render(solid(8, 8, color.RGBA{R: 255, G: 255, B: 255, A: 255}), 4, 2)

	if out != "@@@@\n@@@@" {
		t.Fatalf("expected white ramp characters, got %q", out)
	}
}

func TestRenderHalfBlockTrueColor(t *testing.T) {
	r := newRenderer(termenv.TrueColor)
	out := r.Render(solid(4, 4, color.RGBA{R: 10, G: 20, B: 30, A: 255}), 2, 1)

	if !strings.Contains(out, "\x1b[38;2;10;20;30m") || !strings.Contains(out, "\x1b[48;2;10;20;30m") {
		t.Fatalf("expected truecolor fg and bg escapes, got %q", out)
	}
	if strings.Count(out, "▀") != 2 {
		t.Fatalf("expected 2 half blocks, got %q", out)
	}
	if !strings.HasSuffix(out, ansiReset) {
		t.Fatalf("expected trailing reset, got %q", out)
	}
}

func TestRenderRejectsEmptyTargets(t *testing.T) {
	r := newRenderer(termenv.TrueColor)
	if out := r.Render(nil, 4, 4); out != "" {
		t.Fatalf("expected empty output for nil image, got %q", out)
	}
	if out := r.Render(solid(4, 4, color.RGBA{}), 0, 4); out != "" {
		t.Fatalf("expected empty output for zero width, got %q", out)
	}
}

func TestCellColorPicksNearest(t *testing.T) {
	if got := cellColor(termenv.ANSI, false, 250, 250, 250); got != "\x1b[97m" {
		t.Fatalf("expected bright white fg, got %q", got)
	}
	if got := cellColor(termenv.ANSI, true, 0, 0, 0); got != "\x1b[40m" {
		t.Fatalf("expected black bg, got %q", got)
	}
	if got := cellColor(termenv.ANSI256, false, 255, 0, 0); got != "\x1b[38;5;196m" {
		t.Fatalf("expected 256-colour red fg, got %q", got)
	}
	if got := cellColor(termenv.Ascii, false, 1, 2, 3); got != "" {
		t.Fatalf("expected no escape without colour, got %q", got)
	}
}

func TestColorCacheSeparatesLayers(t *testing.T) {
	c := newColorCache(termenv.TrueColor)
	fg := c.seq(false, 1, 2, 3)
	bg := c.seq(true, 1, 2, 3)
	if fg != "\x1b[38;2;1;2;3m" || bg != "\x1b[48;2;1;2;3m" {
		t.Fatalf("expected distinct fg and bg escapes, got %q and %q", fg, bg)
	}
	if len(c.seqs) != 2 {
		t.Fatalf("expected 2 cached escapes, got %d", len(c.seqs))
	}
}

func TestFitKeepsAspect(t *testing.T) {
	w, h := Fit(100, 50, 800, 400)
	if w != 100 || h != 25 {
		t.Fatalf("expected 100x25 cells, got %dx%d", w, h)
	}
	w, h = Fit(100, 10, 800, 400)
	if w != 40 || h != 10 {
		t.Fatalf("expected height-bound 40x10 cells, got %dx%d", w, h)
	}
	if w, h = Fit(0, 10, 800, 400); w != 0 || h != 0 {
		t.Fatalf("expected zero size for empty terminal, got %dx%d", w, h)
	}
}
