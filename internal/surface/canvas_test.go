package surface

import (
	"image/color"
	"math"
	"testing"
)

var red = color.RGBA{R: 255, A: 255}

func TestCanvasFillRectCoversPixels(t *testing.T) {
	c := NewCanvas(8, 8)
	c.SetFillColor(red)
	c.FillRect(0, 0, 8, 8)

	img := c.Image()
	if got := img.RGBAAt(4, 4); got != red {
		t.Fatalf("expected red pixel, got %v", got)
	}
}

func TestCanvasClearMakesTransparent(t *testing.T) {
	c := NewCanvas(4, 4)
	c.SetFillColor(red)
	c.FillRect(0, 0, 4, 4)
	c.Clear()

	if got := c.Image().RGBAAt(1, 1); got.A != 0 {
		t.Fatalf("expected transparent pixel after clear, got %v", got)
	}
}

func TestCanvasBackdropShowsUnderClearedPixels(t *testing.T) {
	c := NewCanvas(4, 4)
	blue := color.RGBA{B: 255, A: 255}
	c.SetBackdrop(blue)
	c.SetFillColor(red)
	c.FillRect(0, 0, 2, 4)

	img := c.Image()
	if got := img.RGBAAt(0, 1); got != red {
		t.Fatalf("expected drawn pixel on top, got %v", got)
	}
	if got := img.RGBAAt(3, 1); got != blue {
		t.Fatalf("expected backdrop pixel, got %v", got)
	}
}

func TestCanvasTransformAppliesToFillRect(t *testing.T) {
	c := NewCanvas(10, 10)
	c.SetFillColor(red)
	c.Save()
	c.Translate(5, 5)
	c.FillRect(0, 0, 5, 5)
	c.Restore()

	img := c.Image()
	if got := img.RGBAAt(7, 7); got != red {
		t.Fatalf("expected translated rect at (7,7), got %v", got)
	}
	if got := img.RGBAAt(2, 2); got.A != 0 {
		t.Fatalf("expected (2,2) untouched, got %v", got)
	}
}

func TestCanvasFillThenStrokeKeepsPath(t *testing.T) {
	c := NewCanvas(20, 20)
	c.SetFillColor(red)
	c.SetStrokeColor(red)
	c.BeginPath()
	c.Arc(10, 10, 6, 0, 2*math.Pi)
	c.Fill()
	c.Stroke()

	if got := c.Image().RGBAAt(10, 10); got != red {
		t.Fatalf("expected filled circle centre, got %v", got)
	}
}

func TestCanvasResizeResetsState(t *testing.T) {
	c := NewCanvas(4, 4)
	c.SetFillColor(red)
	c.FillRect(0, 0, 4, 4)
	c.Resize(6, 3)

	if c.Width() != 6 || c.Height() != 3 {
		t.Fatalf("expected 6x3, got %dx%d", c.Width(), c.Height())
	}
	if got := c.Image().RGBAAt(0, 0); got.A != 0 {
		t.Fatalf("expected blank surface after resize, got %v", got)
	}
}

func TestCanvasIgnoresNonFiniteInput(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Rotate(math.NaN())
	c.FillRect(math.Inf(1), 0, 1, 1)
	c.BeginPath()
	c.MoveTo(math.NaN(), 0)
	c.Arc(1, 1, -3, 0, math.Pi)
	c.Stroke()
	c.Restore()
}

func TestArcSweep(t *testing.T) {
	tests := []struct {
		start, end, want float64
	}{
		{0, 2 * math.Pi, 2 * math.Pi},
		{0, 4 * math.Pi, 2 * math.Pi},
		{0, math.Pi / 2, math.Pi / 2},
		{math.Pi, 0, math.Pi},
		{3 * math.Pi, 2 * math.Pi, math.Pi},
	}
	for _, tt := range tests {
		if got := ArcSweep(tt.start, tt.end); math.Abs(got-tt.want) > 1e-9 {
			t.Fatalf("ArcSweep(%g, %g): expected %g, got %g", tt.start, tt.end, tt.want, got)
		}
	}
}

func TestRecorderTracksTransformedExtent(t *testing.T) {
	r := NewRecorder(100, 100)
	r.Save()
	r.Scale(2, 2)
	r.BeginPath()
	r.MoveTo(0, 0)
	r.LineTo(10, 0)
	r.SetStrokeColor(red)
	r.Stroke()
	r.Restore()

	ops := r.Ops()
	if len(ops) != 1 || ops[0].Kind != OpStroke {
		t.Fatalf("expected one stroke, got %+v", ops)
	}
	if ops[0].Extent != 20 {
		t.Fatalf("expected extent 20, got %g", ops[0].Extent)
	}
	if ops[0].Color != red || ops[0].Depth != 1 {
		t.Fatalf("unexpected op %+v", ops[0])
	}
	if r.Depth() != 0 {
		t.Fatalf("expected balanced stack, got depth %d", r.Depth())
	}
}
