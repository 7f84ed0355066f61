package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/olivier-w/canvis/internal/config"
	"github.com/olivier-w/canvis/internal/visualizer"
)

type flagValues struct {
	configFile  string
	style       string
	fftSize     int
	width       int
	height      int
	scale       float64
	fps         int
	colorMode   string
	fg          string
	bg          string
	transparent bool
	list        bool
	prefsPath   string
	noPrefs     bool
	logFile     string
	exportDir   string
	frames      int
	toneHz      float64
}

func registerFlags(fs *flag.FlagSet) *flagValues {
	v := &flagValues{}
	fs.StringVar(&v.configFile, "config", "", "Path to config file (default: ~/.config/canvis/config.yaml)")
	fs.StringVar(&v.style, "style", "", "Visualizer name, see -list")
	fs.IntVar(&v.fftSize, "fft", 0, "FFT size, a power of two from 32 to 32768")
	fs.IntVar(&v.width, "width", 0, "Canvas width in pixels")
	fs.IntVar(&v.height, "height", 0, "Canvas height in pixels")
	fs.Float64Var(&v.scale, "scale", 0, "Animation scale in percent (1-1000)")
	fs.IntVar(&v.fps, "fps", 0, "Frames per second")
	fs.StringVar(&v.colorMode, "color-mode", "", "Foreground colour mode: dynamic or static")
	fs.StringVar(&v.fg, "fg", "", "Static foreground colour (#rrggbb)")
	fs.StringVar(&v.bg, "bg", "", "Background colour (#rrggbb)")
	fs.BoolVar(&v.transparent, "transparent-bg", false, "Leave the canvas background transparent")
	fs.BoolVar(&v.list, "list", false, "List available visualizers")
	fs.StringVar(&v.prefsPath, "prefs", "", "Path to the preferences database")
	fs.BoolVar(&v.noPrefs, "no-prefs", false, "Neither read nor save preferences")
	fs.StringVar(&v.logFile, "log", "", "Write logs to this file")
	fs.StringVar(&v.exportDir, "export", "", "Render frames as PNG files into this directory instead of playing")
	fs.IntVar(&v.frames, "frames", 60, "Number of frames to render with -export")
	fs.Float64Var(&v.toneHz, "tone", 0, "Play a generated sine tone at this frequency instead of a file")
	return v
}

// applyFlags overlays the flags the user actually set onto s.
func applyFlags(s *config.Settings, fs *flag.FlagSet, v *flagValues) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "style":
			s.Visualizer = v.style
		case "fft":
			s.FFTSize = v.fftSize
		case "width":
			s.Width = v.width
		case "height":
			s.Height = v.height
		case "scale":
			s.Scale = v.scale
		case "fps":
			s.FPS = v.fps
		case "color-mode":
			s.ColorMode = v.colorMode
		case "fg":
			s.Foreground = v.fg
		case "bg":
			s.Background = v.bg
		case "transparent-bg":
			s.TransparentBackground = v.transparent
		}
	})
}

func writeCatalog(w io.Writer, reg *visualizer.Registry) {
	for _, fam := range visualizer.Families() {
		names := reg.ByFamily(fam)
		fmt.Fprintf(w, "%s (%d)\n", fam, len(names))
		for _, name := range names {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
}
