// Package config holds the user-facing settings and the per-frame render
// configuration derived from them.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ColorMode selects between a single static colour and per-sample colours.
type ColorMode int

const (
	Dynamic ColorMode = iota
	Static
)

func (m ColorMode) String() string {
	if m == Static {
		return "static"
	}
	return "dynamic"
}

// ParseColorMode accepts "static" or "dynamic" (case-insensitive).
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dynamic", "":
		return Dynamic, nil
	case "static":
		return Static, nil
	}
	return Dynamic, fmt.Errorf("unknown color mode %q", s)
}

var (
	ErrInvalidFFTSize = errors.New("fft size must be a power of two between 32 and 32768")
	ErrInvalidSize    = errors.New("canvas width and height must be positive")
	ErrInvalidScale   = errors.New("scale must be between 1 and 1000")
	ErrInvalidFPS     = errors.New("fps must be between 1 and 240")
)

// FFTSizes lists the transform sizes offered to the user.
var FFTSizes = []int{32, 64, 128, 256, 512, 1024, 2048, 4096, 8192, 16384, 32768}

// ValidFFTSize reports whether n is one of FFTSizes.
func ValidFFTSize(n int) bool {
	for _, s := range FFTSizes {
		if s == n {
			return true
		}
	}
	return false
}

// Render is the immutable configuration snapshot a frame is drawn with.
type Render struct {
	ScalePercent          float64
	ColorMode             ColorMode
	StaticColor           color.RGBA
	Background            color.RGBA
	TransparentBackground bool
	Width                 int
	Height                int
	FFTSize               int
	FPS                   int
}

// Scale returns the scale percentage as a multiplier.
func (r Render) Scale() float64 { return r.ScalePercent / 100 }

// Settings is the on-disk and command-line form of the configuration.
type Settings struct {
	Visualizer            string  `yaml:"visualizer"`
	FFTSize               int     `yaml:"fft_size"`
	Width                 int     `yaml:"width"`
	Height                int     `yaml:"height"`
	Scale                 float64 `yaml:"scale"`
	FPS                   int     `yaml:"fps"`
	ColorMode             string  `yaml:"color_mode"`
	Foreground            string  `yaml:"foreground"`
	Background            string  `yaml:"background"`
	TransparentBackground bool    `yaml:"transparent_background"`
	LogLevel              string  `yaml:"log_level"`
	LogFile               string  `yaml:"log_file"`
	PrefsPath             string  `yaml:"prefs_path"`
}

func Default() Settings {
	return Settings{
		Visualizer: "barVisualizer",
		FFTSize:    2048,
		Width:      800,
		Height:     400,
		Scale:      100,
		FPS:        30,
		ColorMode:  "dynamic",
		Foreground: "#ffffff",
		Background: "#000000",
		LogLevel:   "info",
	}
}

// LoadFromFile overlays the YAML file at path onto s.
func (s *Settings) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// TryLoadDefault loads the first settings file found in the usual places and
// returns its path, or "" if none was loaded.
func (s *Settings) TryLoadDefault() string {
	var paths []string
	if p := os.Getenv("CANVIS_CONFIG"); p != "" {
		paths = append(paths, p)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths,
			filepath.Join(dir, "canvis", "config.yaml"),
			filepath.Join(dir, "canvis", "config.yml"),
		)
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".canvis.yaml"))
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := s.LoadFromFile(p); err == nil {
			return p
		}
	}
	return ""
}

// Validate checks every field that has a constrained range.
func (s Settings) Validate() error {
	_, err := s.Render()
	return err
}

// Render converts the settings into a render snapshot.
func (s Settings) Render() (Render, error) {
	if !ValidFFTSize(s.FFTSize) {
		return Render{}, fmt.Errorf("%w: %d", ErrInvalidFFTSize, s.FFTSize)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return Render{}, fmt.Errorf("%w: %dx%d", ErrInvalidSize, s.Width, s.Height)
	}
	if s.Scale < 1 || s.Scale > 1000 {
		return Render{}, fmt.Errorf("%w: %g", ErrInvalidScale, s.Scale)
	}
	if s.FPS < 1 || s.FPS > 240 {
		return Render{}, fmt.Errorf("%w: %d", ErrInvalidFPS, s.FPS)
	}
	mode, err := ParseColorMode(s.ColorMode)
	if err != nil {
		return Render{}, err
	}
	fg, err := ParseColor(s.Foreground)
	if err != nil {
		return Render{}, fmt.Errorf("foreground: %w", err)
	}
	bg, err := ParseColor(s.Background)
	if err != nil {
		return Render{}, fmt.Errorf("background: %w", err)
	}
	return Render{
		ScalePercent:          s.Scale,
		ColorMode:             mode,
		StaticColor:           fg,
		Background:            bg,
		TransparentBackground: s.TransparentBackground,
		Width:                 s.Width,
		Height:                s.Height,
		FFTSize:               s.FFTSize,
		FPS:                   s.FPS,
	}, nil
}

// ParseColor parses "#rrggbb" or "#rgb".
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// FormatColor renders c as "#rrggbb".
func FormatColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
