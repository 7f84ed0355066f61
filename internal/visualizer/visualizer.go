// Package visualizer holds the catalog of canvas renderers. Each renderer maps
// one byte snapshot from the analyser to shapes on a surface.Context.
package visualizer

import (
	"github.com/olivier-w/canvis/internal/config"
	"github.com/olivier-w/canvis/internal/surface"
)

// Domain is the kind of snapshot a renderer consumes.
type Domain int

const (
	Frequency Domain = iota
	Waveform
)

func (d Domain) String() string {
	if d == Waveform {
		return "waveform"
	}
	return "frequency"
}

// Family groups renderers for listing. Lookup ignores it.
type Family int

const (
	Bar Family = iota
	Wave
	Circle
	Rotation
	Spiral
)

var familyNames = [...]string{"bar", "wave", "circle", "rotation", "spiral"}

func (f Family) String() string {
	if f < 0 || int(f) >= len(familyNames) {
		return "unknown"
	}
	return familyNames[f]
}

// Families lists every family in catalog order.
func Families() []Family { return []Family{Bar, Wave, Circle, Rotation, Spiral} }

// Input is everything a renderer reads for one frame.
type Input struct {
	Samples []byte
	Config  config.Render
	Surface surface.Context
}

// State is the only value carried between frames. Renderers that are not
// Stateful return it unchanged.
type State struct {
	Hold float64
}

// Renderer draws one visualization style.
type Renderer interface {
	Name() string
	Family() Family
	Domain() Domain
	Stateful() bool
	Render(in Input, st State) State
}
