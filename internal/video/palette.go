package video

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/muesli/termenv"
)

// Brightness ramp for the colourless view, darkest first.
const asciiRamp = " .:-=+*#%@"

const ansiReset = termenv.CSI + termenv.ResetSeq + "m"

var (
	profileOnce sync.Once
	termProfile termenv.Profile
)

// detectProfile reads the terminal's colour support once. NO_COLOR and
// CLICOLOR_FORCE are honoured.
func detectProfile() termenv.Profile {
	profileOnce.Do(func() {
		termProfile = termenv.EnvColorProfile()
	})
	return termProfile
}

func brightnessChar(lum uint8) byte {
	return asciiRamp[int(lum)*(len(asciiRamp)-1)/255]
}

// cellColor returns the escape painting one half of a cell in the closest
// colour p can show. Truecolor is written directly; the reduced profiles go
// through termenv's nearest-colour conversion.
func cellColor(p termenv.Profile, bg bool, r, g, b uint8) string {
	switch p {
	case termenv.Ascii:
		return ""
	case termenv.TrueColor:
		layer := termenv.Foreground
		if bg {
			layer = termenv.Background
		}
		return fmt.Sprintf("%s%s;2;%d;%d;%dm", termenv.CSI, layer, r, g, b)
	}
	c := p.FromColor(color.RGBA{R: r, G: g, B: b, A: 255})
	if c == nil {
		return ""
	}
	seq := c.Sequence(bg)
	if seq == "" {
		return ""
	}
	return termenv.CSI + seq + "m"
}

// colorCache memoizes cellColor for one profile.
type colorCache struct {
	profile termenv.Profile
	seqs    map[uint32]string
}

func newColorCache(p termenv.Profile) colorCache {
	return colorCache{profile: p, seqs: make(map[uint32]string)}
}

func (c colorCache) seq(bg bool, r, g, b uint8) string {
	key := uint32(r)<<16 | uint32(g)<<8 | uint32(b)
	if bg {
		key |= 1 << 24
	}
	if s, ok := c.seqs[key]; ok {
		return s
	}
	s := cellColor(c.profile, bg, r, g, b)
	c.seqs[key] = s
	return s
}
