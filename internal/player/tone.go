package player

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteTone writes a mono 16-bit WAV sine at freq Hz.
func WriteTone(path string, freq float64, rate int, d time.Duration) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	n := int(d.Seconds() * float64(rate))
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: rate},
		Data:           make([]int, n),
		SourceBitDepth: 16,
	}
	for i := range buf.Data {
		buf.Data[i] = int(0.5 * 32767 * math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
	}

	enc := wav.NewEncoder(f, rate, 16, 1, 1)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encoding tone: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finishing tone: %w", err)
	}
	return nil
}
