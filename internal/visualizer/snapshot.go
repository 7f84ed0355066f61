package visualizer

import "math"

// WaveformZero is the byte value of a zero-amplitude waveform sample.
const WaveformZero = 128

// Normalize maps a waveform byte to [-1, 1).
func Normalize(b byte) float64 { return float64(b)/128 - 1 }

// RMS is the root-mean-square of the normalized waveform.
func RMS(samples []byte) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, b := range samples {
		v := Normalize(b)
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(samples)))
}

// Silent reports whether b carries no signal in domain d.
func Silent(b byte, d Domain) bool {
	if d == Waveform {
		return b == WaveformZero
	}
	return b == 0
}

// SilentSnapshot reports whether every sample is silent.
func SilentSnapshot(samples []byte, d Domain) bool {
	for _, b := range samples {
		if !Silent(b, d) {
			return false
		}
	}
	return true
}

// SilentFill overwrites dst with the silent value for d.
func SilentFill(dst []byte, d Domain) {
	v := byte(0)
	if d == Waveform {
		v = WaveformZero
	}
	for i := range dst {
		dst[i] = v
	}
}
