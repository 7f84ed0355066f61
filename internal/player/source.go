package player

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

const (
	channelCount = 2
	bitDepth     = 2 // 16-bit = 2 bytes
	frameSize    = channelCount * bitDepth
)

var ErrUnsupportedFormat = errors.New("unsupported audio format")

// pcmDecoder produces interleaved s16le PCM at its native rate and channel
// count.
type pcmDecoder interface {
	io.ReadSeeker
	Length() int64
	SampleRate() int
	ChannelCount() int
}

// Source is a decoded audio file as interleaved stereo s16le PCM.
type Source struct {
	file *os.File
	dec  pcmDecoder
	r    io.Reader
}

// OpenSource opens path and picks a decoder by its extension.
func OpenSource(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	dec, err := newDecoder(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	var r io.Reader = dec
	switch dec.ChannelCount() {
	case 1:
		r = &monoToStereo{src: dec}
	case 2:
	default:
		f.Close()
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, dec.ChannelCount())
	}
	return &Source{file: f, dec: dec, r: r}, nil
}

func (s *Source) Read(p []byte) (int, error) { return s.r.Read(p) }

// Rewind seeks back to the first frame.
func (s *Source) Rewind() error {
	if _, err := s.dec.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if m, ok := s.r.(*monoToStereo); ok {
		m.pending = nil
	}
	return nil
}

func (s *Source) SampleRate() int { return s.dec.SampleRate() }

// BytesPerSecond is the stereo s16le byte rate of the output stream.
func (s *Source) BytesPerSecond() int { return s.dec.SampleRate() * frameSize }

// Length is the total output length in bytes.
func (s *Source) Length() int64 {
	return s.dec.Length() / int64(s.dec.ChannelCount()) * channelCount
}

func (s *Source) Duration() time.Duration {
	bps := s.BytesPerSecond()
	if bps == 0 {
		return 0
	}
	return time.Duration(float64(s.Length()) / float64(bps) * float64(time.Second))
}

func (s *Source) Close() error { return s.file.Close() }

func newDecoder(f *os.File) (pcmDecoder, error) {
	ext := strings.ToLower(filepath.Ext(f.Name()))
	switch ext {
	case ".mp3":
		return newMP3Decoder(f)
	case ".wav":
		return newWAVDecoder(f)
	case ".flac":
		return newFLACDecoder(f)
	case ".ogg":
		return newOGGDecoder(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// monoToStereo duplicates each 16-bit sample into both channels.
type monoToStereo struct {
	src     io.Reader
	pending []byte
}

func (m *monoToStereo) Read(p []byte) (int, error) {
	if len(m.pending) > 0 {
		n := copy(p, m.pending)
		m.pending = m.pending[n:]
		return n, nil
	}
	in := make([]byte, (len(p)/frameSize+1)*bitDepth)
	n, err := m.src.Read(in)
	n -= n % bitDepth
	out := make([]byte, 0, n*2)
	for i := 0; i < n; i += bitDepth {
		out = append(out, in[i], in[i+1], in[i], in[i+1])
	}
	w := copy(p, out)
	m.pending = out[w:]
	if len(m.pending) > 0 && err == io.EOF {
		err = nil
	}
	return w, err
}

// pcmBuffer keeps converted bytes that did not fit the caller's slice along
// with the output position.
type pcmBuffer struct {
	buf   []byte
	pos   int64
	total int64
}

func (b *pcmBuffer) drain(p []byte) (int, bool) {
	if len(b.buf) == 0 {
		return 0, false
	}
	n := copy(p, b.buf)
	b.buf = b.buf[n:]
	b.pos += int64(n)
	return n, true
}

func (b *pcmBuffer) emit(p, raw []byte) int {
	n := copy(p, raw)
	if n < len(raw) {
		b.buf = raw[n:]
	}
	b.pos += int64(n)
	return n
}

// target resolves a Seek request to a clamped output byte offset.
func (b *pcmBuffer) target(offset int64, whence int) int64 {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = b.pos + offset
	case io.SeekEnd:
		pos = b.total + offset
	}
	if pos < 0 {
		pos = 0
	}
	if pos > b.total {
		pos = b.total
	}
	return pos
}

func (b *pcmBuffer) moved(pos int64) {
	b.buf = nil
	b.pos = pos
}

func clamp16(v int) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}

// MP3

type mp3Decoder struct {
	dec *mp3.Decoder
}

func newMP3Decoder(f *os.File) (*mp3Decoder, error) {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("decoding MP3: %w", err)
	}
	return &mp3Decoder{dec: dec}, nil
}

func (d *mp3Decoder) Read(p []byte) (int, error) { return d.dec.Read(p) }
func (d *mp3Decoder) Seek(offset int64, whence int) (int64, error) {
	return d.dec.Seek(offset, whence)
}
func (d *mp3Decoder) Length() int64     { return d.dec.Length() }
func (d *mp3Decoder) SampleRate() int   { return d.dec.SampleRate() }
func (d *mp3Decoder) ChannelCount() int { return 2 }

// WAV

type wavDecoder struct {
	pcmBuffer
	file       *os.File
	pcmStart   int64
	sampleRate int
	channels   int
	srcDepth   int // bytes per source sample
}

func newWAVDecoder(f *os.File) (*wavDecoder, error) {
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("decoding WAV: invalid file")
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("reading WAV PCM data: %w", err)
	}
	channels := int(dec.NumChans)
	depth := int(dec.BitDepth) / 8
	if channels < 1 || depth < 1 || depth > 4 {
		return nil, fmt.Errorf("%w: %d-bit WAV with %d channels", ErrUnsupportedFormat, dec.BitDepth, channels)
	}
	frames := dec.PCMLen() / int64(channels*depth)

	start, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("getting PCM start position: %w", err)
	}
	return &wavDecoder{
		pcmBuffer:  pcmBuffer{total: frames * int64(channels) * bitDepth},
		file:       f,
		pcmStart:   start,
		sampleRate: int(dec.SampleRate),
		channels:   channels,
		srcDepth:   depth,
	}, nil
}

func (d *wavDecoder) Read(p []byte) (int, error) {
	if n, ok := d.drain(p); ok {
		return n, nil
	}
	if d.pos >= d.total {
		return 0, io.EOF
	}

	want := len(p) / bitDepth
	if want == 0 {
		want = 1
	}
	if left := int((d.total - d.pos) / bitDepth); want > left {
		want = left
	}
	src := make([]byte, want*d.srcDepth)
	n, err := io.ReadFull(d.file, src)
	samples := n / d.srcDepth
	if samples == 0 {
		if err == nil || err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		return 0, err
	}

	raw := make([]byte, samples*bitDepth)
	for i := 0; i < samples; i++ {
		binary.LittleEndian.PutUint16(raw[i*bitDepth:], uint16(d.sample(src[i*d.srcDepth:])))
	}
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return d.emit(p, raw), err
}

func (d *wavDecoder) sample(b []byte) int16 {
	switch d.srcDepth {
	case 1:
		// 8-bit WAV is unsigned
		return clamp16((int(b[0]) - 128) << 8)
	case 2:
		return int16(binary.LittleEndian.Uint16(b))
	case 3:
		s := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
		if s&0x800000 != 0 {
			s |= ^0xFFFFFF
		}
		return clamp16(int(s >> 8))
	default:
		return clamp16(int(int32(binary.LittleEndian.Uint32(b)) >> 16))
	}
}

func (d *wavDecoder) Seek(offset int64, whence int) (int64, error) {
	pos := d.target(offset, whence)
	frame := pos / int64(d.channels*bitDepth)
	if _, err := d.file.Seek(d.pcmStart+frame*int64(d.channels*d.srcDepth), io.SeekStart); err != nil {
		return d.pos, err
	}
	pos = frame * int64(d.channels*bitDepth)
	d.moved(pos)
	return pos, nil
}

func (d *wavDecoder) Length() int64     { return d.total }
func (d *wavDecoder) SampleRate() int   { return d.sampleRate }
func (d *wavDecoder) ChannelCount() int { return d.channels }

// FLAC

type flacDecoder struct {
	pcmBuffer
	stream     *flac.Stream
	sampleRate int
	channels   int
	bps        int
}

func newFLACDecoder(f *os.File) (*flacDecoder, error) {
	stream, err := flac.NewSeek(f)
	if err != nil {
		return nil, fmt.Errorf("decoding FLAC: %w", err)
	}
	info := stream.Info
	channels := int(info.NChannels)
	return &flacDecoder{
		pcmBuffer:  pcmBuffer{total: int64(info.NSamples) * int64(channels) * bitDepth},
		stream:     stream,
		sampleRate: int(info.SampleRate),
		channels:   channels,
		bps:        int(info.BitsPerSample),
	}, nil
}

func (d *flacDecoder) Read(p []byte) (int, error) {
	if n, ok := d.drain(p); ok {
		return n, nil
	}
	frame, err := d.stream.ParseNext()
	if err != nil {
		return 0, err
	}

	n := int(frame.Subframes[0].NSamples)
	raw := make([]byte, n*d.channels*bitDepth)
	for i := 0; i < n; i++ {
		for ch := 0; ch < d.channels; ch++ {
			s := int(frame.Subframes[ch].Samples[i])
			switch {
			case d.bps > 16:
				s >>= d.bps - 16
			case d.bps < 16:
				s <<= 16 - d.bps
			}
			binary.LittleEndian.PutUint16(raw[(i*d.channels+ch)*bitDepth:], uint16(clamp16(s)))
		}
	}
	return d.emit(p, raw), nil
}

func (d *flacDecoder) Seek(offset int64, whence int) (int64, error) {
	pos := d.target(offset, whence)
	sample := uint64(pos / int64(d.channels*bitDepth))
	if _, err := d.stream.Seek(sample); err != nil {
		return d.pos, err
	}
	d.moved(pos)
	return pos, nil
}

func (d *flacDecoder) Length() int64     { return d.total }
func (d *flacDecoder) SampleRate() int   { return d.sampleRate }
func (d *flacDecoder) ChannelCount() int { return d.channels }

// Ogg Vorbis

type oggDecoder struct {
	pcmBuffer
	reader     *oggvorbis.Reader
	sampleRate int
	channels   int
}

func newOGGDecoder(f *os.File) (*oggDecoder, error) {
	reader, err := oggvorbis.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decoding OGG: %w", err)
	}
	channels := reader.Channels()
	return &oggDecoder{
		pcmBuffer:  pcmBuffer{total: reader.Length() * int64(channels) * bitDepth},
		reader:     reader,
		sampleRate: reader.SampleRate(),
		channels:   channels,
	}, nil
}

func (d *oggDecoder) Read(p []byte) (int, error) {
	if n, ok := d.drain(p); ok {
		return n, nil
	}
	samples := make([]float32, len(p)/bitDepth+1)
	n, err := d.reader.Read(samples)
	if n == 0 {
		if err == nil {
			err = io.EOF
		}
		return 0, err
	}

	raw := make([]byte, n*bitDepth)
	for i := 0; i < n; i++ {
		s := samples[i]
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		binary.LittleEndian.PutUint16(raw[i*bitDepth:], uint16(int16(s*32767)))
	}
	return d.emit(p, raw), err
}

func (d *oggDecoder) Seek(offset int64, whence int) (int64, error) {
	pos := d.target(offset, whence)
	if err := d.reader.SetPosition(pos / int64(d.channels*bitDepth)); err != nil {
		return d.pos, err
	}
	d.moved(pos)
	return pos, nil
}

func (d *oggDecoder) Length() int64     { return d.total }
func (d *oggDecoder) SampleRate() int   { return d.sampleRate }
func (d *oggDecoder) ChannelCount() int { return d.channels }
