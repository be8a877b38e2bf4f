package track

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/aiff"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

// Decoder turns encoded file contents into deinterleaved float32 channels.
// Implementations check ctx between chunks so a superseded load stops early.
type Decoder interface {
	Decode(ctx context.Context, r io.ReadSeeker) (channels [][]float32, sampleRate int, err error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(ctx context.Context, r io.ReadSeeker) ([][]float32, int, error)

func (f DecoderFunc) Decode(ctx context.Context, r io.ReadSeeker) ([][]float32, int, error) {
	return f(ctx, r)
}

// Registry maps formats to decoders.
type Registry struct {
	codecs map[Format]Decoder
	mu     sync.Mutex
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[Format]Decoder)}
}

// DefaultRegistry returns a registry with every built-in decoder.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(FormatMP3, DecoderFunc(decodeMP3))
	r.Register(FormatWAV, DecoderFunc(decodeWAV))
	r.Register(FormatAIFF, DecoderFunc(decodeAIFF))
	r.Register(FormatOGG, DecoderFunc(decodeOGG))
	r.Register(FormatFLAC, DecoderFunc(decodeFLAC))
	return r
}

func (r *Registry) Register(f Format, d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codecs[f] = d
}

func (r *Registry) Get(f Format) (Decoder, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.codecs[f]
	return d, ok
}

// Decode detects the format of data and decodes it into a Track.
func (r *Registry) Decode(ctx context.Context, name string, data []byte) (*Track, error) {
	format := DetectFormat(name, data)
	dec, ok := r.Get(format)
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrUnsupportedFormat)
	}

	channels, rate, err := dec.Decode(ctx, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", format, err)
	}

	t, err := New(name, channels, rate)
	if err != nil {
		return nil, err
	}
	t.Meta = ReadMetadata(name, data)
	return t, nil
}

const decodeChunk = 16384

// --- MP3 ---

func decodeMP3(ctx context.Context, r io.ReadSeeker) ([][]float32, int, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, 0, err
	}

	// go-mp3 always yields 16-bit little-endian stereo
	frames := int(dec.Length() / 4)
	left := make([]float32, 0, frames)
	right := make([]float32, 0, frames)

	buf := make([]byte, decodeChunk)
	for {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		n, err := io.ReadFull(dec, buf)
		n -= n % 4
		for i := 0; i < n; i += 4 {
			left = append(left, float32(int16(binary.LittleEndian.Uint16(buf[i:])))/32768.0)
			right = append(right, float32(int16(binary.LittleEndian.Uint16(buf[i+2:])))/32768.0)
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return nil, 0, err
		}
	}
	return [][]float32{left, right}, dec.SampleRate(), nil
}

// --- WAV / AIFF (go-audio) ---

func decodeWAV(ctx context.Context, r io.ReadSeeker) ([][]float32, int, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid WAV file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("reading WAV PCM data: %w", err)
	}
	// 8-bit WAV is unsigned
	return intBufferChannels(ctx, buf, int(dec.BitDepth), int(dec.BitDepth) == 8)
}

func decodeAIFF(ctx context.Context, r io.ReadSeeker) ([][]float32, int, error) {
	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid AIFF file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("reading AIFF PCM data: %w", err)
	}
	return intBufferChannels(ctx, buf, int(dec.BitDepth), false)
}

func intBufferChannels(ctx context.Context, buf *goaudio.IntBuffer, bitDepth int, unsigned bool) ([][]float32, int, error) {
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, 0, fmt.Errorf("missing PCM format")
	}
	if bitDepth < 8 || bitDepth > 32 {
		return nil, 0, fmt.Errorf("unsupported bit depth: %d", bitDepth)
	}

	nch := buf.Format.NumChannels
	frames := len(buf.Data) / nch
	channels := make([][]float32, nch)
	for c := range channels {
		channels[c] = make([]float32, frames)
	}

	scale := float32(int64(1) << (bitDepth - 1))
	for f := range frames {
		if f%decodeChunk == 0 {
			if err := ctx.Err(); err != nil {
				return nil, 0, err
			}
		}
		base := f * nch
		for c := range nch {
			v := buf.Data[base+c]
			if unsigned {
				v -= 128
			}
			channels[c][f] = float32(v) / scale
		}
	}
	return channels, buf.Format.SampleRate, nil
}

// --- Ogg Vorbis ---

func decodeOGG(ctx context.Context, r io.ReadSeeker) ([][]float32, int, error) {
	reader, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, 0, fmt.Errorf("decoding OGG: %w", err)
	}

	nch := reader.Channels()
	channels := make([][]float32, nch)
	if total := reader.Length(); total > 0 {
		for c := range channels {
			channels[c] = make([]float32, 0, total)
		}
	}

	// Read returns interleaved samples
	samples := make([]float32, decodeChunk*nch)
	for {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		n, err := reader.Read(samples)
		n -= n % nch
		for i := 0; i < n; i += nch {
			for c := range nch {
				channels[c] = append(channels[c], samples[i+c])
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, err
		}
	}
	return channels, reader.SampleRate(), nil
}

// --- FLAC ---

func decodeFLAC(ctx context.Context, r io.ReadSeeker) ([][]float32, int, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, 0, fmt.Errorf("decoding FLAC: %w", err)
	}
	defer stream.Close()

	info := stream.Info
	nch := int(info.NChannels)
	bps := int(info.BitsPerSample)
	if bps < 4 || bps > 32 {
		return nil, 0, fmt.Errorf("unsupported bit depth: %d", bps)
	}
	scale := float32(int64(1) << (bps - 1))

	channels := make([][]float32, nch)
	for c := range channels {
		channels[c] = make([]float32, 0, info.NSamples)
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, err
		}
		for c := range nch {
			for _, s := range frame.Subframes[c].Samples[:frame.Subframes[c].NSamples] {
				channels[c] = append(channels[c], float32(s)/scale)
			}
		}
	}
	return channels, int(info.SampleRate), nil
}
