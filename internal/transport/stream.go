package transport

import (
	"encoding/binary"
	"io"
	"math"
	"sync"

	"github.com/olivier-w/wavescape/internal/spectral"
	"github.com/olivier-w/wavescape/internal/track"
)

// stream renders a track as interleaved 48 kHz stereo s16le, resampling
// linearly, and copies a mono mixdown of everything it emits to the tap.
type stream struct {
	mu    sync.Mutex
	track *track.Track
	tap   *spectral.Tap
	frame int64 // next output frame
	total int64
	ratio float64 // source samples per output frame
	mono  []float32
}

func newStream(t *track.Track, tap *spectral.Tap) *stream {
	ratio := float64(t.SampleRate) / outputRate
	total := int64(math.Ceil(float64(t.SampleCount()) / ratio))
	return &stream{track: t, tap: tap, total: total, ratio: ratio}
}

func (s *stream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frame >= s.total {
		return 0, io.EOF
	}
	frames := int64(len(p) / frameBytes)
	if frames == 0 {
		return 0, nil
	}
	if remaining := s.total - s.frame; frames > remaining {
		frames = remaining
	}

	if cap(s.mono) < int(frames) {
		s.mono = make([]float32, frames)
	}
	mono := s.mono[:frames]

	for i := int64(0); i < frames; i++ {
		src := float64(s.frame+i) * s.ratio
		left := s.sampleAt(0, src)
		right := left
		if s.track.ChannelCount() > 1 {
			right = s.sampleAt(1, src)
		}
		off := int(i) * frameBytes
		binary.LittleEndian.PutUint16(p[off:], uint16(toInt16(left)))
		binary.LittleEndian.PutUint16(p[off+bytesPerSample:], uint16(toInt16(right)))
		mono[i] = (left + right) / 2
	}
	s.frame += frames

	if s.tap != nil {
		s.tap.Write(mono)
	}
	return int(frames) * frameBytes, nil
}

// sampleAt interpolates channel ch at fractional source index pos.
func (s *stream) sampleAt(ch int, pos float64) float32 {
	data := s.track.Channels[ch]
	i0 := int(pos)
	if i0 >= len(data)-1 {
		return data[len(data)-1]
	}
	frac := float32(pos - float64(i0))
	return data[i0] + (data[i0+1]-data[i0])*frac
}

func toInt16(v float32) int16 {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return int16(v * math.MaxInt16)
}

func (s *stream) Pos() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

func (s *stream) SetPos(frame int64) {
	s.mu.Lock()
	s.frame = min(max(frame, 0), s.total)
	s.mu.Unlock()
}

func (s *stream) Total() int64 { return s.total }
