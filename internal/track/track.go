package track

import (
	"fmt"
	"time"
)

// Track is a fully decoded audio file. It is never mutated after decode;
// loading another file produces a new Track.
type Track struct {
	Name       string
	Meta       Metadata
	Channels   [][]float32 // per-channel samples in [-1, 1]
	SampleRate int
	Duration   time.Duration
}

// New builds a Track from deinterleaved channel data. All channels must
// have the same length.
func New(name string, channels [][]float32, sampleRate int) (*Track, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("unsupported sample rate: %d", sampleRate)
	}
	if len(channels) == 0 || len(channels[0]) == 0 {
		return nil, ErrEmptyTrack
	}
	n := len(channels[0])
	for i, ch := range channels[1:] {
		if len(ch) != n {
			return nil, fmt.Errorf("channel %d has %d samples, expected %d", i+1, len(ch), n)
		}
	}

	secs := float64(n) / float64(sampleRate)
	return &Track{
		Name:       name,
		Channels:   channels,
		SampleRate: sampleRate,
		Duration:   time.Duration(secs * float64(time.Second)),
	}, nil
}

// SampleCount returns the number of samples per channel.
func (t *Track) SampleCount() int {
	if t == nil || len(t.Channels) == 0 {
		return 0
	}
	return len(t.Channels[0])
}

// ChannelCount returns the number of channels.
func (t *Track) ChannelCount() int {
	if t == nil {
		return 0
	}
	return len(t.Channels)
}

// Sample returns the first-channel sample at i, clamped to the valid range.
func (t *Track) Sample(i int) float32 {
	n := t.SampleCount()
	if n == 0 {
		return 0
	}
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	return t.Channels[0][i]
}

// Progress converts a playback position into [0, 1].
func (t *Track) Progress(pos time.Duration) float64 {
	if t == nil || t.Duration <= 0 {
		return 0
	}
	p := float64(pos) / float64(t.Duration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Title is the display name: the tag title when present, else the file name.
func (t *Track) Title() string {
	if t.Meta.Title != "" {
		return t.Meta.Title
	}
	return t.Name
}
