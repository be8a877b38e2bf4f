// Package transport plays decoded tracks and feeds the spectral tap.
package transport

import (
	"errors"
	"time"

	"github.com/olivier-w/wavescape/internal/track"
)

const (
	outputRate     = 48000
	outputChannels = 2
	bytesPerSample = 2 // 16-bit
	frameBytes     = outputChannels * bytesPerSample
)

// ErrNoTrack is returned when a transport is handed a nil track.
var ErrNoTrack = errors.New("no track")

// Transport is the playback surface the visualization drives.
type Transport interface {
	Play()
	Pause()
	Seek(pos time.Duration)
	Position() time.Duration
	Duration() time.Duration
	Playing() bool
	SetTrack(t *track.Track) error
}

func framesToDuration(frames int64) time.Duration {
	return time.Duration(frames * int64(time.Second) / outputRate)
}

// clampSeekFrame converts pos to an output frame inside [0, total].
func clampSeekFrame(pos time.Duration, total int64) int64 {
	frame := int64(pos.Seconds() * outputRate)
	if frame < 0 {
		frame = 0
	}
	if frame > total {
		frame = total
	}
	return frame
}
