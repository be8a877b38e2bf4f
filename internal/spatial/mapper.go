package spatial

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/olivier-w/wavescape/internal/track"
)

// Marker is the per-frame playback position on the waveform.
type Marker struct {
	Progress  float64
	Position  mgl64.Vec3
	Amplitude float64 // raw sample at the position, not the decimated one
}

// PositionFor maps a playback time onto the waveform. It reports false
// when either the track or the waveform is missing.
func PositionFor(current time.Duration, t *track.Track, wf *Waveform) (Marker, bool) {
	if t == nil || wf == nil || t.SampleCount() == 0 {
		return Marker{}, false
	}
	progress := t.Progress(current)
	idx := int(progress * float64(t.SampleCount()))
	amp := float64(t.Sample(idx))
	return Marker{
		Progress:  progress,
		Position:  mgl64.Vec3{XFor(progress, wf.Length), amp * wf.AmplitudeScale, 0},
		Amplitude: amp,
	}, true
}

// ProgressFor is the inverse of PositionFor along x, clamped to [0, 1].
func ProgressFor(p mgl64.Vec3, wf *Waveform) float64 {
	if wf == nil {
		return 0
	}
	return ProgressAlong(p.X(), wf.Length)
}

// XFor places progress on a centred axis of the given length.
func XFor(progress, length float64) float64 {
	return progress*length - length/2
}

// ProgressAlong inverts XFor, clamped to [0, 1].
func ProgressAlong(x, length float64) float64 {
	if length <= 0 {
		return 0
	}
	return clamp01((x + length/2) / length)
}
