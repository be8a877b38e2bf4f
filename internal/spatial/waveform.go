// Package spatial turns a decoded track into 3D geometry and maps playback
// time onto it and back.
package spatial

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/olivier-w/wavescape/internal/track"
)

const (
	BaseLength     = 60.0
	AmplitudeScale = 6.0
	TargetPoints   = 8000
)

// Options control waveform geometry. Zero fields take the package defaults.
type Options struct {
	BaseLength     float64
	AmplitudeScale float64
	TargetPoints   int
}

func (o Options) withDefaults() Options {
	if o.BaseLength <= 0 {
		o.BaseLength = BaseLength
	}
	if o.AmplitudeScale <= 0 {
		o.AmplitudeScale = AmplitudeScale
	}
	if o.TargetPoints <= 0 {
		o.TargetPoints = TargetPoints
	}
	return o
}

// Waveform is a decimated polyline of a whole track laid along the x axis,
// centred on the origin.
type Waveform struct {
	Points  []mgl64.Vec3
	Weights []float64 // |sample| per point
	Colors  []Color

	Spread         float64
	Length         float64
	AmplitudeScale float64
	Stride         int
	SampleCount    int
}

// Build decimates the first channel of t into at most opts.TargetPoints
// points. It returns nil for a missing or empty track.
func Build(t *track.Track, spread float64, opts Options) *Waveform {
	n := t.SampleCount()
	if n == 0 {
		return nil
	}
	opts = opts.withDefaults()
	if spread <= 0 {
		spread = 1
	}

	stride := max(1, int(math.Ceil(float64(n)/float64(opts.TargetPoints))))
	length := opts.BaseLength * spread
	count := (n + stride - 1) / stride

	wf := &Waveform{
		Points:         make([]mgl64.Vec3, 0, count),
		Weights:        make([]float64, 0, count),
		Colors:         make([]Color, 0, count),
		Spread:         spread,
		Length:         length,
		AmplitudeScale: opts.AmplitudeScale,
		Stride:         stride,
		SampleCount:    n,
	}

	samples := t.Channels[0]
	for i := 0; i < n; i += stride {
		s := float64(samples[i])
		progress := float64(i) / float64(n)
		wf.Points = append(wf.Points, mgl64.Vec3{
			progress*length - length/2,
			s * opts.AmplitudeScale,
			0,
		})
		w := math.Abs(s)
		wf.Weights = append(wf.Weights, w)
		wf.Colors = append(wf.Colors, HeatColor(w))
	}
	return wf
}

// Bounds returns the axis-aligned extent of the waveform's hit surface:
// the full length along x and the amplitude range along y.
func (w *Waveform) Bounds(depth float64) (lo, hi mgl64.Vec3) {
	half := w.Length / 2
	amp := w.AmplitudeScale
	return mgl64.Vec3{-half, -amp, -depth / 2}, mgl64.Vec3{half, amp, depth / 2}
}
