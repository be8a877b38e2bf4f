// Package scrub turns pointer rays over the 3D scene into seek commands.
package scrub

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/olivier-w/wavescape/internal/scene"
	"github.com/olivier-w/wavescape/internal/spatial"
)

// Target names a pickable surface and the frame its progress axis lives
// in: Origin is the centre of the axis, Length its extent along x.
type Target struct {
	Surface string
	Origin  mgl64.Vec3
	Length  float64
}

// Picker is the part of the scene the resolver needs.
type Picker interface {
	Pick(ray scene.Ray, surface string) (mgl64.Vec3, bool)
}

// Resolver maps rays to normalized progress.
type Resolver struct {
	picker Picker
}

// NewResolver creates a resolver picking against p.
func NewResolver(p Picker) *Resolver {
	return &Resolver{picker: p}
}

// Resolve casts ray against target. It reports false when nothing is hit,
// in which case playback must be left untouched.
func (r *Resolver) Resolve(ray scene.Ray, target Target) (float64, bool) {
	if target.Surface == "" || target.Length <= 0 {
		return 0, false
	}
	hit, ok := r.picker.Pick(ray, target.Surface)
	if !ok {
		return 0, false
	}
	local := hit.Sub(target.Origin)
	return spatial.ProgressAlong(local.X(), target.Length), true
}
