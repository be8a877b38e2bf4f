// Package scene is the rendering capability the visual layers draw into:
// drawable primitives with transforms and per-vertex colour, plus ray
// picking against named hit surfaces.
package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/olivier-w/wavescape/internal/spatial"
)

// Kind is the primitive type.
type Kind uint8

const (
	KindLine    Kind = iota // polyline through Points
	KindPoints              // one sprite per point
	KindBox                 // solid box spanning Min..Max
	KindSurface             // invisible pickable box spanning Min..Max
)

// Handle identifies a primitive in a scene.
type Handle uint64

// Transform places a primitive in the world.
type Transform struct {
	Position  mgl64.Vec3
	RotationY float64 // radians
	Scale     mgl64.Vec3
}

// Identity is the transform that leaves local coordinates unchanged.
var Identity = Transform{Scale: mgl64.Vec3{1, 1, 1}}

// At returns an unrotated, unscaled transform at p.
func At(p mgl64.Vec3) Transform {
	t := Identity
	t.Position = p
	return t
}

// Matrix returns the local-to-world matrix.
func (t Transform) Matrix() mgl64.Mat4 {
	scale := t.Scale
	if scale == (mgl64.Vec3{}) {
		scale = mgl64.Vec3{1, 1, 1}
	}
	return mgl64.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(mgl64.HomogRotate3DY(t.RotationY)).
		Mul4(mgl64.Scale3D(scale.X(), scale.Y(), scale.Z()))
}

// Primitive is a drawable (or, for KindSurface, pickable) object.
type Primitive struct {
	Kind      Kind
	Surface   string // hit surface name; empty means not pickable
	Points    []mgl64.Vec3
	Colors    []spatial.Color // per point, or a single colour for the whole primitive
	Min, Max  mgl64.Vec3
	Transform Transform
	Visible   bool
}

// ColorAt returns the colour of point i, falling back to the first colour.
func (p *Primitive) ColorAt(i int) spatial.Color {
	switch {
	case i < len(p.Colors):
		return p.Colors[i]
	case len(p.Colors) > 0:
		return p.Colors[0]
	default:
		return spatial.Color{R: 1, G: 1, B: 1}
	}
}

// Scene is implemented by rendering back ends.
type Scene interface {
	Add(p Primitive) Handle
	Remove(h Handle)
	SetTransform(h Handle, t Transform)
	SetPoints(h Handle, pts []mgl64.Vec3)
	SetColors(h Handle, colors []spatial.Color)
	SetVisible(h Handle, visible bool)
	// Pick casts ray against visible primitives registered under surface
	// and returns the nearest world-space hit.
	Pick(ray Ray, surface string) (mgl64.Vec3, bool)
}
