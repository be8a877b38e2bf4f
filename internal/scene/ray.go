package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray is a half-line from Origin along Dir.
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

// NewRay normalizes dir.
func NewRay(origin, dir mgl64.Vec3) Ray {
	return Ray{Origin: origin, Dir: dir.Normalize()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Transform maps the ray through m. The direction is not renormalized so
// distances stay comparable with the source frame.
func (r Ray) Transform(m mgl64.Mat4) Ray {
	o := m.Mul4x1(r.Origin.Vec4(1)).Vec3()
	d := m.Mul4x1(r.Dir.Vec4(0)).Vec3()
	return Ray{Origin: o, Dir: d}
}

// IntersectBox returns the entry distance of the ray into the box
// [lo, hi]. Faces count as inside, so a ray grazing an edge still hits.
func (r Ray) IntersectBox(lo, hi mgl64.Vec3) (float64, bool) {
	tmin := 0.0
	tmax := math.Inf(1)
	for axis := range 3 {
		o, d := r.Origin[axis], r.Dir[axis]
		if d == 0 {
			if o < lo[axis] || o > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - o) / d
		t2 := (hi[axis] - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}
