package scene

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Projection selects the camera projection.
type Projection uint8

const (
	Perspective Projection = iota
	Orthographic
)

func (p Projection) String() string {
	if p == Orthographic {
		return "orthographic"
	}
	return "perspective"
}

// ParseProjection accepts "perspective" or "orthographic" (or "ortho").
func ParseProjection(s string) (Projection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "perspective", "persp":
		return Perspective, nil
	case "orthographic", "ortho":
		return Orthographic, nil
	}
	return Perspective, fmt.Errorf("unknown projection %q", s)
}

// Camera is an orbit camera looking at Target from a point on a sphere.
type Camera struct {
	Target     mgl64.Vec3
	Distance   float64
	Azimuth    float64 // radians around +y, 0 looks down -z
	Elevation  float64 // radians above the xz plane
	FovY       float64 // degrees
	Near, Far  float64
	Projection Projection
}

// DefaultCamera frames a waveform of the default length.
func DefaultCamera() Camera {
	return Camera{
		Distance:  70,
		Elevation: 0.35,
		FovY:      50,
		Near:      0.1,
		Far:       1000,
	}
}

// Eye returns the camera position.
func (c Camera) Eye() mgl64.Vec3 {
	cosEl := math.Cos(c.Elevation)
	offset := mgl64.Vec3{
		c.Distance * cosEl * math.Sin(c.Azimuth),
		c.Distance * math.Sin(c.Elevation),
		c.Distance * cosEl * math.Cos(c.Azimuth),
	}
	return c.Target.Add(offset)
}

// View returns the world-to-camera matrix.
func (c Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye(), c.Target, mgl64.Vec3{0, 1, 0})
}

// Proj returns the projection matrix for the given aspect ratio.
func (c Camera) Proj(aspect float64) mgl64.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	if c.Projection == Orthographic {
		// match the perspective frustum height at the target distance
		h := c.Distance * math.Tan(mgl64.DegToRad(c.FovY)/2)
		return mgl64.Ortho(-h*aspect, h*aspect, -h, h, c.Near, c.Far)
	}
	return mgl64.Perspective(mgl64.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

// Project maps a world point to screen coordinates with the origin at the
// top-left. ok is false for points outside the depth range.
func (c Camera) Project(p mgl64.Vec3, width, height int, aspect float64) (x, y float64, ok bool) {
	return c.Projector(width, height, aspect)(p)
}

// Projector returns Project with the view and projection matrices fixed,
// for projecting many points in one frame.
func (c Camera) Projector(width, height int, aspect float64) func(p mgl64.Vec3) (x, y float64, ok bool) {
	mvp := c.Proj(aspect).Mul4(c.View())
	return func(p mgl64.Vec3) (x, y float64, ok bool) {
		clip := mvp.Mul4x1(p.Vec4(1))
		if clip.W() <= 0 {
			return 0, 0, false
		}
		ndc := clip.Vec3().Mul(1 / clip.W())
		if ndc.Z() < -1 || ndc.Z() > 1 {
			return 0, 0, false
		}
		x = (ndc.X() + 1) / 2 * float64(width)
		y = (1 - ndc.Y()) / 2 * float64(height)
		return x, y, true
	}
}

// Ray returns the world-space ray through screen point (x, y), origin at
// the top-left of a width×height viewport.
func (c Camera) Ray(x, y float64, width, height int, aspect float64) (Ray, error) {
	if width <= 0 || height <= 0 {
		return Ray{}, fmt.Errorf("invalid viewport %dx%d", width, height)
	}
	view := c.View()
	proj := c.Proj(aspect)
	winY := float64(height) - y
	near, err := mgl64.UnProject(mgl64.Vec3{x, winY, 0}, view, proj, 0, 0, width, height)
	if err != nil {
		return Ray{}, fmt.Errorf("unprojecting near plane: %w", err)
	}
	far, err := mgl64.UnProject(mgl64.Vec3{x, winY, 1}, view, proj, 0, 0, width, height)
	if err != nil {
		return Ray{}, fmt.Errorf("unprojecting far plane: %w", err)
	}
	return NewRay(near, far.Sub(near)), nil
}
