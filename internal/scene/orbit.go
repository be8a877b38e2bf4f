package scene

import "math"

const maxElevation = math.Pi/2 - 0.05

// Orbit turns pointer drags into camera rotation. Scrubbing disables it for
// the length of a drag.
type Orbit struct {
	Camera      *Camera
	Sensitivity float64 // radians per screen unit

	enabled  bool
	dragging bool
	lastX    float64
	lastY    float64
}

// NewOrbit creates enabled orbit controls for cam.
func NewOrbit(cam *Camera) *Orbit {
	return &Orbit{Camera: cam, Sensitivity: 0.02, enabled: true}
}

// SetEnabled turns the controls on or off. Disabling ends any drag.
func (o *Orbit) SetEnabled(enabled bool) {
	o.enabled = enabled
	if !enabled {
		o.dragging = false
	}
}

func (o *Orbit) Enabled() bool { return o.enabled }

// Begin starts a rotation drag at (x, y).
func (o *Orbit) Begin(x, y float64) {
	if !o.enabled {
		return
	}
	o.dragging = true
	o.lastX, o.lastY = x, y
}

// Drag rotates by the pointer delta since the last event.
func (o *Orbit) Drag(x, y float64) {
	if !o.enabled || !o.dragging {
		return
	}
	o.Rotate((x-o.lastX)*o.Sensitivity, (y-o.lastY)*o.Sensitivity)
	o.lastX, o.lastY = x, y
}

// End finishes the drag.
func (o *Orbit) End() { o.dragging = false }

// Rotate adjusts azimuth and elevation, clamping elevation short of the poles.
func (o *Orbit) Rotate(dAzimuth, dElevation float64) {
	if !o.enabled {
		return
	}
	o.Camera.Azimuth -= dAzimuth
	o.Camera.Elevation = math.Max(-maxElevation, math.Min(maxElevation, o.Camera.Elevation+dElevation))
}

// Zoom scales the camera distance by factor.
func (o *Orbit) Zoom(factor float64) {
	if !o.enabled || factor <= 0 {
		return
	}
	o.Camera.Distance = math.Max(5, math.Min(400, o.Camera.Distance*factor))
}
