package viz

import (
	"github.com/olivier-w/wavescape/internal/scene"
)

// Viewport describes the surface pointer coordinates are measured on.
type Viewport struct {
	Width, Height int
	Aspect        float64 // width/height in world units; 0 uses Width/Height
}

func (v Viewport) aspect() float64 {
	if v.Aspect > 0 {
		return v.Aspect
	}
	if v.Height == 0 {
		return 1
	}
	return float64(v.Width) / float64(v.Height)
}

func (e *Engine) ray(vp Viewport, x, y float64) (scene.Ray, bool) {
	r, err := e.camera.Ray(x, y, vp.Width, vp.Height, vp.aspect())
	if err != nil {
		e.log.Debug("unproject failed")
		return scene.Ray{}, false
	}
	return r, true
}

// PointerDown starts a scrub when the pointer is over the active scrub
// surface, otherwise an orbit drag. It reports whether a scrub began.
func (e *Engine) PointerDown(vp Viewport, x, y float64) bool {
	r, ok := e.ray(vp, x, y)
	if !ok {
		return false
	}
	return e.pointerDown(r, x, y)
}

func (e *Engine) pointerDown(r scene.Ray, x, y float64) bool {
	if e.session.PointerDown(r) {
		return true
	}
	e.orbit.Begin(x, y)
	return false
}

// PointerMove continues whichever drag is active.
func (e *Engine) PointerMove(vp Viewport, x, y float64) {
	if !e.session.Dragging() {
		e.orbit.Drag(x, y)
		return
	}
	if r, ok := e.ray(vp, x, y); ok {
		e.session.PointerMove(r)
	}
}

// PointerUp ends any drag and restores orbit controls.
func (e *Engine) PointerUp() {
	e.session.PointerUp()
	e.orbit.End()
}

// Scrubbing reports whether a scrub drag is in progress.
func (e *Engine) Scrubbing() bool { return e.session.Dragging() }
