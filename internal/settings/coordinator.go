package settings

import (
	"math"

	"go.uber.org/zap"

	"github.com/olivier-w/wavescape/internal/scene"
	"github.com/olivier-w/wavescape/internal/spectral"
)

// ChangeFunc receives the new settings and the fields that changed.
type ChangeFunc func(s ViewSettings, changed Field)

type subscriber struct {
	mask Field
	fn   ChangeFunc
}

// Coordinator owns the ViewSettings. Writes go through it so that each
// subscriber hears only about the fields it cares about.
type Coordinator struct {
	cur  ViewSettings
	subs []subscriber
	log  *zap.Logger
}

// NewCoordinator starts from initial.
func NewCoordinator(initial ViewSettings, log *zap.Logger) *Coordinator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Coordinator{cur: initial, log: log}
}

// Snapshot returns a copy of the current settings.
func (c *Coordinator) Snapshot() ViewSettings { return c.cur }

// Subscribe calls fn after any update touching a field in mask.
func (c *Coordinator) Subscribe(mask Field, fn ChangeFunc) {
	c.subs = append(c.subs, subscriber{mask: mask, fn: fn})
}

// Update applies fn to a copy of the settings, then publishes the
// changed fields. It returns the change set.
func (c *Coordinator) Update(fn func(*ViewSettings)) Field {
	next := c.cur
	fn(&next)
	changed := Diff(c.cur, next)
	if changed == 0 {
		return 0
	}
	c.cur = next
	for _, s := range c.subs {
		if s.mask.Has(changed) {
			s.fn(c.cur, changed&s.mask)
		}
	}
	return changed
}

// Notify publishes every field to every subscriber, used once at startup.
func (c *Coordinator) Notify() {
	for _, s := range c.subs {
		s.fn(c.cur, s.mask)
	}
}

// SetMode switches the active mode. Unknown modes are rejected.
func (c *Coordinator) SetMode(m Mode) bool {
	if !m.Valid() {
		c.log.Warn("rejecting mode", zap.Int("requested", int(m)))
		return false
	}
	c.Update(func(s *ViewSettings) { s.Mode = m })
	return true
}

// CycleMode moves to the next mode.
func (c *Coordinator) CycleMode() Mode {
	c.SetMode(c.cur.Mode.Next())
	return c.cur.Mode
}

// SetFFTSize sets the analyser resolution if ValidResolution accepts it.
func (c *Coordinator) SetFFTSize(n int) bool {
	if !spectral.ValidResolution(n) {
		c.log.Warn("rejecting FFT resolution", zap.Int("requested", n), zap.Int("current", c.cur.FFTSize))
		return false
	}
	c.Update(func(s *ViewSettings) { s.FFTSize = n })
	return true
}

// SetBarCount sets the number of bars within [MinBarCount, MaxBarCount].
func (c *Coordinator) SetBarCount(n int) bool {
	if n < MinBarCount || n > MaxBarCount {
		c.log.Warn("rejecting bar count",
			zap.Int("requested", n),
			zap.Int("current", c.cur.BarCount),
			zap.Int("min", MinBarCount),
			zap.Int("max", MaxBarCount))
		return false
	}
	c.Update(func(s *ViewSettings) { s.BarCount = n })
	return true
}

// SetSpread sets the waveform spread factor. It must be positive and finite.
func (c *Coordinator) SetSpread(f float64) bool {
	if !positiveFinite(f) {
		c.log.Warn("rejecting spread factor", zap.Float64("requested", f), zap.Float64("current", c.cur.Spread))
		return false
	}
	c.Update(func(s *ViewSettings) { s.Spread = f })
	return true
}

// SetRadius sets the realtime ring radius. It must be positive and finite.
func (c *Coordinator) SetRadius(r float64) bool {
	if !positiveFinite(r) {
		c.log.Warn("rejecting radius", zap.Float64("requested", r), zap.Float64("current", c.cur.Radius))
		return false
	}
	c.Update(func(s *ViewSettings) { s.Radius = r })
	return true
}

// SetProjection switches the camera projection.
func (c *Coordinator) SetProjection(p scene.Projection) {
	c.Update(func(s *ViewSettings) { s.Projection = p })
}

// Toggle flips the boolean fields named in f.
func (c *Coordinator) Toggle(f Field) {
	c.Update(func(s *ViewSettings) {
		if f.Has(FieldShowBars) {
			s.ShowBars = !s.ShowBars
		}
		if f.Has(FieldShowScope) {
			s.ShowScope = !s.ShowScope
		}
		if f.Has(FieldShowMarker) {
			s.ShowMarker = !s.ShowMarker
		}
		if f.Has(FieldLabShowModel) {
			s.LabShowModel = !s.LabShowModel
		}
		if f.Has(FieldSmoothBars) {
			s.SmoothBars = !s.SmoothBars
		}
	})
}

func positiveFinite(f float64) bool {
	return f > 0 && !math.IsInf(f, 1)
}
