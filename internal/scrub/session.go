package scrub

import (
	"time"

	"github.com/olivier-w/wavescape/internal/scene"
)

// Controls is the ambient camera interaction a drag suspends.
type Controls interface {
	SetEnabled(enabled bool)
}

// Seeker receives seek commands.
type Seeker interface {
	Seek(pos time.Duration)
	Duration() time.Duration
}

// TargetFunc returns the surface currently eligible for scrubbing, or false
// when the active view has none.
type TargetFunc func() (Target, bool)

// Session tracks one pointer drag across the scene.
type Session struct {
	resolver *Resolver
	controls Controls
	seeker   Seeker
	target   TargetFunc

	dragging bool
	last     float64
}

// NewSession wires a resolver to the camera controls and transport.
func NewSession(r *Resolver, controls Controls, seeker Seeker, target TargetFunc) *Session {
	return &Session{resolver: r, controls: controls, seeker: seeker, target: target}
}

// PointerDown starts a drag if ray hits the active surface, seeking
// immediately. It reports whether a drag began.
func (s *Session) PointerDown(ray scene.Ray) bool {
	progress, ok := s.resolve(ray)
	if !ok {
		return false
	}
	s.dragging = true
	if s.controls != nil {
		s.controls.SetEnabled(false)
	}
	s.seek(progress)
	return true
}

// PointerMove seeks on every successful resolution while dragging.
func (s *Session) PointerMove(ray scene.Ray) bool {
	if !s.dragging {
		return false
	}
	progress, ok := s.resolve(ray)
	if !ok {
		return false
	}
	s.seek(progress)
	return true
}

// PointerUp ends the drag and always restores camera interaction.
func (s *Session) PointerUp() {
	s.dragging = false
	if s.controls != nil {
		s.controls.SetEnabled(true)
	}
}

// Dragging reports whether a drag is in progress.
func (s *Session) Dragging() bool { return s.dragging }

// LastProgress returns the progress of the most recent seek.
func (s *Session) LastProgress() float64 { return s.last }

func (s *Session) resolve(ray scene.Ray) (float64, bool) {
	if s.target == nil {
		return 0, false
	}
	target, ok := s.target()
	if !ok {
		return 0, false
	}
	return s.resolver.Resolve(ray, target)
}

func (s *Session) seek(progress float64) {
	s.last = progress
	d := s.seeker.Duration()
	if d <= 0 {
		return
	}
	s.seeker.Seek(time.Duration(progress * float64(d)))
}
