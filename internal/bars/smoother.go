package bars

import "github.com/charmbracelet/harmonica"

// Smoother eases displayed bar heights toward their targets with one
// critically-damped spring per bar.
type Smoother struct {
	spring harmonica.Spring
	pos    []float64
	vel    []float64
}

// NewSmoother creates a smoother stepping at fps frames per second.
func NewSmoother(fps int, frequency, damping float64) *Smoother {
	return &Smoother{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

// Step advances every bar toward target. A change in length resets the
// springs.
func (s *Smoother) Step(target Set) Set {
	if len(s.pos) != len(target) {
		s.pos = make([]float64, len(target))
		s.vel = make([]float64, len(target))
		copy(s.pos, target)
		return s.pos
	}
	for i, v := range target {
		s.pos[i], s.vel[i] = s.spring.Update(s.pos[i], s.vel[i], v)
	}
	return s.pos
}

// Values returns the current smoothed heights.
func (s *Smoother) Values() Set { return s.pos }
