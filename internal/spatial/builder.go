package spatial

import (
	"math"

	"go.uber.org/zap"

	"github.com/olivier-w/wavescape/internal/track"
)

// RebuildFunc is called after a new waveform replaces old. old is nil on
// the first build; listeners must release any geometry made for it.
type RebuildFunc func(old, cur *Waveform)

// Builder owns the current waveform for the loaded track. Every rebuild
// creates a new Waveform and swaps it in whole.
type Builder struct {
	opts    Options
	log     *zap.Logger
	track   *track.Track
	spread  float64
	current *Waveform
	builds  int

	listeners []RebuildFunc
}

// NewBuilder creates a builder with the given starting spread.
func NewBuilder(spread float64, opts Options, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	if spread <= 0 {
		spread = 1
	}
	return &Builder{opts: opts.withDefaults(), spread: spread, log: log}
}

// OnRebuild registers fn to run after each rebuild.
func (b *Builder) OnRebuild(fn RebuildFunc) {
	b.listeners = append(b.listeners, fn)
}

// SetTrack replaces the source track and rebuilds.
func (b *Builder) SetTrack(t *track.Track) {
	b.track = t
	b.Rebuild()
}

// SetSpread rebuilds only when factor differs from the current spread.
func (b *Builder) SetSpread(factor float64) {
	if !(factor > 0) || math.IsInf(factor, 1) {
		b.log.Warn("rejecting spread factor", zap.Float64("requested", factor), zap.Float64("current", b.spread))
		return
	}
	if factor == b.spread {
		return
	}
	b.spread = factor
	b.Rebuild()
}

// Rebuild regenerates the waveform. Without a track this is a no-op.
func (b *Builder) Rebuild() {
	if b.track == nil {
		return
	}
	next := Build(b.track, b.spread, b.opts)
	if next == nil {
		return
	}
	old := b.current
	b.current = next
	b.builds++
	b.log.Debug("waveform rebuilt",
		zap.Int("points", len(next.Points)),
		zap.Int("stride", next.Stride),
		zap.Float64("spread", next.Spread))
	for _, fn := range b.listeners {
		fn(old, next)
	}
}

// Current returns the live waveform, or nil before the first build.
func (b *Builder) Current() *Waveform { return b.current }

// Track returns the source track.
func (b *Builder) Track() *track.Track { return b.track }

// Spread returns the active spread factor.
func (b *Builder) Spread() float64 { return b.spread }

// Builds counts completed rebuilds.
func (b *Builder) Builds() int { return b.builds }
