package transport

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/olivier-w/wavescape/internal/spectral"
	"github.com/olivier-w/wavescape/internal/track"
)

const defaultVolume = 0.8

// Player renders the current track through a Sink.
type Player struct {
	mu      sync.Mutex
	newSink SinkFunc
	sink    Sink
	stream  *stream
	tap     *spectral.Tap
	volume  float64
	playing bool
	log     *zap.Logger
}

// NewPlayer creates a player. Rendered audio is mirrored into tap.
func NewPlayer(newSink SinkFunc, tap *spectral.Tap, log *zap.Logger) *Player {
	if log == nil {
		log = zap.NewNop()
	}
	return &Player{newSink: newSink, tap: tap, volume: defaultVolume, log: log}
}

// SetTrack replaces the current track. Playback stops at position zero.
func (p *Player) SetTrack(t *track.Track) error {
	if t == nil {
		return ErrNoTrack
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sink != nil {
		p.sink.Pause()
	}
	if p.tap != nil {
		p.tap.Clear()
	}
	p.stream = newStream(t, p.tap)
	p.sink = p.newSink(p.stream)
	p.sink.SetVolume(p.volume)
	p.playing = false

	p.log.Debug("transport track set",
		zap.String("track", t.Name),
		zap.Int("sample_rate", t.SampleRate),
		zap.Int64("frames", p.stream.Total()))
	return nil
}

// Play starts or resumes playback. A finished track restarts from zero.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stream == nil || p.playing && !p.endedLocked() {
		return
	}
	if p.endedLocked() {
		p.resetSinkLocked(0)
	}
	p.sink.Play()
	p.playing = true
}

// Pause halts playback, keeping the position.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stream == nil || !p.playing {
		return
	}
	p.sink.Pause()
	p.playing = false
}

// TogglePause toggles between play and pause.
func (p *Player) TogglePause() {
	if p.Playing() {
		p.Pause()
	} else {
		p.Play()
	}
}

// Seek moves playback to pos, clamped to the track.
func (p *Player) Seek(pos time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stream == nil {
		return
	}
	p.resetSinkLocked(clampSeekFrame(pos, p.stream.Total()))
	if p.playing {
		p.sink.Play()
	}
}

// resetSinkLocked moves the stream and recreates the sink to flush
// whatever it had buffered.
func (p *Player) resetSinkLocked(frame int64) {
	p.sink.Pause()
	p.stream.SetPos(frame)
	p.sink = p.newSink(p.stream)
	p.sink.SetVolume(p.volume)
}

// Position returns the audible position: frames handed to the sink minus
// what it still holds in its buffer.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stream == nil {
		return 0
	}
	frame := p.stream.Pos() - int64(p.sink.BufferedSize()/frameBytes)
	if frame < 0 {
		frame = 0
	}
	return framesToDuration(frame)
}

// Duration returns the length of the current track.
func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stream == nil {
		return 0
	}
	return framesToDuration(p.stream.Total())
}

// Playing reports whether audio is advancing.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stream != nil && p.playing && !p.endedLocked()
}

func (p *Player) endedLocked() bool {
	return p.stream.Pos() >= p.stream.Total() && p.sink.BufferedSize() == 0
}

// Volume returns current volume (0.0 to 1.0).
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// SetVolume sets volume (clamped to 0.0 - 1.0).
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.volume = min(max(v, 0), 1)
	if p.sink != nil {
		p.sink.SetVolume(p.volume)
	}
}

// Close stops playback.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sink != nil {
		p.sink.Pause()
	}
	p.playing = false
}
