// Package viz runs the per-frame visualization pipeline: it samples the
// analyser, reduces bars, maps playback onto the waveform and keeps the
// scene in step with the view settings.
package viz

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/olivier-w/wavescape/internal/bars"
	"github.com/olivier-w/wavescape/internal/scene"
	"github.com/olivier-w/wavescape/internal/scrub"
	"github.com/olivier-w/wavescape/internal/settings"
	"github.com/olivier-w/wavescape/internal/spatial"
	"github.com/olivier-w/wavescape/internal/spectral"
	"github.com/olivier-w/wavescape/internal/track"
	"github.com/olivier-w/wavescape/internal/transport"
)

const defaultFPS = 30

// StatusFunc receives user-facing status text.
type StatusFunc func(msg string)

// Deps are the components an Engine drives. Scene, Settings, Sampler,
// Loader and Transport are required.
type Deps struct {
	Scene     scene.Scene
	Camera    *scene.Camera
	Settings  *settings.Coordinator
	Sampler   *spectral.Sampler
	Loader    *track.Loader
	Transport transport.Transport
	Status    StatusFunc
	Log       *zap.Logger
	FPS       int
}

// Frame summarizes one tick for the front-end.
type Frame struct {
	Mode      settings.Mode
	Bars      bars.Set
	Progress  float64
	Position  time.Duration
	Duration  time.Duration
	Playing   bool
	Loading   bool
	Scrubbing bool
	Title     string
	Status    string
}

// Engine owns the frame loop state. It is not safe for concurrent use;
// call it from the front-end's update goroutine.
type Engine struct {
	scene     scene.Scene
	camera    *scene.Camera
	orbit     *scene.Orbit
	settings  *settings.Coordinator
	sampler   *spectral.Sampler
	binner    *bars.Binner
	smoother  *bars.Smoother
	builder   *spatial.Builder
	loader    *track.Loader
	transport transport.Transport
	resolver  *scrub.Resolver
	session   *scrub.Session
	lab       spatial.LabLayout
	onStatus  StatusFunc
	log       *zap.Logger

	layers layers
	status string

	bars     bars.Set
	scope    []byte
	marker   spatial.Marker
}

// New wires an engine and applies the current settings to the scene.
func New(d Deps) *Engine {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Camera == nil {
		cam := scene.DefaultCamera()
		d.Camera = &cam
	}
	if d.FPS <= 0 {
		d.FPS = defaultFPS
	}

	s := d.Settings.Snapshot()
	e := &Engine{
		scene:     d.Scene,
		camera:    d.Camera,
		orbit:     scene.NewOrbit(d.Camera),
		settings:  d.Settings,
		sampler:   d.Sampler,
		binner:    bars.NewBinner(s.BarCount),
		smoother:  bars.NewSmoother(d.FPS, 6, 0.9),
		builder:   spatial.NewBuilder(s.Spread, spatial.Options{}, d.Log),
		loader:    d.Loader,
		transport: d.Transport,
		resolver:  scrub.NewResolver(d.Scene),
		lab:       spatial.DefaultLabLayout(s.BarCount),
		onStatus:  d.Status,
		log:       d.Log,
	}
	e.session = scrub.NewSession(e.resolver, e.orbit, d.Transport, e.scrubTarget)
	e.layers = newLayers(d.Scene, e.lab)

	e.builder.OnRebuild(e.onRebuild)
	d.Settings.Subscribe(settings.FieldAll, e.onSettings)
	e.onSettings(s, settings.FieldAll)
	return e
}

// Load starts decoding a file. The current track keeps playing until the
// decode succeeds.
func (e *Engine) Load(name string, data []byte) {
	id := e.loader.Load(name, data)
	e.log.Debug("load requested", zap.Stringer("task", id), zap.String("name", name))
	e.SetStatus(fmt.Sprintf("decoding %s", name))
}

// Tick advances one frame.
func (e *Engine) Tick() Frame {
	e.applyLoads()
	s := e.settings.Snapshot()

	e.sampleBars(s)
	if s.ShowScope && s.Mode == settings.ModeRealtime {
		e.scope = e.sampler.SampleTimeDomain()
	} else {
		e.scope = nil
	}

	pos := e.transport.Position()
	marker, ok := spatial.PositionFor(pos, e.builder.Track(), e.builder.Current())
	if !ok {
		marker = spatial.Marker{}
	}
	e.marker = marker

	e.layers.update(e, s)

	f := Frame{
		Mode:      s.Mode,
		Bars:      e.bars,
		Progress:  marker.Progress,
		Position:  pos,
		Duration:  e.transport.Duration(),
		Playing:   e.transport.Playing(),
		Loading:   e.loader.Pending(),
		Scrubbing: e.session.Dragging(),
		Status:    e.status,
	}
	if t := e.builder.Track(); t != nil {
		f.Title = t.Title()
	}
	return f
}

func (e *Engine) sampleBars(s settings.ViewSettings) {
	if e.binner.Count() == 0 {
		e.bars = nil
		return
	}
	target := e.binner.Reduce(e.sampler.SampleFrequency())
	if s.SmoothBars {
		e.bars = e.smoother.Step(target)
		return
	}
	e.bars = target
}

// applyLoads installs the result of a finished decode. Failures leave the
// previous track in place.
func (e *Engine) applyLoads() {
	res, ok := e.loader.Poll()
	if !ok {
		return
	}
	if res.Err != nil {
		e.log.Warn("decode failed", zap.String("name", res.Name), zap.Error(res.Err))
		e.SetStatus(fmt.Sprintf("could not load %s: %v", res.Name, res.Err))
		return
	}
	if err := e.transport.SetTrack(res.Track); err != nil {
		e.log.Warn("transport rejected track", zap.String("name", res.Name), zap.Error(err))
		e.SetStatus(fmt.Sprintf("could not play %s: %v", res.Name, err))
		return
	}
	e.builder.SetTrack(res.Track)
	e.transport.Play()

	e.log.Info("track loaded",
		zap.String("name", res.Name),
		zap.Duration("duration", res.Track.Duration),
		zap.Int("channels", res.Track.ChannelCount()),
		zap.Int("sample_rate", res.Track.SampleRate))
	e.SetStatus(fmt.Sprintf("playing %s", res.Track.Title()))
}

func (e *Engine) onSettings(s settings.ViewSettings, changed settings.Field) {
	if changed.Has(settings.FieldFFTSize) {
		e.sampler.Configure(s.FFTSize)
	}
	if changed.Has(settings.FieldBarCount) {
		e.binner.SetCount(s.BarCount)
		e.lab.Stations = s.BarCount
		e.layers.resizeBars(e.scene, s.BarCount)
	}
	if changed.Has(settings.FieldSpread) {
		e.builder.SetSpread(s.Spread)
	}
	if changed.Has(settings.FieldProjection) {
		e.camera.Projection = s.Projection
	}
	if changed.Has(settings.FieldMode) && e.session.Dragging() {
		e.session.PointerUp()
	}
}

// onRebuild replaces the waveform geometry, releasing the old primitives
// before the new ones are added.
func (e *Engine) onRebuild(old, cur *spatial.Waveform) {
	e.layers.releaseWaveform(e.scene)
	e.layers.addWaveform(e.scene, cur)
}

func (e *Engine) scrubTarget() (scrub.Target, bool) {
	s := e.settings.Snapshot()
	view := modeViews[s.Mode]
	if view.target == nil {
		return scrub.Target{}, false
	}
	return view.target(e)
}

// SetStatus publishes msg as the current status text.
func (e *Engine) SetStatus(msg string) {
	e.status = msg
	if e.onStatus != nil {
		e.onStatus(msg)
	}
}

// Camera returns the camera the engine's pointer handling orbits.
func (e *Engine) Camera() *scene.Camera { return e.camera }

// Orbit returns the orbit controls.
func (e *Engine) Orbit() *scene.Orbit { return e.orbit }

// Settings returns the coordinator the engine follows.
func (e *Engine) Settings() *settings.Coordinator { return e.settings }

// Waveform returns the live waveform, or nil before a track is loaded.
func (e *Engine) Waveform() *spatial.Waveform { return e.builder.Current() }

// Lab returns the decomposition lab layout.
func (e *Engine) Lab() spatial.LabLayout { return e.lab }
