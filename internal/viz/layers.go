package viz

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/olivier-w/wavescape/internal/scene"
	"github.com/olivier-w/wavescape/internal/scrub"
	"github.com/olivier-w/wavescape/internal/settings"
	"github.com/olivier-w/wavescape/internal/spatial"
)

// Surface names registered for picking.
const (
	SurfaceWaveform = "waveform"
	SurfaceLab      = "lab"
)

const (
	barWidth      = 0.6
	barHeight     = 12.0
	minBarScale   = 0.01
	scopeHeight   = 4.0
	scopePoints   = 256
	surfaceDepth  = 2.0
	labHeight     = 8.0
	labDepth      = 2.0
	scanHeight    = 10.0
	maxByteSample = 255.0
)

type layer uint8

const (
	layerWave layer = iota
	layerWaveSurface
	layerMarker
	layerRing
	layerScope
	layerLabPlane
	layerScan
	layerStations
	layerCount
)

type visibility [layerCount]bool

// modeView is the handler for one mode: which layers it shows, where the
// waveform model sits and what, if anything, can be scrubbed.
type modeView struct {
	visible       func(s settings.ViewSettings) visibility
	waveTransform func(e *Engine) scene.Transform
	target        func(e *Engine) (scrub.Target, bool)
}

// modeViews has one entry per mode, indexed by mode.
var modeViews = [settings.ModeCount]modeView{
	settings.ModeRealtime: {
		visible: func(s settings.ViewSettings) visibility {
			var v visibility
			v[layerRing] = s.ShowBars
			v[layerScope] = s.ShowScope
			return v
		},
		waveTransform: func(*Engine) scene.Transform { return scene.Identity },
	},
	settings.ModeStaticModel: {
		visible: func(s settings.ViewSettings) visibility {
			var v visibility
			v[layerWave] = true
			v[layerWaveSurface] = true
			v[layerMarker] = s.ShowMarker
			return v
		},
		waveTransform: func(*Engine) scene.Transform { return scene.Identity },
		target: func(e *Engine) (scrub.Target, bool) {
			wf := e.builder.Current()
			if wf == nil {
				return scrub.Target{}, false
			}
			return scrub.Target{Surface: SurfaceWaveform, Length: wf.Length}, true
		},
	},
	settings.ModeDecompositionLab: {
		visible: func(s settings.ViewSettings) visibility {
			var v visibility
			v[layerLabPlane] = true
			v[layerScan] = true
			v[layerStations] = s.ShowBars
			v[layerWave] = s.LabShowModel
			return v
		},
		// The model is stretched onto the time plane so its x matches the scan head.
		waveTransform: func(e *Engine) scene.Transform {
			t := scene.At(e.lab.Origin)
			if wf := e.builder.Current(); wf != nil && wf.Length > 0 {
				t.Scale = mgl64.Vec3{e.lab.Length / wf.Length, 1, 1}
			}
			return t
		},
		target: func(e *Engine) (scrub.Target, bool) {
			if e.builder.Current() == nil {
				return scrub.Target{}, false
			}
			return scrub.Target{Surface: SurfaceLab, Origin: e.lab.Origin, Length: e.lab.Length}, true
		},
	},
}

// layers holds the scene handles the engine maintains.
type layers struct {
	wave        scene.Handle
	waveSurface scene.Handle
	hasWave     bool

	marker   scene.Handle
	scope    scene.Handle
	labPlane scene.Handle
	scan     scene.Handle

	ring     []scene.Handle
	stations []scene.Handle
}

func newLayers(sc scene.Scene, lab spatial.LabLayout) layers {
	var l layers
	l.marker = sc.Add(scene.Primitive{Kind: scene.KindPoints, Points: []mgl64.Vec3{{}}})
	l.scope = sc.Add(scene.Primitive{Kind: scene.KindLine, Colors: []spatial.Color{spatial.HSV(0.5, 0.7, 1)}})

	lo, hi := lab.Bounds(labHeight, labDepth)
	l.labPlane = sc.Add(scene.Primitive{
		Kind:    scene.KindSurface,
		Surface: SurfaceLab,
		Min:     lo,
		Max:     hi,
		Colors:  []spatial.Color{spatial.HSV(0.6, 0.3, 0.35)},
	})
	l.scan = sc.Add(scene.Primitive{Kind: scene.KindLine, Colors: []spatial.Color{{R: 1, G: 1, B: 1}}})
	return l
}

func barPrimitive() scene.Primitive {
	return scene.Primitive{
		Kind: scene.KindBox,
		Min:  mgl64.Vec3{-barWidth / 2, 0, -barWidth / 2},
		Max:  mgl64.Vec3{barWidth / 2, 1, barWidth / 2},
	}
}

// resizeBars recreates the ring and station bars for count.
func (l *layers) resizeBars(sc scene.Scene, count int) {
	for _, h := range l.ring {
		sc.Remove(h)
	}
	for _, h := range l.stations {
		sc.Remove(h)
	}
	l.ring = l.ring[:0]
	l.stations = l.stations[:0]
	for range count {
		l.ring = append(l.ring, sc.Add(barPrimitive()))
		l.stations = append(l.stations, sc.Add(barPrimitive()))
	}
}

func (l *layers) releaseWaveform(sc scene.Scene) {
	if !l.hasWave {
		return
	}
	sc.Remove(l.wave)
	sc.Remove(l.waveSurface)
	l.hasWave = false
}

func (l *layers) addWaveform(sc scene.Scene, wf *spatial.Waveform) {
	if wf == nil {
		return
	}
	l.wave = sc.Add(scene.Primitive{Kind: scene.KindLine, Points: wf.Points, Colors: wf.Colors})
	lo, hi := wf.Bounds(surfaceDepth)
	l.waveSurface = sc.Add(scene.Primitive{Kind: scene.KindSurface, Surface: SurfaceWaveform, Min: lo, Max: hi})
	l.hasWave = true
}

// update pushes one frame of state into the scene.
func (l *layers) update(e *Engine, s settings.ViewSettings) {
	sc := e.scene
	view := modeViews[s.Mode]
	vis := view.visible(s)

	if l.hasWave {
		sc.SetVisible(l.wave, vis[layerWave])
		sc.SetVisible(l.waveSurface, vis[layerWaveSurface])
		sc.SetTransform(l.wave, view.waveTransform(e))
	}

	sc.SetVisible(l.marker, vis[layerMarker] && l.hasWave)
	if l.hasWave {
		sc.SetPoints(l.marker, []mgl64.Vec3{e.marker.Position})
		sc.SetColors(l.marker, []spatial.Color{spatial.HeatColor(math.Abs(e.marker.Amplitude) * 2)})
	}

	sc.SetVisible(l.scope, vis[layerScope] && len(e.scope) > 0)
	if len(e.scope) > 0 {
		sc.SetPoints(l.scope, scopeLine(e.scope, s.Radius))
	}

	l.updateRing(sc, e.bars, s.Radius, vis[layerRing])

	sc.SetVisible(l.labPlane, vis[layerLabPlane])
	sc.SetVisible(l.scan, vis[layerScan])
	scan := e.lab.ScanPosition(e.marker.Progress)
	sc.SetPoints(l.scan, []mgl64.Vec3{
		scan.Add(mgl64.Vec3{0, -scanHeight / 2, 0}),
		scan.Add(mgl64.Vec3{0, scanHeight / 2, 0}),
	})
	l.updateStations(sc, e.bars, e.lab, e.lab.StationForScan(scan), vis[layerStations])
}

func barScale(v float64) mgl64.Vec3 {
	return mgl64.Vec3{1, max(v/maxByteSample*barHeight, minBarScale), 1}
}

func (l *layers) updateRing(sc scene.Scene, values []float64, radius float64, visible bool) {
	n := len(l.ring)
	for i, h := range l.ring {
		sc.SetVisible(h, visible && i < len(values))
		if !visible || i >= len(values) {
			continue
		}
		angle := 2 * math.Pi * float64(i) / float64(n)
		sc.SetTransform(h, scene.Transform{
			Position:  mgl64.Vec3{radius * math.Cos(angle), 0, radius * math.Sin(angle)},
			RotationY: -angle,
			Scale:     barScale(values[i]),
		})
		sc.SetColors(h, []spatial.Color{spatial.HeatColor(values[i] / maxByteSample)})
	}
}

func (l *layers) updateStations(sc scene.Scene, values []float64, lab spatial.LabLayout, active int, visible bool) {
	for i, h := range l.stations {
		sc.SetVisible(h, visible && i < len(values))
		if !visible || i >= len(values) {
			continue
		}
		t := scene.At(lab.StationPosition(i))
		t.Scale = barScale(values[i])
		sc.SetTransform(h, t)

		c := spatial.HSV(float64(i)/float64(len(l.stations))*0.8, 0.8, 0.9)
		if i == active {
			c = spatial.Color{R: 1, G: 1, B: 1}
		}
		sc.SetColors(h, []spatial.Color{c})
	}
}

// scopeLine lays a time-domain snapshot across the ring's diameter.
func scopeLine(samples []byte, radius float64) []mgl64.Vec3 {
	n := min(len(samples), scopePoints)
	if n < 2 {
		return nil
	}
	pts := make([]mgl64.Vec3, n)
	for i := range pts {
		b := samples[i*len(samples)/n]
		x := (float64(i)/float64(n-1))*2*radius - radius
		y := (float64(b) - 128) / 128 * scopeHeight
		pts[i] = mgl64.Vec3{x, y, 0}
	}
	return pts
}
