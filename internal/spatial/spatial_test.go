package spatial

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/olivier-w/wavescape/internal/track"
)

func sineTrack(t *testing.T, seconds float64, rate int) *track.Track {
	t.Helper()
	n := int(seconds * float64(rate))
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = float32(0.8 * math.Sin(2*math.Pi*3*float64(i)/float64(rate)))
	}
	tr, err := track.New("sine", [][]float32{samples}, rate)
	if err != nil {
		t.Fatalf("track.New: %v", err)
	}
	return tr
}

func TestBuildCapsPointCount(t *testing.T) {
	tr := sineTrack(t, 10, 44100)
	wf := Build(tr, 1, Options{})
	if len(wf.Points) > TargetPoints {
		t.Fatalf("expected at most %d points, got %d", TargetPoints, len(wf.Points))
	}
	if len(wf.Points) != len(wf.Colors) || len(wf.Points) != len(wf.Weights) {
		t.Fatalf("expected parallel attributes, got %d points %d colors %d weights",
			len(wf.Points), len(wf.Colors), len(wf.Weights))
	}
	if wf.Points[0].X() != -BaseLength/2 {
		t.Fatalf("expected first point at left edge, got %v", wf.Points[0].X())
	}
	last := wf.Points[len(wf.Points)-1].X()
	if last >= BaseLength/2 || last < BaseLength/2-1 {
		t.Fatalf("expected last point just short of right edge, got %v", last)
	}
}

func TestBuildShortTrackKeepsEverySample(t *testing.T) {
	tr, _ := track.New("short", [][]float32{{0.5, -0.5, 0.25}}, 3)
	wf := Build(tr, 1, Options{})
	if wf.Stride != 1 || len(wf.Points) != 3 {
		t.Fatalf("expected stride 1 and 3 points, got stride %d and %d points", wf.Stride, len(wf.Points))
	}
	if wf.Points[1].Y() != -0.5*AmplitudeScale {
		t.Fatalf("expected scaled amplitude, got %v", wf.Points[1].Y())
	}
	if wf.Weights[1] != 0.5 {
		t.Fatalf("expected weight |sample|, got %v", wf.Weights[1])
	}
}

func TestBuildWithoutTrackIsNil(t *testing.T) {
	if wf := Build(nil, 1, Options{}); wf != nil {
		t.Fatal("expected nil waveform for missing track")
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	tr := sineTrack(t, 2, 22050)
	a := Build(tr, 1.5, Options{})
	b := Build(tr, 1.5, Options{})
	if len(a.Points) != len(b.Points) {
		t.Fatalf("expected equal point counts, got %d and %d", len(a.Points), len(b.Points))
	}
	for i := range a.Points {
		if a.Points[i] != b.Points[i] {
			t.Fatalf("point %d differs: %v vs %v", i, a.Points[i], b.Points[i])
		}
	}
}

func TestBuilderSpreadRoundTrip(t *testing.T) {
	tr := sineTrack(t, 1, 8000)
	b := NewBuilder(1, Options{}, nil)
	b.SetTrack(tr)
	original := append([]mgl64.Vec3(nil), b.Current().Points...)

	b.SetSpread(2)
	if b.Current().Length != 2*BaseLength {
		t.Fatalf("expected doubled length, got %v", b.Current().Length)
	}
	b.SetSpread(1)

	restored := b.Current().Points
	if len(restored) != len(original) {
		t.Fatalf("expected %d points, got %d", len(original), len(restored))
	}
	for i := range original {
		if !original[i].ApproxEqual(restored[i]) {
			t.Fatalf("point %d: expected %v, got %v", i, original[i], restored[i])
		}
	}
}

func TestBuilderSkipsUnchangedSpread(t *testing.T) {
	b := NewBuilder(1, Options{}, nil)
	var swaps [][2]*Waveform
	b.OnRebuild(func(old, cur *Waveform) {
		swaps = append(swaps, [2]*Waveform{old, cur})
	})

	b.SetSpread(2)
	if b.Builds() != 0 {
		t.Fatalf("expected no build without a track, got %d", b.Builds())
	}

	b.SetTrack(sineTrack(t, 1, 8000))
	b.SetSpread(2)
	b.SetSpread(2)
	if b.Builds() != 1 {
		t.Fatalf("expected a single build, got %d", b.Builds())
	}

	b.SetSpread(3)
	b.SetSpread(-1)
	b.SetSpread(math.NaN())
	b.SetSpread(math.Inf(1))
	if b.Builds() != 2 || b.Spread() != 3 {
		t.Fatalf("expected 2 builds at spread 3, got %d at %v", b.Builds(), b.Spread())
	}
	if len(swaps) != 2 || swaps[0][0] != nil || swaps[1][0] != swaps[0][1] {
		t.Fatal("expected listeners to receive the replaced waveform")
	}
}

func TestPositionForCentre(t *testing.T) {
	samples := make([]float32, 120*100)
	samples[60*100] = 0.5
	tr, _ := track.New("two minutes", [][]float32{samples}, 100)
	wf := Build(tr, 1, Options{BaseLength: 60})

	m, ok := PositionFor(60*time.Second, tr, wf)
	if !ok {
		t.Fatal("expected marker")
	}
	if m.Progress != 0.5 {
		t.Fatalf("expected progress 0.5, got %v", m.Progress)
	}
	if m.Position.X() != 0 {
		t.Fatalf("expected centre x, got %v", m.Position.X())
	}
	if m.Amplitude != 0.5 || m.Position.Y() != 0.5*AmplitudeScale {
		t.Fatalf("expected raw sample amplitude 0.5, got %v (y %v)", m.Amplitude, m.Position.Y())
	}
	if back := ProgressFor(m.Position, wf); math.Abs(back-0.5) > 1e-12 {
		t.Fatalf("expected round trip to 0.5, got %v", back)
	}
}

func TestPositionForRoundTrip(t *testing.T) {
	tr := sineTrack(t, 10, 44100)
	wf := Build(tr, 1.7, Options{})
	for _, sec := range []float64{0, 0.25, 3.3, 5, 9.99, 10} {
		pos := time.Duration(sec * float64(time.Second))
		m, ok := PositionFor(pos, tr, wf)
		if !ok {
			t.Fatalf("expected marker at %v", pos)
		}
		if back := ProgressFor(m.Position, wf); math.Abs(back-m.Progress) > 1e-9 {
			t.Fatalf("at %v: expected round trip %v, got %v", pos, m.Progress, back)
		}
	}
}

func TestPositionForClampsAndHandlesMissing(t *testing.T) {
	tr := sineTrack(t, 1, 1000)
	wf := Build(tr, 1, Options{})
	m, _ := PositionFor(5*time.Second, tr, wf)
	if m.Progress != 1 || m.Position.X() != wf.Length/2 {
		t.Fatalf("expected clamp to end, got %v at x %v", m.Progress, m.Position.X())
	}
	if _, ok := PositionFor(time.Second, nil, wf); ok {
		t.Fatal("expected no marker without a track")
	}
	if _, ok := PositionFor(time.Second, tr, nil); ok {
		t.Fatal("expected no marker without a waveform")
	}
	if p := ProgressFor(mgl64.Vec3{1000, 0, 0}, wf); p != 1 {
		t.Fatalf("expected clamp to 1, got %v", p)
	}
	if p := ProgressFor(mgl64.Vec3{-1000, 0, 0}, wf); p != 0 {
		t.Fatalf("expected clamp to 0, got %v", p)
	}
}

func TestEndToEndMarkerAtMidpoint(t *testing.T) {
	tr := sineTrack(t, 10, 44100)
	b := NewBuilder(1, Options{}, nil)
	b.SetTrack(tr)
	if got := len(b.Current().Points); got > 8000 {
		t.Fatalf("expected at most 8000 points, got %d", got)
	}
	m, ok := PositionFor(5*time.Second, tr, b.Current())
	if !ok {
		t.Fatal("expected marker")
	}
	if math.Abs(m.Progress-0.5) > 1e-6 {
		t.Fatalf("expected progress 0.5±1e-6, got %v", m.Progress)
	}
}

func TestLabLayoutUsesItsOwnFrame(t *testing.T) {
	lab := DefaultLabLayout(8)
	scan := lab.ScanPosition(0.25)
	if want := lab.Origin.X() - lab.Length/4; scan.X() != want || scan.Z() != lab.Origin.Z() {
		t.Fatalf("expected scan at x %v z %v, got %v", want, lab.Origin.Z(), scan)
	}
	if p := lab.ProgressForScan(scan); math.Abs(p-0.25) > 1e-12 {
		t.Fatalf("expected lab round trip 0.25, got %v", p)
	}
	if idx := lab.StationForScan(scan); idx != 2 {
		t.Fatalf("expected station 2, got %d", idx)
	}
	if idx := lab.StationForScan(lab.ScanPosition(1)); idx != 7 {
		t.Fatalf("expected last station at end, got %d", idx)
	}

	// the waveform frame reads the same point differently
	wf := &Waveform{Length: BaseLength}
	if p := ProgressFor(scan, wf); math.Abs(p-0.25) < 1e-3 {
		t.Fatalf("expected waveform frame to disagree with lab frame, got %v", p)
	}
}

func TestLabStationPositionsAreCentred(t *testing.T) {
	lab := DefaultLabLayout(4)
	first, last := lab.StationPosition(0), lab.StationPosition(3)
	if math.Abs(first.X()+last.X()) > 1e-12 {
		t.Fatalf("expected symmetric stations, got %v and %v", first.X(), last.X())
	}
	if last.X()-first.X() != 3*lab.StationSpacing {
		t.Fatalf("expected spacing %v, got %v", lab.StationSpacing, (last.X()-first.X())/3)
	}
}

func TestHeatColorEndpoints(t *testing.T) {
	if c := HeatColor(0); c != heatDeep {
		t.Fatalf("expected deep colour at 0, got %v", c)
	}
	c := HeatColor(2)
	if math.Abs(c.R-heatRed.R) > 1e-12 || math.Abs(c.G-heatRed.G) > 1e-12 || math.Abs(c.B-heatRed.B) > 1e-12 {
		t.Fatalf("expected red at clamp, got %v", c)
	}
	r, g, b := HSV(0, 1, 1).RGB8()
	if r != 255 || g != 0 || b != 0 {
		t.Fatalf("expected pure red, got %d %d %d", r, g, b)
	}
}
