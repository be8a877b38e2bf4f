package scrub

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/olivier-w/wavescape/internal/scene"
	"github.com/olivier-w/wavescape/internal/spatial"
)

func waveScene(length float64) *scene.Graph {
	g := scene.NewGraph()
	g.Add(scene.Primitive{
		Kind:      scene.KindSurface,
		Surface:   "waveform",
		Min:       mgl64.Vec3{-length / 2, -6, -1},
		Max:       mgl64.Vec3{length / 2, 6, 1},
		Transform: scene.Identity,
		Visible:   true,
	})
	return g
}

func rayAt(x float64) scene.Ray {
	return scene.NewRay(mgl64.Vec3{x, 0, 40}, mgl64.Vec3{0, 0, -1})
}

var waveTarget = Target{Surface: "waveform", Length: spatial.BaseLength}

func TestResolveEdgesAndMiss(t *testing.T) {
	r := NewResolver(waveScene(spatial.BaseLength))

	if p, ok := r.Resolve(rayAt(-spatial.BaseLength/2), waveTarget); !ok || p != 0 {
		t.Fatalf("expected left edge to resolve to 0, got %v %v", p, ok)
	}
	if p, ok := r.Resolve(rayAt(spatial.BaseLength/2), waveTarget); !ok || p != 1 {
		t.Fatalf("expected right edge to resolve to 1, got %v %v", p, ok)
	}
	if p, ok := r.Resolve(rayAt(0), waveTarget); !ok || p != 0.5 {
		t.Fatalf("expected centre to resolve to 0.5, got %v %v", p, ok)
	}
	if _, ok := r.Resolve(rayAt(spatial.BaseLength), waveTarget); ok {
		t.Fatal("expected miss outside the surface")
	}
	if _, ok := r.Resolve(rayAt(0), Target{Surface: "lab", Length: 80}); ok {
		t.Fatal("expected miss against an absent surface")
	}
}

func TestResolveUsesTargetFrame(t *testing.T) {
	lab := spatial.DefaultLabLayout(16)
	g := scene.NewGraph()
	lo, hi := lab.Bounds(4, 8)
	g.Add(scene.Primitive{Kind: scene.KindSurface, Surface: "lab", Min: lo, Max: hi, Visible: true})

	r := NewResolver(g)
	scan := lab.ScanPosition(0.75)
	ray := scene.NewRay(scan.Add(mgl64.Vec3{0, 30, 0}), mgl64.Vec3{0, -1, 0})
	p, ok := r.Resolve(ray, Target{Surface: "lab", Origin: lab.Origin, Length: lab.Length})
	if !ok || p != 0.75 {
		t.Fatalf("expected lab scrub 0.75, got %v %v", p, ok)
	}
}

type fakeControls struct {
	enabled bool
	calls   int
}

func (c *fakeControls) SetEnabled(enabled bool) {
	c.enabled = enabled
	c.calls++
}

type fakeSeeker struct {
	duration time.Duration
	seeks    []time.Duration
}

func (s *fakeSeeker) Seek(pos time.Duration)   { s.seeks = append(s.seeks, pos) }
func (s *fakeSeeker) Duration() time.Duration { return s.duration }

func newSession(active *bool) (*Session, *fakeControls, *fakeSeeker) {
	controls := &fakeControls{enabled: true}
	seeker := &fakeSeeker{duration: 120 * time.Second}
	s := NewSession(NewResolver(waveScene(spatial.BaseLength)), controls, seeker, func() (Target, bool) {
		return waveTarget, *active
	})
	return s, controls, seeker
}

func TestDragSeeksAndSuspendsOrbit(t *testing.T) {
	active := true
	s, controls, seeker := newSession(&active)

	if !s.PointerDown(rayAt(0)) {
		t.Fatal("expected drag to start on a hit")
	}
	if controls.enabled || !s.Dragging() {
		t.Fatal("expected orbit disabled while dragging")
	}
	s.PointerMove(rayAt(15))
	s.PointerMove(rayAt(500)) // off the surface: no seek
	s.PointerMove(rayAt(-30))
	s.PointerUp()

	want := []time.Duration{60 * time.Second, 90 * time.Second, 0}
	if len(seeker.seeks) != len(want) {
		t.Fatalf("expected %d seeks, got %v", len(want), seeker.seeks)
	}
	for i := range want {
		if seeker.seeks[i] != want[i] {
			t.Fatalf("seek %d: expected %v, got %v", i, want[i], seeker.seeks[i])
		}
	}
	if !controls.enabled || s.Dragging() {
		t.Fatal("expected orbit restored after pointer up")
	}
}

func TestPointerDownMissLeavesPlaybackAlone(t *testing.T) {
	active := true
	s, controls, seeker := newSession(&active)

	if s.PointerDown(rayAt(100)) {
		t.Fatal("expected no drag on a miss")
	}
	if s.PointerMove(rayAt(0)) {
		t.Fatal("expected move without a drag to do nothing")
	}
	if len(seeker.seeks) != 0 || controls.calls != 0 {
		t.Fatalf("expected no seeks or control changes, got %v and %d", seeker.seeks, controls.calls)
	}

	s.PointerUp()
	if !controls.enabled {
		t.Fatal("expected pointer up to enable controls unconditionally")
	}
}

func TestNoTargetInActiveView(t *testing.T) {
	active := false
	s, _, seeker := newSession(&active)
	if s.PointerDown(rayAt(0)) {
		t.Fatal("expected no drag when the view has no scrub surface")
	}
	if len(seeker.seeks) != 0 {
		t.Fatal("expected no seek")
	}
}
