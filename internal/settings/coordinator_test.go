package settings

import (
	"math"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/olivier-w/wavescape/internal/scene"
)

type recorder struct {
	calls   int
	changed Field
}

func (r *recorder) fn(_ ViewSettings, changed Field) {
	r.calls++
	r.changed |= changed
}

func TestUpdateNotifiesOnlyAffectedSubscribers(t *testing.T) {
	c := NewCoordinator(Defaults(), nil)
	var waveform, barGeom, modeLayer recorder
	c.Subscribe(FieldSpread, waveform.fn)
	c.Subscribe(FieldBarCount|FieldRadius, barGeom.fn)
	c.Subscribe(FieldMode|FieldToggles, modeLayer.fn)

	c.SetBarCount(32)
	if barGeom.calls != 1 || barGeom.changed != FieldBarCount {
		t.Fatalf("expected bar geometry rebuild, got %d calls (%b)", barGeom.calls, barGeom.changed)
	}
	if waveform.calls != 0 {
		t.Fatal("expected bar count change to leave the waveform alone")
	}

	c.SetSpread(2)
	if waveform.calls != 1 || barGeom.calls != 1 {
		t.Fatalf("expected only the waveform to rebuild, got waveform %d bars %d", waveform.calls, barGeom.calls)
	}

	c.SetSpread(2)
	if waveform.calls != 1 {
		t.Fatal("expected unchanged value to publish nothing")
	}

	c.Toggle(FieldShowScope | FieldLabShowModel)
	if modeLayer.changed != FieldShowScope|FieldLabShowModel {
		t.Fatalf("expected toggle fields, got %b", modeLayer.changed)
	}
	s := c.Snapshot()
	if s.ShowScope || s.LabShowModel {
		t.Fatal("expected toggles to flip off")
	}
}

func TestModesTransitionFreely(t *testing.T) {
	c := NewCoordinator(Defaults(), nil)
	seq := []Mode{ModeDecompositionLab, ModeRealtime, ModeStaticModel, ModeDecompositionLab, ModeStaticModel}
	for _, m := range seq {
		if !c.SetMode(m) {
			t.Fatalf("expected transition to %s", m)
		}
		if c.Snapshot().Mode != m {
			t.Fatalf("expected mode %s, got %s", m, c.Snapshot().Mode)
		}
	}
	if c.CycleMode() != ModeDecompositionLab {
		t.Fatalf("expected cycle from static model to lab, got %s", c.Snapshot().Mode)
	}
	if c.CycleMode() != ModeRealtime {
		t.Fatalf("expected cycle to wrap to realtime, got %s", c.Snapshot().Mode)
	}
}

func TestInvalidValuesAreRejectedAndLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	c := NewCoordinator(Defaults(), zap.New(core))
	var calls recorder
	c.Subscribe(FieldAll, calls.fn)

	before := c.Snapshot()
	if c.SetFFTSize(100) || c.SetFFTSize(50000) || c.SetFFTSize(0) {
		t.Fatal("expected invalid FFT sizes to be rejected")
	}
	if c.SetBarCount(8) || c.SetBarCount(200) {
		t.Fatal("expected out-of-range bar counts to be rejected")
	}
	if c.SetSpread(0) || c.SetRadius(-1) || c.SetMode(Mode(7)) {
		t.Fatal("expected invalid spread, radius and mode to be rejected")
	}
	if c.SetSpread(math.NaN()) || c.SetSpread(math.Inf(1)) || c.SetRadius(math.Inf(1)) || c.SetRadius(math.NaN()) {
		t.Fatal("expected non-finite spread and radius to be rejected")
	}
	if c.Snapshot() != before {
		t.Fatal("expected settings to be unchanged")
	}
	if calls.calls != 0 {
		t.Fatalf("expected no notifications, got %d", calls.calls)
	}
	if logs.Len() != 12 {
		t.Fatalf("expected 12 warnings, got %d", logs.Len())
	}

	if !c.SetFFTSize(4096) || c.Snapshot().FFTSize != 4096 {
		t.Fatal("expected valid FFT size to apply")
	}
}

func TestRejectedSpreadDoesNotLeakIntoLaterUpdates(t *testing.T) {
	c := NewCoordinator(Defaults(), nil)
	var spread recorder
	c.Subscribe(FieldSpread, spread.fn)

	c.SetSpread(math.NaN())
	c.SetBarCount(32)
	c.SetBarCount(48)
	if spread.calls != 0 {
		t.Fatalf("expected no spread notifications on bar count changes, got %d", spread.calls)
	}
	if got := c.Snapshot().Spread; got != Defaults().Spread {
		t.Fatalf("expected spread %v, got %v", Defaults().Spread, got)
	}
}

func TestNotifyPublishesEverything(t *testing.T) {
	c := NewCoordinator(Defaults(), nil)
	var r recorder
	c.Subscribe(FieldProjection, r.fn)
	c.Notify()
	if r.calls != 1 || r.changed != FieldProjection {
		t.Fatalf("expected one full notification, got %d (%b)", r.calls, r.changed)
	}
	c.SetProjection(scene.Orthographic)
	if r.calls != 2 {
		t.Fatalf("expected projection change to notify, got %d", r.calls)
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"realtime":          ModeRealtime,
		"Static":            ModeStaticModel,
		"decomposition-lab": ModeDecompositionLab,
		" lab ":             ModeDecompositionLab,
	}
	for in, want := range cases {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseMode("holo"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
	if ModeCount.String() != "mode(3)" {
		t.Fatalf("expected fallback name, got %q", ModeCount.String())
	}
}
