package spectral

import (
	"math"
	"testing"
)

func TestTapLatestOrdersAndPads(t *testing.T) {
	tap := NewTap(4)
	tap.Write([]float32{1, 2})

	dst := make([]float32, 3)
	tap.Latest(dst)
	if dst[0] != 0 || dst[1] != 1 || dst[2] != 2 {
		t.Fatalf("expected zero-padded [0 1 2], got %v", dst)
	}

	tap.Write([]float32{3, 4, 5})
	tap.Latest(dst)
	if dst[0] != 3 || dst[1] != 4 || dst[2] != 5 {
		t.Fatalf("expected most recent [3 4 5], got %v", dst)
	}

	tap.Clear()
	tap.Latest(dst)
	if dst[0] != 0 || dst[2] != 0 {
		t.Fatalf("expected cleared tap to read zeros, got %v", dst)
	}
}

func TestAnalyserPeaksAtToneBin(t *testing.T) {
	const size = 256
	const bin = 16
	tap := NewTap(size)
	tone := make([]float32, size)
	for i := range tone {
		tone[i] = float32(math.Sin(2 * math.Pi * bin * float64(i) / size))
	}
	tap.Write(tone)

	a := NewAnalyser(tap)
	a.SetFFTSize(size)
	out := make([]byte, size/2)
	// let the smoothing settle
	for range 40 {
		a.FrequencyBytes(out)
	}

	if out[bin] != 255 {
		t.Fatalf("expected full-scale peak at bin %d, got %d", bin, out[bin])
	}
	for i, v := range out {
		if (i < bin-3 || i > bin+3) && v > 10 {
			t.Fatalf("expected bin %d away from the tone to stay low, got %d", i, v)
		}
	}
}

func TestAnalyserTimeDomainCentresSilence(t *testing.T) {
	a := NewAnalyser(NewTap(64))
	a.SetFFTSize(64)
	out := make([]byte, 64)
	a.TimeDomainBytes(out)
	for i, v := range out {
		if v != 128 {
			t.Fatalf("expected silence to map to 128 at %d, got %d", i, v)
		}
	}
}

func TestAnalyserTimeDomainClamps(t *testing.T) {
	tap := NewTap(2)
	tap.Write([]float32{2, -2})
	a := NewAnalyser(tap)
	a.SetFFTSize(32)
	out := make([]byte, 32)
	a.TimeDomainBytes(out)
	if out[30] != 255 || out[31] != 0 {
		t.Fatalf("expected clamped extremes, got %d and %d", out[30], out[31])
	}
}

func TestValidResolution(t *testing.T) {
	for _, n := range []int{32, 64, 1024, 32768} {
		if !ValidResolution(n) {
			t.Fatalf("expected %d to be valid", n)
		}
	}
	for _, n := range []int{0, 31, 48, 100, 50000, 65536} {
		if ValidResolution(n) {
			t.Fatalf("expected %d to be invalid", n)
		}
	}
}
