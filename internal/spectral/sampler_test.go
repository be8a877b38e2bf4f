package spectral

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestConfigureAcceptsPowersOfTwo(t *testing.T) {
	s := NewSampler(NewAnalyser(NewTap(MaxFFTSize)), nil)
	for res := MinFFTSize; res <= MaxFFTSize; res *= 2 {
		if !s.Configure(res) {
			t.Fatalf("expected resolution %d to be accepted", res)
		}
		if got := len(s.SampleFrequency()); got != res/2 {
			t.Fatalf("expected frequency snapshot of %d, got %d", res/2, got)
		}
		if got := len(s.SampleTimeDomain()); got != res {
			t.Fatalf("expected time-domain snapshot of %d, got %d", res, got)
		}
	}
}

func TestConfigureRejectsInvalidResolution(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := NewSampler(NewAnalyser(NewTap(4096)), zap.New(core))
	s.Configure(512)

	for _, bad := range []int{100, 50000, 0, -64, 16, 65536, 1000} {
		if s.Configure(bad) {
			t.Fatalf("expected resolution %d to be rejected", bad)
		}
		if s.Resolution() != 512 {
			t.Fatalf("expected resolution to stay 512 after %d, got %d", bad, s.Resolution())
		}
		if got := len(s.SampleFrequency()); got != 256 {
			t.Fatalf("expected snapshot length to stay 256, got %d", got)
		}
	}
	if logs.Len() != 7 {
		t.Fatalf("expected 7 warnings, got %d", logs.Len())
	}
}

type fixedAnalysis struct {
	size int
}

func (f *fixedAnalysis) SetFFTSize(n int) { f.size = n }
func (f *fixedAnalysis) FFTSize() int     { return f.size }
func (f *fixedAnalysis) FrequencyBytes(dst []byte) {
	for i := range dst {
		dst[i] = byte(i)
	}
}
func (f *fixedAnalysis) TimeDomainBytes(dst []byte) {
	for i := range dst {
		dst[i] = 128
	}
}

func TestNewSamplerRepairsInvalidAnalysisSize(t *testing.T) {
	a := &fixedAnalysis{size: 100}
	s := NewSampler(a, nil)
	if s.Resolution() != DefaultFFTSize || a.size != DefaultFFTSize {
		t.Fatalf("expected default resolution, got sampler %d analysis %d", s.Resolution(), a.size)
	}
}

func TestSnapshotsAreFresh(t *testing.T) {
	s := NewSampler(&fixedAnalysis{size: 64}, nil)
	first := s.SampleFrequency()
	first[3] = 99
	second := s.SampleFrequency()
	if second[3] != 3 {
		t.Fatalf("expected independent snapshot, got %d", second[3])
	}
}
