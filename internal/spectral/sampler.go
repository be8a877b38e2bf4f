package spectral

import (
	"go.uber.org/zap"
)

// ValidResolution reports whether n is a power of two in
// [MinFFTSize, MaxFFTSize].
func ValidResolution(n int) bool {
	return n >= MinFFTSize && n <= MaxFFTSize && n&(n-1) == 0
}

// Sampler hands out fixed-length spectral snapshots at the configured
// resolution.
type Sampler struct {
	analysis   Analysis
	resolution int
	log        *zap.Logger
}

// NewSampler wraps analysis. The starting resolution is whatever the
// analysis is configured with, or DefaultFFTSize if that is invalid.
func NewSampler(analysis Analysis, log *zap.Logger) *Sampler {
	if log == nil {
		log = zap.NewNop()
	}
	res := analysis.FFTSize()
	if !ValidResolution(res) {
		res = DefaultFFTSize
		analysis.SetFFTSize(res)
	}
	return &Sampler{analysis: analysis, resolution: res, log: log}
}

// Configure sets the analysis window size. Invalid values are logged and
// ignored; the previous resolution stays in effect.
func (s *Sampler) Configure(resolution int) bool {
	if !ValidResolution(resolution) {
		s.log.Warn("rejecting FFT resolution",
			zap.Int("requested", resolution),
			zap.Int("current", s.resolution),
			zap.Int("min", MinFFTSize),
			zap.Int("max", MaxFFTSize))
		return false
	}
	if resolution == s.resolution {
		return true
	}
	s.analysis.SetFFTSize(resolution)
	s.resolution = resolution
	return true
}

// Resolution returns the current window size.
func (s *Sampler) Resolution() int { return s.resolution }

// FrequencyBins returns the length of a frequency snapshot.
func (s *Sampler) FrequencyBins() int { return s.resolution / 2 }

// SampleFrequency returns a fresh frequency snapshot of length
// Resolution()/2.
func (s *Sampler) SampleFrequency() []byte {
	out := make([]byte, s.resolution/2)
	s.analysis.FrequencyBytes(out)
	return out
}

// SampleTimeDomain returns a fresh time-domain snapshot of length
// Resolution().
func (s *Sampler) SampleTimeDomain() []byte {
	out := make([]byte, s.resolution)
	s.analysis.TimeDomainBytes(out)
	return out
}
