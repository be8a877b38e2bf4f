package spectral

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	DefaultFFTSize = 2048
	MinFFTSize     = 32
	MaxFFTSize     = 32768

	minDecibels     = -100.0
	maxDecibels     = -30.0
	smoothingFactor = 0.8
)

// Analysis is the real-time analysis capability the Sampler wraps.
type Analysis interface {
	SetFFTSize(n int)
	FFTSize() int
	// FrequencyBytes fills dst (len FFTSize/2) with byte magnitudes.
	FrequencyBytes(dst []byte)
	// TimeDomainBytes fills dst (len FFTSize) with byte waveform values.
	TimeDomainBytes(dst []byte)
}

// Analyser computes byte spectra from the samples in a Tap: Blackman
// window, FFT, temporal smoothing, decibel scaling.
type Analyser struct {
	tap *Tap

	mu       sync.Mutex
	size     int
	fft      *fourier.FFT
	window   []float64
	frame    []float32
	seq      []float64
	coeffs   []complex128
	smoothed []float64
}

// NewAnalyser creates an analyser reading from tap.
func NewAnalyser(tap *Tap) *Analyser {
	a := &Analyser{tap: tap}
	a.SetFFTSize(DefaultFFTSize)
	return a
}

// SetFFTSize resizes the analysis window. Callers validate n; the Sampler
// does so with ValidResolution.
func (a *Analyser) SetFFTSize(n int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if n == a.size {
		return
	}
	a.size = n
	a.fft = fourier.NewFFT(n)
	a.window = blackman(n)
	a.frame = make([]float32, n)
	a.seq = make([]float64, n)
	a.coeffs = make([]complex128, n/2+1)
	a.smoothed = make([]float64, n/2)
}

// FFTSize returns the current transform size.
func (a *Analyser) FFTSize() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.size
}

// FrequencyBytes fills dst with smoothed magnitudes scaled onto 0..255.
func (a *Analyser) FrequencyBytes(dst []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.tap.Latest(a.frame)
	for i, s := range a.frame {
		a.seq[i] = float64(s) * a.window[i]
	}
	a.coeffs = a.fft.Coefficients(a.coeffs, a.seq)

	scale := 1 / float64(a.size)
	for k := range a.smoothed {
		mag := math.Hypot(real(a.coeffs[k]), imag(a.coeffs[k])) * scale
		a.smoothed[k] = smoothingFactor*a.smoothed[k] + (1-smoothingFactor)*mag
		if k < len(dst) {
			dst[k] = decibelByte(a.smoothed[k])
		}
	}
}

// TimeDomainBytes fills dst with the latest samples mapped onto 0..255.
func (a *Analyser) TimeDomainBytes(dst []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.tap.Latest(a.frame)
	for i := range dst {
		if i >= len(a.frame) {
			dst[i] = 128
			continue
		}
		v := 128 * (1 + float64(a.frame[i]))
		dst[i] = clampByte(v)
	}
}

func decibelByte(mag float64) byte {
	if mag <= 0 {
		return 0
	}
	db := 20 * math.Log10(mag)
	return clampByte(255 * (db - minDecibels) / (maxDecibels - minDecibels))
}

func clampByte(v float64) byte {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return byte(v)
}

func blackman(n int) []float64 {
	const alpha = 0.16
	a0 := (1 - alpha) / 2
	a1 := 0.5
	a2 := alpha / 2
	w := make([]float64, n)
	for i := range w {
		x := float64(i) / float64(n)
		w[i] = a0 - a1*math.Cos(2*math.Pi*x) + a2*math.Cos(4*math.Pi*x)
	}
	return w
}
