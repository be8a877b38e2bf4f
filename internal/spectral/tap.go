package spectral

import "sync"

// Tap is a thread-safe circular buffer of mono samples. The transport
// writes every frame it plays; the analyser reads the most recent window.
type Tap struct {
	buf  []float32
	size int
	w    int // write position
	len  int // current fill level
	mu   sync.Mutex
}

// NewTap creates a tap holding up to size samples.
func NewTap(size int) *Tap {
	return &Tap{
		buf:  make([]float32, size),
		size: size,
	}
}

// Write appends samples, overwriting the oldest data if full.
func (t *Tap) Write(p []float32) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, s := range p {
		t.buf[t.w] = s
		t.w = (t.w + 1) % t.size
	}
	t.len += len(p)
	if t.len > t.size {
		t.len = t.size
	}
}

// Latest copies the most recent len(dst) samples into dst, oldest first.
// When fewer samples are buffered the front of dst is zero-filled.
func (t *Tap) Latest(dst []float32) {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := len(dst)
	if n > t.len {
		n = t.len
	}
	pad := len(dst) - n
	clear(dst[:pad])

	start := (t.w - n + t.size) % t.size
	for i := range n {
		dst[pad+i] = t.buf[(start+i)%t.size]
	}
}

// Clear resets the buffer.
func (t *Tap) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.w = 0
	t.len = 0
}
