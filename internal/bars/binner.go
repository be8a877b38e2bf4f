// Package bars reduces spectral snapshots to a fixed number of display bars.
package bars

// Set is one frame of reduced bar values, each in 0–255.
type Set []float64

// span is the half-open source range [start, end) feeding one bar.
type span struct {
	start, end int
}

// partition splits n source bins into count contiguous spans. Every bin
// belongs to exactly one span; when count > n some spans are empty and
// the bar reads its nearest bin instead.
func partition(n, count int) []span {
	spans := make([]span, count)
	for i := range count {
		spans[i] = span{
			start: i * n / count,
			end:   (i + 1) * n / count,
		}
	}
	return spans
}

// Reduce maps snapshot onto count bars. Bars covering a non-empty bin
// range average it; bars narrower than one bin take the value at their
// start bin (or 0 past the end).
func Reduce(snapshot []byte, count int) Set {
	if count <= 0 {
		return nil
	}
	out := make(Set, count)
	reduceInto(out, snapshot, partition(len(snapshot), count))
	return out
}

func reduceInto(out Set, snapshot []byte, spans []span) {
	for i, sp := range spans {
		if sp.end > sp.start {
			sum := 0
			for _, v := range snapshot[sp.start:sp.end] {
				sum += int(v)
			}
			out[i] = float64(sum) / float64(sp.end-sp.start)
			continue
		}
		if sp.start < len(snapshot) {
			out[i] = float64(snapshot[sp.start])
		} else {
			out[i] = 0
		}
	}
}

// Binner caches the bin partition between frames and rebuilds it only when
// the snapshot length or bar count changes.
type Binner struct {
	count  int
	source int
	spans  []span
	out    Set
}

// NewBinner creates a binner for count bars.
func NewBinner(count int) *Binner {
	return &Binner{count: count, source: -1}
}

// SetCount changes the bar count. The partition is rebuilt lazily.
func (b *Binner) SetCount(count int) {
	if count == b.count {
		return
	}
	b.count = count
	b.spans = nil
}

// Count returns the configured bar count.
func (b *Binner) Count() int { return b.count }

// Reduce bins snapshot into the binner's bar count. The returned Set is
// reused by the next call.
func (b *Binner) Reduce(snapshot []byte) Set {
	if b.count <= 0 {
		return nil
	}
	if b.spans == nil || b.source != len(snapshot) {
		b.source = len(snapshot)
		b.spans = partition(b.source, b.count)
		b.out = make(Set, b.count)
	}
	reduceInto(b.out, snapshot, b.spans)
	return b.out
}
