// Package waveform generates the synthetic "live bio-signal" shown while a
// profile is being analyzed.
package waveform

import (
	"math"
	"time"
)

// Baseline is the value the signal oscillates around.
const Baseline = 50

// DefaultCapacity is the number of samples kept for display.
const DefaultCapacity = 50

// Sample returns the signal value at wall-clock time t: three superimposed
// sine waves around Baseline. The result depends only on t, never on the
// simulated metrics, and lies within [-10, 110].
func Sample(t time.Time) float64 {
	x := float64(t.UnixMilli()) * 0.01
	return math.Sin(x*0.02)*30 +
		math.Sin(x*0.05)*20 +
		math.Sin(x*0.1)*10 +
		Baseline
}

// Buffer is a sliding window over the most recent samples. It is not safe
// for concurrent use.
type Buffer struct {
	data  []float64
	start int
	n     int
}

// NewBuffer returns a Buffer holding at most capacity samples. If capacity
// is <= 0, DefaultCapacity is used.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{data: make([]float64, capacity)}
}

// Push appends v, dropping the oldest sample when the buffer is full.
func (b *Buffer) Push(v float64) {
	if b.n < len(b.data) {
		b.data[(b.start+b.n)%len(b.data)] = v
		b.n++
		return
	}
	b.data[b.start] = v
	b.start = (b.start + 1) % len(b.data)
}

// Values returns the samples oldest first. The slice is a copy.
func (b *Buffer) Values() []float64 {
	out := make([]float64, b.n)
	for i := 0; i < b.n; i++ {
		out[i] = b.data[(b.start+i)%len(b.data)]
	}
	return out
}

// Len returns the number of samples held.
func (b *Buffer) Len() int { return b.n }

// Cap returns the maximum number of samples held.
func (b *Buffer) Cap() int { return len(b.data) }

// Reset drops all samples.
func (b *Buffer) Reset() {
	b.start = 0
	b.n = 0
}
