package metrics

import (
	"sync"
	"time"
)

// Sample is one request observation.
type Sample struct {
	Method    string    `json:"method"`
	Path      string    `json:"path"`
	Status    int       `json:"status"`
	LatencyMS float64   `json:"latency_ms"`
	At        time.Time `json:"at"`
}

// Buffer is a fixed-size ring of recent request samples. Best effort only:
// it is process-local and resets on restart, so it must never feed billing
// or authorization decisions.
type Buffer struct {
	mu      sync.Mutex
	samples []Sample
	next    int
	filled  bool
}

func NewBuffer(size int) *Buffer {
	if size < 1 {
		size = 1
	}
	return &Buffer{samples: make([]Sample, size)}
}

func (b *Buffer) Record(s Sample) {
	b.mu.Lock()
	b.samples[b.next] = s
	b.next++
	if b.next == len(b.samples) {
		b.next = 0
		b.filled = true
	}
	b.mu.Unlock()
}

// Snapshot returns the buffered samples oldest-first.
func (b *Buffer) Snapshot() []Sample {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.filled {
		out := make([]Sample, b.next)
		copy(out, b.samples[:b.next])
		return out
	}
	out := make([]Sample, 0, len(b.samples))
	out = append(out, b.samples[b.next:]...)
	out = append(out, b.samples[:b.next]...)
	return out
}

func (b *Buffer) Reset() {
	b.mu.Lock()
	b.next = 0
	b.filled = false
	b.mu.Unlock()
}

// Default is the process-wide buffer fed by the HTTP logger middleware.
var Default = NewBuffer(512)
