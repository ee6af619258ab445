// Package synth fabricates plausible business analytics records: numeric
// metrics, rating-tiered insights and templated marketing headlines.
//
// All randomness flows through the Source interface so that callers control
// the draw order. A record consumes nine draws, in this order:
//
//  1. rating
//  2. review count
//  3. response rate
//  4. average response hours
//  5. insight shuffle, position 2
//  6. insight shuffle, position 1
//  7. weekly growth
//  8. monthly growth
//  9. headline template index
//
// A headline regeneration consumes exactly one draw.
package synth

import (
	"math/rand/v2"
	"sync"
)

// Source is a uniform random source returning values in [0, 1).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
}

// NewSeededSource returns a deterministic source for the given seed.
func NewSeededSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewEntropySource returns a source seeded from the runtime's entropy.
func NewEntropySource() Source {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// LockedSource serializes access to an underlying Source so it can be shared
// between request goroutines.
type LockedSource struct {
	mu  sync.Mutex
	src Source
}

// NewLockedSource wraps src. Wrapping an existing *LockedSource returns it.
func NewLockedSource(src Source) *LockedSource {
	if ls, ok := src.(*LockedSource); ok {
		return ls
	}
	return &LockedSource{src: src}
}

// Float64 implements Source.
func (l *LockedSource) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}

// With holds the lock for the duration of fn, giving fn exclusive use of the
// underlying source. Use it when a group of draws must stay contiguous.
func (l *LockedSource) With(fn func(src Source)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.src)
}

// Sequence replays a fixed list of values, wrapping around at the end.
// It is meant for tests and for reproducing a reported record.
type Sequence struct {
	mu     sync.Mutex
	values []float64
	pos    int
}

// NewSequence returns a Sequence over values. An empty sequence always yields 0.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: append([]float64(nil), values...)}
}

// Float64 implements Source.
func (s *Sequence) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v
}

// Draws reports how many values have been consumed.
func (s *Sequence) Draws() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

// scaled returns floor(u * n) for a draw u.
func scaled(src Source, n int) int {
	return int(src.Float64() * float64(n))
}

// index returns a slice index in [0, n). Draws outside [0, 1) are clamped so a
// broken source cannot cause an out-of-range panic.
func index(src Source, n int) int {
	i := scaled(src, n)
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
