package ratelimit

import (
	"context"
	"sync"
	"time"
)

// bucket is the per-client window state. count is at least 1 once created.
// A bucket whose windowEnd has passed is logically expired even before the
// sweep removes it.
type bucket struct {
	count     int
	windowEnd time.Time
}

// Governor is an in-memory fixed-window limiter. Each client key owns a
// bucket; the first admit opens a window of fixed length and every later
// admit inside that window increments the bucket's counter. Admits past
// maxAdmits are denied until the window ends.
//
// Expiry is lazy: Admit resets an expired bucket on access, and a background
// sweep started with Start evicts expired buckets to bound memory.
type Governor struct {
	window        time.Duration
	maxAdmits     int
	sweepInterval time.Duration
	now           func() time.Time
	onSweep       func(evicted int)

	mu      sync.Mutex
	buckets map[string]*bucket
	done    chan struct{}
	running bool
}

// GovernorOption configures a Governor.
type GovernorOption func(*Governor)

// WithClock overrides the clock used by Allow and the sweep loop.
func WithClock(now func() time.Time) GovernorOption {
	return func(g *Governor) {
		g.now = now
	}
}

// WithSweepInterval sets the sweep cadence. It defaults to the window length.
func WithSweepInterval(d time.Duration) GovernorOption {
	return func(g *Governor) {
		if d > 0 {
			g.sweepInterval = d
		}
	}
}

// WithSweepObserver registers a callback invoked after every background sweep
// with the number of evicted buckets.
func WithSweepObserver(fn func(evicted int)) GovernorOption {
	return func(g *Governor) {
		g.onSweep = fn
	}
}

// NewGovernor creates a governor admitting maxAdmits requests per client per
// window. The sweep loop is not started; call Start.
func NewGovernor(window time.Duration, maxAdmits int, opts ...GovernorOption) *Governor {
	g := &Governor{
		window:        window,
		maxAdmits:     maxAdmits,
		sweepInterval: window,
		now:           time.Now,
		buckets:       make(map[string]*bucket),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Allow implements Limiter using the governor's clock.
func (g *Governor) Allow(_ context.Context, key string) (bool, Info) {
	return g.Admit(key, g.now())
}

// Admit records an admit attempt for clientID at now. Any string, including
// the empty string, is a distinct client.
//
// The counter is incremented even when the attempt is denied, so it can grow
// past maxAdmits until the window resets. Only the stored value is affected.
func (g *Governor) Admit(clientID string, now time.Time) (bool, Info) {
	g.mu.Lock()
	defer g.mu.Unlock()

	b, exists := g.buckets[clientID]
	switch {
	case !exists:
		b = &bucket{count: 1, windowEnd: now.Add(g.window)}
		g.buckets[clientID] = b
	case now.After(b.windowEnd):
		b.count = 1
		b.windowEnd = now.Add(g.window)
	default:
		b.count++
	}

	info := Info{
		Limit:     g.maxAdmits,
		Remaining: max(0, g.maxAdmits-b.count),
		ResetAt:   b.windowEnd,
	}

	if b.count > g.maxAdmits {
		info.RetryAfter = b.windowEnd.Sub(now)
		return false, info
	}
	return true, info
}

// Sweep removes every bucket whose window ended before now and returns how
// many were removed.
func (g *Governor) Sweep(now time.Time) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	evicted := 0
	for key, b := range g.buckets {
		if b.windowEnd.Before(now) {
			delete(g.buckets, key)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of buckets currently held, expired or not.
func (g *Governor) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.buckets)
}

// Start launches the background sweep loop. Calling Start on a running
// governor is a no-op.
func (g *Governor) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running {
		return
	}
	g.running = true
	g.done = make(chan struct{})
	go g.sweepLoop(g.done)
}

// Stop halts the sweep loop. It is safe to call more than once, and Start may
// be called again afterwards.
func (g *Governor) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.running {
		return
	}
	g.running = false
	close(g.done)
}

// Close implements Limiter.
func (g *Governor) Close() {
	g.Stop()
}

func (g *Governor) sweepLoop(done <-chan struct{}) {
	ticker := time.NewTicker(g.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			evicted := g.Sweep(g.now())
			if g.onSweep != nil {
				g.onSweep(evicted)
			}
		}
	}
}
