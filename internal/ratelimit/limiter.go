// Package ratelimit provides the per-client request governor: a fixed-window
// admit counter with lazy expiry and a periodic sweep of expired buckets. It
// ships an in-memory Governor, a Redis-backed limiter for multi-instance
// deployments, and HTTP middleware that sets standard rate limit headers.
package ratelimit

import (
	"context"
	"math"
	"time"
)

// Limiter defines the rate limiting contract. Implementations must be safe for
// concurrent use.
type Limiter interface {
	// Allow records an admit attempt for key and reports whether it is
	// admitted, along with rate information for response headers.
	Allow(ctx context.Context, key string) (allowed bool, info Info)

	// Close stops background goroutines and releases resources.
	Close()
}

// Info contains rate limit state for populating response headers.
type Info struct {
	Limit      int           // Maximum admits per window
	Remaining  int           // Admits left in the current window
	ResetAt    time.Time     // When the current window ends
	RetryAfter time.Duration // How long to wait (meaningful only when denied)
}

// RetryAfterSeconds returns RetryAfter rounded up to whole seconds.
func (i Info) RetryAfterSeconds() int {
	if i.RetryAfter <= 0 {
		return 0
	}
	return int(math.Ceil(i.RetryAfter.Seconds()))
}
