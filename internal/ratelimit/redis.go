package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures a RedisLimiter.
type RedisConfig struct {
	Addr      string        // Redis address (e.g., "localhost:6379")
	Password  string        // Redis password (empty for no auth)
	DB        int           // Redis database number
	KeyPrefix string        // Key namespace, defaults to "growthpro:governor:"
	Timeout   time.Duration // Per-call timeout, defaults to 250ms
}

// fixedWindowScript increments the client counter, starts the window clock
// whenever the key has no expiry and returns {count, pttl}.
var fixedWindowScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
  ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

// RedisLimiter applies the same fixed-window rule as Governor, with counters
// shared through Redis so several service instances enforce one quota. Key
// expiry takes the place of the sweep. Redis failures fail open.
type RedisLimiter struct {
	client    *redis.Client
	window    time.Duration
	maxAdmits int
	prefix    string
	timeout   time.Duration
}

// NewRedisLimiter connects to Redis and verifies the connection.
func NewRedisLimiter(cfg RedisConfig, window time.Duration, maxAdmits int) (*RedisLimiter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	l := newRedisLimiter(client, cfg, window, maxAdmits)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return l, nil
}

func newRedisLimiter(client *redis.Client, cfg RedisConfig, window time.Duration, maxAdmits int) *RedisLimiter {
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "growthpro:governor:"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 250 * time.Millisecond
	}
	return &RedisLimiter{
		client:    client,
		window:    window,
		maxAdmits: maxAdmits,
		prefix:    prefix,
		timeout:   timeout,
	}
}

// Allow implements Limiter. The first increment of a window creates the key
// and starts its expiry; later attempts only increment.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, Info) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	vals, err := fixedWindowScript.Run(ctx, l.client, []string{l.prefix + key}, l.window.Milliseconds()).Int64Slice()
	if err == nil && len(vals) != 2 {
		err = fmt.Errorf("unexpected script reply of length %d", len(vals))
	}
	if err != nil {
		slog.Warn("Governor backend unavailable, admitting request",
			"backend", "redis",
			"key", key,
			"error", err,
		)
		return true, Info{Limit: l.maxAdmits, Remaining: l.maxAdmits, ResetAt: time.Now().Add(l.window)}
	}

	count := int(vals[0])
	remaining := time.Duration(vals[1]) * time.Millisecond
	if remaining < 0 {
		remaining = l.window
	}

	info := Info{
		Limit:     l.maxAdmits,
		Remaining: max(0, l.maxAdmits-count),
		ResetAt:   time.Now().Add(remaining),
	}
	if count > l.maxAdmits {
		info.RetryAfter = remaining
		return false, info
	}
	return true, info
}

// Ping checks if Redis is reachable.
func (l *RedisLimiter) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// Reset deletes the counter for key.
func (l *RedisLimiter) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, l.prefix+key).Err()
}

// Close closes the Redis connection.
func (l *RedisLimiter) Close() {
	if err := l.client.Close(); err != nil {
		slog.Warn("Failed to close Redis client", "error", err)
	}
}
