package observability

import (
	"context"
	"testing"
	"time"

	"growthpro/internal/ratelimit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGovernorMetrics_Decisions(t *testing.T) {
	provider := setupMetricsProvider(t)

	m, err := NewGovernorMetrics(provider, "memory")
	require.NoError(t, err)

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	g := ratelimit.NewGovernor(time.Minute, 2, ratelimit.WithClock(func() time.Time { return now }))
	limiter := m.Wrap(g)
	defer limiter.Close()

	for i := 0; i < 5; i++ {
		limiter.Allow(context.Background(), "client-a")
	}

	mf := findFamily(t, provider, "governor_decisions")
	require.NotNil(t, mf)
	assert.Equal(t, 2.0, counterValue(mf, "decision", "admitted"))
	assert.Equal(t, 3.0, counterValue(mf, "decision", "denied"))
	assert.Equal(t, 5.0, counterValue(mf, "backend", "memory"))
}

func TestGovernorMetrics_SweepAndBuckets(t *testing.T) {
	provider := setupMetricsProvider(t)

	m, err := NewGovernorMetrics(provider, "memory")
	require.NoError(t, err)

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	g := ratelimit.NewGovernor(time.Minute, 15)
	g.Admit("a", now)
	g.Admit("b", now)
	g.Admit("c", now.Add(90*time.Second))

	require.NoError(t, m.RegisterBucketGauge(g.Len))

	gauge := findFamily(t, provider, "governor_buckets")
	require.NotNil(t, gauge)
	require.Len(t, gauge.GetMetric(), 1)
	assert.Equal(t, 3.0, gauge.GetMetric()[0].GetGauge().GetValue())

	m.ObserveSweep(g.Sweep(now.Add(2 * time.Minute)))

	evictions := findFamily(t, provider, "governor_sweep_evictions")
	require.NotNil(t, evictions)
	assert.Equal(t, 2.0, counterValue(evictions, "backend", "memory"))

	gauge = findFamily(t, provider, "governor_buckets")
	assert.Equal(t, 1.0, gauge.GetMetric()[0].GetGauge().GetValue())
}

func TestGovernorMetrics_WrapPreservesInfo(t *testing.T) {
	m, err := NewGovernorMetrics(nil, "memory")
	require.NoError(t, err)

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	g := ratelimit.NewGovernor(time.Minute, 1, ratelimit.WithClock(func() time.Time { return now }))
	limiter := m.Wrap(g)

	allowed, info := limiter.Allow(context.Background(), "x")
	assert.True(t, allowed)
	assert.Equal(t, 1, info.Limit)
	assert.Equal(t, 0, info.Remaining)

	allowed, info = limiter.Allow(context.Background(), "x")
	assert.False(t, allowed)
	assert.Equal(t, 60, info.RetryAfterSeconds())
}
