package observability

import (
	"context"

	"growthpro/internal/ratelimit"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// GovernorMetrics records admission decisions and sweep activity for a
// ratelimit.Limiter.
type GovernorMetrics struct {
	decisions metric.Int64Counter
	evictions metric.Int64Counter
	meter     metric.Meter
	backend   attribute.KeyValue
}

// NewGovernorMetrics creates the governor instruments. backend labels every
// measurement ("memory" or "redis").
func NewGovernorMetrics(p *Provider, backend string) (*GovernorMetrics, error) {
	meter := p.Meter("growthpro/governor")

	decisions, err := meter.Int64Counter(
		"governor.decisions",
		metric.WithDescription("Admission decisions by outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	evictions, err := meter.Int64Counter(
		"governor.sweep.evictions",
		metric.WithDescription("Expired client buckets removed by the sweep"),
		metric.WithUnit("{bucket}"),
	)
	if err != nil {
		return nil, err
	}

	return &GovernorMetrics{
		decisions: decisions,
		evictions: evictions,
		meter:     meter,
		backend:   attribute.String("backend", backend),
	}, nil
}

// ObserveSweep is suitable as a ratelimit.WithSweepObserver callback.
func (m *GovernorMetrics) ObserveSweep(evicted int) {
	m.evictions.Add(context.Background(), int64(evicted), metric.WithAttributes(m.backend))
}

// RegisterBucketGauge reports size() as the number of live client buckets on
// every collection.
func (m *GovernorMetrics) RegisterBucketGauge(size func() int) error {
	_, err := m.meter.Int64ObservableGauge(
		"governor.buckets",
		metric.WithDescription("Client buckets currently held in memory"),
		metric.WithUnit("{bucket}"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(int64(size()), metric.WithAttributes(m.backend))
			return nil
		}),
	)
	return err
}

// Wrap returns a limiter that counts the decisions made by inner.
func (m *GovernorMetrics) Wrap(inner ratelimit.Limiter) ratelimit.Limiter {
	return &instrumentedLimiter{inner: inner, metrics: m}
}

type instrumentedLimiter struct {
	inner   ratelimit.Limiter
	metrics *GovernorMetrics
}

func (l *instrumentedLimiter) Allow(ctx context.Context, key string) (bool, ratelimit.Info) {
	allowed, info := l.inner.Allow(ctx, key)
	decision := "admitted"
	if !allowed {
		decision = "denied"
	}
	l.metrics.decisions.Add(ctx, 1, metric.WithAttributes(l.metrics.backend, attribute.String("decision", decision)))
	return allowed, info
}

func (l *instrumentedLimiter) Close() {
	l.inner.Close()
}
