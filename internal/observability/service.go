package observability

import (
	"context"
	"errors"
	"time"

	"growthpro/internal/business"
	"growthpro/internal/models"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentedService wraps a business.ServiceInterface implementation with
// OpenTelemetry tracing and metrics instrumentation.
type InstrumentedService struct {
	inner    business.ServiceInterface
	tracer   trace.Tracer
	duration metric.Float64Histogram
	errors   metric.Int64Counter
	records  metric.Int64Counter
}

var _ business.ServiceInterface = (*InstrumentedService)(nil)

// NewInstrumentedService creates a service wrapper that records trace spans,
// operation latency histograms, and error counters for every call.
func NewInstrumentedService(inner business.ServiceInterface, p *Provider) (*InstrumentedService, error) {
	meter := p.Meter("growthpro/business")

	duration, err := meter.Float64Histogram(
		"business.operation.duration",
		metric.WithDescription("Duration of business operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	errCounter, err := meter.Int64Counter(
		"business.operation.errors",
		metric.WithDescription("Number of failed business operations by error code"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	records, err := meter.Int64Counter(
		"business.records.generated",
		metric.WithDescription("Number of business records synthesized"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, err
	}

	return &InstrumentedService{
		inner:    inner,
		tracer:   p.Tracer("growthpro/business"),
		duration: duration,
		errors:   errCounter,
		records:  records,
	}, nil
}

func (s *InstrumentedService) startSpan(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := s.tracer.Start(ctx, "business."+operation,
		trace.WithAttributes(append([]attribute.KeyValue{
			attribute.String("business.operation", operation),
		}, attrs...)...),
	)
	return ctx, span
}

func (s *InstrumentedService) record(ctx context.Context, span trace.Span, operation string, start time.Time, err error) {
	elapsed := time.Since(start).Seconds()
	attrs := metric.WithAttributes(attribute.String("operation", operation))

	s.duration.Record(ctx, elapsed, attrs)

	if err != nil {
		code := models.ErrorCodeInternalError
		var svcErr *business.ServiceError
		if errors.As(err, &svcErr) {
			code = svcErr.Code
		}
		s.errors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("code", code),
		))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	span.End()
}

func (s *InstrumentedService) CreateRecord(ctx context.Context, req *models.BusinessDataRequest) (*models.BusinessRecord, error) {
	ctx, span := s.startSpan(ctx, "CreateRecord")
	start := time.Now()
	result, err := s.inner.CreateRecord(ctx, req)
	if err == nil {
		s.records.Add(ctx, 1, metric.WithAttributes(attribute.String("trend", result.Trend)))
	}
	s.record(ctx, span, "CreateRecord", start, err)
	return result, err
}

func (s *InstrumentedService) RegenerateHeadline(ctx context.Context, req *models.HeadlineRequest) (string, error) {
	ctx, span := s.startSpan(ctx, "RegenerateHeadline")
	start := time.Now()
	result, err := s.inner.RegenerateHeadline(ctx, req)
	s.record(ctx, span, "RegenerateHeadline", start, err)
	return result, err
}
