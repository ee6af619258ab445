package synth

import (
	"time"

	"growthpro/internal/models"
)

// DataSynthesizer composes metrics and a headline into a BusinessRecord.
type DataSynthesizer struct {
	metrics   MetricSynthesizer
	headlines *HeadlineEngine
	now       func() time.Time
}

// Option configures a DataSynthesizer.
type Option func(*DataSynthesizer)

// WithClock overrides the clock used for GeneratedAt.
func WithClock(now func() time.Time) Option {
	return func(d *DataSynthesizer) {
		d.now = now
	}
}

// WithHeadlineEngine replaces the default headline engine.
func WithHeadlineEngine(e *HeadlineEngine) Option {
	return func(d *DataSynthesizer) {
		d.headlines = e
	}
}

// NewDataSynthesizer creates a synthesizer over the default catalog and the
// wall clock.
func NewDataSynthesizer(opts ...Option) *DataSynthesizer {
	d := &DataSynthesizer{
		headlines: NewHeadlineEngine(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Generate builds a complete record. Metrics are drawn first, the headline
// last, all from the same src.
func (d *DataSynthesizer) Generate(name, location string, src Source) models.BusinessRecord {
	m := d.metrics.Synthesize(src)
	headline := d.headlines.Pick(name, location, src)

	return models.BusinessRecord{
		Rating:             models.Rating(m.Rating),
		ReviewCount:        m.ReviewCount,
		ResponseRatePct:    m.ResponseRatePct,
		AvgResponseHours:   m.AvgResponseHours,
		Headline:           headline,
		GeneratedAt:        d.now().UTC(),
		BusinessName:       name,
		Location:           location,
		Insights:           m.Insights,
		WeeklyGrowthPct:    m.WeeklyGrowthPct,
		MonthlyGrowthPct:   m.MonthlyGrowthPct,
		CompetitorStanding: m.CompetitorStanding,
		Trend:              m.Trend,
	}
}

// RegenerateHeadline returns a fresh headline without recomputing metrics.
func (d *DataSynthesizer) RegenerateHeadline(name, location string, src Source) string {
	return d.headlines.Pick(name, location, src)
}
