package synth

import "growthpro/internal/models"

// Category is a rating tier used to pick insight strings.
type Category string

const (
	CategoryHigh   Category = "high"
	CategoryMedium Category = "medium"
	CategoryLow    Category = "low"
)

// Rating thresholds.
const (
	highRatingFloor   = 4.5
	mediumRatingFloor = 4.0
	aboveAverageAbove = 4.0
	growingAbove      = 4.2
)

var insightPools = map[Category][3]string{
	CategoryHigh: {
		"Excellent customer satisfaction",
		"High engagement with reviews",
		"Strong brand reputation",
	},
	CategoryMedium: {
		"Good customer satisfaction",
		"Active review management",
		"Consistent service quality",
	},
	CategoryLow: {
		"Room for improvement in customer service",
		"Consider implementing feedback systems",
		"Focus on customer experience",
	},
}

// CategoryFor maps a raw (unrounded) rating to its insight tier.
func CategoryFor(rating float64) Category {
	switch {
	case rating >= highRatingFloor:
		return CategoryHigh
	case rating >= mediumRatingFloor:
		return CategoryMedium
	default:
		return CategoryLow
	}
}

// InsightPool returns a copy of the candidate insights for a category.
// Unknown categories yield nil.
func InsightPool(c Category) []string {
	pool, ok := insightPools[c]
	if !ok {
		return nil
	}
	return pool[:]
}

// Metrics holds the numeric and categorical fields of a record.
type Metrics struct {
	Rating             float64
	ReviewCount        int
	ResponseRatePct    int
	AvgResponseHours   int
	Category           Category
	Insights           []string
	WeeklyGrowthPct    int
	MonthlyGrowthPct   int
	CompetitorStanding string
	Trend              string
}

// MetricSynthesizer produces record metrics from a random source. It is a
// pure function of the draws it consumes.
type MetricSynthesizer struct{}

// Synthesize consumes eight draws from src; see the package documentation for
// their order.
func (MetricSynthesizer) Synthesize(src Source) Metrics {
	m := Metrics{}
	m.Rating = models.MinRating + src.Float64()*(models.MaxRating-models.MinRating)
	m.ReviewCount = models.MinReviewCount + scaled(src, 500)
	m.ResponseRatePct = models.MinResponseRatePct + scaled(src, 30)
	m.AvgResponseHours = models.MinAvgResponseHours + scaled(src, 12)

	m.Category = CategoryFor(m.Rating)
	m.Insights = pickInsights(m.Category, src)

	m.WeeklyGrowthPct = models.MinWeeklyGrowthPct + scaled(src, 25)
	m.MonthlyGrowthPct = models.MinMonthlyGrowthPct + scaled(src, 60)

	m.CompetitorStanding = models.StandingAverage
	if m.Rating > aboveAverageAbove {
		m.CompetitorStanding = models.StandingAboveAverage
	}
	m.Trend = models.TrendStable
	if m.Rating > growingAbove {
		m.Trend = models.TrendGrowing
	}
	return m
}

// pickInsights shuffles the category pool (Fisher-Yates, two draws for a
// three-element pool) and keeps the first two entries.
func pickInsights(c Category, src Source) []string {
	pool := insightPools[c]
	for i := len(pool) - 1; i > 0; i-- {
		j := index(src, i+1)
		pool[i], pool[j] = pool[j], pool[i]
	}
	out := make([]string, models.InsightsPerRecord)
	copy(out, pool[:models.InsightsPerRecord])
	return out
}
