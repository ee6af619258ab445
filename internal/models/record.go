// Package models - Business record types produced by the synthesis engine.
// This file defines the immutable analytics record returned to dashboard clients.
//
// Wire Format:
// - JSON names match what the dashboard client reads (camelCase)
// - Rating is sent as a string with exactly one fractional digit
// - Timestamps are RFC3339
package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Competitor standing and trend labels.
const (
	StandingAboveAverage = "Above Average"
	StandingAverage      = "Average"

	TrendGrowing = "Growing"
	TrendStable  = "Stable"
)

// Record field bounds, inclusive.
const (
	MinRating           = 3.5
	MaxRating           = 5.0
	MinReviewCount      = 25
	MaxReviewCount      = 524
	MinResponseRatePct  = 70
	MaxResponseRatePct  = 99
	MinAvgResponseHours = 2
	MaxAvgResponseHours = 13
	MinWeeklyGrowthPct  = 5
	MaxWeeklyGrowthPct  = 29
	MinMonthlyGrowthPct = 15
	MaxMonthlyGrowthPct = 74
	InsightsPerRecord   = 2
)

// Rating is an unrounded star rating. It is rounded to one decimal only when
// rendered, so threshold rules always see the raw value.
type Rating float64

// String renders the rating with exactly one fractional digit.
func (r Rating) String() string {
	return strconv.FormatFloat(float64(r), 'f', 1, 64)
}

// MarshalJSON encodes the rating as a one-decimal string, e.g. "4.6".
func (r Rating) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON accepts both the string form and a bare number.
func (r *Rating) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid rating %q: %w", s, err)
		}
		*r = Rating(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("invalid rating: %w", err)
	}
	*r = Rating(f)
	return nil
}

// BusinessRecord is one synthesized analytics snapshot for a business.
// Records are values: regenerating a headline produces a new string, never an
// in-place edit of an existing record.
type BusinessRecord struct {
	Rating             Rating    `json:"rating"`
	ReviewCount        int       `json:"reviews"`
	ResponseRatePct    int       `json:"responseRate"`
	AvgResponseHours   int       `json:"avgResponseTime"`
	Headline           string    `json:"headline"`
	GeneratedAt        time.Time `json:"lastUpdated"`
	BusinessName       string    `json:"businessName"`
	Location           string    `json:"location"`
	Insights           []string  `json:"insights"`
	WeeklyGrowthPct    int       `json:"weeklyGrowth"`
	MonthlyGrowthPct   int       `json:"monthlyGrowth"`
	CompetitorStanding string    `json:"competitorComparison"`
	Trend              string    `json:"trend"`
}

// Check verifies that every field is inside its documented range. A failure
// means the random source or the synthesis code is broken.
func (b *BusinessRecord) Check() error {
	rating := float64(b.Rating)
	if rating < MinRating || rating > MaxRating {
		return fmt.Errorf("rating %v out of range [%v, %v]", rating, MinRating, MaxRating)
	}
	if err := checkRange("reviews", b.ReviewCount, MinReviewCount, MaxReviewCount); err != nil {
		return err
	}
	if err := checkRange("responseRate", b.ResponseRatePct, MinResponseRatePct, MaxResponseRatePct); err != nil {
		return err
	}
	if err := checkRange("avgResponseTime", b.AvgResponseHours, MinAvgResponseHours, MaxAvgResponseHours); err != nil {
		return err
	}
	if err := checkRange("weeklyGrowth", b.WeeklyGrowthPct, MinWeeklyGrowthPct, MaxWeeklyGrowthPct); err != nil {
		return err
	}
	if err := checkRange("monthlyGrowth", b.MonthlyGrowthPct, MinMonthlyGrowthPct, MaxMonthlyGrowthPct); err != nil {
		return err
	}
	if len(b.Insights) != InsightsPerRecord {
		return fmt.Errorf("expected %d insights, got %d", InsightsPerRecord, len(b.Insights))
	}
	if b.Insights[0] == b.Insights[1] {
		return fmt.Errorf("duplicate insight %q", b.Insights[0])
	}
	return nil
}

func checkRange(field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return fmt.Errorf("%s %d out of range [%d, %d]", field, v, lo, hi)
	}
	return nil
}
