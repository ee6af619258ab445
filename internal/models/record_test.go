package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() BusinessRecord {
	return BusinessRecord{
		Rating:             4.625,
		ReviewCount:        275,
		ResponseRatePct:    85,
		AvgResponseHours:   8,
		Headline:           "Why Joe's Pizza is Austin's Sweetest Spot in 2025",
		GeneratedAt:        time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		BusinessName:       "Joe's Pizza",
		Location:           "Austin",
		Insights:           []string{"High engagement with reviews", "Strong brand reputation"},
		WeeklyGrowthPct:    17,
		MonthlyGrowthPct:   45,
		CompetitorStanding: StandingAboveAverage,
		Trend:              TrendGrowing,
	}
}

func TestRating_String(t *testing.T) {
	tests := []struct {
		rating   Rating
		expected string
	}{
		{3.5, "3.5"},
		{4.0, "4.0"},
		{4.625, "4.6"},
		{4.96, "5.0"},
		{5, "5.0"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.rating.String())
	}
}

func TestRating_JSON(t *testing.T) {
	data, err := json.Marshal(Rating(4.625))
	require.NoError(t, err)
	assert.Equal(t, `"4.6"`, string(data))

	var fromString Rating
	require.NoError(t, json.Unmarshal([]byte(`"4.2"`), &fromString))
	assert.Equal(t, Rating(4.2), fromString)

	var fromNumber Rating
	require.NoError(t, json.Unmarshal([]byte(`3.9`), &fromNumber))
	assert.Equal(t, Rating(3.9), fromNumber)

	var bad Rating
	assert.Error(t, json.Unmarshal([]byte(`"four"`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`true`), &bad))
}

func TestBusinessRecord_JSONNames(t *testing.T) {
	data, err := json.Marshal(validRecord())
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Equal(t, "4.6", raw["rating"])
	assert.EqualValues(t, 275, raw["reviews"])
	assert.EqualValues(t, 85, raw["responseRate"])
	assert.EqualValues(t, 8, raw["avgResponseTime"])
	assert.EqualValues(t, 17, raw["weeklyGrowth"])
	assert.EqualValues(t, 45, raw["monthlyGrowth"])
	assert.Equal(t, "Above Average", raw["competitorComparison"])
	assert.Equal(t, "Growing", raw["trend"])
	assert.Equal(t, "2025-06-01T12:00:00Z", raw["lastUpdated"])
	assert.Equal(t, "Joe's Pizza", raw["businessName"])
	assert.Equal(t, "Austin", raw["location"])
	assert.Len(t, raw["insights"], 2)
}

func TestBusinessRecord_Check(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(r *BusinessRecord)
		errorMsg string
	}{
		{name: "valid", mutate: func(r *BusinessRecord) {}},
		{name: "rating at lower bound", mutate: func(r *BusinessRecord) { r.Rating = 3.5 }},
		{name: "rating at upper bound", mutate: func(r *BusinessRecord) { r.Rating = 5.0 }},
		{name: "rating too low", mutate: func(r *BusinessRecord) { r.Rating = 3.49 }, errorMsg: "rating"},
		{name: "rating too high", mutate: func(r *BusinessRecord) { r.Rating = 5.01 }, errorMsg: "rating"},
		{name: "reviews too low", mutate: func(r *BusinessRecord) { r.ReviewCount = 24 }, errorMsg: "reviews 24"},
		{name: "reviews too high", mutate: func(r *BusinessRecord) { r.ReviewCount = 525 }, errorMsg: "reviews 525"},
		{name: "response rate", mutate: func(r *BusinessRecord) { r.ResponseRatePct = 100 }, errorMsg: "responseRate"},
		{name: "response time", mutate: func(r *BusinessRecord) { r.AvgResponseHours = 1 }, errorMsg: "avgResponseTime"},
		{name: "weekly growth", mutate: func(r *BusinessRecord) { r.WeeklyGrowthPct = 30 }, errorMsg: "weeklyGrowth"},
		{name: "monthly growth", mutate: func(r *BusinessRecord) { r.MonthlyGrowthPct = 14 }, errorMsg: "monthlyGrowth"},
		{name: "one insight", mutate: func(r *BusinessRecord) { r.Insights = r.Insights[:1] }, errorMsg: "expected 2 insights"},
		{name: "duplicate insights", mutate: func(r *BusinessRecord) { r.Insights = []string{"a", "a"} }, errorMsg: "duplicate insight"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecord()
			tt.mutate(&r)
			err := r.Check()

			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}
