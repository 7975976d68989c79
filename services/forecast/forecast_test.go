package forecast_test

import (
	"context"
	"testing"
	"time"

	"medisched/models"
	"medisched/services/forecast"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func visit(date string, hour int) models.HistoricalVisit {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return models.HistoricalVisit{Date: d, Hour: hour}
}

func TestHourlyAverages_DividesByDistinctDates(t *testing.T) {
	// Two Mondays, four visits at hour 9 and one at hour 14.
	visits := []models.HistoricalVisit{
		visit("2025-02-17", 9),
		visit("2025-02-17", 9),
		visit("2025-02-24", 9),
		visit("2025-02-24", 9),
		visit("2025-02-24", 14),
	}

	curve := forecast.HourlyAverages(visits, time.Monday)
	require.Len(t, curve, forecast.Hours)
	assert.Equal(t, 2.0, curve[9])
	assert.Equal(t, 0.5, curve[14])
	assert.Equal(t, 0.0, curve[10])
}

func TestHourlyAverages_IgnoresOtherWeekdays(t *testing.T) {
	visits := []models.HistoricalVisit{
		visit("2025-02-17", 9),  // Monday
		visit("2025-02-18", 9),  // Tuesday
		visit("2025-02-18", 10), // Tuesday
	}

	curve := forecast.HourlyAverages(visits, time.Tuesday)
	assert.Equal(t, 1.0, curve[9])
	assert.Equal(t, 1.0, curve[10])
	// The Monday visit must not leak into the Tuesday bucket.
	assert.Equal(t, 0.0, curve[8])
}

func TestHourlyAverages_DropsOutOfRangeHours(t *testing.T) {
	visits := []models.HistoricalVisit{
		visit("2025-02-17", 9),
		visit("2025-02-17", -1),
		visit("2025-02-17", 24),
	}

	curve := forecast.HourlyAverages(visits, time.Monday)
	assert.Equal(t, 1.0, curve[9])
}

func TestHourlyAverages_NoHistoryYieldsFlatCurve(t *testing.T) {
	curve := forecast.HourlyAverages(nil, time.Monday)
	require.Len(t, curve, forecast.Hours)
	for _, level := range curve {
		assert.Equal(t, forecast.DefaultDemandLevel, level)
	}
}

func TestFlatForecaster(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	curve, err := forecast.FlatForecaster{Level: 2.5}.PredictDemand(ctx, date, models.TypeCheckup, "outpatient")
	require.NoError(t, err)
	require.Len(t, curve, forecast.Hours)
	for _, level := range curve {
		assert.Equal(t, 2.5, level)
	}

	// A non-positive level falls back to the default.
	curve, err = forecast.FlatForecaster{}.PredictDemand(ctx, date, models.TypeCheckup, "outpatient")
	require.NoError(t, err)
	assert.Equal(t, forecast.DefaultDemandLevel, curve[0])
}

func TestWarmKey(t *testing.T) {
	assert.Equal(t, "forecast:hourly:cardiology:1", forecast.WarmKey("cardiology", time.Monday))
}
