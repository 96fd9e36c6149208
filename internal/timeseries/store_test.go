package timeseries

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthsense/healthsense/internal/types"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestEnsureSeries_WeeklyWindow(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC) // a Friday
	store := NewWithClock(fixedClock(now))

	points := store.EnsureSeries("Heart Rate", WeeklyWindow, WeekdayLabel)

	require.Len(t, points, 7)
	assert.Equal(t, "2025-03-08", points[0].Date)
	assert.Equal(t, "2025-03-14", points[6].Date)
	assert.Equal(t, "Sat", points[0].Label)
	assert.Equal(t, "Fri", points[6].Label)
	for _, p := range points {
		assert.Zero(t, p.Value)
	}
}

func TestEnsureSeries_MonthlyWindow(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	store := NewWithClock(fixedClock(now))

	points := store.EnsureSeries("Glucose", MonthlyWindow, DayOfMonthLabel)

	require.Len(t, points, 30)
	assert.Equal(t, "2025-02-13", points[0].Date)
	assert.Equal(t, "2025-03-14", points[29].Date)
	assert.Equal(t, "13", points[0].Label)
	assert.Equal(t, "14", points[29].Label)
}

func TestEnsureSeries_Idempotent(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	store := NewWithClock(fixedClock(now))

	store.UpsertToday("Heart Rate", "72")
	first := store.EnsureSeries("Heart Rate", WeeklyWindow, WeekdayLabel)
	second := store.EnsureSeries("Heart Rate", WeeklyWindow, WeekdayLabel)

	assert.Equal(t, first, second)
	assert.Equal(t, 72.0, second[6].Value)
}

func TestEnsureSeries_RollsForwardAcrossMidnight(t *testing.T) {
	current := time.Date(2025, 3, 14, 23, 0, 0, 0, time.UTC)
	store := NewWithClock(func() time.Time { return current })
	store.UpsertToday("Heart Rate", "72")

	// Advance the clock past midnight
	current = current.Add(2 * time.Hour)
	points := store.EnsureSeries("Heart Rate", WeeklyWindow, WeekdayLabel)

	require.Len(t, points, 7)
	assert.Equal(t, "2025-03-15", points[6].Date)
	// Yesterday's reading survives in the shifted window
	assert.Equal(t, "2025-03-14", points[5].Date)
	assert.Equal(t, 72.0, points[5].Value)
	assert.Zero(t, points[6].Value)
}

func TestUpsertToday_WritesBothWindows(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	store := NewWithClock(fixedClock(now))

	store.UpsertToday("Glucose", "95")

	weekly, ok := store.Series("Glucose", WeeklyWindow)
	require.True(t, ok)
	assert.Equal(t, 95.0, weekly[6].Value)

	monthly, ok := store.Series("Glucose", MonthlyWindow)
	require.True(t, ok)
	assert.Equal(t, 95.0, monthly[29].Value)
}

func TestUpsertToday_CompositeValueKeepsFirstComponent(t *testing.T) {
	store := NewWithClock(fixedClock(time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)))

	store.UpsertToday("Blood Pressure", "130/85")

	weekly, ok := store.Series("Blood Pressure", WeeklyWindow)
	require.True(t, ok)
	assert.Equal(t, 130.0, weekly[6].Value)
}

func TestUpsertToday_UnparsableValueIsNoOp(t *testing.T) {
	store := NewWithClock(fixedClock(time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)))

	store.UpsertToday("Heart Rate", "not-a-number")

	_, ok := store.Series("Heart Rate", WeeklyWindow)
	assert.False(t, ok, "no series should be created for an unparsable value")
}

func TestUpsertToday_OverwritesSameDay(t *testing.T) {
	store := NewWithClock(fixedClock(time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)))

	store.UpsertToday("Heart Rate", "72")
	store.UpsertToday("Heart Rate", "78")

	weekly, _ := store.Series("Heart Rate", WeeklyWindow)
	assert.Equal(t, 78.0, weekly[6].Value)
}

func TestRehydrate_ReplaysReadings(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	store := NewWithClock(fixedClock(now))

	store.Rehydrate([]types.Reading{
		{Metric: "Glucose", Value: "95", RecordedAt: now},
		{Metric: "Glucose", Value: "101", RecordedAt: now.AddDate(0, 0, -2)},
		{Metric: "Glucose", Value: "88", RecordedAt: now.AddDate(0, 0, -60)}, // outside both windows
		{Metric: "Heart Rate", Value: "junk", RecordedAt: now},
	})

	weekly, ok := store.Series("Glucose", WeeklyWindow)
	require.True(t, ok)
	assert.Equal(t, 95.0, weekly[6].Value)
	assert.Equal(t, 101.0, weekly[4].Value)

	for _, p := range weekly {
		assert.NotEqual(t, 88.0, p.Value)
	}

	_, ok = store.Series("Heart Rate", WeeklyWindow)
	assert.False(t, ok)
}

func TestRehydrate_LaterReadingWinsDay(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	store := NewWithClock(fixedClock(now))

	store.Rehydrate([]types.Reading{
		{Metric: "Heart Rate", Value: "70", RecordedAt: now.Add(-4 * time.Hour)},
		{Metric: "Heart Rate", Value: "76", RecordedAt: now.Add(-1 * time.Hour)},
	})

	weekly, _ := store.Series("Heart Rate", WeeklyWindow)
	assert.Equal(t, 76.0, weekly[6].Value)
}

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  float64
		valid bool
	}{
		{"integer", "72", 72, true},
		{"decimal", "36.8", 36.8, true},
		{"composite keeps first", "120/80", 120, true},
		{"composite with spaces", " 130/85 ", 130, true},
		{"garbage", "high", 0, false},
		{"empty", "", 0, false},
		{"slash only", "/", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNumeric(tt.raw)
			assert.Equal(t, tt.valid, ok)
			if tt.valid {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestStats(t *testing.T) {
	points := []types.HealthDataPoint{
		{Date: "2025-03-10", Value: 0},
		{Date: "2025-03-11", Value: 70},
		{Date: "2025-03-12", Value: 80},
		{Date: "2025-03-13", Value: 0},
		{Date: "2025-03-14", Value: 90},
	}

	stats, ok := Stats(points)
	require.True(t, ok)
	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, 80.0, stats.Average)
	assert.Equal(t, 70.0, stats.Min)
	assert.Equal(t, 90.0, stats.Max)
}

func TestStats_AllZero(t *testing.T) {
	_, ok := Stats([]types.HealthDataPoint{{Value: 0}, {Value: 0}})
	assert.False(t, ok)
}

func TestNonZero(t *testing.T) {
	points := []types.HealthDataPoint{{Value: 0}, {Value: 70}, {Value: 0}, {Value: 90}}
	filtered := NonZero(points)
	require.Len(t, filtered, 2)
	assert.Equal(t, 70.0, filtered[0].Value)
	assert.Equal(t, 90.0, filtered[1].Value)
}
