package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthsense/healthsense/internal/alerts"
	"github.com/healthsense/healthsense/internal/registry"
	"github.com/healthsense/healthsense/internal/storage/sqlite"
	"github.com/healthsense/healthsense/internal/timeseries"
	"github.com/healthsense/healthsense/internal/types"
)

func newTestController(t *testing.T) (*Controller, *sqlite.SQLiteStorage) {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "health.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	c, err := New(context.Background(), store, registry.Default())
	require.NoError(t, err)
	return c, store
}

func testProfile() types.UserProfile {
	return types.UserProfile{Name: "maria", Age: "29", Gender: types.GenderFemale}
}

func TestNew_FreshDatabaseStartsInOnboarding(t *testing.T) {
	c, _ := newTestController(t)

	assert.Equal(t, StateOnboarding, c.State())
	assert.Empty(t, c.Profile().Name)

	err := c.SetView(ViewReports)
	assert.Error(t, err)
	assert.Equal(t, ViewDashboard, c.CurrentView())
}

func TestCompleteOnboarding(t *testing.T) {
	c, store := newTestController(t)
	ctx := context.Background()

	require.NoError(t, c.CompleteOnboarding(ctx, testProfile()))

	assert.Equal(t, StateReady, c.State())
	assert.Equal(t, ViewDashboard, c.CurrentView())

	p := c.Profile()
	assert.Equal(t, "maria", p.Name)
	assert.NotEmpty(t, p.Photo, "profile without a photo gets a generated avatar")

	// A second controller over the same database skips onboarding
	c2, err := New(ctx, store, registry.Default())
	require.NoError(t, err)
	assert.Equal(t, StateReady, c2.State())
	assert.Equal(t, p.Photo, c2.Profile().Photo)
}

func TestCompleteOnboarding_RejectsInvalidProfile(t *testing.T) {
	c, _ := newTestController(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		profile types.UserProfile
	}{
		{"missing name", types.UserProfile{Age: "29", Gender: types.GenderFemale}},
		{"missing age", types.UserProfile{Name: "Maria", Gender: types.GenderFemale}},
		{"bad gender", types.UserProfile{Name: "Maria", Age: "29", Gender: "unknown"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, c.CompleteOnboarding(ctx, tt.profile))
			assert.Equal(t, StateOnboarding, c.State())
		})
	}
}

func TestUpdateProfile(t *testing.T) {
	c, _ := newTestController(t)
	ctx := context.Background()

	err := c.UpdateProfile(ctx, testProfile())
	assert.Error(t, err, "profile cannot be updated before onboarding")

	require.NoError(t, c.CompleteOnboarding(ctx, testProfile()))
	original := c.Profile().Photo

	updated := types.UserProfile{Name: "lucia", Age: "34", Gender: types.GenderFemale}
	require.NoError(t, c.UpdateProfile(ctx, updated))

	p := c.Profile()
	assert.Equal(t, "lucia", p.Name)
	assert.NotEqual(t, original, p.Photo, "identity change reassigns the avatar")
	assert.Equal(t, ViewProfile, c.CurrentView())
}

func TestSetView(t *testing.T) {
	c, _ := newTestController(t)
	ctx := context.Background()
	require.NoError(t, c.CompleteOnboarding(ctx, testProfile()))

	require.NoError(t, c.SetView(ViewHealthAI))
	assert.Equal(t, ViewHealthAI, c.CurrentView())

	assert.Error(t, c.SetView(View("settings")))
	assert.Equal(t, ViewHealthAI, c.CurrentView())
}

func TestRecordMetric_RoundTrip(t *testing.T) {
	c, _ := newTestController(t)
	ctx := context.Background()

	require.NoError(t, c.RecordMetric(ctx, "Glucose", "95"))

	var glucose *VitalView
	for _, v := range c.VitalsForDisplay() {
		if v.Name == "Glucose" {
			v := v
			glucose = &v
		}
	}
	require.NotNil(t, glucose)
	assert.Equal(t, "95", glucose.Value)
	assert.Equal(t, "mg/dL", glucose.Unit)

	history := c.MetricHistory("Glucose", timeseries.WeeklyWindow)
	require.Len(t, history, timeseries.WeeklyWindow)
	assert.Equal(t, 95.0, history[len(history)-1].Value, "today's bucket holds the reading")
}

func TestRecordMetric_Validation(t *testing.T) {
	c, _ := newTestController(t)
	ctx := context.Background()

	assert.Error(t, c.RecordMetric(ctx, "", "95"))
	assert.Error(t, c.RecordMetric(ctx, "Glucose", ""))
	assert.Error(t, c.RecordMetric(ctx, "Cholesterol", "180"))
}

func TestRecordMetric_SurvivesRestart(t *testing.T) {
	c, store := newTestController(t)
	ctx := context.Background()

	require.NoError(t, c.RecordMetric(ctx, "Heart Rate", "72"))
	require.NoError(t, c.RecordMetric(ctx, "Blood Pressure", "130/85"))

	c2, err := New(ctx, store, registry.Default())
	require.NoError(t, err)

	history := c2.MetricHistory("Heart Rate", timeseries.WeeklyWindow)
	assert.Equal(t, 72.0, history[len(history)-1].Value)

	// Composite readings rehydrate from their numeric projection
	bp := c2.MetricHistory("Blood Pressure", timeseries.WeeklyWindow)
	assert.Equal(t, 130.0, bp[len(bp)-1].Value)

	for _, v := range c2.VitalsForDisplay() {
		if v.Name == "Blood Pressure" {
			assert.Equal(t, "130/85", v.Value, "latest value keeps the raw string")
		}
	}
}

func TestVitalsForDisplay_DefaultsBeforeAnyReading(t *testing.T) {
	c, _ := newTestController(t)

	views := c.VitalsForDisplay()
	require.Len(t, views, 5)
	assert.Equal(t, "Heart Rate", views[0].Name)
	assert.Equal(t, "78", views[0].Value)
	assert.Equal(t, "120/80", views[2].Value)
	for _, v := range views {
		assert.Len(t, v.History, timeseries.WeeklyWindow)
	}
}

func TestVitalsForDisplay_HistoryIsDetached(t *testing.T) {
	c, _ := newTestController(t)
	ctx := context.Background()

	before := c.VitalsForDisplay()
	require.Equal(t, "Heart Rate", before[0].Name)
	require.NoError(t, c.RecordMetric(ctx, "Heart Rate", "82"))

	// The projection handed out earlier must not change under later writes
	for _, p := range before[0].History {
		assert.Zero(t, p.Value)
	}

	after := c.VitalsForDisplay()
	assert.Equal(t, 82.0, after[0].History[len(after[0].History)-1].Value)
}

func TestAddAlerts(t *testing.T) {
	c, store := newTestController(t)
	ctx := context.Background()

	incoming := []alerts.Incoming{
		{Title: "High Heart Rate", Detail: "Resting HR above 100 bpm", Risk: types.RiskModerate},
	}

	changed, err := c.AddAlerts(ctx, incoming)
	require.NoError(t, err)
	assert.True(t, changed)
	require.Len(t, c.Alerts(), 1)

	// The same finding again is a no-op and does not touch storage
	changed, err = c.AddAlerts(ctx, incoming)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Len(t, c.Alerts(), 1)

	changed, err = c.AddAlerts(ctx, nil)
	require.NoError(t, err)
	assert.False(t, changed)

	// Alerts survive a restart in feed order
	changed, err = c.AddAlerts(ctx, []alerts.Incoming{
		{Title: "Low SpO2", Detail: "Below 92%", Risk: types.RiskCritical},
	})
	require.NoError(t, err)
	assert.True(t, changed)

	c2, err := New(ctx, store, registry.Default())
	require.NoError(t, err)
	list := c2.Alerts()
	require.Len(t, list, 2)
	assert.Equal(t, "Low SpO2", list[0].Title)
	assert.Equal(t, "High Heart Rate", list[1].Title)
}

func TestExtraMetrics_StarterSelection(t *testing.T) {
	c, _ := newTestController(t)

	assert.Equal(t, []string{"Steps", "Sleep Stages"}, c.ExtraMetrics())
}

func TestSetExtraMetrics(t *testing.T) {
	c, store := newTestController(t)
	ctx := context.Background()

	require.NoError(t, c.SetExtraMetrics(ctx, []string{"Steps", "Stress Level", "Steps", " "}))
	assert.Equal(t, []string{"Steps", "Stress Level"}, c.ExtraMetrics())

	assert.Error(t, c.SetExtraMetrics(ctx, []string{"Heart Rate"}), "vitals are not selectable extras")
	assert.Error(t, c.SetExtraMetrics(ctx, []string{"Cholesterol"}))
	assert.Equal(t, []string{"Steps", "Stress Level"}, c.ExtraMetrics(), "failed replace leaves the set untouched")

	c2, err := New(ctx, store, registry.Default())
	require.NoError(t, err)
	assert.Equal(t, []string{"Steps", "Stress Level"}, c2.ExtraMetrics())
}

func TestExtraMetricsForDisplay_PlaceholderUntilRecorded(t *testing.T) {
	c, _ := newTestController(t)
	ctx := context.Background()

	require.NoError(t, c.SetExtraMetrics(ctx, []string{"Steps"}))

	views := c.ExtraMetricsForDisplay()
	require.Len(t, views, 1)
	assert.Equal(t, "--", views[0].Value)

	require.NoError(t, c.RecordMetric(ctx, "Steps", "8000"))
	views = c.ExtraMetricsForDisplay()
	assert.Equal(t, "8000", views[0].Value)
	assert.Equal(t, "steps", views[0].Unit)
}

func TestMetricsLine_EmptyUntilRecorded(t *testing.T) {
	c, _ := newTestController(t)
	ctx := context.Background()

	// A fresh profile has nothing to analyze: the display defaults are
	// mock values and must not be summarized as if the user measured them
	require.Empty(t, c.MetricsLine())

	require.NoError(t, c.RecordMetric(ctx, "Heart Rate", "102"))
	line := c.MetricsLine()
	assert.Contains(t, line, "Heart Rate: 102 bpm")
	assert.NotContains(t, line, "Glucose")
	assert.NotContains(t, line, "120/80")
}

func TestHealthContext_IncludesHistory(t *testing.T) {
	c, _ := newTestController(t)
	ctx := context.Background()

	assert.Contains(t, c.HealthContext(), "No current data")

	require.NoError(t, c.RecordMetric(ctx, "Glucose", "95"))

	got := c.HealthContext()
	assert.Contains(t, got, "Glucose: 95 mg/dL")
	assert.Contains(t, got, "Last 7 days data")
	assert.Contains(t, got, "95.0")
}

func TestReportInput(t *testing.T) {
	c, _ := newTestController(t)
	ctx := context.Background()

	require.NoError(t, c.CompleteOnboarding(ctx, testProfile()))
	require.NoError(t, c.SetExtraMetrics(ctx, []string{"Steps"}))
	require.NoError(t, c.RecordMetric(ctx, "Glucose", "95"))

	input := c.ReportInput()
	assert.Equal(t, "Maria", input.Patient)
	require.Len(t, input.Metrics, 6)
	assert.True(t, input.Metrics[0].IsVital)
	assert.Equal(t, "Steps", input.Metrics[5].Name)
	assert.False(t, input.Metrics[5].IsVital)
	assert.NotEmpty(t, input.Weekly["Glucose"])
}
