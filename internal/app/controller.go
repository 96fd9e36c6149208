package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/healthsense/healthsense/internal/ai"
	"github.com/healthsense/healthsense/internal/alerts"
	"github.com/healthsense/healthsense/internal/profile"
	"github.com/healthsense/healthsense/internal/registry"
	"github.com/healthsense/healthsense/internal/report"
	"github.com/healthsense/healthsense/internal/storage"
	"github.com/healthsense/healthsense/internal/timeseries"
	"github.com/healthsense/healthsense/internal/types"
)

// Controller owns the canonical application state: the user profile, the
// alert list, the tracked metric set, current values, and the history
// windows. All mutation goes through its methods; CLI commands and HTTP
// handlers share one instance.
//
// Controller is safe for concurrent use.
type Controller struct {
	mu       sync.Mutex
	store    storage.Storage
	registry registry.Registry
	series   *timeseries.Store

	state        State
	view         View
	userProfile  types.UserProfile
	onboarded    bool
	alertList    []types.Alert
	extraMetrics []string
	latest       map[string]string // metric name -> most recent raw value
}

// VitalView is one dashboard tile: registry metadata overlaid with the
// current value and the weekly history window.
type VitalView struct {
	Name    string                  `json:"name"`
	Value   string                  `json:"value"`
	Unit    string                  `json:"unit"`
	Icon    string                  `json:"icon"`
	Color   string                  `json:"color"`
	History []types.HealthDataPoint `json:"history"`
}

// MetricView is one extra-metric tile. Value is the placeholder until the
// user records a reading.
type MetricView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

// New creates a controller and hydrates it from storage: profile settings,
// persisted alerts, the tracked metric list, and the last thirty days of
// readings replayed into the history windows.
func New(ctx context.Context, store storage.Storage, reg registry.Registry) (*Controller, error) {
	c := &Controller{
		store:    store,
		registry: reg,
		series:   timeseries.New(),
		state:    StateLoading,
		view:     ViewDashboard,
		latest:   make(map[string]string),
	}
	if err := c.load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load application state: %w", err)
	}
	return c, nil
}

func (c *Controller) load(ctx context.Context) error {
	complete, err := c.store.GetSetting(ctx, storage.KeyOnboardingComplete)
	if err != nil {
		return err
	}
	name, err := c.store.GetSetting(ctx, storage.KeyUserName)
	if err != nil {
		return err
	}
	age, err := c.store.GetSetting(ctx, storage.KeyUserAge)
	if err != nil {
		return err
	}
	gender, err := c.store.GetSetting(ctx, storage.KeyUserGender)
	if err != nil {
		return err
	}
	photo, err := c.store.GetSetting(ctx, storage.KeyUserPhoto)
	if err != nil {
		return err
	}

	c.userProfile = types.UserProfile{
		Name:   name,
		Age:    age,
		Gender: types.Gender(gender),
		Photo:  photo,
	}
	// Both the flag and a name are required; a half-written profile sends
	// the user back through onboarding.
	c.onboarded = complete == "true" && name != ""
	if c.onboarded {
		c.state = StateReady
	} else {
		c.state = StateOnboarding
	}

	stored, err := c.store.GetAlerts(ctx, alerts.MaxAlerts)
	if err != nil {
		return err
	}
	c.alertList = stored

	tracked, err := c.store.GetTrackedMetrics(ctx)
	if err != nil {
		return err
	}
	if len(tracked) == 0 {
		// Starter selection; persisted only once the user changes it
		tracked = []string{"Steps", "Sleep Stages"}
	}
	c.extraMetrics = tracked

	since := time.Now().AddDate(0, 0, -timeseries.MonthlyWindow)
	readings, err := c.store.GetReadingsSince(ctx, since)
	if err != nil {
		return err
	}
	replay := make([]types.Reading, 0, len(readings))
	for _, r := range readings {
		replay = append(replay, *r)
	}
	c.series.Rehydrate(replay)

	latest, err := c.store.GetLatestReadings(ctx)
	if err != nil {
		return err
	}
	for metric, r := range latest {
		c.latest[metric] = r.Value
	}

	slog.Debug("application state loaded",
		"onboarded", c.onboarded,
		"alerts", len(c.alertList),
		"tracked_metrics", len(c.extraMetrics),
		"readings", len(readings))
	return nil
}

// State returns the lifecycle phase
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CurrentView returns the active view
func (c *Controller) CurrentView() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// SetView navigates to a view. Navigation is rejected until onboarding
// completes.
func (c *Controller) SetView(view View) error {
	if !view.IsValid() {
		return fmt.Errorf("invalid view: %s", view)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateReady {
		return fmt.Errorf("cannot navigate before onboarding completes")
	}
	c.view = view
	return nil
}

// CompleteOnboarding validates and persists the initial profile. A profile
// without a photo gets a deterministic avatar derived from name, age, and
// gender.
func (c *Controller) CompleteOnboarding(ctx context.Context, p types.UserProfile) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	if p.Photo == "" {
		p.Photo = profile.PickAvatar(p.Name, p.Age, p.Gender)
	}

	if err := c.persistProfile(ctx, p, true); err != nil {
		return err
	}

	c.mu.Lock()
	c.userProfile = p
	c.onboarded = true
	c.state = StateReady
	c.view = ViewDashboard
	c.mu.Unlock()
	return nil
}

// UpdateProfile replaces the stored profile. Clearing the photo reassigns
// the deterministic avatar.
func (c *Controller) UpdateProfile(ctx context.Context, p types.UserProfile) error {
	c.mu.Lock()
	onboarded := c.onboarded
	c.mu.Unlock()
	if !onboarded {
		return fmt.Errorf("cannot update profile before onboarding completes")
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	if p.Photo == "" {
		p.Photo = profile.PickAvatar(p.Name, p.Age, p.Gender)
	}

	if err := c.persistProfile(ctx, p, true); err != nil {
		return err
	}

	c.mu.Lock()
	c.userProfile = p
	c.view = ViewProfile
	c.mu.Unlock()
	return nil
}

func (c *Controller) persistProfile(ctx context.Context, p types.UserProfile, complete bool) error {
	settings := map[string]string{
		storage.KeyUserName:   p.Name,
		storage.KeyUserAge:    p.Age,
		storage.KeyUserGender: string(p.Gender),
		storage.KeyUserPhoto:  p.Photo,
	}
	if complete {
		settings[storage.KeyOnboardingComplete] = "true"
	}
	for key, value := range settings {
		if err := c.store.SetSetting(ctx, key, value); err != nil {
			return fmt.Errorf("failed to persist profile: %w", err)
		}
	}
	return nil
}

// Profile returns the current user profile
func (c *Controller) Profile() types.UserProfile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userProfile
}

// RecordMetric validates and records one measurement: persisted as a raw
// reading, reflected in the current-value map, and upserted into today's
// bucket of both history windows.
func (c *Controller) RecordMetric(ctx context.Context, metric, value string) error {
	metric = strings.TrimSpace(metric)
	value = strings.TrimSpace(value)
	if metric == "" {
		return fmt.Errorf("metric name cannot be empty")
	}
	if value == "" {
		return fmt.Errorf("value cannot be empty")
	}
	if _, known := c.registry.Lookup(metric); !known {
		return fmt.Errorf("unknown metric: %s", metric)
	}

	reading := &types.Reading{
		Metric:     metric,
		Value:      value,
		Unit:       c.registry.Unit(metric),
		RecordedAt: time.Now(),
	}
	if err := c.store.SaveReading(ctx, reading); err != nil {
		return fmt.Errorf("failed to record %s: %w", metric, err)
	}

	c.mu.Lock()
	c.latest[metric] = value
	c.series.UpsertToday(metric, value)
	c.mu.Unlock()

	slog.Debug("metric recorded", "metric", metric, "value", value)
	return nil
}

// AddAlerts merges new alerts into the list, dropping duplicates, and
// persists the result. It reports whether the list changed.
func (c *Controller) AddAlerts(ctx context.Context, incoming []alerts.Incoming) (changed bool, err error) {
	if len(incoming) == 0 {
		return false, nil
	}

	c.mu.Lock()
	merged := alerts.Merge(c.alertList, incoming)
	if len(merged) == len(c.alertList) && (len(merged) == 0 || &merged[0] == &c.alertList[0]) {
		c.mu.Unlock()
		return false, nil
	}
	c.alertList = merged
	snapshot := make([]types.Alert, len(merged))
	copy(snapshot, merged)
	c.mu.Unlock()

	if err := c.store.SaveAlerts(ctx, snapshot); err != nil {
		return true, fmt.Errorf("failed to persist alerts: %w", err)
	}
	return true, nil
}

// Alerts returns a copy of the current alert list, newest first
func (c *Controller) Alerts() []types.Alert {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]types.Alert, len(c.alertList))
	copy(out, c.alertList)
	return out
}

// VitalsForDisplay builds the dashboard tiles: every fixed vital with its
// registry metadata, the latest recorded value (or the mock default when
// nothing was ever recorded), and the weekly history window.
func (c *Controller) VitalsForDisplay() []VitalView {
	c.mu.Lock()
	defer c.mu.Unlock()

	infos := c.registry.Vitals()
	views := make([]VitalView, 0, len(infos))
	for _, info := range infos {
		name := string(info.Name)
		value := c.latest[name]
		if value == "" {
			value = info.DefaultValue
		}
		// Copy the window so later upserts cannot mutate a projection
		// already handed out (serve mode encodes it outside the lock)
		history := c.series.EnsureSeries(name, timeseries.WeeklyWindow, timeseries.WeekdayLabel)
		points := make([]types.HealthDataPoint, len(history))
		copy(points, history)
		views = append(views, VitalView{
			Name:    name,
			Value:   value,
			Unit:    info.Unit,
			Icon:    info.Icon,
			Color:   info.Color,
			History: points,
		})
	}
	return views
}

// ExtraMetricsForDisplay builds tiles for the tracked extra metrics
func (c *Controller) ExtraMetricsForDisplay() []MetricView {
	c.mu.Lock()
	defer c.mu.Unlock()

	views := make([]MetricView, 0, len(c.extraMetrics))
	for _, name := range c.extraMetrics {
		value := c.latest[name]
		if value == "" {
			value = ai.Placeholder
		}
		views = append(views, MetricView{
			Name:  name,
			Value: value,
			Unit:  c.registry.Unit(name),
		})
	}
	return views
}

// SetExtraMetrics replaces the tracked extra-metric set. Every name must
// come from the selectable catalog, and the fixed vitals cannot be added.
func (c *Controller) SetExtraMetrics(ctx context.Context, names []string) error {
	seen := make(map[string]bool, len(names))
	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		if !c.registry.InCatalog(name) {
			return fmt.Errorf("metric not in catalog: %s", name)
		}
		seen[name] = true
		cleaned = append(cleaned, name)
	}

	if err := c.store.SetTrackedMetrics(ctx, cleaned); err != nil {
		return fmt.Errorf("failed to persist tracked metrics: %w", err)
	}

	c.mu.Lock()
	c.extraMetrics = cleaned
	c.mu.Unlock()
	return nil
}

// ExtraMetrics returns the tracked extra-metric names
func (c *Controller) ExtraMetrics() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.extraMetrics))
	copy(out, c.extraMetrics)
	return out
}

// Weekly returns the weekly history windows for all metrics
func (c *Controller) Weekly() map[string][]types.HealthDataPoint {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.series.Weekly()
}

// Monthly returns the monthly history windows for all metrics
func (c *Controller) Monthly() map[string][]types.HealthDataPoint {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.series.Monthly()
}

// MetricHistory returns one metric's window, synthesizing it if absent
func (c *Controller) MetricHistory(metric string, window int) []types.HealthDataPoint {
	c.mu.Lock()
	defer c.mu.Unlock()
	labelFn := timeseries.LabelFunc(timeseries.WeekdayLabel)
	if window == timeseries.MonthlyWindow {
		labelFn = timeseries.DayOfMonthLabel
	}
	points := c.series.EnsureSeries(metric, window, labelFn)
	out := make([]types.HealthDataPoint, len(points))
	copy(out, points)
	return out
}

// Catalog returns the selectable extra-metric categories
func (c *Controller) Catalog() []registry.Category {
	return c.registry.Catalog()
}

// ReportInput gathers everything the report builder needs: the patient
// display name, the candidate metrics in report order, and both history
// windows.
func (c *Controller) ReportInput() report.Input {
	c.mu.Lock()
	defer c.mu.Unlock()

	var metrics []report.MetricInput
	for _, info := range c.registry.Vitals() {
		metrics = append(metrics, report.MetricInput{
			Name:    string(info.Name),
			Unit:    info.Unit,
			IsVital: true,
		})
	}
	for _, name := range c.extraMetrics {
		metrics = append(metrics, report.MetricInput{
			Name: name,
			Unit: c.registry.Unit(name),
		})
	}

	return report.Input{
		Patient: profile.DisplayName(c.userProfile),
		Metrics: metrics,
		Weekly:  c.series.Weekly(),
		Monthly: c.series.Monthly(),
	}
}

// metricValues snapshots the current readings in dashboard order. Callers
// must hold c.mu. Unrecorded metrics keep their empty value here: the mock
// defaults are a display affordance only and must never reach the model,
// so SummaryInput can filter them out and report "nothing to analyze".
func (c *Controller) metricValues() []ai.MetricValue {
	var values []ai.MetricValue
	for _, info := range c.registry.Vitals() {
		name := string(info.Name)
		values = append(values, ai.MetricValue{Name: name, Value: c.latest[name], Unit: info.Unit})
	}
	for _, name := range c.extraMetrics {
		values = append(values, ai.MetricValue{
			Name:  name,
			Value: c.latest[name],
			Unit:  c.registry.Unit(name),
		})
	}
	return values
}

// MetricsLine formats the current values into the compact line the AI
// summary consumes. Metrics with no value (or the placeholder) are omitted;
// an empty result means there is nothing to analyze.
func (c *Controller) MetricsLine() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ai.SummaryInput(c.metricValues())
}

// HealthContext formats the chat context: current values plus both history
// windows.
func (c *Controller) HealthContext() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ai.ChatContext(c.metricValues(), c.series.Weekly(), c.series.Monthly())
}
