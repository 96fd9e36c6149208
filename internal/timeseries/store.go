// Package timeseries keeps the per-metric health history: for every metric a
// trailing 7-day and 30-day window of daily buckets that feed the dashboard
// charts, the report builder, and the AI context.
package timeseries

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/healthsense/healthsense/internal/types"
)

// Window sizes for the two series every metric carries
const (
	WeeklyWindow  = 7
	MonthlyWindow = 30
)

// DateFormat is the ISO calendar date used as the bucket key
const DateFormat = "2006-01-02"

// LabelFunc renders the axis label for a bucket date
type LabelFunc func(time.Time) string

// WeekdayLabel renders the weekday abbreviation used by 7-day windows
func WeekdayLabel(t time.Time) string {
	return t.Format("Mon")
}

// DayOfMonthLabel renders the day-of-month digits used by 30-day windows
func DayOfMonthLabel(t time.Time) string {
	return strconv.Itoa(t.Day())
}

// Store holds the in-memory series for all metrics. It is not safe for
// concurrent use; the view controller serializes access.
type Store struct {
	now    func() time.Time
	series map[int]map[string][]types.HealthDataPoint
}

// New creates a store using the wall clock.
func New() *Store {
	return NewWithClock(time.Now)
}

// NewWithClock creates a store with an injectable clock for tests.
func NewWithClock(now func() time.Time) *Store {
	return &Store{
		now: now,
		series: map[int]map[string][]types.HealthDataPoint{
			WeeklyWindow:  make(map[string][]types.HealthDataPoint),
			MonthlyWindow: make(map[string][]types.HealthDataPoint),
		},
	}
}

// EnsureSeries returns the series for a metric, synthesizing a zero-valued
// window of the trailing `window` calendar days ending today if none exists.
// An existing series whose newest bucket is still today is returned
// unchanged; a series left over from an earlier day is rolled forward,
// keeping the values of dates that remain inside the window.
func (s *Store) EnsureSeries(metric string, window int, labelFn LabelFunc) []types.HealthDataPoint {
	byMetric := s.forWindow(window)

	existing, ok := byMetric[metric]
	today := s.today()
	if ok && len(existing) > 0 && existing[len(existing)-1].Date == today {
		return existing
	}

	fresh := s.generate(window, labelFn)
	if ok {
		// Session crossed a midnight boundary: carry surviving values into
		// the shifted window instead of dropping them.
		old := make(map[string]float64, len(existing))
		for _, p := range existing {
			old[p.Date] = p.Value
		}
		for i := range fresh {
			if v, found := old[fresh[i].Date]; found {
				fresh[i].Value = v
			}
		}
	}
	byMetric[metric] = fresh
	return fresh
}

// UpsertToday records a value for a metric in today's bucket of both the
// weekly and monthly series, synthesizing either series if missing. The raw
// value may be composite ("120/80"); only the first component is stored.
// Unparsable values are skipped without error.
func (s *Store) UpsertToday(metric, rawValue string) {
	value, ok := ParseNumeric(rawValue)
	if !ok {
		slog.Debug("skipping unparsable metric value", "metric", metric, "value", rawValue)
		return
	}

	today := s.today()
	s.setToday(s.EnsureSeries(metric, WeeklyWindow, WeekdayLabel), today, value)
	s.setToday(s.EnsureSeries(metric, MonthlyWindow, DayOfMonthLabel), today, value)
}

// Series returns a copy of a metric's window, reporting whether it exists.
func (s *Store) Series(metric string, window int) ([]types.HealthDataPoint, bool) {
	points, ok := s.forWindow(window)[metric]
	if !ok {
		return nil, false
	}
	out := make([]types.HealthDataPoint, len(points))
	copy(out, points)
	return out, true
}

// Weekly returns copies of all 7-day series keyed by metric name.
func (s *Store) Weekly() map[string][]types.HealthDataPoint {
	return s.snapshot(WeeklyWindow)
}

// Monthly returns copies of all 30-day series keyed by metric name.
func (s *Store) Monthly() map[string][]types.HealthDataPoint {
	return s.snapshot(MonthlyWindow)
}

// Rehydrate replays persisted readings into the series. Readings dated
// outside the trailing windows are ignored; later readings for the same
// date overwrite earlier ones.
func (s *Store) Rehydrate(readings []types.Reading) {
	for _, r := range readings {
		value, ok := ParseNumeric(r.Value)
		if !ok {
			continue
		}
		date := r.RecordedAt.Format(DateFormat)
		s.setDate(s.EnsureSeries(r.Metric, WeeklyWindow, WeekdayLabel), date, value)
		s.setDate(s.EnsureSeries(r.Metric, MonthlyWindow, DayOfMonthLabel), date, value)
	}
}

// ParseNumeric applies the storage parsing policy: composite values split on
// "/" with only the first component parsed as a float.
func ParseNumeric(raw string) (float64, bool) {
	first, _, _ := strings.Cut(strings.TrimSpace(raw), "/")
	value, err := strconv.ParseFloat(strings.TrimSpace(first), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func (s *Store) forWindow(window int) map[string][]types.HealthDataPoint {
	byMetric, ok := s.series[window]
	if !ok {
		byMetric = make(map[string][]types.HealthDataPoint)
		s.series[window] = byMetric
	}
	return byMetric
}

func (s *Store) generate(window int, labelFn LabelFunc) []types.HealthDataPoint {
	points := make([]types.HealthDataPoint, 0, window)
	now := s.now()
	for i := window - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		points = append(points, types.HealthDataPoint{
			Date:  day.Format(DateFormat),
			Label: labelFn(day),
		})
	}
	return points
}

func (s *Store) setToday(points []types.HealthDataPoint, today string, value float64) {
	s.setDate(points, today, value)
}

func (s *Store) setDate(points []types.HealthDataPoint, date string, value float64) {
	for i := range points {
		if points[i].Date == date {
			points[i].Value = value
			return
		}
	}
}

func (s *Store) snapshot(window int) map[string][]types.HealthDataPoint {
	src := s.forWindow(window)
	out := make(map[string][]types.HealthDataPoint, len(src))
	for metric, points := range src {
		cp := make([]types.HealthDataPoint, len(points))
		copy(cp, points)
		out[metric] = cp
	}
	return out
}

func (s *Store) today() string {
	return s.now().Format(DateFormat)
}
