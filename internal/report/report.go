// Package report assembles the exportable medical report: per-metric
// statistics over both history windows plus an AI interpretation section,
// rendered through a pluggable renderer.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/healthsense/healthsense/internal/timeseries"
	"github.com/healthsense/healthsense/internal/types"
)

// NoValue is printed for statistics over an empty period
const NoValue = "N/A"

// InterpretationFallback replaces the AI section when generation fails
const InterpretationFallback = "AI analysis could not be generated for this metric."

// Disclaimer closes every report
const Disclaimer = "Disclaimer: This report is generated by HealthSense based on user-provided data and is not a substitute for professional medical advice, diagnosis, or treatment. Always seek the advice of your physician or other qualified health provider with any questions you may have regarding a medical condition."

// PeriodStats holds formatted statistics for one window of one metric
type PeriodStats struct {
	Label   string `json:"label"`
	Average string `json:"average"`
	Min     string `json:"min"`
	Max     string `json:"max"`
}

// Section is one metric's analysis block
type Section struct {
	Metric         string      `json:"metric"`
	Unit           string      `json:"unit"`
	Weekly         PeriodStats `json:"weekly"`
	Monthly        PeriodStats `json:"monthly"`
	Interpretation string      `json:"interpretation"`
}

// Document is a fully assembled report, ready for rendering
type Document struct {
	Title      string    `json:"title"`
	Patient    string    `json:"patient"`
	Date       string    `json:"date"`
	Sections   []Section `json:"sections"`
	Disclaimer string    `json:"disclaimer"`
}

// Interpreter produces the AI interpretation text for one metric's data
type Interpreter interface {
	Interpret(ctx context.Context, metric string, isVital bool, weeklyValues, monthlyValues []float64) (string, error)
}

// Input carries everything the builder needs from application state
type Input struct {
	Patient string
	// Metrics in report order: the fixed vitals first, then tracked extras
	Metrics []MetricInput
	Weekly  map[string][]types.HealthDataPoint
	Monthly map[string][]types.HealthDataPoint
}

// MetricInput names one candidate metric for the report
type MetricInput struct {
	Name    string
	Unit    string
	IsVital bool
}

// Build assembles the report document. Metrics with no recorded data are
// skipped entirely; a report over an empty history has no sections. The
// interpreter may be nil, in which case every section carries the fallback
// text. Interpretation failures degrade to the fallback rather than
// aborting the report.
func Build(ctx context.Context, interp Interpreter, input Input) *Document {
	doc := &Document{
		Title:      "HealthSense Medical Report",
		Patient:    input.Patient,
		Date:       time.Now().Format("1/2/2006"),
		Disclaimer: Disclaimer,
	}

	for _, metric := range input.Metrics {
		weekly := timeseries.NonZero(input.Weekly[metric.Name])
		if len(weekly) == 0 {
			continue
		}
		monthly := timeseries.NonZero(input.Monthly[metric.Name])

		section := Section{
			Metric:         metric.Name,
			Unit:           metric.Unit,
			Weekly:         periodStats("Last 7 Days", weekly),
			Monthly:        periodStats("Last 30 Days", monthly),
			Interpretation: InterpretationFallback,
		}

		if interp != nil {
			text, err := interp.Interpret(ctx, metric.Name, metric.IsVital, values(weekly), values(monthly))
			if err != nil {
				slog.Warn("interpretation failed", "metric", metric.Name, "error", err)
			} else {
				section.Interpretation = text
			}
		}

		doc.Sections = append(doc.Sections, section)
	}
	return doc
}

func periodStats(label string, points []types.HealthDataPoint) PeriodStats {
	stats, ok := timeseries.Stats(points)
	if !ok {
		return PeriodStats{Label: label, Average: NoValue, Min: NoValue, Max: NoValue}
	}
	return PeriodStats{
		Label:   label,
		Average: fmt.Sprintf("%.1f", stats.Average),
		Min:     fmt.Sprintf("%.1f", stats.Min),
		Max:     fmt.Sprintf("%.1f", stats.Max),
	}
}

func values(points []types.HealthDataPoint) []float64 {
	out := make([]float64, 0, len(points))
	for _, p := range points {
		out = append(out, p.Value)
	}
	return out
}
