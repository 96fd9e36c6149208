package ai

import (
	"fmt"
	"sort"
	"strings"

	"github.com/healthsense/healthsense/internal/types"
)

// Placeholder is the current-value sentinel for a metric with no reading yet
const Placeholder = "--"

// MetricValue is one metric's current reading as shown on the dashboard
type MetricValue struct {
	Name  string
	Value string
	Unit  string
}

// SummaryInput joins the metrics that actually have a reading into the
// prompt line for the dashboard summary: "name: value unit" pairs, comma
// separated. Metrics whose value is empty or the "--" placeholder are
// skipped. An empty result means there is not enough data to analyze and
// the caller must not issue the AI call.
func SummaryInput(metrics []MetricValue) string {
	var parts []string
	for _, m := range metrics {
		v := strings.TrimSpace(m.Value)
		if v == "" || v == Placeholder {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s %s", m.Name, m.Value, m.Unit))
	}
	return strings.Join(parts, ", ")
}

// ChatContext assembles the health context seeded into the chat system
// instruction: the current values line followed by chronological history
// summaries for the weekly and monthly windows. Metrics whose window holds
// no non-zero reading are omitted from that window's summary entirely.
func ChatContext(current []MetricValue, weekly, monthly map[string][]types.HealthDataPoint) string {
	currentLine := SummaryInput(current)
	if currentLine == "" {
		currentLine = "No current data"
	}

	context := fmt.Sprintf("Current vitals: %s.", currentLine)
	if summary := historySummary(weekly, "Last 7 days"); summary != "" {
		context += summary
	}
	if summary := historySummary(monthly, "Last 30 days"); summary != "" {
		context += summary
	}
	return context
}

// historySummary renders one window across all metrics as
// "\n<period> data (chronological): Metric [v1, v2, ...]; ..." or "" when
// no metric in the window has a reading.
func historySummary(history map[string][]types.HealthDataPoint, period string) string {
	metrics := make([]string, 0, len(history))
	for name := range history {
		metrics = append(metrics, name)
	}
	sort.Strings(metrics)

	var entries []string
	for _, name := range metrics {
		var values []string
		for _, p := range history[name] {
			if p.Value > 0 {
				values = append(values, fmt.Sprintf("%.1f", p.Value))
			}
		}
		if len(values) == 0 {
			continue
		}
		entries = append(entries, fmt.Sprintf("%s [%s]", name, strings.Join(values, ", ")))
	}
	if len(entries) == 0 {
		return ""
	}
	return fmt.Sprintf("\n%s data (chronological): %s", period, strings.Join(entries, "; "))
}

// normalRanges is the reference context given to the model for the fixed vitals
const normalRanges = "Heart Rate 60-100 bpm, SpO2 95-100%, BP < 120/80 mmHg, Temp 36.5-37.5 C, Glucose 70-100 mg/dL"

// summarySystemPrompt instructs the model to produce the two-part
// summary/alerts response split by the separator token.
func summarySystemPrompt() string {
	return fmt.Sprintf(`You are HealthSense, an AI health assistant. Analyze user's health metrics. Normal ranges: %s.
Your response must have two parts separated by '%s'.
Part 1 (Summary):
- Provide a brief, common-sense interpretation of all metrics.
- If a situation is highly critical (e.g., SpO2 below 92%%), prefix the summary with the special tag %s.
- If vitals are normal, give a reassuring summary.
- If any vital is irregular, identify it and provide a safe, simple recommendation.
- CRITICAL: Never give a medical diagnosis. Always end with a recommendation to consult a healthcare professional.
Part 2 (Alerts JSON):
- After the separator, provide a valid JSON object with an 'alerts' array.
- The 'alerts' array should ONLY contain entries for vitals that are outside the normal range.
- For each alert, provide a 'title', a 'detail' string, and a 'risk' level ('Low', 'Moderate', 'Critical').
- If all vitals are normal, the 'alerts' array should be empty.`, normalRanges, Separator, EmergencyTag)
}

// chatSystemPrompt seeds the assistant conversation with the user's name and
// formatted health context.
func chatSystemPrompt(userName, healthContext string) string {
	return fmt.Sprintf(`You are HealthSense, a friendly and intelligent AI health assistant for %s. Your goal is to provide helpful, informative, and safe health-related guidance based on user questions. You must never provide a medical diagnosis. Always strongly advise the user to consult a healthcare professional for any medical concerns, diagnosis, or treatment. Keep your answers concise and easy to understand.
Here is the user's comprehensive health data, use it for context when answering questions: %s`, userName, healthContext)
}

// interpretPrompt builds the report-section prompt for one metric.
func interpretPrompt(metric string, isVital bool, weeklyValues, monthlyValues []float64) string {
	format := func(values []float64) string {
		parts := make([]string, len(values))
		for i, v := range values {
			parts[i] = fmt.Sprintf("%g", v)
		}
		return strings.Join(parts, ", ")
	}

	prompt := fmt.Sprintf(`Analyze the following health data for a section of a medical report on %q. Provide a brief, professional, and objective interpretation based ONLY on the provided data, mentioning trends, averages, highs, and lows. Do not give a diagnosis or any medical advice. Stick strictly to interpreting the numbers provided.`, metric)
	if isVital {
		prompt += fmt.Sprintf(" Normal ranges for context: %s (for Blood Pressure use the single value provided, which is systolic).", normalRanges)
	}
	prompt += fmt.Sprintf(" The data is: Weekly data points for %s: %s. Monthly data points: %s.",
		metric, format(weeklyValues), format(monthlyValues))
	return prompt
}
