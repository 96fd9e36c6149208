package ai

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"

	"github.com/healthsense/healthsense/internal/alerts"
)

// Pre-compiled patterns for cleaning JSON out of model output.
var (
	codeFenceRegex     = regexp.MustCompile("(?s)`{3}(?:json)?\\s*\\n?([\\s\\S]*?)\\n?`{3}")
	trailingCommaRegex = regexp.MustCompile(`,(\s*[}\]])`)
)

// alertsPayload is the structured part of a summary response
type alertsPayload struct {
	Alerts []alerts.Incoming `json:"alerts"`
}

// ExtractAlerts decodes the alerts payload that follows the separator in a
// summary response. Models wrap JSON in prose or code fences often enough
// that a strict parse is not sufficient, so parsing falls through a short
// chain of cleanup strategies:
//
//  1. direct parse
//  2. code fences stripped
//  3. the first-{-to-last-} substring, with trailing commas removed
//
// A payload that defeats all three yields zero alerts; the failure is
// logged, never surfaced — a broken alerts block must not take down the
// summary that preceded it.
func ExtractAlerts(payload string) []alerts.Incoming {
	trimmed := strings.TrimSpace(payload)
	if trimmed == "" {
		return nil
	}

	for _, candidate := range payloadCandidates(trimmed) {
		var parsed alertsPayload
		if err := json.Unmarshal([]byte(candidate), &parsed); err == nil {
			return validAlerts(parsed.Alerts)
		}
	}

	slog.Warn("failed to parse alerts payload from AI response",
		"payloadPreview", preview(trimmed, 200))
	return nil
}

func payloadCandidates(trimmed string) []string {
	candidates := []string{trimmed}

	if m := codeFenceRegex.FindStringSubmatch(trimmed); m != nil {
		candidates = append(candidates, strings.TrimSpace(m[1]))
	}

	first := strings.Index(trimmed, "{")
	last := strings.LastIndex(trimmed, "}")
	if first >= 0 && last > first {
		extracted := trimmed[first : last+1]
		candidates = append(candidates, extracted, trailingCommaRegex.ReplaceAllString(extracted, "$1"))
	}

	return candidates
}

// validAlerts drops entries the model malformed (no title, unknown risk)
func validAlerts(in []alerts.Incoming) []alerts.Incoming {
	var out []alerts.Incoming
	for _, a := range in {
		if strings.TrimSpace(a.Title) == "" {
			continue
		}
		if !a.Risk.IsValid() {
			slog.Debug("dropping alert with unknown risk level", "title", a.Title, "risk", a.Risk)
			continue
		}
		out = append(out, a)
	}
	return out
}

func preview(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
