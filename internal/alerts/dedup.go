// Package alerts maintains the session's alert feed: a newest-first list of
// health warnings extracted from AI analysis responses, de-duplicated by
// content so the same finding streaming in twice is shown once.
package alerts

import (
	"github.com/google/uuid"

	"github.com/healthsense/healthsense/internal/types"
)

// MaxAlerts caps the feed; oldest entries fall off once it is full.
const MaxAlerts = 100

// timestampNew is the relative label given to freshly merged alerts
const timestampNew = "Just now"

// Incoming is an alert as extracted from an AI response, before it is
// assigned an id and timestamp.
type Incoming struct {
	Title  string          `json:"title"`
	Detail string          `json:"detail"`
	Risk   types.RiskLevel `json:"risk"`
}

// Merge folds a batch of incoming alerts into the existing feed.
//
// Each surviving incoming alert gets a fresh id and a "Just now" timestamp
// and is prepended (newest first); the relative order of existing alerts is
// preserved. An incoming alert whose (title, detail) pair already appears
// anywhere in the existing feed is dropped. When nothing survives the
// filter, the existing slice is returned unchanged — callers may rely on
// reference equality to skip re-rendering.
func Merge(existing []types.Alert, incoming []Incoming) []types.Alert {
	if len(incoming) == 0 {
		return existing
	}

	seen := make(map[string]struct{}, len(existing))
	for _, a := range existing {
		seen[a.DedupKey()] = struct{}{}
	}

	var fresh []types.Alert
	for _, in := range incoming {
		alert := types.Alert{
			ID:        uuid.NewString(),
			Title:     in.Title,
			Detail:    in.Detail,
			Timestamp: timestampNew,
			Risk:      in.Risk,
		}
		if _, dup := seen[alert.DedupKey()]; dup {
			continue
		}
		// Also suppresses duplicates within the batch itself
		seen[alert.DedupKey()] = struct{}{}
		fresh = append(fresh, alert)
	}

	if len(fresh) == 0 {
		return existing
	}

	merged := append(fresh, existing...)
	if len(merged) > MaxAlerts {
		merged = merged[:MaxAlerts]
	}
	return merged
}
