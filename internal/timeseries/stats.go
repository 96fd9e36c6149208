package timeseries

import (
	"github.com/healthsense/healthsense/internal/types"
)

// SeriesStats summarizes the non-zero readings of one window
type SeriesStats struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// Stats computes min/average/max over the non-zero points of a window.
// Zero-valued buckets mean "no reading" and are excluded. The second return
// is false when the window has no readings at all.
func Stats(points []types.HealthDataPoint) (SeriesStats, bool) {
	var stats SeriesStats
	var sum float64
	for _, p := range points {
		if p.Value <= 0 {
			continue
		}
		if stats.Count == 0 {
			stats.Min = p.Value
			stats.Max = p.Value
		} else {
			if p.Value < stats.Min {
				stats.Min = p.Value
			}
			if p.Value > stats.Max {
				stats.Max = p.Value
			}
		}
		sum += p.Value
		stats.Count++
	}
	if stats.Count == 0 {
		return SeriesStats{}, false
	}
	stats.Average = sum / float64(stats.Count)
	return stats, true
}

// NonZero filters a window down to its actual readings, preserving order.
func NonZero(points []types.HealthDataPoint) []types.HealthDataPoint {
	var out []types.HealthDataPoint
	for _, p := range points {
		if p.Value > 0 {
			out = append(out, p)
		}
	}
	return out
}
