package domain

import "math"

// Status thresholds shared by objectives and KPIs. Kept in one place so
// badge rendering and rollups can never disagree.
const (
	onTrackThreshold = 90
	atRiskThreshold  = 60
)

// KPIProgress computes the percentage of target reached, clamped to [0, 100].
// A zero target yields zero progress; creation-time validation rejects zero
// targets, so this only shows up for legacy rows.
func KPIProgress(value, target float64) int {
	if target == 0 {
		return 0
	}
	pct := int(math.Round(value / target * 100))
	return ClampProgress(pct)
}

// ClampProgress bounds a progress percentage to [0, 100].
func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// StatusForProgress derives the status badge from a progress percentage.
// StatusArchived is an explicit override and is never returned here.
func StatusForProgress(progress int) Status {
	switch {
	case progress >= onTrackThreshold:
		return StatusOnTrack
	case progress >= atRiskThreshold:
		return StatusAtRisk
	default:
		return StatusBehind
	}
}

// Rollup averages the given progress values, rounding to the nearest
// integer. An empty input rolls up to zero.
func Rollup(values []int) int {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return ClampProgress(int(math.Round(float64(sum) / float64(len(values)))))
}
