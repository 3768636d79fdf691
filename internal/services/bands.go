package services

import "math"

// bandThresholds maps an actual/planned ratio to a 0-5 score for the
// ratio-based KPIs (km, time, fuel). Boundaries are inclusive on the upper
// edge: a ratio exactly at a threshold takes that row's score.
//
// The table is deliberately punitive beyond 8% overrun: everything past the
// last row collapses to 0.5, never 0, as long as the KPI's precondition holds.
var bandThresholds = []struct {
	limit float64
	score float64
}{
	{1.00, 5},
	{1.01, 4.5},
	{1.02, 4},
	{1.03, 3.5},
	{1.04, 3},
	{1.05, 2.5},
	{1.06, 2},
	{1.07, 1.5},
	{1.08, 1},
}

// scoreBand resolves a ratio to its band score.
func scoreBand(ratio float64) float64 {
	for _, band := range bandThresholds {
		if ratio <= band.limit {
			return band.score
		}
	}
	return 0.5
}

// round2 rounds to two decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// clampScore caps a score to [0, 5]. The ratio-based counters can exceed
// their denominator (a delivered depot leg inflates actual deliveries past
// expected, a legacy cached rating can sit above 5), so the ceiling is
// enforced rather than assumed.
func clampScore(v float64) float64 {
	if v > 5 {
		return 5
	}
	if v < 0 {
		return 0
	}
	return v
}
