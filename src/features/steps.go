package features

import (
	"time"

	"wellness-observer/src/models"
)

// -----------------------------------------------------------------------------
// Step-based activity features from minute-level intraday step counts.
// -----------------------------------------------------------------------------

// StepsFeatures fills the step windows, burst, streak, slope and acceleration
// fields. Sums over present-but-quiet windows are genuine zeros; an empty
// series yields an all-nil group.
func StepsFeatures(series []models.MIntradaySample, now time.Time, p *Params) models.MStepsFeatures {
	out := models.MStepsFeatures{}
	if len(series) == 0 {
		return out
	}

	out.StepsLast5m = ptr(sumWindow(series, now, 5))
	out.StepsLast15m = ptr(sumWindow(series, now, 15))
	out.StepsLast30m = ptr(sumWindow(series, now, 30))
	out.StepsLast60m = ptr(sumWindow(series, now, 60))
	out.StepsLast3h = ptr(sumWindow(series, now, 180))

	out.StepBurst5m = ptr(maxWindow(series, now, 5))
	out.ZeroStreakMax60m = ptr(zeroStreakWindow(series, now, 60))
	out.StepsSlopeLast60m = ptr(slopeWindow(series, now, 60))

	// Average per-minute rate over the 10 minutes preceding the last 5.
	out.StepsAccel5to15m = ptr((*out.StepsLast15m - *out.StepsLast5m) / 10.0)

	out.SedentaryMinsLast3h = ptr(countWindow(series, now, 180, 0, func(v float64) bool {
		return v == 0
	}))

	return out
}
