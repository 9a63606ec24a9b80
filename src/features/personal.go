package features

import (
	"math"
	"sort"
	"time"

	"wellness-observer/src/models"
)

// -----------------------------------------------------------------------------
// Personal baseline features: today measured against the wearer's own
// recent history rather than population norms.
// -----------------------------------------------------------------------------

// StepsZToday scores today's step total against the prior days of a 7-day
// series. Nil with fewer than 2 days or a flat (zero-variance) history.
func StepsZToday(steps7d []models.MDailyValue) *float64 {
	if len(steps7d) < 2 {
		return nil
	}
	values := make([]float64, 0, len(steps7d))
	for _, d := range steps7d {
		if !math.IsNaN(d.Value) && !math.IsInf(d.Value, 0) {
			values = append(values, d.Value)
		}
	}
	if len(values) < 2 {
		return nil
	}

	today := values[len(values)-1]
	prior := values[:len(values)-1]

	mean := *meanOf(prior)
	std := *populationStd(prior)
	if std == 0 || math.IsNaN(std) {
		return nil
	}
	return ptr((today - mean) / std)
}

// -----------------------------------------------------------------------------

// ActivityInertia is the sign-flipped, mean-normalized OLS slope of the
// daily-step series: positive means activity is trending down.
func ActivityInertia(steps7d []models.MDailyValue) *float64 {
	var vals []float64
	for _, d := range steps7d {
		if !math.IsNaN(d.Value) && !math.IsInf(d.Value, 0) {
			vals = append(vals, d.Value)
		}
	}
	if len(vals) < 2 {
		return nil
	}

	pts := make([]windowPoint, len(vals))
	for i, v := range vals {
		pts[i] = windowPoint{x: float64(i), y: v}
	}
	slope := olsSlope(pts)

	mean := *meanOf(vals)
	norm := slope
	if mean > 0 {
		norm = slope / mean
	}
	return ptr(-norm)
}

// -----------------------------------------------------------------------------

// SleepDebtHrs averages the duration of the last up-to-3 main nights
// ending before the anchor against an 8-hour target. Never negative:
// sleeping ahead of target is not banked as credit.
func SleepDebtHrs(logs []models.MSleepLog, now time.Time, p *Params) *float64 {
	var mains []models.MSleepLog
	for _, l := range logs {
		if l.IsMainSleep != nil && !*l.IsMainSleep {
			continue
		}
		mains = append(mains, l)
	}
	if len(mains) == 0 {
		return nil
	}

	sort.Slice(mains, func(i, j int) bool { return mains[i].EndTime.Before(mains[j].EndTime) })

	var recent []models.MSleepLog
	for _, l := range mains {
		if l.EndTime.Before(now) {
			recent = append(recent, l)
		}
	}
	if len(recent) == 0 {
		return nil
	}
	if len(recent) > p.SleepDebtNights {
		recent = recent[len(recent)-p.SleepDebtNights:]
	}

	totalHrs := 0.0
	for _, l := range recent {
		totalHrs += orZero(l.DurationMs) / (1000 * 60 * 60)
	}
	debt := p.SleepTargetHrs - totalHrs/float64(len(recent))
	if debt < 0 {
		debt = 0
	}
	return &debt
}

// -----------------------------------------------------------------------------

// RecoveryIndex sums the negated resting-HR trend and the negated sleep
// debt; a missing input contributes 0, both missing yields nil.
func RecoveryIndex(restingHrTrend, sleepDebt *float64) *float64 {
	if restingHrTrend == nil && sleepDebt == nil {
		return nil
	}
	idx := 0.0
	if finite(restingHrTrend) {
		idx -= *restingHrTrend
	}
	if finite(sleepDebt) {
		idx -= *sleepDebt
	}
	return &idx
}

// -----------------------------------------------------------------------------

// PersonalFeatures bundles the baseline extractors for the assembler.
func PersonalFeatures(steps7d []models.MDailyValue, sleepLogs []models.MSleepLog, restingHrTrend *float64, now time.Time, p *Params) models.MPersonalFeatures {
	out := models.MPersonalFeatures{}
	out.StepsZToday = StepsZToday(steps7d)
	out.ActivityInertia = ActivityInertia(steps7d)
	out.SleepDebtHrs = SleepDebtHrs(sleepLogs, now, p)
	out.RecoveryIndex = RecoveryIndex(restingHrTrend, out.SleepDebtHrs)
	return out
}
