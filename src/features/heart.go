package features

import (
	"time"

	"wellness-observer/src/models"
)

// -----------------------------------------------------------------------------
// Heart-rate features: acute intraday dynamics plus the 7-day resting
// baseline and elevation ratios against it.
// -----------------------------------------------------------------------------

// hrNowValue picks the most recent sample at or before the anchor.
func hrNowValue(series []models.MIntradaySample, anchor time.Time) *float64 {
	anchorM := MinutesSinceMidnight(anchor)
	var best *float64
	bestM := 0.0
	for _, s := range series {
		tM, ok := NormalizeMinutesForWindow(ParseTimeToMinutes(s.Time), anchorM)
		if !ok || tM > anchorM {
			continue
		}
		if best == nil || tM >= bestM {
			v := s.Value
			best = &v
			bestM = tM
		}
	}
	return best
}

// -----------------------------------------------------------------------------

// HeartFeatures fills windowed HR statistics, deltas between adjacent
// windows, the 7-day resting baseline, elevation ratios and the resting
// trend. Deltas are nil whenever either side of the comparison is empty.
func HeartFeatures(series []models.MIntradaySample, resting7d []models.MDailyValue, now time.Time, p *Params) models.MHeartFeatures {
	out := models.MHeartFeatures{}

	if len(series) > 0 {
		out.HrNow = hrNowValue(series, now)
		out.HrAvgLast5m = meanWindow(series, now, 5, 0)
		out.HrAvgLast15m = meanWindow(series, now, 15, 0)
		out.HrAvgLast60m = meanWindow(series, now, 60, 0)
		out.HrMinLast15m, out.HrMaxLast15m = minMaxWindow(series, now, 15)
		out.HrStdDevLast30m = ptr(stdDevWindow(series, now, 30))
		out.HrStdDevLast60m = ptr(stdDevWindow(series, now, 60))
		out.HrSlopeLast30m = ptr(slopeWindow(series, now, 30))
		out.HrSlopeLast60m = ptr(slopeWindow(series, now, 60))

		if prior5 := meanWindow(series, now, 5, 5); out.HrAvgLast5m != nil && prior5 != nil {
			out.HrDelta5m = ptr(*out.HrAvgLast5m - *prior5)
		}
		if prior15 := meanWindow(series, now, 15, 15); out.HrAvgLast15m != nil && prior15 != nil {
			out.HrDelta15m = ptr(*out.HrAvgLast15m - *prior15)
		}
	}

	rhrValues := make([]float64, 0, len(resting7d))
	for _, d := range resting7d {
		rhrValues = append(rhrValues, d.Value)
	}
	out.RhrMean7d = meanOf(rhrValues)
	out.RhrStd7d = sampleStd(rhrValues)

	out.HrZNow = elevationRatio(firstFinite(out.HrNow, out.HrAvgLast5m), out.RhrMean7d)
	out.HrZLast15m = elevationRatio(out.HrAvgLast15m, out.RhrMean7d)

	out.RestingHr7dTrend = restingHrTrend(rhrValues)

	return out
}

// -----------------------------------------------------------------------------

// elevationRatio is (value - baseline) / baseline, nil when either operand
// is missing or the baseline is non-positive.
func elevationRatio(value, baseline *float64) *float64 {
	if !finite(value) || !finite(baseline) || *baseline <= 0 {
		return nil
	}
	return ptr((*value - *baseline) / *baseline)
}

func firstFinite(candidates ...*float64) *float64 {
	for _, c := range candidates {
		if finite(c) {
			return c
		}
	}
	return nil
}

// -----------------------------------------------------------------------------

// restingHrTrend compares today's resting HR against the mean of the prior
// days. Positive means the resting rate is rising.
func restingHrTrend(values []float64) *float64 {
	if len(values) < 2 {
		return nil
	}
	today := values[len(values)-1]
	prior := values[:len(values)-1]
	return ptr(today - *meanOf(prior))
}
