package features

import (
	"time"

	"wellness-observer/src/models"
)

// -----------------------------------------------------------------------------
// Active Zone Minute features from minute-level zone credit samples.
// -----------------------------------------------------------------------------

// azmSeries projects one zone metric into the generic intraday shape the
// window engine runs over.
func azmSeries(series []models.MAzmSample, pick func(models.MAzmSample) float64) []models.MIntradaySample {
	out := make([]models.MIntradaySample, 0, len(series))
	for _, s := range series {
		out = append(out, models.MIntradaySample{Time: s.Time, Value: pick(s)})
	}
	return out
}

// -----------------------------------------------------------------------------

// AzmFeatures fills windowed totals per zone, intensity minute counts, the
// inactivity streak, the 60m slope and the 30m-vs-prior-30m spike.
func AzmFeatures(series []models.MAzmSample, now time.Time, p *Params) models.MAzmFeatures {
	out := models.MAzmFeatures{}
	if len(series) == 0 {
		return out
	}

	active := azmSeries(series, func(s models.MAzmSample) float64 { return s.Active })
	fatBurn := azmSeries(series, func(s models.MAzmSample) float64 { return s.FatBurn })
	cardio := azmSeries(series, func(s models.MAzmSample) float64 { return s.Cardio })
	peak := azmSeries(series, func(s models.MAzmSample) float64 { return s.Peak })

	out.AzmLast30m = ptr(sumWindow(active, now, 30))
	out.AzmLast60m = ptr(sumWindow(active, now, 60))

	out.AzmFatBurnLast30m = ptr(sumWindow(fatBurn, now, 30))
	out.AzmCardioLast30m = ptr(sumWindow(cardio, now, 30))
	out.AzmPeakLast30m = ptr(sumWindow(peak, now, 30))

	positive := func(v float64) bool { return v > 0 }
	out.AzmIntensityMinutes30m = ptr(countWindow(active, now, 30, 0, positive))
	out.AzmIntensityMinutes60m = ptr(countWindow(active, now, 60, 0, positive))

	out.AzmZeroStreakMax60m = ptr(zeroStreakWindow(active, now, 60))
	out.AzmSlopeLast60m = ptr(slopeWindow(active, now, 60))

	out.AzmSpike30m = ptr(sumWindow(active, now, 30) - sumWindowAt(active, now, 30, 30))

	return out
}
