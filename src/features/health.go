package features

import "wellness-observer/src/models"

// -----------------------------------------------------------------------------
// SpO2, breathing-rate and skin-temperature features. All three follow the
// same shape: the night's values, a 7-day baseline mean, and the deviation
// of tonight from that baseline.
// -----------------------------------------------------------------------------

// Spo2Features adds spo2Range = max - min on top of the baseline pattern.
func Spo2Features(daily *models.MSpo2Daily, history []models.MSpo2Daily, p *Params) models.MSpo2Features {
	out := models.MSpo2Features{}

	if daily != nil {
		out.Spo2Avg = daily.Avg
		out.Spo2Min = daily.Min
		out.Spo2Max = daily.Max
	}
	if finite(out.Spo2Max) && finite(out.Spo2Min) {
		out.Spo2Range = ptr(*out.Spo2Max - *out.Spo2Min)
	}

	var avgs []float64
	for _, d := range history {
		if finite(d.Avg) {
			avgs = append(avgs, *d.Avg)
		}
	}
	out.Spo2Avg7dAvg = meanOf(avgs)

	if finite(out.Spo2Avg) && finite(out.Spo2Avg7dAvg) {
		out.Spo2AvgDeviationFrom7d = ptr(*out.Spo2Avg - *out.Spo2Avg7dAvg)
	}

	return out
}

// -----------------------------------------------------------------------------

// BreathingFeatures baselines only the full-night rate; the per-stage rates
// are surfaced as-is.
func BreathingFeatures(daily *models.MBreathingDaily, history []models.MBreathingDaily, p *Params) models.MBreathingFeatures {
	out := models.MBreathingFeatures{}

	if daily != nil {
		out.BrFullNight = daily.Full
		out.BrDeepSleep = daily.Deep
		out.BrRemSleep = daily.Rem
		out.BrLightSleep = daily.Light
	}

	var fulls []float64
	for _, d := range history {
		if finite(d.Full) {
			fulls = append(fulls, *d.Full)
		}
	}
	out.BrFullNight7dAvg = meanOf(fulls)

	if finite(out.BrFullNight) && finite(out.BrFullNight7dAvg) {
		out.BrFullNightDeviationFrom7d = ptr(*out.BrFullNight - *out.BrFullNight7dAvg)
	}

	return out
}

// -----------------------------------------------------------------------------

// TempSkinFeatures works on the device's nightly-relative reading, which is
// already a delta from the wearer's own long-term baseline.
func TempSkinFeatures(daily *models.MTempSkinDaily, history []models.MTempSkinDaily, p *Params) models.MTempSkinFeatures {
	out := models.MTempSkinFeatures{}

	if daily != nil {
		out.TempSkinNightlyRelative = daily.NightlyRelative
	}

	var vals []float64
	for _, d := range history {
		if finite(d.NightlyRelative) {
			vals = append(vals, *d.NightlyRelative)
		}
	}
	out.TempSkinNightlyRelative7dAvg = meanOf(vals)

	if finite(out.TempSkinNightlyRelative) && finite(out.TempSkinNightlyRelative7dAvg) {
		out.TempSkinNightlyRelativeDeviationFrom7d = ptr(*out.TempSkinNightlyRelative - *out.TempSkinNightlyRelative7dAvg)
	}

	return out
}
