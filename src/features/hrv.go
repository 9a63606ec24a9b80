package features

import (
	"math"

	"wellness-observer/src/models"
)

// -----------------------------------------------------------------------------
// Heart-rate-variability features: the daily summary, the 7-day baseline
// and intraday spectral aggregates.
// -----------------------------------------------------------------------------

// HrvFeatures combines the single-day summary, the 7-day range and the
// intraday series. The LF/HF ratio averages only samples where HF > 0.
func HrvFeatures(daily *models.MHrvDaily, sevenDay []models.MHrvDaily, intraday []models.MHrvIntradaySample, p *Params) models.MHrvFeatures {
	out := models.MHrvFeatures{}

	if daily != nil {
		out.HrvRmssdDaily = daily.DailyRmssd
		out.HrvDeepRmssdDaily = daily.DeepRmssd
	}

	var rangeVals []float64
	for _, d := range sevenDay {
		if finite(d.DailyRmssd) {
			rangeVals = append(rangeVals, *d.DailyRmssd)
		}
	}
	out.HrvRmssd7dAvg = meanOf(rangeVals)

	if finite(out.HrvRmssdDaily) && finite(out.HrvRmssd7dAvg) {
		out.HrvRmssdDeviationFrom7d = ptr(*out.HrvRmssdDaily - *out.HrvRmssd7dAvg)
	}

	var rmssd, lf, hf, cov, ratio []float64
	for _, s := range intraday {
		if finite(s.Rmssd) {
			rmssd = append(rmssd, *s.Rmssd)
		}
		if finite(s.Lf) {
			lf = append(lf, *s.Lf)
		}
		if finite(s.Hf) {
			hf = append(hf, *s.Hf)
		}
		if finite(s.Coverage) {
			cov = append(cov, *s.Coverage)
		}
		if finite(s.Lf) && finite(s.Hf) && *s.Hf > 0 {
			ratio = append(ratio, *s.Lf / *s.Hf)
		}
	}

	out.HrvIntradayRmssdMean = meanOf(rmssd)
	out.HrvIntradayRmssdStdDev = intradayStd(rmssd)
	out.HrvIntradayLfMean = meanOf(lf)
	out.HrvIntradayHfMean = meanOf(hf)
	out.HrvIntradayLfHfRatioMean = meanOf(ratio)
	out.HrvIntradayCoverageMean = meanOf(cov)

	return out
}

// intradayStd is a population standard deviation, nil under two samples.
func intradayStd(values []float64) *float64 {
	if len(values) < 2 {
		return nil
	}
	sd := populationStd(values)
	if sd == nil || math.IsNaN(*sd) {
		return nil
	}
	return sd
}
