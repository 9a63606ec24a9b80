package features

import (
	"time"

	"wellness-observer/src/models"
)

// -----------------------------------------------------------------------------
// Day-level summary features plus the anchor's calendar coordinates.
// -----------------------------------------------------------------------------

// DailyFeatures reads the day summary and the calories intraday series.
// When the device reports no zone-minute total, fairly+very active minutes
// stand in for it.
func DailyFeatures(summary *models.MDailySummary, caloriesIntraday []models.MIntradaySample, now time.Time, p *Params) models.MDailyFeatures {
	out := models.MDailyFeatures{}

	if summary != nil {
		if finite(summary.AzmTotal) {
			out.AzmToday = summary.AzmTotal
		} else if finite(summary.FairlyActiveMinutes) || finite(summary.VeryActiveMinutes) {
			out.AzmToday = ptr(orZero(summary.FairlyActiveMinutes) + orZero(summary.VeryActiveMinutes))
		}
		out.CaloriesOutToday = summary.CaloriesOut
		out.RestingHR = summary.RestingHeartRate
	}

	if len(caloriesIntraday) > 0 {
		out.CaloriesOutLast3h = ptr(sumWindow(caloriesIntraday, now, 180))
	}

	out.HourOfDay = ptr(float64(now.Hour()))
	dow := float64(now.Weekday()) // 0=Sunday
	out.DayOfWeek = ptr(dow)
	out.IsWeekend = boolPtr(dow == 0 || dow == 6)

	return out
}
