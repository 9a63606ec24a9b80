package features

import (
	"math"
	"sort"
	"time"

	"wellness-observer/src/models"
)

// -----------------------------------------------------------------------------
// Sleep features. Wearables split a fragmented night into several log
// segments that share one dateOfSleep; those are folded into a single
// "night" before anything is derived from it.
// -----------------------------------------------------------------------------

type sleepNight struct {
	date          string
	start         time.Time // earliest segment start
	end           time.Time // latest segment end
	durationMs    float64
	minutesAsleep float64
	minutesAwake  float64
	deepMinutes   float64
	lightMinutes  float64
	remMinutes    float64
	efficiency    *float64 // from the longest segment
	longestMs     float64
	hasAsleep     bool
	hasAwake      bool
}

// -----------------------------------------------------------------------------

// aggregateNights folds main-sleep segments into one night per dateOfSleep.
// Segments without an isMainSleep flag count as main.
func aggregateNights(logs []models.MSleepLog) []sleepNight {
	byDate := map[string]*sleepNight{}
	for _, l := range logs {
		if l.IsMainSleep != nil && !*l.IsMainSleep {
			continue
		}
		n, ok := byDate[l.DateOfSleep]
		if !ok {
			n = &sleepNight{date: l.DateOfSleep, start: l.StartTime, end: l.EndTime}
			byDate[l.DateOfSleep] = n
		}
		if l.StartTime.Before(n.start) {
			n.start = l.StartTime
		}
		if l.EndTime.After(n.end) {
			n.end = l.EndTime
		}
		n.durationMs += orZero(l.DurationMs)
		if finite(l.MinutesAsleep) {
			n.minutesAsleep += *l.MinutesAsleep
			n.hasAsleep = true
		}
		if finite(l.MinutesAwake) {
			n.minutesAwake += *l.MinutesAwake
			n.hasAwake = true
		}
		n.deepMinutes += orZero(l.DeepMinutes)
		n.lightMinutes += orZero(l.LightMinutes)
		n.remMinutes += orZero(l.RemMinutes)
		if orZero(l.DurationMs) >= n.longestMs {
			n.longestMs = orZero(l.DurationMs)
			n.efficiency = l.Efficiency
		}
	}

	nights := make([]sleepNight, 0, len(byDate))
	for _, n := range byDate {
		nights = append(nights, *n)
	}
	sort.Slice(nights, func(i, j int) bool { return nights[i].end.Before(nights[j].end) })
	return nights
}

// -----------------------------------------------------------------------------

// SleepFeatures derives last-night metrics and the 7-night bedtime
// variability. Notes carry diagnostic markers for missing-data cases and
// are surfaced on the assembled record, not as a flat feature.
func SleepFeatures(logs []models.MSleepLog, now time.Time, p *Params) models.MSleepFeatures {
	out := models.MSleepFeatures{}

	if len(logs) == 0 {
		out.Notes = append(out.Notes, "no_sleep_data_7d")
		return out
	}

	nights := aggregateNights(logs)

	var lastNight *sleepNight
	for i := range nights {
		if nights[i].end.Before(now) || nights[i].end.Equal(now) {
			lastNight = &nights[i]
		}
	}
	if lastNight == nil {
		out.Notes = append(out.Notes, "no_last_night_sleep")
	} else {
		out.SleepDurationLastNightHrs = ptr(lastNight.durationMs / (1000 * 60 * 60))

		if lastNight.efficiency != nil {
			out.SleepEfficiency = lastNight.efficiency
		} else if lastNight.hasAsleep && lastNight.hasAwake && lastNight.minutesAsleep+lastNight.minutesAwake > 0 {
			out.SleepEfficiency = ptr(lastNight.minutesAsleep / (lastNight.minutesAsleep + lastNight.minutesAwake) * 100)
		}

		if lastNight.hasAwake {
			out.WasoMinutes = ptr(lastNight.minutesAwake)
		}

		if !lastNight.start.IsZero() {
			out.SleepOnsetLocalHour = ptr(float64(lastNight.start.Hour()) + float64(lastNight.start.Minute())/60)
		}
		if !lastNight.end.IsZero() {
			out.WakeTimeLocalHour = ptr(float64(lastNight.end.Hour()) + float64(lastNight.end.Minute())/60)
		}

		totalStage := lastNight.remMinutes + lastNight.deepMinutes + lastNight.lightMinutes
		if totalStage > 0 {
			out.RemRatio = ptr(lastNight.remMinutes / totalStage)
			out.DeepRatio = ptr(lastNight.deepMinutes / totalStage)
		}

		if lastNight.hasAwake {
			var window float64
			if lastNight.hasAsleep {
				window = lastNight.minutesAsleep + lastNight.minutesAwake
			} else if lastNight.durationMs > 0 {
				window = lastNight.durationMs / (1000 * 60)
			}
			if window > 0 {
				out.SleepFragmentationScore = ptr(clamp01(lastNight.minutesAwake / window))
			}
		}
	}

	out.BedtimeStdDev7d = bedtimeStdDev(nights)
	if out.BedtimeStdDev7d == nil {
		out.Notes = append(out.Notes, "insufficient_sleep_nights_for_stddev")
	}

	return out
}

// -----------------------------------------------------------------------------

// bedtimeStdDev measures bedtime consistency in minutes across nights.
// Bedtimes before noon are shifted forward a day so 23:45 and 00:15 sit 30
// minutes apart instead of wrapping across the whole clock.
func bedtimeStdDev(nights []sleepNight) *float64 {
	var bedtimes []float64
	for _, n := range nights {
		if n.start.IsZero() {
			continue
		}
		m := float64(n.start.Hour()*60 + n.start.Minute())
		if m < 720 {
			m += MinutesPerDay
		}
		bedtimes = append(bedtimes, m)
	}
	if len(bedtimes) < 2 {
		return nil
	}
	sd := populationStd(bedtimes)
	if sd == nil || math.IsNaN(*sd) {
		return nil
	}
	return sd
}
