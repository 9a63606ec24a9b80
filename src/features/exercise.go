package features

import (
	"strings"
	"time"

	"wellness-observer/src/models"
)

// -----------------------------------------------------------------------------
// Exercise features from the most recent activity log before the anchor.
// -----------------------------------------------------------------------------

// zoneMinutes sums the minutes of zone entries whose name contains any of
// the given fragments, case-insensitively. Returns nil when no zone
// contributed.
func zoneMinutes(zones []models.MZoneMinutes, fragments ...string) *float64 {
	var total *float64
	for _, z := range zones {
		if z.Minutes == 0 {
			continue
		}
		name := strings.ToLower(z.Name)
		for _, frag := range fragments {
			if strings.Contains(name, frag) {
				if total == nil {
					total = ptr(0)
				}
				*total += z.Minutes
				break
			}
		}
	}
	return total
}

// -----------------------------------------------------------------------------

// ExerciseFeatures normalizes the last activity and derives the recency
// fields. An activity still in progress at the anchor yields a gap of 0.
func ExerciseFeatures(ex *models.MExercise, now time.Time, p *Params) models.MExerciseFeatures {
	out := models.MExerciseFeatures{}
	if ex == nil {
		return out
	}

	out.LastExerciseType = strPtr(ex.ActivityName)
	if !ex.StartTime.IsZero() {
		out.LastExerciseStartTime = strPtr(ex.StartTime.Format(time.RFC3339))
	}
	out.LastExerciseDurationMinutes = ptr(float64(ex.DurationMs) / 60000)
	out.LastExerciseSteps = ex.Steps
	out.LastExerciseCalories = ex.Calories
	out.LastExerciseAvgHr = ex.AvgHeartRate
	out.LastExerciseAzmTotal = ex.AzmTotal
	out.LastExerciseAzmFatBurn = zoneMinutes(ex.Zones, "fat", "burn")
	out.LastExerciseAzmCardio = zoneMinutes(ex.Zones, "cardio")
	out.LastExerciseAzmPeak = zoneMinutes(ex.Zones, "peak")

	if !ex.StartTime.IsZero() {
		end := ex.StartTime.Add(time.Duration(ex.DurationMs) * time.Millisecond)
		gap := now.Sub(end).Minutes()
		if gap < 0 {
			gap = 0
		}
		out.TimeSinceLastExerciseMin = ptr(gap)
		out.HoursSinceLastExercise = ptr(gap / 60)
		out.PostExerciseWindow90m = boolPtr(gap <= p.PostExerciseWindowMin)
	}

	return out
}
