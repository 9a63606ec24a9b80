package features

import "wellness-observer/src/models"

// -----------------------------------------------------------------------------
// Acute arousal index, a 0-10 measure of immediate sympathetic activation.
// -----------------------------------------------------------------------------

// AcuteArousalIndex combines HR reactivity with movement bursts, penalizes
// sedentary inertia without activation, boosts a hard break from long
// sitting, and suppresses the score inside the post-exercise window and
// after severe sleep deprivation. When neither an HR nor a movement signal
// exists the index is nil: an all-missing input must not read as calm.
func AcuteArousalIndex(rec *models.MFeatureRecord, p *Params) *float64 {
	hasHr := finite(rec.Heart.HrDelta5m) || finite(rec.Heart.HrSlopeLast30m) || finite(rec.Heart.HrZNow)
	hasMovement := finite(rec.Steps.StepBurst5m) || finite(rec.Steps.StepsLast15m) || finite(rec.Azm.AzmSpike30m)
	if !hasHr && !hasMovement {
		return nil
	}

	hDelta := orZero(rec.Heart.HrDelta5m)
	hSlope := orZero(rec.Heart.HrSlopeLast30m)
	hZ := orZero(rec.Heart.HrZNow)

	burst := orZero(rec.Steps.StepBurst5m)
	steps15 := orZero(rec.Steps.StepsLast15m)
	azSpike := orZero(rec.Azm.AzmSpike30m)

	// The slope is per-minute and usually tiny; scale it up to matter.
	hrComponent := 1.2*hDelta + 30*hSlope + 1.0*hZ
	movementComponent := 0.015*steps15 + 0.5*burst + 1.0*azSpike

	sedentaryTerm := 0.0
	if zs := rec.Steps.ZeroStreakMax60m; finite(zs) {
		if *zs >= 45 && burst < 15 && hDelta < 5 {
			sedentaryTerm = -1.0
		} else if *zs >= 45 && (burst > 30 || hDelta > 10) {
			sedentaryTerm = 1.0
		}
	}

	exerciseSuppress := 0.0
	if rec.Exercise.PostExerciseWindow90m != nil && *rec.Exercise.PostExerciseWindow90m {
		exerciseSuppress = -1.5
	}

	sleepSuppress := 0.0
	if sd := rec.Sleep.SleepDurationLastNightHrs; finite(sd) && *sd < p.ShortSleepHrs {
		sleepSuppress = -0.5
	}

	score := hrComponent + movementComponent + sedentaryTerm + exerciseSuppress + sleepSuppress
	return ptr(clamp(score, 0, 10))
}
