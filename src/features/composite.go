package features

import "wellness-observer/src/models"

// -----------------------------------------------------------------------------
// Composite psychophysiological scores. Each is a small threshold engine
// over already-computed features, gated by an hour-of-day window. Flags are
// nil only when no deciding input exists at all.
// -----------------------------------------------------------------------------

// OverexertionFlag: too much output, not enough recovery. A strong
// low-sleep-high-activity score short-circuits to true; otherwise short
// sleep or high debt combined with a heavy AZM day decides, as does a long
// recent exercise on top of that day.
func OverexertionFlag(rec *models.MFeatureRecord, p *Params) *bool {
	if cross := rec.Cross.LowSleepHighActivityFlag; finite(cross) && *cross >= 0.7 {
		return boolPtr(true)
	}

	sleepHrs := rec.Sleep.SleepDurationLastNightHrs
	debt := rec.Personal.SleepDebtHrs
	azmToday := rec.Daily.AzmToday
	exDuration := rec.Exercise.LastExerciseDurationMinutes

	hoursSince := rec.Exercise.HoursSinceLastExercise
	if hoursSince == nil && finite(rec.Exercise.TimeSinceLastExerciseMin) {
		hoursSince = ptr(*rec.Exercise.TimeSinceLastExerciseMin / 60)
	}

	shortSleep := finite(sleepHrs) && *sleepHrs < p.ShortSleepHrs
	highDebt := finite(debt) && *debt >= 2
	highAzmToday := finite(azmToday) && *azmToday >= p.ActiveDayAzm
	recentLongExercise := finite(exDuration) && *exDuration >= 45 &&
		finite(hoursSince) && *hoursSince <= 8

	if (shortSleep || highDebt) && highAzmToday {
		return boolPtr(true)
	}
	if recentLongExercise && highAzmToday {
		return boolPtr(true)
	}

	if sleepHrs != nil || debt != nil || azmToday != nil || exDuration != nil {
		return boolPtr(false)
	}
	return nil
}

// -----------------------------------------------------------------------------

// StressSpikeFlag: acute HR elevation with a sharp jump, not explained by
// the post-exercise window. Nil without any elevation ratio to judge from.
func StressSpikeFlag(rec *models.MFeatureRecord, p *Params) *bool {
	z := rec.Heart.HrZLast15m
	if z == nil {
		z = rec.Heart.HrZNow
	}
	if z == nil {
		return nil
	}

	highHr := *z >= 1.0
	sharpJump := (finite(rec.Heart.HrDelta5m) && *rec.Heart.HrDelta5m >= 10) ||
		(finite(rec.Heart.HrDelta15m) && *rec.Heart.HrDelta15m >= 15) ||
		(finite(rec.Heart.HrSlopeLast30m) && *rec.Heart.HrSlopeLast30m >= 0.3)

	if !highHr || !sharpJump {
		return boolPtr(false)
	}
	if rec.Exercise.PostExerciseWindow90m != nil && *rec.Exercise.PostExerciseWindow90m {
		return boolPtr(false)
	}
	return boolPtr(true)
}

// -----------------------------------------------------------------------------

// EveningRestlessnessScore: movement, zone minutes and HR elevation between
// 18:00 and 23:59. Zero outside the window, nil without an hour.
func EveningRestlessnessScore(rec *models.MFeatureRecord, p *Params) *float64 {
	hour := rec.Daily.HourOfDay
	if hour == nil {
		return nil
	}
	if *hour < 18 || *hour > 23 {
		return ptr(0)
	}

	movement := 0.0
	if finite(rec.Steps.StepsLast60m) {
		movement = clamp01(*rec.Steps.StepsLast60m / 1000)
	}
	azmScore := 0.0
	if v := firstFinite(rec.Azm.AzmLast60m, rec.Azm.AzmLast30m); v != nil {
		azmScore = clamp01(*v / 20)
	}
	hrScore := 0.0
	if z := firstFinite(rec.Heart.HrZNow, rec.Heart.HrZLast15m); z != nil {
		hrScore = clamp01((*z + 1) / 3)
	}

	return ptr(clamp01(0.4*movement + 0.3*azmScore + 0.3*hrScore))
}

// -----------------------------------------------------------------------------

// MorningLethargyScore: sleep debt, inactivity and below-baseline HR
// between 06:00 and 11:59.
func MorningLethargyScore(rec *models.MFeatureRecord, p *Params) *float64 {
	hour := rec.Daily.HourOfDay
	if hour == nil {
		return nil
	}
	if *hour < 6 || *hour > 11 {
		return ptr(0)
	}

	debtScore := 0.0
	if finite(rec.Personal.SleepDebtHrs) {
		debtScore = clamp01(*rec.Personal.SleepDebtHrs / 3)
	}
	inactivity := 0.0
	if finite(rec.Steps.StepsLast60m) {
		inactivity = clamp01((200 - *rec.Steps.StepsLast60m) / 200)
	}
	lowHr := 0.0
	if z := firstFinite(rec.Heart.HrZNow, rec.Heart.HrZLast15m); z != nil && *z < 0 {
		lowHr = clamp01(-*z / 2)
	}

	return ptr(clamp01(0.5*debtScore + 0.3*inactivity + 0.2*lowHr))
}

// -----------------------------------------------------------------------------

// DoomscrollingScore: sedentary, stepless, snack-heavy late night. The
// window wraps midnight: 22:00 through 02:59.
func DoomscrollingScore(rec *models.MFeatureRecord, p *Params) *float64 {
	hour := rec.Daily.HourOfDay
	if hour == nil {
		return nil
	}
	if *hour < 22 && *hour > 2 {
		return ptr(0)
	}

	sedScore := 0.0
	if finite(rec.Steps.SedentaryMinsLast3h) {
		sedScore = clamp01(*rec.Steps.SedentaryMinsLast3h / 180)
	}
	lowSteps := 0.0
	if v := firstFinite(rec.Steps.StepsLast30m, rec.Steps.StepsLast60m); v != nil {
		lowSteps = clamp01((100 - *v) / 100)
	}
	snack := 0.0
	if finite(rec.Nutrition.SnackCaloriesFraction) {
		snack = clamp01(*rec.Nutrition.SnackCaloriesFraction)
	}

	return ptr(clamp01(0.5*sedScore + 0.3*lowSteps + 0.2*snack))
}

// -----------------------------------------------------------------------------

// CompositeFeatures fills the composite layer from an assembled record.
func CompositeFeatures(rec *models.MFeatureRecord, p *Params) models.MCompositeFeatures {
	out := models.MCompositeFeatures{}
	out.OverexertionFlag = OverexertionFlag(rec, p)
	out.StressSpikeFlag = StressSpikeFlag(rec, p)
	out.EveningRestlessnessScore = EveningRestlessnessScore(rec, p)
	out.MorningLethargyScore = MorningLethargyScore(rec, p)
	out.DoomscrollingScore = DoomscrollingScore(rec, p)
	return out
}
