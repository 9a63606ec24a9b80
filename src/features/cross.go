package features

import "wellness-observer/src/models"

// -----------------------------------------------------------------------------
// Cross features: interactions between activity, time of day, sleep and
// heart-rate elevation. Inputs are already-computed feature groups, never
// raw series.
// -----------------------------------------------------------------------------

// expectedActivity returns the steps/AZM expectation for an hour bin,
// scaled up on weekends.
func expectedActivity(hour float64, isWeekend bool, p *Params) (steps, azm float64) {
	switch {
	case hour < 6:
		steps, azm = p.ExpectedStepsNight, p.ExpectedAzmNight
	case hour < 12:
		steps, azm = p.ExpectedStepsMorning, p.ExpectedAzmMorning
	case hour < 17:
		steps, azm = p.ExpectedStepsAfternoon, p.ExpectedAzmAfternoon
	default:
		steps, azm = p.ExpectedStepsEvening, p.ExpectedAzmEvening
	}
	if isWeekend {
		steps *= p.WeekendMultiplier
		azm *= p.WeekendMultiplier
	}
	return steps, azm
}

// -----------------------------------------------------------------------------

// RecentActivityXTimeOfDay scores how unusual current movement is for this
// hour: normalized deviation from the bin expectation, an HR confirmation
// term, a night-movement penalty (lifted inside the post-exercise window),
// a sedentary-break boost and an overall-day bias. Clamped to [-2, 2].
func RecentActivityXTimeOfDay(rec *models.MFeatureRecord, p *Params) *float64 {
	hour := rec.Daily.HourOfDay
	if !finite(hour) {
		return ptr(0)
	}
	isWeekend := rec.Daily.IsWeekend != nil && *rec.Daily.IsWeekend

	steps30 := orZero(firstFinite(rec.Steps.StepsLast30m, rec.Steps.StepsLast60m))
	azm := orZero(firstFinite(rec.Azm.AzmLast30m, rec.Azm.AzmLast60m))
	hrZ := orZero(firstFinite(rec.Heart.HrZLast15m, rec.Heart.HrZNow))

	expectedSteps, expectedAzm := expectedActivity(*hour, isWeekend, p)

	stepDev := (steps30 - expectedSteps) / expectedSteps
	azmDev := (azm - expectedAzm) / (expectedAzm + 0.01)

	hrComponent := 0.0
	if hrZ > 0.5 {
		hrComponent = 0.3
	} else if hrZ < -0.5 {
		hrComponent = -0.2
	}

	postExercise := rec.Exercise.PostExerciseWindow90m != nil && *rec.Exercise.PostExerciseWindow90m
	nightPenalty := 0.0
	if *hour < 6 && !postExercise {
		nightPenalty = -1.0
	}

	sedentaryBoost := 0.0
	if orZero(rec.Steps.ZeroStreakMax60m) >= 30 && (steps30 > 400 || azm > 4) {
		sedentaryBoost = 0.5
	}

	dayBias := 0.0
	if z := rec.Personal.StepsZToday; finite(z) {
		if *z > 1.5 {
			dayBias = 0.3
		} else if *z < -1.0 {
			dayBias = -0.2
		}
	}

	score := 0.7*(stepDev+azmDev) + hrComponent + sedentaryBoost + dayBias + nightPenalty
	return ptr(clamp(score, -2, 2))
}

// -----------------------------------------------------------------------------

// LowSleepHighActivityFlag blends sleep deprivation with daytime load.
// The deprivation term is the max of the short-sleep and debt sub-scores;
// recent heavy exercise and elevated HR push it further. Clamped to [0, 1].
func LowSleepHighActivityFlag(rec *models.MFeatureRecord, p *Params) *float64 {
	sleepHrs := rec.Sleep.SleepDurationLastNightHrs
	debt := rec.Personal.SleepDebtHrs
	if sleepHrs == nil && debt == nil {
		return ptr(0)
	}

	shortSleep := 0.0
	if finite(sleepHrs) {
		if *sleepHrs < p.ShortSleepHrs {
			shortSleep = 1
		} else if *sleepHrs < 7 {
			shortSleep = 0.5
		}
	}

	debtScore := 0.0
	if finite(debt) {
		debtScore = clamp01(*debt / 2.5)
	}

	sleepStress := shortSleep
	if debtScore > sleepStress {
		sleepStress = debtScore
	}

	highAzm := 0.0
	if finite(rec.Daily.AzmToday) {
		highAzm = clamp01(*rec.Daily.AzmToday / p.ActiveDayAzm)
	}
	highSteps := 0.0
	if finite(rec.Personal.StepsZToday) {
		highSteps = clamp01(*rec.Personal.StepsZToday)
	}
	dayLoad := 0.6*highAzm + 0.4*highSteps

	recentExercise := 0.0
	if finite(rec.Exercise.LastExerciseDurationMinutes) && *rec.Exercise.LastExerciseDurationMinutes >= 40 &&
		finite(rec.Exercise.HoursSinceLastExercise) && *rec.Exercise.HoursSinceLastExercise <= 6 {
		recentExercise = 0.7
	}

	hrComponent := 0.0
	if finite(rec.Heart.HrZNow) && *rec.Heart.HrZNow > 0.5 {
		hrComponent = 0.4
	}

	score := 0.6*sleepStress + 0.4*dayLoad + recentExercise + hrComponent
	return ptr(clamp01(score))
}

// -----------------------------------------------------------------------------

// CrossFeatures fills the interaction layer; the arousal index lives in
// its own file.
func CrossFeatures(rec *models.MFeatureRecord, p *Params) models.MCrossFeatures {
	out := models.MCrossFeatures{}
	out.RecentActivityXTimeOfDay = RecentActivityXTimeOfDay(rec, p)
	out.LowSleepHighActivityFlag = LowSleepHighActivityFlag(rec, p)
	out.AcuteArousalIndex = AcuteArousalIndex(rec, p)
	return out
}
