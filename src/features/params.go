package features

// -----------------------------------------------------------------------------
// Params collects every heuristic threshold and weight used by the cross and
// composite layers. The values are tunable defaults, injected by the caller;
// no extractor reads configuration from package state.
// -----------------------------------------------------------------------------

type Params struct {
	// Time-of-day activity expectations (steps / AZM per 30-minute window),
	// by bin: night <6h, morning <12h, afternoon <17h, evening otherwise.
	ExpectedStepsNight     float64
	ExpectedStepsMorning   float64
	ExpectedStepsAfternoon float64
	ExpectedStepsEvening   float64
	ExpectedAzmNight       float64
	ExpectedAzmMorning     float64
	ExpectedAzmAfternoon   float64
	ExpectedAzmEvening     float64
	WeekendMultiplier      float64

	// Steps-per-minute threshold for counting a minute as "active".
	ActiveStepsPerMin float64

	// Daily AZM total treated as a fairly active day.
	ActiveDayAzm float64

	// Sleep targets.
	SleepTargetHrs  float64
	ShortSleepHrs   float64
	SleepDebtNights int

	// Post-exercise suppression window, minutes.
	PostExerciseWindowMin float64

	// Commute bands, local hours, weekdays only (inclusive start, exclusive
	// end). AM 6-9 / PM 16-19 per the documented Open Question decision.
	CommuteAMStartHour int
	CommuteAMEndHour   int
	CommutePMStartHour int
	CommutePMEndHour   int

	// Feels-like thresholds (NWS heat index / wind chill applicability).
	HeatIndexMinTempF    float64
	HeatIndexMinHumidity float64
	WindChillMaxTempF    float64
	WindChillMinWindMph  float64

	// Default geofence radius when a cluster omits one, meters.
	DefaultClusterRadiusM float64

	// Meal-type IDs counted as proper meals (breakfast/lunch/dinner);
	// everything else, including unset, is a snack.
	MealTypeIDs []int
}

// -----------------------------------------------------------------------------

// DefaultParams returns the converged defaults.
func DefaultParams() Params {
	return Params{
		ExpectedStepsNight:     60,
		ExpectedStepsMorning:   400,
		ExpectedStepsAfternoon: 550,
		ExpectedStepsEvening:   350,
		ExpectedAzmNight:       0.2,
		ExpectedAzmMorning:     3,
		ExpectedAzmAfternoon:   4,
		ExpectedAzmEvening:     2.5,
		WeekendMultiplier:      1.25,

		ActiveStepsPerMin: 60,
		ActiveDayAzm:      60,

		SleepTargetHrs:  8,
		ShortSleepHrs:   6,
		SleepDebtNights: 3,

		PostExerciseWindowMin: 90,

		CommuteAMStartHour: 6,
		CommuteAMEndHour:   9,
		CommutePMStartHour: 16,
		CommutePMEndHour:   19,

		HeatIndexMinTempF:    80,
		HeatIndexMinHumidity: 40,
		WindChillMaxTempF:    50,
		WindChillMinWindMph:  3,

		DefaultClusterRadiusM: 200,

		MealTypeIDs: []int{1, 3, 5},
	}
}

// -----------------------------------------------------------------------------

// IsMealType reports whether the meal-type ID counts as a proper meal.
func (p Params) IsMealType(id int) bool {
	for _, m := range p.MealTypeIDs {
		if m == id {
			return true
		}
	}
	return false
}
