package models

import "encoding/json"

// -----------------------------------------------------------------------------
// Typed feature groups. Every feature the pipeline can emit is a named,
// nullable field on one of these structs; nil means "insufficient data",
// never zero. The flat record consumed downstream is produced by Flatten,
// which applies the groups in a fixed, documented order.
// -----------------------------------------------------------------------------

// FeatureVersion tags the flattened record schema.
const FeatureVersion = 1

type MStepsFeatures struct {
	StepsLast5m         *float64 `json:"stepsLast5m"`
	StepsLast15m        *float64 `json:"stepsLast15m"`
	StepsLast30m        *float64 `json:"stepsLast30m"`
	StepsLast60m        *float64 `json:"stepsLast60m"`
	StepsLast3h         *float64 `json:"stepsLast3h"`
	StepBurst5m         *float64 `json:"stepBurst5m"`
	ZeroStreakMax60m    *float64 `json:"zeroStreakMax60m"`
	StepsSlopeLast60m   *float64 `json:"stepsSlopeLast60m"`
	StepsAccel5to15m    *float64 `json:"stepsAccel5to15m"`
	SedentaryMinsLast3h *float64 `json:"sedentaryMinsLast3h"`
}

type MAzmFeatures struct {
	AzmLast30m             *float64 `json:"azmLast30m"`
	AzmLast60m             *float64 `json:"azmLast60m"`
	AzmFatBurnLast30m      *float64 `json:"azmFatBurnLast30m"`
	AzmCardioLast30m       *float64 `json:"azmCardioLast30m"`
	AzmPeakLast30m         *float64 `json:"azmPeakLast30m"`
	AzmIntensityMinutes30m *float64 `json:"azmIntensityMinutes30m"`
	AzmIntensityMinutes60m *float64 `json:"azmIntensityMinutes60m"`
	AzmZeroStreakMax60m    *float64 `json:"azmZeroStreakMax60m"`
	AzmSlopeLast60m        *float64 `json:"azmSlopeLast60m"`
	AzmSpike30m            *float64 `json:"azmSpike30m"`
}

type MHeartFeatures struct {
	HrNow            *float64 `json:"hrNow"`
	HrAvgLast5m      *float64 `json:"hrAvgLast5m"`
	HrAvgLast15m     *float64 `json:"hrAvgLast15m"`
	HrAvgLast60m     *float64 `json:"hrAvgLast60m"`
	HrMinLast15m     *float64 `json:"hrMinLast15m"`
	HrMaxLast15m     *float64 `json:"hrMaxLast15m"`
	HrStdDevLast30m  *float64 `json:"hrStdDevLast30m"`
	HrStdDevLast60m  *float64 `json:"hrStdDevLast60m"`
	HrSlopeLast30m   *float64 `json:"hrSlopeLast30m"`
	HrSlopeLast60m   *float64 `json:"hrSlopeLast60m"`
	HrDelta5m        *float64 `json:"hrDelta5m"`
	HrDelta15m       *float64 `json:"hrDelta15m"`
	RhrMean7d        *float64 `json:"rhrMean7d"`
	RhrStd7d         *float64 `json:"rhrStd7d"`
	HrZNow           *float64 `json:"hrZNow"`
	HrZLast15m       *float64 `json:"hrZLast15m"`
	RestingHr7dTrend *float64 `json:"restingHr7dTrend"`
}

type MSleepFeatures struct {
	SleepDurationLastNightHrs *float64 `json:"sleepDurationLastNightHrs"`
	SleepEfficiency           *float64 `json:"sleepEfficiency"`
	WasoMinutes               *float64 `json:"wasoMinutes"`
	RemRatio                  *float64 `json:"remRatio"`
	DeepRatio                 *float64 `json:"deepRatio"`
	SleepOnsetLocalHour       *float64 `json:"sleepOnsetLocalHour"`
	WakeTimeLocalHour         *float64 `json:"wakeTimeLocalHour"`
	SleepFragmentationScore   *float64 `json:"sleepFragmentationScore"`
	BedtimeStdDev7d           *float64 `json:"bedtimeStdDev7d"`

	Notes []string `json:"-"`
}

type MHrvFeatures struct {
	HrvRmssdDaily            *float64 `json:"hrvRmssdDaily"`
	HrvDeepRmssdDaily        *float64 `json:"hrvDeepRmssdDaily"`
	HrvRmssd7dAvg            *float64 `json:"hrvRmssd7dAvg"`
	HrvRmssdDeviationFrom7d  *float64 `json:"hrvRmssdDeviationFrom7d"`
	HrvIntradayRmssdMean     *float64 `json:"hrvIntradayRmssdMean"`
	HrvIntradayRmssdStdDev   *float64 `json:"hrvIntradayRmssdStdDev"`
	HrvIntradayLfMean        *float64 `json:"hrvIntradayLfMean"`
	HrvIntradayHfMean        *float64 `json:"hrvIntradayHfMean"`
	HrvIntradayLfHfRatioMean *float64 `json:"hrvIntradayLfHfRatioMean"`
	HrvIntradayCoverageMean  *float64 `json:"hrvIntradayCoverageMean"`
}

type MSpo2Features struct {
	Spo2Avg                *float64 `json:"spo2Avg"`
	Spo2Min                *float64 `json:"spo2Min"`
	Spo2Max                *float64 `json:"spo2Max"`
	Spo2Range              *float64 `json:"spo2Range"`
	Spo2Avg7dAvg           *float64 `json:"spo2Avg7dAvg"`
	Spo2AvgDeviationFrom7d *float64 `json:"spo2AvgDeviationFrom7d"`
}

type MBreathingFeatures struct {
	BrFullNight                *float64 `json:"brFullNight"`
	BrDeepSleep                *float64 `json:"brDeepSleep"`
	BrRemSleep                 *float64 `json:"brRemSleep"`
	BrLightSleep               *float64 `json:"brLightSleep"`
	BrFullNight7dAvg           *float64 `json:"brFullNight7dAvg"`
	BrFullNightDeviationFrom7d *float64 `json:"brFullNightDeviationFrom7d"`
}

type MTempSkinFeatures struct {
	TempSkinNightlyRelative                *float64 `json:"tempSkinNightlyRelative"`
	TempSkinNightlyRelative7dAvg           *float64 `json:"tempSkinNightlyRelative7dAvg"`
	TempSkinNightlyRelativeDeviationFrom7d *float64 `json:"tempSkinNightlyRelativeDeviationFrom7d"`
}

type MNutritionFeatures struct {
	TotalCaloriesIntake    *float64 `json:"totalCaloriesIntake"`
	TotalCarbsGrams        *float64 `json:"totalCarbsGrams"`
	TotalFatGrams          *float64 `json:"totalFatGrams"`
	TotalFiberGrams        *float64 `json:"totalFiberGrams"`
	TotalProteinGrams      *float64 `json:"totalProteinGrams"`
	TotalSodiumMg          *float64 `json:"totalSodiumMg"`
	TotalWaterMl           *float64 `json:"totalWaterMl"`
	MealsLoggedCount       *float64 `json:"mealsLoggedCount"`
	TimeSinceLastMealHours *float64 `json:"timeSinceLastMealHours"`
	MealCalories           *float64 `json:"mealCalories"`
	SnackCalories          *float64 `json:"snackCalories"`
	SnackCaloriesFraction  *float64 `json:"snackCaloriesFraction"`
}

type MExerciseFeatures struct {
	LastExerciseType            *string  `json:"lastExerciseType"`
	LastExerciseStartTime       *string  `json:"lastExerciseStartTime"`
	LastExerciseDurationMinutes *float64 `json:"lastExerciseDurationMinutes"`
	LastExerciseSteps           *float64 `json:"lastExerciseSteps"`
	LastExerciseCalories        *float64 `json:"lastExerciseCalories"`
	LastExerciseAvgHr           *float64 `json:"lastExerciseAvgHr"`
	LastExerciseAzmTotal        *float64 `json:"lastExerciseAzmTotal"`
	LastExerciseAzmFatBurn      *float64 `json:"lastExerciseAzmFatBurn"`
	LastExerciseAzmCardio       *float64 `json:"lastExerciseAzmCardio"`
	LastExerciseAzmPeak         *float64 `json:"lastExerciseAzmPeak"`
	TimeSinceLastExerciseMin    *float64 `json:"timeSinceLastExerciseMin"`
	HoursSinceLastExercise      *float64 `json:"hoursSinceLastExercise"`
	PostExerciseWindow90m       *bool    `json:"postExerciseWindow90m"`
}

type MDailyFeatures struct {
	AzmToday          *float64 `json:"azmToday"`
	CaloriesOutToday  *float64 `json:"caloriesOutToday"`
	CaloriesOutLast3h *float64 `json:"caloriesOutLast3h"`
	RestingHR         *float64 `json:"restingHR"`
	HourOfDay         *float64 `json:"hourOfDay"`
	DayOfWeek         *float64 `json:"dayOfWeek"`
	IsWeekend         *bool    `json:"isWeekend"`
}

type MPersonalFeatures struct {
	StepsZToday     *float64 `json:"stepsZToday"`
	ActivityInertia *float64 `json:"activityInertia"`
	SleepDebtHrs    *float64 `json:"sleepDebtHrs"`
	RecoveryIndex   *float64 `json:"recoveryIndex"`
}

type MCrossFeatures struct {
	RecentActivityXTimeOfDay *float64 `json:"recentActivityXTimeOfDay"`
	LowSleepHighActivityFlag *float64 `json:"lowSleepHighActivityFlag"`
	AcuteArousalIndex        *float64 `json:"acuteArousalIndex"`
}

type MCompositeFeatures struct {
	OverexertionFlag         *bool    `json:"overexertionFlag"`
	StressSpikeFlag          *bool    `json:"stressSpikeFlag"`
	EveningRestlessnessScore *float64 `json:"eveningRestlessnessScore"`
	MorningLethargyScore     *float64 `json:"morningLethargyScore"`
	DoomscrollingScore       *float64 `json:"doomscrollingScore"`
}

// MWeatherFeatures is present only when the weather lookup succeeded;
// a provider outage omits these keys rather than writing nulls.
type MWeatherFeatures struct {
	WeatherTempF       *float64 `json:"weatherTempF"`
	WeatherFeelsLikeF  *float64 `json:"weatherFeelsLikeF"`
	WeatherWindMph     *float64 `json:"weatherWindMph"`
	WeatherHumidityPct *float64 `json:"weatherHumidityPct"`
	WeatherPrecipMm    *float64 `json:"weatherPrecipMm"`
	OutdoorAQI         *float64 `json:"outdoorAQI"`
}

// MGeoTimeFeatures is emitted only when a finite lat/lon was supplied.
type MGeoTimeFeatures struct {
	HourOfDay             *float64 `json:"hourOfDay"`
	DayOfWeek             *float64 `json:"dayOfWeek"`
	IsWeekend             *bool    `json:"isWeekend"`
	DaylightNowFlag       *float64 `json:"daylightNowFlag"`
	DaylightMinsRemaining *float64 `json:"daylightMinsRemaining"`
	LocationClusterKey    *string  `json:"locationClusterKey"`
	CommuteFlag           *float64 `json:"commuteFlag"`
	Lat                   *float64 `json:"lat"`
	Lon                   *float64 `json:"lon"`

	ClusterOneHot map[string]float64 `json:"-"`
	Weather       *MWeatherFeatures  `json:"-"`
}

// -----------------------------------------------------------------------------
// MFeatureRecord - assembled output of one feature build.
// -----------------------------------------------------------------------------

type MFeatureRecord struct {
	Steps     MStepsFeatures
	Azm       MAzmFeatures
	Heart     MHeartFeatures
	Sleep     MSleepFeatures
	Hrv       MHrvFeatures
	Spo2      MSpo2Features
	Breathing MBreathingFeatures
	TempSkin  MTempSkinFeatures
	Nutrition MNutritionFeatures
	Exercise  MExerciseFeatures
	Daily     MDailyFeatures
	Personal  MPersonalFeatures
	Cross     MCrossFeatures
	Composite MCompositeFeatures

	// Client holds caller-supplied features forwarded verbatim.
	Client map[string]any

	// Geo is nil when no usable coordinates were supplied.
	Geo *MGeoTimeFeatures

	// Notes collects structured diagnostic codes from degraded paths.
	Notes []string
}

// -----------------------------------------------------------------------------

// overlay merges the JSON projection of v into out. Later calls win.
func overlay(out map[string]any, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return
	}
	for k, val := range m {
		out[k] = val
	}
}

// -----------------------------------------------------------------------------

// Flatten produces the flat feature map. Layer order is fixed and load
// bearing: per-signal groups first, then personal baselines, then the
// cross/composite layer, then caller-supplied client features, then geo/time
// features last - geo/time values win over client values on key collision.
func (r *MFeatureRecord) Flatten() map[string]any {
	out := make(map[string]any)

	overlay(out, r.Steps)
	overlay(out, r.Azm)
	overlay(out, r.Heart)
	overlay(out, r.Sleep)
	overlay(out, r.Hrv)
	overlay(out, r.Spo2)
	overlay(out, r.Breathing)
	overlay(out, r.TempSkin)
	overlay(out, r.Nutrition)
	overlay(out, r.Exercise)
	overlay(out, r.Daily)
	overlay(out, r.Personal)
	overlay(out, r.Cross)
	overlay(out, r.Composite)

	for k, v := range r.Client {
		out[k] = v
	}

	if r.Geo != nil {
		overlay(out, r.Geo)
		for k, v := range r.Geo.ClusterOneHot {
			out[k] = v
		}
		if r.Geo.Weather != nil {
			overlay(out, r.Geo.Weather)
		}
	}

	notes := r.Notes
	if notes == nil {
		notes = []string{}
	}
	out["notes"] = notes
	out["version"] = FeatureVersion
	return out
}

// -----------------------------------------------------------------------------

// MarshalJSON stores the flattened projection; the stored artifact is the
// flat record, the typed groups exist to catch name collisions at compile
// time.
func (r *MFeatureRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Flatten())
}
