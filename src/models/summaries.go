package models

import "time"

// -----------------------------------------------------------------------------
// Single-day / range summary inputs.
// -----------------------------------------------------------------------------

// MHrvDaily is the nightly HRV summary for one date.
type MHrvDaily struct {
	Date       string   `json:"date"`
	DailyRmssd *float64 `json:"dailyRmssd"`
	DeepRmssd  *float64 `json:"deepRmssd"`
}

// MSpo2Daily is the nightly oxygen-saturation summary for one date.
type MSpo2Daily struct {
	Date string   `json:"date"`
	Avg  *float64 `json:"spo2Avg"`
	Min  *float64 `json:"spo2Min"`
	Max  *float64 `json:"spo2Max"`
}

// MBreathingDaily is the nightly breathing-rate summary for one date.
type MBreathingDaily struct {
	Date  string   `json:"date"`
	Full  *float64 `json:"brFull"`
	Deep  *float64 `json:"brDeep"`
	Rem   *float64 `json:"brRem"`
	Light *float64 `json:"brLight"`
}

// MTempSkinDaily is the nightly relative skin temperature for one date.
type MTempSkinDaily struct {
	Date            string   `json:"date"`
	NightlyRelative *float64 `json:"tempSkinNightlyRelative"`
}

// MDailySummary is the day-level activity summary.
type MDailySummary struct {
	AzmTotal            *float64 `json:"azmTotal"`
	FairlyActiveMinutes *float64 `json:"fairlyActiveMinutes"`
	VeryActiveMinutes   *float64 `json:"veryActiveMinutes"`
	CaloriesOut         *float64 `json:"caloriesOut"`
	RestingHeartRate    *float64 `json:"restingHeartRate"`
}

// MFoodLog is one logged food entry.
type MFoodLog struct {
	LogID      int64    `json:"logId"`
	Name       string   `json:"name"`
	Calories   *float64 `json:"calories"`
	MealTypeID *int     `json:"mealTypeId"`
	LogTime    string   `json:"logTime"`
}

// MNutritionSummary holds the day's nutrient totals.
type MNutritionSummary struct {
	Calories *float64 `json:"calories"`
	Carbs    *float64 `json:"carbs"`
	Fat      *float64 `json:"fat"`
	Fiber    *float64 `json:"fiber"`
	Protein  *float64 `json:"protein"`
	Sodium   *float64 `json:"sodium"`
	Water    *float64 `json:"water"`
}

// MNutritionDaily is the normalized daily food log.
type MNutritionDaily struct {
	Date    string            `json:"date"`
	Foods   []MFoodLog        `json:"foods"`
	Summary MNutritionSummary `json:"nutritionSummary"`
}

// MWaterDaily is the normalized daily hydration log.
type MWaterDaily struct {
	Date  string   `json:"date"`
	Total *float64 `json:"waterTotal"`
}

// MZoneMinutes is one heart-rate-zone entry of an exercise log.
// Zone names are matched case-insensitively by substring.
type MZoneMinutes struct {
	Name    string  `json:"name"`
	Minutes float64 `json:"minutes"`
}

// MExercise is the most recent activity log before the anchor.
type MExercise struct {
	ActivityName string         `json:"activityName"`
	StartTime    time.Time      `json:"startTime"`
	DurationMs   int64          `json:"duration"`
	Steps        *float64       `json:"steps"`
	Calories     *float64       `json:"calories"`
	AvgHeartRate *float64       `json:"averageHeartRate"`
	AzmTotal     *float64       `json:"azmTotal"`
	Zones        []MZoneMinutes `json:"minutesInHeartRateZones"`
}
