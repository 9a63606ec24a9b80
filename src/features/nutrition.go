package features

import (
	"time"

	"wellness-observer/src/models"
)

// -----------------------------------------------------------------------------
// Nutrition and hydration features for the anchor's day.
// -----------------------------------------------------------------------------

// NutritionFeatures sums the day's nutrients, counts meals, splits calories
// into meal vs snack buckets and measures the fasting gap. Water prefers
// the dedicated hydration log over the nutrition summary.
func NutritionFeatures(nutrition *models.MNutritionDaily, water *models.MWaterDaily, now time.Time, p *Params) models.MNutritionFeatures {
	out := models.MNutritionFeatures{}

	var foods []models.MFoodLog
	if nutrition != nil {
		foods = nutrition.Foods
		out.TotalCaloriesIntake = nutrition.Summary.Calories
		out.TotalCarbsGrams = nutrition.Summary.Carbs
		out.TotalFatGrams = nutrition.Summary.Fat
		out.TotalFiberGrams = nutrition.Summary.Fiber
		out.TotalProteinGrams = nutrition.Summary.Protein
		out.TotalSodiumMg = nutrition.Summary.Sodium
		out.TotalWaterMl = nutrition.Summary.Water
	}
	if water != nil && finite(water.Total) {
		out.TotalWaterMl = water.Total
	}

	if len(foods) > 0 {
		out.MealsLoggedCount = ptr(mealsLogged(foods))
		out.TimeSinceLastMealHours = timeSinceLastMeal(foods, now)

		meal, snack := 0.0, 0.0
		for _, f := range foods {
			cal := orZero(f.Calories)
			if f.MealTypeID != nil && p.IsMealType(*f.MealTypeID) {
				meal += cal
			} else {
				snack += cal
			}
		}
		out.MealCalories = ptr(meal)
		out.SnackCalories = ptr(snack)
		if meal+snack > 0 {
			out.SnackCaloriesFraction = ptr(snack / (meal + snack))
		}
	}

	return out
}

// -----------------------------------------------------------------------------

// mealsLogged counts distinct meal-type IDs, falling back to the raw log
// count when no entry carries one.
func mealsLogged(foods []models.MFoodLog) float64 {
	ids := map[int]struct{}{}
	for _, f := range foods {
		if f.MealTypeID != nil {
			ids[*f.MealTypeID] = struct{}{}
		}
	}
	if len(ids) > 0 {
		return float64(len(ids))
	}
	return float64(len(foods))
}

// -----------------------------------------------------------------------------

// timeSinceLastMeal measures hours from the most recent food log to the
// anchor, floored at 0. Log times are dates or full timestamps.
func timeSinceLastMeal(foods []models.MFoodLog, now time.Time) *float64 {
	var last time.Time
	for _, f := range foods {
		t, ok := parseLogTime(f.LogTime, now.Location())
		if !ok {
			continue
		}
		if last.IsZero() || t.After(last) {
			last = t
		}
	}
	if last.IsZero() {
		return nil
	}
	hours := now.Sub(last).Hours()
	if hours < 0 {
		hours = 0
	}
	return &hours
}

func parseLogTime(raw string, loc *time.Location) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
