package wearable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellness-observer/src/features"
)

// -----------------------------------------------------------------------------

func TestNormalizeStepsIntraday(t *testing.T) {
	raw := []byte(`{
		"activities-steps": [{"dateTime": "2025-11-19", "value": "8123"}],
		"activities-steps-intraday": {
			"dataset": [
				{"time": "00:00:00", "value": 0},
				{"time": "08:15:00", "value": 74}
			]
		}
	}`)

	series := NormalizeStepsIntraday(raw, "2025-11-19")
	require.Len(t, series, 2)
	assert.Equal(t, "2025-11-19T08:15:00", series[1].Time)
	assert.Equal(t, 74.0, series[1].Value)
}

// -----------------------------------------------------------------------------

func TestNormalizeStepsIntradayEmptyBody(t *testing.T) {
	assert.Empty(t, NormalizeStepsIntraday([]byte(`{}`), "2025-11-19"))
	assert.Empty(t, NormalizeStepsIntraday([]byte(`not json`), "2025-11-19"))
}

// -----------------------------------------------------------------------------

func TestNormalizeAzmIntraday(t *testing.T) {
	raw := []byte(`{
		"activities-active-zone-minutes-intraday": [{
			"dateTime": "2025-11-19",
			"minutes": [
				{"minute": "2025-11-19T07:00:00", "value": {"activeZoneMinutes": 1, "fatBurnActiveZoneMinutes": 1}},
				{"minute": "2025-11-19T07:01:00", "value": {"activeZoneMinutes": 2, "cardioActiveZoneMinutes": 2}}
			]
		}]
	}`)

	series := NormalizeAzmIntraday(raw, "2025-11-19")
	require.Len(t, series, 2)
	assert.Equal(t, 1.0, series[0].FatBurn)
	assert.Equal(t, 2.0, series[1].Active)
	assert.Equal(t, 2.0, series[1].Cardio)
	assert.Equal(t, 0.0, series[1].Peak)
}

// -----------------------------------------------------------------------------

func TestNormalizeRestingHr7dSkipsDaysWithoutValue(t *testing.T) {
	raw := []byte(`{
		"activities-heart": [
			{"dateTime": "2025-11-17", "value": {"restingHeartRate": 60}},
			{"dateTime": "2025-11-18", "value": {}},
			{"dateTime": "2025-11-19", "value": {"restingHeartRate": 62}}
		]
	}`)

	series := NormalizeRestingHr7d(raw)
	require.Len(t, series, 2)
	assert.Equal(t, "2025-11-17", series[0].Date)
	assert.Equal(t, 62.0, series[1].Value)
}

// -----------------------------------------------------------------------------

func TestNormalizeSleepRange(t *testing.T) {
	raw := []byte(`{
		"sleep": [{
			"dateOfSleep": "2025-11-19",
			"isMainSleep": true,
			"startTime": "2025-11-18T23:30:00.000",
			"endTime": "2025-11-19T07:00:00.000",
			"duration": 27000000,
			"minutesAsleep": 410,
			"minutesAwake": 40,
			"efficiency": 91,
			"levels": {"summary": {
				"deep": {"minutes": 80},
				"light": {"minutes": 240},
				"rem": {"minutes": 90}
			}}
		}]
	}`)

	logs := NormalizeSleepRange(raw, time.UTC)
	require.Len(t, logs, 1)
	log := logs[0]
	assert.Equal(t, "2025-11-19", log.DateOfSleep)
	require.NotNil(t, log.IsMainSleep)
	assert.True(t, *log.IsMainSleep)
	assert.Equal(t, 23, log.StartTime.Hour())
	assert.Equal(t, 7, log.EndTime.Hour())
	require.NotNil(t, log.DurationMs)
	assert.Equal(t, 27000000.0, *log.DurationMs)
	require.NotNil(t, log.DeepMinutes)
	assert.Equal(t, 80.0, *log.DeepMinutes)
	require.NotNil(t, log.Efficiency)
	assert.Equal(t, 91.0, *log.Efficiency)
}

// -----------------------------------------------------------------------------

func TestNormalizeSleepRangeSkipsUnparseableSegments(t *testing.T) {
	raw := []byte(`{
		"sleep": [
			{"dateOfSleep": "", "startTime": "2025-11-18T23:30:00.000", "endTime": "2025-11-19T07:00:00.000"},
			{"dateOfSleep": "2025-11-19", "startTime": "bogus", "endTime": "2025-11-19T07:00:00.000"}
		]
	}`)
	assert.Empty(t, NormalizeSleepRange(raw, time.UTC))
}

// -----------------------------------------------------------------------------

func TestNormalizeHrvIntradayPicksMatchingDate(t *testing.T) {
	raw := []byte(`{
		"hrv": [
			{"dateTime": "2025-11-18", "minutes": [{"minute": "2025-11-18T00:20:00.000", "value": {"rmssd": 99}}]},
			{"dateTime": "2025-11-19", "minutes": [
				{"minute": "2025-11-19T00:20:00.000", "value": {"rmssd": 17.296, "coverage": 0.914, "hf": 64.208, "lf": 373.505}}
			]}
		]
	}`)

	samples := NormalizeHrvIntraday(raw, "2025-11-19")
	require.Len(t, samples, 1)
	require.NotNil(t, samples[0].Rmssd)
	assert.InDelta(t, 17.296, *samples[0].Rmssd, 1e-9)
	require.NotNil(t, samples[0].Lf)
	assert.InDelta(t, 373.505, *samples[0].Lf, 1e-9)
}

// -----------------------------------------------------------------------------

func TestNormalizeSpo2Daily(t *testing.T) {
	raw := []byte(`{"dateTime": "2025-11-19", "value": {"avg": 94.9, "min": 90.8, "max": 99}}`)

	daily := NormalizeSpo2Daily(raw, "2025-11-19")
	require.NotNil(t, daily)
	require.NotNil(t, daily.Avg)
	assert.InDelta(t, 94.9, *daily.Avg, 1e-9)

	assert.Nil(t, NormalizeSpo2Daily([]byte(`{"dateTime": "2025-11-19", "value": {}}`), "2025-11-19"))
}

// -----------------------------------------------------------------------------

func TestNormalizeBreathingRangePrefersFlattenedRate(t *testing.T) {
	raw := []byte(`{
		"br": [
			{"dateTime": "2025-11-18", "value": {"breathingRate": 14.2}},
			{"dateTime": "2025-11-19", "value": {"fullSleepSummary": {"breathingRate": 13.1}}}
		]
	}`)

	rows := NormalizeBreathingRange(raw)
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].Full)
	assert.InDelta(t, 14.2, *rows[0].Full, 1e-9)
	require.NotNil(t, rows[1].Full)
	assert.InDelta(t, 13.1, *rows[1].Full, 1e-9)
}

// -----------------------------------------------------------------------------

func TestNormalizeNutritionDaily(t *testing.T) {
	raw := []byte(`{
		"foods": [{
			"logId": 376201,
			"logDate": "2025-11-19",
			"loggedFood": {"name": "Chocolate Toffee Cookies", "mealTypeId": 4},
			"nutritionalValues": {"calories": 70}
		}],
		"summary": {"calories": 1840, "protein": 72, "water": 500}
	}`)

	daily := NormalizeNutritionDaily(raw, "2025-11-19")
	require.NotNil(t, daily)
	require.Len(t, daily.Foods, 1)
	assert.Equal(t, "Chocolate Toffee Cookies", daily.Foods[0].Name)
	require.NotNil(t, daily.Foods[0].MealTypeID)
	assert.Equal(t, 4, *daily.Foods[0].MealTypeID)
	require.NotNil(t, daily.Summary.Calories)
	assert.Equal(t, 1840.0, *daily.Summary.Calories)
}

// -----------------------------------------------------------------------------

func TestNormalizeExercise(t *testing.T) {
	raw := []byte(`{
		"activities": [{
			"activityName": "Spinning",
			"startTime": "2025-11-17T13:10:08.000-05:00",
			"duration": 1529000,
			"activeDuration": 1529000,
			"steps": 250,
			"calories": 215,
			"averageHeartRate": 93,
			"activeZoneMinutes": {
				"totalMinutes": 8,
				"minutesInHeartRateZones": [{"zoneName": "Fat Burn", "minutes": 8}]
			}
		}]
	}`)

	ex := NormalizeExercise(raw, time.UTC)
	require.NotNil(t, ex)
	assert.Equal(t, "Spinning", ex.ActivityName)
	assert.Equal(t, int64(1529000), ex.DurationMs)
	assert.Equal(t, 13, ex.StartTime.Hour())
	require.Len(t, ex.Zones, 1)
	assert.Equal(t, "Fat Burn", ex.Zones[0].Name)

	assert.Nil(t, NormalizeExercise([]byte(`{"activities": []}`), time.UTC))
}

// -----------------------------------------------------------------------------

// Naive provider timestamps are wall-clock times in the user's zone. They
// must land in the same frame as the localized anchor, or every recency
// computation downstream is off by the UTC offset.
func TestNormalizeExerciseNaiveStartMatchesAnchorFrame(t *testing.T) {
	tokyo := time.FixedZone("UTC+9", 9*3600)
	anchor := time.Date(2025, 11, 19, 15, 0, 0, 0, tokyo)

	raw := []byte(`{
		"activities": [{
			"activityName": "Run",
			"startTime": "2025-11-19T10:00:00.000",
			"duration": 1800000
		}]
	}`)

	ex := NormalizeExercise(raw, tokyo)
	require.NotNil(t, ex)
	assert.Equal(t, 10, ex.StartTime.Hour())
	assert.Equal(t, tokyo, ex.StartTime.Location())

	// Ended 10:30 local, anchor 15:00 local: the gap is 270 minutes and the
	// post-exercise window is long over.
	p := features.DefaultParams()
	out := features.ExerciseFeatures(ex, anchor, &p)
	require.NotNil(t, out.TimeSinceLastExerciseMin)
	assert.InDelta(t, 270, *out.TimeSinceLastExerciseMin, 1e-9)
	require.NotNil(t, out.PostExerciseWindow90m)
	assert.False(t, *out.PostExerciseWindow90m)
}

// -----------------------------------------------------------------------------

func TestNormalizeSleepRangeNaiveTimesMatchAnchorFrame(t *testing.T) {
	tokyo := time.FixedZone("UTC+9", 9*3600)
	anchor := time.Date(2025, 11, 19, 15, 0, 0, 0, tokyo)

	raw := []byte(`{
		"sleep": [{
			"dateOfSleep": "2025-11-19",
			"isMainSleep": true,
			"startTime": "2025-11-18T23:30:00.000",
			"endTime": "2025-11-19T07:00:00.000",
			"duration": 27000000,
			"minutesAsleep": 410,
			"minutesAwake": 40,
			"efficiency": 91
		}]
	}`)

	logs := NormalizeSleepRange(raw, tokyo)
	require.Len(t, logs, 1)
	assert.Equal(t, tokyo, logs[0].EndTime.Location())

	// The night ended 07:00 local, eight hours before the anchor, so it is
	// selected as last night instead of being pushed past the anchor by a
	// UTC reading of its end time.
	p := features.DefaultParams()
	out := features.SleepFeatures(logs, anchor, &p)
	require.NotNil(t, out.SleepDurationLastNightHrs)
	assert.InDelta(t, 7.5, *out.SleepDurationLastNightHrs, 1e-9)
	assert.NotContains(t, out.Notes, "no_last_night_sleep")
}
