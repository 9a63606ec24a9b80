package features

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellness-observer/src/models"
)

// -----------------------------------------------------------------------------

func nightLog(date string, start, end time.Time, asleep, awake float64, efficiency *float64) models.MSleepLog {
	dur := end.Sub(start).Milliseconds()
	return models.MSleepLog{
		DateOfSleep:   date,
		StartTime:     start,
		EndTime:       end,
		DurationMs:    ptr(float64(dur)),
		MinutesAsleep: ptr(asleep),
		MinutesAwake:  ptr(awake),
		Efficiency:    efficiency,
	}
}

func at(day int, hour, minute int) time.Time {
	return time.Date(2025, 11, day, hour, minute, 0, 0, time.UTC)
}

// -----------------------------------------------------------------------------

func TestSleepFeaturesNoData(t *testing.T) {
	p := DefaultParams()
	out := SleepFeatures(nil, anchorAt(9, 0), &p)

	assert.Nil(t, out.SleepDurationLastNightHrs)
	assert.Contains(t, out.Notes, "no_sleep_data_7d")
}

// -----------------------------------------------------------------------------

func TestSleepFragmentedNightFoldsIntoOne(t *testing.T) {
	p := DefaultParams()

	// Two segments of the same night: 23:30-02:50 (200 min) then a
	// resumption 03:10-05:10 (120 min). Same dateOfSleep.
	logs := []models.MSleepLog{
		nightLog("2025-11-19", at(18, 23, 30), at(19, 2, 50), 185, 15, ptr(93)),
		nightLog("2025-11-19", at(19, 3, 10), at(19, 5, 10), 115, 5, nil),
	}
	logs[0].DeepMinutes = ptr(60)
	logs[0].RemMinutes = ptr(40)
	logs[0].LightMinutes = ptr(85)
	logs[1].LightMinutes = ptr(115)

	out := SleepFeatures(logs, at(19, 9, 0), &p)

	require.NotNil(t, out.SleepDurationLastNightHrs)
	assert.InDelta(t, 320.0/60, *out.SleepDurationLastNightHrs, 1e-9)

	// Efficiency comes from the longest segment, not recomputed.
	require.NotNil(t, out.SleepEfficiency)
	assert.Equal(t, 93.0, *out.SleepEfficiency)

	require.NotNil(t, out.WasoMinutes)
	assert.Equal(t, 20.0, *out.WasoMinutes)

	// Onset from the earliest start, wake from the latest end.
	require.NotNil(t, out.SleepOnsetLocalHour)
	assert.InDelta(t, 23.5, *out.SleepOnsetLocalHour, 1e-9)
	require.NotNil(t, out.WakeTimeLocalHour)
	assert.InDelta(t, 5.0+10.0/60, *out.WakeTimeLocalHour, 1e-9)

	// Stage ratios over the summed stage minutes.
	require.NotNil(t, out.RemRatio)
	assert.InDelta(t, 40.0/300, *out.RemRatio, 1e-9)
	require.NotNil(t, out.DeepRatio)
	assert.InDelta(t, 60.0/300, *out.DeepRatio, 1e-9)

	require.NotNil(t, out.SleepFragmentationScore)
	assert.InDelta(t, 20.0/320, *out.SleepFragmentationScore, 1e-9)
}

// -----------------------------------------------------------------------------

func TestSleepEfficiencyFallback(t *testing.T) {
	p := DefaultParams()
	logs := []models.MSleepLog{
		nightLog("2025-11-19", at(18, 23, 0), at(19, 7, 0), 450, 30, nil),
	}

	out := SleepFeatures(logs, at(19, 9, 0), &p)

	require.NotNil(t, out.SleepEfficiency)
	assert.InDelta(t, 450.0/480*100, *out.SleepEfficiency, 1e-9)
}

// -----------------------------------------------------------------------------

func TestSleepNapsExcluded(t *testing.T) {
	p := DefaultParams()
	nap := false
	logs := []models.MSleepLog{
		nightLog("2025-11-19", at(18, 23, 0), at(19, 7, 0), 450, 30, ptr(94)),
		nightLog("2025-11-19", at(19, 13, 0), at(19, 14, 0), 55, 5, ptr(92)),
	}
	logs[1].IsMainSleep = &nap

	out := SleepFeatures(logs, at(19, 15, 0), &p)

	require.NotNil(t, out.SleepDurationLastNightHrs)
	assert.InDelta(t, 8.0, *out.SleepDurationLastNightHrs, 1e-9)
}

// -----------------------------------------------------------------------------

func TestSleepNoNightEndedBeforeAnchor(t *testing.T) {
	p := DefaultParams()
	logs := []models.MSleepLog{
		nightLog("2025-11-19", at(18, 23, 0), at(19, 7, 0), 450, 30, nil),
	}

	// Anchor sits before the night ended.
	out := SleepFeatures(logs, at(19, 3, 0), &p)

	assert.Nil(t, out.SleepDurationLastNightHrs)
	assert.Contains(t, out.Notes, "no_last_night_sleep")
	assert.Contains(t, out.Notes, "insufficient_sleep_nights_for_stddev")
}

// -----------------------------------------------------------------------------

func TestBedtimeStdDevWrapsMidnight(t *testing.T) {
	// 23:45 and 00:15 bedtimes are 30 minutes apart, not 23.5 hours.
	nights := []sleepNight{
		{date: "2025-11-18", start: at(17, 23, 45), end: at(18, 7, 0)},
		{date: "2025-11-19", start: at(19, 0, 15), end: at(19, 7, 30)},
	}

	sd := bedtimeStdDev(nights)
	require.NotNil(t, sd)
	assert.InDelta(t, 15.0, *sd, 1e-9)
}

func TestBedtimeStdDevNeedsTwoNights(t *testing.T) {
	nights := []sleepNight{{date: "2025-11-19", start: at(18, 23, 0), end: at(19, 7, 0)}}
	assert.Nil(t, bedtimeStdDev(nights))
}
