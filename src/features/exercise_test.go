package features

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellness-observer/src/models"
)

// -----------------------------------------------------------------------------

func testRun(start time.Time, durationMin int) *models.MExercise {
	return &models.MExercise{
		ActivityName: "Run",
		StartTime:    start,
		DurationMs:   int64(durationMin) * 60000,
		Steps:        ptr(4200),
		Calories:     ptr(310),
		AvgHeartRate: ptr(152),
		AzmTotal:     ptr(48),
		Zones: []models.MZoneMinutes{
			{Name: "Fat Burn", Minutes: 12},
			{Name: "Cardio", Minutes: 30},
			{Name: "Peak", Minutes: 0},
		},
	}
}

// -----------------------------------------------------------------------------

func TestExerciseFeaturesNilActivity(t *testing.T) {
	p := DefaultParams()
	out := ExerciseFeatures(nil, anchorAt(12, 0), &p)

	assert.Nil(t, out.LastExerciseType)
	assert.Nil(t, out.PostExerciseWindow90m)
}

// -----------------------------------------------------------------------------

func TestExerciseFeatures(t *testing.T) {
	p := DefaultParams()
	start := at(19, 9, 0)
	out := ExerciseFeatures(testRun(start, 40), at(19, 11, 0), &p)

	require.NotNil(t, out.LastExerciseType)
	assert.Equal(t, "Run", *out.LastExerciseType)
	require.NotNil(t, out.LastExerciseDurationMinutes)
	assert.Equal(t, 40.0, *out.LastExerciseDurationMinutes)

	// Zone minutes match by substring, case-insensitively; empty zones do
	// not contribute.
	require.NotNil(t, out.LastExerciseAzmFatBurn)
	assert.Equal(t, 12.0, *out.LastExerciseAzmFatBurn)
	require.NotNil(t, out.LastExerciseAzmCardio)
	assert.Equal(t, 30.0, *out.LastExerciseAzmCardio)
	assert.Nil(t, out.LastExerciseAzmPeak)

	// Ended 09:40, anchor 11:00: 80 minutes ago, inside the window.
	require.NotNil(t, out.TimeSinceLastExerciseMin)
	assert.InDelta(t, 80.0, *out.TimeSinceLastExerciseMin, 1e-9)
	require.NotNil(t, out.HoursSinceLastExercise)
	assert.InDelta(t, 80.0/60, *out.HoursSinceLastExercise, 1e-9)
	require.NotNil(t, out.PostExerciseWindow90m)
	assert.True(t, *out.PostExerciseWindow90m)
}

// -----------------------------------------------------------------------------

func TestExerciseWindowBoundary(t *testing.T) {
	p := DefaultParams()
	start := at(19, 9, 0)

	// Exactly 90 minutes after the end is still inside.
	out := ExerciseFeatures(testRun(start, 30), at(19, 11, 0), &p)
	require.NotNil(t, out.PostExerciseWindow90m)
	assert.True(t, *out.PostExerciseWindow90m)

	// One minute past the window is outside.
	out = ExerciseFeatures(testRun(start, 29), at(19, 11, 0), &p)
	require.NotNil(t, out.PostExerciseWindow90m)
	assert.False(t, *out.PostExerciseWindow90m)
}

// -----------------------------------------------------------------------------

func TestExerciseGapIsFrameIndependent(t *testing.T) {
	p := DefaultParams()
	tokyo := time.FixedZone("UTC+9", 9*3600)
	anchor := time.Date(2025, 11, 19, 15, 0, 0, 0, tokyo)

	// The same instant expressed in different zones yields the same gap.
	startLocal := time.Date(2025, 11, 19, 10, 0, 0, 0, tokyo)
	local := ExerciseFeatures(testRun(startLocal, 30), anchor, &p)
	utc := ExerciseFeatures(testRun(startLocal.UTC(), 30), anchor, &p)

	require.NotNil(t, local.TimeSinceLastExerciseMin)
	require.NotNil(t, utc.TimeSinceLastExerciseMin)
	assert.InDelta(t, 270, *local.TimeSinceLastExerciseMin, 1e-9)
	assert.InDelta(t, 270, *utc.TimeSinceLastExerciseMin, 1e-9)
	require.NotNil(t, local.PostExerciseWindow90m)
	assert.False(t, *local.PostExerciseWindow90m)
}

// -----------------------------------------------------------------------------

func TestExerciseStillInProgress(t *testing.T) {
	p := DefaultParams()
	start := at(19, 10, 30)

	out := ExerciseFeatures(testRun(start, 60), at(19, 11, 0), &p)
	require.NotNil(t, out.TimeSinceLastExerciseMin)
	assert.Equal(t, 0.0, *out.TimeSinceLastExerciseMin)
	require.NotNil(t, out.PostExerciseWindow90m)
	assert.True(t, *out.PostExerciseWindow90m)
}
