package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellness-observer/src/models"
)

// -----------------------------------------------------------------------------

func TestArousalNilWithoutAnySignal(t *testing.T) {
	p := DefaultParams()
	rec := &models.MFeatureRecord{}
	rec.Sleep.SleepDurationLastNightHrs = ptr(7.5)

	assert.Nil(t, AcuteArousalIndex(rec, &p))
}

// -----------------------------------------------------------------------------

func TestArousalHrReactivity(t *testing.T) {
	p := DefaultParams()
	rec := &models.MFeatureRecord{}
	rec.Heart.HrDelta5m = ptr(5)
	rec.Heart.HrSlopeLast30m = ptr(0.1)
	rec.Heart.HrZNow = ptr(0.5)

	v := AcuteArousalIndex(rec, &p)
	require.NotNil(t, v)
	// 1.2*5 + 30*0.1 + 0.5
	assert.InDelta(t, 9.5, *v, 1e-9)
}

// -----------------------------------------------------------------------------

func TestArousalClampsAtTen(t *testing.T) {
	p := DefaultParams()
	rec := &models.MFeatureRecord{}
	rec.Heart.HrDelta5m = ptr(40)
	rec.Steps.StepBurst5m = ptr(120)

	v := AcuteArousalIndex(rec, &p)
	require.NotNil(t, v)
	assert.Equal(t, 10.0, *v)
}

// -----------------------------------------------------------------------------

func TestArousalSedentaryInertiaPenalty(t *testing.T) {
	p := DefaultParams()
	rec := &models.MFeatureRecord{}
	rec.Steps.StepsLast15m = ptr(100)
	rec.Steps.ZeroStreakMax60m = ptr(50)

	// 0.015*100 - 1.0 sedentary term, floored at 0.
	v := AcuteArousalIndex(rec, &p)
	require.NotNil(t, v)
	assert.Equal(t, 0.5, *v)
}

// -----------------------------------------------------------------------------

func TestArousalHardBreakFromSitting(t *testing.T) {
	p := DefaultParams()
	rec := &models.MFeatureRecord{}
	rec.Steps.ZeroStreakMax60m = ptr(50)
	rec.Steps.StepBurst5m = ptr(40)

	// A real burst after long sitting gets the break boost instead of the
	// inertia penalty, saturating the index.
	v := AcuteArousalIndex(rec, &p)
	require.NotNil(t, v)
	assert.Equal(t, 10.0, *v)
}

// -----------------------------------------------------------------------------

func TestArousalSuppressors(t *testing.T) {
	p := DefaultParams()
	rec := &models.MFeatureRecord{}
	rec.Heart.HrDelta5m = ptr(3)
	rec.Exercise.PostExerciseWindow90m = boolPtr(true)
	rec.Sleep.SleepDurationLastNightHrs = ptr(5)

	// 1.2*3 - 1.5 post-exercise - 0.5 short sleep.
	v := AcuteArousalIndex(rec, &p)
	require.NotNil(t, v)
	assert.InDelta(t, 1.6, *v, 1e-9)
}
