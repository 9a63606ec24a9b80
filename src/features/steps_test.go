package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

func TestStepsFeaturesEmptySeries(t *testing.T) {
	p := DefaultParams()
	out := StepsFeatures(nil, anchorAt(12, 0), &p)

	assert.Nil(t, out.StepsLast5m)
	assert.Nil(t, out.StepsLast3h)
	assert.Nil(t, out.ZeroStreakMax60m)
	assert.Nil(t, out.SedentaryMinsLast3h)
}

// -----------------------------------------------------------------------------

func TestStepsFeaturesWindows(t *testing.T) {
	p := DefaultParams()
	anchor := anchorAt(12, 0)

	// 11:01-12:00 at 10 steps/min, except a 30-step spike at 11:58.
	series := minuteSeries(11*60+1, 60, func(i int) float64 {
		if i == 57 {
			return 30
		}
		return 10
	})

	out := StepsFeatures(series, anchor, &p)

	require.NotNil(t, out.StepsLast5m)
	assert.Equal(t, 70.0, *out.StepsLast5m) // 4x10 + 30
	require.NotNil(t, out.StepsLast15m)
	assert.Equal(t, 170.0, *out.StepsLast15m)
	require.NotNil(t, out.StepsLast60m)
	assert.Equal(t, 620.0, *out.StepsLast60m)

	require.NotNil(t, out.StepBurst5m)
	assert.Equal(t, 30.0, *out.StepBurst5m)

	// (170 - 70) / 10 minutes
	require.NotNil(t, out.StepsAccel5to15m)
	assert.InDelta(t, 10.0, *out.StepsAccel5to15m, 1e-9)

	require.NotNil(t, out.ZeroStreakMax60m)
	assert.Equal(t, 0.0, *out.ZeroStreakMax60m)
}

// -----------------------------------------------------------------------------

func TestStepsFeaturesLongStillness(t *testing.T) {
	p := DefaultParams()
	anchor := anchorAt(12, 0)

	// 71 straight zero minutes ending at the anchor. The 60-minute streak
	// saturates at the window size; the 3-hour sedentary count sees them all.
	series := flatSeries(10*60+50, 71, 0)

	out := StepsFeatures(series, anchor, &p)

	require.NotNil(t, out.ZeroStreakMax60m)
	assert.Equal(t, 60.0, *out.ZeroStreakMax60m)

	require.NotNil(t, out.SedentaryMinsLast3h)
	assert.Equal(t, 71.0, *out.SedentaryMinsLast3h)

	require.NotNil(t, out.StepsLast3h)
	assert.Equal(t, 0.0, *out.StepsLast3h)
}
