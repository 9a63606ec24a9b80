package features

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellness-observer/src/models"
)

// -----------------------------------------------------------------------------
// Shared test fixtures.
// -----------------------------------------------------------------------------

const fixtureDate = "2025-11-19"

func anchorAt(hour, minute int) time.Time {
	return time.Date(2025, 11, 19, hour, minute, 0, 0, time.UTC)
}

// minuteSeries builds count one-minute samples starting at startMin minutes
// past midnight, valued by value(i).
func minuteSeries(startMin, count int, value func(i int) float64) []models.MIntradaySample {
	out := make([]models.MIntradaySample, 0, count)
	for i := 0; i < count; i++ {
		m := startMin + i
		out = append(out, models.MIntradaySample{
			Time:  fmt.Sprintf("%sT%02d:%02d:00", fixtureDate, (m/60)%24, m%60),
			Value: value(i),
		})
	}
	return out
}

func flatSeries(startMin, count int, v float64) []models.MIntradaySample {
	return minuteSeries(startMin, count, func(int) float64 { return v })
}

// -----------------------------------------------------------------------------

func TestWindowHalfOpenBoundary(t *testing.T) {
	anchor := anchorAt(10, 0)
	series := []models.MIntradaySample{
		{Time: "09:00:00", Value: 1}, // exactly anchor-60: excluded
		{Time: "09:01:00", Value: 2}, // first included minute
		{Time: "10:00:00", Value: 4}, // exactly at anchor: included
	}

	assert.Equal(t, 6.0, sumWindow(series, anchor, 60))
}

// -----------------------------------------------------------------------------

func TestWindowAfterAnchorBelongsToPreviousDay(t *testing.T) {
	anchor := anchorAt(10, 0)
	// A 10:01 clock reading can only be yesterday's sample relative to a
	// 10:00 anchor; it must not land inside the 60-minute window.
	series := []models.MIntradaySample{
		{Time: "10:01:00", Value: 100},
		{Time: "09:30:00", Value: 7},
	}

	assert.Equal(t, 7.0, sumWindow(series, anchor, 60))
}

// -----------------------------------------------------------------------------

func TestWindowMidnightCrossing(t *testing.T) {
	anchor := anchorAt(0, 10)
	series := []models.MIntradaySample{
		{Time: "23:50:00", Value: 5}, // 20 minutes before the anchor
		{Time: "00:05:00", Value: 3},
		{Time: "22:00:00", Value: 50}, // outside the hour
	}

	assert.Equal(t, 8.0, sumWindow(series, anchor, 60))
}

// -----------------------------------------------------------------------------

func TestWindowSkipsUnparseableTimes(t *testing.T) {
	anchor := anchorAt(10, 0)
	series := []models.MIntradaySample{
		{Time: "garbage", Value: 100},
		{Time: "09:59:00", Value: 2},
	}

	assert.Equal(t, 2.0, sumWindow(series, anchor, 60))
}

// -----------------------------------------------------------------------------

func TestMeanWindowNilWhenEmpty(t *testing.T) {
	anchor := anchorAt(10, 0)
	assert.Nil(t, meanWindow(nil, anchor, 15, 0))

	series := flatSeries(9*60+50, 10, 4)
	m := meanWindow(series, anchor, 15, 0)
	require.NotNil(t, m)
	assert.Equal(t, 4.0, *m)
}

// -----------------------------------------------------------------------------

func TestStdDevWindowSampleDenominator(t *testing.T) {
	anchor := anchorAt(10, 0)

	// Fewer than two samples: 0, not nil.
	one := []models.MIntradaySample{{Time: "09:59:00", Value: 80}}
	assert.Equal(t, 0.0, stdDevWindow(one, anchor, 30))

	two := []models.MIntradaySample{
		{Time: "09:58:00", Value: 60},
		{Time: "09:59:00", Value: 64},
	}
	// n-1 denominator: sqrt(((60-62)^2 + (64-62)^2) / 1)
	assert.InDelta(t, 2.82842712, stdDevWindow(two, anchor, 30), 1e-6)
}

// -----------------------------------------------------------------------------

func TestSlopeWindow(t *testing.T) {
	anchor := anchorAt(10, 0)

	rising := minuteSeries(9*60+30, 30, func(i int) float64 { return float64(2 * i) })
	assert.InDelta(t, 2.0, slopeWindow(rising, anchor, 60), 1e-9)

	// Under two points the slope is 0, never nil or NaN.
	assert.Equal(t, 0.0, slopeWindow(nil, anchor, 60))
	one := []models.MIntradaySample{{Time: "09:59:00", Value: 5}}
	assert.Equal(t, 0.0, slopeWindow(one, anchor, 60))
}

// -----------------------------------------------------------------------------

func TestZeroStreakWindow(t *testing.T) {
	anchor := anchorAt(10, 0)
	series := minuteSeries(9*60+1, 60, func(i int) float64 {
		if i >= 20 && i < 45 { // 25 zero minutes mid-window
			return 0
		}
		return 10
	})

	assert.Equal(t, 25.0, zeroStreakWindow(series, anchor, 60))
}
