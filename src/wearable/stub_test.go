package wearable

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

func TestStubDayIsDeterministicPerUserAndDate(t *testing.T) {
	s := NewStubSource()
	ctx := context.Background()

	a, err := s.FetchDay(ctx, "user-1", "2025-11-19", "2025-11-18", time.UTC)
	require.NoError(t, err)
	b, err := s.FetchDay(ctx, "user-1", "2025-11-19", "2025-11-18", time.UTC)
	require.NoError(t, err)

	assert.Equal(t, a.Steps, b.Steps)
	assert.Equal(t, a.Heart, b.Heart)
	assert.Equal(t, a.Sleep, b.Sleep)
	assert.Equal(t, a.Steps7d, b.Steps7d)

	// Another user draws a different day.
	c, err := s.FetchDay(ctx, "user-2", "2025-11-19", "2025-11-18", time.UTC)
	require.NoError(t, err)
	assert.NotEqual(t, a.Steps7d, c.Steps7d)
}

// -----------------------------------------------------------------------------

func TestStubDayShape(t *testing.T) {
	s := NewStubSource()
	day, err := s.FetchDay(context.Background(), "user-1", "2025-11-19", "2025-11-18", time.UTC)
	require.NoError(t, err)

	assert.Len(t, day.Steps, 1440)
	assert.Len(t, day.Heart, 1440)
	assert.Len(t, day.CaloriesIntraday, 1440)
	assert.Len(t, day.Azm, 1440)
	assert.Len(t, day.Steps7d, 7)
	assert.Len(t, day.RestingHr7d, 7)
	assert.Len(t, day.Sleep, 7)
	require.NotNil(t, day.Daily)
	require.NotNil(t, day.HrvDaily)
	require.NotNil(t, day.Nutrition)

	// Sample timestamps carry the requested date.
	assert.Equal(t, "2025-11-19T00:00:00", day.Steps[0].Time)

	// The most recent sleep night is the requested night date.
	assert.Equal(t, "2025-11-18", day.Sleep[6].DateOfSleep)
}

// -----------------------------------------------------------------------------

func TestStubExerciseEndsBeforeAnchor(t *testing.T) {
	s := NewStubSource()
	ex, err := s.FetchMostRecentExercise(context.Background(), "user-1", "2025-11-19T09:30:00.000", time.UTC)
	require.NoError(t, err)
	require.NotNil(t, ex)

	assert.Equal(t, "Run", ex.ActivityName)
	end := ex.StartTime.Add(time.Duration(ex.DurationMs) * time.Millisecond)
	anchor := time.Date(2025, 11, 19, 9, 30, 0, 0, time.UTC)
	assert.True(t, end.Before(anchor))
	assert.Equal(t, 18, ex.StartTime.Hour())
	assert.Equal(t, "2025-11-18", ex.StartTime.Format("2006-01-02"))
}

// -----------------------------------------------------------------------------

func TestStubCancelledContext(t *testing.T) {
	s := NewStubSource()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.FetchDay(ctx, "user-1", "2025-11-19", "2025-11-18", time.UTC)
	assert.Error(t, err)
}
