package interfaces

import (
	"context"
	"time"

	"wellness-observer/src/models"
)

// -----------------------------------------------------------------------------
// RawDayData bundles every normalized input the feature pipeline needs for
// one calendar day. The orchestrator fetches it once per (day, night) pair
// and reuses it for every request anchored inside that day.
// -----------------------------------------------------------------------------

type RawDayData struct {
	Steps            []models.MIntradaySample
	Heart            []models.MIntradaySample
	CaloriesIntraday []models.MIntradaySample
	Azm              []models.MAzmSample

	Steps7d     []models.MDailyValue
	RestingHr7d []models.MDailyValue
	Sleep       []models.MSleepLog
	Daily       *models.MDailySummary

	HrvDaily    *models.MHrvDaily
	HrvRange    []models.MHrvDaily
	HrvIntraday []models.MHrvIntradaySample

	Spo2Daily        *models.MSpo2Daily
	Spo2History      []models.MSpo2Daily
	Breathing        *models.MBreathingDaily
	BreathingHistory []models.MBreathingDaily
	TempSkin         *models.MTempSkinDaily
	TempHistory      []models.MTempSkinDaily

	Nutrition *models.MNutritionDaily
	Water     *models.MWaterDaily
}

// -----------------------------------------------------------------------------
// IDataSource is the upstream wearable API boundary. Implementations shape
// provider responses into the normalized models types; the feature pipeline
// never sees provider JSON.
// -----------------------------------------------------------------------------

type IDataSource interface {

	// Name returns the unique identifier of the source
	Name() string

	// -----------------------------------------------------------------------------

	// FetchDay retrieves all raw inputs for one user and calendar day.
	// dayDate anchors intraday series; nightDate anchors sleep-derived
	// summaries (the previous calendar day for early-morning anchors).
	// Dates are "YYYY-MM-DD". Naive provider timestamps are interpreted
	// in loc, the requests' resolved timezone.
	FetchDay(ctx context.Context, userID, dayDate, nightDate string, loc *time.Location) (*RawDayData, error)

	// -----------------------------------------------------------------------------

	// FetchMostRecentExercise retrieves the latest activity log that started
	// before the given anchor. Naive start times are interpreted in loc.
	FetchMostRecentExercise(ctx context.Context, userID string, beforeISO string, loc *time.Location) (*models.MExercise, error)
}
