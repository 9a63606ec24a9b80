package wearable

import (
	"context"
	"fmt"
	"sync"
	"time"

	"wellness-observer/src/helpers"
	"wellness-observer/src/interfaces"
	"wellness-observer/src/logger"
	"wellness-observer/src/models"
)

// concurrency cap for per-day endpoint fan-out; the provider rate-limits
// aggressively above this.
const maxConcurrentFetches = 4

// -----------------------------------------------------------------------------
// WearableAPISource pulls one user-day of data from the wearable vendor's
// REST API and normalizes it into RawDayData. Every endpoint degrades
// independently: a failed stream is logged and left empty, never fails the
// whole day.
// -----------------------------------------------------------------------------

type WearableAPISource struct {
	Config  *models.MConfig
	Network interfaces.INetworkManager
	Logger  *logger.Logger
	baseURL string
}

// -----------------------------------------------------------------------------

func NewWearableAPISource(cfg *models.MConfig, netMgr interfaces.INetworkManager) *WearableAPISource {
	base := cfg.Pipeline.SourceBaseURL
	if base == "" {
		base = "https://api.fitbit.com"
	}
	return &WearableAPISource{
		Config:  cfg,
		Network: netMgr,
		Logger:  logger.NewLogger("WearableAPISource-" + cfg.Pipeline.SourceName),
		baseURL: base,
	}
}

// -----------------------------------------------------------------------------

func (s *WearableAPISource) Name() string {
	return s.Config.Pipeline.SourceName
}

// -----------------------------------------------------------------------------

func (s *WearableAPISource) headers() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + s.Config.Pipeline.SourceAccessToken,
		"Accept":        "application/json",
	}
}

// -----------------------------------------------------------------------------

func (s *WearableAPISource) get(path string, params map[string]string) ([]byte, error) {
	return s.Network.GetWithHeaders(s.baseURL+path, params, s.headers())
}

// -----------------------------------------------------------------------------

func userPath(userID string) string {
	if userID == "" {
		return "-"
	}
	return userID
}

// -----------------------------------------------------------------------------

// rangeStart returns the first day of the baseline window ending on endISO.
func (s *WearableAPISource) rangeStart(endISO string) string {
	days := s.Config.Pipeline.BaselineDays
	if days <= 0 {
		days = 7
	}
	end, err := time.Parse("2006-01-02", endISO)
	if err != nil {
		return endISO
	}
	return end.AddDate(0, 0, -(days - 1)).Format("2006-01-02")
}

// -----------------------------------------------------------------------------

// FetchDay retrieves and normalizes every stream for one user and calendar
// day. dayDate anchors intraday series and food logs; nightDate anchors the
// sleep-derived summaries. Endpoints are fetched concurrently.
func (s *WearableAPISource) FetchDay(ctx context.Context, userID, dayDate, nightDate string, loc *time.Location) (*interfaces.RawDayData, error) {
	if loc == nil {
		loc = time.UTC
	}
	uid := userPath(userID)
	_ = s.rangeStart(dayDate)
	nightStart := s.rangeStart(nightDate)

	data := &interfaces.RawDayData{}
	var mu sync.Mutex

	type endpoint struct {
		name   string
		path   string
		assign func(raw []byte)
	}

	endpoints := []endpoint{
		{"steps_intraday", fmt.Sprintf("/1/user/%s/activities/steps/date/%s/1d/1min.json", uid, dayDate),
			func(raw []byte) { data.Steps = NormalizeStepsIntraday(raw, dayDate) }},
		{"heart_intraday", fmt.Sprintf("/1/user/%s/activities/heart/date/%s/1d/1min.json", uid, dayDate),
			func(raw []byte) { data.Heart = NormalizeHeartIntraday(raw, dayDate) }},
		{"calories_intraday", fmt.Sprintf("/1/user/%s/activities/calories/date/%s/1d/1min.json", uid, dayDate),
			func(raw []byte) { data.CaloriesIntraday = NormalizeCaloriesIntraday(raw, dayDate) }},
		{"azm_intraday", fmt.Sprintf("/1/user/%s/activities/active-zone-minutes/date/%s/1d/1min.json", uid, dayDate),
			func(raw []byte) { data.Azm = NormalizeAzmIntraday(raw, dayDate) }},
		{"steps_7d", fmt.Sprintf("/1/user/%s/activities/steps/date/%s/7d.json", uid, dayDate),
			func(raw []byte) { data.Steps7d = NormalizeSteps7d(raw) }},
		{"resting_hr_7d", fmt.Sprintf("/1/user/%s/activities/heart/date/%s/7d.json", uid, dayDate),
			func(raw []byte) { data.RestingHr7d = NormalizeRestingHr7d(raw) }},
		{"daily_summary", fmt.Sprintf("/1/user/%s/activities/date/%s.json", uid, dayDate),
			func(raw []byte) { data.Daily = NormalizeDailySummary(raw) }},
		{"sleep_range", fmt.Sprintf("/1.2/user/%s/sleep/date/%s/%s.json", uid, nightStart, nightDate),
			func(raw []byte) { data.Sleep = NormalizeSleepRange(raw, loc) }},
		{"hrv_daily", fmt.Sprintf("/1/user/%s/hrv/date/%s.json", uid, nightDate),
			func(raw []byte) { data.HrvDaily = NormalizeHrvDaily(raw, nightDate) }},
		{"hrv_range", fmt.Sprintf("/1/user/%s/hrv/date/%s/%s.json", uid, nightStart, nightDate),
			func(raw []byte) { data.HrvRange = NormalizeHrvRange(raw) }},
		{"hrv_intraday", fmt.Sprintf("/1/user/%s/hrv/date/%s/all.json", uid, nightDate),
			func(raw []byte) { data.HrvIntraday = NormalizeHrvIntraday(raw, nightDate) }},
		{"spo2_daily", fmt.Sprintf("/1/user/%s/spo2/date/%s.json", uid, nightDate),
			func(raw []byte) { data.Spo2Daily = NormalizeSpo2Daily(raw, nightDate) }},
		{"spo2_range", fmt.Sprintf("/1/user/%s/spo2/date/%s/%s.json", uid, nightStart, nightDate),
			func(raw []byte) { data.Spo2History = NormalizeSpo2Range(raw) }},
		{"breathing_daily", fmt.Sprintf("/1/user/%s/br/date/%s/all.json", uid, nightDate),
			func(raw []byte) { data.Breathing = NormalizeBreathingDaily(raw, nightDate) }},
		{"breathing_range", fmt.Sprintf("/1/user/%s/br/date/%s/%s.json", uid, nightStart, nightDate),
			func(raw []byte) { data.BreathingHistory = NormalizeBreathingRange(raw) }},
		{"temp_skin_daily", fmt.Sprintf("/1/user/%s/temp/skin/date/%s.json", uid, nightDate),
			func(raw []byte) { data.TempSkin = NormalizeTempSkinDaily(raw, nightDate) }},
		{"temp_skin_range", fmt.Sprintf("/1/user/%s/temp/skin/date/%s/%s.json", uid, nightStart, nightDate),
			func(raw []byte) { data.TempHistory = NormalizeTempSkinRange(raw) }},
		{"nutrition_daily", fmt.Sprintf("/1/user/%s/foods/log/date/%s.json", uid, dayDate),
			func(raw []byte) { data.Nutrition = NormalizeNutritionDaily(raw, dayDate) }},
		{"water_daily", fmt.Sprintf("/1/user/%s/foods/log/water/date/%s.json", uid, dayDate),
			func(raw []byte) { data.Water = NormalizeWaterDaily(raw, dayDate) }},
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, maxConcurrentFetches)
	failures := 0

	for _, ep := range endpoints {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		go func(ep endpoint) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			raw, err := s.get(ep.path, nil)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures++
				s.Logger.Warning("Stream %s failed for user %s day %s: %v", ep.name, uid, dayDate, err)
				return
			}
			ep.assign(raw)
		}(ep)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if failures == len(endpoints) {
		return nil, &helpers.DataSourceError{ObserverError: helpers.ObserverError{
			Message: fmt.Sprintf("all %d streams failed for user %s day %s", failures, uid, dayDate),
		}}
	}
	if failures > 0 {
		s.Logger.Warning("Fetched day %s for user %s with %d/%d degraded streams", dayDate, uid, failures, len(endpoints))
	}
	return data, nil
}

// -----------------------------------------------------------------------------

// FetchMostRecentExercise retrieves the latest activity log started before
// the given date. Returns nil with no error when the user has no logs.
func (s *WearableAPISource) FetchMostRecentExercise(ctx context.Context, userID string, beforeISO string, loc *time.Location) (*models.MExercise, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	uid := userPath(userID)
	raw, err := s.get(fmt.Sprintf("/1/user/%s/activities/list.json", uid), map[string]string{
		"beforeDate": beforeISO,
		"sort":       "desc",
		"offset":     "0",
		"limit":      "1",
	})
	if err != nil {
		return nil, &helpers.DataSourceError{ObserverError: helpers.ObserverError{
			Message: "exercise list fetch failed", Cause: err,
		}}
	}
	return NormalizeExercise(raw, loc), nil
}

// Interface guard
var _ interfaces.IDataSource = (*WearableAPISource)(nil)
