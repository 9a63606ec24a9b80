package jobs

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"

	"wellness-observer/src/features"
	"wellness-observer/src/interfaces"
	"wellness-observer/src/logger"
	"wellness-observer/src/models"
)

// -----------------------------------------------------------------------------
// Orchestrator drains the pending request queue. Requests are grouped per
// user and local calendar date so the upstream API is hit once per (user,
// day); each request in a group is then built against its own anchor using
// the shared raw data. A failed day fetch leaves its requests pending for
// the next poll.
// -----------------------------------------------------------------------------

type Orchestrator struct {
	Config    *models.MConfig
	Logger    *logger.Logger
	Database  interfaces.IDatabase
	Source    interfaces.IDataSource
	Weather   interfaces.IWeatherProvider // nil when disabled
	Exchanger interfaces.IDataExchanger   // nil in one-shot runs
	Params    *features.Params
}

// -----------------------------------------------------------------------------

func NewOrchestrator(
	cfg *models.MConfig,
	db interfaces.IDatabase,
	source interfaces.IDataSource,
	weather interfaces.IWeatherProvider,
	exchanger interfaces.IDataExchanger,
) *Orchestrator {
	params := features.DefaultParams()
	return &Orchestrator{
		Config:    cfg,
		Logger:    logger.NewLogger("Orchestrator"),
		Database:  db,
		Source:    source,
		Weather:   weather,
		Exchanger: exchanger,
		Params:    &params,
	}
}

// -----------------------------------------------------------------------------

// pendingItem is one queued request with its decoded client payload and
// localized anchor.
type pendingItem struct {
	req         models.MFeatureRequest
	anchor      time.Time
	client      map[string]any
	hasLocation bool
	lat, lon    float64
}

// -----------------------------------------------------------------------------

// RunOnce drains every user's pending queue a single time. Per-user failures
// are logged and do not stop the sweep.
func (o *Orchestrator) RunOnce(ctx context.Context) error {
	users, err := o.Database.PendingUserIDs()
	if err != nil {
		return err
	}

	for _, userID := range users {
		if err := ctx.Err(); err != nil {
			return err
		}
		fulfilled, err := o.fulfillUser(ctx, userID)
		if err != nil {
			o.Logger.Error("Fulfillment sweep failed for user %s: %v", userID, err)
			continue
		}
		if fulfilled > 0 {
			o.Logger.Info("Fulfilled %d request(s) for user %s", fulfilled, userID)
		}
	}
	return nil
}

// -----------------------------------------------------------------------------

// fulfillUser builds and persists one feature record per pending request.
func (o *Orchestrator) fulfillUser(ctx context.Context, userID string) (int, error) {
	pending, err := o.Database.ListPendingRequests(userID)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	groups := o.groupByLocalDate(pending)
	remaining := len(pending)
	total := 0

	for dayDate, items := range groups {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		nightDate := nightDateFor(items[0].anchor)
		day, err := o.Source.FetchDay(ctx, userID, dayDate, nightDate, items[0].anchor.Location())
		if err != nil {
			o.Logger.Error("Day fetch failed for user %s date %s, requests stay pending: %v", userID, dayDate, err)
			continue
		}

		for _, item := range items {
			if err := ctx.Err(); err != nil {
				return total, err
			}
			if err := o.fulfillOne(ctx, userID, day, item, remaining-1); err != nil {
				o.Logger.Error("Request %s failed: %v", item.req.ID, err)
				continue
			}
			remaining--
			total++
		}
	}
	return total, nil
}

// -----------------------------------------------------------------------------

// groupByLocalDate localizes each request's anchor via its own coordinates
// and buckets requests by local calendar date.
func (o *Orchestrator) groupByLocalDate(pending []models.MFeatureRequest) map[string][]pendingItem {
	groups := make(map[string][]pendingItem)

	for _, req := range pending {
		item := pendingItem{req: req, client: parseClientFeatures(req.ClientFeatures)}

		if lat, lon, ok := extractLatLon(item.client); ok {
			item.hasLocation = true
			item.lat, item.lon = lat, lon
		}
		// lat/lon/anchorMs are transport fields, not client features
		delete(item.client, "lat")
		delete(item.client, "lon")
		delete(item.client, "anchorMs")
		if len(item.client) == 0 {
			item.client = nil
		}

		loc := time.UTC
		if item.hasLocation {
			loc = features.ResolveLocation(item.lat, item.lon)
		}
		item.anchor = time.UnixMilli(req.CreatedAt).In(loc)

		dayDate := item.anchor.Format("2006-01-02")
		groups[dayDate] = append(groups[dayDate], item)
	}
	return groups
}

// -----------------------------------------------------------------------------

// fulfillOne assembles, persists and broadcasts the record for one request.
func (o *Orchestrator) fulfillOne(ctx context.Context, userID string, day *interfaces.RawDayData, item pendingItem, pendingAfter int) error {
	exercise, err := o.Source.FetchMostRecentExercise(ctx, userID, item.anchor.Format("2006-01-02T15:04:05.000"), item.anchor.Location())
	if err != nil {
		o.Logger.Warning("Exercise lookup failed for request %s: %v", item.req.ID, err)
		exercise = nil
	}

	var weather *models.MWeatherObservation
	if o.Weather != nil && item.hasLocation {
		weather, err = o.Weather.Fetch(ctx, item.lat, item.lon)
		if err != nil {
			o.Logger.Warning("Weather lookup failed for request %s: %v", item.req.ID, err)
			weather = nil
		}
	}

	rec, err := features.BuildAllFeatures(features.BuildInput{
		Anchor: item.anchor,

		Steps:            day.Steps,
		Heart:            day.Heart,
		CaloriesIntraday: day.CaloriesIntraday,
		Azm:              day.Azm,

		Steps7d:     day.Steps7d,
		RestingHr7d: day.RestingHr7d,
		Sleep:       day.Sleep,
		Daily:       day.Daily,

		HrvDaily:    day.HrvDaily,
		HrvRange:    day.HrvRange,
		HrvIntraday: day.HrvIntraday,

		Spo2Daily:        day.Spo2Daily,
		Spo2History:      day.Spo2History,
		Breathing:        day.Breathing,
		BreathingHistory: day.BreathingHistory,
		TempSkin:         day.TempSkin,
		TempHistory:      day.TempHistory,

		Nutrition: day.Nutrition,
		Water:     day.Water,
		Exercise:  exercise,

		Client: item.client,

		HasLocation: item.hasLocation,
		Lat:         item.lat,
		Lon:         item.lon,
		Clusters:    o.Config.LocationClusters,
		Weather:     weather,

		WallClock: time.Now(),
	}, o.Params)
	if err != nil {
		return err
	}

	for _, note := range rec.Notes {
		o.Logger.Debug("Request %s note: %s", item.req.ID, note)
	}

	flat := rec.Flatten()
	data, err := json.Marshal(flat)
	if err != nil {
		return err
	}

	featureID := uuid.NewString()
	if err := o.Database.SaveFeature(models.MFeatureRow{
		ID:        featureID,
		UserID:    userID,
		CreatedAt: item.req.CreatedAt,
		Source:    "phone-request",
		Data:      string(data),
	}); err != nil {
		return err
	}

	if item.req.Label != nil && *item.req.Label != "" {
		label := models.MLabelRow{
			ID:        uuid.NewString(),
			UserID:    userID,
			Label:     *item.req.Label,
			Category:  item.req.LabelCategory,
			CreatedAt: item.req.CreatedAt,
		}
		if err := o.Database.SaveLabel(label, featureID); err != nil {
			o.Logger.Error("Label save failed for feature %s: %v", featureID, err)
		}
	}

	if err := o.Database.FulfillRequest(item.req.ID, featureID); err != nil {
		return err
	}

	if o.Exchanger != nil {
		o.Exchanger.Broadcast(&models.MLatestData{
			FeatureID:    featureID,
			UserID:       userID,
			Source:       "phone-request",
			Features:     flat,
			PendingCount: pendingAfter,
			Timestamp:    item.req.CreatedAt,
			GeneratedAt:  time.Now(),
		})
	}
	return nil
}

// -----------------------------------------------------------------------------

// nightDateFor picks the calendar date whose night the anchor slept through.
// Early-morning anchors still belong to the previous night.
func nightDateFor(anchor time.Time) string {
	if anchor.Hour() < 12 {
		return anchor.AddDate(0, 0, -1).Format("2006-01-02")
	}
	return anchor.Format("2006-01-02")
}

// -----------------------------------------------------------------------------

func parseClientFeatures(raw string) map[string]any {
	if raw == "" {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}

// -----------------------------------------------------------------------------

// extractLatLon reads numeric lat/lon out of the client payload.
func extractLatLon(client map[string]any) (float64, float64, bool) {
	lat, okLat := toFinite(client["lat"])
	lon, okLon := toFinite(client["lon"])
	if !okLat || !okLon {
		return 0, 0, false
	}
	return lat, lon, true
}

func toFinite(v any) (float64, bool) {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
