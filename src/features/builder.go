package features

import (
	"time"

	"wellness-observer/src/helpers"
	"wellness-observer/src/models"
)

// -----------------------------------------------------------------------------
// Feature vector assembler. Pure over its inputs: every raw series is
// already fetched, and any of them may be absent without failing the build.
// -----------------------------------------------------------------------------

// BuildInput carries one anchor plus every raw input the extractors read.
// Nil slices and pointers mean "signal absent"; the affected group degrades
// to nulls on its own without touching any other group.
type BuildInput struct {
	Anchor time.Time

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
	Exercise  *models.MExercise

	// Client features are forwarded into the flat record; geo/time values
	// win over them on key collision.
	Client map[string]any

	// Geo inputs. Lat/Lon must both be finite for the geo group to emit;
	// Weather is nil when the provider lookup failed or was disabled.
	HasLocation bool
	Lat, Lon    float64
	Clusters    []models.MLocationCluster
	Weather     *models.MWeatherObservation

	// WallClock drives AQI hour selection; zero means the anchor stands in.
	WallClock time.Time
}

// -----------------------------------------------------------------------------

// BuildAllFeatures runs every extractor against the shared anchor and
// assembles one record. Cross and composite layers run after the base
// groups so they read finished values, never raw series. Missing raw
// series degrade the affected group, but a zero anchor is a caller bug
// and fails the build outright.
func BuildAllFeatures(in BuildInput, p *Params) (*models.MFeatureRecord, error) {
	if in.Anchor.IsZero() {
		return nil, &helpers.ValidationError{ObserverError: helpers.ObserverError{Message: "feature build requires a non-zero anchor time"}}
	}
	if p == nil {
		defaults := DefaultParams()
		p = &defaults
	}
	anchor := in.Anchor
	wallClock := in.WallClock
	if wallClock.IsZero() {
		wallClock = anchor
	}

	rec := &models.MFeatureRecord{}

	rec.Steps = StepsFeatures(in.Steps, anchor, p)
	rec.Azm = AzmFeatures(in.Azm, anchor, p)
	rec.Heart = HeartFeatures(in.Heart, in.RestingHr7d, anchor, p)
	rec.Sleep = SleepFeatures(in.Sleep, anchor, p)
	rec.Hrv = HrvFeatures(in.HrvDaily, in.HrvRange, in.HrvIntraday, p)
	rec.Spo2 = Spo2Features(in.Spo2Daily, in.Spo2History, p)
	rec.Breathing = BreathingFeatures(in.Breathing, in.BreathingHistory, p)
	rec.TempSkin = TempSkinFeatures(in.TempSkin, in.TempHistory, p)
	rec.Nutrition = NutritionFeatures(in.Nutrition, in.Water, anchor, p)
	rec.Exercise = ExerciseFeatures(in.Exercise, anchor, p)
	rec.Daily = DailyFeatures(in.Daily, in.CaloriesIntraday, anchor, p)
	rec.Personal = PersonalFeatures(in.Steps7d, in.Sleep, rec.Heart.RestingHr7dTrend, anchor, p)

	rec.Cross = CrossFeatures(rec, p)
	rec.Composite = CompositeFeatures(rec, p)

	rec.Client = in.Client

	if in.HasLocation {
		rec.Geo = GeoTimeFeatures(in.Lat, in.Lon, anchor, in.Clusters, in.Weather, wallClock, p)
	}

	rec.Notes = append(rec.Notes, rec.Sleep.Notes...)

	return rec, nil
}
