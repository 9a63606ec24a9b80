package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

func fp(v float64) *float64 { return &v }

// -----------------------------------------------------------------------------

func TestFlattenLayerPrecedence(t *testing.T) {
	rec := &MFeatureRecord{}
	rec.Daily.HourOfDay = fp(9)
	rec.Client = map[string]any{
		"hourOfDay":        99.0, // collides with the daily group
		"selfReportedMood": 3.0,
	}
	rec.Geo = &MGeoTimeFeatures{HourOfDay: fp(14)}

	flat := rec.Flatten()

	// Client overrides the base groups; geo/time wins over client.
	assert.Equal(t, 14.0, flat["hourOfDay"])
	assert.Equal(t, 3.0, flat["selfReportedMood"])
}

// -----------------------------------------------------------------------------

func TestFlattenClientOverridesBase(t *testing.T) {
	rec := &MFeatureRecord{}
	rec.Steps.StepsLast5m = fp(40)
	rec.Client = map[string]any{"stepsLast5m": 7.0}

	flat := rec.Flatten()
	assert.Equal(t, 7.0, flat["stepsLast5m"])
}

// -----------------------------------------------------------------------------

func TestFlattenEmitsNullsForMissingFeatures(t *testing.T) {
	rec := &MFeatureRecord{}
	flat := rec.Flatten()

	// Missing base features are explicit nulls, not absent keys.
	v, ok := flat["hrNow"]
	require.True(t, ok)
	assert.Nil(t, v)

	// Geo keys are genuinely absent without coordinates.
	_, ok = flat["lat"]
	assert.False(t, ok)
}

// -----------------------------------------------------------------------------

func TestFlattenNotesAndVersion(t *testing.T) {
	rec := &MFeatureRecord{}
	flat := rec.Flatten()

	assert.Equal(t, []string{}, flat["notes"])
	assert.Equal(t, FeatureVersion, flat["version"])

	rec.Notes = []string{"no_sleep_data_7d"}
	flat = rec.Flatten()
	assert.Equal(t, []string{"no_sleep_data_7d"}, flat["notes"])
}

// -----------------------------------------------------------------------------

func TestFlattenClusterOneHotAndWeather(t *testing.T) {
	rec := &MFeatureRecord{}
	rec.Geo = &MGeoTimeFeatures{
		LocationClusterKey: func() *string { s := "home"; return &s }(),
		ClusterOneHot: map[string]float64{
			"locationClusterOneHot_home": 1,
			"locationClusterOneHot_gym":  0,
		},
		Weather: &MWeatherFeatures{WeatherTempF: fp(70)},
	}

	flat := rec.Flatten()
	assert.Equal(t, 1.0, flat["locationClusterOneHot_home"])
	assert.Equal(t, 0.0, flat["locationClusterOneHot_gym"])
	assert.Equal(t, 70.0, flat["weatherTempF"])
	assert.Equal(t, "home", flat["locationClusterKey"])
}

// -----------------------------------------------------------------------------

func TestMarshalJSONIsFlat(t *testing.T) {
	rec := &MFeatureRecord{}
	rec.Steps.StepsLast5m = fp(12)

	b, err := json.Marshal(rec)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, 12.0, m["stepsLast5m"])

	// No nested group objects survive flattening.
	_, ok := m["Steps"]
	assert.False(t, ok)
}
