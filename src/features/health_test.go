package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellness-observer/src/models"
)

// -----------------------------------------------------------------------------

func TestHrvFeatures(t *testing.T) {
	p := DefaultParams()
	daily := &models.MHrvDaily{Date: fixtureDate, DailyRmssd: ptr(42), DeepRmssd: ptr(55)}
	sevenDay := []models.MHrvDaily{
		{DailyRmssd: ptr(40)},
		{DailyRmssd: ptr(50)},
		{DailyRmssd: nil},
		{DailyRmssd: ptr(45)},
	}

	out := HrvFeatures(daily, sevenDay, nil, &p)

	require.NotNil(t, out.HrvRmssdDaily)
	assert.Equal(t, 42.0, *out.HrvRmssdDaily)
	require.NotNil(t, out.HrvRmssd7dAvg)
	assert.Equal(t, 45.0, *out.HrvRmssd7dAvg)
	require.NotNil(t, out.HrvRmssdDeviationFrom7d)
	assert.Equal(t, -3.0, *out.HrvRmssdDeviationFrom7d)
}

// -----------------------------------------------------------------------------

func TestHrvIntradayAggregates(t *testing.T) {
	p := DefaultParams()
	intraday := []models.MHrvIntradaySample{
		{Rmssd: ptr(30), Lf: ptr(500), Hf: ptr(250), Coverage: ptr(0.9)},
		{Rmssd: ptr(50), Lf: ptr(300), Hf: ptr(0), Coverage: ptr(0.8)},
		{Rmssd: nil, Lf: nil, Hf: ptr(100)},
	}

	out := HrvFeatures(nil, nil, intraday, &p)

	require.NotNil(t, out.HrvIntradayRmssdMean)
	assert.Equal(t, 40.0, *out.HrvIntradayRmssdMean)
	require.NotNil(t, out.HrvIntradayRmssdStdDev)
	assert.Equal(t, 10.0, *out.HrvIntradayRmssdStdDev)

	// The LF/HF ratio skips the HF=0 sample instead of dividing by zero.
	require.NotNil(t, out.HrvIntradayLfHfRatioMean)
	assert.Equal(t, 2.0, *out.HrvIntradayLfHfRatioMean)

	require.NotNil(t, out.HrvIntradayCoverageMean)
	assert.InDelta(t, 0.85, *out.HrvIntradayCoverageMean, 1e-9)
}

func TestHrvIntradayStdNeedsTwoSamples(t *testing.T) {
	p := DefaultParams()
	out := HrvFeatures(nil, nil, []models.MHrvIntradaySample{{Rmssd: ptr(30)}}, &p)

	require.NotNil(t, out.HrvIntradayRmssdMean)
	assert.Nil(t, out.HrvIntradayRmssdStdDev)
}

// -----------------------------------------------------------------------------

func TestSpo2Features(t *testing.T) {
	p := DefaultParams()
	daily := &models.MSpo2Daily{Date: fixtureDate, Avg: ptr(96.5), Min: ptr(92), Max: ptr(99)}
	history := []models.MSpo2Daily{{Avg: ptr(96)}, {Avg: ptr(97)}}

	out := Spo2Features(daily, history, &p)

	require.NotNil(t, out.Spo2Range)
	assert.Equal(t, 7.0, *out.Spo2Range)
	require.NotNil(t, out.Spo2Avg7dAvg)
	assert.Equal(t, 96.5, *out.Spo2Avg7dAvg)
	require.NotNil(t, out.Spo2AvgDeviationFrom7d)
	assert.Equal(t, 0.0, *out.Spo2AvgDeviationFrom7d)
}

func TestSpo2FeaturesMissingNight(t *testing.T) {
	p := DefaultParams()
	out := Spo2Features(nil, []models.MSpo2Daily{{Avg: ptr(96)}}, &p)

	assert.Nil(t, out.Spo2Avg)
	assert.Nil(t, out.Spo2Range)
	assert.Nil(t, out.Spo2AvgDeviationFrom7d)
	require.NotNil(t, out.Spo2Avg7dAvg)
}

// -----------------------------------------------------------------------------

func TestBreathingFeatures(t *testing.T) {
	p := DefaultParams()
	daily := &models.MBreathingDaily{Full: ptr(15.2), Deep: ptr(14.8), Rem: ptr(16.1), Light: ptr(15.4)}
	history := []models.MBreathingDaily{{Full: ptr(15)}, {Full: ptr(15.4)}, {Full: nil}}

	out := BreathingFeatures(daily, history, &p)

	require.NotNil(t, out.BrFullNight)
	assert.Equal(t, 15.2, *out.BrFullNight)
	require.NotNil(t, out.BrDeepSleep)
	assert.Equal(t, 14.8, *out.BrDeepSleep)
	require.NotNil(t, out.BrFullNight7dAvg)
	assert.InDelta(t, 15.2, *out.BrFullNight7dAvg, 1e-9)
	require.NotNil(t, out.BrFullNightDeviationFrom7d)
	assert.InDelta(t, 0.0, *out.BrFullNightDeviationFrom7d, 1e-9)
}

// -----------------------------------------------------------------------------

func TestTempSkinFeatures(t *testing.T) {
	p := DefaultParams()
	daily := &models.MTempSkinDaily{NightlyRelative: ptr(0.8)}
	history := []models.MTempSkinDaily{{NightlyRelative: ptr(0.1)}, {NightlyRelative: ptr(0.3)}}

	out := TempSkinFeatures(daily, history, &p)

	require.NotNil(t, out.TempSkinNightlyRelative)
	assert.Equal(t, 0.8, *out.TempSkinNightlyRelative)
	require.NotNil(t, out.TempSkinNightlyRelative7dAvg)
	assert.InDelta(t, 0.2, *out.TempSkinNightlyRelative7dAvg, 1e-9)
	require.NotNil(t, out.TempSkinNightlyRelativeDeviationFrom7d)
	assert.InDelta(t, 0.6, *out.TempSkinNightlyRelativeDeviationFrom7d, 1e-9)
}
