package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"wellness-observer/src/interfaces"
	"wellness-observer/src/logger"
	"wellness-observer/src/models"
)

// -----------------------------------------------------------------------------
// Open-Meteo weather + air-quality provider. The two lookups run
// concurrently; either one failing degrades to a partial observation, and
// a failed forecast degrades to no observation at all. A provider outage
// must never fail a feature build.
// -----------------------------------------------------------------------------

type OpenMeteoProvider struct {
	forecastURL   string
	airQualityURL string
	network       interfaces.INetworkManager
	log           *logger.Logger
}

// -----------------------------------------------------------------------------

func NewOpenMeteoProvider(cfg *models.MConfig, nm interfaces.INetworkManager, log *logger.Logger) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		forecastURL:   cfg.Weather.ForecastURL,
		airQualityURL: cfg.Weather.AirQualityURL,
		network:       nm,
		log:           log,
	}
}

// -----------------------------------------------------------------------------

type forecastResponse struct {
	Current struct {
		Temperature   *float64 `json:"temperature_2m"`
		Humidity      *float64 `json:"relative_humidity_2m"`
		Precipitation *float64 `json:"precipitation"`
		WindSpeed     *float64 `json:"wind_speed_10m"`
	} `json:"current"`
}

type airQualityResponse struct {
	Hourly struct {
		Time  []string   `json:"time"`
		UsAqi []*float64 `json:"us_aqi"`
	} `json:"hourly"`
}

// -----------------------------------------------------------------------------

// Fetch retrieves the current observation for a point. Returns nil without
// error when the forecast lookup failed; the caller treats that as "no
// weather features this build".
func (p *OpenMeteoProvider) Fetch(ctx context.Context, lat, lon float64) (*models.MWeatherObservation, error) {
	type result struct {
		body []byte
		err  error
	}

	latStr := strconv.FormatFloat(lat, 'f', -1, 64)
	lonStr := strconv.FormatFloat(lon, 'f', -1, 64)

	forecastCh := make(chan result, 1)
	airCh := make(chan result, 1)

	go func() {
		body, err := p.network.Get(p.forecastURL, map[string]string{
			"latitude":           latStr,
			"longitude":          lonStr,
			"current":            "temperature_2m,relative_humidity_2m,precipitation,wind_speed_10m",
			"temperature_unit":   "fahrenheit",
			"wind_speed_unit":    "mph",
			"precipitation_unit": "mm",
			"timezone":           "auto",
		})
		forecastCh <- result{body, err}
	}()

	go func() {
		body, err := p.network.Get(p.airQualityURL, map[string]string{
			"latitude":  latStr,
			"longitude": lonStr,
			"hourly":    "us_aqi",
			"timezone":  "auto",
		})
		airCh <- result{body, err}
	}()

	forecast := <-forecastCh
	air := <-airCh

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if forecast.err != nil {
		p.log.Warning("Weather forecast fetch failed: %v", forecast.err)
		return nil, nil
	}

	var fr forecastResponse
	if err := json.Unmarshal(forecast.body, &fr); err != nil {
		p.log.Warning("Weather forecast parse failed: %v", err)
		return nil, nil
	}

	obs := &models.MWeatherObservation{
		TempF:       fr.Current.Temperature,
		WindMph:     fr.Current.WindSpeed,
		HumidityPct: fr.Current.Humidity,
		PrecipMm:    fr.Current.Precipitation,
	}

	if air.err != nil {
		p.log.Warning("Air quality fetch failed: %v", air.err)
		return obs, nil
	}

	var ar airQualityResponse
	if err := json.Unmarshal(air.body, &ar); err != nil {
		p.log.Warning("Air quality parse failed: %v", err)
		return obs, nil
	}

	for i, t := range ar.Hourly.Time {
		if i >= len(ar.Hourly.UsAqi) || ar.Hourly.UsAqi[i] == nil {
			continue
		}
		obs.AqiHourly = append(obs.AqiHourly, models.MAqiPoint{
			Time:  t,
			Value: *ar.Hourly.UsAqi[i],
		})
	}

	return obs, nil
}

// -----------------------------------------------------------------------------

var _ interfaces.IWeatherProvider = (*OpenMeteoProvider)(nil)

// String identifies the provider in logs.
func (p *OpenMeteoProvider) String() string {
	return fmt.Sprintf("OpenMeteoProvider(%s)", p.forecastURL)
}
