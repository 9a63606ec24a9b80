package features

import (
	"math"
	"strings"
	"sync"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/ringsaturn/tzf"

	"wellness-observer/src/models"
)

// -----------------------------------------------------------------------------
// Geo/time/weather features. Everything here is optional: without a finite
// lat/lon the whole group is absent, and a failed weather lookup leaves the
// weather keys out rather than nulling them.
// -----------------------------------------------------------------------------

var (
	tzFinderOnce sync.Once
	tzFinder     tzf.F
)

// resolveTimezone maps lat/lon to an IANA zone, falling back to UTC when
// the lookup or zone load fails.
func resolveTimezone(lat, lon float64) *time.Location {
	tzFinderOnce.Do(func() {
		f, err := tzf.NewDefaultFinder()
		if err == nil {
			tzFinder = f
		}
	})
	if tzFinder == nil {
		return time.UTC
	}
	name := tzFinder.GetTimezoneName(lon, lat)
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// -----------------------------------------------------------------------------

// ResolveLocation maps lat/lon to the local *time.Location, falling back to
// UTC. The orchestrator uses it to group request anchors by local calendar
// date before the geo group itself runs.
func ResolveLocation(lat, lon float64) *time.Location {
	return resolveTimezone(lat, lon)
}

// -----------------------------------------------------------------------------

// GeoTimeFeatures derives local calendar coordinates, daylight state,
// cluster assignment and the commute heuristic, and folds in an
// already-fetched weather observation. wallClock is the real current time,
// used only for AQI hour selection; the anchor may be historical.
func GeoTimeFeatures(lat, lon float64, anchor time.Time, clusters []models.MLocationCluster, weather *models.MWeatherObservation, wallClock time.Time, p *Params) *models.MGeoTimeFeatures {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return nil
	}

	local := anchor.In(resolveTimezone(lat, lon))

	out := &models.MGeoTimeFeatures{}
	out.Lat = ptr(lat)
	out.Lon = ptr(lon)

	hour := float64(local.Hour())
	dow := float64(local.Weekday()) // 0=Sunday
	out.HourOfDay = ptr(hour)
	out.DayOfWeek = ptr(dow)
	out.IsWeekend = boolPtr(dow == 0 || dow == 6)

	rise, set := sunrise.SunriseSunset(lat, lon, local.Year(), local.Month(), local.Day())
	daylight := local.After(rise) && local.Before(set)
	if daylight {
		out.DaylightNowFlag = ptr(1)
		remaining := set.Sub(local).Minutes()
		if remaining < 0 {
			remaining = 0
		}
		out.DaylightMinsRemaining = ptr(math.Floor(remaining))
	} else {
		out.DaylightNowFlag = ptr(0)
		out.DaylightMinsRemaining = ptr(0)
	}

	clusterKey := AssignLocationCluster(lat, lon, clusters, p)
	if clusterKey != "" {
		out.LocationClusterKey = strPtr(clusterKey)
	}
	out.ClusterOneHot = ClusterOneHot(clusterKey, clusters)

	out.CommuteFlag = ptr(commuteFlag(clusterKey, int(hour), int(dow), p))

	if weather != nil {
		out.Weather = WeatherFeatures(weather, wallClock, p)
	}

	return out
}

// -----------------------------------------------------------------------------

// commuteFlag is 1 when the point sits outside any home/campus cluster
// during a weekday commute band: AM 6-9 or PM 16-19 local, inclusive start,
// exclusive end.
func commuteFlag(clusterKey string, hour, dayOfWeek int, p *Params) float64 {
	keyLower := strings.ToLower(clusterKey)
	if strings.Contains(keyLower, "home") || strings.Contains(keyLower, "campus") {
		return 0
	}

	inAM := hour >= p.CommuteAMStartHour && hour < p.CommuteAMEndHour
	inPM := hour >= p.CommutePMStartHour && hour < p.CommutePMEndHour
	isWeekday := dayOfWeek > 0 && dayOfWeek < 6

	if (inAM || inPM) && isWeekday {
		return 1
	}
	return 0
}

// -----------------------------------------------------------------------------

// WeatherFeatures computes feels-like and selects the AQI hour closest to
// the wall clock from an observation the weather collaborator fetched.
func WeatherFeatures(obs *models.MWeatherObservation, wallClock time.Time, p *Params) *models.MWeatherFeatures {
	out := &models.MWeatherFeatures{}

	out.WeatherTempF = obs.TempF
	out.WeatherWindMph = obs.WindMph
	out.WeatherHumidityPct = obs.HumidityPct
	out.WeatherPrecipMm = obs.PrecipMm

	if finite(obs.TempF) {
		out.WeatherFeelsLikeF = ptr(feelsLikeF(*obs.TempF, obs.HumidityPct, obs.WindMph, p))
	}

	out.OutdoorAQI = nearestAqi(obs.AqiHourly, wallClock)

	return out
}

// -----------------------------------------------------------------------------

// feelsLikeF applies the NWS heat-index polynomial in hot humid conditions
// and the wind-chill formula in cold windy ones; otherwise the air
// temperature stands.
func feelsLikeF(tempF float64, humidityPct, windMph *float64, p *Params) float64 {
	feels := tempF

	if finite(humidityPct) && tempF >= p.HeatIndexMinTempF && *humidityPct >= p.HeatIndexMinHumidity {
		t, rh := tempF, *humidityPct
		feels = -42.379 +
			2.04901523*t +
			10.14333127*rh -
			0.22475541*t*rh -
			0.00683783*t*t -
			0.05481717*rh*rh +
			0.00122874*t*t*rh +
			0.00085282*t*rh*rh -
			0.00000199*t*t*rh*rh
	}

	if finite(windMph) && tempF <= p.WindChillMaxTempF && *windMph >= p.WindChillMinWindMph {
		w := math.Pow(*windMph, 0.16)
		feels = 35.74 + 0.6215*tempF - 35.75*w + 0.4275*tempF*w
	}

	return feels
}

// -----------------------------------------------------------------------------

// nearestAqi picks the hourly AQI value whose timestamp is closest to the
// wall clock, skipping unparseable hours.
func nearestAqi(hourly []models.MAqiPoint, wallClock time.Time) *float64 {
	var best *float64
	bestDiff := time.Duration(math.MaxInt64)

	for _, pt := range hourly {
		t, ok := parseAqiTime(pt.Time)
		if !ok {
			continue
		}
		diff := wallClock.Sub(t)
		if diff < 0 {
			diff = -diff
		}
		if diff < bestDiff {
			bestDiff = diff
			v := pt.Value
			best = &v
		}
	}
	return best
}

func parseAqiTime(raw string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
