package models

// MAqiPoint is one hourly air-quality forecast value. Time keeps the
// provider's hour string ("2006-01-02T15:04" or RFC 3339); consumers parse
// and skip what they cannot read.
type MAqiPoint struct {
	Time  string  `json:"time"`
	Value float64 `json:"value"`
}

// MWeatherObservation is the raw result of one weather/AQI lookup.
// Fields are nil when the provider response omitted them.
type MWeatherObservation struct {
	TempF       *float64    `json:"tempF"`
	WindMph     *float64    `json:"windMph"`
	HumidityPct *float64    `json:"humidityPct"`
	PrecipMm    *float64    `json:"precipMm"`
	AqiHourly   []MAqiPoint `json:"aqiHourly"`
}
