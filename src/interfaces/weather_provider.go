package interfaces

import (
	"context"

	"wellness-observer/src/models"
)

// -----------------------------------------------------------------------------
// IWeatherProvider supplies current weather plus an hourly AQI forecast for
// a coordinate. A failing provider degrades the feature build (weather keys
// omitted); it must never fail it.
// -----------------------------------------------------------------------------

type IWeatherProvider interface {

	// -----------------------------------------------------------------------------

	// Fetch returns current conditions and the hourly AQI series for the
	// location. Both underlying requests run concurrently.
	Fetch(ctx context.Context, lat, lon float64) (*models.MWeatherObservation, error)
}
