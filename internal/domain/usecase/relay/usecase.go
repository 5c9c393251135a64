package relay

import "weather-relay/internal/domain/entity"

type UseCase interface {
	// FetchForecasts returns the forecasts of the target service, or an empty slice on any failure.
	// It never reports an error to its caller.
	FetchForecasts() []entity.WeatherForecast
}
