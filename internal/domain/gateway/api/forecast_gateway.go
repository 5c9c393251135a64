package api

import (
	"weather-relay/internal/domain/entity"
	"weather-relay/internal/domain/model"
)

// ForecastGateway defines the calls made to the target service
type ForecastGateway interface {
	// GetForecasts fetches the forecasts currently served by the target service.
	// Failures are returned as *FetchError.
	GetForecasts() ([]entity.WeatherForecast, error)

	// Health calls the target service health endpoint
	Health() model.ComponentHealthStatus

	// BaseAddress returns the configured base address of the target service
	BaseAddress() string
}
