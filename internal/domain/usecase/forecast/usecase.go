package forecast

import "weather-relay/internal/domain/entity"

// ForecastDays is the number of forecasts produced per call
const ForecastDays = 5

type UseCase interface {
	// GenerateForecasts returns ForecastDays random forecasts, one per day starting tomorrow
	GenerateForecasts() []entity.WeatherForecast
}
