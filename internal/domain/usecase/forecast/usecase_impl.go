package forecast

import (
	"math/rand/v2"
	"time"

	"weather-relay/internal/domain/entity"
	"weather-relay/pkg/log"
	"weather-relay/pkg/msg"
)

const (
	minTemperatureC = -20
	maxTemperatureC = 55 // exclusive
)

// Option customizes the forecast use case
type Option func(*forecastUseCase)

// WithClock replaces time.Now as the source of the current date
func WithClock(now func() time.Time) Option {
	return func(uc *forecastUseCase) {
		uc.now = now
	}
}

// WithRand replaces the default random source
func WithRand(r *rand.Rand) Option {
	return func(uc *forecastUseCase) {
		uc.intN = r.IntN
	}
}

type forecastUseCase struct {
	now  func() time.Time
	intN func(n int) int
}

func NewForecastUseCase(opts ...Option) UseCase {
	uc := &forecastUseCase{
		now:  time.Now,
		intN: rand.IntN,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// GenerateForecasts draws a fresh set of forecasts on every call
func (uc *forecastUseCase) GenerateForecasts() []entity.WeatherForecast {
	today := entity.NewForecastDate(uc.now())

	forecasts := make([]entity.WeatherForecast, 0, ForecastDays)
	for day := 1; day <= ForecastDays; day++ {
		forecasts = append(forecasts, entity.WeatherForecast{
			Date:         today.AddDays(day),
			TemperatureC: minTemperatureC + uc.intN(maxTemperatureC-minTemperatureC),
			Summary:      entity.Summaries[uc.intN(len(entity.Summaries))],
		})
	}

	log.Debug(msg.GetMessage("forecast.generated", len(forecasts)))
	return forecasts
}
