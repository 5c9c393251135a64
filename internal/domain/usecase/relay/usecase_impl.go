package relay

import (
	"errors"

	"go.uber.org/zap"

	"weather-relay/internal/domain/entity"
	"weather-relay/internal/domain/gateway/api"
	"weather-relay/pkg/log"
	"weather-relay/pkg/msg"
)

type relayUseCase struct {
	apiGateway api.ForecastGateway
}

func NewRelayUseCase(apiGateway api.ForecastGateway) UseCase {
	return &relayUseCase{apiGateway: apiGateway}
}

// FetchForecasts relays the target service forecasts. Every failure is logged once and swallowed.
func (uc *relayUseCase) FetchForecasts() []entity.WeatherForecast {
	forecasts, err := uc.apiGateway.GetForecasts()
	if err != nil {
		uc.logFailure(err)
		return []entity.WeatherForecast{}
	}

	log.Debug(msg.GetMessage("forecast.fetch.ok", len(forecasts), uc.apiGateway.BaseAddress()))
	return forecasts
}

func (uc *relayUseCase) logFailure(err error) {
	var fetchErr *api.FetchError
	if !errors.As(err, &fetchErr) {
		fetchErr = &api.FetchError{Kind: api.FailureNetwork, BaseAddress: uc.apiGateway.BaseAddress(), Err: err}
	}

	fields := []zap.Field{
		zap.String("failure_kind", string(fetchErr.Kind)),
		zap.String("base_address", fetchErr.BaseAddress),
		zap.String("request_id", fetchErr.RequestID),
		zap.Int("status_code", fetchErr.StatusCode),
		zap.Error(fetchErr.Err),
	}

	switch fetchErr.Kind {
	case api.FailureConfig:
		log.Error(msg.GetMessage("forecast.fetch.config-fail", fetchErr.BaseAddress, fetchErr.Err), fields...)
	case api.FailureStatus:
		log.Warn(msg.GetMessage("forecast.fetch.status-fail", fetchErr.BaseAddress, fetchErr.StatusCode), fields...)
	case api.FailureDecode:
		log.Error(msg.GetMessage("forecast.fetch.decode-fail", fetchErr.BaseAddress, fetchErr.Err), fields...)
	default:
		log.Error(msg.GetMessage("forecast.fetch.network-fail", fetchErr.BaseAddress, fetchErr.Err), fields...)
	}
}
