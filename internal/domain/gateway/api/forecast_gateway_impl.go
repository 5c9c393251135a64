package api

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"weather-relay/internal/domain/entity"
	"weather-relay/internal/domain/model"
	"weather-relay/pkg/http"
)

const (
	// ForecastPath is the path of the target service forecast endpoint, relative to the base address
	ForecastPath = "api/weatherforecast/weather"
	// HealthPath is the path of the target service health endpoint, relative to the base address
	HealthPath = "health"

	requestIDHeader = "X-Request-Id"
)

// healthBackoff rides out a restarting target before the upstream is reported DOWN.
// Forecast fetches are never retried.
var healthBackoff = &http.BackoffConfig{
	MaxRetries:      2,
	InitialInterval: 200 * time.Millisecond,
	MaxInterval:     time.Second,
}

// forecastGatewayImpl implements the ForecastGateway interface
type forecastGatewayImpl struct {
	baseAddress string
	configErr   error
	httpClient  *http.Client
}

// NewForecastGateway creates a new instance of ForecastGateway with HTTP client. Redirects are
// followed. An invalid base address is not rejected here; every fetch reports it as a config
// failure instead.
func NewForecastGateway(baseAddress string, clientOptions http.ClientOptions) ForecastGateway {
	headers := map[string]string{"Accept": "application/json"}
	for key, value := range clientOptions.DefaultHeaders {
		headers[key] = value
	}
	clientOptions.DefaultHeaders = headers
	clientOptions.FollowRedirect = true

	return &forecastGatewayImpl{
		baseAddress: baseAddress,
		configErr:   validateBaseAddress(baseAddress),
		httpClient:  http.NewHttpClient(baseAddress, clientOptions),
	}
}

// validateBaseAddress requires an absolute http(s) URL with a host.
func validateBaseAddress(baseAddress string) error {
	if baseAddress == "" {
		return errors.New("base address is empty")
	}

	parsed, err := url.Parse(baseAddress)
	if err != nil {
		return fmt.Errorf("base address is not a valid URL: %w", err)
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return fmt.Errorf("base address %q is not an absolute URL", baseAddress)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("base address scheme %q is not supported", parsed.Scheme)
	}
	return nil
}

func (g *forecastGatewayImpl) BaseAddress() string {
	return g.baseAddress
}

// GetForecasts issues a single GET to the forecast endpoint and decodes the JSON array it returns
func (g *forecastGatewayImpl) GetForecasts() ([]entity.WeatherForecast, error) {
	if g.configErr != nil {
		return nil, &FetchError{Kind: FailureConfig, BaseAddress: g.baseAddress, Err: g.configErr}
	}

	requestID := uuid.NewString()

	result, status, err := g.httpClient.Request().
		WithPath(ForecastPath).
		WithHeaders(map[string]string{requestIDHeader: requestID}).
		Into(&[]entity.WeatherForecast{}).
		Execute()

	if err != nil {
		return nil, &FetchError{
			Kind:        classifyFailure(err),
			BaseAddress: g.baseAddress,
			RequestID:   requestID,
			StatusCode:  status,
			Err:         err,
		}
	}

	forecasts := *result.(*[]entity.WeatherForecast)
	if forecasts == nil {
		forecasts = []entity.WeatherForecast{}
	}
	return forecasts, nil
}

// Health calls the target service health endpoint and reports it as a component status
func (g *forecastGatewayImpl) Health() model.ComponentHealthStatus {
	details := map[string]string{"base_address": g.baseAddress}

	if g.configErr != nil {
		details["message"] = g.configErr.Error()
		return model.ComponentHealthStatus{Status: model.StatusDown, Details: details}
	}

	result, status, err := g.httpClient.Request().
		WithPath(HealthPath).
		Into(&model.HealthResponse{}).
		WithBackoff(healthBackoff).
		Execute()

	if status != 0 {
		details["status_code"] = strconv.Itoa(status)
	}
	if err != nil {
		details["message"] = err.Error()
		return model.ComponentHealthStatus{Status: model.StatusDown, Details: details}
	}

	upstream := result.(*model.HealthResponse)
	if upstream.Status != model.StatusUp {
		details["message"] = "upstream reported " + string(upstream.Status)
		return model.ComponentHealthStatus{Status: model.StatusDown, Details: details}
	}

	details["message"] = string(model.StatusUp)
	return model.ComponentHealthStatus{Status: model.StatusUp, Details: details}
}
