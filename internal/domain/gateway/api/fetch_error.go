package api

import (
	"errors"
	"fmt"

	"weather-relay/pkg/http"
)

// FailureKind classifies why a fetch from the target service failed.
type FailureKind string

const (
	FailureConfig  FailureKind = "config"
	FailureNetwork FailureKind = "network"
	FailureStatus  FailureKind = "status"
	FailureDecode  FailureKind = "decode"
)

// FetchError is returned by ForecastGateway.GetForecasts.
type FetchError struct {
	Kind        FailureKind
	BaseAddress string
	RequestID   string
	StatusCode  int
	Err         error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s failure fetching forecasts from %q: %v", e.Kind, e.BaseAddress, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// classifyFailure maps an error of the http package to a failure kind.
func classifyFailure(err error) FailureKind {
	var (
		transportErr *http.TransportError
		statusErr    *http.StatusError
		decodeErr    *http.DecodeError
	)

	switch {
	case errors.Is(err, http.ErrInvalidRequest):
		return FailureConfig
	case errors.As(err, &statusErr):
		return FailureStatus
	case errors.As(err, &decodeErr):
		return FailureDecode
	case errors.As(err, &transportErr):
		return FailureNetwork
	default:
		return FailureNetwork
	}
}
