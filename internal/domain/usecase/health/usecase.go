package health

import "weather-relay/internal/domain/model"

type UseCase interface {
	// CheckHealth aggregates the status of the application components
	CheckHealth() model.HealthResponse

	// CheckUpstream calls the upstream service and records the result for CheckHealth
	CheckUpstream(requestID string) model.ComponentHealthStatus
}
