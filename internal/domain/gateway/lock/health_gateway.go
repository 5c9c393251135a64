package lock

import "weather-relay/internal/domain/model"

// HealthGateway reports the health of the store backing distributed locks
type HealthGateway interface {
	Health() model.ComponentHealthStatus
}
