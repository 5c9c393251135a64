package lock

import "weather-relay/internal/domain/model"

// UpstreamStatusGateway shares the last upstream check between the replicas of the client service
type UpstreamStatusGateway interface {
	SaveUpstreamStatus(status model.ComponentHealthStatus) error
	// LoadUpstreamStatus returns nil when no replica published a status, or it expired
	LoadUpstreamStatus() (*model.ComponentHealthStatus, error)
}
