package lock

import (
	"weather-relay/internal/domain/model"
	"weather-relay/pkg/redis"
)

type RedisHealthGateway struct {
	checker *redis.HealthChecker
}

var _ HealthGateway = (*RedisHealthGateway)(nil)

func NewRedisHealthGateway(client *redis.Client) *RedisHealthGateway {
	return &RedisHealthGateway{checker: redis.NewHealthChecker(client)}
}

func (gateway *RedisHealthGateway) Health() model.ComponentHealthStatus {
	check := gateway.checker.HealthCheck()

	status := model.StatusDown
	if check.Healthy {
		status = model.StatusUp
	}

	return model.ComponentHealthStatus{
		Status:  status,
		Details: check.Details,
	}
}
