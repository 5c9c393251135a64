package lock

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"weather-relay/internal/domain/model"
	"weather-relay/pkg/redis"
)

const (
	upstreamStatusKey = "weather_relay::upstream_status"
	redisTimeout      = 2 * time.Second
)

type RedisUpstreamStatusGateway struct {
	client *redis.Client
	ttl    time.Duration
}

var _ UpstreamStatusGateway = (*RedisUpstreamStatusGateway)(nil)

// NewRedisUpstreamStatusGateway stores the status for ttl, so a status nobody refreshes disappears
func NewRedisUpstreamStatusGateway(client *redis.Client, ttl time.Duration) *RedisUpstreamStatusGateway {
	return &RedisUpstreamStatusGateway{client: client, ttl: ttl}
}

func (gateway *RedisUpstreamStatusGateway) SaveUpstreamStatus(status model.ComponentHealthStatus) error {
	payload, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("failed to encode upstream status: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	if err = gateway.client.Set(ctx, upstreamStatusKey, payload, gateway.ttl); err != nil {
		return fmt.Errorf("failed to store upstream status: %w", err)
	}
	return nil
}

func (gateway *RedisUpstreamStatusGateway) LoadUpstreamStatus() (*model.ComponentHealthStatus, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	payload, err := gateway.client.Get(ctx, upstreamStatusKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream status: %w", err)
	}
	if payload == "" {
		return nil, nil
	}

	var status model.ComponentHealthStatus
	if err = json.Unmarshal([]byte(payload), &status); err != nil {
		return nil, fmt.Errorf("failed to decode upstream status: %w", err)
	}
	return &status, nil
}
