package redis

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"
)

// RedisHealthCheck is the outcome of a ping plus a set/get/delete round trip
type RedisHealthCheck struct {
	Healthy bool
	Details map[string]string
}

// HealthChecker provides Redis health checking functionality
type HealthChecker struct {
	client    *Client
	timeout   time.Duration
	mu        sync.Mutex
	lastCheck time.Time
	lastError string
}

// NewHealthChecker creates a new Redis health checker
func NewHealthChecker(client *Client) *HealthChecker {
	return &HealthChecker{
		client:  client,
		timeout: 2 * time.Second,
	}
}

// HealthCheck pings Redis and runs a set/get/delete round trip
func (h *HealthChecker) HealthCheck() RedisHealthCheck {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	pingResult := h.testPing(ctx)
	operationResult := pingResult && h.testBasicOperations(ctx)

	healthy := pingResult && operationResult
	if healthy {
		h.lastError = ""
	}
	h.lastCheck = time.Now()

	config := h.client.GetConfig()
	details := map[string]string{
		"host":                  config.Host,
		"port":                  strconv.Itoa(config.Port),
		"database":              strconv.Itoa(config.Database),
		"ping_successful":       strconv.FormatBool(pingResult),
		"operations_successful": strconv.FormatBool(operationResult),
		"last_check":            h.lastCheck.Format(time.RFC3339),
	}
	if h.lastError != "" {
		details["last_error"] = h.lastError
	}

	return RedisHealthCheck{Healthy: healthy, Details: details}
}

func (h *HealthChecker) testPing(ctx context.Context) bool {
	if err := h.client.Ping(ctx); err != nil {
		h.lastError = fmt.Sprintf("ping failed: %v", err)
		return false
	}
	return true
}

func (h *HealthChecker) testBasicOperations(ctx context.Context) bool {
	const testKey = "weather_relay::health_check"
	const testValue = "test_value"

	if err := h.client.Set(ctx, testKey, testValue, time.Minute); err != nil {
		h.lastError = fmt.Sprintf("set operation failed: %v", err)
		return false
	}

	value, err := h.client.Get(ctx, testKey)
	if err != nil {
		h.lastError = fmt.Sprintf("get operation failed: %v", err)
		return false
	}
	if value != testValue {
		h.lastError = fmt.Sprintf("value mismatch: expected %s, got %s", testValue, value)
		return false
	}

	if err = h.client.Delete(ctx, testKey); err != nil {
		h.lastError = fmt.Sprintf("delete operation failed: %v", err)
		return false
	}
	return true
}
