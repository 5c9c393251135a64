package http

import (
	"errors"
	"time"
)

// BackoffConfig configures retries of a request. A nil config or MaxRetries 0 sends the request once.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
	// RetryOnStatus lists the statuses worth a retry. When empty, only 5xx and 429 are retried.
	RetryOnStatus []int
}

// delay returns the wait before the given retry (1-based).
func (b *BackoffConfig) delay(retry int) time.Duration {
	interval := b.InitialInterval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	multiplier := b.Multiplier
	if multiplier < 1 {
		multiplier = 2
	}

	wait := float64(interval)
	for i := 1; i < retry; i++ {
		wait *= multiplier
	}

	result := time.Duration(wait)
	if b.MaxInterval > 0 && result > b.MaxInterval {
		return b.MaxInterval
	}
	return result
}

// shouldRetry reports whether the outcome of an attempt is retryable.
func (b *BackoffConfig) shouldRetry(status int, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrInvalidRequest) {
		return false
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return true
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return false
	}

	if len(b.RetryOnStatus) == 0 {
		return status >= 500 || status == 429
	}
	for _, candidate := range b.RetryOnStatus {
		if candidate == status {
			return true
		}
	}
	return false
}
