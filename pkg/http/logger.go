package http

import (
	"go.uber.org/zap"
)

// HTTPLogger receives the traffic of a Client
type HTTPLogger interface {
	// LogRequest is called right before the request is sent
	LogRequest(method, url string, headers map[string]string)

	// LogResponseSuccess is called after a 2xx response was read and decoded
	LogResponseSuccess(method, url string, httpStatus int, responseBody string, latency int64)

	// LogResponseError is called after a transport failure, a non-2xx status or a decode failure
	LogResponseError(method, url string, httpStatus int, responseBody string, latency int64, err error)

	// LogRequestRetry is called before a retry of a request sent with a backoff
	LogRequestRetry(method, url string, httpStatus int, err error, retryCount, maxRetries int)
}

// maxLoggedBody caps the bytes of a body written to the log.
const maxLoggedBody = 1024

// ZapHTTPLogger writes the traffic at debug level and retries at warn level.
type ZapHTTPLogger struct {
	logger *zap.Logger
}

var _ HTTPLogger = (*ZapHTTPLogger)(nil)

func NewZapHTTPLogger(logger *zap.Logger) *ZapHTTPLogger {
	return &ZapHTTPLogger{logger: logger}
}

func (l *ZapHTTPLogger) LogRequest(method, url string, headers map[string]string) {
	l.logger.Debug("http request",
		zap.String("method", method),
		zap.String("url", url),
		zap.Any("headers", headers))
}

func (l *ZapHTTPLogger) LogResponseSuccess(method, url string, httpStatus int, responseBody string, latency int64) {
	l.logger.Debug("http response",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency),
		zap.String("response_body", truncate(responseBody)))
}

func (l *ZapHTTPLogger) LogResponseError(method, url string, httpStatus int, responseBody string, latency int64, err error) {
	l.logger.Debug("http response error",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency),
		zap.String("response_body", truncate(responseBody)),
		zap.Error(err))
}

func (l *ZapHTTPLogger) LogRequestRetry(method, url string, httpStatus int, err error, retryCount, maxRetries int) {
	l.logger.Warn("http request retry",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Int("retry", retryCount),
		zap.Int("max_retries", maxRetries),
		zap.Error(err))
}

func truncate(body string) string {
	if len(body) <= maxLoggedBody {
		return body
	}
	return body[:maxLoggedBody] + "..."
}
