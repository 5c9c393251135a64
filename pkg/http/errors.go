package http

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest is wrapped by every error raised while building a request, before anything
// is sent on the wire.
var ErrInvalidRequest = errors.New("invalid request")

// TransportError reports a failure to send the request or to read the response.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError reports a response whose status is outside the 2xx range.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http error: %s %s returned status %d", e.Method, e.URL, e.StatusCode)
}

// DecodeError reports a response body that could not be decoded into the requested target.
type DecodeError struct {
	ContentType string
	Err         error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s response: %v", e.ContentType, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
