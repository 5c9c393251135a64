package http

import "fmt"

// Request is a GET being built against a Client.
type Request struct {
	client  *Client
	path    string
	headers map[string]string
	target  any
	backoff *BackoffConfig
}

// WithPath sets the path, relative to the client base URL.
func (r *Request) WithPath(path string) *Request {
	r.path = path
	return r
}

// WithHeaders adds headers on top of the client defaults.
func (r *Request) WithHeaders(headers map[string]string) *Request {
	r.headers = headers
	return r
}

// Into sets the value a 2xx body is decoded into.
func (r *Request) Into(target any) *Request {
	r.target = target
	return r
}

// WithBackoff retries transient failures of this request.
func (r *Request) WithBackoff(backoff *BackoffConfig) *Request {
	r.backoff = backoff
	return r
}

// Execute sends the request. It returns the decoded target, the status code (0 when no response
// arrived) and a *TransportError, *StatusError, *DecodeError or ErrInvalidRequest.
func (r *Request) Execute() (any, int, error) {
	if r.path == "" {
		return nil, 0, fmt.Errorf("%w: path is required", ErrInvalidRequest)
	}
	return r.client.getWithBackoff(r.path, r.headers, r.target, r.backoff)
}
