package http

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	charsetpkg "golang.org/x/net/html/charset"
)

const (
	maxIdleConns        = 100
	maxIdleConnsPerHost = 20
	idleConnTimeout     = 90 * time.Second
)

// Client reads resources relative to a base URL.
type Client struct {
	baseURL        *url.URL
	baseURLErr     error
	rawBaseURL     string
	client         *http.Client
	defaultHeaders map[string]string
	logger         HTTPLogger
}

// ClientOptions represents the configuration options for the HTTP client.
type ClientOptions struct {
	FollowRedirect    bool
	DefaultHeaders    map[string]string
	ConnectionTimeout time.Duration
	// ReadTimeout bounds the whole exchange, 60s when zero
	ReadTimeout time.Duration
	Logger      HTTPLogger
}

// NewHttpClient creates a client bound to baseURL. A base URL that is not absolute does not fail
// here: every request reports it wrapped in ErrInvalidRequest.
func NewHttpClient(baseURL string, opts ClientOptions) *Client {
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 60 * time.Second
	}
	if opts.ConnectionTimeout == 0 {
		opts.ConnectionTimeout = 60 * time.Second
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        maxIdleConns,
		MaxIdleConnsPerHost: maxIdleConnsPerHost,
		IdleConnTimeout:     idleConnTimeout,
		DialContext: (&net.Dialer{
			Timeout: opts.ConnectionTimeout,
		}).DialContext,
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   opts.ReadTimeout,
	}
	if !opts.FollowRedirect {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	parsed, err := parseBaseURL(baseURL)
	return &Client{
		baseURL:        parsed,
		baseURLErr:     err,
		rawBaseURL:     baseURL,
		client:         client,
		defaultHeaders: opts.DefaultHeaders,
		logger:         opts.Logger,
	}
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: base url %q: %w", ErrInvalidRequest, baseURL, err)
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return nil, fmt.Errorf("%w: base url %q is not absolute", ErrInvalidRequest, baseURL)
	}
	return parsed, nil
}

// BaseURL returns the base URL as given to NewHttpClient.
func (hc *Client) BaseURL() string {
	return hc.rawBaseURL
}

// Request starts a GET request relative to the base URL.
func (hc *Client) Request() *Request {
	return &Request{client: hc, path: "/"}
}

// resolve appends path to the base URL path. The base query, if any, is kept.
func (hc *Client) resolve(path string) (string, error) {
	if hc.baseURLErr != nil {
		return "", hc.baseURLErr
	}
	return hc.baseURL.JoinPath(path).String(), nil
}

func (hc *Client) getWithBackoff(path string, headers map[string]string, target any, backoff *BackoffConfig) (any, int, error) {
	result, status, err := hc.get(path, headers, target)
	if backoff == nil {
		return result, status, err
	}

	for retry := 1; retry <= backoff.MaxRetries && backoff.shouldRetry(status, err); retry++ {
		if hc.logger != nil {
			requestURL, _ := hc.resolve(path)
			hc.logger.LogRequestRetry(http.MethodGet, requestURL, status, err, retry, backoff.MaxRetries)
		}
		time.Sleep(backoff.delay(retry))
		result, status, err = hc.get(path, headers, target)
	}
	return result, status, err
}

// get sends one GET and decodes a 2xx body into target.
func (hc *Client) get(path string, headers map[string]string, target any) (any, int, error) {
	requestURL, err := hc.resolve(path)
	if err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequest(http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	for k, v := range hc.defaultHeaders {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	if hc.logger != nil {
		hc.logger.LogRequest(http.MethodGet, requestURL, flattenHeaders(req.Header))
	}

	start := time.Now()
	resp, err := hc.client.Do(req)
	if err != nil {
		transportErr := &TransportError{Method: http.MethodGet, URL: requestURL, Err: err}
		hc.logError(requestURL, 0, nil, start, transportErr)
		return nil, 0, transportErr
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		transportErr := &TransportError{Method: http.MethodGet, URL: requestURL, Err: err}
		hc.logError(requestURL, resp.StatusCode, nil, start, transportErr)
		return nil, resp.StatusCode, transportErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{Method: http.MethodGet, URL: requestURL, StatusCode: resp.StatusCode}
		hc.logError(requestURL, resp.StatusCode, body, start, statusErr)
		return nil, resp.StatusCode, statusErr
	}

	if target != nil {
		if err = decode(body, resp.Header.Get("Content-Type"), target); err != nil {
			hc.logError(requestURL, resp.StatusCode, body, start, err)
			return nil, resp.StatusCode, err
		}
	}
	if hc.logger != nil {
		hc.logger.LogResponseSuccess(http.MethodGet, requestURL, resp.StatusCode, string(body), time.Since(start).Milliseconds())
	}
	return target, resp.StatusCode, nil
}

func (hc *Client) logError(requestURL string, status int, body []byte, start time.Time, err error) {
	if hc.logger == nil {
		return
	}
	hc.logger.LogResponseError(http.MethodGet, requestURL, status, string(body), time.Since(start).Milliseconds(), err)
}

// decode picks the decoder from the response content type; JSON when absent or unknown.
func decode(body []byte, contentType string, target any) error {
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))

	var err error
	switch mediaType {
	case "application/xml", "text/xml":
		dec := xml.NewDecoder(bytes.NewReader(body))
		dec.CharsetReader = charsetpkg.NewReaderLabel
		err = dec.Decode(target)
	case "text/plain":
		if text, ok := target.(*string); ok {
			*text = string(body)
			return nil
		}
		err = json.Unmarshal(body, target)
	default:
		err = json.Unmarshal(body, target)
	}

	if err != nil {
		if mediaType == "" {
			mediaType = "application/json"
		}
		return &DecodeError{ContentType: mediaType, Err: err}
	}
	return nil
}

func flattenHeaders(header http.Header) map[string]string {
	flat := make(map[string]string, len(header))
	for key := range header {
		flat[key] = header.Get(key)
	}
	return flat
}
