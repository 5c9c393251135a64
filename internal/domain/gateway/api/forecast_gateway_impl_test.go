package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"weather-relay/internal/domain/model"
	httpclient "weather-relay/pkg/http"
)

func newTarget(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestGetForecastsDecodesArray(t *testing.T) {
	server := newTarget(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/weatherforecast/weather" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method %s", r.Method)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("unexpected Accept header %q", got)
		}
		if r.Header.Get("X-Request-Id") == "" {
			t.Error("missing X-Request-Id header")
		}
		jsonHandler(http.StatusOK, `[{"date":"2024-01-02T00:00:00","temperatureC":10,"summary":"Mild"}]`)(w, r)
	})

	forecasts, err := NewForecastGateway(server.URL, httpclient.ClientOptions{}).GetForecasts()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(forecasts) != 1 {
		t.Fatalf("expected one forecast, got %d", len(forecasts))
	}

	got := forecasts[0]
	if got.Date.String() != "2024-01-02T00:00:00" || got.TemperatureC != 10 || got.Summary != "Mild" {
		t.Fatalf("unexpected forecast %+v", got)
	}
}

func TestGetForecastsBaseAddressWithTrailingSlash(t *testing.T) {
	server := newTarget(t, jsonHandler(http.StatusOK, `[]`))

	forecasts, err := NewForecastGateway(server.URL+"/", httpclient.ClientOptions{}).GetForecasts()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if forecasts == nil || len(forecasts) != 0 {
		t.Fatalf("expected an empty non-nil slice, got %#v", forecasts)
	}
}

func TestGetForecastsNullBodyIsEmpty(t *testing.T) {
	server := newTarget(t, jsonHandler(http.StatusOK, `null`))

	forecasts, err := NewForecastGateway(server.URL, httpclient.ClientOptions{}).GetForecasts()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if forecasts == nil || len(forecasts) != 0 {
		t.Fatalf("expected an empty non-nil slice, got %#v", forecasts)
	}
}

func TestGetForecastsFailureKinds(t *testing.T) {
	closed := httptest.NewServer(http.NotFoundHandler())
	closedURL := closed.URL
	closed.Close()

	statusServer := newTarget(t, jsonHandler(http.StatusInternalServerError, `{"error":"boom"}`))
	notFoundServer := newTarget(t, jsonHandler(http.StatusNotFound, `{}`))
	malformedServer := newTarget(t, jsonHandler(http.StatusOK, `[{"date":`))
	wrongShapeServer := newTarget(t, jsonHandler(http.StatusOK, `{"date":"2024-01-02T00:00:00"}`))

	cases := []struct {
		name       string
		base       string
		kind       FailureKind
		statusCode int
	}{
		{name: "empty base address", base: "", kind: FailureConfig},
		{name: "relative base address", base: "target-api", kind: FailureConfig},
		{name: "unsupported scheme", base: "ftp://target-api", kind: FailureConfig},
		{name: "unparseable base address", base: "http://[::1", kind: FailureConfig},
		{name: "unreachable", base: closedURL, kind: FailureNetwork},
		{name: "server error", base: statusServer.URL, kind: FailureStatus, statusCode: http.StatusInternalServerError},
		{name: "not found", base: notFoundServer.URL, kind: FailureStatus, statusCode: http.StatusNotFound},
		{name: "malformed json", base: malformedServer.URL, kind: FailureDecode, statusCode: http.StatusOK},
		{name: "object instead of array", base: wrongShapeServer.URL, kind: FailureDecode, statusCode: http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gateway := NewForecastGateway(tc.base, httpclient.ClientOptions{ConnectionTimeout: time.Second, ReadTimeout: 5 * time.Second})

			forecasts, err := gateway.GetForecasts()
			if forecasts != nil {
				t.Fatalf("expected nil forecasts, got %v", forecasts)
			}

			var fetchErr *FetchError
			if !errors.As(err, &fetchErr) {
				t.Fatalf("expected FetchError, got %v", err)
			}
			if fetchErr.Kind != tc.kind {
				t.Fatalf("expected kind %s, got %s (%v)", tc.kind, fetchErr.Kind, err)
			}
			if fetchErr.StatusCode != tc.statusCode {
				t.Fatalf("expected status %d, got %d", tc.statusCode, fetchErr.StatusCode)
			}
			if fetchErr.BaseAddress != tc.base {
				t.Fatalf("unexpected base address %q", fetchErr.BaseAddress)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	up := newTarget(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		jsonHandler(http.StatusOK, `{"status":"UP","application":"target-api"}`)(w, r)
	})
	degraded := newTarget(t, jsonHandler(http.StatusOK, `{"status":"DOWN"}`))
	failing := newTarget(t, jsonHandler(http.StatusServiceUnavailable, `{"status":"DOWN"}`))

	cases := []struct {
		name string
		base string
		want model.HealthStatus
	}{
		{name: "up", base: up.URL, want: model.StatusUp},
		{name: "reports down", base: degraded.URL, want: model.StatusDown},
		{name: "error status", base: failing.URL, want: model.StatusDown},
		{name: "invalid base", base: "", want: model.StatusDown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			health := NewForecastGateway(tc.base, httpclient.ClientOptions{}).Health()
			if health.Status != tc.want {
				t.Fatalf("expected %s, got %s (%v)", tc.want, health.Status, health.Details)
			}
			if health.Details["base_address"] != tc.base {
				t.Fatalf("unexpected details %v", health.Details)
			}
		})
	}
}

func TestGetForecastsFollowsRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/weatherforecast/weather", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/v2/weather", http.StatusTemporaryRedirect)
	})
	mux.HandleFunc("/v2/weather", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept header lost on redirect, got %q", got)
		}
		jsonHandler(http.StatusOK, `[{"date":"2024-01-02T00:00:00","temperatureC":30,"summary":"Hot"}]`)(w, r)
	})
	server := newTarget(t, mux.ServeHTTP)

	forecasts, err := NewForecastGateway(server.URL, httpclient.ClientOptions{}).GetForecasts()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(forecasts) != 1 || forecasts[0].Summary != "Hot" || forecasts[0].TemperatureC != 30 {
		t.Fatalf("unexpected forecasts %+v", forecasts)
	}
}

func TestGetForecastsBaseAddressWithPath(t *testing.T) {
	server := newTarget(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/relay/api/weatherforecast/weather" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		jsonHandler(http.StatusOK, `[]`)(w, r)
	})

	if _, err := NewForecastGateway(server.URL+"/relay", httpclient.ClientOptions{}).GetForecasts(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetForecastsIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := newTarget(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	if _, err := NewForecastGateway(server.URL, httpclient.ClientOptions{}).GetForecasts(); err == nil {
		t.Fatal("expected an error")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single call, got %d", calls.Load())
	}
}

func TestHealthRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	server := newTarget(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		jsonHandler(http.StatusOK, `{"status":"UP"}`)(w, r)
	})

	health := NewForecastGateway(server.URL, httpclient.ClientOptions{}).Health()
	if health.Status != model.StatusUp {
		t.Fatalf("expected UP after a retry, got %s (%v)", health.Status, health.Details)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 calls, got %d", calls.Load())
	}
}
