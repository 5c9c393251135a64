package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newServer() *echo.Echo {
	e := echo.New()
	SetupRequestID(e)
	SetupRequestLogger(e)
	SetupRecover(e)
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })
	e.GET("/panic", func(c echo.Context) error { panic("boom") })
	return e
}

func TestRequestIDIsGenerated(t *testing.T) {
	rec := httptest.NewRecorder()
	newServer().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))

	id := rec.Header().Get(echo.HeaderXRequestID)
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected a uuid request id, got %q", id)
	}
}

func TestRequestIDIsPropagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(echo.HeaderXRequestID, "caller-id")
	rec := httptest.NewRecorder()
	newServer().ServeHTTP(rec, req)

	if got := rec.Header().Get(echo.HeaderXRequestID); got != "caller-id" {
		t.Fatalf("expected caller-id, got %q", got)
	}
}

func TestRecoverReturnsServerError(t *testing.T) {
	rec := httptest.NewRecorder()
	newServer().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestSkipQuietPaths(t *testing.T) {
	e := echo.New()
	cases := map[string]bool{
		"/health":                true,
		"/swagger/index.html":    true,
		"/weatherforecast":       false,
		"/api/weatherforecast/x": false,
	}

	for path, want := range cases {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, path, nil), httptest.NewRecorder())
		if got := skipQuietPaths(c); got != want {
			t.Errorf("%s: got %v, want %v", path, got, want)
		}
	}
}
