package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// SetupRequestID assigns an X-Request-Id to every inbound request lacking one
func SetupRequestID(e *echo.Echo) {
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
}

// SetupRecover turns handler panics into a 500 instead of dropping the connection
func SetupRecover(e *echo.Echo) {
	e.Use(echomw.Recover())
}
