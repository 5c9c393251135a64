package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"weather-relay/internal/domain/usecase/relay"
)

type RelayController struct {
	api     *echo.Group
	useCase relay.UseCase
}

func NewRelayController(api *echo.Group, useCase relay.UseCase) *RelayController {
	return &RelayController{api: api, useCase: useCase}
}

// InitRelayRoutes initializes the forecast relay routes
func (controller *RelayController) InitRelayRoutes() {
	controller.api.GET("/weatherforecast", controller.GetForecasts)
}

// GetForecasts godoc
// @Summary Relay weather forecasts
// @Description Fetches the forecasts of the target service. Any upstream failure yields an empty array, still with status 200.
// @Tags forecast
// @Produce json
// @Success 200 {array} entity.WeatherForecast "Upstream forecasts, or an empty array"
// @Router /weatherforecast [get]
func (controller *RelayController) GetForecasts(c echo.Context) error {
	return c.JSON(http.StatusOK, controller.useCase.FetchForecasts())
}
