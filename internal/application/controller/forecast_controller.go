package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"weather-relay/internal/domain/usecase/forecast"
)

type ForecastController struct {
	api     *echo.Group
	useCase forecast.UseCase
}

func NewForecastController(api *echo.Group, useCase forecast.UseCase) *ForecastController {
	return &ForecastController{api: api, useCase: useCase}
}

// InitForecastRoutes initializes the forecast generation routes
func (controller *ForecastController) InitForecastRoutes() {
	controller.api.GET("/weather", controller.GetForecasts)
}

// GetForecasts godoc
// @Summary Generate weather forecasts
// @Description Returns five random forecasts, one per day starting tomorrow
// @Tags forecast
// @Produce json
// @Success 200 {array} entity.WeatherForecast "Generated forecasts"
// @Router /api/weatherforecast/weather [get]
func (controller *ForecastController) GetForecasts(c echo.Context) error {
	return c.JSON(http.StatusOK, controller.useCase.GenerateForecasts())
}
