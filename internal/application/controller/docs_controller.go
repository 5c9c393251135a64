package controller

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "weather-relay/docs"
)

type DocsController struct {
	api          *echo.Group
	instanceName string
}

// NewDocsController serves the swagger UI of the given swag instance ("target" or "client")
func NewDocsController(api *echo.Group, instanceName string) *DocsController {
	return &DocsController{api: api, instanceName: instanceName}
}

// InitDocsRoutes initializes the swagger routes
func (controller *DocsController) InitDocsRoutes() {
	controller.api.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(controller.instanceName)))
}
