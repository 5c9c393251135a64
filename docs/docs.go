// Package docs registers the swagger documents of the two services: instance "target" for the
// forecast generator and instance "client" for the forecast relay.
package docs

import "github.com/swaggo/swag"

const forecastDefinitions = `
        "entity.WeatherForecast": {
            "type": "object",
            "properties": {
                "date": {
                    "type": "string",
                    "example": "2024-03-11T00:00:00"
                },
                "temperatureC": {
                    "type": "integer",
                    "example": 21
                },
                "temperatureF": {
                    "type": "integer",
                    "example": 70
                },
                "summary": {
                    "type": "string",
                    "enum": ["Freezing", "Bracing", "Chilly", "Cool", "Mild", "Warm", "Balmy", "Hot", "Sweltering", "Scorching"]
                }
            }
        },
        "model.ComponentHealthStatus": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string",
                    "enum": ["UP", "DOWN", "UNKNOWN"]
                },
                "details": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    }
                }
            }
        },
        "model.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string",
                    "enum": ["UP", "DOWN", "UNKNOWN"]
                },
                "application": {
                    "type": "string"
                },
                "components": {
                    "type": "object",
                    "additionalProperties": {
                        "$ref": "#/definitions/model.ComponentHealthStatus"
                    }
                }
            }
        }`

const healthPath = `
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.HealthResponse"
                        }
                    }
                }
            }
        }`

const targetTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/weatherforecast/weather": {
            "get": {
                "description": "Returns five random forecasts, one per day starting tomorrow",
                "produces": ["application/json"],
                "tags": ["forecast"],
                "summary": "Generate weather forecasts",
                "responses": {
                    "200": {
                        "description": "Generated forecasts",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/entity.WeatherForecast"
                            }
                        }
                    }
                }
            }
        },` + healthPath + `
    },
    "definitions": {` + forecastDefinitions + `
    }
}`

const clientTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/weatherforecast": {
            "get": {
                "description": "Fetches the forecasts of the target service. Any upstream failure yields an empty array, still with status 200.",
                "produces": ["application/json"],
                "tags": ["forecast"],
                "summary": "Relay weather forecasts",
                "responses": {
                    "200": {
                        "description": "Upstream forecasts, or an empty array",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/entity.WeatherForecast"
                            }
                        }
                    }
                }
            }
        },` + healthPath + `
    },
    "definitions": {` + forecastDefinitions + `
    }
}`

// SwaggerInfoTarget holds exported Swagger Info of the target service
var SwaggerInfoTarget = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "target-api",
	Description:      "Generates synthetic weather forecasts.",
	InfoInstanceName: "target",
	SwaggerTemplate:  targetTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

// SwaggerInfoClient holds exported Swagger Info of the client service
var SwaggerInfoClient = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "client-api",
	Description:      "Relays the forecasts of target-api.",
	InfoInstanceName: "client",
	SwaggerTemplate:  clientTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfoTarget.InstanceName(), SwaggerInfoTarget)
	swag.Register(SwaggerInfoClient.InstanceName(), SwaggerInfoClient)
}
