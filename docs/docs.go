// Package docs holds the swagger spec served at /swagger. Regenerate with
// `swag init -g cmd/api/main.go` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Liveness and database reachability probe",
                "responses": {}
            }
        },
        "/api/calendar/month": {
            "get": {
                "produces": ["application/json"],
                "tags": ["calendar"],
                "summary": "Render a month grid with stored and virtual events",
                "responses": {}
            }
        },
        "/api/calendar/next": {
            "get": {
                "produces": ["application/json"],
                "tags": ["calendar"],
                "summary": "Upcoming events for today, or yesterday's as catch-up",
                "responses": {}
            }
        },
        "/api/dashboard/layout": {
            "get": {
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "The caller's widget layout, or the default",
                "responses": {}
            },
            "put": {
                "consumes": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Persist the caller's widget layout",
                "responses": {}
            }
        },
        "/api/finance/export": {
            "get": {
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["finance"],
                "summary": "Download a month of transactions as a workbook",
                "responses": {}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Casa360 API",
	Description:      "Household management backend: calendar, shopping, finance, vehicles, pets, shifts, documents.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
