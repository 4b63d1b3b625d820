// Package docs holds the OpenAPI description served under /swagger.
// Regenerate with: swag init -g cmd/main.go
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
                "tags": ["health"],
                "summary": "Health check",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/public/pizzas": {
            "get": {
                "tags": ["pizzas"],
                "summary": "Get all pizzas",
                "produces": ["application/json"],
                "responses": {
                    "200": {
                        "description": "OK",
                        "headers": {"X-Total-Count": {"type": "integer", "description": "Number of pizzas"}},
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Pizza"}}
                    },
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.APIError"}}
                }
            }
        },
        "/api/v1/public/pizzas/{code}": {
            "get": {
                "tags": ["pizzas"],
                "summary": "Get pizza by code",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Pizza code", "name": "code", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Pizza"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.APIError"}}
                }
            }
        },
        "/api/v1/public/menu/by-category": {
            "get": {
                "tags": ["menu"],
                "summary": "Menu sorted by category",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Pizza"}}}
                }
            }
        },
        "/api/v1/public/menu/most-expensive": {
            "get": {
                "tags": ["menu"],
                "summary": "Most expensive pizza",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Pizza"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.APIError"}}
                }
            }
        },
        "/api/v1/protected/admin/pizzas": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["pizzas"],
                "summary": "Create a new pizza",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"description": "Pizza", "name": "pizza", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.PizzaRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Pizza"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.APIError"}}
                }
            }
        },
        "/api/v1/protected/admin/pizzas/{code}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["pizzas"],
                "summary": "Update a pizza",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Pizza code", "name": "code", "in": "path", "required": true},
                    {"description": "Pizza", "name": "pizza", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.PizzaRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Pizza"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.APIError"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["pizzas"],
                "summary": "Delete a pizza",
                "parameters": [{"type": "string", "description": "Pizza code", "name": "code", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.APIError"}}
                }
            }
        },
        "/api/v1/protected/admin/imports": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["pizzas"],
                "summary": "Bulk import pizzas",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"description": "Pizzas to import", "name": "pizzas", "in": "body", "schema": {"type": "array", "items": {"$ref": "#/definitions/controllers.PizzaRequest"}}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/store.BulkResult"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.APIError"}}
                }
            }
        }
    },
    "definitions": {
        "controllers.PizzaRequest": {
            "type": "object",
            "required": ["category", "code", "name"],
            "properties": {
                "category": {"type": "string", "enum": ["VIANDE", "POISSON", "SANS_VIANDE"]},
                "code": {"type": "string", "maxLength": 10},
                "name": {"type": "string", "maxLength": 255},
                "price": {"type": "number", "minimum": 0}
            }
        },
        "models.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true},
                "message": {"type": "string"}
            }
        },
        "models.Pizza": {
            "type": "object",
            "properties": {
                "category": {"type": "string", "enum": ["VIANDE", "POISSON", "SANS_VIANDE"]},
                "code": {"type": "string"},
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "price": {"type": "number"}
            }
        },
        "store.BulkResult": {
            "type": "object",
            "properties": {
                "batches": {"type": "integer"},
                "inserted": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pizzeria API",
	Description:      "Pizza menu backed by a relational PIZZA table",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
