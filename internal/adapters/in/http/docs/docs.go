// Package docs registers the OpenAPI description served under /swagger.
// It follows the layout swag init produces from the annotations in the http
// package.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
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
        "/orders": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "List orders visible to the calling role",
                "parameters": [
                    {"type": "string", "description": "china, venezuela or admin", "name": "X-Role", "in": "header", "required": true},
                    {"type": "string", "description": "staff id", "name": "staffId", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/queries.OrderView"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Register a client order at intake",
                "parameters": [
                    {"description": "order", "name": "order", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.NewOrderRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.CreatedResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/orders/{id}/quote": {
            "post": {
                "consumes": ["application/json"],
                "tags": ["orders"],
                "summary": "Quote an order with a unit price",
                "parameters": [
                    {"type": "string", "description": "order id", "name": "id", "in": "path", "required": true},
                    {"description": "unit price", "name": "quote", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.QuoteRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/orders/{id}/advance": {
            "post": {
                "consumes": ["application/json"],
                "tags": ["orders"],
                "summary": "Move an order one step forward",
                "parameters": [
                    {"type": "string", "description": "order id", "name": "id", "in": "path", "required": true},
                    {"description": "target state", "name": "advance", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.AdvanceRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/orders/{id}/box": {
            "put": {
                "consumes": ["application/json"],
                "tags": ["orders"],
                "summary": "Pack an order into a box",
                "parameters": [
                    {"type": "string", "description": "order id", "name": "id", "in": "path", "required": true},
                    {"description": "box", "name": "box", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.AssignToBoxRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/boxes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["boxes"],
                "summary": "List boxes, newest first",
                "parameters": [
                    {"type": "string", "description": "box id substring", "name": "filter", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/queries.BoxView"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["boxes"],
                "summary": "Create an empty box",
                "parameters": [
                    {"description": "box", "name": "box", "in": "body", "schema": {"$ref": "#/definitions/http.NewEntityRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.CreatedResponse"}}
                }
            }
        },
        "/boxes/counts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["boxes"],
                "summary": "Count the orders in each box",
                "parameters": [
                    {"type": "string", "description": "comma separated box ids", "name": "ids", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.CountsResponse"}}
                }
            }
        },
        "/boxes/{id}": {
            "delete": {
                "tags": ["boxes"],
                "summary": "Delete an empty box",
                "parameters": [
                    {"type": "string", "description": "box id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/boxes/{id}/container": {
            "put": {
                "consumes": ["application/json"],
                "tags": ["boxes"],
                "summary": "Load a box into a container",
                "parameters": [
                    {"type": "string", "description": "box id", "name": "id", "in": "path", "required": true},
                    {"description": "container", "name": "container", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.AssignToContainerRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/containers/{id}/send": {
            "post": {
                "consumes": ["application/json"],
                "tags": ["containers"],
                "summary": "Ship a loaded container",
                "parameters": [
                    {"type": "string", "description": "container id", "name": "id", "in": "path", "required": true},
                    {"description": "carrier tracking", "name": "tracking", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.SendContainerRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/containers/{id}/receive": {
            "post": {
                "tags": ["containers"],
                "summary": "Confirm a shipped container in Venezuela",
                "parameters": [
                    {"type": "string", "description": "container id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "http.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "reason": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "http.CreatedResponse": {
            "type": "object",
            "properties": {"id": {"type": "string", "format": "uuid"}}
        },
        "http.CountsResponse": {
            "type": "object",
            "properties": {
                "counts": {"type": "object", "additionalProperties": {"type": "integer"}}
            }
        },
        "http.NewOrderRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "clientId": {"type": "string"},
                "productName": {"type": "string"},
                "quantity": {"type": "integer"},
                "chinaStaffId": {"type": "string", "format": "uuid"},
                "venezuelaStaffId": {"type": "string", "format": "uuid"}
            }
        },
        "http.NewEntityRequest": {
            "type": "object",
            "properties": {"id": {"type": "string", "format": "uuid"}}
        },
        "http.QuoteRequest": {
            "type": "object",
            "properties": {"unitPrice": {"type": "string", "example": "12.50"}}
        },
        "http.AdvanceRequest": {
            "type": "object",
            "properties": {"next": {"type": "integer", "minimum": 1, "maximum": 13}}
        },
        "http.AssignToBoxRequest": {
            "type": "object",
            "properties": {"boxId": {"type": "string", "format": "uuid"}}
        },
        "http.AssignToContainerRequest": {
            "type": "object",
            "properties": {"containerId": {"type": "string", "format": "uuid"}}
        },
        "http.SendContainerRequest": {
            "type": "object",
            "properties": {
                "trackingNumber": {"type": "string"},
                "trackingCompany": {"type": "string"},
                "arriveDate": {"type": "string", "format": "date"}
            }
        },
        "queries.OrderView": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "clientId": {"type": "string"},
                "clientName": {"type": "string"},
                "productName": {"type": "string"},
                "quantity": {"type": "integer"},
                "totalQuote": {"type": "string"},
                "state": {"type": "integer"},
                "stateName": {"type": "string"},
                "boxId": {"type": "string", "format": "uuid"},
                "chinaStaffId": {"type": "string", "format": "uuid"},
                "venezuelaStaffId": {"type": "string", "format": "uuid"},
                "createdAt": {"type": "string", "format": "date-time"}
            }
        },
        "queries.BoxView": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "state": {"type": "integer"},
                "stateName": {"type": "string"},
                "containerId": {"type": "string", "format": "uuid"},
                "creationDate": {"type": "string", "format": "date-time"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Morna logistics API",
	Description:      "Orders, boxes and containers moving from China to Venezuela.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
