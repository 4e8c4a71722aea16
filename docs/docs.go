// Package docs registers the OpenAPI description served under /swagger.
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
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.readinessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.readinessResponse"}}
                }
            }
        },
        "/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List members",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.userSummary"}}}
                }
            }
        },
        "/users/{member_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get a member",
                "parameters": [
                    {"type": "string", "description": "Member identifier", "name": "member_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.User"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/experiences": {
            "get": {
                "description": "price_range is HTML-escaped.",
                "produces": ["application/json"],
                "tags": ["experiences"],
                "summary": "List experiences",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.experienceSummary"}}}
                }
            }
        },
        "/experiences/{experience_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["experiences"],
                "summary": "Get an experience",
                "parameters": [
                    {"type": "string", "description": "Experience identifier", "name": "experience_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.experienceResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/recommendations/{user_id}": {
            "get": {
                "description": "Returns HTML by default (escaped text, line breaks as <br>); format=json returns a JSON object.",
                "produces": ["text/html", "application/json"],
                "tags": ["recommendations"],
                "summary": "Recommend experiences for a member",
                "parameters": [
                    {"type": "string", "description": "Member identifier", "name": "user_id", "in": "path", "required": true},
                    {"enum": ["html", "json"], "type": "string", "description": "Response format", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.recommendationResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/recommendations/{user_id}/prompt": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["text/plain"],
                "tags": ["admin"],
                "summary": "Preview the prompt sent to the provider",
                "parameters": [
                    {"type": "string", "description": "Member identifier", "name": "user_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/reload-data": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Reload the catalog",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.CardTransaction": {
            "type": "object",
            "properties": {
                "transaction_id": {"type": "string"},
                "date": {"type": "string"},
                "merchant_name": {"type": "string"},
                "category": {"type": "string"},
                "amount": {"type": "number"}
            }
        },
        "domain.PastRedeemedOffer": {
            "type": "object",
            "properties": {
                "experience_id": {"type": "string"},
                "redeemed_date": {"type": "string"}
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "member_id": {"type": "string"},
                "name": {"type": "string"},
                "location": {"type": "string"},
                "past_redeemed_offers": {"type": "array", "items": {"$ref": "#/definitions/domain.PastRedeemedOffer"}},
                "card_transactions": {"type": "array", "items": {"$ref": "#/definitions/domain.CardTransaction"}}
            }
        },
        "handler.dependencyStatus": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {
                "detail": {"type": "string"}
            }
        },
        "handler.experienceResponse": {
            "type": "object",
            "properties": {
                "experience_id": {"type": "string"},
                "title": {"type": "string"},
                "category": {"type": "string"},
                "short_description": {"type": "string"},
                "long_description": {"type": "string"},
                "location": {"type": "string"},
                "price_range": {"type": "string"},
                "rating": {"type": "number"},
                "images": {"type": "array", "items": {"type": "string"}},
                "available_dates": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handler.experienceSummary": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "category": {"type": "string"},
                "location": {"type": "string"},
                "price_range": {"type": "string"},
                "short_description": {"type": "string"}
            }
        },
        "handler.messageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "handler.readinessResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "dependencies": {"type": "object", "additionalProperties": {"$ref": "#/definitions/handler.dependencyStatus"}}
            }
        },
        "handler.recommendationResponse": {
            "type": "object",
            "properties": {
                "user_id": {"type": "string"},
                "recommendations": {"type": "string"}
            }
        },
        "handler.userSummary": {
            "type": "object",
            "properties": {
                "user_id": {"type": "string"},
                "name": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Experience Recommendation API",
	Description:      "Serves members, experiences and provider-generated experience recommendations.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
