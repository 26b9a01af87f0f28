// Package docs registers the OpenAPI document served under /api/docs.
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
        "/": {"get": {"tags": ["Health"], "summary": "Ping", "responses": {"200": {"description": "OK"}}}},
        "/healthz": {"get": {"tags": ["Health"], "summary": "Readiness", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}},
        "/auth/signup": {"post": {"tags": ["Auth"], "summary": "Sign up", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/models.AuthRequest"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/models.AuthResponse"}}, "409": {"description": "Conflict"}}}},
        "/auth/signin": {"post": {"tags": ["Auth"], "summary": "Sign in", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/models.AuthRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AuthResponse"}}, "401": {"description": "Unauthorized"}}}},
        "/auth/google": {"post": {"tags": ["Auth"], "summary": "Sign in with Google", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AuthResponse"}}, "401": {"description": "Unauthorized"}}}},
        "/auth/verify": {"get": {"tags": ["Auth"], "summary": "Verify email", "parameters": [{"in": "query", "name": "token", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}}},
        "/auth/forget-password": {"post": {"tags": ["Auth"], "summary": "Request a password reset code", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/auth/reset-password/verify": {"post": {"tags": ["Auth"], "summary": "Check a password reset code", "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}}},
        "/auth/reset-password": {"post": {"tags": ["Auth"], "summary": "Reset password with a code", "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}}},
        "/auth/change-password": {"post": {"security": [{"BearerAuth": []}], "tags": ["Auth"], "summary": "Change password", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/auth/me": {"get": {"security": [{"BearerAuth": []}], "tags": ["Auth"], "summary": "Current user", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/track": {
            "get": {"tags": ["Track"], "summary": "List tracks", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Track"], "summary": "Generate track", "responses": {"200": {"description": "OK"}, "502": {"description": "Bad Gateway"}}}
        },
        "/track/{trackId}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Track"], "summary": "Get track", "parameters": [{"in": "path", "name": "trackId", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Track"], "summary": "Delete generated track", "parameters": [{"in": "path", "name": "trackId", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/track/{trackId}/image": {"post": {"security": [{"BearerAuth": []}], "consumes": ["multipart/form-data"], "tags": ["Track"], "summary": "Update track image", "parameters": [{"in": "path", "name": "trackId", "type": "string", "required": true}, {"in": "formData", "name": "program_image", "type": "file", "required": true}], "responses": {"200": {"description": "OK"}, "415": {"description": "Unsupported Media Type"}}}},
        "/user/library": {"get": {"security": [{"BearerAuth": []}], "tags": ["User"], "summary": "Library", "responses": {"200": {"description": "OK"}}}},
        "/user/favorite": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["User"], "summary": "Favorites", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["User"], "summary": "Toggle favorite", "responses": {"200": {"description": "Removed"}, "201": {"description": "Added"}, "404": {"description": "Not Found"}}}
        },
        "/user/duration": {"post": {"security": [{"BearerAuth": []}], "tags": ["User"], "summary": "Set exercise duration", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/user/image": {"post": {"security": [{"BearerAuth": []}], "consumes": ["multipart/form-data"], "tags": ["User"], "summary": "Upload profile image", "parameters": [{"in": "formData", "name": "image", "type": "file", "required": true}], "responses": {"200": {"description": "OK"}, "415": {"description": "Unsupported Media Type"}}}},
        "/process": {"get": {"security": [{"BearerAuth": []}], "tags": ["Process"], "summary": "List processed music", "responses": {"200": {"description": "OK"}}}},
        "/process/youtube": {"post": {"security": [{"BearerAuth": []}], "tags": ["Process"], "summary": "Process music from YouTube", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "502": {"description": "Bad Gateway"}}}},
        "/process/file": {"post": {"security": [{"BearerAuth": []}], "consumes": ["multipart/form-data"], "tags": ["Process"], "summary": "Process music from an uploaded file", "parameters": [{"in": "formData", "name": "music", "type": "file", "required": true}], "responses": {"201": {"description": "Created"}, "415": {"description": "Unsupported Media Type"}}}},
        "/process/{processId}": {"delete": {"security": [{"BearerAuth": []}], "tags": ["Process"], "summary": "Delete processed music", "parameters": [{"in": "path", "name": "processId", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}}
    },
    "definitions": {
        "models.AuthRequest": {"type": "object", "required": ["email", "password"], "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "models.AuthResponse": {"type": "object", "properties": {"token": {"type": "string"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Melodistic API",
	Description:      "Workout music backend: accounts, track catalog and music processing.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
