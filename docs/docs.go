// Package docs registers the OpenAPI document served under /api/docs/ and /api/schema/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/posts/": {
            "get": {
                "tags": ["posts"],
                "summary": "List posts",
                "parameters": [{"type": "integer", "name": "page", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Invalid page"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["posts"],
                "summary": "Create a post",
                "parameters": [{"name": "post", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.PostRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Validation error"}, "401": {"description": "Unauthenticated"}}
            }
        },
        "/posts/{id}/": {
            "get": {
                "tags": ["posts"],
                "summary": "Get a post",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["posts"],
                "summary": "Replace a post",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "post", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.PostRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Validation error"}, "401": {"description": "Unauthenticated"}, "403": {"description": "Not the author"}, "404": {"description": "Not found"}}
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["posts"],
                "summary": "Update a post",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "post", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.PostRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Validation error"}, "401": {"description": "Unauthenticated"}, "403": {"description": "Not the author"}, "404": {"description": "Not found"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["posts"],
                "summary": "Delete a post and its comments",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthenticated"}, "403": {"description": "Not the author"}, "404": {"description": "Not found"}}
            }
        },
        "/posts/{id}/publish/": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["posts"],
                "summary": "Publish a post",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthenticated"}, "403": {"description": "Not the author"}, "404": {"description": "Not found"}}
            }
        },
        "/posts/{id}/unpublish/": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["posts"],
                "summary": "Unpublish a post",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthenticated"}, "403": {"description": "Not the author"}, "404": {"description": "Not found"}}
            }
        },
        "/comments/": {
            "get": {
                "tags": ["comments"],
                "summary": "List comments, newest first",
                "parameters": [
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "post", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["comments"],
                "summary": "Create a comment",
                "parameters": [{"name": "comment", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.CommentRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Validation error"}, "401": {"description": "Unauthenticated"}}
            }
        },
        "/comments/{id}/": {
            "get": {
                "tags": ["comments"],
                "summary": "Get a comment",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["comments"],
                "summary": "Replace a comment",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "comment", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.CommentRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Not the author"}}
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["comments"],
                "summary": "Update a comment",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "comment", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.CommentRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Not the author"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["comments"],
                "summary": "Delete a comment",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "403": {"description": "Not the author"}}
            }
        },
        "/users/": {
            "get": {
                "tags": ["users"],
                "summary": "List users",
                "parameters": [{"type": "integer", "name": "page", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/users/{id}/": {
            "get": {
                "tags": ["users"],
                "summary": "Get a user",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        }
    },
    "definitions": {
        "models.PostRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string", "maxLength": 200},
                "content": {"type": "string"},
                "published": {"type": "boolean"}
            }
        },
        "models.CommentRequest": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "post": {"type": "integer"}
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
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "MyApp API",
	Description:      "Blog posts, comments and users, plus operational endpoints.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
