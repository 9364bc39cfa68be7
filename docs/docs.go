// Package docs holds the Swagger 2.0 document served at /swagger, kept in
// step with the godoc annotations on the controllers.
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
        "/posts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "List approved posts",
                "parameters": [
                    {"type": "integer", "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size (max 50)", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "data: []models.PostListItem, pagination: {page, limit, total}", "schema": {"type": "object"}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Submit a post draft for email verification",
                "parameters": [
                    {"description": "Draft", "name": "post", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.SubmitPostRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/posts/verify": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Confirm a draft with the emailed code",
                "parameters": [
                    {"description": "Email and code", "name": "verification", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.VerifyPostRequest"}}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/posts/{slug}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Get an approved post with its approved comments",
                "parameters": [
                    {"type": "string", "description": "Post slug", "name": "slug", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/comments/{postId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "List approved comments of a post",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "postId", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "Leave a comment for moderation",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "postId", "in": "path", "required": true},
                    {"description": "Comment", "name": "comment", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.CreateCommentRequest"}}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/newsletter": {
            "post": {
                "consumes": ["application/json"],
                "tags": ["newsletter"],
                "summary": "Subscribe an email to the newsletter",
                "responses": {"200": {"description": "OK"}, "201": {"description": "Created"}}
            },
            "delete": {
                "consumes": ["application/json"],
                "tags": ["newsletter"],
                "summary": "Unsubscribe an email from the newsletter",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}
            }
        },
        "/upload": {
            "post": {
                "consumes": ["multipart/form-data"],
                "tags": ["upload"],
                "summary": "Upload a post image",
                "parameters": [
                    {"type": "file", "description": "JPEG, PNG, GIF or WEBP up to 3MB", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "429": {"description": "Too Many Requests"}}
            }
        },
        "/admin/posts/{id}": {
            "patch": {
                "security": [{"SessionAuth": []}],
                "consumes": ["application/json"],
                "tags": ["admin"],
                "summary": "Set a post's moderation status",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true},
                    {"description": "Status", "name": "status", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.UpdateStatusRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}}
            }
        }
    },
    "definitions": {
        "models.SubmitPostRequest": {
            "type": "object",
            "required": ["authorEmail", "authorName", "content", "title"],
            "properties": {
                "title": {"type": "string", "maxLength": 200},
                "content": {"type": "string"},
                "imageUrl": {"type": "string"},
                "authorName": {"type": "string", "maxLength": 120},
                "authorEmail": {"type": "string"},
                "authorPhone": {"type": "string", "maxLength": 32}
            }
        },
        "models.VerifyPostRequest": {
            "type": "object",
            "required": ["code", "email"],
            "properties": {
                "email": {"type": "string"},
                "code": {"type": "string"}
            }
        },
        "models.CreateCommentRequest": {
            "type": "object",
            "required": ["content"],
            "properties": {
                "content": {"type": "string", "maxLength": 1000}
            }
        },
        "models.UpdateStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["PENDING", "APPROVED", "REJECTED"]}
            }
        }
    },
    "securityDefinitions": {
        "SessionAuth": {
            "description": "\"Bearer\" followed by the session token. The admin_session cookie is accepted as well.",
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
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Architecture Blog API",
	Description:      "Backend for an architecture firm's blog: moderated guest posts, comments, newsletter and image uploads.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
