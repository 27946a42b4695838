// Package docs holds the OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o docs
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
        "/api/projects": {
            "get": {
                "summary": "List projects",
                "parameters": [
                    {"type": "string", "description": "featured or all", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.projectsResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "summary": "Create a project or count a view",
                "parameters": [
                    {"description": "action: create or increment_views", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.projectActionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.createProjectResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/analytics": {
            "get": {
                "summary": "Analytics queries",
                "parameters": [
                    {"type": "string", "description": "popular-pages", "name": "type", "in": "query", "required": true},
                    {"type": "integer", "description": "maximum entries, default 10", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.popularPagesResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "summary": "Record a page view",
                "parameters": [
                    {"description": "event must be page_view", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.analyticsEventRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.recordPageViewResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/comments": {
            "get": {
                "summary": "List comments of a post",
                "parameters": [
                    {"type": "string", "description": "post slug", "name": "postSlug", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.commentsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "summary": "Submit a comment",
                "parameters": [
                    {"description": "comment", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.CommentInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.createCommentResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/health": {
            "get": {
                "summary": "Composite store health",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.healthResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/content/{name}": {
            "get": {
                "summary": "Static content",
                "parameters": [
                    {"type": "string", "description": "profile, projects, timeline, skills or certifications", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        }
    },
    "definitions": {
        "handler.errorPayload": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.projectsResponse": {
            "type": "object",
            "properties": {"projects": {"type": "array", "items": {"$ref": "#/definitions/model.Project"}}}
        },
        "handler.projectActionRequest": {
            "type": "object",
            "properties": {
                "action": {"type": "string", "enum": ["create", "increment_views"]},
                "slug": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "technologies": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string", "enum": ["completed", "in-progress", "planned"]},
                "year": {"type": "integer"},
                "featured": {"type": "boolean"},
                "githubUrl": {"type": "string"},
                "liveUrl": {"type": "string"}
            }
        },
        "handler.createProjectResponse": {
            "type": "object",
            "properties": {"project": {"$ref": "#/definitions/model.Project"}, "message": {"type": "string"}}
        },
        "handler.analyticsEventRequest": {
            "type": "object",
            "properties": {"event": {"type": "string"}, "path": {"type": "string"}}
        },
        "handler.popularPagesResponse": {
            "type": "object",
            "properties": {"popularPages": {"type": "array", "items": {"$ref": "#/definitions/model.PageCount"}}}
        },
        "handler.recordPageViewResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}, "result": {"$ref": "#/definitions/model.PageView"}}
        },
        "handler.commentsResponse": {
            "type": "object",
            "properties": {"comments": {"type": "array", "items": {"$ref": "#/definitions/model.Comment"}}}
        },
        "handler.createCommentResponse": {
            "type": "object",
            "properties": {"comment": {"$ref": "#/definitions/model.Comment"}, "message": {"type": "string"}}
        },
        "handler.healthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["ok", "degraded", "down"]},
                "timestamp": {"type": "string"},
                "databases": {"type": "object", "additionalProperties": {"type": "boolean"}},
                "summary": {
                    "type": "object",
                    "properties": {"healthy": {"type": "integer"}, "unhealthy": {"type": "integer"}, "total": {"type": "integer"}}
                }
            }
        },
        "model.Project": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "slug": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "technologies": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string"},
                "year": {"type": "integer"},
                "featured": {"type": "boolean"},
                "githubUrl": {"type": "string"},
                "liveUrl": {"type": "string"},
                "viewCount": {"type": "integer"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "model.PageView": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "path": {"type": "string"},
                "userAgent": {"type": "string"},
                "ipAddress": {"type": "string"},
                "viewedAt": {"type": "string"}
            }
        },
        "model.PageCount": {
            "type": "object",
            "properties": {"path": {"type": "string"}, "views": {"type": "integer"}}
        },
        "model.CommentInput": {
            "type": "object",
            "properties": {
                "postSlug": {"type": "string"},
                "authorName": {"type": "string"},
                "authorEmail": {"type": "string"},
                "commentText": {"type": "string"},
                "parentId": {"type": "integer"}
            }
        },
        "model.Comment": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "postSlug": {"type": "string"},
                "authorName": {"type": "string"},
                "authorEmail": {"type": "string"},
                "commentText": {"type": "string"},
                "parentId": {"type": "integer"},
                "isApproved": {"type": "boolean"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"},
                "replies": {"type": "array", "items": {"$ref": "#/definitions/model.Comment"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Portfolio API",
	Description:      "Projects, analytics, comments and static content for the portfolio site.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
