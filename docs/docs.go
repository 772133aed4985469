// Package docs holds the OpenAPI document served under /swagger/.
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
    "definitions": {
        "handlers.CommentView": {
            "properties": {
                "body": {
                    "type": "string"
                },
                "created": {
                    "type": "string"
                },
                "id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                },
                "postId": {
                    "type": "integer"
                }
            },
            "type": "object"
        },
        "handlers.PostView": {
            "properties": {
                "authorId": {
                    "type": "integer"
                },
                "body": {
                    "type": "string"
                },
                "created": {
                    "type": "string"
                },
                "id": {
                    "type": "integer"
                },
                "publish": {
                    "type": "string"
                },
                "slug": {
                    "type": "string"
                },
                "status": {
                    "$ref": "#/definitions/models.Status"
                },
                "statusLabel": {
                    "type": "string"
                },
                "tags": {
                    "items": {
                        "type": "string"
                    },
                    "type": "array"
                },
                "title": {
                    "type": "string"
                },
                "updated": {
                    "type": "string"
                },
                "url": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "helpers.Page": {
            "properties": {
                "count": {
                    "type": "integer"
                },
                "limit": {
                    "type": "integer"
                },
                "offset": {
                    "type": "integer"
                }
            },
            "type": "object"
        },
        "helpers.Response": {
            "properties": {
                "data": {},
                "error": {
                    "type": "string"
                },
                "meta": {
                    "$ref": "#/definitions/helpers.Page"
                }
            },
            "type": "object"
        },
        "models.Status": {
            "enum": [
                "DF",
                "PB"
            ],
            "type": "string",
            "x-enum-varnames": [
                "StatusDraft",
                "StatusPublished"
            ]
        }
    },
    "paths": {
        "/": {
            "get": {
                "parameters": [
                    {
                        "description": "Page number, from 1",
                        "in": "query",
                        "name": "page",
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/helpers.Response"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "items": {
                                                "$ref": "#/definitions/handlers.PostView"
                                            },
                                            "type": "array"
                                        },
                                        "meta": {
                                            "$ref": "#/definitions/helpers.Page"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Invalid page",
                        "schema": {
                            "$ref": "#/definitions/helpers.Response"
                        }
                    }
                },
                "summary": "List published posts, newest first",
                "tags": [
                    "posts"
                ]
            }
        },
        "/posts/{id}/comments/": {
            "get": {
                "parameters": [
                    {
                        "description": "Post ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/helpers.Response"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "items": {
                                                "$ref": "#/definitions/handlers.CommentView"
                                            },
                                            "type": "array"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Invalid post id",
                        "schema": {
                            "$ref": "#/definitions/helpers.Response"
                        }
                    },
                    "404": {
                        "description": "Post not found",
                        "schema": {
                            "$ref": "#/definitions/helpers.Response"
                        }
                    }
                },
                "summary": "List the active comments of a published post, oldest first",
                "tags": [
                    "comments"
                ]
            }
        },
        "/tag/{tag}/": {
            "get": {
                "parameters": [
                    {
                        "description": "Tag slug",
                        "in": "path",
                        "name": "tag",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Page number, from 1",
                        "in": "query",
                        "name": "page",
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/helpers.Response"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "items": {
                                                "$ref": "#/definitions/handlers.PostView"
                                            },
                                            "type": "array"
                                        },
                                        "meta": {
                                            "$ref": "#/definitions/helpers.Page"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Invalid page",
                        "schema": {
                            "$ref": "#/definitions/helpers.Response"
                        }
                    },
                    "404": {
                        "description": "Tag not found",
                        "schema": {
                            "$ref": "#/definitions/helpers.Response"
                        }
                    }
                },
                "summary": "List published posts carrying a tag",
                "tags": [
                    "posts"
                ]
            }
        },
        "/{year}/{month}/{day}/{slug}/": {
            "get": {
                "parameters": [
                    {
                        "description": "Publish year (UTC)",
                        "in": "path",
                        "name": "year",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "description": "Publish month (UTC)",
                        "in": "path",
                        "name": "month",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "description": "Publish day (UTC)",
                        "in": "path",
                        "name": "day",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "description": "Post slug",
                        "in": "path",
                        "name": "slug",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/helpers.Response"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/handlers.PostView"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "Post not found",
                        "schema": {
                            "$ref": "#/definitions/helpers.Response"
                        }
                    }
                },
                "summary": "Get a published post by its canonical URL",
                "tags": [
                    "posts"
                ]
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
	Title:            "Blog API",
	Description:      "Read-only API over published blog posts, tags and comments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
