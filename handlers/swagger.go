package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger serves a small OpenAPI browser for the to-do API.
//   - GET /swagger/index.html  loads the UI bundle pointed at doc.json
//   - GET /swagger/doc.json    returns the OpenAPI document
func RegisterSwagger(r *gin.Engine) {
	r.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	r.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>to-do API Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "to-do API", "version": "v0.1.0" },
  "components": {
    "parameters": {
      "username": { "name": "username", "in": "query", "schema": { "type": "string" } },
      "id": { "name": "id", "in": "path", "required": true, "schema": { "type": "integer" } }
    },
    "schemas": {
      "Todo": { "type": "object", "properties": { "id": {"type":"integer"}, "title": {"type":"string","maxLength":200}, "description": {"type":"string"}, "completed": {"type":"boolean"}, "created_at": {"type":"string","format":"date-time"}, "user": {"type":"string","maxLength":100} } },
      "Feedback": { "type": "object", "properties": { "id": {"type":"integer"}, "message": {"type":"string"}, "created_at": {"type":"string","format":"date-time"}, "admin_reply": {"type":"string","nullable":true}, "user": {"type":"string","maxLength":100} } },
      "Summary": { "type": "object", "properties": { "username": {"type":"string"}, "total_todos": {"type":"integer"}, "completed_todos": {"type":"integer"}, "last_activity": {"type":"string","format":"date-time","nullable":true} } }
    }
  },
  "paths": {
    "/todos": {
      "get": { "summary": "List the caller's todos, newest first", "parameters": [{"$ref":"#/components/parameters/username"}], "responses": { "200": { "description": "todo list" } } },
      "post": { "summary": "Create a todo", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"title":{"type":"string"},"description":{"type":"string"},"user":{"type":"string"}}}}}}, "responses": { "201": { "description": "created" }, "400": { "description": "validation error" } } }
    },
    "/todos/{id}": {
      "get": { "summary": "Fetch one owned todo", "parameters": [{"$ref":"#/components/parameters/id"},{"$ref":"#/components/parameters/username"}], "responses": { "200": { "description": "todo" }, "404": { "description": "not owned or missing" } } },
      "patch": { "summary": "Set the completed flag", "parameters": [{"$ref":"#/components/parameters/id"},{"$ref":"#/components/parameters/username"}], "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"completed":{"type":"boolean"}}}}}}, "responses": { "200": { "description": "updated todo" }, "400": { "description": "validation error" }, "404": { "description": "not owned or missing" } } },
      "delete": { "summary": "Delete an owned todo", "parameters": [{"$ref":"#/components/parameters/id"},{"$ref":"#/components/parameters/username"}], "responses": { "204": { "description": "deleted" }, "404": { "description": "not owned or missing" } } }
    },
    "/feedback": {
      "get": { "summary": "List the caller's feedback, newest first", "parameters": [{"$ref":"#/components/parameters/username"}], "responses": { "200": { "description": "feedback list" } } },
      "post": { "summary": "Submit feedback", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"message":{"type":"string"},"user":{"type":"string"}}}}}}, "responses": { "201": { "description": "created" }, "400": { "description": "validation error" } } }
    },
    "/feedback/{id}": {
      "get": { "summary": "Fetch one owned feedback entry", "parameters": [{"$ref":"#/components/parameters/id"},{"$ref":"#/components/parameters/username"}], "responses": { "200": { "description": "feedback" }, "404": { "description": "not owned or missing" } } }
    },
    "/user-activities": { "get": { "summary": "Per-user todo activity summaries", "responses": { "200": { "description": "summary list" } } } },
    "/user-details/{username}": { "get": { "summary": "One user's summary with todos and feedback", "parameters": [{"name":"username","in":"path","required":true,"schema":{"type":"string"}}], "responses": { "200": { "description": "user detail" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
