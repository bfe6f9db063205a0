package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the person service.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.String(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>rosterd — Swagger</title>
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

// Minimal OpenAPI document describing the persons API.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "rosterd", "version": "v0.1.0" },
  "components": {
    "schemas": {
      "Person": {
        "type": "object",
        "required": ["firstname", "middlename", "lastname", "email"],
        "properties": {
          "id": { "type": "string", "readOnly": true },
          "firstname": { "type": "string" },
          "middlename": { "type": "string" },
          "lastname": { "type": "string" },
          "email": { "type": "string" }
        },
        "additionalProperties": true
      },
      "Envelope": {
        "type": "object",
        "properties": {
          "data": {},
          "success": { "type": "boolean" },
          "message": { "type": "string" }
        }
      }
    }
  },
  "paths": {
    "/api/persons": {
      "get": { "summary": "List all persons", "responses": { "200": { "description": "full collection in insertion order" } } },
      "post": {
        "summary": "Create a person",
        "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Person" } } } },
        "responses": { "200": { "description": "created person" }, "400": { "description": "email already in use" } }
      }
    },
    "/api/persons/{id}": {
      "get": { "summary": "Get a person by id", "parameters": [{ "name": "id", "in": "path", "required": true, "schema": { "type": "string" } }], "responses": { "200": { "description": "person" }, "404": { "description": "person does not exist" } } },
      "put": { "summary": "Update a person (partial merge)", "parameters": [{ "name": "id", "in": "path", "required": true, "schema": { "type": "string" } }], "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Person" } } } }, "responses": { "200": { "description": "updated person" }, "404": { "description": "person does not exist" } } },
      "delete": { "summary": "Delete a person", "parameters": [{ "name": "id", "in": "path", "required": true, "schema": { "type": "string" } }], "responses": { "200": { "description": "deleted person" }, "404": { "description": "person does not exist" } } }
    }
  }
}`
