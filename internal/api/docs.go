package api

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"whisperasr/internal/utils"
)

// Credentials guard the documentation routes.
type Credentials struct {
	Username string
	Password string
}

func (c Credentials) match(user, pass string) bool {
	// Unset credentials never match
	if c.Username == "" || c.Password == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(c.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(c.Password)) == 1
	return userOK && passOK
}

// basicAuth rejects requests without the configured credentials
func basicAuth(creds Credentials) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, pass, ok := c.Request.BasicAuth()
		if !ok || !creds.match(user, pass) {
			c.Header("WWW-Authenticate", "Basic")
			utils.Error(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		c.Set(gin.AuthUserKey, user)
		c.Next()
	}
}

func openAPISpec(c *gin.Context) {
	c.JSON(http.StatusOK, openAPIDocument())
}

func swaggerUI(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(fmt.Sprintf(swaggerHTML, APIName+" - Docs", "/openapi.json")))
}

func redoc(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(fmt.Sprintf(redocHTML, APIName+" - ReDoc", "/openapi.json")))
}

// openAPIDocument describes the public routes. Docs routes are left out.
func openAPIDocument() gin.H {
	errResp := gin.H{
		"description": "Error",
		"content": gin.H{
			"application/json": gin.H{"schema": gin.H{"$ref": "#/components/schemas/ErrorResponse"}},
		},
	}

	return gin.H{
		"openapi": "3.1.0",
		"info": gin.H{
			"title":       APIName,
			"version":     APIVersion,
			"description": APIDescription,
		},
		"paths": gin.H{
			"/": gin.H{
				"get": gin.H{
					"summary":   "Api Info",
					"responses": gin.H{"200": gin.H{"description": "Service metadata"}},
				},
			},
			"/health": gin.H{
				"get": gin.H{
					"summary": "Health Check",
					"responses": gin.H{
						"200": gin.H{
							"description": "Process is alive",
							"content": gin.H{
								"application/json": gin.H{"schema": gin.H{"$ref": "#/components/schemas/HealthResponse"}},
							},
						},
					},
				},
			},
			"/transcribe": gin.H{
				"post": gin.H{
					"summary": "Transcribe",
					"requestBody": gin.H{
						"required": true,
						"content": gin.H{
							"application/json": gin.H{"schema": gin.H{"$ref": "#/components/schemas/AudioURL"}},
							"multipart/form-data": gin.H{
								"schema": gin.H{
									"type":     "object",
									"required": []string{"file"},
									"properties": gin.H{
										"file": gin.H{"type": "string", "format": "binary"},
									},
								},
							},
						},
					},
					"responses": gin.H{
						"200": gin.H{
							"description": "Transcript",
							"content": gin.H{
								"application/json": gin.H{"schema": gin.H{"$ref": "#/components/schemas/TranscribeResponse"}},
							},
						},
						"400": errResp,
						"500": errResp,
					},
				},
			},
		},
		"components": gin.H{
			"schemas": gin.H{
				"AudioURL": gin.H{
					"type":       "object",
					"required":   []string{"url"},
					"properties": gin.H{"url": gin.H{"type": "string", "format": "uri"}},
				},
				"TranscribeResponse": gin.H{
					"type":       "object",
					"properties": gin.H{"text": gin.H{"type": "string"}},
				},
				"HealthResponse": gin.H{
					"type": "object",
					"properties": gin.H{
						"status":      gin.H{"type": "string"},
						"api_version": gin.H{"type": "string"},
					},
				},
				"ErrorResponse": gin.H{
					"type":       "object",
					"properties": gin.H{"detail": gin.H{"type": "string"}},
				},
			},
		},
	}
}

const swaggerHTML = `<!DOCTYPE html>
<html>
<head>
<link type="text/css" rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
<title>%s</title>
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
<script>
const ui = SwaggerUIBundle({
    url: '%s',
    dom_id: '#swagger-ui',
    layout: 'BaseLayout',
    deepLinking: true,
    presets: [SwaggerUIBundle.presets.apis, SwaggerUIBundle.SwaggerUIStandalonePreset],
})
</script>
</body>
</html>
`

const redocHTML = `<!DOCTYPE html>
<html>
<head>
<title>%s</title>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>body { margin: 0; padding: 0; }</style>
</head>
<body>
<noscript>ReDoc requires Javascript to function. Please enable it to browse the documentation.</noscript>
<redoc spec-url="%s"></redoc>
<script src="https://cdn.jsdelivr.net/npm/redoc@2/bundles/redoc.standalone.js"></script>
</body>
</html>
`
