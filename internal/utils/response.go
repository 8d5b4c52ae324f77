package utils

import (
	"github.com/gin-gonic/gin"

	"whisperasr/internal/model"
)

// Success writes a 200 JSON response
func Success(c *gin.Context, data any) {
	c.JSON(200, data)
}

// Error aborts the request with {"detail": msg}
func Error(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, model.ErrorResponse{Detail: msg})
}
