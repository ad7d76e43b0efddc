package response

import (
	"net/http"

	"checkin/dto"

	"github.com/gin-gonic/gin"
)

// Success writes data with 200
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created writes data with 201
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Message writes {message} with 200
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, dto.MessageResponse{Message: message})
}

// ServerError writes {error} with 500. Every failure on the public routes ends here.
func ServerError(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Error: message})
}

// Unavailable writes {error} with 503
func Unavailable(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: message})
}
