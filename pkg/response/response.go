// Package response defines the JSON envelope shared by every API endpoint:
// a human-readable message, optional resource-shaped data, and an optional
// per-field error tree for validation failures.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the wire shape of every response body.
type Envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// OK writes a 200 with the given message and optional data.
func OK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Envelope{Message: message, Data: data})
}

// Created writes a 201 with the created resource.
func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Envelope{Message: message, Data: data})
}

// BadRequest writes a 400. errors, when non-nil, carries the field-level
// error tree collected by validation.
func BadRequest(c *gin.Context, message string, errors any) {
	c.JSON(http.StatusBadRequest, Envelope{Message: message, Errors: errors})
}

// NotFound writes a 404 with a short message.
func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, Envelope{Message: message})
}

// ServerError writes a 500 with a generic message. Details never reach the
// client; callers log them instead.
func ServerError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Envelope{Message: "Internal server error"})
}
