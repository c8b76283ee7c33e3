package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeForbidden     = "FORBIDDEN"
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeInternalError = "INTERNAL_ERROR"
	ErrCodeUnavailable   = "SERVICE_UNAVAILABLE"
)

// APIError is the standard error response body. The message is what the
// presentation layer surfaces to the user verbatim.
type APIError struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func respond(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, APIError{Code: code, Error: message})
}

// BadRequest sends a 400 response with the first violated rule's message.
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	respond(c, http.StatusBadRequest, ErrCodeInvalidInput, message)
}

// Unauthorized sends a 401 response.
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Unauthorized"
	}
	respond(c, http.StatusUnauthorized, ErrCodeUnauthorized, message)
}

// Forbidden sends a 403 response.
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	respond(c, http.StatusForbidden, ErrCodeForbidden, message)
}

// NotFound sends a 404 response.
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	respond(c, http.StatusNotFound, ErrCodeNotFound, message)
}

// InternalError sends a 500 response with a generic message. Details belong
// in the server log, never in the response.
func InternalError(c *gin.Context) {
	respond(c, http.StatusInternalServerError, ErrCodeInternalError, "An error occurred")
}

// ServiceUnavailable sends a 503 response.
func ServiceUnavailable(c *gin.Context, message string) {
	if message == "" {
		message = "Service temporarily unavailable"
	}
	respond(c, http.StatusServiceUnavailable, ErrCodeUnavailable, message)
}
