// Package respond writes the service's JSON responses and error bodies.
package respond

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobmate/dashboard-service/internal/apperr"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload any) {
	JSON(c, http.StatusOK, payload)
}

// Error aborts the request with a standardized error response.
func Error(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

// FromError maps err to a status code by its apperr type. Internal errors
// are attached to the context for the logging middleware and their detail
// is not sent to the client.
func FromError(c *gin.Context, err error) {
	t := apperr.TypeOf(err)
	status := StatusFor(t)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		Error(c, status, string(t), "Unexpected server error")
		return
	}

	msg := err.Error()
	var de *apperr.DomainError
	if errors.As(err, &de) {
		msg = de.Message
	}
	Error(c, status, string(t), msg)
}

// StatusFor returns the HTTP status of an error type.
func StatusFor(t apperr.ErrorType) int {
	switch t {
	case apperr.ErrTypeNotFound:
		return http.StatusNotFound
	case apperr.ErrTypeInvalidInput:
		return http.StatusBadRequest
	case apperr.ErrTypeUnauthorized:
		return http.StatusUnauthorized
	case apperr.ErrTypeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
