// Package apperrors defines the error values services return and the mapping
// from those values to HTTP responses at the route boundary.
package apperrors

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorType string

const (
	TypeValidation ErrorType = "validation_error"
	TypeNotFound   ErrorType = "not_found"
	TypeStorage    ErrorType = "storage_error"
)

type AppError struct {
	Type    ErrorType
	Message string
	Code    int
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

func NewValidationError(message string) *AppError {
	return &AppError{Type: TypeValidation, Message: message, Code: http.StatusBadRequest}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Type: TypeNotFound, Message: message, Code: http.StatusNotFound}
}

func NewStorageError(message string, err error) *AppError {
	return &AppError{Type: TypeStorage, Message: message, Code: http.StatusInternalServerError, Err: err}
}

// Respond writes the JSON error body for err and logs it. Unknown error
// values map to a generic 500 so internals never leak to the client.
func Respond(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Code >= http.StatusInternalServerError {
			slog.Error("request failed", "path", c.Request.URL.Path, "error", err)
		} else {
			slog.Warn("request rejected", "path", c.Request.URL.Path, "error", err)
		}
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}

	slog.Error("unexpected error", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
