package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/darkroompro/devcalc/internal/domain/darkroom"
	apperrors "github.com/darkroompro/devcalc/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// toHTTPError maps a coded domain error to its transport status.
func toHTTPError(err error) *HTTPError {
	code := apperrors.CodeOf(err)
	if code == "" {
		return asHTTPError(err)
	}
	return NewHTTPError(statusForCode(code), code, errMessage(err), err)
}

func statusForCode(code string) int {
	switch {
	case code == darkroom.CodeCombinationNotSupported:
		return http.StatusUnprocessableEntity
	case code == darkroom.CodeDatasetNotLoaded:
		return http.StatusServiceUnavailable
	case code == "storage_error":
		return http.StatusBadGateway
	case strings.HasPrefix(code, "invalid_"):
		return http.StatusBadRequest
	case strings.HasSuffix(code, "_not_found"):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
