package handlers

import (
	"errors"
	"net/http"

	"tintaku/internal/services"
	"tintaku/internal/store"

	"github.com/gin-gonic/gin"
)

// errStatus maps the core error taxonomy to HTTP statuses.
func errStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, services.ErrInvalidImport):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrUploadFailed), errors.Is(err, store.ErrWriteFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// JSONError writes an error payload without crashing the rendering path on
// the client; storage failures surface as a visible fallback state.
func JSONError(c *gin.Context, err error) {
	c.JSON(errStatus(err), gin.H{"error": err.Error()})
}

// BadRequest reports a caller mistake.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
