package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	sessiondomain "github.com/kerbside/kerbside/internal/session/domain"
)

const (
	msgSessionNotFound = "Session not found"
	msgRouteNotFound   = "Route not found"
	msgInternalError   = "Internal server error"
	msgTooManyRequests = "Too many requests"
)

// AbortWithError maps domain errors onto the fixed response envelopes. The
// internal-error envelope intentionally carries the error message; the client
// contract exposes it.
func AbortWithError(c *gin.Context, err error) {
	if errors.Is(err, sessiondomain.ErrNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": msgSessionNotFound,
		})
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": msgInternalError,
		"error":   err.Error(),
	})
}
