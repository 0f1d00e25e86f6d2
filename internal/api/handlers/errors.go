package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/staffdesk/staffdesk/internal/api/middleware"
	"github.com/staffdesk/staffdesk/internal/core/validation"
	"github.com/staffdesk/staffdesk/internal/upstream"
)

// respondError translates errors into HTTP responses: upstream failures
// keep their status and best-effort message, undecodable upstream bodies
// become a 502, validation failures carry field details, anything else
// is a 500.
func respondError(c *gin.Context, err error) {
	var ue *upstream.Error
	if errors.As(err, &ue) {
		c.JSON(ue.StatusCode, gin.H{"error": ue.Message})
		return
	}
	if errors.Is(err, upstream.ErrInvalidResponse) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "invalid server response"})
		return
	}
	if validation.IsValidationError(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": validation.GetValidationErrors(err)})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func upstreamToken(c *gin.Context) (string, bool) {
	token, ok := middleware.GetUpstreamToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return "", false
	}
	return token, true
}
