package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/staffdesk/staffdesk/internal/upstream"
)

// LookupHandler serves the reference lists that populate dropdowns and
// assignment pickers.
type LookupHandler struct {
	client *upstream.Client
}

func NewLookupHandler(client *upstream.Client) *LookupHandler {
	return &LookupHandler{client: client}
}

func (h *LookupHandler) ListJobs(c *gin.Context) {
	token, ok := upstreamToken(c)
	if !ok {
		return
	}

	jobs, err := h.client.ListJobs(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}

func (h *LookupHandler) ListActiveUsers(c *gin.Context) {
	token, ok := upstreamToken(c)
	if !ok {
		return
	}

	users, err := h.client.ListActiveUsers(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}
