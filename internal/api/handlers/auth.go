package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/staffdesk/staffdesk/config"
	"github.com/staffdesk/staffdesk/internal/api/middleware"
	"github.com/staffdesk/staffdesk/internal/core/session"
	"github.com/staffdesk/staffdesk/internal/upstream"
)

type AuthHandler struct {
	client   *upstream.Client
	sessions *session.Manager
	config   *config.SessionConfig
}

func NewAuthHandler(client *upstream.Client, sessions *session.Manager, cfg *config.SessionConfig) *AuthHandler {
	return &AuthHandler{client: client, sessions: sessions, config: cfg}
}

// Login proxies credentials upstream and wraps the returned bearer token in
// a signed, HTTP-only session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req upstream.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.client.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	signed, err := h.sessions.Issue(req.Email, token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.SetCookie(h.config.CookieName, signed, int(h.config.TTL.Seconds()), "/", "", h.config.Secure, true)
	c.JSON(http.StatusOK, gin.H{"email": req.Email})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(h.config.CookieName, "", -1, "/", "", h.config.Secure, true)
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"email": middleware.GetEmail(c)})
}
