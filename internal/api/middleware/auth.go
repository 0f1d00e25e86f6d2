package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/staffdesk/staffdesk/internal/core/session"
)

const (
	ContextEmail         = "session_email"
	ContextUpstreamToken = "upstream_token"
)

type SessionMiddleware struct {
	sessions   *session.Manager
	cookieName string
}

func NewSessionMiddleware(sessions *session.Manager, cookieName string) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions, cookieName: cookieName}
}

// Authenticate unwraps the session cookie (or an Authorization: Bearer
// header for non-browser callers) and exposes the upstream bearer token to
// handlers.
func (m *SessionMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := m.sessionToken(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
			return
		}

		claims, err := m.sessions.Validate(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}

		c.Set(ContextEmail, claims.Email)
		c.Set(ContextUpstreamToken, claims.UpstreamToken)
		c.Next()
	}
}

func (m *SessionMiddleware) sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(m.cookieName); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

// Helper functions to get context values
func GetUpstreamToken(c *gin.Context) (string, bool) {
	val, exists := c.Get(ContextUpstreamToken)
	if !exists {
		return "", false
	}

	if token, ok := val.(string); ok && token != "" {
		return token, true
	}
	return "", false
}

func GetEmail(c *gin.Context) string {
	val, exists := c.Get(ContextEmail)
	if !exists {
		return ""
	}

	if email, ok := val.(string); ok {
		return email
	}
	return ""
}
