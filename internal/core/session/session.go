package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/staffdesk/staffdesk/config"
)

var ErrUnauthorized = errors.New("unauthorized")

// Claims is the session payload: the upstream bearer token wrapped in a
// locally signed JWT so the cookie is tamper-evident. The gateway stores no
// credentials of its own.
type Claims struct {
	Email         string `json:"email"`
	UpstreamToken string `json:"upstream_token"`
	jwt.RegisteredClaims
}

type Manager struct {
	config *config.SessionConfig
}

func NewManager(cfg *config.SessionConfig) *Manager {
	return &Manager{config: cfg}
}

// Issue signs a new session token for a successful upstream login.
func (m *Manager) Issue(email, upstreamToken string) (string, error) {
	claims := Claims{
		Email:         email,
		UpstreamToken: upstreamToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.config.TTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.config.Secret))
}

func (m *Manager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.config.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrUnauthorized
}
