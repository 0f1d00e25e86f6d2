package upstream

import (
	"context"
	"net/http"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges credentials for a backend bearer token. Both the
// {"token": ...} and {"accessToken": ...} reply shapes are accepted.
func (c *Client) Login(ctx context.Context, req LoginRequest) (string, error) {
	var out struct {
		Token       string `json:"token"`
		AccessToken string `json:"accessToken"`
	}
	if err := c.do(ctx, "", http.MethodPost, "/api/auth/login", nil, req, &out); err != nil {
		return "", err
	}
	if out.Token != "" {
		return out.Token, nil
	}
	if out.AccessToken != "" {
		return out.AccessToken, nil
	}
	return "", ErrInvalidResponse
}
