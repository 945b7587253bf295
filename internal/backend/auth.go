package backend

import (
	"context"
	"net/http"
)

// Login authenticates against the backend and returns the bearer token plus
// the authenticated user.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var auth AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}
