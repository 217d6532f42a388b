package api

import (
	"context"
	"net/http"

	"github.com/Astreocclu/pool-visualizer/pkg/models"
)

// Login exchanges credentials for a token pair. The caller owns attempt
// counting and lockout; this is the bare wire call.
func (c *Client) Login(ctx context.Context, creds models.LoginRequest) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := c.postJSONNoAuth(ctx, "/auth/login/", creds, &resp, "Login failed"); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	var resp models.RegisterResponse
	if err := c.postJSONNoAuth(ctx, "/auth/register/", req, &resp, "Registration failed"); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Guest bootstraps an anonymous session.
func (c *Client) Guest(ctx context.Context) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := c.postJSONNoAuth(ctx, "/auth/guest/", nil, &resp, "Guest session failed"); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout invalidates the refresh token server-side. Best effort; callers
// clear the local session regardless of the result.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	payload := map[string]string{"refresh_token": refreshToken}

	_, _, err := c.do(ctx, &request{
		method:      http.MethodPost,
		path:        "/auth/logout/",
		body:        mustJSON(payload),
		contentType: "application/json",
		fallback:    "Logout failed",
	})
	return err
}
