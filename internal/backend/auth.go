package backend

import (
	"context"

	"github.com/pasarikan/storefront/internal/logging"
	"github.com/pasarikan/storefront/internal/models"
)

type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out LoginResult
	if err := c.post(ctx, "/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type RegisterResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (c *Client) Register(ctx context.Context, name, email, password, confirmation string) (*RegisterResult, error) {
	body := map[string]string{
		"name":                  name,
		"email":                 email,
		"password":              password,
		"password_confirmation": confirmation,
	}
	var out RegisterResult
	if err := c.post(ctx, "/register", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CurrentUser(ctx context.Context, opts ...RequestOption) (*models.User, error) {
	var out models.User
	if err := c.get(ctx, "/user", nil, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout is fire-and-forget: failures are logged, never surfaced.
func (c *Client) Logout(ctx context.Context, opts ...RequestOption) {
	if err := c.post(ctx, "/logout", nil, nil, opts...); err != nil {
		logging.FromContext(ctx).Warn("logout ping failed", "error", err)
	}
}
