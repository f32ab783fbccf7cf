package apiclient

import (
	"context"
	"fmt"

	"github.com/nguyentranbao-ct/storefront-core/internal/models"
)

// CheckAuth asks the backend whether the session cookie still maps to an
// authenticated user.
func (c *Client) CheckAuth(ctx context.Context) (*models.AuthCheck, error) {
	var check models.AuthCheck
	if err := c.get(ctx, "/auth/check/", nil, &check); err != nil {
		return nil, fmt.Errorf("check auth: %w", err)
	}
	return &check, nil
}

func (c *Client) Login(ctx context.Context, credentials models.Credentials) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.post(ctx, "/auth/login/", credentials, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.post(ctx, "/auth/register/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/auth/logout/", nil, nil)
}

func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.get(ctx, "/profile/", nil, &user); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &user, nil
}

// UpdateProfile sends a partial profile update and returns the backend's
// updated representation.
func (c *Client) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error) {
	var user models.User
	if err := c.put(ctx, "/profile/", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
