package svsdk

import (
	"context"
	"net/http"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates a citizen and stores the session cookie.
func (c *Client) Login(ctx context.Context, username, password string) (*UserResponse, error) {
	var resp UserResponse
	if err := c.call(ctx, http.MethodPost, "/api/login", nil, credentials{username, password}, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout ends the citizen session.
func (c *Client) Logout(ctx context.Context) error {
	return c.call(ctx, http.MethodPost, "/api/logout", nil, nil, nil, http.StatusOK)
}

// CheckSession reports whether the client holds a citizen session.
func (c *Client) CheckSession(ctx context.Context) (*CheckSessionResponse, error) {
	var resp CheckSessionResponse
	if err := c.call(ctx, http.MethodGet, "/api/check-session", nil, nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Profile fetches the logged in citizen's own record.
func (c *Client) Profile(ctx context.Context) (*ProfileResponse, error) {
	var resp ProfileResponse
	if err := c.call(ctx, http.MethodGet, "/api/profile", nil, nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateProfile replaces the citizen's name, phone, date of birth and
// address and returns the stored result.
func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*ProfileResponse, error) {
	var resp ProfileResponse
	if err := c.call(ctx, http.MethodPost, "/api/update-profile", nil, req, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}
