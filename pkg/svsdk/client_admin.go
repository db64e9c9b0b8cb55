package svsdk

import (
	"context"
	"net/http"
	"net/url"
)

// RequestAdminAccess submits a district admin registration request.
func (c *Client) RequestAdminAccess(ctx context.Context, req AdminRegistrationRequest) error {
	return c.call(ctx, http.MethodPost, "/admin-registration-request", nil, req, nil, http.StatusCreated)
}

// AdminLogin checks the admin's password and account state. The service
// emails a one-time code to complete the login with AdminVerifyOTP.
func (c *Client) AdminLogin(ctx context.Context, username, password string) (*AdminLoginResponse, error) {
	var resp AdminLoginResponse
	if err := c.call(ctx, http.MethodPost, "/adminLogin", nil, credentials{username, password}, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AdminVerifyOTP consumes the emailed code and stores the admin session
// cookie.
func (c *Client) AdminVerifyOTP(ctx context.Context, username, otp string) (*AdminSessionResponse, error) {
	body := map[string]string{"username": username, "otp": otp}

	var resp AdminSessionResponse
	if err := c.call(ctx, http.MethodPost, "/admin-verify-otp", nil, body, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetupAdminPassword sets the admin password using the token from the
// approval email.
func (c *Client) SetupAdminPassword(ctx context.Context, token, password string) error {
	body := map[string]string{"token": token, "password": password, "confirmPassword": password}
	return c.call(ctx, http.MethodPost, "/setup-admin-password", nil, body, nil, http.StatusOK)
}

// VerifyAdminEmail consumes the email verification token from the approval
// email.
func (c *Client) VerifyAdminEmail(ctx context.Context, token string) error {
	return c.call(ctx, http.MethodGet, "/verify-admin-email", url.Values{"token": {token}}, nil, nil, http.StatusOK)
}

// AdminLogout ends the admin session.
func (c *Client) AdminLogout(ctx context.Context) error {
	return c.call(ctx, http.MethodPost, "/admin-logout", nil, nil, nil, http.StatusOK)
}

// AdminCheckAuth returns the logged in admin. Without an admin session it
// returns a 401 *APIError.
func (c *Client) AdminCheckAuth(ctx context.Context) (*AdminIdentity, error) {
	var resp AdminSessionResponse
	if err := c.call(ctx, http.MethodGet, "/admin-check-auth", nil, nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp.Admin, nil
}
