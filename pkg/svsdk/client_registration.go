package svsdk

import (
	"context"
	"net/http"
	"net/url"
)

// SendOTP issues a registration code to a phone number or email address.
func (c *Client) SendOTP(ctx context.Context, req SendOTPRequest) (*SendOTPResponse, error) {
	var resp SendOTPResponse
	if err := c.call(ctx, http.MethodPost, "/api/auth/send-otp", nil, req, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyOTP completes step one of registration.
func (c *Client) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*StepResponse, error) {
	return c.step(ctx, "/api/auth/verify-otp", req)
}

// VerifyNID records the national ID. A 409 *APIError means the NID is
// already registered.
func (c *Client) VerifyNID(ctx context.Context, req VerifyNIDRequest) (*StepResponse, error) {
	return c.step(ctx, "/api/auth/verify-nid", req)
}

// SaveFace stores the captured face image, a data URI.
func (c *Client) SaveFace(ctx context.Context, sessionID, faceImage string) (*StepResponse, error) {
	return c.step(ctx, "/api/auth/save-face", map[string]string{
		"faceImage": faceImage,
		"sessionId": sessionID,
	})
}

// SaveAddress records the citizen's address.
func (c *Client) SaveAddress(ctx context.Context, req SaveAddressRequest) (*StepResponse, error) {
	return c.step(ctx, "/api/auth/save-address", req)
}

func (c *Client) step(ctx context.Context, path string, body any) (*StepResponse, error) {
	var resp StepResponse
	if err := c.call(ctx, http.MethodPost, path, nil, body, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Signup creates the citizen account and logs the client in.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*UserResponse, error) {
	var resp UserResponse
	if err := c.call(ctx, http.MethodPost, "/api/signup", nil, req, &resp, http.StatusCreated); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RegistrationStatus returns the progress of an in-flight registration.
func (c *Client) RegistrationStatus(ctx context.Context, sessionID string) (*RegistrationSession, error) {
	var resp struct {
		Session RegistrationSession `json:"session"`
	}
	path := "/api/auth/registration-status/" + url.PathEscape(sessionID)
	if err := c.call(ctx, http.MethodGet, path, nil, nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp.Session, nil
}
