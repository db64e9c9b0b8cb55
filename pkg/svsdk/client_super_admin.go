package svsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// SuperAdminLogin authenticates the super-admin. totpCode is only needed
// when an authenticator app is enrolled.
func (c *Client) SuperAdminLogin(ctx context.Context, username, password, totpCode string) (*SuperAdminSessionResponse, error) {
	body := map[string]string{"username": username, "password": password}
	if totpCode != "" {
		body["totpCode"] = totpCode
	}

	var resp SuperAdminSessionResponse
	if err := c.call(ctx, http.MethodPost, "/super-admin-login", nil, body, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SuperAdminLogout ends the super-admin session.
func (c *Client) SuperAdminLogout(ctx context.Context) error {
	return c.call(ctx, http.MethodPost, "/super-admin-logout", nil, nil, nil, http.StatusOK)
}

// SuperAdminCheckAuth reports whether the client holds a super-admin session.
func (c *Client) SuperAdminCheckAuth(ctx context.Context) (bool, error) {
	err := c.call(ctx, http.MethodGet, "/super-admin-check-auth", nil, nil, nil, http.StatusOK)
	if IsStatus(err, http.StatusUnauthorized) {
		return false, nil
	}
	return err == nil, err
}

// ApproveAdmin approves a pending admin request.
func (c *Client) ApproveAdmin(ctx context.Context, username string) error {
	return c.decide(ctx, "/super-admin-approve", username, "")
}

// RejectAdmin rejects a pending admin request. reason is required.
func (c *Client) RejectAdmin(ctx context.Context, username, reason string) error {
	return c.decide(ctx, "/super-admin-reject", username, reason)
}

// SuspendAdmin suspends an approved admin.
func (c *Client) SuspendAdmin(ctx context.Context, username, reason string) error {
	return c.decide(ctx, "/super-admin-suspend", username, reason)
}

// ReactivateAdmin lifts a suspension.
func (c *Client) ReactivateAdmin(ctx context.Context, username string) error {
	return c.decide(ctx, "/super-admin-reactivate", username, "")
}

func (c *Client) decide(ctx context.Context, path, username, reason string) error {
	body := map[string]string{"username": username}
	if reason != "" {
		body["reason"] = reason
	}
	return c.call(ctx, http.MethodPost, path, nil, body, nil, http.StatusOK)
}

// PendingRequests lists pending admin requests, newest first.
func (c *Client) PendingRequests(ctx context.Context) ([]AdminRequest, error) {
	return c.requests(ctx, "/super-admin/pending-requests", nil)
}

// AllRequests lists admin requests, newest first. Empty status or district
// match everything.
func (c *Client) AllRequests(ctx context.Context, status, district string) ([]AdminRequest, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if district != "" {
		q.Set("district", district)
	}
	return c.requests(ctx, "/super-admin/all-requests", q)
}

func (c *Client) requests(ctx context.Context, path string, q url.Values) ([]AdminRequest, error) {
	var resp struct {
		Requests []AdminRequest `json:"requests"`
	}
	if err := c.call(ctx, http.MethodGet, path, q, nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return resp.Requests, nil
}

// AuditLogs queries the audit log, newest first.
func (c *Client) AuditLogs(ctx context.Context, f AuditFilter) ([]AuditEntry, error) {
	q := url.Values{}
	for key, value := range map[string]string{
		"adminUsername": f.AdminUsername,
		"action":        f.Action,
		"startDate":     f.StartDate,
		"endDate":       f.EndDate,
	} {
		if value != "" {
			q.Set(key, value)
		}
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}

	var resp struct {
		Logs []AuditEntry `json:"logs"`
	}
	if err := c.call(ctx, http.MethodGet, "/super-admin/audit-logs", q, nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return resp.Logs, nil
}

// Stats returns the admin population and recent activity.
func (c *Client) Stats(ctx context.Context) (*StatsResponse, error) {
	var resp StatsResponse
	if err := c.call(ctx, http.MethodGet, "/super-admin/stats", nil, nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}
