package svsdk

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// Client is a client for the SecureVoice identity service. The cookie jar in
// HTTPClient holds the session cookie between calls.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// UserAgent is sent with every request and shows up in the audit log.
	UserAgent string
}

// NewClient creates a client with an empty cookie jar.
func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
		},
		UserAgent: "svsdk",
	}, nil
}
