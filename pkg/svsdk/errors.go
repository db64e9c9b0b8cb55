package svsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a failure response from the service.
type APIError struct {
	// StatusCode is the HTTP status code of the response
	StatusCode int

	// Message is the human-readable message from the response envelope
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an *APIError with the given status code.
func IsStatus(err error, statusCode int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == statusCode
}

// parseErrorResponse turns a non-success response into an *APIError.
// Plain text bodies, such as the ones written by http.Error for rate
// limiting, are used as the message.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if text := strings.TrimSpace(string(body)); text != "" && !strings.HasPrefix(text, "{") {
		return &APIError{StatusCode: resp.StatusCode, Message: text}
	}

	return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
}
