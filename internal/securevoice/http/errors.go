package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/securevoice/securevoice/internal/securevoice/domain"
	"github.com/securevoice/securevoice/pkg/httpx"
	"github.com/securevoice/securevoice/pkg/slogx"
)

var statusByKind = map[domain.Kind]int{
	domain.KindValidation:        http.StatusBadRequest,
	domain.KindConflict:          http.StatusConflict,
	domain.KindNotFound:          http.StatusNotFound,
	domain.KindExpired:           http.StatusGone,
	domain.KindInvalid:           http.StatusBadRequest,
	domain.KindInvalidToken:      http.StatusBadRequest,
	domain.KindUnauthorized:      http.StatusUnauthorized,
	domain.KindForbidden:         http.StatusForbidden,
	domain.KindDependencyFailure: http.StatusBadGateway,
}

// writeServiceError turns a service error into a failure envelope. Domain
// errors carry their own message; anything else is logged and reported as a
// server error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var de *domain.Error
	if errors.As(err, &de) {
		status, ok := statusByKind[de.Kind]
		if !ok {
			status = http.StatusBadRequest
		}
		httpx.WriteError(w, status, de.Message)
		return
	}

	slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
	httpx.WriteError(w, http.StatusInternalServerError, "Server error")
}

// decodeBody reads the JSON request into dst and writes the failure response
// itself when it cannot.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := httpx.DecodeJSON(r, dst)
	switch {
	case err == nil:
		return true
	case errors.Is(err, httpx.ErrBodyTooLarge):
		httpx.WriteError(w, http.StatusRequestEntityTooLarge, "Request body too large")
	default:
		slogx.FromContext(r.Context()).Warn("failed to parse request", slog.Any("error", err))
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
	}
	return false
}
