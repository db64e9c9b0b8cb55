package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/securevoice/securevoice/pkg/slogx"
)

// MaxBodyBytes caps JSON request bodies. Registration carries a face image as
// a data URI, hence the generous limit.
const MaxBodyBytes = 10 << 20

// Envelope is the shape shared by every JSON response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ErrBodyTooLarge is returned by DecodeJSON when the body exceeds MaxBodyBytes.
var ErrBodyTooLarge = errors.New("request body too large")

// WriteJSON writes v as JSON with the given status code and no-cache headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a failure envelope.
func WriteError(w http.ResponseWriter, code int, message string) {
	WriteJSON(w, code, Envelope{Success: false, Message: message})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// DecodeJSON decodes the request body into dst. Unknown fields are ignored
// because the browser client posts extra form state.
func DecodeJSON(r *http.Request, dst any) error {
	body := http.MaxBytesReader(nil, r.Body, MaxBodyBytes)
	defer body.Close()

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return ErrBodyTooLarge
		case errors.Is(err, io.EOF):
			return errors.New("request body is empty")
		default:
			return fmt.Errorf("invalid JSON body: %w", err)
		}
	}
	return nil
}

func loggerFrom(r *http.Request) *slog.Logger {
	return slogx.FromContext(r.Context())
}
