package http

import (
	"net/http"

	"github.com/securevoice/securevoice/internal/securevoice/service"
	"github.com/securevoice/securevoice/pkg/httpx"
)

// clientInfo records the caller's address and user agent for audit entries.
func clientInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := service.WithClientInfo(r.Context(), service.ClientInfo{
			IPAddress: httpx.IPKeyExtractor(r),
			UserAgent: r.UserAgent(),
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
