package httpx_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/securevoice/securevoice/pkg/httpx"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func fromIP(ip string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = ip + ":12345"
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIPKeyExtractor(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"remote addr", nil, "192.168.1.1"},
		{"x-forwarded-for first hop", map[string]string{"X-Forwarded-For": "203.0.113.1, 192.168.1.1"}, "203.0.113.1"},
		{"x-real-ip", map[string]string{"X-Real-IP": "203.0.113.2"}, "203.0.113.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := fromIP("192.168.1.1")
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			require.Equal(t, tt.want, httpx.IPKeyExtractor(req))
		})
	}
}

func TestJSONFieldKeyExtractor(t *testing.T) {
	t.Run("reads field and restores body", func(t *testing.T) {
		body := `{"phone":" 01712345678 ","otp":"123456"}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

		require.Equal(t, "01712345678", httpx.JSONFieldKeyExtractor("phone")(req))

		rest, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		require.JSONEq(t, body, string(rest))
	})

	t.Run("non string or missing field", func(t *testing.T) {
		for _, body := range []string{`{"phone":123}`, `{}`, `not json`, ``} {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
			require.Empty(t, httpx.JSONFieldKeyExtractor("phone")(req), body)
		}
	})

	t.Run("normalises case", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"Alice"}`))
		require.Equal(t, "alice", httpx.JSONFieldKeyExtractor("username")(req))
	})
}

func TestCompositeKeyExtractor(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"alice"}`))
	req.RemoteAddr = "192.168.1.1:12345"

	extract := httpx.CompositeKeyExtractor(":", httpx.IPKeyExtractor, httpx.JSONFieldKeyExtractor("username"))
	require.Equal(t, "192.168.1.1:alice", extract(req))

	req = fromIP("192.168.1.1")
	require.Equal(t, "192.168.1.1", extract(req), "empty parts are skipped")
}

func TestSubjectKeyExtractor(t *testing.T) {
	req := fromIP("10.0.0.1")
	require.Empty(t, httpx.SubjectKeyExtractor(req))

	req = req.WithContext(httpx.WithSubject(req.Context(), "admin:01HX"))
	require.Equal(t, "admin:01HX", httpx.SubjectKeyExtractor(req))
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("blocks requests over limit", func(t *testing.T) {
		h := httpx.RateLimitMiddleware(httpx.RateLimitConfig{
			RequestsPerWindow: 3, Window: time.Minute, Burst: 3,
		}, httpx.IPKeyExtractor)(okHandler)

		for i := range 3 {
			require.Equal(t, http.StatusOK, serve(h, fromIP("192.168.1.1")).Code, "request %d", i+1)
		}

		rec := serve(h, fromIP("192.168.1.1"))
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
		require.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
		require.Equal(t, "1m0s", rec.Header().Get("X-RateLimit-Window"))

		var env httpx.Envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		require.False(t, env.Success)
		require.Contains(t, env.Message, "Too many requests")

		require.Equal(t, http.StatusOK, serve(h, fromIP("192.168.1.2")).Code, "other keys are independent")
	})

	t.Run("allows request when key extractor returns empty", func(t *testing.T) {
		h := httpx.RateLimitMiddleware(httpx.RateLimitConfig{
			RequestsPerWindow: 1, Window: time.Minute, Burst: 1,
		}, func(*http.Request) string { return "" })(okHandler)

		for range 3 {
			require.Equal(t, http.StatusOK, serve(h, fromIP("192.168.1.1")).Code)
		}
	})
}

func TestRateLimitByIPAndJSONField(t *testing.T) {
	h := httpx.RateLimitByIPAndJSONField(httpx.RateLimitConfig{
		RequestsPerWindow: 2, Window: time.Minute, Burst: 2,
	}, "username")(okHandler)

	post := func(username string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/adminLogin",
			strings.NewReader(fmt.Sprintf(`{"username":%q,"password":"x"}`, username)))
		req.RemoteAddr = "192.168.1.1:12345"
		return req
	}

	require.Equal(t, http.StatusOK, serve(h, post("alice")).Code)
	require.Equal(t, http.StatusOK, serve(h, post("alice")).Code)
	require.Equal(t, http.StatusTooManyRequests, serve(h, post("alice")).Code)
	require.Equal(t, http.StatusOK, serve(h, post("bob")).Code)
}

func TestRateLimitProfiles(t *testing.T) {
	for name, cfg := range map[string]httpx.RateLimitConfig{
		"strict":   httpx.StrictLimit,
		"moderate": httpx.ModerateLimit,
		"lenient":  httpx.LenientLimit,
		"public":   httpx.PublicLimit,
	} {
		require.Positive(t, cfg.RequestsPerWindow, name)
		require.Positive(t, cfg.Window, name)
		require.Positive(t, cfg.Burst, name)
	}

	require.Less(t, httpx.StrictLimit.RequestsPerWindow, httpx.ModerateLimit.RequestsPerWindow)
	require.Less(t, httpx.ModerateLimit.RequestsPerWindow, httpx.LenientLimit.RequestsPerWindow)
	require.Less(t, httpx.LenientLimit.RequestsPerWindow, httpx.PublicLimit.RequestsPerWindow)
}

func TestParseRateLimitFromEnv(t *testing.T) {
	def := httpx.RateLimitConfig{RequestsPerWindow: 10, Window: time.Minute, Burst: 10}

	tests := []struct {
		name string
		env  map[string]string
		want httpx.RateLimitConfig
	}{
		{"no overrides", nil, def},
		{
			"all overrides",
			map[string]string{"REQUESTS": "200", "WINDOW_SEC": "30", "BURST": "250"},
			httpx.RateLimitConfig{RequestsPerWindow: 200, Window: 30 * time.Second, Burst: 250},
		},
		{
			"invalid values ignored",
			map[string]string{"REQUESTS": "invalid", "WINDOW_SEC": "-10", "BURST": "0"},
			def,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv("RATELIMIT_TEST_"+k, v)
			}
			require.Equal(t, tt.want, httpx.ParseRateLimitFromEnv("TEST", def))
		})
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	serve(httpx.Chain(okHandler, mw("outer"), mw("inner")), fromIP("127.0.0.1"))
	require.Equal(t, []string{"outer", "inner"}, order)
}

func TestRecover(t *testing.T) {
	h := httpx.Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := serve(h, fromIP("127.0.0.1"))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"success":false,"message":"Server error"}`, rec.Body.String())
}

func BenchmarkRateLimitManyIPs(b *testing.B) {
	h := httpx.RateLimitByIP(httpx.RateLimitConfig{
		RequestsPerWindow: 1000000, Window: time.Minute, Burst: 1000,
	})(okHandler)

	for i := 0; b.Loop(); i++ {
		serve(h, fromIP(fmt.Sprintf("192.168.%d.%d", i%255, (i/255)%255)))
	}
}
