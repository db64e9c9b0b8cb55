package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/securevoice/securevoice/internal/securevoice/service"
	"github.com/securevoice/securevoice/internal/securevoice/session"
	"github.com/securevoice/securevoice/internal/securevoice/store"
	"github.com/securevoice/securevoice/pkg/httpx"
	"github.com/securevoice/securevoice/pkg/slogx"

	_ "github.com/securevoice/securevoice/api/securevoice" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store     store.Store
	ephemeral Pinger
	sessions  *session.Manager

	RegistrationService  *service.RegistrationService
	UserAuthService      *service.UserAuthService
	AdminApprovalService *service.AdminApprovalService
	AdminAuthService     *service.AdminAuthService
	SuperAdminService    *service.SuperAdminService
	Auditor              *service.Auditor
}

func NewRouter(
	buildVersion string,
	st store.Store,
	ephemeral Pinger,
	sessions *session.Manager,
	allowedOrigins []string,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        st,
		ephemeral:    ephemeral,
		sessions:     sessions,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recover,
		cors.Handler(cors.Options{
			AllowedOrigins:   allowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID", "Retry-After"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
		clientInfo,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerRegistration()
	r.registerUserAuth()
	r.registerAdmin()
	r.registerSuperAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/",
		httpx.Chain(httpSwagger.Handler(),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			SecureVoice Identity API
//	@version		0.1.0
//	@description	Citizen registration, district admin approval and OTP gated admin login for the SecureVoice crime reporting platform.
//	@description
//	@description	Every response is a JSON object with a boolean "success" and a human readable "message".
//
//	@host						localhost:3000
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						securevoice_session
//	@description				Session cookie issued on successful login or signup.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerRegistration() {
	h := &RegistrationHandler{
		RegistrationService: r.RegistrationService,
		Sessions:            r.sessions,
	}

	// Code issuing is limited per IP and per identifier to stop OTP flooding
	r.Mux.Handle("POST /api/auth/send-otp",
		httpx.Chain(http.HandlerFunc(h.HandleSendOTP),
			httpx.RateLimitByIP(httpx.ModerateLimit),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "phone"),
		),
	)

	// Guessing a 6 digit code is the obvious attack here
	r.Mux.Handle("POST /api/auth/verify-otp",
		httpx.Chain(http.HandlerFunc(h.HandleVerifyOTP),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "sessionId"),
		),
	)

	r.Mux.Handle("POST /api/auth/verify-nid",
		httpx.Chain(http.HandlerFunc(h.HandleVerifyNID),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/save-face",
		httpx.Chain(http.HandlerFunc(h.HandleSaveFace),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/save-address",
		httpx.Chain(http.HandlerFunc(h.HandleSaveAddress),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /api/signup",
		httpx.Chain(http.HandlerFunc(h.HandleSignup),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /api/auth/registration-status/{sessionId}",
		httpx.Chain(http.HandlerFunc(h.HandleStatus),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerUserAuth() {
	h := &UserAuthHandler{
		UserAuthService: r.UserAuthService,
		Sessions:        r.sessions,
	}

	// POST /api/login - strict rate limit by IP + username to prevent brute force
	r.Mux.Handle("POST /api/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "username"),
		),
	)
	r.Mux.Handle("POST /api/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /api/check-session",
		httpx.Chain(http.HandlerFunc(h.HandleCheckSession),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	requireUser := r.sessions.Require(session.KindUser)
	r.Mux.Handle("GET /api/profile",
		httpx.Chain(http.HandlerFunc(h.HandleProfile),
			requireUser,
			httpx.RateLimitBySubject(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /api/update-profile",
		httpx.Chain(http.HandlerFunc(h.HandleUpdateProfile),
			requireUser,
			httpx.RateLimitBySubject(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{
		AdminApprovalService: r.AdminApprovalService,
		AdminAuthService:     r.AdminAuthService,
		Sessions:             r.sessions,
	}

	r.Mux.Handle("POST /admin-registration-request",
		httpx.Chain(http.HandlerFunc(h.HandleRegistrationRequest),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// Both login phases are limited by IP + username
	r.Mux.Handle("POST /adminLogin",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "username"),
		),
	)
	r.Mux.Handle("POST /admin-verify-otp",
		httpx.Chain(http.HandlerFunc(h.HandleVerifyOTP),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "username"),
		),
	)

	r.Mux.Handle("POST /setup-admin-password",
		httpx.Chain(http.HandlerFunc(h.HandleSetupPassword),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("GET /verify-admin-email",
		httpx.Chain(http.HandlerFunc(h.HandleVerifyEmail),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	requireAdmin := r.sessions.Require(session.KindAdmin)
	r.Mux.Handle("POST /admin-logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			requireAdmin,
			httpx.RateLimitBySubject(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /admin-check-auth",
		httpx.Chain(http.HandlerFunc(h.HandleCheckAuth),
			requireAdmin,
			httpx.RateLimitBySubject(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSuperAdmin() {
	h := &SuperAdminHandler{
		SuperAdminService:    r.SuperAdminService,
		AdminApprovalService: r.AdminApprovalService,
		Auditor:              r.Auditor,
		Sessions:             r.sessions,
	}

	r.Mux.Handle("POST /super-admin-login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "username"),
		),
	)
	r.Mux.Handle("GET /super-admin-check-auth",
		httpx.Chain(http.HandlerFunc(h.HandleCheckAuth),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	secured := func(h http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
		return httpx.Chain(h,
			r.sessions.Require(session.KindSuperAdmin),
			httpx.RateLimitBySubject(limit),
		)
	}

	r.Mux.Handle("POST /super-admin-logout", secured(h.HandleLogout, httpx.LenientLimit))

	r.Mux.Handle("POST /super-admin-approve", secured(h.HandleApprove, httpx.ModerateLimit))
	r.Mux.Handle("POST /super-admin-reject", secured(h.HandleReject, httpx.ModerateLimit))
	r.Mux.Handle("POST /super-admin-suspend", secured(h.HandleSuspend, httpx.ModerateLimit))
	r.Mux.Handle("POST /super-admin-reactivate", secured(h.HandleReactivate, httpx.ModerateLimit))

	r.Mux.Handle("GET /super-admin/pending-requests", secured(h.HandlePendingRequests, httpx.LenientLimit))
	r.Mux.Handle("GET /super-admin/all-requests", secured(h.HandleAllRequests, httpx.LenientLimit))
	r.Mux.Handle("GET /super-admin/audit-logs", secured(h.HandleAuditLogs, httpx.LenientLimit))
	r.Mux.Handle("GET /super-admin/stats", secured(h.HandleStats, httpx.LenientLimit))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.ephemeral),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
