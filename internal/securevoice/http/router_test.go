package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"

	"github.com/securevoice/securevoice/internal/securevoice/domain"
	"github.com/securevoice/securevoice/internal/securevoice/ephemeral"
	"github.com/securevoice/securevoice/internal/securevoice/notify"
	"github.com/securevoice/securevoice/internal/securevoice/service"
	"github.com/securevoice/securevoice/internal/securevoice/session"
	"github.com/securevoice/securevoice/internal/securevoice/store/drivers/sqlite"
	"github.com/securevoice/securevoice/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []notify.Message
}

func (m *recordingMailer) Send(_ context.Context, msg notify.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

var (
	passwordLinkRe = regexp.MustCompile(`admin-password-setup\?token=([0-9a-f]{64})`)
	emailLinkRe    = regexp.MustCompile(`verify-admin-email\?token=([0-9a-f]{64})`)
)

func (m *recordingMailer) approvalTokens(t *testing.T) (password, email string) {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.sent) - 1; i >= 0; i-- {
		p := passwordLinkRe.FindStringSubmatch(m.sent[i].HTML)
		e := emailLinkRe.FindStringSubmatch(m.sent[i].HTML)
		if p != nil && e != nil {
			return p[1], e[1]
		}
	}
	t.Fatal("no approval email sent")
	return "", ""
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("connection refused") }

type testServer struct {
	router      *Router
	mailer      *recordingMailer
	superAdmins *service.SuperAdminService
}

func newTestServer(t *testing.T, ephemeralPinger Pinger) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	records := ephemeral.NewMemory[session.Record]()
	if ephemeralPinger == nil {
		ephemeralPinger = records
	}
	signer, err := jwtx.NewHS256(bytes.Repeat([]byte("k"), 32), "securevoice-test")
	require.NoError(t, err)
	mailer := &recordingMailer{}
	dispatcher := notify.NewDispatcher(mailer, "http://frontend.test", "superadmin@crime.gov.bd")
	auditor := &service.Auditor{Store: st}
	adminAuth := &service.AdminAuthService{Store: st, Notifier: dispatcher, Audit: auditor, DevEcho: true}
	sessions := session.NewManager(records, signer, session.Options{Validate: adminAuth.ValidateSession})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter("test", st, ephemeralPinger, sessions, []string{"http://frontend.test"}, logger)
	router.RegistrationService = &service.RegistrationService{
		Store:    st,
		OTPs:     ephemeral.NewMemory[domain.OTPRecord](),
		Sessions: ephemeral.NewMemory[domain.RegistrationSession](),
		Notifier: dispatcher,
		DevEcho:  true,
	}
	router.UserAuthService = &service.UserAuthService{Store: st}
	router.AdminApprovalService = &service.AdminApprovalService{Store: st, Notifier: dispatcher, Audit: auditor}
	router.AdminAuthService = adminAuth
	router.SuperAdminService = &service.SuperAdminService{Store: st, Audit: auditor}
	router.Auditor = auditor
	router.ApplyRoutes()

	return &testServer{router: router, mailer: mailer, superAdmins: router.SuperAdminService}
}

func (s *testServer) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", "router-test")
	for _, c := range cookies {
		if c != nil {
			req.AddCookie(c)
		}
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

func TestCitizenRegistrationOverHTTP(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/api/auth/send-otp", SendOTPRequest{Phone: "01712345678"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	sent := decode[SendOTPResponse](t, rec)
	require.True(t, sent.Success)
	require.NotEmpty(t, sent.SessionID)
	require.Len(t, sent.DevOTP, 6)

	rec = s.do(t, http.MethodPost, "/api/auth/verify-otp", VerifyOTPRequest{Phone: "01712345678", OTP: sent.DevOTP, SessionID: sent.SessionID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	step := decode[StepResponse](t, rec)
	require.Equal(t, 2, step.Step)
	require.True(t, step.OTPVerified)

	rec = s.do(t, http.MethodPost, "/api/auth/verify-nid", VerifyNIDRequest{
		NID:        "1234-5678-90123",
		DOB:        "1995-03-20",
		NameEn:     "Rahim Uddin",
		FatherName: "Karim Uddin",
		MotherName: "Amina Begum",
		SessionID:  sent.SessionID,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, 3, decode[StepResponse](t, rec).Step)

	rec = s.do(t, http.MethodPost, "/api/auth/save-face", SaveFaceRequest{FaceImage: "data:image/jpeg;base64,/9j/4AAQ", SessionID: sent.SessionID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.True(t, decode[StepResponse](t, rec).FaceVerified)

	rec = s.do(t, http.MethodPost, "/api/auth/save-address", SaveAddressRequest{
		Division:      "Dhaka",
		District:      "Dhaka",
		PoliceStation: "Mirpur",
		Village:       "Kalshi",
		SessionID:     sent.SessionID,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	step = decode[StepResponse](t, rec)
	require.Equal(t, 5, step.Step)
	require.Equal(t, "Kalshi, Mirpur, Dhaka, Dhaka", step.Location)

	rec = s.do(t, http.MethodGet, "/api/auth/registration-status/"+sent.SessionID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	status := decode[RegistrationStatusResponse](t, rec)
	require.Equal(t, "1234567890123", status.Session.Data.NID)
	require.Empty(t, status.Session.Data.FaceImage)

	rec = s.do(t, http.MethodPost, "/api/signup", map[string]string{
		"username":  "rahim_01",
		"email":     "rahim@example.com",
		"password":  "password123",
		"sessionId": sent.SessionID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[UserResponse](t, rec)
	require.Equal(t, "/profile", created.Redirect)
	require.Equal(t, "rahim_01", created.User.Username)
	require.NotNil(t, created.User.Age)
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	require.True(t, cookie.HttpOnly)

	rec = s.do(t, http.MethodGet, "/api/check-session", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	check := decode[CheckSessionResponse](t, rec)
	require.True(t, check.Authenticated)
	require.Equal(t, "rahim_01", check.User.Username)

	rec = s.do(t, http.MethodGet, "/api/profile", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	profile := decode[ProfileResponse](t, rec).User
	require.Equal(t, "01712345678", profile.Phone)
	require.Equal(t, "1995-03-20", profile.DOB)
	require.Equal(t, "Karim Uddin", profile.FatherName)
	require.True(t, profile.IsNIDVerified)

	rec = s.do(t, http.MethodPost, "/api/update-profile", UpdateProfileRequest{FullName: "Rahim Uddin", DOB: "20-03-1995"}, cookie)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/update-profile", UpdateProfileRequest{
		FullName:      "Rahim Uddin Khan",
		Phone:         "01712345678",
		DOB:           "1990-01-01",
		Division:      "Dhaka",
		District:      "Gazipur",
		PoliceStation: "Tongi",
	}, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[ProfileResponse](t, rec)
	require.Equal(t, "Profile updated successfully", updated.Message)
	require.Equal(t, "Rahim Uddin Khan", updated.User.FullName)
	require.Equal(t, "Tongi, Gazipur, Dhaka", updated.User.Location)
	require.NotNil(t, updated.User.Age)
	require.NotEqual(t, *profile.Age, *updated.User.Age)

	rec = s.do(t, http.MethodPost, "/api/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, -1, sessionCookie(rec).MaxAge)

	rec = s.do(t, http.MethodGet, "/api/check-session", nil, cookie)
	require.False(t, decode[CheckSessionResponse](t, rec).Authenticated)

	rec = s.do(t, http.MethodPost, "/api/login", LoginRequest{Username: "rahim_01", Password: "password123"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotNil(t, sessionCookie(rec))

	// The session was consumed by signup
	rec = s.do(t, http.MethodGet, "/api/auth/registration-status/"+sent.SessionID, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminLifecycleOverHTTP(t *testing.T) {
	s := newTestServer(t, nil)
	ctx := context.Background()

	_, err := s.superAdmins.Provision(ctx, service.ProvisionInput{
		Username: "superadmin",
		Email:    "superadmin@crime.gov.bd",
		Password: "superpass123",
	})
	require.NoError(t, err)

	rec := s.do(t, http.MethodPost, "/admin-registration-request", AdminRegistrationRequest{
		Username:     "karim_dhaka",
		Email:        "karim@police.gov.bd",
		FullName:     "Karim Ahmed",
		Phone:        "01811111111",
		Designation:  "Inspector",
		OfficialID:   "BP-1001",
		DistrictName: "Dhaka",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Pending admins cannot log in
	rec = s.do(t, http.MethodPost, "/adminLogin", LoginRequest{Username: "karim_dhaka", Password: "whatever1"})
	require.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/super-admin-login", SuperAdminLoginRequest{Username: "superadmin", Password: "superpass123"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "/super-admin-dashboard", decode[SuperAdminSessionResponse](t, rec).Redirect)
	super := sessionCookie(rec)
	require.NotNil(t, super)

	rec = s.do(t, http.MethodGet, "/super-admin/pending-requests", nil, super)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	pending := decode[RequestsResponse](t, rec)
	require.Len(t, pending.Requests, 1)
	require.Equal(t, domain.ApprovalPending, pending.Requests[0].Status)

	rec = s.do(t, http.MethodPost, "/super-admin-approve", DecisionRequest{Username: "karim_dhaka"}, super)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/super-admin-approve", DecisionRequest{Username: "karim_dhaka"}, super)
	require.Equal(t, http.StatusForbidden, rec.Code)

	pwToken, emailToken := s.mailer.approvalTokens(t)

	rec = s.do(t, http.MethodPost, "/setup-admin-password", SetupPasswordRequest{Token: pwToken, Password: "adminpass1", ConfirmPassword: "adminpass2"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Passwords do not match", decode[ErrorResponse](t, rec).Message)

	rec = s.do(t, http.MethodPost, "/setup-admin-password", SetupPasswordRequest{Token: pwToken, Password: "adminpass1", ConfirmPassword: "adminpass1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/setup-admin-password", SetupPasswordRequest{Token: pwToken, Password: "adminpass9"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/verify-admin-email?token="+emailToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/adminLogin", LoginRequest{Username: "karim_dhaka", Password: "adminpass1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	challenge := decode[AdminLoginResponse](t, rec)
	require.True(t, challenge.RequireOTP)
	require.Len(t, challenge.DevOTP, 6)
	require.Nil(t, sessionCookie(rec))

	rec = s.do(t, http.MethodPost, "/admin-verify-otp", AdminVerifyOTPRequest{Username: "karim_dhaka", OTP: "not-it"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/admin-verify-otp", AdminVerifyOTPRequest{Username: "karim_dhaka", OTP: challenge.DevOTP})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	loggedIn := decode[AdminSessionResponse](t, rec)
	require.Equal(t, "/admin-dashboard", loggedIn.Redirect)
	require.Equal(t, "Dhaka", loggedIn.Admin.District)
	admin := sessionCookie(rec)
	require.NotNil(t, admin)

	rec = s.do(t, http.MethodGet, "/admin-check-auth", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "karim_dhaka", decode[AdminSessionResponse](t, rec).Admin.Username)

	// An admin session does not open the super-admin console
	rec = s.do(t, http.MethodGet, "/super-admin/stats", nil, admin)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/super-admin/stats", nil, super)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	stats := decode[StatsResponse](t, rec)
	require.Equal(t, domain.ApprovalStats{Approved: 1, ActiveAdmins: 1}, stats.Stats)
	require.NotEmpty(t, stats.RecentActivity)

	rec = s.do(t, http.MethodGet, "/super-admin/audit-logs?action=login&adminUsername=karim_dhaka", nil, super)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	logs := decode[AuditLogsResponse](t, rec)
	require.Len(t, logs.Logs, 1)
	require.Equal(t, "192.0.2.1", logs.Logs[0].IPAddress)
	require.Equal(t, "router-test", logs.Logs[0].UserAgent)

	rec = s.do(t, http.MethodPost, "/super-admin-suspend", DecisionRequest{Username: "karim_dhaka"}, super)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/super-admin/all-requests?status=suspended&district=Dhaka", nil, super)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, decode[RequestsResponse](t, rec).Requests, 1)

	// Suspension ends the admin's live session
	rec = s.do(t, http.MethodGet, "/admin-check-auth", nil, admin)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/super-admin-reactivate", DecisionRequest{Username: "karim_dhaka"}, super)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = s.do(t, http.MethodGet, "/admin-check-auth", nil, admin)
	require.Equal(t, http.StatusUnauthorized, rec.Code, "reactivation does not revive a revoked session")

	rec = s.do(t, http.MethodPost, "/adminLogin", LoginRequest{Username: "karim_dhaka", Password: "adminpass1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	challenge = decode[AdminLoginResponse](t, rec)
	rec = s.do(t, http.MethodPost, "/admin-verify-otp", AdminVerifyOTPRequest{Username: "karim_dhaka", OTP: challenge.DevOTP})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	admin = sessionCookie(rec)
	require.NotNil(t, admin)
	rec = s.do(t, http.MethodGet, "/admin-check-auth", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/admin-logout", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodGet, "/admin-check-auth", nil, admin)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/super-admin-logout", nil, super)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodGet, "/super-admin-check-auth", nil, super)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionGuards(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/profile"},
		{http.MethodPost, "/api/update-profile"},
		{http.MethodGet, "/admin-check-auth"},
		{http.MethodPost, "/admin-logout"},
		{http.MethodPost, "/super-admin-approve"},
		{http.MethodPost, "/super-admin-reject"},
		{http.MethodPost, "/super-admin-suspend"},
		{http.MethodPost, "/super-admin-reactivate"},
		{http.MethodGet, "/super-admin/pending-requests"},
		{http.MethodGet, "/super-admin/all-requests"},
		{http.MethodGet, "/super-admin/audit-logs"},
		{http.MethodGet, "/super-admin/stats"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := s.do(t, tt.method, tt.path, nil, &http.Cookie{Name: session.CookieName, Value: "forged"})
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Equal(t, "Unauthorized. Please log in.", decode[ErrorResponse](t, rec).Message)
		})
	}

	rec := s.do(t, http.MethodGet, "/super-admin-check-auth", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"success":false,"authenticated":false}`, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/check-session", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.False(t, decode[CheckSessionResponse](t, rec).Authenticated)
}

func TestErrorResponses(t *testing.T) {
	s := newTestServer(t, nil)
	ctx := context.Background()

	_, err := s.superAdmins.Provision(ctx, service.ProvisionInput{
		Username: "superadmin",
		Email:    "superadmin@crime.gov.bd",
		Password: "superpass123",
	})
	require.NoError(t, err)
	rec := s.do(t, http.MethodPost, "/super-admin-login", SuperAdminLoginRequest{Username: "superadmin", Password: "superpass123"})
	require.Equal(t, http.StatusOK, rec.Code)
	super := sessionCookie(rec)

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/verify-nid", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "Invalid request body", decode[ErrorResponse](t, rec).Message)
	})

	t.Run("missing identifier", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/auth/send-otp", SendOTPRequest{})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, service.ErrIdentifierRequired.Message, decode[ErrorResponse](t, rec).Message)
	})

	t.Run("unknown registration session", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/auth/registration-status/nope", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/login", LoginRequest{Username: "nobody", Password: "password123"})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "Invalid username or password", decode[ErrorResponse](t, rec).Message)
	})

	t.Run("duplicate admin", func(t *testing.T) {
		req := AdminRegistrationRequest{
			Username:     "karim_dhaka",
			Email:        "karim@police.gov.bd",
			FullName:     "Karim Ahmed",
			Phone:        "01811111111",
			Designation:  "Inspector",
			OfficialID:   "BP-1001",
			DistrictName: "Dhaka",
		}
		require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/admin-registration-request", req).Code)
		rec := s.do(t, http.MethodPost, "/admin-registration-request", req)
		require.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("reject without reason", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/super-admin-reject", DecisionRequest{Username: "karim_dhaka"}, super)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown admin", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/super-admin-reactivate", DecisionRequest{Username: "ghost"}, super)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown status filter", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/super-admin/all-requests?status=bogus", nil, super)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed audit date", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/super-admin/audit-logs?startDate=15-06-2024", nil, super)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad email token", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/verify-admin-email?token=deadbeef", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/livez", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "test", decode[HealthResponse](t, rec).Version)

	rec = s.do(t, http.MethodGet, "/readyz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	ready := decode[HealthResponse](t, rec)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks.Ephemeral)

	degraded := newTestServer(t, failingPinger{})
	rec = degraded.do(t, http.MethodGet, "/readyz", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decode[HealthResponse](t, rec)
	require.Equal(t, "degraded", body.Status)
	require.Equal(t, "ok", body.Checks.Database)
	require.Contains(t, body.Checks.Ephemeral, "connection refused")
}
