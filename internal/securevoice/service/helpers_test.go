package service

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/securevoice/securevoice/internal/securevoice/domain"
	"github.com/securevoice/securevoice/internal/securevoice/ephemeral"
	"github.com/securevoice/securevoice/internal/securevoice/notify"
	"github.com/securevoice/securevoice/internal/securevoice/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []notify.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg notify.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordingMailer) fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *recordingMailer) messages() []notify.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notify.Message(nil), m.sent...)
}

// testClock is a settable clock.
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock(t time.Time) *testClock { return &testClock{t: t} }

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

func (c *testClock) Advance(d time.Duration) { c.Set(c.Now().Add(d)) }

func fixedCode(code string) CodeGenerator {
	return func() (string, error) { return code, nil }
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// harness wires every service over one in-memory store, a recording mailer
// and a shared clock.
type harness struct {
	store    *sqlite.Store
	mailer   *recordingMailer
	clock    *testClock
	otps     *ephemeral.Memory[domain.OTPRecord]
	sessions *ephemeral.Memory[domain.RegistrationSession]

	audit        *Auditor
	registration *RegistrationService
	approvals    *AdminApprovalService
	adminAuth    *AdminAuthService
	users        *UserAuthService
	superAdmins  *SuperAdminService
}

var testEpoch = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		store:    newTestStore(t),
		mailer:   &recordingMailer{},
		clock:    newTestClock(testEpoch),
		otps:     ephemeral.NewMemory[domain.OTPRecord](),
		sessions: ephemeral.NewMemory[domain.RegistrationSession](),
	}
	dispatcher := notify.NewDispatcher(h.mailer, "http://frontend.test", "superadmin@crime.gov.bd")
	clock := Clock(h.clock.Now)

	h.audit = &Auditor{Store: h.store, Clock: clock}
	h.registration = &RegistrationService{
		Store:    h.store,
		OTPs:     h.otps,
		Sessions: h.sessions,
		Notifier: dispatcher,
		DevEcho:  true,
		Clock:    clock,
		Codes:    fixedCode("123456"),
	}
	h.approvals = &AdminApprovalService{Store: h.store, Notifier: dispatcher, Audit: h.audit, Clock: clock}
	h.adminAuth = &AdminAuthService{
		Store:    h.store,
		Notifier: dispatcher,
		Audit:    h.audit,
		Clock:    clock,
		Codes:    fixedCode("654321"),
	}
	h.users = &UserAuthService{Store: h.store, Clock: clock}
	h.superAdmins = &SuperAdminService{Store: h.store, Audit: h.audit, Clock: clock}
	return h
}

var (
	passwordLinkRe = regexp.MustCompile(`admin-password-setup\?token=([0-9a-f]{64})`)
	emailLinkRe    = regexp.MustCompile(`verify-admin-email\?token=([0-9a-f]{64})`)
)

// approvalTokens pulls both tokens out of the latest approval email.
func (h *harness) approvalTokens(t *testing.T) (password, email string) {
	t.Helper()
	msgs := h.mailer.messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		p := passwordLinkRe.FindStringSubmatch(msgs[i].HTML)
		e := emailLinkRe.FindStringSubmatch(msgs[i].HTML)
		if p != nil && e != nil {
			return p[1], e[1]
		}
	}
	t.Fatal("no approval email sent")
	return "", ""
}

func adminInput(username string) AdminRegistrationInput {
	return AdminRegistrationInput{
		Username:     username,
		Email:        username + "@police.gov.bd",
		FullName:     "Karim Ahmed",
		Phone:        "01811111111",
		Designation:  "Inspector",
		OfficialID:   "BP-" + username,
		DistrictName: "Dhaka",
	}
}

// readyAdmin walks an admin through request, approval, password setup and
// email verification.
func (h *harness) readyAdmin(t *testing.T, username, password string) domain.Admin {
	t.Helper()
	ctx := context.Background()

	_, err := h.approvals.RequestRegistration(ctx, adminInput(username))
	require.NoError(t, err)
	_, err = h.approvals.Approve(ctx, "superadmin", username)
	require.NoError(t, err)

	pwToken, emailToken := h.approvalTokens(t)
	_, err = h.adminAuth.SetupPassword(ctx, pwToken, password)
	require.NoError(t, err)
	a, err := h.adminAuth.VerifyEmail(ctx, emailToken)
	require.NoError(t, err)
	return a
}

// registerUser completes a full sign-up for phone and returns the user.
func (h *harness) registerUser(t *testing.T, phone, nid, username string) domain.User {
	t.Helper()
	ctx := context.Background()

	sent, err := h.registration.SendOTP(ctx, SendOTPInput{Phone: phone})
	require.NoError(t, err)
	_, err = h.registration.VerifyOTP(ctx, VerifyOTPInput{Phone: phone, OTP: sent.DevOTP, SessionID: sent.SessionID})
	require.NoError(t, err)
	_, err = h.registration.VerifyNID(ctx, VerifyNIDInput{NID: nid, DOB: "2000-06-15", NameEn: "Rahim Uddin", SessionID: sent.SessionID})
	require.NoError(t, err)
	_, err = h.registration.SaveFace(ctx, sent.SessionID, "data:image/png;base64,iVBORw0KGgo=")
	require.NoError(t, err)
	_, err = h.registration.SaveAddress(ctx, AddressInput{Division: "Dhaka", District: "Dhaka", SessionID: sent.SessionID})
	require.NoError(t, err)
	u, err := h.registration.Signup(ctx, SignupInput{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "password123",
		SessionID: sent.SessionID,
	})
	require.NoError(t, err)
	return u
}
