package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/securevoice/securevoice/internal/securevoice/domain"
	"github.com/securevoice/securevoice/internal/securevoice/notify"
	"github.com/securevoice/securevoice/internal/securevoice/session"
	"github.com/securevoice/securevoice/internal/securevoice/store"
	"github.com/securevoice/securevoice/pkg/cryptox"
	"github.com/securevoice/securevoice/pkg/idx"
	"github.com/securevoice/securevoice/pkg/slogx"
)

// AdminAuthService handles admin credential setup and the two phase,
// OTP gated login.
type AdminAuthService struct {
	Store    store.Store
	Notifier *notify.Dispatcher
	Audit    *Auditor

	// DevEcho returns login codes to the caller and tolerates a failed
	// OTP email. Never set in production.
	DevEcho bool

	Clock Clock
	Codes CodeGenerator
}

// LoginChallenge is the outcome of a successful first login phase.
type LoginChallenge struct {
	Username  string
	ExpiresAt time.Time
	DevOTP    string // only with DevEcho
}

// Login checks the credentials and every account gate, then emails a fresh
// login code. No session exists until VerifyOTP succeeds.
func (s *AdminAuthService) Login(ctx context.Context, username, password string) (LoginChallenge, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return LoginChallenge{}, ErrCredentialsRequired
	}

	a, err := s.Store.Admins().GetAdminByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		s.audit(ctx, username, domain.ActionLoginAttempt, domain.AuditFailure, "unknown username")
		return LoginChallenge{}, ErrInvalidLogin
	}
	if err != nil {
		return LoginChallenge{}, fmt.Errorf("load admin: %w", err)
	}

	// Admins without a password can't prove anything yet; the gates below
	// tell them what is missing.
	if a.PasswordHash != nil {
		if err := cryptox.VerifyPassword(password, *a.PasswordHash); err != nil {
			if !errors.Is(err, cryptox.ErrPasswordMismatch) {
				return LoginChallenge{}, fmt.Errorf("verify password: %w", err)
			}
			s.audit(ctx, a.Username, domain.ActionLoginAttempt, domain.AuditFailure, "invalid password")
			return LoginChallenge{}, ErrInvalidLogin
		}
	}

	if err := s.checkGates(ctx, a); err != nil {
		if domain.KindOf(err) != "" {
			s.audit(ctx, a.Username, domain.ActionLoginAttempt, domain.AuditWarning, domain.MessageOf(err))
		}
		return LoginChallenge{}, err
	}

	code, err := s.Codes.next()
	if err != nil {
		return LoginChallenge{}, fmt.Errorf("generate otp: %w", err)
	}
	now := s.Clock.now()
	challenge := domain.AdminOTP{
		ID:        idx.NewAt(now).String(),
		AdminID:   a.ID,
		Code:      code,
		ExpiresAt: now.Add(AdminOTPTTL),
		CreatedAt: now,
	}
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.AdminOTPs().InvalidateOTPs(ctx, a.ID); err != nil {
			return err
		}
		return tx.AdminOTPs().CreateOTP(ctx, challenge)
	})
	if err != nil {
		return LoginChallenge{}, fmt.Errorf("store login otp: %w", err)
	}

	if err := s.Notifier.SendAdminLoginOTP(ctx, a, code, AdminOTPTTL); err != nil {
		slogx.FromContext(ctx).Error("login otp email failed", slog.String("admin", a.Username), slog.Any("error", err))
		if !s.DevEcho {
			s.audit(ctx, a.Username, domain.ActionOTPSent, domain.AuditFailure, "email delivery failed")
			return LoginChallenge{}, ErrOTPDelivery
		}
	}
	s.audit(ctx, a.Username, domain.ActionOTPSent, domain.AuditSuccess, nil)

	res := LoginChallenge{Username: a.Username, ExpiresAt: challenge.ExpiresAt}
	if s.DevEcho {
		res.DevOTP = code
	}
	return res, nil
}

// SessionStarter establishes the admin session once the login code has been
// accepted.
type SessionStarter func(a domain.Admin) error

// VerifyOTP consumes a login code and runs start. The login is only recorded
// as successful once start returns nil; a nil start establishes nothing.
func (s *AdminAuthService) VerifyOTP(ctx context.Context, username, code string, start SessionStarter) (domain.Admin, error) {
	username, code = strings.TrimSpace(username), strings.TrimSpace(code)
	if username == "" || code == "" {
		return domain.Admin{}, ErrAdminOTPRequired
	}

	a, err := s.Store.Admins().GetAdminByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Admin{}, ErrAdminOTPInvalid
	}
	if err != nil {
		return domain.Admin{}, fmt.Errorf("load admin: %w", err)
	}

	now := s.Clock.now()
	challenge, err := s.Store.AdminOTPs().FindUnusedOTP(ctx, a.ID, code)
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.audit(ctx, a.Username, domain.ActionOTPVerify, domain.AuditFailure, "invalid otp")
		return domain.Admin{}, ErrAdminOTPInvalid
	case err != nil:
		return domain.Admin{}, fmt.Errorf("load login otp: %w", err)
	case !now.Before(challenge.ExpiresAt):
		s.audit(ctx, a.Username, domain.ActionOTPVerify, domain.AuditFailure, "expired otp")
		return domain.Admin{}, ErrAdminOTPInvalid
	}

	// The account may have been suspended since the first phase.
	if err := s.checkGates(ctx, a); err != nil {
		return domain.Admin{}, err
	}

	if err := s.Store.AdminOTPs().MarkOTPUsed(ctx, challenge.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Admin{}, ErrAdminOTPInvalid
		}
		return domain.Admin{}, fmt.Errorf("consume login otp: %w", err)
	}
	if err := s.Store.Admins().UpdateLastLogin(ctx, a.ID, now); err != nil {
		return domain.Admin{}, fmt.Errorf("update last login: %w", err)
	}
	a.LastLogin = &now

	if start != nil {
		if err := start(a); err != nil {
			s.audit(ctx, a.Username, domain.ActionLogin, domain.AuditFailure, "session could not be established")
			return domain.Admin{}, fmt.Errorf("start admin session: %w", err)
		}
	}

	s.audit(ctx, a.Username, domain.ActionLogin, domain.AuditSuccess, map[string]string{"district": a.DistrictName})
	return a, nil
}

// checkGates enforces everything but the credentials and the login code:
// approved status, an active account with a password and a verified email.
func (s *AdminAuthService) checkGates(ctx context.Context, a domain.Admin) error {
	wf, err := s.Store.Approvals().GetWorkflow(ctx, a.ID)
	if err != nil {
		return fmt.Errorf("load workflow: %w", err)
	}
	if err := approvedGate(wf.Status); err != nil {
		return err
	}

	if !a.IsActive || a.PasswordHash == nil {
		return ErrAdminSetupIncomplete
	}

	tok, err := s.Store.VerificationTokens().LatestToken(ctx, a.ID, domain.TokenEmailVerification)
	if errors.Is(err, store.ErrNotFound) || (err == nil && !tok.IsUsed) {
		return ErrAdminEmailUnverified
	}
	if err != nil {
		return fmt.Errorf("load email token: %w", err)
	}
	return nil
}

func approvedGate(status domain.ApprovalStatus) error {
	switch status {
	case domain.ApprovalApproved:
		return nil
	case domain.ApprovalPending:
		return ErrAdminPending
	case domain.ApprovalRejected:
		return ErrAdminRejected
	case domain.ApprovalSuspended:
		return ErrAdminSuspended
	default:
		return fmt.Errorf("unknown workflow status %q", status)
	}
}

// SetupPassword consumes a password setup token and activates the account.
func (s *AdminAuthService) SetupPassword(ctx context.Context, token, password string) (domain.Admin, error) {
	if len(password) < MinPasswordLength {
		return domain.Admin{}, ErrPasswordTooShort
	}

	now := s.Clock.now()
	tok, a, err := s.lookupToken(ctx, domain.TokenPasswordSetup, token, now)
	if err != nil {
		return domain.Admin{}, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.Admin{}, fmt.Errorf("hash password: %w", err)
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// The approval may have been overturned since the token was minted.
		wf, err := tx.Approvals().GetWorkflow(ctx, a.ID)
		if err != nil {
			return err
		}
		if err := approvedGate(wf.Status); err != nil {
			return err
		}
		if err := tx.VerificationTokens().MarkTokenUsed(ctx, tok.ID, now); err != nil {
			return err
		}
		return tx.Admins().SetPassword(ctx, a.ID, hash)
	})
	if errors.Is(err, store.ErrNotFound) {
		return domain.Admin{}, ErrTokenInvalid
	}
	if domain.KindOf(err) != "" {
		return domain.Admin{}, err
	}
	if err != nil {
		return domain.Admin{}, fmt.Errorf("set admin password: %w", err)
	}
	a.PasswordHash = &hash
	a.IsActive = true

	if err := s.Notifier.SendPasswordSetConfirmation(ctx, a); err != nil {
		slogx.FromContext(ctx).Warn("password confirmation email failed", slog.String("admin", a.Username), slog.Any("error", err))
	}
	s.audit(ctx, a.Username, domain.ActionPasswordSetup, domain.AuditSuccess, nil)
	return a, nil
}

// VerifyEmail consumes an email verification token.
func (s *AdminAuthService) VerifyEmail(ctx context.Context, token string) (domain.Admin, error) {
	now := s.Clock.now()
	tok, a, err := s.lookupToken(ctx, domain.TokenEmailVerification, token, now)
	if err != nil {
		return domain.Admin{}, err
	}

	if err := s.Store.VerificationTokens().MarkTokenUsed(ctx, tok.ID, now); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Admin{}, ErrTokenInvalid
		}
		return domain.Admin{}, fmt.Errorf("mark email token: %w", err)
	}

	s.audit(ctx, a.Username, domain.ActionEmailVerified, domain.AuditSuccess, nil)
	return a, nil
}

// ValidateSession revokes admin sessions whose account has been suspended
// or deactivated since login. Other session kinds pass unchecked.
func (s *AdminAuthService) ValidateSession(ctx context.Context, rec session.Record) error {
	if rec.Kind != session.KindAdmin {
		return nil
	}
	a, err := s.Store.Admins().GetAdminByID(ctx, rec.SubjectID)
	if errors.Is(err, store.ErrNotFound) {
		return session.ErrRevoked
	}
	if err != nil {
		return fmt.Errorf("load admin: %w", err)
	}
	wf, err := s.Store.Approvals().GetWorkflow(ctx, a.ID)
	if err != nil {
		return fmt.Errorf("load workflow: %w", err)
	}
	if wf.Status != domain.ApprovalApproved || !a.IsActive {
		return fmt.Errorf("%w: admin %s is %s", session.ErrRevoked, a.Username, wf.Status)
	}
	return nil
}

// Logout records the end of an admin session.
func (s *AdminAuthService) Logout(ctx context.Context, username string) {
	s.audit(ctx, username, domain.ActionLogout, domain.AuditSuccess, nil)
}

// lookupToken resolves a live, unused token of typ and its admin.
func (s *AdminAuthService) lookupToken(ctx context.Context, typ domain.TokenType, raw string, now time.Time) (domain.VerificationToken, domain.Admin, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.VerificationToken{}, domain.Admin{}, ErrTokenInvalid
	}

	tok, err := s.Store.VerificationTokens().GetTokenByHash(ctx, typ, cryptox.FingerprintToken(raw))
	if errors.Is(err, store.ErrNotFound) {
		return domain.VerificationToken{}, domain.Admin{}, ErrTokenInvalid
	}
	if err != nil {
		return domain.VerificationToken{}, domain.Admin{}, fmt.Errorf("load token: %w", err)
	}
	if tok.IsUsed || !now.Before(tok.ExpiresAt) {
		return domain.VerificationToken{}, domain.Admin{}, ErrTokenInvalid
	}

	a, err := s.Store.Admins().GetAdminByID(ctx, tok.AdminID)
	if err != nil {
		return domain.VerificationToken{}, domain.Admin{}, fmt.Errorf("load admin: %w", err)
	}
	return tok, a, nil
}

func (s *AdminAuthService) audit(ctx context.Context, actor, action string, result domain.AuditResult, details any) {
	s.Audit.Record(ctx, AuditEvent{Actor: actor, Action: action, Result: result, Details: details})
}
