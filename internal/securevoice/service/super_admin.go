package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/securevoice/securevoice/internal/securevoice/domain"
	"github.com/securevoice/securevoice/internal/securevoice/store"
	"github.com/securevoice/securevoice/pkg/cryptox"
	"github.com/securevoice/securevoice/pkg/idx"
	"github.com/securevoice/securevoice/pkg/slogx"
)

// DefaultTOTPIssuer labels the super-admin entry in authenticator apps.
const DefaultTOTPIssuer = "SecureVoice"

var totpOpts = totp.ValidateOpts{
	Period:    30,
	Skew:      1,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

type SuperAdminService struct {
	Store store.Store
	Audit *Auditor
	Clock Clock
}

// Login checks the super-admin password and, when enrolled, the TOTP code.
// Every credential failure looks the same to the caller.
func (s *SuperAdminService) Login(ctx context.Context, username, password, code string) (domain.SuperAdmin, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.SuperAdmin{}, ErrCredentialsRequired
	}

	sa, err := s.Store.SuperAdmins().GetSuperAdminByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return domain.SuperAdmin{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.SuperAdmin{}, fmt.Errorf("load super admin: %w", err)
	}
	if !sa.IsActive {
		return domain.SuperAdmin{}, ErrInvalidCredentials
	}

	if err := cryptox.VerifyPassword(password, sa.PasswordHash); err != nil {
		s.Audit.Record(ctx, AuditEvent{Actor: sa.Username, Action: domain.ActionLoginAttempt, Result: domain.AuditFailure, Details: "super admin: invalid password"})
		return domain.SuperAdmin{}, ErrInvalidCredentials
	}

	now := s.Clock.now()
	if sa.TOTPSecret != nil && *sa.TOTPSecret != "" {
		code = strings.TrimSpace(code)
		if code == "" {
			return domain.SuperAdmin{}, ErrTOTPRequired
		}
		ok, err := totp.ValidateCustom(code, *sa.TOTPSecret, now, totpOpts)
		if err != nil || !ok {
			s.Audit.Record(ctx, AuditEvent{Actor: sa.Username, Action: domain.ActionLoginAttempt, Result: domain.AuditFailure, Details: "super admin: invalid authenticator code"})
			return domain.SuperAdmin{}, ErrInvalidCredentials
		}
	}

	if cryptox.NeedsRehash(sa.PasswordHash) {
		if hash, err := cryptox.HashPassword(password); err == nil {
			if err := s.Store.SuperAdmins().UpdateSuperAdminPasswordHash(ctx, sa.ID, hash); err != nil {
				slogx.FromContext(ctx).Warn("super admin rehash failed", slog.Any("error", err))
			}
		}
	}
	if err := s.Store.SuperAdmins().UpdateSuperAdminLastLogin(ctx, sa.ID, now); err != nil {
		return domain.SuperAdmin{}, fmt.Errorf("update last login: %w", err)
	}
	sa.LastLogin = &now

	s.Audit.Record(ctx, AuditEvent{Actor: sa.Username, Action: domain.ActionLogin, Details: "super admin"})
	return sa, nil
}

// SuperAdmin fetches the account behind a session.
func (s *SuperAdminService) SuperAdmin(ctx context.Context, id string) (domain.SuperAdmin, error) {
	return s.Store.SuperAdmins().GetSuperAdminByID(ctx, id)
}

// Logout records the end of a super-admin session.
func (s *SuperAdminService) Logout(ctx context.Context, username string) {
	s.Audit.Record(ctx, AuditEvent{Actor: username, Action: domain.ActionLogout, Details: "super admin"})
}

type ProvisionInput struct {
	Username string
	Email    string
	FullName string
	Password string // generated when empty
	TOTP     bool   // enrol a fresh authenticator secret
	Issuer   string
}

type ProvisionResult struct {
	SuperAdmin domain.SuperAdmin
	Password   string   // set only when generated
	TOTPKey    *otp.Key // set only when enrolled
}

// Provision creates the super-admin or resets an existing one with the same
// username.
func (s *SuperAdminService) Provision(ctx context.Context, in ProvisionInput) (ProvisionResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	switch {
	case !validUsername(in.Username):
		return ProvisionResult{}, ErrUsernameFormat
	case !validEmail(in.Email):
		return ProvisionResult{}, ErrEmailFormat
	}

	var res ProvisionResult
	password := in.Password
	if password == "" {
		generated, err := cryptox.GeneratePassword(generatedPasswordLen)
		if err != nil {
			return ProvisionResult{}, fmt.Errorf("generate password: %w", err)
		}
		password, res.Password = generated, generated
	}
	if len(password) < MinPasswordLength {
		return ProvisionResult{}, ErrPasswordTooShort
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return ProvisionResult{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.Clock.now()
	sa := domain.SuperAdmin{
		ID:           idx.NewAt(now).String(),
		Username:     in.Username,
		Email:        in.Email,
		FullName:     strings.TrimSpace(in.FullName),
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    now,
	}

	if in.TOTP {
		issuer := in.Issuer
		if issuer == "" {
			issuer = DefaultTOTPIssuer
		}
		key, err := totp.Generate(totp.GenerateOpts{
			Issuer:      issuer,
			AccountName: in.Username,
			Period:      totpOpts.Period,
			Digits:      totpOpts.Digits,
			Algorithm:   totpOpts.Algorithm,
		})
		if err != nil {
			return ProvisionResult{}, fmt.Errorf("generate totp key: %w", err)
		}
		secret := key.Secret()
		sa.TOTPSecret = &secret
		res.TOTPKey = key
	}

	if err := s.Store.SuperAdmins().UpsertSuperAdmin(ctx, sa); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return ProvisionResult{}, ErrEmailTaken
		}
		return ProvisionResult{}, fmt.Errorf("upsert super admin: %w", err)
	}

	stored, err := s.Store.SuperAdmins().GetSuperAdminByUsername(ctx, in.Username)
	if err != nil {
		return ProvisionResult{}, fmt.Errorf("reload super admin: %w", err)
	}
	res.SuperAdmin = stored
	return res, nil
}
