package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/securevoice/securevoice/internal/securevoice/domain"
	"github.com/securevoice/securevoice/internal/securevoice/notify"
	"github.com/securevoice/securevoice/internal/securevoice/store"
	"github.com/securevoice/securevoice/pkg/cryptox"
	"github.com/securevoice/securevoice/pkg/idx"
	"github.com/securevoice/securevoice/pkg/slogx"
)

// DefaultSuspensionReason is recorded when a suspension gives no reason.
const DefaultSuspensionReason = "Account suspended by Super Admin"

// AdminApprovalService owns the admin approval workflow. Only the
// super-admin drives transitions after the initial request.
type AdminApprovalService struct {
	Store    store.Store
	Notifier *notify.Dispatcher
	Audit    *Auditor
	Clock    Clock
}

type AdminRegistrationInput struct {
	Username     string
	Email        string
	FullName     string
	Phone        string
	Designation  string
	OfficialID   string
	DistrictName string
}

// RequestRegistration records a pending admin together with its workflow.
func (s *AdminApprovalService) RequestRegistration(ctx context.Context, in AdminRegistrationInput) (domain.Admin, error) {
	if isBlank(in.Username, in.Email, in.FullName, in.Phone, in.Designation, in.OfficialID, in.DistrictName) {
		return domain.Admin{}, ErrAdminFieldsRequired
	}

	now := s.Clock.now()
	a := domain.Admin{
		ID:           idx.NewAt(now).String(),
		Username:     strings.TrimSpace(in.Username),
		Email:        strings.TrimSpace(in.Email),
		FullName:     strings.TrimSpace(in.FullName),
		Phone:        strings.TrimSpace(in.Phone),
		Designation:  strings.TrimSpace(in.Designation),
		OfficialID:   strings.TrimSpace(in.OfficialID),
		DistrictName: strings.TrimSpace(in.DistrictName),
		CreatedAt:    now,
	}
	switch {
	case !validUsername(a.Username):
		return domain.Admin{}, ErrUsernameFormat
	case !validEmail(a.Email):
		return domain.Admin{}, ErrEmailFormat
	}

	admins := s.Store.Admins()
	if taken, err := admins.UsernameTaken(ctx, a.Username); err != nil {
		return domain.Admin{}, fmt.Errorf("check admin username: %w", err)
	} else if taken {
		return domain.Admin{}, ErrUsernameTaken
	}
	if taken, err := admins.EmailTaken(ctx, a.Email); err != nil {
		return domain.Admin{}, fmt.Errorf("check admin email: %w", err)
	} else if taken {
		return domain.Admin{}, ErrEmailTaken
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Admins().CreateAdmin(ctx, a); err != nil {
			return err
		}
		return tx.Approvals().CreateWorkflow(ctx, domain.ApprovalWorkflow{
			AdminID:     a.ID,
			Status:      domain.ApprovalPending,
			RequestDate: now,
		})
	})
	if err != nil {
		var conflict *store.ConflictError
		if errors.As(err, &conflict) {
			if conflict.Field == "email" {
				return domain.Admin{}, ErrEmailTaken
			}
			return domain.Admin{}, ErrUsernameTaken
		}
		return domain.Admin{}, fmt.Errorf("create admin: %w", err)
	}

	s.Audit.Record(ctx, AuditEvent{
		Actor:   a.Username,
		Action:  domain.ActionRegistration,
		Details: map[string]string{"district": a.DistrictName, "designation": a.Designation},
	})
	return a, nil
}

// Approve moves a pending request to approved and emails the password setup
// and email verification links.
func (s *AdminApprovalService) Approve(ctx context.Context, actor, username string) (domain.Admin, error) {
	a, wf, err := s.load(ctx, username)
	if err != nil {
		return domain.Admin{}, err
	}
	if wf.Status != domain.ApprovalPending {
		return domain.Admin{}, invalidTransition("approve", wf.Status)
	}

	passwordToken, err := cryptox.GenerateHexToken(verificationTokenLen)
	if err != nil {
		return domain.Admin{}, fmt.Errorf("generate password token: %w", err)
	}
	emailToken, err := cryptox.GenerateHexToken(verificationTokenLen)
	if err != nil {
		return domain.Admin{}, fmt.Errorf("generate email token: %w", err)
	}

	now := s.Clock.now()
	wf.Status = domain.ApprovalApproved
	wf.ApprovalDate = &now
	wf.ApprovedBy = actor
	wf.RejectionReason = ""

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Approvals().UpdateWorkflow(ctx, wf, domain.ApprovalPending); err != nil {
			return err
		}
		for _, t := range []domain.VerificationToken{
			{Type: domain.TokenPasswordSetup, TokenHash: cryptox.FingerprintToken(passwordToken), ExpiresAt: now.Add(PasswordSetupTTL)},
			{Type: domain.TokenEmailVerification, TokenHash: cryptox.FingerprintToken(emailToken), ExpiresAt: now.Add(EmailVerificationTTL)},
		} {
			t.ID = idx.NewAt(now).String()
			t.AdminID = a.ID
			t.CreatedAt = now
			if err := tx.VerificationTokens().CreateToken(ctx, t); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		return domain.Admin{}, s.lostTransition(ctx, "approve", a.ID, domain.ApprovalPending)
	}
	if err != nil {
		return domain.Admin{}, fmt.Errorf("approve admin: %w", err)
	}

	emailSent := true
	if err := s.Notifier.SendAdminApproval(ctx, a, passwordToken, emailToken, PasswordSetupTTL); err != nil {
		emailSent = false
		slogx.FromContext(ctx).Error("approval email failed", slog.String("admin", a.Username), slog.Any("error", err))
	}

	s.Audit.Record(ctx, AuditEvent{
		Actor:          actor,
		Action:         domain.ActionApproveAdmin,
		Result:         resultFor(emailSent),
		TargetUsername: a.Username,
		Details:        map[string]any{"emailSent": emailSent},
	})
	return a, nil
}

// Reject closes a pending request for good.
func (s *AdminApprovalService) Reject(ctx context.Context, actor, username, reason string) (domain.Admin, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domain.Admin{}, ErrRejectionReasonRequired
	}
	a, wf, err := s.load(ctx, username)
	if err != nil {
		return domain.Admin{}, err
	}
	if wf.Status != domain.ApprovalPending {
		return domain.Admin{}, invalidTransition("reject", wf.Status)
	}

	now := s.Clock.now()
	wf.Status = domain.ApprovalRejected
	wf.ApprovalDate = &now
	wf.ApprovedBy = actor
	wf.RejectionReason = reason
	err = s.Store.Approvals().UpdateWorkflow(ctx, wf, domain.ApprovalPending)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Admin{}, s.lostTransition(ctx, "reject", a.ID, domain.ApprovalPending)
	}
	if err != nil {
		return domain.Admin{}, fmt.Errorf("reject admin: %w", err)
	}

	emailSent := true
	if err := s.Notifier.SendAdminRejection(ctx, a, reason); err != nil {
		emailSent = false
		slogx.FromContext(ctx).Error("rejection email failed", slog.String("admin", a.Username), slog.Any("error", err))
	}

	s.Audit.Record(ctx, AuditEvent{
		Actor:          actor,
		Action:         domain.ActionRejectAdmin,
		Result:         resultFor(emailSent),
		TargetUsername: a.Username,
		Details:        map[string]any{"reason": reason, "emailSent": emailSent},
	})
	return a, nil
}

// Suspend deactivates an approved (or already suspended) admin.
func (s *AdminApprovalService) Suspend(ctx context.Context, actor, username, reason string) (domain.Admin, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultSuspensionReason
	}
	a, wf, err := s.load(ctx, username)
	if err != nil {
		return domain.Admin{}, err
	}
	if wf.Status != domain.ApprovalApproved && wf.Status != domain.ApprovalSuspended {
		return domain.Admin{}, invalidTransition("suspend", wf.Status)
	}

	from := wf.Status
	wf.Status = domain.ApprovalSuspended
	wf.RejectionReason = reason
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Approvals().UpdateWorkflow(ctx, wf, from); err != nil {
			return err
		}
		return tx.Admins().SetActive(ctx, a.ID, false)
	})
	if errors.Is(err, store.ErrNotFound) {
		return domain.Admin{}, s.lostTransition(ctx, "suspend", a.ID, from)
	}
	if err != nil {
		return domain.Admin{}, fmt.Errorf("suspend admin: %w", err)
	}
	a.IsActive = false

	s.Audit.Record(ctx, AuditEvent{
		Actor:          actor,
		Action:         domain.ActionSuspendAdmin,
		TargetUsername: a.Username,
		Details:        map[string]string{"reason": reason},
	})
	return a, nil
}

// Reactivate returns a suspended admin to approved.
func (s *AdminApprovalService) Reactivate(ctx context.Context, actor, username string) (domain.Admin, error) {
	a, wf, err := s.load(ctx, username)
	if err != nil {
		return domain.Admin{}, err
	}
	if wf.Status != domain.ApprovalSuspended {
		return domain.Admin{}, invalidTransition("reactivate", wf.Status)
	}

	wf.Status = domain.ApprovalApproved
	wf.RejectionReason = ""
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Approvals().UpdateWorkflow(ctx, wf, domain.ApprovalSuspended); err != nil {
			return err
		}
		return tx.Admins().SetActive(ctx, a.ID, true)
	})
	if errors.Is(err, store.ErrNotFound) {
		return domain.Admin{}, s.lostTransition(ctx, "reactivate", a.ID, domain.ApprovalSuspended)
	}
	if err != nil {
		return domain.Admin{}, fmt.Errorf("reactivate admin: %w", err)
	}
	a.IsActive = true

	s.Audit.Record(ctx, AuditEvent{
		Actor:          actor,
		Action:         domain.ActionReactivateAdmin,
		TargetUsername: a.Username,
	})
	return a, nil
}

// PendingRequests lists requests awaiting a decision, newest first.
func (s *AdminApprovalService) PendingRequests(ctx context.Context) ([]domain.AdminRequest, error) {
	pending := domain.ApprovalPending
	return s.Store.Approvals().ListRequests(ctx, domain.RequestFilter{Status: &pending})
}

// Requests lists every request matching f, newest first.
func (s *AdminApprovalService) Requests(ctx context.Context, f domain.RequestFilter) ([]domain.AdminRequest, error) {
	if f.Status != nil && !f.Status.Valid() {
		return nil, domain.NewError(domain.KindValidation, "Unknown status "+string(*f.Status))
	}
	return s.Store.Approvals().ListRequests(ctx, f)
}

// Dashboard is the super-admin overview.
type Dashboard struct {
	Stats          domain.ApprovalStats `json:"stats"`
	RecentActivity []domain.AuditEntry  `json:"recentActivity"`
}

// Stats counts admins per status and attaches the latest audit entries.
func (s *AdminApprovalService) Stats(ctx context.Context) (Dashboard, error) {
	stats, err := s.Store.Approvals().Stats(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("approval stats: %w", err)
	}
	recent, err := s.Audit.Recent(ctx, recentActivity)
	if err != nil {
		return Dashboard{}, fmt.Errorf("recent activity: %w", err)
	}
	return Dashboard{Stats: stats, RecentActivity: recent}, nil
}

func (s *AdminApprovalService) load(ctx context.Context, username string) (domain.Admin, domain.ApprovalWorkflow, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.Admin{}, domain.ApprovalWorkflow{}, ErrAdminUsernameRequired
	}
	a, err := s.Store.Admins().GetAdminByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Admin{}, domain.ApprovalWorkflow{}, ErrAdminNotFound
	}
	if err != nil {
		return domain.Admin{}, domain.ApprovalWorkflow{}, fmt.Errorf("load admin: %w", err)
	}
	wf, err := s.Store.Approvals().GetWorkflow(ctx, a.ID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Admin{}, domain.ApprovalWorkflow{}, ErrAdminNotFound
	}
	if err != nil {
		return domain.Admin{}, domain.ApprovalWorkflow{}, fmt.Errorf("load workflow: %w", err)
	}
	return a, wf, nil
}

// lostTransition reports a decision whose workflow left from before the
// update landed, naming the status another decision moved it to.
func (s *AdminApprovalService) lostTransition(ctx context.Context, verb, adminID string, from domain.ApprovalStatus) error {
	status := from
	if wf, err := s.Store.Approvals().GetWorkflow(ctx, adminID); err == nil {
		status = wf.Status
	}
	return invalidTransition(verb, status)
}

func resultFor(ok bool) domain.AuditResult {
	if ok {
		return domain.AuditSuccess
	}
	return domain.AuditWarning
}
