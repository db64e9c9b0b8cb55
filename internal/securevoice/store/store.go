package store

import (
	"context"
	"errors"
	"time"

	"github.com/securevoice/securevoice/internal/securevoice/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// ConflictError reports which unique column rejected a write. It matches
// ErrAlreadyExists with errors.Is.
type ConflictError struct {
	Table string
	Field string
}

func (e *ConflictError) Error() string {
	return "store: unique constraint failed: " + e.Table + "." + e.Field
}

func (e *ConflictError) Unwrap() error { return ErrAlreadyExists }

// Store is the root data access interface. Sub-repositories are exposed as
// methods so a Tx can hand out the same repositories bound to the
// transaction.
type Store interface {
	Users() Users
	Admins() Admins
	Approvals() Approvals
	VerificationTokens() VerificationTokens
	AdminOTPs() AdminOTPs
	AuditLogs() AuditLogs
	SuperAdmins() SuperAdmins

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transaction scoped Store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts u. A duplicate username, email or nid yields a
	// *ConflictError naming the column.
	CreateUser(ctx context.Context, u domain.User) error

	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	UsernameTaken(ctx context.Context, username string) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	PhoneTaken(ctx context.Context, phone string) (bool, error)
	NIDTaken(ctx context.Context, nid string) (bool, error)

	UpdatePasswordHash(ctx context.Context, userID, hash string) error

	// UpdateProfile overwrites the editable fields of u: full name, phone,
	// dob, age, the address parts, location and updated_at.
	UpdateProfile(ctx context.Context, u domain.User) error
}

type Admins interface {
	CreateAdmin(ctx context.Context, a domain.Admin) error
	GetAdminByID(ctx context.Context, id string) (domain.Admin, error)
	GetAdminByUsername(ctx context.Context, username string) (domain.Admin, error)

	UsernameTaken(ctx context.Context, username string) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)

	// SetPassword stores the hash and activates the account.
	SetPassword(ctx context.Context, adminID, hash string) error
	SetActive(ctx context.Context, adminID string, active bool) error
	UpdateLastLogin(ctx context.Context, adminID string, at time.Time) error
}

type Approvals interface {
	CreateWorkflow(ctx context.Context, w domain.ApprovalWorkflow) error
	GetWorkflow(ctx context.Context, adminID string) (domain.ApprovalWorkflow, error)

	// UpdateWorkflow overwrites status, approval date, approver and reason,
	// but only while the stored status is still from. It returns ErrNotFound
	// when no workflow for w.AdminID holds from.
	UpdateWorkflow(ctx context.Context, w domain.ApprovalWorkflow, from domain.ApprovalStatus) error

	// ListRequests returns admins joined with their workflow, newest request
	// first.
	ListRequests(ctx context.Context, f domain.RequestFilter) ([]domain.AdminRequest, error)

	Stats(ctx context.Context) (domain.ApprovalStats, error)
}

type VerificationTokens interface {
	CreateToken(ctx context.Context, t domain.VerificationToken) error

	// GetTokenByHash looks a token up by fingerprint and type.
	GetTokenByHash(ctx context.Context, typ domain.TokenType, hash string) (domain.VerificationToken, error)

	// MarkTokenUsed flips is_used once. A second call for the same token
	// returns ErrNotFound.
	MarkTokenUsed(ctx context.Context, id string, at time.Time) error

	// LatestToken returns the most recently issued token of typ for adminID.
	LatestToken(ctx context.Context, adminID string, typ domain.TokenType) (domain.VerificationToken, error)
}

type AdminOTPs interface {
	CreateOTP(ctx context.Context, o domain.AdminOTP) error

	// FindUnusedOTP returns the newest unused challenge for adminID with the
	// given code, expired or not.
	FindUnusedOTP(ctx context.Context, adminID, code string) (domain.AdminOTP, error)

	// MarkOTPUsed flips is_used once. A second call returns ErrNotFound.
	MarkOTPUsed(ctx context.Context, id string) error

	// InvalidateOTPs marks every unused challenge for adminID as used.
	InvalidateOTPs(ctx context.Context, adminID string) error

	// DeleteStaleOTPs removes challenges that expired before cutoff or
	// have been used.
	DeleteStaleOTPs(ctx context.Context, cutoff time.Time) (int64, error)
}

type AuditLogs interface {
	AppendAuditLog(ctx context.Context, e domain.AuditEntry) error

	// QueryAuditLogs returns matching entries, newest first.
	QueryAuditLogs(ctx context.Context, f domain.AuditFilter) ([]domain.AuditEntry, error)
}

type SuperAdmins interface {
	// UpsertSuperAdmin creates the account or, when the username or email
	// exists, replaces its name, password, TOTP secret and reactivates it.
	UpsertSuperAdmin(ctx context.Context, sa domain.SuperAdmin) error

	GetSuperAdminByID(ctx context.Context, id string) (domain.SuperAdmin, error)
	GetSuperAdminByUsername(ctx context.Context, username string) (domain.SuperAdmin, error)

	UpdateSuperAdminLastLogin(ctx context.Context, id string, at time.Time) error
	UpdateSuperAdminPasswordHash(ctx context.Context, id, hash string) error
}
