package domain

import "time"

// ApprovalStatus is the state of an admin's approval workflow.
type ApprovalStatus string

const (
	ApprovalPending   ApprovalStatus = "pending"
	ApprovalApproved  ApprovalStatus = "approved"
	ApprovalRejected  ApprovalStatus = "rejected"
	ApprovalSuspended ApprovalStatus = "suspended"
)

func (s ApprovalStatus) Valid() bool {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected, ApprovalSuspended:
		return true
	}
	return false
}

// Admin is a district-level admin identity.
type Admin struct {
	ID           string
	Username     string
	Email        string
	FullName     string
	Phone        string
	Designation  string
	OfficialID   string
	DistrictName string
	PasswordHash *string // nil until password setup
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
}

// ApprovalWorkflow is the single approval record owned by an admin.
type ApprovalWorkflow struct {
	AdminID         string
	Status          ApprovalStatus
	RequestDate     time.Time
	ApprovalDate    *time.Time
	ApprovedBy      string
	RejectionReason string
}

// AdminRequest joins an admin with its workflow for super-admin listings.
type AdminRequest struct {
	Admin
	Workflow ApprovalWorkflow
}

// RequestFilter narrows an admin request listing. Zero fields are ignored.
type RequestFilter struct {
	Status   *ApprovalStatus
	District string
}

// TokenType distinguishes the two verification tokens issued on approval.
type TokenType string

const (
	TokenPasswordSetup     TokenType = "password_setup"
	TokenEmailVerification TokenType = "email_verification"
)

// VerificationToken is a single-use, time-boxed proof delivered by email.
// Only the fingerprint of the emailed value is stored.
type VerificationToken struct {
	ID        string
	AdminID   string
	Type      TokenType
	TokenHash string
	ExpiresAt time.Time
	IsUsed    bool
	UsedAt    *time.Time
	CreatedAt time.Time
}

// AdminOTP is a per-login challenge.
type AdminOTP struct {
	ID        string
	AdminID   string
	Code      string
	ExpiresAt time.Time
	IsUsed    bool
	CreatedAt time.Time
}

// ApprovalStats summarises the admin population.
type ApprovalStats struct {
	Pending      int `json:"pending"`
	Approved     int `json:"approved"`
	Rejected     int `json:"rejected"`
	Suspended    int `json:"suspended"`
	ActiveAdmins int `json:"active"`
}

// SuperAdmin approves and supervises admins.
type SuperAdmin struct {
	ID           string
	Username     string
	Email        string
	FullName     string
	PasswordHash string
	TOTPSecret   *string
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
}
