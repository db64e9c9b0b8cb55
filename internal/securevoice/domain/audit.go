package domain

import "time"

type AuditResult string

const (
	AuditSuccess AuditResult = "success"
	AuditFailure AuditResult = "failure"
	AuditWarning AuditResult = "warning"
)

// Audit actions recorded by the admin and super-admin flows.
const (
	ActionLoginAttempt    = "login_attempt"
	ActionOTPSent         = "otp_sent"
	ActionOTPVerify       = "otp_verify"
	ActionLogin           = "login"
	ActionLogout          = "logout"
	ActionPasswordSetup   = "password_setup"
	ActionEmailVerified   = "email_verified"
	ActionRegistration    = "registration_request"
	ActionApproveAdmin    = "approve_admin"
	ActionRejectAdmin     = "reject_admin"
	ActionSuspendAdmin    = "suspend_admin"
	ActionReactivateAdmin = "reactivate_admin"
)

// AuditEntry is one append-only audit record.
type AuditEntry struct {
	ID             string      `json:"id"`
	Actor          string      `json:"adminUsername"`
	Action         string      `json:"action"`
	Result         AuditResult `json:"result"`
	Details        string      `json:"details,omitempty"`
	IPAddress      string      `json:"ipAddress,omitempty"`
	UserAgent      string      `json:"userAgent,omitempty"`
	ComplaintID    *int64      `json:"complaintId,omitempty"`
	TargetUsername string      `json:"targetUsername,omitempty"`
	Timestamp      time.Time   `json:"timestamp"`
}

// AuditFilter narrows an audit query. Zero fields are ignored.
type AuditFilter struct {
	Actor  string
	Action string
	From   *time.Time // inclusive
	To     *time.Time // exclusive
	Limit  int
}
