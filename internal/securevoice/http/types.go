package http

import (
	"time"

	"github.com/securevoice/securevoice/internal/securevoice/domain"
)

// ErrorResponse is the failure envelope every endpoint shares.
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"Invalid OTP"`
}

// MessageResponse is a success with nothing but a message.
type MessageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message,omitempty"`
}

// Registration

type SendOTPRequest struct {
	Phone string `json:"phone,omitempty" example:"01712345678"`
	Email string `json:"email,omitempty" example:"rahim@example.com"`
}

type SendOTPResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	SessionID string    `json:"sessionId"`
	ExpiresAt time.Time `json:"expiresAt"`
	DevOTP    string    `json:"devOTP,omitempty"`
}

type VerifyOTPRequest struct {
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	OTP       string `json:"otp" example:"123456"`
	SessionID string `json:"sessionId"`
}

type VerifyNIDRequest struct {
	NID        string `json:"nid" example:"1234567890123"`
	DOB        string `json:"dob" example:"1990-01-01"`
	NameEn     string `json:"nameEn"`
	NameBn     string `json:"nameBn,omitempty"`
	FatherName string `json:"fatherName"`
	MotherName string `json:"motherName"`
	SessionID  string `json:"sessionId"`
}

type SaveFaceRequest struct {
	FaceImage string `json:"faceImage" example:"data:image/jpeg;base64,/9j/4AAQ"`
	SessionID string `json:"sessionId"`
}

type SaveAddressRequest struct {
	Division      string `json:"division" example:"Dhaka"`
	District      string `json:"district" example:"Dhaka"`
	PoliceStation string `json:"policeStation,omitempty"`
	Union         string `json:"union,omitempty"`
	Village       string `json:"village,omitempty"`
	PlaceDetails  string `json:"placeDetails,omitempty"`
	SessionID     string `json:"sessionId"`
}

// StepResponse reports registration progress after a step.
type StepResponse struct {
	Success      bool      `json:"success"`
	Message      string    `json:"message"`
	SessionID    string    `json:"sessionId"`
	Step         int       `json:"step"`
	OTPVerified  bool      `json:"otpVerified"`
	NIDVerified  bool      `json:"nidVerified"`
	FaceVerified bool      `json:"faceVerified"`
	Location     string    `json:"location,omitempty"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

func newStepResponse(message string, s domain.RegistrationSession) StepResponse {
	return StepResponse{
		Success:      true,
		Message:      message,
		SessionID:    s.ID,
		Step:         s.Step,
		OTPVerified:  s.OTPVerified,
		NIDVerified:  s.NIDVerified,
		FaceVerified: s.FaceVerified,
		Location:     s.Data.Location,
		ExpiresAt:    s.ExpiresAt,
	}
}

// SignupRequest carries the account fields. The profile fields are only read
// when the request has no registration session.
type SignupRequest struct {
	Username  string `json:"username" example:"rahim_01"`
	Email     string `json:"email" example:"rahim@example.com"`
	Password  string `json:"password" example:"password123"`
	SessionID string `json:"sessionId,omitempty"`
	Phone     string `json:"phone,omitempty"`

	domain.RegistrationData
}

type UserResponse struct {
	Success  bool              `json:"success"`
	Message  string            `json:"message,omitempty"`
	Redirect string            `json:"redirect,omitempty"`
	User     domain.PublicUser `json:"user"`
}

type RegistrationStatusResponse struct {
	Success bool                       `json:"success"`
	Session domain.RegistrationSession `json:"session"`
}

// Login

type LoginRequest struct {
	Username string `json:"username" example:"rahim_01"`
	Password string `json:"password"`
}

type CheckSessionResponse struct {
	Success       bool               `json:"success"`
	Authenticated bool               `json:"authenticated"`
	User          *domain.PublicUser `json:"user,omitempty"`
}

// Profile

type UpdateProfileRequest struct {
	FullName      string `json:"fullName" example:"Rahim Uddin"`
	Phone         string `json:"phone,omitempty" example:"01712345678"`
	DOB           string `json:"dob,omitempty" example:"1990-06-18"`
	Division      string `json:"division,omitempty" example:"Dhaka"`
	District      string `json:"district,omitempty" example:"Dhaka"`
	PoliceStation string `json:"policeStation,omitempty" example:"Mirpur"`
	Union         string `json:"union,omitempty"`
	Village       string `json:"village,omitempty"`
	PlaceDetails  string `json:"placeDetails,omitempty"`
	Location      string `json:"location,omitempty"`
}

type ProfileResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	User    domain.Profile `json:"user"`
}

// Admin

type AdminRegistrationRequest struct {
	Username     string `json:"username" example:"karim_dhaka"`
	Email        string `json:"email" example:"karim@police.gov.bd"`
	FullName     string `json:"fullName"`
	Phone        string `json:"phone"`
	Designation  string `json:"designation" example:"Inspector"`
	OfficialID   string `json:"officialId"`
	DistrictName string `json:"districtName" example:"Dhaka"`
}

type AdminLoginResponse struct {
	Success    bool      `json:"success"`
	Message    string    `json:"message"`
	RequireOTP bool      `json:"requireOTP"`
	Username   string    `json:"username"`
	ExpiresAt  time.Time `json:"expiresAt"`
	DevOTP     string    `json:"devOTP,omitempty"`
}

type AdminVerifyOTPRequest struct {
	Username string `json:"username"`
	OTP      string `json:"otp" example:"123456"`
}

type SetupPasswordRequest struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword,omitempty"`
}

// AdminIdentity is the admin view carried in session responses.
type AdminIdentity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	District string `json:"district,omitempty"`
}

type AdminSessionResponse struct {
	Success       bool          `json:"success"`
	Message       string        `json:"message,omitempty"`
	Authenticated bool          `json:"authenticated,omitempty"`
	Redirect      string        `json:"redirect,omitempty"`
	Admin         AdminIdentity `json:"admin"`
}

// Super-admin

type SuperAdminLoginRequest struct {
	Username string `json:"username" example:"superadmin"`
	Password string `json:"password"`
	TOTPCode string `json:"totpCode,omitempty" example:"123456"`
}

type SuperAdminIdentity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type SuperAdminSessionResponse struct {
	Success       bool               `json:"success"`
	Message       string             `json:"message,omitempty"`
	Authenticated bool               `json:"authenticated,omitempty"`
	Redirect      string             `json:"redirect,omitempty"`
	SuperAdmin    SuperAdminIdentity `json:"superAdmin"`
}

// DecisionRequest names the admin a super-admin decision applies to.
type DecisionRequest struct {
	Username string `json:"username" example:"karim_dhaka"`
	Reason   string `json:"reason,omitempty"`
}

// AdminRequestView is one row of the request listings.
type AdminRequestView struct {
	ID              string                `json:"adminId"`
	Username        string                `json:"username"`
	Email           string                `json:"email"`
	FullName        string                `json:"fullName"`
	Phone           string                `json:"phone"`
	Designation     string                `json:"designation"`
	OfficialID      string                `json:"officialId"`
	DistrictName    string                `json:"districtName"`
	IsActive        bool                  `json:"isActive"`
	Status          domain.ApprovalStatus `json:"status"`
	RequestDate     time.Time             `json:"requestDate"`
	ApprovalDate    *time.Time            `json:"approvalDate,omitempty"`
	ApprovedBy      string                `json:"approvedBy,omitempty"`
	RejectionReason string                `json:"rejectionReason,omitempty"`
}

func newAdminRequestViews(reqs []domain.AdminRequest) []AdminRequestView {
	out := make([]AdminRequestView, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, AdminRequestView{
			ID:              r.ID,
			Username:        r.Username,
			Email:           r.Email,
			FullName:        r.FullName,
			Phone:           r.Phone,
			Designation:     r.Designation,
			OfficialID:      r.OfficialID,
			DistrictName:    r.DistrictName,
			IsActive:        r.IsActive,
			Status:          r.Workflow.Status,
			RequestDate:     r.Workflow.RequestDate,
			ApprovalDate:    r.Workflow.ApprovalDate,
			ApprovedBy:      r.Workflow.ApprovedBy,
			RejectionReason: r.Workflow.RejectionReason,
		})
	}
	return out
}

type RequestsResponse struct {
	Success  bool               `json:"success"`
	Requests []AdminRequestView `json:"requests"`
}

type AuditLogsResponse struct {
	Success bool                `json:"success"`
	Logs    []domain.AuditEntry `json:"logs"`
}

type StatsResponse struct {
	Success        bool                 `json:"success"`
	Stats          domain.ApprovalStats `json:"stats"`
	RecentActivity []domain.AuditEntry  `json:"recentActivity"`
}

// Health

// HealthResponse is returned by the liveness and readiness probes.
type HealthResponse struct {
	Status  string        `json:"status" example:"ok"`
	Uptime  string        `json:"uptime" example:"1h2m3s"`
	Version string        `json:"version" example:"v0.1.0"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database  string `json:"database" example:"ok"`
	Ephemeral string `json:"ephemeral" example:"ok"`
}
