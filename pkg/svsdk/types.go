package svsdk

import "time"

// envelope is the shape shared by every JSON response. Used internally for
// parsing error responses.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by the liveness and readiness probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks holds the readiness dependency results.
type HealthChecks struct {
	Database  string `json:"database"`
	Ephemeral string `json:"ephemeral"`
}

// MessageResponse is returned by endpoints that only report an outcome.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ============================================================================
// Registration
// ============================================================================

// SendOTPRequest starts or resumes a registration. Exactly one of Phone or
// Email is used.
type SendOTPRequest struct {
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// SendOTPResponse carries the registration session ID for the later steps.
// DevOTP is only set by non-production deployments.
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
	OTP       string `json:"otp"`
	SessionID string `json:"sessionId"`
}

type VerifyNIDRequest struct {
	NID        string `json:"nid"`
	DOB        string `json:"dob,omitempty"`
	NameEn     string `json:"nameEn,omitempty"`
	NameBn     string `json:"nameBn,omitempty"`
	FatherName string `json:"fatherName,omitempty"`
	MotherName string `json:"motherName,omitempty"`
	SessionID  string `json:"sessionId"`
}

type SaveAddressRequest struct {
	Division      string `json:"division"`
	District      string `json:"district"`
	PoliceStation string `json:"policeStation,omitempty"`
	Union         string `json:"union,omitempty"`
	Village       string `json:"village,omitempty"`
	PlaceDetails  string `json:"placeDetails,omitempty"`
	SessionID     string `json:"sessionId"`
}

// StepResponse reports the registration progress after a step.
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

// SignupRequest creates the citizen account from a completed registration.
type SignupRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	SessionID string `json:"sessionId,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// RegistrationData is the profile collected across the registration steps.
type RegistrationData struct {
	NID           string `json:"nid,omitempty"`
	DOB           string `json:"dob,omitempty"`
	NameEn        string `json:"nameEn,omitempty"`
	NameBn        string `json:"nameBn,omitempty"`
	FatherName    string `json:"fatherName,omitempty"`
	MotherName    string `json:"motherName,omitempty"`
	Division      string `json:"division,omitempty"`
	District      string `json:"district,omitempty"`
	PoliceStation string `json:"policeStation,omitempty"`
	Union         string `json:"union,omitempty"`
	Village       string `json:"village,omitempty"`
	PlaceDetails  string `json:"placeDetails,omitempty"`
	Location      string `json:"location,omitempty"`
}

// RegistrationSession is an in-progress registration.
type RegistrationSession struct {
	ID           string           `json:"sessionId"`
	Phone        string           `json:"phone,omitempty"`
	Email        string           `json:"email,omitempty"`
	Step         int              `json:"step"`
	OTPVerified  bool             `json:"otpVerified"`
	NIDVerified  bool             `json:"nidVerified"`
	FaceVerified bool             `json:"faceVerified"`
	Data         RegistrationData `json:"data"`
	CreatedAt    time.Time        `json:"createdAt"`
	ExpiresAt    time.Time        `json:"expiresAt"`
}

// ============================================================================
// Citizens
// ============================================================================

// User is the public view of a citizen account.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName,omitempty"`
	Age      *int   `json:"age,omitempty"`
	Location string `json:"location,omitempty"`
}

type UserResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Redirect string `json:"redirect,omitempty"`
	User     User   `json:"user"`
}

type CheckSessionResponse struct {
	Success       bool  `json:"success"`
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user,omitempty"`
}

// Profile is the citizen's full view of their own account.
type Profile struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	FullName       string    `json:"fullName,omitempty"`
	NameBn         string    `json:"nameBn,omitempty"`
	FatherName     string    `json:"fatherName,omitempty"`
	MotherName     string    `json:"motherName,omitempty"`
	DOB            string    `json:"dob,omitempty"`
	Age            *int      `json:"age,omitempty"`
	Division       string    `json:"division,omitempty"`
	District       string    `json:"district,omitempty"`
	PoliceStation  string    `json:"policeStation,omitempty"`
	Union          string    `json:"union,omitempty"`
	Village        string    `json:"village,omitempty"`
	PlaceDetails   string    `json:"placeDetails,omitempty"`
	Location       string    `json:"location,omitempty"`
	IsVerified     bool      `json:"isVerified"`
	IsNIDVerified  bool      `json:"isNidVerified"`
	IsFaceVerified bool      `json:"isFaceVerified"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type ProfileResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message,omitempty"`
	User    Profile `json:"user"`
}

// UpdateProfileRequest replaces the editable profile fields. Address parts
// take precedence over a free text Location.
type UpdateProfileRequest struct {
	FullName      string `json:"fullName"`
	Phone         string `json:"phone,omitempty"`
	DOB           string `json:"dob,omitempty"`
	Division      string `json:"division,omitempty"`
	District      string `json:"district,omitempty"`
	PoliceStation string `json:"policeStation,omitempty"`
	Union         string `json:"union,omitempty"`
	Village       string `json:"village,omitempty"`
	PlaceDetails  string `json:"placeDetails,omitempty"`
	Location      string `json:"location,omitempty"`
}

// ============================================================================
// Admins
// ============================================================================

// AdminRegistrationRequest asks for district admin access.
type AdminRegistrationRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	FullName     string `json:"fullName"`
	Phone        string `json:"phone"`
	Designation  string `json:"designation"`
	OfficialID   string `json:"officialId"`
	DistrictName string `json:"districtName"`
}

// AdminLoginResponse is the first phase of admin login. DevOTP is only set
// by non-production deployments.
type AdminLoginResponse struct {
	Success    bool      `json:"success"`
	Message    string    `json:"message"`
	RequireOTP bool      `json:"requireOTP"`
	Username   string    `json:"username"`
	ExpiresAt  time.Time `json:"expiresAt"`
	DevOTP     string    `json:"devOTP,omitempty"`
}

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

// ============================================================================
// Super-admin
// ============================================================================

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

// AdminRequest is one row of the admin request listings.
type AdminRequest struct {
	ID              string     `json:"adminId"`
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	FullName        string     `json:"fullName"`
	Phone           string     `json:"phone"`
	Designation     string     `json:"designation"`
	OfficialID      string     `json:"officialId"`
	DistrictName    string     `json:"districtName"`
	IsActive        bool       `json:"isActive"`
	Status          string     `json:"status"`
	RequestDate     time.Time  `json:"requestDate"`
	ApprovalDate    *time.Time `json:"approvalDate,omitempty"`
	ApprovedBy      string     `json:"approvedBy,omitempty"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
}

// AuditEntry is one line of the admin audit log.
type AuditEntry struct {
	ID             string    `json:"id"`
	AdminUsername  string    `json:"adminUsername"`
	Action         string    `json:"action"`
	Result         string    `json:"result"`
	Details        string    `json:"details,omitempty"`
	IPAddress      string    `json:"ipAddress,omitempty"`
	UserAgent      string    `json:"userAgent,omitempty"`
	ComplaintID    *int64    `json:"complaintId,omitempty"`
	TargetUsername string    `json:"targetUsername,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// AuditFilter narrows an audit log query. Dates are YYYY-MM-DD and
// inclusive. Zero values are not sent.
type AuditFilter struct {
	AdminUsername string
	Action        string
	StartDate     string
	EndDate       string
	Limit         int
}

// ApprovalStats counts admins per approval state.
type ApprovalStats struct {
	Pending      int `json:"pending"`
	Approved     int `json:"approved"`
	Rejected     int `json:"rejected"`
	Suspended    int `json:"suspended"`
	ActiveAdmins int `json:"active"`
}

type StatsResponse struct {
	Success        bool          `json:"success"`
	Stats          ApprovalStats `json:"stats"`
	RecentActivity []AuditEntry  `json:"recentActivity"`
}
