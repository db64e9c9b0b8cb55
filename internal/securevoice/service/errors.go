package service

import (
	"fmt"

	"github.com/securevoice/securevoice/internal/securevoice/domain"
)

// Registration errors.
var (
	ErrIdentifierRequired = domain.NewError(domain.KindValidation, "Phone number or email is required")
	ErrPhoneRegistered    = domain.NewError(domain.KindConflict, "This phone number is already registered")
	ErrEmailRegistered    = domain.NewError(domain.KindConflict, "This email is already registered")
	ErrOTPRequired        = domain.NewError(domain.KindValidation, "OTP is required")
	ErrOTPNotFound        = domain.NewError(domain.KindNotFound, "No OTP found. Please request a new one.")
	ErrOTPExpired         = domain.NewError(domain.KindExpired, "OTP has expired. Please request a new one.")
	ErrOTPInvalid         = domain.NewError(domain.KindInvalid, "Invalid OTP")
	ErrOTPUsed            = domain.NewError(domain.KindInvalid, "OTP already used")
	ErrSessionRequired    = domain.NewError(domain.KindValidation, "Registration session is required")
	ErrSessionNotFound    = domain.NewError(domain.KindNotFound, "Registration session not found")
	ErrSessionExpired     = domain.NewError(domain.KindExpired, "Registration session has expired. Please start again.")
	ErrSessionMismatch    = domain.NewError(domain.KindValidation, "Registration session does not belong to this phone number or email")
	ErrStepOrder          = domain.NewError(domain.KindForbidden, "Please complete the previous step first")
	ErrNIDRequired        = domain.NewError(domain.KindValidation, "NID number is required")
	ErrNIDFormat          = domain.NewError(domain.KindValidation, "NID must be 10, 13 or 17 digits")
	ErrNIDRegistered      = domain.NewError(domain.KindConflict, "This NID is already registered")
	ErrDOBFormat          = domain.NewError(domain.KindValidation, "Date of birth must be in YYYY-MM-DD format")
	ErrFaceRequired       = domain.NewError(domain.KindValidation, "Face image is required")
	ErrFaceFormat         = domain.NewError(domain.KindValidation, "Invalid face image format")
	ErrAddressRequired    = domain.NewError(domain.KindValidation, "Division and district are required")
	ErrUsernameFormat     = domain.NewError(domain.KindValidation, "Username must be 3-50 characters and contain only letters, numbers and underscores")
	ErrEmailFormat        = domain.NewError(domain.KindValidation, "Please enter a valid email address")
	ErrPasswordTooShort   = domain.NewError(domain.KindValidation, "Password must be at least 8 characters long")
	ErrUsernameTaken      = domain.NewError(domain.KindConflict, "Username already exists")
	ErrEmailTaken         = domain.NewError(domain.KindConflict, "Email already registered")
)

// Login errors shared by every principal kind.
var (
	ErrCredentialsRequired = domain.NewError(domain.KindValidation, "Username and password are required")
	ErrInvalidLogin        = domain.NewError(domain.KindUnauthorized, "Invalid username or password")
	ErrInvalidCredentials  = domain.NewError(domain.KindUnauthorized, "Invalid credentials")
	ErrTOTPRequired        = domain.NewError(domain.KindUnauthorized, "Authenticator code is required")
	ErrUserNotFound        = domain.NewError(domain.KindNotFound, "User not found")
)

// Profile errors.
var (
	ErrFullNameRequired = domain.NewError(domain.KindValidation, "Full name is required")
)

// Admin approval and admin login errors.
var (
	ErrAdminFieldsRequired     = domain.NewError(domain.KindValidation, "All fields are required")
	ErrAdminUsernameRequired   = domain.NewError(domain.KindValidation, "Admin username is required")
	ErrAdminNotFound           = domain.NewError(domain.KindNotFound, "Admin not found")
	ErrRejectionReasonRequired = domain.NewError(domain.KindValidation, "Rejection reason is required")
	ErrInvalidTransition       = domain.NewError(domain.KindForbidden, "Invalid status transition")
	ErrTokenInvalid            = domain.NewError(domain.KindInvalidToken, "Invalid or expired link. Please contact the Super Admin.")
	ErrAdminPending            = domain.NewError(domain.KindForbidden, "Your account is pending approval by the Super Admin")
	ErrAdminRejected           = domain.NewError(domain.KindForbidden, "Your registration request was rejected. Please contact the Super Admin.")
	ErrAdminSuspended          = domain.NewError(domain.KindForbidden, "Your account has been suspended. Please contact the Super Admin.")
	ErrAdminSetupIncomplete    = domain.NewError(domain.KindForbidden, "Please complete your password setup using the link sent to your email")
	ErrAdminEmailUnverified    = domain.NewError(domain.KindForbidden, "Please verify your email address using the link sent to your email")
	ErrAdminOTPRequired        = domain.NewError(domain.KindValidation, "Username and OTP are required")
	ErrAdminOTPInvalid         = domain.NewError(domain.KindInvalid, "Invalid or expired OTP")
	ErrOTPDelivery             = domain.NewError(domain.KindDependencyFailure, "Failed to send OTP email. Please try again.")
	ErrInvalidDate             = domain.NewError(domain.KindValidation, "Dates must be in YYYY-MM-DD format")
)

// invalidTransition reports a super-admin decision the workflow does not
// allow from status. It matches ErrInvalidTransition.
func invalidTransition(verb string, status domain.ApprovalStatus) error {
	return domain.Wrap(domain.KindForbidden,
		fmt.Sprintf("Cannot %s a request with status %s", verb, status),
		ErrInvalidTransition)
}
