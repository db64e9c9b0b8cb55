package http

import (
	"log/slog"
	"net/http"

	"github.com/securevoice/securevoice/internal/securevoice/domain"
	"github.com/securevoice/securevoice/internal/securevoice/service"
	"github.com/securevoice/securevoice/internal/securevoice/session"
	"github.com/securevoice/securevoice/pkg/httpx"
	"github.com/securevoice/securevoice/pkg/slogx"
)

const adminDashboard = "/admin-dashboard"

// AdminHandler serves the district admin endpoints.
type AdminHandler struct {
	AdminApprovalService *service.AdminApprovalService
	AdminAuthService     *service.AdminAuthService
	Sessions             *session.Manager
}

// HandleRegistrationRequest handles POST /admin-registration-request
//
//	@Summary		Request district admin access
//	@Description	Records a pending admin. The super-admin decides; on approval the admin receives password setup and email verification links.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			request	body		AdminRegistrationRequest	true	"Admin details"
//	@Success		201		{object}	MessageResponse
//	@Failure		400		{object}	ErrorResponse	"Missing or malformed fields"
//	@Failure		409		{object}	ErrorResponse	"Username or email already exists"
//	@Router			/admin-registration-request [post].
func (h *AdminHandler) HandleRegistrationRequest(w http.ResponseWriter, r *http.Request) {
	var req AdminRegistrationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	_, err := h.AdminApprovalService.RequestRegistration(r.Context(), service.AdminRegistrationInput{
		Username:     req.Username,
		Email:        req.Email,
		FullName:     req.FullName,
		Phone:        req.Phone,
		Designation:  req.Designation,
		OfficialID:   req.OfficialID,
		DistrictName: req.DistrictName,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, MessageResponse{
		Success: true,
		Message: "Registration request submitted. You will receive an email once the Super Admin reviews it.",
	})
}

// HandleLogin handles POST /adminLogin
//
//	@Summary		Admin login, phase one
//	@Description	Checks the credentials and account state, then emails a 6 digit code valid for 10 minutes. No session is created yet.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Credentials"
//	@Success		200		{object}	AdminLoginResponse
//	@Failure		401		{object}	ErrorResponse	"Invalid username or password"
//	@Failure		403		{object}	ErrorResponse	"Pending, rejected, suspended or setup incomplete"
//	@Failure		502		{object}	ErrorResponse	"The code could not be emailed"
//	@Router			/adminLogin [post].
func (h *AdminHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	challenge, err := h.AdminAuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, AdminLoginResponse{
		Success:    true,
		Message:    "OTP sent to your registered email",
		RequireOTP: true,
		Username:   challenge.Username,
		ExpiresAt:  challenge.ExpiresAt,
		DevOTP:     challenge.DevOTP,
	})
}

// HandleVerifyOTP handles POST /admin-verify-otp
//
//	@Summary		Admin login, phase two
//	@Description	Consumes the emailed code and sets the admin session cookie.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			request	body		AdminVerifyOTPRequest	true	"Username and code"
//	@Success		200		{object}	AdminSessionResponse
//	@Failure		400		{object}	ErrorResponse	"Invalid or expired OTP"
//	@Failure		403		{object}	ErrorResponse	"Account no longer allowed to log in"
//	@Router			/admin-verify-otp [post].
func (h *AdminHandler) HandleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AdminVerifyOTPRequest
	if !decodeBody(w, r, &req) {
		return
	}

	a, err := h.AdminAuthService.VerifyOTP(ctx, req.Username, req.OTP, func(a domain.Admin) error {
		_, err := h.Sessions.Issue(ctx, w, session.Principal{
			Kind:      session.KindAdmin,
			SubjectID: a.ID,
			Username:  a.Username,
			Email:     a.Email,
			District:  a.DistrictName,
		})
		return err
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, AdminSessionResponse{
		Success:  true,
		Message:  "Login successful",
		Redirect: adminDashboard,
		Admin: AdminIdentity{
			ID:       a.ID,
			Username: a.Username,
			Email:    a.Email,
			District: a.DistrictName,
		},
	})
}

// HandleSetupPassword handles POST /setup-admin-password
//
//	@Summary		Set the admin password
//	@Description	Consumes the password setup token from the approval email and activates the account. The token works once and expires after 24 hours.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SetupPasswordRequest	true	"Token and new password"
//	@Success		200		{object}	MessageResponse
//	@Failure		400		{object}	ErrorResponse	"Invalid token or password"
//	@Router			/setup-admin-password [post].
func (h *AdminHandler) HandleSetupPassword(w http.ResponseWriter, r *http.Request) {
	var req SetupPasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
		httpx.WriteError(w, http.StatusBadRequest, "Passwords do not match")
		return
	}

	a, err := h.AdminAuthService.SetupPassword(r.Context(), req.Token, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	slogx.FromContext(r.Context()).Info("admin password set", slog.String("admin", a.Username))
	httpx.WriteJSON(w, http.StatusOK, MessageResponse{
		Success: true,
		Message: "Password set successfully. Please verify your email, then log in.",
	})
}

// HandleVerifyEmail handles GET /verify-admin-email
//
//	@Summary		Verify the admin email address
//	@Description	Consumes the email verification token from the approval email. The token works once and expires after 7 days.
//	@Tags			Admin
//	@Produce		json
//	@Param			token	query		string	true	"Email verification token"
//	@Success		200		{object}	MessageResponse
//	@Failure		400		{object}	ErrorResponse	"Invalid or expired link"
//	@Router			/verify-admin-email [get].
func (h *AdminHandler) HandleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	if _, err := h.AdminAuthService.VerifyEmail(r.Context(), r.URL.Query().Get("token")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Success: true, Message: "Email verified successfully"})
}

// HandleLogout handles POST /admin-logout
//
//	@Summary		Admin logout
//	@Tags			Admin
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{object}	MessageResponse
//	@Failure		401	{object}	ErrorResponse	"Not logged in"
//	@Router			/admin-logout [post].
func (h *AdminHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rec, _ := session.FromContext(ctx)

	if err := h.Sessions.Destroy(ctx, w, r); err != nil {
		slogx.FromContext(ctx).Warn("failed to delete session", slog.Any("error", err))
	}
	h.AdminAuthService.Logout(ctx, rec.Username)

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Success: true, Message: "Logged out successfully"})
}

// HandleCheckAuth handles GET /admin-check-auth
//
//	@Summary		Admin session check
//	@Tags			Admin
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{object}	AdminSessionResponse
//	@Failure		401	{object}	ErrorResponse	"Not logged in"
//	@Router			/admin-check-auth [get].
func (h *AdminHandler) HandleCheckAuth(w http.ResponseWriter, r *http.Request) {
	rec, _ := session.FromContext(r.Context())
	httpx.WriteJSON(w, http.StatusOK, AdminSessionResponse{
		Success:       true,
		Authenticated: true,
		Admin: AdminIdentity{
			ID:       rec.SubjectID,
			Username: rec.Username,
			Email:    rec.Email,
			District: rec.District,
		},
	})
}
