package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/securevoice/securevoice/internal/securevoice/service"
	"github.com/securevoice/securevoice/internal/securevoice/session"
	"github.com/securevoice/securevoice/pkg/httpx"
	"github.com/securevoice/securevoice/pkg/slogx"
)

// UserAuthHandler serves citizen login and session endpoints.
type UserAuthHandler struct {
	UserAuthService *service.UserAuthService
	Sessions        *session.Manager
}

// HandleLogin handles POST /api/login
//
//	@Summary		Citizen login
//	@Tags			Citizen
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Credentials"
//	@Success		200		{object}	UserResponse
//	@Failure		400		{object}	ErrorResponse	"Missing credentials"
//	@Failure		401		{object}	ErrorResponse	"Invalid username or password"
//	@Router			/api/login [post].
func (h *UserAuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := h.UserAuthService.Login(ctx, req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if _, err := h.Sessions.Issue(ctx, w, session.Principal{
		Kind:      session.KindUser,
		SubjectID: u.ID,
		Username:  u.Username,
		Email:     u.Email,
	}); err != nil {
		writeServiceError(w, r, err)
		return
	}

	slogx.FromContext(ctx).Info("user logged in", slog.String("user_id", u.ID))
	httpx.WriteJSON(w, http.StatusOK, UserResponse{
		Success:  true,
		Message:  "Login successful",
		Redirect: "/profile",
		User:     u.Public(),
	})
}

// HandleLogout handles POST /api/logout
//
//	@Summary		Citizen logout
//	@Tags			Citizen
//	@Produce		json
//	@Success		200	{object}	MessageResponse
//	@Router			/api/logout [post].
func (h *UserAuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Destroy(r.Context(), w, r); err != nil {
		slogx.FromContext(r.Context()).Warn("failed to delete session", slog.Any("error", err))
	}
	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Success: true, Message: "Logged out successfully"})
}

// HandleCheckSession handles GET /api/check-session
//
//	@Summary		Citizen session check
//	@Description	Reports whether the session cookie belongs to a logged in citizen.
//	@Tags			Citizen
//	@Produce		json
//	@Success		200	{object}	CheckSessionResponse
//	@Router			/api/check-session [get].
func (h *UserAuthHandler) HandleCheckSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rec, err := h.Sessions.Load(r)
	if err != nil && !errors.Is(err, session.ErrNoSession) {
		writeServiceError(w, r, err)
		return
	}
	if err != nil || rec.Kind != session.KindUser {
		httpx.WriteJSON(w, http.StatusOK, CheckSessionResponse{Success: true})
		return
	}

	u, err := h.UserAuthService.User(ctx, rec.SubjectID)
	if errors.Is(err, service.ErrUserNotFound) {
		httpx.WriteJSON(w, http.StatusOK, CheckSessionResponse{Success: true})
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	pub := u.Public()
	httpx.WriteJSON(w, http.StatusOK, CheckSessionResponse{Success: true, Authenticated: true, User: &pub})
}

// HandleProfile handles GET /api/profile
//
//	@Summary		Citizen profile
//	@Description	Returns the logged in citizen's own record.
//	@Tags			Citizen
//	@Produce		json
//	@Success		200	{object}	ProfileResponse
//	@Failure		401	{object}	ErrorResponse	"Not logged in"
//	@Failure		404	{object}	ErrorResponse	"User not found"
//	@Router			/api/profile [get].
func (h *UserAuthHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	rec, _ := session.FromContext(r.Context())

	u, err := h.UserAuthService.User(r.Context(), rec.SubjectID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	httpx.WriteJSON(w, http.StatusOK, ProfileResponse{Success: true, User: u.Profile()})
}

// HandleUpdateProfile handles POST /api/update-profile
//
//	@Summary		Update the citizen profile
//	@Description	Replaces name, phone, date of birth and address. The age is recomputed from the date of birth and the location from the address parts.
//	@Tags			Citizen
//	@Accept			json
//	@Produce		json
//	@Param			request	body		UpdateProfileRequest	true	"Profile fields"
//	@Success		200		{object}	ProfileResponse
//	@Failure		400		{object}	ErrorResponse	"Missing name or bad date of birth"
//	@Failure		401		{object}	ErrorResponse	"Not logged in"
//	@Failure		409		{object}	ErrorResponse	"Phone number already registered"
//	@Router			/api/update-profile [post].
func (h *UserAuthHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	rec, _ := session.FromContext(r.Context())

	var req UpdateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := h.UserAuthService.UpdateProfile(r.Context(), rec.SubjectID, service.ProfileInput{
		FullName:      req.FullName,
		Phone:         req.Phone,
		DOB:           req.DOB,
		Division:      req.Division,
		District:      req.District,
		PoliceStation: req.PoliceStation,
		Union:         req.Union,
		Village:       req.Village,
		PlaceDetails:  req.PlaceDetails,
		Location:      req.Location,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, ProfileResponse{
		Success: true,
		Message: "Profile updated successfully",
		User:    u.Profile(),
	})
}
