package http

import (
	"log/slog"
	"net/http"

	"github.com/securevoice/securevoice/internal/securevoice/service"
	"github.com/securevoice/securevoice/internal/securevoice/session"
	"github.com/securevoice/securevoice/pkg/httpx"
	"github.com/securevoice/securevoice/pkg/slogx"
)

// RegistrationHandler serves the citizen sign-up steps.
type RegistrationHandler struct {
	RegistrationService *service.RegistrationService
	Sessions            *session.Manager
}

// HandleSendOTP handles POST /api/auth/send-otp
//
//	@Summary		Start a registration
//	@Description	Issues a 6 digit code for a phone number or email and opens a registration session valid for 30 minutes.
//	@Description	The code expires after 5 minutes. Outside production the code is echoed as devOTP.
//	@Tags			Registration
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SendOTPRequest	true	"Phone or email"
//	@Success		200		{object}	SendOTPResponse
//	@Failure		400		{object}	ErrorResponse	"Missing or malformed identifier"
//	@Failure		409		{object}	ErrorResponse	"Identifier already registered"
//	@Failure		429		{object}	ErrorResponse	"Too many requests"
//	@Router			/api/auth/send-otp [post].
func (h *RegistrationHandler) HandleSendOTP(w http.ResponseWriter, r *http.Request) {
	var req SendOTPRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.RegistrationService.SendOTP(r.Context(), service.SendOTPInput{
		Phone: req.Phone,
		Email: req.Email,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, SendOTPResponse{
		Success:   true,
		Message:   "OTP sent successfully",
		SessionID: res.SessionID,
		ExpiresAt: res.ExpiresAt,
		DevOTP:    res.DevOTP,
	})
}

// HandleVerifyOTP handles POST /api/auth/verify-otp
//
//	@Summary		Verify the registration code
//	@Description	Checks the code for the session's phone or email and moves the session to step 2.
//	@Tags			Registration
//	@Accept			json
//	@Produce		json
//	@Param			request	body		VerifyOTPRequest	true	"Identifier, code and session"
//	@Success		200		{object}	StepResponse
//	@Failure		400		{object}	ErrorResponse	"Invalid or already used code"
//	@Failure		404		{object}	ErrorResponse	"No code or session"
//	@Failure		410		{object}	ErrorResponse	"Code or session expired"
//	@Router			/api/auth/verify-otp [post].
func (h *RegistrationHandler) HandleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req VerifyOTPRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sess, err := h.RegistrationService.VerifyOTP(r.Context(), service.VerifyOTPInput{
		Phone:     req.Phone,
		Email:     req.Email,
		OTP:       req.OTP,
		SessionID: req.SessionID,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newStepResponse("OTP verified successfully", sess))
}

// HandleVerifyNID handles POST /api/auth/verify-nid
//
//	@Summary		Record the national ID
//	@Description	Accepts a 10, 13 or 17 digit NID (separators are ignored) that no citizen has registered yet and moves the session to step 3.
//	@Tags			Registration
//	@Accept			json
//	@Produce		json
//	@Param			request	body		VerifyNIDRequest	true	"Identity fields"
//	@Success		200		{object}	StepResponse
//	@Failure		400		{object}	ErrorResponse	"Malformed NID or date of birth"
//	@Failure		409		{object}	ErrorResponse	"NID already registered"
//	@Router			/api/auth/verify-nid [post].
func (h *RegistrationHandler) HandleVerifyNID(w http.ResponseWriter, r *http.Request) {
	var req VerifyNIDRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sess, err := h.RegistrationService.VerifyNID(r.Context(), service.VerifyNIDInput{
		NID:        req.NID,
		DOB:        req.DOB,
		NameEn:     req.NameEn,
		NameBn:     req.NameBn,
		FatherName: req.FatherName,
		MotherName: req.MotherName,
		SessionID:  req.SessionID,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newStepResponse("NID verified successfully", sess))
}

// HandleSaveFace handles POST /api/auth/save-face
//
//	@Summary		Record the face capture
//	@Description	Stores a data:image URI on the session and moves it to step 4.
//	@Tags			Registration
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SaveFaceRequest	true	"Face image"
//	@Success		200		{object}	StepResponse
//	@Failure		400		{object}	ErrorResponse	"Missing or malformed image"
//	@Failure		413		{object}	ErrorResponse	"Image too large"
//	@Router			/api/auth/save-face [post].
func (h *RegistrationHandler) HandleSaveFace(w http.ResponseWriter, r *http.Request) {
	var req SaveFaceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sess, err := h.RegistrationService.SaveFace(r.Context(), req.SessionID, req.FaceImage)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newStepResponse("Face image saved successfully", sess))
}

// HandleSaveAddress handles POST /api/auth/save-address
//
//	@Summary		Record the address
//	@Description	Requires division and district and moves the session to step 5.
//	@Tags			Registration
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SaveAddressRequest	true	"Address"
//	@Success		200		{object}	StepResponse
//	@Failure		400		{object}	ErrorResponse	"Division or district missing"
//	@Router			/api/auth/save-address [post].
func (h *RegistrationHandler) HandleSaveAddress(w http.ResponseWriter, r *http.Request) {
	var req SaveAddressRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sess, err := h.RegistrationService.SaveAddress(r.Context(), service.AddressInput{
		Division:      req.Division,
		District:      req.District,
		PoliceStation: req.PoliceStation,
		Union:         req.Union,
		Village:       req.Village,
		PlaceDetails:  req.PlaceDetails,
		SessionID:     req.SessionID,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newStepResponse("Address saved successfully", sess))
}

// HandleSignup handles POST /api/signup
//
//	@Summary		Create the citizen account
//	@Description	Writes the user from the registration session and logs the caller in with a session cookie.
//	@Tags			Registration
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SignupRequest	true	"Account fields"
//	@Success		201		{object}	UserResponse
//	@Failure		400		{object}	ErrorResponse	"Invalid username, email or password"
//	@Failure		409		{object}	ErrorResponse	"Username, email or NID already registered"
//	@Router			/api/signup [post].
func (h *RegistrationHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SignupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := h.RegistrationService.Signup(ctx, service.SignupInput{
		Username:         req.Username,
		Email:            req.Email,
		Password:         req.Password,
		SessionID:        req.SessionID,
		Phone:            req.Phone,
		RegistrationData: req.RegistrationData,
	})
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
		// The account exists; the client can still log in normally.
		slogx.FromContext(ctx).Error("failed to issue session after signup", slog.String("user_id", u.ID), slog.Any("error", err))
	}

	httpx.WriteJSON(w, http.StatusCreated, UserResponse{
		Success:  true,
		Message:  "Registration successful",
		Redirect: "/profile",
		User:     u.Public(),
	})
}

// HandleStatus handles GET /api/auth/registration-status/{sessionId}
//
//	@Summary		Registration progress
//	@Description	Returns the session step, verification flags and the data collected so far (without the face image).
//	@Tags			Registration
//	@Produce		json
//	@Param			sessionId	path		string	true	"Registration session ID"
//	@Success		200			{object}	RegistrationStatusResponse
//	@Failure		404			{object}	ErrorResponse	"Unknown session"
//	@Failure		410			{object}	ErrorResponse	"Session expired"
//	@Router			/api/auth/registration-status/{sessionId} [get].
func (h *RegistrationHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	sess, err := h.RegistrationService.RegistrationStatus(r.Context(), r.PathValue("sessionId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	sess.Data.FaceImage = ""
	httpx.WriteJSON(w, http.StatusOK, RegistrationStatusResponse{Success: true, Session: sess})
}
