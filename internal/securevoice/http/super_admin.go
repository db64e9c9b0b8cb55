package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/securevoice/securevoice/internal/securevoice/domain"
	"github.com/securevoice/securevoice/internal/securevoice/service"
	"github.com/securevoice/securevoice/internal/securevoice/session"
	"github.com/securevoice/securevoice/pkg/httpx"
	"github.com/securevoice/securevoice/pkg/slogx"
)

const superAdminDashboard = "/super-admin-dashboard"

// SuperAdminHandler serves the super-admin console endpoints.
type SuperAdminHandler struct {
	SuperAdminService    *service.SuperAdminService
	AdminApprovalService *service.AdminApprovalService
	Auditor              *service.Auditor
	Sessions             *session.Manager
}

// HandleLogin handles POST /super-admin-login
//
//	@Summary		Super-admin login
//	@Description	Password plus, when enrolled, a TOTP code from an authenticator app.
//	@Tags			Super Admin
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SuperAdminLoginRequest	true	"Credentials"
//	@Success		200		{object}	SuperAdminSessionResponse
//	@Failure		401		{object}	ErrorResponse	"Invalid credentials"
//	@Router			/super-admin-login [post].
func (h *SuperAdminHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SuperAdminLoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sa, err := h.SuperAdminService.Login(ctx, req.Username, req.Password, req.TOTPCode)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if _, err := h.Sessions.Issue(ctx, w, session.Principal{
		Kind:      session.KindSuperAdmin,
		SubjectID: sa.ID,
		Username:  sa.Username,
		Email:     sa.Email,
	}); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, SuperAdminSessionResponse{
		Success:    true,
		Message:    "Login successful",
		Redirect:   superAdminDashboard,
		SuperAdmin: SuperAdminIdentity{ID: sa.ID, Username: sa.Username},
	})
}

// HandleLogout handles POST /super-admin-logout
//
//	@Summary		Super-admin logout
//	@Tags			Super Admin
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{object}	MessageResponse
//	@Router			/super-admin-logout [post].
func (h *SuperAdminHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rec, _ := session.FromContext(ctx)

	if err := h.Sessions.Destroy(ctx, w, r); err != nil {
		slogx.FromContext(ctx).Warn("failed to delete session", slog.Any("error", err))
	}
	h.SuperAdminService.Logout(ctx, rec.Username)

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Success: true, Message: "Logged out successfully"})
}

// HandleCheckAuth handles GET /super-admin-check-auth
//
//	@Summary		Super-admin session check
//	@Tags			Super Admin
//	@Produce		json
//	@Success		200	{object}	SuperAdminSessionResponse
//	@Failure		401	{object}	SuperAdminSessionResponse	"authenticated is false"
//	@Router			/super-admin-check-auth [get].
func (h *SuperAdminHandler) HandleCheckAuth(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Sessions.Load(r)
	if err != nil && !errors.Is(err, session.ErrNoSession) {
		writeServiceError(w, r, err)
		return
	}
	if err != nil || rec.Kind != session.KindSuperAdmin {
		httpx.WriteJSON(w, http.StatusUnauthorized, map[string]bool{"success": false, "authenticated": false})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, SuperAdminSessionResponse{
		Success:       true,
		Authenticated: true,
		SuperAdmin:    SuperAdminIdentity{ID: rec.SubjectID, Username: rec.Username},
	})
}

// HandleApprove handles POST /super-admin-approve
//
//	@Summary		Approve a pending admin
//	@Description	Emails the admin a password setup link (24 hours) and an email verification link (7 days).
//	@Tags			Super Admin
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			request	body		DecisionRequest	true	"Admin username"
//	@Success		200		{object}	MessageResponse
//	@Failure		403		{object}	ErrorResponse	"Request is not pending"
//	@Failure		404		{object}	ErrorResponse	"Admin not found"
//	@Router			/super-admin-approve [post].
func (h *SuperAdminHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "Admin approved successfully. Setup links have been emailed.",
		func(actor string, req DecisionRequest) (domain.Admin, error) {
			return h.AdminApprovalService.Approve(r.Context(), actor, req.Username)
		})
}

// HandleReject handles POST /super-admin-reject
//
//	@Summary		Reject a pending admin
//	@Tags			Super Admin
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			request	body		DecisionRequest	true	"Admin username and reason"
//	@Success		200		{object}	MessageResponse
//	@Failure		400		{object}	ErrorResponse	"Reason missing"
//	@Failure		403		{object}	ErrorResponse	"Request is not pending"
//	@Router			/super-admin-reject [post].
func (h *SuperAdminHandler) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "Admin request rejected",
		func(actor string, req DecisionRequest) (domain.Admin, error) {
			return h.AdminApprovalService.Reject(r.Context(), actor, req.Username, req.Reason)
		})
}

// HandleSuspend handles POST /super-admin-suspend
//
//	@Summary		Suspend an approved admin
//	@Tags			Super Admin
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			request	body		DecisionRequest	true	"Admin username and optional reason"
//	@Success		200		{object}	MessageResponse
//	@Failure		403		{object}	ErrorResponse	"Admin is not approved"
//	@Router			/super-admin-suspend [post].
func (h *SuperAdminHandler) HandleSuspend(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "Admin suspended",
		func(actor string, req DecisionRequest) (domain.Admin, error) {
			return h.AdminApprovalService.Suspend(r.Context(), actor, req.Username, req.Reason)
		})
}

// HandleReactivate handles POST /super-admin-reactivate
//
//	@Summary		Reactivate a suspended admin
//	@Tags			Super Admin
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			request	body		DecisionRequest	true	"Admin username"
//	@Success		200		{object}	MessageResponse
//	@Failure		403		{object}	ErrorResponse	"Admin is not suspended"
//	@Router			/super-admin-reactivate [post].
func (h *SuperAdminHandler) HandleReactivate(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "Admin reactivated",
		func(actor string, req DecisionRequest) (domain.Admin, error) {
			return h.AdminApprovalService.Reactivate(r.Context(), actor, req.Username)
		})
}

func (h *SuperAdminHandler) decide(w http.ResponseWriter, r *http.Request, message string, fn func(actor string, req DecisionRequest) (domain.Admin, error)) {
	var req DecisionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rec, _ := session.FromContext(r.Context())

	if _, err := fn(rec.Username, req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Success: true, Message: message})
}

// HandlePendingRequests handles GET /super-admin/pending-requests
//
//	@Summary		Pending admin requests
//	@Tags			Super Admin
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{object}	RequestsResponse	"Newest first"
//	@Router			/super-admin/pending-requests [get].
func (h *SuperAdminHandler) HandlePendingRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.AdminApprovalService.PendingRequests(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, RequestsResponse{Success: true, Requests: newAdminRequestViews(reqs)})
}

// HandleAllRequests handles GET /super-admin/all-requests
//
//	@Summary		All admin requests
//	@Tags			Super Admin
//	@Security		SessionCookie
//	@Produce		json
//	@Param			status		query		string	false	"pending, approved, rejected or suspended"
//	@Param			district	query		string	false	"District name"
//	@Success		200			{object}	RequestsResponse	"Newest first"
//	@Failure		400			{object}	ErrorResponse		"Unknown status"
//	@Router			/super-admin/all-requests [get].
func (h *SuperAdminHandler) HandleAllRequests(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := domain.RequestFilter{District: q.Get("district")}
	if s := q.Get("status"); s != "" && s != "all" {
		status := domain.ApprovalStatus(s)
		f.Status = &status
	}

	reqs, err := h.AdminApprovalService.Requests(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, RequestsResponse{Success: true, Requests: newAdminRequestViews(reqs)})
}

// HandleAuditLogs handles GET /super-admin/audit-logs
//
//	@Summary		Audit log
//	@Tags			Super Admin
//	@Security		SessionCookie
//	@Produce		json
//	@Param			adminUsername	query		string	false	"Actor"
//	@Param			action			query		string	false	"Action, e.g. login or approve_admin"
//	@Param			startDate		query		string	false	"YYYY-MM-DD, inclusive"
//	@Param			endDate			query		string	false	"YYYY-MM-DD, inclusive"
//	@Param			limit			query		int		false	"Default 500, max 1000"
//	@Success		200				{object}	AuditLogsResponse	"Newest first"
//	@Failure		400				{object}	ErrorResponse		"Malformed date"
//	@Router			/super-admin/audit-logs [get].
func (h *SuperAdminHandler) HandleAuditLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	logs, err := h.Auditor.Query(r.Context(), service.AuditQuery{
		AdminUsername: q.Get("adminUsername"),
		Action:        q.Get("action"),
		StartDate:     q.Get("startDate"),
		EndDate:       q.Get("endDate"),
		Limit:         limit,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if logs == nil {
		logs = []domain.AuditEntry{}
	}
	httpx.WriteJSON(w, http.StatusOK, AuditLogsResponse{Success: true, Logs: logs})
}

// HandleStats handles GET /super-admin/stats
//
//	@Summary		Admin population and recent activity
//	@Tags			Super Admin
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{object}	StatsResponse
//	@Router			/super-admin/stats [get].
func (h *SuperAdminHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	dash, err := h.AdminApprovalService.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	recent := dash.RecentActivity
	if recent == nil {
		recent = []domain.AuditEntry{}
	}
	httpx.WriteJSON(w, http.StatusOK, StatsResponse{Success: true, Stats: dash.Stats, RecentActivity: recent})
}
