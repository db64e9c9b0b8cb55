package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/securevoice/securevoice/internal/securevoice/domain"
	"github.com/securevoice/securevoice/internal/securevoice/store"
	"github.com/securevoice/securevoice/pkg/idx"
	"github.com/securevoice/securevoice/pkg/slogx"
)

const (
	DefaultAuditLimit = 500
	MaxAuditLimit     = 1000
	recentActivity    = 20
)

// AuditEvent is one security relevant action to record.
type AuditEvent struct {
	Actor          string
	Action         string
	Result         domain.AuditResult
	Details        any // strings are stored as-is, anything else as JSON
	TargetUsername string
	ComplaintID    *int64
}

// Auditor appends to the audit log. Recording never fails the caller: write
// errors are logged and dropped.
type Auditor struct {
	Store store.Store
	Clock Clock
}

// Record appends e, stamping it with the caller info from ctx.
func (a *Auditor) Record(ctx context.Context, e AuditEvent) {
	if a == nil {
		return
	}
	if e.Result == "" {
		e.Result = domain.AuditSuccess
	}

	info := ClientInfoFromContext(ctx)
	entry := domain.AuditEntry{
		ID:             idx.New().String(),
		Actor:          e.Actor,
		Action:         e.Action,
		Result:         e.Result,
		Details:        encodeDetails(e.Details),
		IPAddress:      info.IPAddress,
		UserAgent:      info.UserAgent,
		ComplaintID:    e.ComplaintID,
		TargetUsername: e.TargetUsername,
		Timestamp:      a.Clock.now(),
	}

	// The entry must outlive a cancelled request.
	if err := a.Store.AuditLogs().AppendAuditLog(context.WithoutCancel(ctx), entry); err != nil {
		slogx.FromContext(ctx).Error("audit append failed",
			slog.String("action", e.Action),
			slog.String("actor", e.Actor),
			slog.Any("error", err),
		)
	}
}

func encodeDetails(v any) string {
	switch d := v.(type) {
	case nil:
		return ""
	case string:
		return d
	default:
		b, err := json.Marshal(d)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// AuditQuery holds the raw audit filters as the super-admin supplies them.
// Dates are YYYY-MM-DD and both ends are inclusive.
type AuditQuery struct {
	AdminUsername string
	Action        string
	StartDate     string
	EndDate       string
	Limit         int
}

// Query returns matching entries, newest first.
func (a *Auditor) Query(ctx context.Context, q AuditQuery) ([]domain.AuditEntry, error) {
	f := domain.AuditFilter{
		Actor:  strings.TrimSpace(q.AdminUsername),
		Action: strings.TrimSpace(q.Action),
		Limit:  clampAuditLimit(q.Limit),
	}

	if s := strings.TrimSpace(q.StartDate); s != "" {
		from, err := time.Parse(dobLayout, s)
		if err != nil {
			return nil, ErrInvalidDate
		}
		f.From = &from
	}
	if s := strings.TrimSpace(q.EndDate); s != "" {
		end, err := time.Parse(dobLayout, s)
		if err != nil {
			return nil, ErrInvalidDate
		}
		to := end.AddDate(0, 0, 1)
		f.To = &to
	}

	return a.Store.AuditLogs().QueryAuditLogs(ctx, f)
}

// Recent returns the latest n entries.
func (a *Auditor) Recent(ctx context.Context, n int) ([]domain.AuditEntry, error) {
	return a.Store.AuditLogs().QueryAuditLogs(ctx, domain.AuditFilter{Limit: n})
}

func clampAuditLimit(n int) int {
	switch {
	case n <= 0:
		return DefaultAuditLimit
	case n > MaxAuditLimit:
		return MaxAuditLimit
	default:
		return n
	}
}
