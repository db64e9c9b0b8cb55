package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/securevoice/securevoice/internal/securevoice/domain"
)

type auditLogRow struct {
	ID             string         `db:"id"`
	AdminUsername  string         `db:"admin_username"`
	Action         string         `db:"action"`
	Result         string         `db:"result"`
	ActionDetails  string         `db:"action_details"`
	IPAddress      string         `db:"ip_address"`
	UserAgent      string         `db:"user_agent"`
	ComplaintID    sql.NullInt64  `db:"complaint_id"`
	TargetUsername sql.NullString `db:"target_username"`
	CreatedAt      time.Time      `db:"created_at"`
}

const auditLogColumns = `id, admin_username, action, result, action_details, ip_address,
	user_agent, complaint_id, target_username, created_at`

type auditLogsRepo struct {
	db sqlx.ExtContext
}

func (r *auditLogsRepo) AppendAuditLog(ctx context.Context, e domain.AuditEntry) error {
	row := auditLogRow{
		ID:             e.ID,
		AdminUsername:  e.Actor,
		Action:         e.Action,
		Result:         string(e.Result),
		ActionDetails:  e.Details,
		IPAddress:      e.IPAddress,
		UserAgent:      e.UserAgent,
		TargetUsername: mapStringNull(e.TargetUsername),
		CreatedAt:      e.Timestamp.UTC(),
	}
	if e.ComplaintID != nil {
		row.ComplaintID = sql.NullInt64{Int64: *e.ComplaintID, Valid: true}
	}

	_, err := sqlx.NamedExecContext(ctx, r.db, `
		INSERT INTO audit_logs (`+auditLogColumns+`)
		VALUES (:id, :admin_username, :action, :result, :action_details, :ip_address,
			:user_agent, :complaint_id, :target_username, :created_at)`, row)
	return err
}

func (r *auditLogsRepo) QueryAuditLogs(ctx context.Context, f domain.AuditFilter) ([]domain.AuditEntry, error) {
	var (
		where []string
		args  []any
	)
	if f.Actor != "" {
		where = append(where, "admin_username = ?")
		args = append(args, f.Actor)
	}
	if f.Action != "" {
		where = append(where, "action = ?")
		args = append(args, f.Action)
	}
	if f.From != nil {
		where = append(where, "created_at >= ?")
		args = append(args, f.From.UTC())
	}
	if f.To != nil {
		where = append(where, "created_at < ?")
		args = append(args, f.To.UTC())
	}

	query := `SELECT ` + auditLogColumns + ` FROM audit_logs`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	var rows []auditLogRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, err
	}

	out := make([]domain.AuditEntry, 0, len(rows))
	for _, row := range rows {
		entry := domain.AuditEntry{
			ID:             row.ID,
			Actor:          row.AdminUsername,
			Action:         row.Action,
			Result:         domain.AuditResult(row.Result),
			Details:        row.ActionDetails,
			IPAddress:      row.IPAddress,
			UserAgent:      row.UserAgent,
			TargetUsername: mapNullString(row.TargetUsername),
			Timestamp:      row.CreatedAt.UTC(),
		}
		if row.ComplaintID.Valid {
			id := row.ComplaintID.Int64
			entry.ComplaintID = &id
		}
		out = append(out, entry)
	}
	return out, nil
}
