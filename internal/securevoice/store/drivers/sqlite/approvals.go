package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/securevoice/securevoice/internal/securevoice/domain"
)

type workflowRow struct {
	AdminID         string         `db:"admin_id"`
	Status          string         `db:"status"`
	RequestDate     time.Time      `db:"request_date"`
	ApprovalDate    sql.NullTime   `db:"approval_date"`
	ApprovedBy      sql.NullString `db:"approved_by"`
	RejectionReason sql.NullString `db:"rejection_reason"`
}

type requestRow struct {
	adminRow
	Status          string         `db:"status"`
	RequestDate     time.Time      `db:"request_date"`
	ApprovalDate    sql.NullTime   `db:"approval_date"`
	ApprovedBy      sql.NullString `db:"approved_by"`
	RejectionReason sql.NullString `db:"rejection_reason"`
}

type approvalsRepo struct {
	db sqlx.ExtContext
}

func (r *approvalsRepo) CreateWorkflow(ctx context.Context, w domain.ApprovalWorkflow) error {
	_, err := sqlx.NamedExecContext(ctx, r.db, `
		INSERT INTO admin_approval_workflow
			(admin_id, status, request_date, approval_date, approved_by, rejection_reason)
		VALUES (:admin_id, :status, :request_date, :approval_date, :approved_by, :rejection_reason)`,
		toWorkflowRow(w))
	return mapConstraint(err)
}

func (r *approvalsRepo) GetWorkflow(ctx context.Context, adminID string) (domain.ApprovalWorkflow, error) {
	var row workflowRow
	err := sqlx.GetContext(ctx, r.db, &row, `
		SELECT admin_id, status, request_date, approval_date, approved_by, rejection_reason
		FROM admin_approval_workflow WHERE admin_id = ?`, adminID)
	if err != nil {
		return domain.ApprovalWorkflow{}, mapNotFound(err)
	}
	return mapWorkflow(row), nil
}

func (r *approvalsRepo) UpdateWorkflow(ctx context.Context, w domain.ApprovalWorkflow, from domain.ApprovalStatus) error {
	arg := struct {
		workflowRow
		From string `db:"from_status"`
	}{toWorkflowRow(w), string(from)}
	res, err := sqlx.NamedExecContext(ctx, r.db, `
		UPDATE admin_approval_workflow
		SET status = :status,
			approval_date = :approval_date,
			approved_by = :approved_by,
			rejection_reason = :rejection_reason
		WHERE admin_id = :admin_id AND status = :from_status`, arg)
	return requireRow(res, err)
}

func (r *approvalsRepo) ListRequests(ctx context.Context, f domain.RequestFilter) ([]domain.AdminRequest, error) {
	query := `
		SELECT a.id, a.username, a.email, a.full_name, a.phone, a.designation, a.official_id,
			a.district_name, a.password_hash, a.is_active, a.last_login, a.created_at,
			w.status, w.request_date, w.approval_date, w.approved_by, w.rejection_reason
		FROM admins a
		JOIN admin_approval_workflow w ON w.admin_id = a.id`
	var (
		where []string
		args  []any
	)
	if f.Status != nil {
		where = append(where, "w.status = ?")
		args = append(args, string(*f.Status))
	}
	if f.District != "" {
		where = append(where, "a.district_name = ?")
		args = append(args, f.District)
	}
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY w.request_date DESC, a.id DESC`

	var rows []requestRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, err
	}

	out := make([]domain.AdminRequest, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.AdminRequest{
			Admin: mapAdmin(row.adminRow),
			Workflow: mapWorkflow(workflowRow{
				AdminID:         row.ID,
				Status:          row.Status,
				RequestDate:     row.RequestDate,
				ApprovalDate:    row.ApprovalDate,
				ApprovedBy:      row.ApprovedBy,
				RejectionReason: row.RejectionReason,
			}),
		})
	}
	return out, nil
}

func (r *approvalsRepo) Stats(ctx context.Context) (domain.ApprovalStats, error) {
	var row struct {
		Pending      int `db:"pending"`
		Approved     int `db:"approved"`
		Rejected     int `db:"rejected"`
		Suspended    int `db:"suspended"`
		ActiveAdmins int `db:"active_admins"`
	}
	err := sqlx.GetContext(ctx, r.db, &row, `
		SELECT
			COALESCE(SUM(CASE WHEN w.status = 'pending' THEN 1 ELSE 0 END), 0) AS pending,
			COALESCE(SUM(CASE WHEN w.status = 'approved' THEN 1 ELSE 0 END), 0) AS approved,
			COALESCE(SUM(CASE WHEN w.status = 'rejected' THEN 1 ELSE 0 END), 0) AS rejected,
			COALESCE(SUM(CASE WHEN w.status = 'suspended' THEN 1 ELSE 0 END), 0) AS suspended,
			COALESCE(SUM(CASE WHEN w.status = 'approved' AND a.is_active = 1 THEN 1 ELSE 0 END), 0) AS active_admins
		FROM admin_approval_workflow w
		JOIN admins a ON a.id = w.admin_id`)
	if err != nil {
		return domain.ApprovalStats{}, err
	}
	return domain.ApprovalStats{
		Pending:      row.Pending,
		Approved:     row.Approved,
		Rejected:     row.Rejected,
		Suspended:    row.Suspended,
		ActiveAdmins: row.ActiveAdmins,
	}, nil
}

func toWorkflowRow(w domain.ApprovalWorkflow) workflowRow {
	return workflowRow{
		AdminID:         w.AdminID,
		Status:          string(w.Status),
		RequestDate:     w.RequestDate.UTC(),
		ApprovalDate:    mapOptionalTime(w.ApprovalDate),
		ApprovedBy:      mapStringNull(w.ApprovedBy),
		RejectionReason: mapStringNull(w.RejectionReason),
	}
}

func mapWorkflow(row workflowRow) domain.ApprovalWorkflow {
	return domain.ApprovalWorkflow{
		AdminID:         row.AdminID,
		Status:          domain.ApprovalStatus(row.Status),
		RequestDate:     row.RequestDate.UTC(),
		ApprovalDate:    mapNullTimePtr(row.ApprovalDate),
		ApprovedBy:      mapNullString(row.ApprovedBy),
		RejectionReason: mapNullString(row.RejectionReason),
	}
}
