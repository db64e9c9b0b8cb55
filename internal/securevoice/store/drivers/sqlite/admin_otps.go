package sqlite

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/securevoice/securevoice/internal/securevoice/domain"
)

type adminOTPRow struct {
	ID        string    `db:"id"`
	AdminID   string    `db:"admin_id"`
	Code      string    `db:"otp_code"`
	ExpiresAt time.Time `db:"expires_at"`
	IsUsed    bool      `db:"is_used"`
	CreatedAt time.Time `db:"created_at"`
}

type adminOTPsRepo struct {
	db sqlx.ExtContext
}

func (r *adminOTPsRepo) CreateOTP(ctx context.Context, o domain.AdminOTP) error {
	_, err := sqlx.NamedExecContext(ctx, r.db, `
		INSERT INTO admin_otps (id, admin_id, otp_code, expires_at, is_used, created_at)
		VALUES (:id, :admin_id, :otp_code, :expires_at, :is_used, :created_at)`,
		adminOTPRow{
			ID:        o.ID,
			AdminID:   o.AdminID,
			Code:      o.Code,
			ExpiresAt: o.ExpiresAt.UTC(),
			IsUsed:    o.IsUsed,
			CreatedAt: o.CreatedAt.UTC(),
		})
	return mapConstraint(err)
}

func (r *adminOTPsRepo) FindUnusedOTP(ctx context.Context, adminID, code string) (domain.AdminOTP, error) {
	var row adminOTPRow
	err := sqlx.GetContext(ctx, r.db, &row, `
		SELECT id, admin_id, otp_code, expires_at, is_used, created_at
		FROM admin_otps
		WHERE admin_id = ? AND otp_code = ? AND is_used = 0
		ORDER BY created_at DESC, id DESC
		LIMIT 1`, adminID, code)
	if err != nil {
		return domain.AdminOTP{}, mapNotFound(err)
	}
	return domain.AdminOTP{
		ID:        row.ID,
		AdminID:   row.AdminID,
		Code:      row.Code,
		ExpiresAt: row.ExpiresAt.UTC(),
		IsUsed:    row.IsUsed,
		CreatedAt: row.CreatedAt.UTC(),
	}, nil
}

func (r *adminOTPsRepo) MarkOTPUsed(ctx context.Context, id string) error {
	return requireRow(r.db.ExecContext(ctx,
		`UPDATE admin_otps SET is_used = 1 WHERE id = ? AND is_used = 0`, id))
}

func (r *adminOTPsRepo) InvalidateOTPs(ctx context.Context, adminID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE admin_otps SET is_used = 1 WHERE admin_id = ? AND is_used = 0`, adminID)
	return err
}

func (r *adminOTPsRepo) DeleteStaleOTPs(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM admin_otps WHERE is_used = 1 OR expires_at <= ?`, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
