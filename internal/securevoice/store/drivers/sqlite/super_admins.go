package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/securevoice/securevoice/internal/securevoice/domain"
)

type superAdminRow struct {
	ID           string         `db:"id"`
	Username     string         `db:"username"`
	Email        string         `db:"email"`
	FullName     string         `db:"full_name"`
	PasswordHash string         `db:"password_hash"`
	TOTPSecret   sql.NullString `db:"totp_secret"`
	IsActive     bool           `db:"is_active"`
	LastLogin    sql.NullTime   `db:"last_login"`
	CreatedAt    time.Time      `db:"created_at"`
}

const superAdminColumns = `id, username, email, full_name, password_hash, totp_secret,
	is_active, last_login, created_at`

type superAdminsRepo struct {
	db sqlx.ExtContext
}

func (r *superAdminsRepo) UpsertSuperAdmin(ctx context.Context, sa domain.SuperAdmin) error {
	row := superAdminRow{
		ID:           sa.ID,
		Username:     sa.Username,
		Email:        sa.Email,
		FullName:     sa.FullName,
		PasswordHash: sa.PasswordHash,
		TOTPSecret:   mapOptionalString(sa.TOTPSecret),
		IsActive:     true,
		CreatedAt:    sa.CreatedAt.UTC(),
	}

	res, err := sqlx.NamedExecContext(ctx, r.db, `
		UPDATE super_admins
		SET email = :email,
			full_name = :full_name,
			password_hash = :password_hash,
			totp_secret = :totp_secret,
			is_active = 1
		WHERE username = :username`, row)
	if err != nil {
		return mapConstraint(err)
	}
	if n, err := res.RowsAffected(); err != nil || n > 0 {
		return err
	}

	_, err = sqlx.NamedExecContext(ctx, r.db, `
		INSERT INTO super_admins (`+superAdminColumns+`)
		VALUES (:id, :username, :email, :full_name, :password_hash, :totp_secret,
			:is_active, :last_login, :created_at)`, row)
	return mapConstraint(err)
}

func (r *superAdminsRepo) GetSuperAdminByID(ctx context.Context, id string) (domain.SuperAdmin, error) {
	var row superAdminRow
	err := sqlx.GetContext(ctx, r.db, &row, `SELECT `+superAdminColumns+` FROM super_admins WHERE id = ?`, id)
	if err != nil {
		return domain.SuperAdmin{}, mapNotFound(err)
	}
	return mapSuperAdmin(row), nil
}

func (r *superAdminsRepo) GetSuperAdminByUsername(ctx context.Context, username string) (domain.SuperAdmin, error) {
	var row superAdminRow
	err := sqlx.GetContext(ctx, r.db, &row, `SELECT `+superAdminColumns+` FROM super_admins WHERE username = ?`, username)
	if err != nil {
		return domain.SuperAdmin{}, mapNotFound(err)
	}
	return mapSuperAdmin(row), nil
}

func (r *superAdminsRepo) UpdateSuperAdminLastLogin(ctx context.Context, id string, at time.Time) error {
	return requireRow(r.db.ExecContext(ctx,
		`UPDATE super_admins SET last_login = ? WHERE id = ?`, at.UTC(), id))
}

func (r *superAdminsRepo) UpdateSuperAdminPasswordHash(ctx context.Context, id, hash string) error {
	return requireRow(r.db.ExecContext(ctx,
		`UPDATE super_admins SET password_hash = ? WHERE id = ?`, hash, id))
}

func mapSuperAdmin(row superAdminRow) domain.SuperAdmin {
	return domain.SuperAdmin{
		ID:           row.ID,
		Username:     row.Username,
		Email:        row.Email,
		FullName:     row.FullName,
		PasswordHash: row.PasswordHash,
		TOTPSecret:   mapNullStringPtr(row.TOTPSecret),
		IsActive:     row.IsActive,
		LastLogin:    mapNullTimePtr(row.LastLogin),
		CreatedAt:    row.CreatedAt.UTC(),
	}
}
