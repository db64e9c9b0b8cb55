package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/securevoice/securevoice/internal/securevoice/domain"
)

type adminRow struct {
	ID           string         `db:"id"`
	Username     string         `db:"username"`
	Email        string         `db:"email"`
	FullName     string         `db:"full_name"`
	Phone        string         `db:"phone"`
	Designation  string         `db:"designation"`
	OfficialID   string         `db:"official_id"`
	DistrictName string         `db:"district_name"`
	PasswordHash sql.NullString `db:"password_hash"`
	IsActive     bool           `db:"is_active"`
	LastLogin    sql.NullTime   `db:"last_login"`
	CreatedAt    time.Time      `db:"created_at"`
}

const adminColumns = `id, username, email, full_name, phone, designation, official_id,
	district_name, password_hash, is_active, last_login, created_at`

type adminsRepo struct {
	db sqlx.ExtContext
}

func (r *adminsRepo) CreateAdmin(ctx context.Context, a domain.Admin) error {
	_, err := sqlx.NamedExecContext(ctx, r.db, `
		INSERT INTO admins (`+adminColumns+`)
		VALUES (:id, :username, :email, :full_name, :phone, :designation, :official_id,
			:district_name, :password_hash, :is_active, :last_login, :created_at)`,
		adminRow{
			ID:           a.ID,
			Username:     a.Username,
			Email:        a.Email,
			FullName:     a.FullName,
			Phone:        a.Phone,
			Designation:  a.Designation,
			OfficialID:   a.OfficialID,
			DistrictName: a.DistrictName,
			PasswordHash: mapOptionalString(a.PasswordHash),
			IsActive:     a.IsActive,
			LastLogin:    mapOptionalTime(a.LastLogin),
			CreatedAt:    a.CreatedAt.UTC(),
		})
	return mapConstraint(err)
}

func (r *adminsRepo) GetAdminByID(ctx context.Context, id string) (domain.Admin, error) {
	var row adminRow
	err := sqlx.GetContext(ctx, r.db, &row, `SELECT `+adminColumns+` FROM admins WHERE id = ?`, id)
	if err != nil {
		return domain.Admin{}, mapNotFound(err)
	}
	return mapAdmin(row), nil
}

func (r *adminsRepo) GetAdminByUsername(ctx context.Context, username string) (domain.Admin, error) {
	var row adminRow
	err := sqlx.GetContext(ctx, r.db, &row, `SELECT `+adminColumns+` FROM admins WHERE username = ?`, username)
	if err != nil {
		return domain.Admin{}, mapNotFound(err)
	}
	return mapAdmin(row), nil
}

func (r *adminsRepo) UsernameTaken(ctx context.Context, username string) (bool, error) {
	return exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM admins WHERE username = ?)`, username)
}

func (r *adminsRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	return exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM admins WHERE email = ?)`, email)
}

func (r *adminsRepo) SetPassword(ctx context.Context, adminID, hash string) error {
	return requireRow(r.db.ExecContext(ctx,
		`UPDATE admins SET password_hash = ?, is_active = 1 WHERE id = ?`, hash, adminID))
}

func (r *adminsRepo) SetActive(ctx context.Context, adminID string, active bool) error {
	return requireRow(r.db.ExecContext(ctx,
		`UPDATE admins SET is_active = ? WHERE id = ?`, active, adminID))
}

func (r *adminsRepo) UpdateLastLogin(ctx context.Context, adminID string, at time.Time) error {
	return requireRow(r.db.ExecContext(ctx,
		`UPDATE admins SET last_login = ? WHERE id = ?`, at.UTC(), adminID))
}

func mapAdmin(row adminRow) domain.Admin {
	return domain.Admin{
		ID:           row.ID,
		Username:     row.Username,
		Email:        row.Email,
		FullName:     row.FullName,
		Phone:        row.Phone,
		Designation:  row.Designation,
		OfficialID:   row.OfficialID,
		DistrictName: row.DistrictName,
		PasswordHash: mapNullStringPtr(row.PasswordHash),
		IsActive:     row.IsActive,
		LastLogin:    mapNullTimePtr(row.LastLogin),
		CreatedAt:    row.CreatedAt.UTC(),
	}
}
