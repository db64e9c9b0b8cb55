package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/securevoice/securevoice/internal/securevoice/domain"
)

type userRow struct {
	ID             string         `db:"id"`
	Username       string         `db:"username"`
	Email          string         `db:"email"`
	Phone          string         `db:"phone"`
	NID            sql.NullString `db:"nid"`
	PasswordHash   string         `db:"password_hash"`
	FullName       string         `db:"full_name"`
	NameBn         string         `db:"name_bn"`
	FatherName     string         `db:"father_name"`
	MotherName     string         `db:"mother_name"`
	DOB            string         `db:"dob"`
	Age            sql.NullInt64  `db:"age"`
	Division       string         `db:"division"`
	District       string         `db:"district"`
	PoliceStation  string         `db:"police_station"`
	Union          string         `db:"union_name"`
	Village        string         `db:"village"`
	PlaceDetails   string         `db:"place_details"`
	Location       string         `db:"location"`
	FaceImage      string         `db:"face_image"`
	IsVerified     bool           `db:"is_verified"`
	IsNIDVerified  bool           `db:"is_nid_verified"`
	IsFaceVerified bool           `db:"is_face_verified"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

const userColumns = `id, username, email, phone, nid, password_hash, full_name, name_bn,
	father_name, mother_name, dob, age, division, district, police_station, union_name,
	village, place_details, location, face_image, is_verified, is_nid_verified,
	is_face_verified, created_at, updated_at`

type usersRepo struct {
	db sqlx.ExtContext
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	row := toUserRow(u)
	_, err := sqlx.NamedExecContext(ctx, r.db, `
		INSERT INTO users (`+userColumns+`)
		VALUES (:id, :username, :email, :phone, :nid, :password_hash, :full_name, :name_bn,
			:father_name, :mother_name, :dob, :age, :division, :district, :police_station,
			:union_name, :village, :place_details, :location, :face_image, :is_verified,
			:is_nid_verified, :is_face_verified, :created_at, :updated_at)`, row)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateProfile(ctx context.Context, u domain.User) error {
	res, err := sqlx.NamedExecContext(ctx, r.db, `
		UPDATE users
		SET full_name = :full_name,
			phone = :phone,
			dob = :dob,
			age = :age,
			division = :division,
			district = :district,
			police_station = :police_station,
			union_name = :union_name,
			village = :village,
			place_details = :place_details,
			location = :location,
			updated_at = :updated_at
		WHERE id = :id`, toUserRow(u))
	return requireRow(res, mapConstraint(err))
}

func toUserRow(u domain.User) userRow {
	row := userRow{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		Phone:          u.Phone,
		NID:            mapStringNull(u.NID),
		PasswordHash:   u.PasswordHash,
		FullName:       u.FullName,
		NameBn:         u.NameBn,
		FatherName:     u.FatherName,
		MotherName:     u.MotherName,
		DOB:            u.DOB,
		Division:       u.Division,
		District:       u.District,
		PoliceStation:  u.PoliceStation,
		Union:          u.Union,
		Village:        u.Village,
		PlaceDetails:   u.PlaceDetails,
		Location:       u.Location,
		FaceImage:      u.FaceImage,
		IsVerified:     u.IsVerified,
		IsNIDVerified:  u.IsNIDVerified,
		IsFaceVerified: u.IsFaceVerified,
		CreatedAt:      u.CreatedAt.UTC(),
		UpdatedAt:      u.UpdatedAt.UTC(),
	}
	if u.Age != nil {
		row.Age = sql.NullInt64{Int64: int64(*u.Age), Valid: true}
	}
	return row
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	var row userRow
	err := sqlx.GetContext(ctx, r.db, &row, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	var row userRow
	err := sqlx.GetContext(ctx, r.db, &row, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) UsernameTaken(ctx context.Context, username string) (bool, error) {
	return exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)`, username)
}

func (r *usersRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	return exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`, email)
}

func (r *usersRepo) PhoneTaken(ctx context.Context, phone string) (bool, error) {
	return exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM users WHERE phone = ? AND phone <> '')`, phone)
}

func (r *usersRepo) NIDTaken(ctx context.Context, nid string) (bool, error) {
	return exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM users WHERE nid = ?)`, nid)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID, hash string) error {
	return requireRow(r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		hash, time.Now().UTC(), userID))
}

func mapUser(row userRow) domain.User {
	var age *int
	if row.Age.Valid {
		v := int(row.Age.Int64)
		age = &v
	}
	return domain.User{
		ID:             row.ID,
		Username:       row.Username,
		Email:          row.Email,
		Phone:          row.Phone,
		NID:            mapNullString(row.NID),
		PasswordHash:   row.PasswordHash,
		FullName:       row.FullName,
		NameBn:         row.NameBn,
		FatherName:     row.FatherName,
		MotherName:     row.MotherName,
		DOB:            row.DOB,
		Age:            age,
		Division:       row.Division,
		District:       row.District,
		PoliceStation:  row.PoliceStation,
		Union:          row.Union,
		Village:        row.Village,
		PlaceDetails:   row.PlaceDetails,
		Location:       row.Location,
		FaceImage:      row.FaceImage,
		IsVerified:     row.IsVerified,
		IsNIDVerified:  row.IsNIDVerified,
		IsFaceVerified: row.IsFaceVerified,
		CreatedAt:      row.CreatedAt.UTC(),
		UpdatedAt:      row.UpdatedAt.UTC(),
	}
}
