package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/securevoice/securevoice/internal/securevoice/domain"
)

type tokenRow struct {
	ID        string       `db:"id"`
	AdminID   string       `db:"admin_id"`
	TokenType string       `db:"token_type"`
	TokenHash string       `db:"token_hash"`
	ExpiresAt time.Time    `db:"expires_at"`
	IsUsed    bool         `db:"is_used"`
	UsedAt    sql.NullTime `db:"used_at"`
	CreatedAt time.Time    `db:"created_at"`
}

const tokenColumns = `id, admin_id, token_type, token_hash, expires_at, is_used, used_at, created_at`

type tokensRepo struct {
	db sqlx.ExtContext
}

func (r *tokensRepo) CreateToken(ctx context.Context, t domain.VerificationToken) error {
	_, err := sqlx.NamedExecContext(ctx, r.db, `
		INSERT INTO admin_verification_tokens (`+tokenColumns+`)
		VALUES (:id, :admin_id, :token_type, :token_hash, :expires_at, :is_used, :used_at, :created_at)`,
		tokenRow{
			ID:        t.ID,
			AdminID:   t.AdminID,
			TokenType: string(t.Type),
			TokenHash: t.TokenHash,
			ExpiresAt: t.ExpiresAt.UTC(),
			IsUsed:    t.IsUsed,
			UsedAt:    mapOptionalTime(t.UsedAt),
			CreatedAt: t.CreatedAt.UTC(),
		})
	return mapConstraint(err)
}

func (r *tokensRepo) GetTokenByHash(ctx context.Context, typ domain.TokenType, hash string) (domain.VerificationToken, error) {
	var row tokenRow
	err := sqlx.GetContext(ctx, r.db, &row, `
		SELECT `+tokenColumns+` FROM admin_verification_tokens
		WHERE token_hash = ? AND token_type = ?`, hash, string(typ))
	if err != nil {
		return domain.VerificationToken{}, mapNotFound(err)
	}
	return mapToken(row), nil
}

func (r *tokensRepo) MarkTokenUsed(ctx context.Context, id string, at time.Time) error {
	return requireRow(r.db.ExecContext(ctx, `
		UPDATE admin_verification_tokens SET is_used = 1, used_at = ?
		WHERE id = ? AND is_used = 0`, at.UTC(), id))
}

func (r *tokensRepo) LatestToken(ctx context.Context, adminID string, typ domain.TokenType) (domain.VerificationToken, error) {
	var row tokenRow
	err := sqlx.GetContext(ctx, r.db, &row, `
		SELECT `+tokenColumns+` FROM admin_verification_tokens
		WHERE admin_id = ? AND token_type = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1`, adminID, string(typ))
	if err != nil {
		return domain.VerificationToken{}, mapNotFound(err)
	}
	return mapToken(row), nil
}

func mapToken(row tokenRow) domain.VerificationToken {
	return domain.VerificationToken{
		ID:        row.ID,
		AdminID:   row.AdminID,
		Type:      domain.TokenType(row.TokenType),
		TokenHash: row.TokenHash,
		ExpiresAt: row.ExpiresAt.UTC(),
		IsUsed:    row.IsUsed,
		UsedAt:    mapNullTimePtr(row.UsedAt),
		CreatedAt: row.CreatedAt.UTC(),
	}
}
