package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/securevoice/securevoice/internal/securevoice/store"
	modsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

type Store struct {
	db  *sqlx.DB
	dsn string
}

// NewStore opens the database at dsn. Foreign keys are enforced on every
// pooled connection and times are written in SQLite's own layout so that
// range comparisons in SQL stay lexical.
func NewStore(dsn string) (*Store, error) {
	db, err := sqlx.Open("sqlite", withPragmas(dsn))
	if err != nil {
		return nil, err
	}

	// Each connection to :memory: is a separate database.
	if strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, dsn: dsn}, nil
}

func withPragmas(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, committing on success.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Users() store.Users                           { return &usersRepo{db: s.db} }
func (s *Store) Admins() store.Admins                         { return &adminsRepo{db: s.db} }
func (s *Store) Approvals() store.Approvals                   { return &approvalsRepo{db: s.db} }
func (s *Store) VerificationTokens() store.VerificationTokens { return &tokensRepo{db: s.db} }
func (s *Store) AdminOTPs() store.AdminOTPs                   { return &adminOTPsRepo{db: s.db} }
func (s *Store) AuditLogs() store.AuditLogs                   { return &auditLogsRepo{db: s.db} }
func (s *Store) SuperAdmins() store.SuperAdmins               { return &superAdminsRepo{db: s.db} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

var uniqueColumnRe = regexp.MustCompile(`UNIQUE constraint failed: (\w+)\.(\w+)`)

// mapConstraint turns a unique violation into a *store.ConflictError naming
// the offending column.
func mapConstraint(err error) error {
	if err == nil {
		return nil
	}
	var se *modsqlite.Error
	if !errors.As(err, &se) {
		return err
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		m := uniqueColumnRe.FindStringSubmatch(se.Error())
		if m == nil {
			return store.ErrAlreadyExists
		}
		return &store.ConflictError{Table: m[1], Field: m[2]}
	}
	return err
}

// requireRow reports ErrNotFound when an UPDATE or DELETE matched nothing.
func requireRow(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func exists(ctx context.Context, q sqlx.QueryerContext, query string, args ...any) (bool, error) {
	var found bool
	if err := sqlx.GetContext(ctx, q, &found, query, args...); err != nil {
		return false, err
	}
	return found, nil
}

func mapNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func mapStringNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func mapNullStringPtr(ns sql.NullString) *string {
	if ns.Valid {
		val := ns.String
		return &val
	}
	return nil
}

func mapOptionalString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func mapNullTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		val := nt.Time.UTC()
		return &val
	}
	return nil
}

func mapOptionalTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
