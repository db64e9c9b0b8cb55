package sqlite

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/securevoice/securevoice/internal/securevoice/store"
)

type txStore struct {
	tx *sqlx.Tx
}

func newTx(tx *sqlx.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // the outer DB stays open

// Ping is a no-op; the connection is held for the life of the transaction.
func (t *txStore) Ping(context.Context) error { return nil }

func (t *txStore) Tx(context.Context) (store.Tx, error) {
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(context.Context, func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Users() store.Users                           { return &usersRepo{db: t.tx} }
func (t *txStore) Admins() store.Admins                         { return &adminsRepo{db: t.tx} }
func (t *txStore) Approvals() store.Approvals                   { return &approvalsRepo{db: t.tx} }
func (t *txStore) VerificationTokens() store.VerificationTokens { return &tokensRepo{db: t.tx} }
func (t *txStore) AdminOTPs() store.AdminOTPs                   { return &adminOTPsRepo{db: t.tx} }
func (t *txStore) AuditLogs() store.AuditLogs                   { return &auditLogsRepo{db: t.tx} }
func (t *txStore) SuperAdmins() store.SuperAdmins               { return &superAdminsRepo{db: t.tx} }

func (t *txStore) ApplyMigrations() error { return nil } // applied before any tx is opened
