package postgres

import (
	"context"
	"database/sql"

	"github.com/ezhulati/liftout-platform-sub000/internal/repository"
)

type txKeyType struct{}

var txKey = txKeyType{}

// executor is satisfied by both *sql.DB and *sql.Tx, so repository methods
// can run standalone or join an ambient transaction.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type txManager struct {
	db *sql.DB
}

func NewTxManager(db *sql.DB) repository.TxManager {
	return &txManager{db: db}
}

func (m *txManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx := txFromContext(ctx); tx != nil {
		return fn(ctx) // already in a transaction
	}
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(context.WithValue(ctx, txKey, tx)); err != nil {
		return err
	}
	return tx.Commit()
}

func txFromContext(ctx context.Context) *sql.Tx {
	if v := ctx.Value(txKey); v != nil {
		if tx, ok := v.(*sql.Tx); ok {
			return tx
		}
	}
	return nil
}

// exec resolves the executor for a context: the ambient transaction if one
// is present, the pool otherwise.
func exec(ctx context.Context, db *sql.DB) executor {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return db
}
