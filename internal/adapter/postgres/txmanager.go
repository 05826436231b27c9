package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// txBeginner is satisfied by *pgxpool.Pool.
type txBeginner interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

// TxManager runs units of work (logging a meal template, for example) in one
// transaction. Repositories pick the transaction up through QuerierFromCtx.
type TxManager struct {
	db   txBeginner
	opts pgx.TxOptions
}

// NewTxManager creates a TxManager using Read Committed, the PostgreSQL default.
func NewTxManager(db txBeginner) *TxManager {
	return &TxManager{db: db}
}

// RunInTx commits when fn returns nil and rolls back otherwise; fn's error is
// returned unchanged. A panic in fn rolls back and propagates. Called inside
// another RunInTx, fn joins the outer transaction.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if InTx(ctx) {
		return fn(ctx)
	}
	return pgx.BeginTxFunc(ctx, m.db, m.opts, func(tx pgx.Tx) error {
		return fn(withTx(ctx, tx))
	})
}
