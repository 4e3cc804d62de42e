package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/muhammadchandra19/batch-matcher/pkg/errors"
)

type contextKey string

const txKey contextKey = "postgresql_transaction"

// GetTx extracts transaction from context
func GetTx(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey).(pgx.Tx)
	return tx, ok
}

// WithTx executes fn within a transaction. Statements issued through a Client with the
// context passed to fn join the transaction. The transaction is rolled back when fn fails.
func WithTx(ctx context.Context, db PostgreSQLClient, fn func(ctx context.Context) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return errors.NewTracer("failed to begin transaction").Wrap(err)
	}

	txCtx := context.WithValue(ctx, txKey, tx)

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return errors.NewTracer("transaction rollback failed: " + rbErr.Error()).Wrap(err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return errors.NewTracer("failed to commit transaction").Wrap(err)
	}
	return nil
}
