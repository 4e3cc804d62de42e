package ledger

import (
	"context"
	"embed"
	"io/fs"

	"github.com/jackc/pgx/v5"
	ledgerv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/ledger/v1"
	orderbookv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/batch-matcher/pkg/errors"
	"github.com/muhammadchandra19/batch-matcher/pkg/logger"
	migrationpg "github.com/muhammadchandra19/batch-matcher/pkg/migration-pg"
	"github.com/muhammadchandra19/batch-matcher/pkg/postgresql"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrations returns the versioned ledger schema files.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// MigrationTable records which ledger migrations have been applied.
const MigrationTable = "ledger_schema_migrations"

// repository stores ledger rows and trades in PostgreSQL.
type repository struct {
	db     postgresql.PostgreSQLClient
	logger logger.Interface
}

var _ ledgerv1.Repository = (*repository)(nil)

// NewRepository creates a new repository.
func NewRepository(db postgresql.PostgreSQLClient, logger logger.Interface) *repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

// Migrate applies the pending ledger schema migrations.
func (r *repository) Migrate(ctx context.Context) error {
	runner := migrationpg.NewRunner(r.db, Migrations(), r.logger, migrationpg.Config{TableName: MigrationTable})

	if err := runner.EnsureMigrationTable(ctx); err != nil {
		return err
	}

	applied, err := runner.MigrateUp(ctx, 0)
	if err != nil {
		return err
	}

	r.logger.Info("Ledger schema migrated", logger.Field{
		Key:   "applied",
		Value: applied,
	})
	return nil
}

// StoreRun copies every ledger row and trade of run in a single transaction.
func (r *repository) StoreRun(ctx context.Context, run *ledgerv1.Run) error {
	entries := ledgerv1.NewEntries(run.ID, run.Ledger)

	err := postgresql.WithTx(ctx, r.db, func(ctx context.Context) error {
		entryCount, err := r.db.CopyFrom(ctx, pgx.Identifier{ledgerTable}, ledgerColumns,
			pgx.CopyFromSlice(len(entries), func(i int) ([]any, error) {
				return entryValues(entries[i])
			}))
		if err != nil {
			return errors.TracerFromError(err)
		}

		tradeCount, err := r.db.CopyFrom(ctx, pgx.Identifier{tradesTable}, tradeColumns,
			pgx.CopyFromSlice(len(run.Trades), func(i int) ([]any, error) {
				return tradeValues(run.ID, run.Trades[i])
			}))
		if err != nil {
			return errors.TracerFromError(err)
		}

		r.logger.Info("Inserted run",
			logger.Field{Key: "runID", Value: run.ID},
			logger.Field{Key: "entries", Value: entryCount},
			logger.Field{Key: "trades", Value: tradeCount},
		)
		return nil
	})
	if err != nil {
		r.logger.Error(err, logger.Field{Key: "runID", Value: run.ID})
		return err
	}

	return nil
}

// GetEntries gets the ledger rows of a run ordered by position.
func (r *repository) GetEntries(ctx context.Context, runID string) ([]ledgerv1.Entry, error) {
	query := `SELECT run_id, seq, timestamp, order_id, instrument, side, type, quantity, price::text, action, status, executed_quantity, execution_price::text, counterparty_id, reason FROM ledger_entries WHERE run_id = $1 ORDER BY seq`

	rows, err := r.db.Query(ctx, query, runID)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	defer rows.Close()

	entries := []ledgerv1.Entry{}
	for rows.Next() {
		var entry ledgerv1.Entry
		err := rows.Scan(
			&entry.RunID,
			&entry.Seq,
			&entry.Timestamp,
			&entry.OrderID,
			&entry.Instrument,
			&entry.Side,
			&entry.Type,
			&entry.Quantity,
			&entry.Price,
			&entry.Action,
			&entry.Status,
			&entry.ExecutedQuantity,
			&entry.ExecutionPrice,
			&entry.CounterpartyID,
			&entry.Reason,
		)
		if err != nil {
			return nil, errors.TracerFromError(err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.TracerFromError(err)
	}

	return entries, nil
}

// CountTrades counts the trades of a run.
func (r *repository) CountTrades(ctx context.Context, runID string) (int64, error) {
	query := `SELECT COUNT(*) FROM trades WHERE run_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, runID).Scan(&count); err != nil {
		return 0, errors.TracerFromError(err)
	}

	return count, nil
}

func entryValues(entry ledgerv1.Entry) ([]any, error) {
	price, err := numeric(entry.Price)
	if err != nil {
		return nil, err
	}
	executionPrice, err := numeric(entry.ExecutionPrice)
	if err != nil {
		return nil, err
	}

	return []any{
		entry.RunID,
		entry.Seq,
		entry.Timestamp,
		entry.OrderID,
		entry.Instrument,
		entry.Side,
		entry.Type,
		entry.Quantity,
		price,
		entry.Action,
		entry.Status,
		entry.ExecutedQuantity,
		executionPrice,
		entry.CounterpartyID,
		entry.Reason,
	}, nil
}

func tradeValues(runID string, trade orderbookv1.Trade) ([]any, error) {
	price, err := numeric(orderbookv1.FormatPrice(trade.Price))
	if err != nil {
		return nil, err
	}

	return []any{
		runID,
		trade.ID,
		trade.Timestamp,
		trade.BuyOrderID,
		trade.SellOrderID,
		trade.Instrument,
		trade.Quantity,
		price,
	}, nil
}
