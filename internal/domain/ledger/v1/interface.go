package ledgerv1

import (
	"context"

	orderbookv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/orderbook/v1"
)

// Writer serializes a ledger to a tabular sink.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=ledgerv1_mock
type Writer interface {
	Write(results []orderbookv1.OrderResult) error
	Close() error
}

// Repository persists the ledger rows and trades of a run.
type Repository interface {
	// StoreRun writes every row and trade of run atomically.
	StoreRun(ctx context.Context, run *Run) error
	// GetEntries returns the rows of runID ordered by Seq.
	GetEntries(ctx context.Context, runID string) ([]Entry, error)
	// CountTrades returns the number of trades stored for runID.
	CountTrades(ctx context.Context, runID string) (int64, error)
}
