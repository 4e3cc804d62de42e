package orderreaderv1

import (
	"context"

	orderbookv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/orderbook/v1"
)

// Source produces the order events of one batch, validated or downgraded to BAD_INPUT.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=orderreaderv1_mock
type Source interface {
	// ReadAll returns every event of the batch in delivery order.
	ReadAll(ctx context.Context) ([]orderbookv1.Order, error)
	// Close releases the underlying input.
	Close() error
}
