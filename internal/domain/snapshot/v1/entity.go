package snapshotv1

import (
	"github.com/shopspring/decimal"

	orderbookv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/orderbook/v1"
)

// Snapshot is the resting book of one instrument at the end of a run.
type Snapshot struct {
	RunID      string      `json:"runID"`
	Instrument string      `json:"instrument"`
	TakenAt    int64       `json:"takenAt"`
	Bids       []BookOrder `json:"bids"`
	Asks       []BookOrder `json:"asks"`
}

// BookOrder represents a live resting order with its details.
type BookOrder struct {
	OrderID   int64           `json:"orderID"`
	Side      string          `json:"side"`
	Type      string          `json:"type"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Timestamp int64           `json:"timestamp"`
	Sequence  int64           `json:"sequence"`
}

// NewBookOrder converts a resting order.
func NewBookOrder(order orderbookv1.Order) BookOrder {
	return BookOrder{
		OrderID:   order.ID,
		Side:      string(order.Side),
		Type:      string(order.Type),
		Quantity:  order.Quantity,
		Price:     order.Price,
		Timestamp: order.Timestamp,
		Sequence:  order.Sequence,
	}
}

// NewSnapshot builds a snapshot from the bids and asks of a book, each in priority order.
func NewSnapshot(runID, instrument string, takenAt int64, bids, asks []orderbookv1.Order) *Snapshot {
	snapshot := &Snapshot{
		RunID:      runID,
		Instrument: instrument,
		TakenAt:    takenAt,
		Bids:       make([]BookOrder, 0, len(bids)),
		Asks:       make([]BookOrder, 0, len(asks)),
	}
	for _, order := range bids {
		snapshot.Bids = append(snapshot.Bids, NewBookOrder(order))
	}
	for _, order := range asks {
		snapshot.Asks = append(snapshot.Asks, NewBookOrder(order))
	}
	return snapshot
}

// Depth returns the number of resting orders on both sides.
func (s *Snapshot) Depth() int {
	return len(s.Bids) + len(s.Asks)
}
