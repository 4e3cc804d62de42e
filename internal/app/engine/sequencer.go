package engine

import (
	"context"
	"sort"

	orderbookv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/batch-matcher/pkg/errors"
	"github.com/muhammadchandra19/batch-matcher/pkg/logger"
)

// ProcessAll runs every event of the batch in timestamp order and returns the ledger
// entries the batch produced. Events with equal timestamps keep their delivery order.
// Every event yields at least one entry; no event aborts the batch.
func (e *Engine) ProcessAll(ctx context.Context, events []orderbookv1.Order) []orderbookv1.OrderResult {
	start := len(e.ledger)

	ordered := events
	if !isChronological(events) {
		ordered = make([]orderbookv1.Order, len(events))
		copy(ordered, events)
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Timestamp < ordered[j].Timestamp
		})
		e.logger.InfoContext(ctx, "Events re-sorted by timestamp",
			logger.Field{Key: "events", Value: len(events)},
		)
	}

	for _, event := range ordered {
		e.Process(ctx, event)
	}

	e.logger.InfoContext(ctx, "Batch processed",
		logger.Field{Key: "events", Value: len(events)},
		logger.Field{Key: "entries", Value: len(e.ledger) - start},
		logger.Field{Key: "bids", Value: e.book.LiveCount(orderbookv1.SideBuy)},
		logger.Field{Key: "asks", Value: e.book.LiveCount(orderbookv1.SideSell)},
	)

	return e.ledger[start:]
}

// Process dispatches a single event by its action.
func (e *Engine) Process(ctx context.Context, event orderbookv1.Order) {
	if e.traceEvents {
		e.logger.DebugContext(ctx, "Processing event",
			logger.Field{Key: "timestamp", Value: event.Timestamp},
			logger.Field{Key: "orderID", Value: event.ID},
			logger.Field{Key: "action", Value: event.Action},
			logger.Field{Key: "side", Value: event.Side},
			logger.Field{Key: "type", Value: event.Type},
			logger.Field{Key: "quantity", Value: event.Quantity},
			logger.Field{Key: "price", Value: orderbookv1.FormatPrice(event.Price)},
		)
	}

	if e.instrument != "" && event.Instrument != e.instrument {
		e.reject(ctx, event, errors.InstrumentMismatch)
		return
	}

	switch event.Action {
	case orderbookv1.ActionNew:
		e.handleNew(ctx, event)
	case orderbookv1.ActionModify:
		e.handleModify(ctx, event)
	case orderbookv1.ActionCancel:
		e.handleCancel(ctx, event)
	default:
		e.reject(ctx, event, errors.UnknownAction)
	}
}

func isChronological(events []orderbookv1.Order) bool {
	for i := 1; i < len(events); i++ {
		if events[i].Timestamp < events[i-1].Timestamp {
			return false
		}
	}
	return true
}
