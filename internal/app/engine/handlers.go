package engine

import (
	"context"

	orderbookv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/batch-matcher/pkg/errors"
	"github.com/muhammadchandra19/batch-matcher/pkg/logger"
)

func (e *Engine) handleNew(ctx context.Context, order orderbookv1.Order) {
	e.place(ctx, order, order.Quantity)
}

// place matches order and books a LIMIT residual under original, the quantity requested
// by the order's first NEW.
func (e *Engine) place(ctx context.Context, order orderbookv1.Order, original int64) {
	if code, ok := validate(&order); !ok {
		e.reject(ctx, order, code)
		return
	}
	if _, exists := e.book.Lookup(order.ID); exists {
		e.reject(ctx, order, errors.DuplicateOrderID)
		return
	}

	match := e.matcher.TryMatch(order)

	if !match.HasTrades() {
		if order.IsMarket() {
			e.reject(ctx, order, errors.NoLiquidity)
			return
		}
		if err := e.book.AddResting(order, original); err != nil {
			e.rejectWithError(ctx, order, err)
			return
		}
		e.appendResult(orderbookv1.NewResult(order, orderbookv1.StatusPending))
		return
	}

	remaining := order.Quantity
	last := len(match.Trades) - 1
	for i, trade := range match.Trades {
		remaining -= trade.Quantity

		status := orderbookv1.StatusPartiallyExecuted
		if i == last && match.Residual == 0 {
			status = orderbookv1.StatusExecuted
		}

		row := order
		row.Quantity = remaining
		e.appendResult(orderbookv1.NewExecutionResult(
			row,
			status,
			trade.Quantity,
			trade.Price,
			trade.CounterpartyOf(order.ID),
		))
	}

	// MARKET residuals are discarded.
	if match.Residual > 0 && !order.IsMarket() {
		residual := order
		residual.Quantity = match.Residual
		if err := e.book.AddResting(residual, original); err != nil {
			e.logger.ErrorContext(ctx, err,
				logger.Field{Key: "action", Value: "book_residual"},
				logger.Field{Key: "orderID", Value: order.ID},
			)
		}
	}

	e.appendResult(match.Impacted...)
	e.trades = append(e.trades, match.Trades...)
	e.logTrades(ctx, match.Trades)
}

// handleModify applies the requested change to the original quantity on top of what is
// already filled, then re-places the order with a fresh timestamp and sequence so it
// loses time priority. The original stays the one recorded at NEW across any number
// of modifies.
func (e *Engine) handleModify(ctx context.Context, event orderbookv1.Order) {
	if event.Type == orderbookv1.OrderTypeBadInput {
		e.reject(ctx, event, errors.BadInput)
		return
	}

	resting, ok := e.book.Lookup(event.ID)
	if !ok {
		e.reject(ctx, event, errors.UnknownOrderID)
		return
	}
	if resting.Original <= 0 {
		e.reject(ctx, event, errors.OriginalQuantityUnknown)
		return
	}

	if event.Quantity <= 0 {
		e.reject(ctx, event, errors.InvalidQuantity)
		return
	}

	current := resting.Order.Quantity
	newQuantity := current - (resting.Original - event.Quantity)

	if newQuantity <= 0 {
		if !e.book.MarkRemoved(event.ID, resting.Order.Side) {
			e.reject(ctx, event, errors.InvalidBookSide)
			return
		}

		// Shrinking below the filled amount closes the order as executed.
		row := resting.Order
		row.Quantity = 0
		row.Action = orderbookv1.ActionModify
		row.Timestamp = event.Timestamp
		e.appendResult(orderbookv1.NewExecutionResult(
			row,
			orderbookv1.StatusExecuted,
			current,
			resting.Order.Price,
			0,
		))
		e.logger.DebugContext(ctx, "Modify closed order",
			logger.Field{Key: "orderID", Value: event.ID},
			logger.Field{Key: "current", Value: current},
			logger.Field{Key: "requested", Value: event.Quantity},
		)
		return
	}

	replacement := orderbookv1.Order{
		Timestamp:  event.Timestamp,
		ID:         event.ID,
		Instrument: resting.Order.Instrument,
		Side:       resting.Order.Side,
		Type:       event.Type,
		Quantity:   newQuantity,
		Price:      event.Price,
		Action:     orderbookv1.ActionModify,
	}
	if code, ok := validate(&replacement); !ok {
		e.reject(ctx, event, code)
		return
	}
	if !e.book.MarkRemoved(event.ID, resting.Order.Side) {
		e.reject(ctx, event, errors.InvalidBookSide)
		return
	}

	start := len(e.ledger)
	e.place(ctx, replacement, resting.Original)

	if len(e.ledger) > start {
		first := &e.ledger[start]
		first.Order.Action = orderbookv1.ActionModify
		first.Order.Timestamp = event.Timestamp
		if first.Status == orderbookv1.StatusExecuted {
			first.Order.Quantity = 0
		}
	}
}

func (e *Engine) handleCancel(ctx context.Context, event orderbookv1.Order) {
	if event.Type == orderbookv1.OrderTypeBadInput {
		e.reject(ctx, event, errors.BadInput)
		return
	}

	resting, ok := e.book.Lookup(event.ID)
	if !ok {
		e.reject(ctx, event, errors.UnknownOrderID)
		return
	}
	if !e.book.MarkRemoved(event.ID, resting.Order.Side) {
		e.reject(ctx, event, errors.InvalidBookSide)
		return
	}

	row := event
	row.Quantity = 0
	e.appendResult(orderbookv1.NewResult(row, orderbookv1.StatusCanceled))
}

// validate guards the book against events the reader would have downgraded.
func validate(order *orderbookv1.Order) (errors.ErrorCode, bool) {
	switch {
	case order.Type == orderbookv1.OrderTypeBadInput:
		return errors.BadInput, false
	case order.Type != orderbookv1.OrderTypeLimit && order.Type != orderbookv1.OrderTypeMarket:
		return errors.InvalidOrderType, false
	case !order.Side.Valid():
		return errors.InvalidSide, false
	case order.ID <= 0:
		return errors.InvalidOrderID, false
	case order.Quantity <= 0:
		return errors.InvalidQuantity, false
	case !order.IsMarket() && !order.Price.IsPositive():
		return errors.InvalidPrice, false
	}
	return "", true
}

func (e *Engine) reject(ctx context.Context, order orderbookv1.Order, code errors.ErrorCode) {
	e.appendResult(orderbookv1.NewRejectedResult(order, code.String()))
	e.logger.WarnContext(ctx, "Event rejected",
		logger.Field{Key: "action", Value: order.Action},
		logger.Field{Key: "orderID", Value: order.ID},
		logger.Field{Key: "reason", Value: code.String()},
	)
}

func (e *Engine) rejectWithError(ctx context.Context, order orderbookv1.Order, err error) {
	code := errors.GeneralInternalServerError
	if details, ok := err.(*errors.ErrorDetails); ok {
		code = errors.ErrorCode(details.Code)
	}
	e.reject(ctx, order, code)
}
