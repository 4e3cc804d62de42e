package orderreader

import (
	"fmt"
	"strconv"
	"strings"

	orderreaderv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/order-reader/v1"
	orderbookv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/batch-matcher/pkg/errors"
	"github.com/shopspring/decimal"
)

// Normalize validates raw and converts it to an order event. A record that fails any
// rule is still returned, downgraded to BAD_INPUT with its quantity and price zeroed,
// so that the engine can reject it with an audit row. The order id is kept whenever it
// parses as an integer. The returned BaseError
// lists every rule that failed and is nil for a clean record.
//
// An unrecognized action is reported but does not downgrade the record; the engine
// rejects it at dispatch.
func Normalize(raw orderreaderv1.RawOrder) (orderbookv1.Order, *errors.BaseError) {
	raw = trim(raw)
	violations := errors.NewBaseError()

	order := orderbookv1.Order{
		Instrument: raw.Instrument,
		Side:       orderbookv1.Side(raw.Side),
		Type:       orderbookv1.OrderType(raw.Type),
		Action:     orderbookv1.Action(raw.Action),
		Price:      decimal.Zero,
	}

	timestamp, err := strconv.ParseInt(raw.Timestamp, 10, 64)
	if err != nil || timestamp < 0 {
		violations.AddErrorDetails(errors.NewErrorDetails(
			fmt.Sprintf("timestamp %q is not a non-negative integer", raw.Timestamp),
			errors.InvalidTimestamp,
			"timestamp",
		))
		timestamp = 0
	}
	order.Timestamp = timestamp

	id, err := strconv.ParseInt(raw.OrderID, 10, 64)
	if err != nil || id <= 0 {
		violations.AddErrorDetails(errors.NewErrorDetails(
			fmt.Sprintf("order id %q is not a positive integer", raw.OrderID),
			errors.InvalidOrderID,
			"order_id",
		))
	}
	if err != nil {
		id = 0
	}
	order.ID = id

	if raw.Instrument == "" {
		violations.AddErrorDetails(errors.NewErrorDetails("instrument is empty", errors.InvalidInstrument, "instrument"))
	}

	if !order.Side.Valid() {
		violations.AddErrorDetails(errors.NewErrorDetails(
			fmt.Sprintf("side %q is neither BUY nor SELL", raw.Side),
			errors.InvalidSide,
			"side",
		))
	}

	if order.Type != orderbookv1.OrderTypeLimit && order.Type != orderbookv1.OrderTypeMarket {
		violations.AddErrorDetails(errors.NewErrorDetails(
			fmt.Sprintf("type %q is neither LIMIT nor MARKET", raw.Type),
			errors.InvalidOrderType,
			"type",
		))
	}

	quantity, err := strconv.ParseInt(raw.Quantity, 10, 64)
	if err != nil || quantity <= 0 {
		violations.AddErrorDetails(errors.NewErrorDetails(
			fmt.Sprintf("quantity %q is not a positive integer", raw.Quantity),
			errors.InvalidQuantity,
			"quantity",
		))
	}
	order.Quantity = quantity

	// MARKET orders trade at the resting price; their price column is ignored.
	if order.Type == orderbookv1.OrderTypeLimit {
		price, err := decimal.NewFromString(raw.Price)
		if err != nil || !price.IsPositive() {
			violations.AddErrorDetails(errors.NewErrorDetails(
				fmt.Sprintf("price %q is not a positive number", raw.Price),
				errors.InvalidPrice,
				"price",
			))
		} else {
			order.Price = price
		}
	}

	downgrade := violations.HasDetails()

	if !order.Action.Valid() {
		violations.AddErrorDetails(errors.NewErrorDetails(
			fmt.Sprintf("action %q is not NEW, MODIFY or CANCEL", raw.Action),
			errors.InvalidAction,
			"action",
		))
	}

	if downgrade {
		return badInput(order), violations
	}
	if violations.HasDetails() {
		return order, violations
	}
	return order, nil
}

// Malformed returns the BAD_INPUT event for a record that could not be split into columns.
func Malformed(fields []string) orderbookv1.Order {
	padded := make([]string, len(orderreaderv1.Columns))
	copy(padded, fields)
	raw, _ := orderreaderv1.FromRecord(padded)

	order, _ := Normalize(raw)
	return badInput(order)
}

func badInput(order orderbookv1.Order) orderbookv1.Order {
	order.Type = orderbookv1.OrderTypeBadInput
	order.Quantity = 0
	order.Price = decimal.Zero
	return order
}

func trim(raw orderreaderv1.RawOrder) orderreaderv1.RawOrder {
	return orderreaderv1.RawOrder{
		Timestamp:  strings.TrimSpace(raw.Timestamp),
		OrderID:    strings.TrimSpace(raw.OrderID),
		Instrument: strings.TrimSpace(raw.Instrument),
		Side:       strings.TrimSpace(raw.Side),
		Type:       strings.TrimSpace(raw.Type),
		Quantity:   strings.TrimSpace(raw.Quantity),
		Price:      strings.TrimSpace(raw.Price),
		Action:     strings.TrimSpace(raw.Action),
	}
}
