package orderbookv1

import "github.com/shopspring/decimal"

// Side represents the direction of an order.
type Side string

const (
	// SideBuy represents a bid.
	SideBuy Side = "BUY"
	// SideSell represents an ask.
	SideSell Side = "SELL"
)

// Valid reports whether s is BUY or SELL.
func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// Opposite returns the side an order of side s trades against.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// OrderType represents the type of order.
type OrderType string

const (
	// OrderTypeLimit represents a limit order.
	OrderTypeLimit OrderType = "LIMIT"
	// OrderTypeMarket represents a market order.
	OrderTypeMarket OrderType = "MARKET"
	// OrderTypeBadInput marks a record that failed validation. It is always rejected.
	OrderTypeBadInput OrderType = "BAD_INPUT"
)

// Action is the lifecycle event an input record carries.
type Action string

const (
	// ActionNew submits a new order.
	ActionNew Action = "NEW"
	// ActionModify changes the quantity and price of a resting order.
	ActionModify Action = "MODIFY"
	// ActionCancel withdraws a resting order.
	ActionCancel Action = "CANCEL"
)

// Valid reports whether a is one of the dispatchable actions.
func (a Action) Valid() bool {
	return a == ActionNew || a == ActionModify || a == ActionCancel
}

// Order is one order event, and the state of a resting order in the book.
type Order struct {
	Timestamp  int64           `json:"timestamp"`
	ID         int64           `json:"id"`
	Instrument string          `json:"instrument"`
	Side       Side            `json:"side"`
	Type       OrderType       `json:"type"`
	Quantity   int64           `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Action     Action          `json:"action"`
	// Sequence is assigned by the book on every insertion and breaks
	// timestamp ties between orders at the same price.
	Sequence int64 `json:"sequence"`
}

// IsBid checks if the order is a bid (buy) order.
func (o *Order) IsBid() bool {
	return o.Side == SideBuy
}

// IsAsk checks if the order is an ask (sell) order.
func (o *Order) IsAsk() bool {
	return o.Side == SideSell
}

// IsMarket checks if the order is a market order.
func (o *Order) IsMarket() bool {
	return o.Type == OrderTypeMarket
}

// IsFilled checks if the order has no quantity left.
func (o *Order) IsFilled() bool {
	return o.Quantity == 0
}

// RestingOrder is the registry view of a live order.
type RestingOrder struct {
	Order Order
	// Original is the quantity requested by the order's NEW. MODIFY replacements keep it.
	Original int64
}

// Filled returns how much of the original quantity is no longer live.
func (r RestingOrder) Filled() int64 {
	return r.Original - r.Order.Quantity
}
