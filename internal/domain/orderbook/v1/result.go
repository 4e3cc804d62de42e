package orderbookv1

import "github.com/shopspring/decimal"

// Status is the outcome recorded for an order by one ledger entry.
type Status string

const (
	StatusPending           Status = "PENDING"
	StatusPartiallyExecuted Status = "PARTIALLY_EXECUTED"
	StatusExecuted          Status = "EXECUTED"
	StatusCanceled          Status = "CANCELED"
	StatusRejected          Status = "REJECTED"
)

// OrderResult is one ledger entry: a snapshot of an order plus the outcome of one event.
type OrderResult struct {
	Order            Order           `json:"order"`
	Status           Status          `json:"status"`
	ExecutedQuantity int64           `json:"executedQuantity"`
	ExecutionPrice   decimal.Decimal `json:"executionPrice"`
	CounterpartyID   int64           `json:"counterpartyID"`
	// Reason holds the error code behind a REJECTED entry.
	Reason string `json:"reason,omitempty"`
}

// NewResult creates a ledger entry without execution details.
func NewResult(order Order, status Status) OrderResult {
	return OrderResult{
		Order:          order,
		Status:         status,
		ExecutionPrice: decimal.Zero,
	}
}

// NewExecutionResult creates a ledger entry for a fill.
func NewExecutionResult(order Order, status Status, quantity int64, price decimal.Decimal, counterparty int64) OrderResult {
	return OrderResult{
		Order:            order,
		Status:           status,
		ExecutedQuantity: quantity,
		ExecutionPrice:   price,
		CounterpartyID:   counterparty,
	}
}

// NewRejectedResult creates a REJECTED ledger entry carrying reason.
func NewRejectedResult(order Order, reason string) OrderResult {
	result := NewResult(order, StatusRejected)
	result.Reason = reason
	return result
}

// MatchResult is the outcome of matching one incoming order against the book.
type MatchResult struct {
	Trades []Trade
	// Impacted holds one entry per trade for the resting counterparty.
	Impacted []OrderResult
	// Residual is the incoming quantity left unmatched.
	Residual int64
}

// HasTrades reports whether matching produced at least one trade.
func (m MatchResult) HasTrades() bool {
	return len(m.Trades) > 0
}
