package ledgerv1

import (
	orderbookv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/orderbook/v1"
)

// Header is the column list of a serialized ledger.
var Header = []string{
	"timestamp", "order_id", "instrument", "side", "type", "quantity", "price", "action",
	"status", "executed_quantity", "execution_price", "counterparty_id",
}

// Run is the complete output of one batch.
type Run struct {
	ID     string
	Ledger []orderbookv1.OrderResult
	Trades []orderbookv1.Trade
}

// Entry is a persisted ledger row. Seq is the position of the row in the run's ledger.
type Entry struct {
	RunID            string
	Seq              int64
	Timestamp        int64
	OrderID          int64
	Instrument       string
	Side             string
	Type             string
	Quantity         int64
	Price            string
	Action           string
	Status           string
	ExecutedQuantity int64
	ExecutionPrice   string
	CounterpartyID   int64
	Reason           string
}

// NewEntries flattens the ledger of a run, numbering rows from 1.
func NewEntries(runID string, results []orderbookv1.OrderResult) []Entry {
	entries := make([]Entry, 0, len(results))
	for i, result := range results {
		entries = append(entries, Entry{
			RunID:            runID,
			Seq:              int64(i + 1),
			Timestamp:        result.Order.Timestamp,
			OrderID:          result.Order.ID,
			Instrument:       result.Order.Instrument,
			Side:             string(result.Order.Side),
			Type:             string(result.Order.Type),
			Quantity:         result.Order.Quantity,
			Price:            orderbookv1.FormatPrice(result.Order.Price),
			Action:           string(result.Order.Action),
			Status:           string(result.Status),
			ExecutedQuantity: result.ExecutedQuantity,
			ExecutionPrice:   orderbookv1.FormatPrice(result.ExecutionPrice),
			CounterpartyID:   result.CounterpartyID,
			Reason:           result.Reason,
		})
	}
	return entries
}
