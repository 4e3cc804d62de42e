package ledger

import (
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	ledgerTable = "ledger_entries"
	tradesTable = "trades"
)

var ledgerColumns = []string{
	"run_id",
	"seq",
	"timestamp",
	"order_id",
	"instrument",
	"side",
	"type",
	"quantity",
	"price",
	"action",
	"status",
	"executed_quantity",
	"execution_price",
	"counterparty_id",
	"reason",
}

var tradeColumns = []string{
	"run_id",
	"trade_id",
	"timestamp",
	"buy_order_id",
	"sell_order_id",
	"instrument",
	"quantity",
	"price",
}

// numeric converts a formatted price to a NUMERIC parameter.
func numeric(value string) (pgtype.Numeric, error) {
	var n pgtype.Numeric
	if err := n.Scan(value); err != nil {
		return pgtype.Numeric{}, err
	}
	return n, nil
}
