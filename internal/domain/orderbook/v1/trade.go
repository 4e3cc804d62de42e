package orderbookv1

import (
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// Trade is an execution between a buy and a sell order.
type Trade struct {
	ID          string          `json:"id"`
	Timestamp   int64           `json:"timestamp"`
	BuyOrderID  int64           `json:"buyOrderID"`
	SellOrderID int64           `json:"sellOrderID"`
	Instrument  string          `json:"instrument"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// NewTrade creates a trade between incoming and resting, priced at the resting order.
func NewTrade(incoming, resting *Order, quantity int64) Trade {
	trade := Trade{
		ID:         ulid.Make().String(),
		Timestamp:  incoming.Timestamp,
		Instrument: incoming.Instrument,
		Quantity:   quantity,
		Price:      resting.Price,
	}
	if incoming.IsBid() {
		trade.BuyOrderID, trade.SellOrderID = incoming.ID, resting.ID
	} else {
		trade.BuyOrderID, trade.SellOrderID = resting.ID, incoming.ID
	}
	return trade
}

// CounterpartyOf returns the id on the other side of the trade from orderID.
func (t Trade) CounterpartyOf(orderID int64) int64 {
	if t.BuyOrderID == orderID {
		return t.SellOrderID
	}
	return t.BuyOrderID
}
