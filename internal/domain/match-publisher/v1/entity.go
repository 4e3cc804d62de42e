package matchpublisherv1

import (
	"encoding/json"

	orderbookv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/orderbook/v1"
)

// TradeEvent is the payload published for every trade of a run.
type TradeEvent struct {
	TradeID     string `json:"tradeID"`
	RunID       string `json:"runID"`
	Instrument  string `json:"instrument"`
	BuyOrderID  int64  `json:"buyOrderID"`
	SellOrderID int64  `json:"sellOrderID"`
	Quantity    int64  `json:"quantity"`
	Price       string `json:"price"`
	Timestamp   int64  `json:"timestamp"`
}

// CreateFromTrade creates a trade event from a trade of run runID.
func CreateFromTrade(runID string, trade orderbookv1.Trade) *TradeEvent {
	return &TradeEvent{
		TradeID:     trade.ID,
		RunID:       runID,
		Instrument:  trade.Instrument,
		BuyOrderID:  trade.BuyOrderID,
		SellOrderID: trade.SellOrderID,
		Quantity:    trade.Quantity,
		Price:       orderbookv1.FormatPrice(trade.Price),
		Timestamp:   trade.Timestamp,
	}
}

// ToBytes converts the trade event to a byte array.
func ToBytes(event *TradeEvent) []byte {
	buf, err := json.Marshal(event)
	if err != nil {
		return nil
	}

	return buf
}

// FromBytes converts a byte array to a trade event.
func FromBytes(data []byte) *TradeEvent {
	var event TradeEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil
	}
	return &event
}
