package ledger

import (
	ledgerv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/ledger/v1"
	orderbookv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/orderbook/v1"
)

// EntryModel is the gorm model of a ledger row. Prices are kept as formatted text.
type EntryModel struct {
	RunID            string `gorm:"primaryKey;size:64"`
	Seq              int64  `gorm:"primaryKey;autoIncrement:false"`
	Timestamp        int64  `gorm:"not null"`
	OrderID          int64  `gorm:"index;not null"`
	Instrument       string `gorm:"not null"`
	Side             string `gorm:"not null"`
	Type             string `gorm:"not null"`
	Quantity         int64  `gorm:"not null"`
	Price            string `gorm:"not null"`
	Action           string `gorm:"not null"`
	Status           string `gorm:"not null"`
	ExecutedQuantity int64  `gorm:"not null"`
	ExecutionPrice   string `gorm:"not null"`
	CounterpartyID   int64  `gorm:"not null"`
	Reason           string
}

// TableName overrides the default table name.
func (EntryModel) TableName() string {
	return "ledger_entries"
}

// TradeModel is the gorm model of a trade.
type TradeModel struct {
	RunID       string `gorm:"primaryKey;size:64"`
	TradeID     string `gorm:"primaryKey;size:26"`
	Timestamp   int64  `gorm:"not null"`
	BuyOrderID  int64  `gorm:"not null"`
	SellOrderID int64  `gorm:"not null"`
	Instrument  string `gorm:"not null"`
	Quantity    int64  `gorm:"not null"`
	Price       string `gorm:"not null"`
}

// TableName overrides the default table name.
func (TradeModel) TableName() string {
	return "trades"
}

func fromEntry(entry ledgerv1.Entry) EntryModel {
	return EntryModel(entry)
}

func (m EntryModel) toEntry() ledgerv1.Entry {
	return ledgerv1.Entry(m)
}

func fromTrade(runID string, trade orderbookv1.Trade) TradeModel {
	return TradeModel{
		RunID:       runID,
		TradeID:     trade.ID,
		Timestamp:   trade.Timestamp,
		BuyOrderID:  trade.BuyOrderID,
		SellOrderID: trade.SellOrderID,
		Instrument:  trade.Instrument,
		Quantity:    trade.Quantity,
		Price:       orderbookv1.FormatPrice(trade.Price),
	}
}
