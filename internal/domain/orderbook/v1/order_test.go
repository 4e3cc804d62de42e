package orderbookv1

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	testCases := []struct {
		name  string
		price string
		want  string
	}{
		{name: "zero", price: "0", want: "0"},
		{name: "zero with decimals", price: "0.00", want: "0"},
		{name: "integer", price: "150", want: "150"},
		{name: "trailing zero stripped", price: "150.50", want: "150.5"},
		{name: "two decimals kept", price: "99.99", want: "99.99"},
		{name: "rounded to two decimals", price: "10.126", want: "10.13"},
		{name: "rounds down to zero", price: "0.004", want: "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatPrice(decimal.RequireFromString(tc.price)))
		})
	}
}

func TestSide(t *testing.T) {
	assert.True(t, SideBuy.Valid())
	assert.True(t, SideSell.Valid())
	assert.False(t, Side("HOLD").Valid())
	assert.Equal(t, SideSell, SideBuy.Opposite())
	assert.Equal(t, SideBuy, SideSell.Opposite())
}

func TestAction_Valid(t *testing.T) {
	assert.True(t, ActionNew.Valid())
	assert.True(t, ActionModify.Valid())
	assert.True(t, ActionCancel.Valid())
	assert.False(t, Action("AMEND").Valid())
	assert.False(t, Action("").Valid())
}

func TestNewTrade(t *testing.T) {
	resting := Order{ID: 1, Side: SideSell, Price: decimal.NewFromInt(150), Timestamp: 1}
	incoming := Order{ID: 2, Side: SideBuy, Instrument: "AAPL", Price: decimal.NewFromInt(155), Timestamp: 5}

	trade := NewTrade(&incoming, &resting, 30)

	assert.NotEmpty(t, trade.ID)
	assert.Equal(t, int64(2), trade.BuyOrderID)
	assert.Equal(t, int64(1), trade.SellOrderID)
	assert.Equal(t, int64(5), trade.Timestamp)
	assert.Equal(t, "AAPL", trade.Instrument)
	assert.Equal(t, int64(30), trade.Quantity)
	assert.True(t, trade.Price.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, int64(1), trade.CounterpartyOf(2))
	assert.Equal(t, int64(2), trade.CounterpartyOf(1))

	incoming.Side = SideSell
	resting.Side = SideBuy
	trade = NewTrade(&incoming, &resting, 10)
	assert.Equal(t, int64(1), trade.BuyOrderID)
	assert.Equal(t, int64(2), trade.SellOrderID)
}

func TestRestingOrder_Filled(t *testing.T) {
	r := RestingOrder{Order: Order{Quantity: 30}, Original: 100}
	assert.Equal(t, int64(70), r.Filled())
}
