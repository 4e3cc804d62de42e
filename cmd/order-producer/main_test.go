package main

import (
	"strconv"
	"strings"
	"testing"

	"github.com/muhammadchandra19/batch-matcher/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrders(t *testing.T) {
	input := "timestamp,order_id,instrument,side,type,quantity,price,action\n" +
		"1,1,AAPL,BUY,LIMIT,10,150,NEW\n" +
		"2,2,AAPL\n" +
		"3,abc,AAPL,SELL,MARKET,5,,NEW\n"

	orders, err := loadOrders(strings.NewReader(input), logger.NewNopLogger())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "1", orders[0].OrderID)
	// invalid values are forwarded untouched for the matcher to reject
	assert.Equal(t, "abc", orders[1].OrderID)
}

func TestGenerateOrders(t *testing.T) {
	orders := generateOrders(50, []string{"AAPL", "MSFT"}, 150, 10)
	require.Len(t, orders, 50)

	for i, order := range orders {
		assert.Equal(t, strconv.Itoa(i+1), order.OrderID)
		assert.Contains(t, []string{"AAPL", "MSFT"}, order.Instrument)
		assert.Equal(t, "NEW", order.Action)
		if order.Type == "MARKET" {
			assert.Empty(t, order.Price)
		} else {
			assert.NotEmpty(t, order.Price)
		}
	}
}
