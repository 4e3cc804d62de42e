package ledgerwriter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	orderbookv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/orderbook/v1"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []orderbookv1.OrderResult {
	buy := orderbookv1.Order{
		Timestamp:  1617278400000000000,
		ID:         1,
		Instrument: "AAPL",
		Side:       orderbookv1.SideBuy,
		Type:       orderbookv1.OrderTypeLimit,
		Quantity:   100,
		Price:      decimal.RequireFromString("150.00"),
		Action:     orderbookv1.ActionNew,
	}
	sell := orderbookv1.Order{
		Timestamp:  1617278400000000001,
		ID:         2,
		Instrument: "AAPL",
		Side:       orderbookv1.SideSell,
		Type:       orderbookv1.OrderTypeMarket,
		Quantity:   0,
		Price:      decimal.Zero,
		Action:     orderbookv1.ActionNew,
	}
	filled := buy
	filled.Timestamp = sell.Timestamp
	filled.Quantity = 40

	return []orderbookv1.OrderResult{
		orderbookv1.NewResult(buy, orderbookv1.StatusPending),
		orderbookv1.NewExecutionResult(sell, orderbookv1.StatusExecuted, 60, decimal.RequireFromString("150.125"), 1),
		orderbookv1.NewExecutionResult(filled, orderbookv1.StatusPartiallyExecuted, 60, decimal.RequireFromString("150.125"), 2),
	}
}

func TestCSVWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	writer := NewCSVWriter(&buf)

	require.NoError(t, writer.Write(sampleResults()))
	require.NoError(t, writer.Close())

	expected := "timestamp,order_id,instrument,side,type,quantity,price,action,status,executed_quantity,execution_price,counterparty_id\n" +
		"1617278400000000000,1,AAPL,BUY,LIMIT,100,150,NEW,PENDING,0,0,0\n" +
		"1617278400000000001,2,AAPL,SELL,MARKET,0,0,NEW,EXECUTED,60,150.13,1\n" +
		"1617278400000000001,1,AAPL,BUY,LIMIT,40,150,NEW,PARTIALLY_EXECUTED,60,150.13,2\n"
	assert.Equal(t, expected, buf.String())
}

func TestCSVWriter_HeaderWrittenOnce(t *testing.T) {
	var buf bytes.Buffer
	writer := NewCSVWriter(&buf)

	results := sampleResults()
	require.NoError(t, writer.Write(results[:1]))
	require.NoError(t, writer.Write(results[1:]))

	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("timestamp,order_id")))
	assert.Equal(t, 4, bytes.Count(buf.Bytes(), []byte("\n")))
}

func TestCSVWriter_EmptyLedger(t *testing.T) {
	var buf bytes.Buffer
	writer := NewCSVWriter(&buf)

	require.NoError(t, writer.Write(nil))
	assert.Equal(t, "timestamp,order_id,instrument,side,type,quantity,price,action,status,executed_quantity,execution_price,counterparty_id\n", buf.String())
}

func TestCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.csv")

	writer, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, writer.Write(sampleResults()))
	require.NoError(t, writer.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, bytes.Count(content, []byte("\n")))

	_, err = Create(filepath.Join(t.TempDir(), "missing", "output.csv"))
	assert.Error(t, err)
}
