package engine

import (
	"context"
	"testing"

	orderbookv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/batch-matcher/pkg/logger"
	"github.com/shopspring/decimal"
)

// Benchmark test cases structure
type benchmarkTestCase struct {
	name      string
	setupData func(*Engine, *testing.B)
	operation func(*Engine, int)
}

func setupBenchmarkEngine(b *testing.B) *Engine {
	b.Helper()
	return NewEngine(logger.NewNopLogger())
}

func createBenchmarkOrder(id int64, side orderbookv1.Side, orderType orderbookv1.OrderType, quantity, price int64, action orderbookv1.Action) orderbookv1.Order {
	return orderbookv1.Order{
		Timestamp:  id,
		ID:         id,
		Instrument: testInstrument,
		Side:       side,
		Type:       orderType,
		Quantity:   quantity,
		Price:      decimal.NewFromInt(price),
		Action:     action,
	}
}

func populateBook(e *Engine, depth int) {
	ctx := context.Background()
	for i := 0; i < depth; i++ {
		e.Process(ctx, createBenchmarkOrder(int64(i+1), orderbookv1.SideSell, orderbookv1.OrderTypeLimit, 10, 50000+int64(i), orderbookv1.ActionNew))
		e.Process(ctx, createBenchmarkOrder(int64(i+1+depth), orderbookv1.SideBuy, orderbookv1.OrderTypeLimit, 10, 49000-int64(i), orderbookv1.ActionNew))
	}
}

func BenchmarkEngine_Process(b *testing.B) {
	const offset = 1_000_000

	testCases := []benchmarkTestCase{
		{
			name:      "resting_limit_orders",
			setupData: func(e *Engine, b *testing.B) {},
			operation: func(e *Engine, i int) {
				side := orderbookv1.SideBuy
				price := int64(49000 - i%100)
				if i%2 == 0 {
					side = orderbookv1.SideSell
					price = 50000 + int64(i%100)
				}
				e.Process(context.Background(), createBenchmarkOrder(int64(offset+i), side, orderbookv1.OrderTypeLimit, 10, price, orderbookv1.ActionNew))
			},
		},
		{
			name: "market_orders_with_liquidity",
			setupData: func(e *Engine, b *testing.B) {
				populateBook(e, 10_000)
			},
			operation: func(e *Engine, i int) {
				side := orderbookv1.SideBuy
				if i%2 == 0 {
					side = orderbookv1.SideSell
				}
				e.Process(context.Background(), createBenchmarkOrder(int64(offset+i), side, orderbookv1.OrderTypeMarket, 1, 0, orderbookv1.ActionNew))
			},
		},
		{
			name: "cancel_resting_orders",
			setupData: func(e *Engine, b *testing.B) {
				populateBook(e, 10_000)
			},
			operation: func(e *Engine, i int) {
				id := int64(i%10_000 + 1)
				e.Process(context.Background(), createBenchmarkOrder(id, orderbookv1.SideSell, orderbookv1.OrderTypeLimit, 10, 0, orderbookv1.ActionCancel))
			},
		},
		{
			name: "modify_resting_orders",
			setupData: func(e *Engine, b *testing.B) {
				populateBook(e, 10_000)
			},
			operation: func(e *Engine, i int) {
				id := int64(i%10_000 + 1)
				e.Process(context.Background(), createBenchmarkOrder(id, orderbookv1.SideSell, orderbookv1.OrderTypeLimit, 10, 50000+int64(i%10_000), orderbookv1.ActionModify))
			},
		},
	}

	for _, tc := range testCases {
		b.Run(tc.name, func(b *testing.B) {
			engine := setupBenchmarkEngine(b)
			tc.setupData(engine, b)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				tc.operation(engine, i)
			}
		})
	}
}

func BenchmarkEngine_ProcessAll(b *testing.B) {
	events := randomEvents(10_000, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		NewEngine(logger.NewNopLogger()).ProcessAll(context.Background(), events)
	}
}
