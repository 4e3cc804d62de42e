package engine

import (
	"context"

	orderbookv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/batch-matcher/internal/usecase/matcher"
	"github.com/muhammadchandra19/batch-matcher/internal/usecase/orderbook"
	"github.com/muhammadchandra19/batch-matcher/pkg/logger"
)

// Engine replays the order events of one instrument against its own book and records
// the outcome of every event in an append-only ledger. An Engine is not safe for
// concurrent use; independent engines may run in parallel.
type Engine struct {
	book    orderbookv1.Book
	matcher orderbookv1.Matcher
	logger  logger.Interface

	instrument  string
	traceEvents bool

	ledger []orderbookv1.OrderResult
	trades []orderbookv1.Trade
}

// NewEngine creates an engine with an empty book.
func NewEngine(log logger.Interface, opts ...Option) *Engine {
	options := DefaultEngineOptions()
	for _, opt := range opts {
		opt(options)
	}

	book := orderbook.NewOrderbook()
	return NewEngineWithOptions(book, matcher.NewMatcher(book), log, options)
}

// NewEngineWithOptions creates an engine over the given book and matcher.
func NewEngineWithOptions(
	book orderbookv1.Book,
	matcher orderbookv1.Matcher,
	log logger.Interface,
	options *Options,
) *Engine {
	if options == nil {
		options = DefaultEngineOptions()
	}

	return &Engine{
		book:        book,
		matcher:     matcher,
		logger:      log,
		instrument:  options.Instrument,
		traceEvents: options.TraceEvents,
	}
}

// Ledger returns every entry recorded so far, in order.
func (e *Engine) Ledger() []orderbookv1.OrderResult {
	return e.ledger
}

// Trades returns every trade executed so far, in order.
func (e *Engine) Trades() []orderbookv1.Trade {
	return e.trades
}

// Snapshot returns the live bids and asks, each in priority order.
func (e *Engine) Snapshot() (bids, asks []orderbookv1.Order) {
	return e.book.Snapshot(orderbookv1.SideBuy), e.book.Snapshot(orderbookv1.SideSell)
}

// Instrument returns the instrument the engine is bound to, or "" if unbound.
func (e *Engine) Instrument() string {
	return e.instrument
}

func (e *Engine) appendResult(results ...orderbookv1.OrderResult) {
	e.ledger = append(e.ledger, results...)
}

func (e *Engine) logTrades(ctx context.Context, trades []orderbookv1.Trade) {
	for _, trade := range trades {
		e.logger.DebugContext(ctx, "Trade executed",
			logger.Field{Key: "tradeID", Value: trade.ID},
			logger.Field{Key: "buyOrderID", Value: trade.BuyOrderID},
			logger.Field{Key: "sellOrderID", Value: trade.SellOrderID},
			logger.Field{Key: "quantity", Value: trade.Quantity},
			logger.Field{Key: "price", Value: orderbookv1.FormatPrice(trade.Price)},
		)
	}
}
