package matchpublisherv1

import "context"

// TradePublisher defines the interface for publishing trade events.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=matchpublisherv1_mock
type TradePublisher interface {
	// PublishTradeEvents publishes the events in order, keyed by instrument.
	PublishTradeEvents(ctx context.Context, events ...*TradeEvent) error
	// Close flushes pending messages and releases the writer.
	Close() error
}
