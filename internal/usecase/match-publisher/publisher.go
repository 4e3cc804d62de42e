package matchpublisher

import (
	"context"

	matchpublisherv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/match-publisher/v1"
	"github.com/muhammadchandra19/batch-matcher/pkg/config"
	"github.com/muhammadchandra19/batch-matcher/pkg/errors"
	"github.com/muhammadchandra19/batch-matcher/pkg/logger"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher represents a Kafka Publisher for publishing trade events.
type Publisher struct {
	kafkaWriter messageWriter
	logger      logger.Interface
}

// NewPublisher creates a new Kafka publisher for the trades topic.
func NewPublisher(config config.KafkaConfig, log logger.Interface) *Publisher {
	kafkaWriter := &kafka.Writer{
		Addr:         kafka.TCP(config.Brokers...),
		Topic:        config.TradesTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}

	return newPublisher(kafkaWriter, log)
}

func newPublisher(writer messageWriter, log logger.Interface) *Publisher {
	return &Publisher{
		kafkaWriter: writer,
		logger:      log,
	}
}

// PublishTradeEvents publishes the events in one write, keyed by instrument so that
// the trades of an instrument stay ordered within a partition.
func (p *Publisher) PublishTradeEvents(ctx context.Context, events ...*matchpublisherv1.TradeEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		msgs = append(msgs, kafka.Message{
			Key:   []byte(event.Instrument),
			Value: matchpublisherv1.ToBytes(event),
		})
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msgs...); err != nil {
		p.logger.ErrorContext(ctx, err,
			logger.Field{Key: "error", Value: err.Error()},
			logger.Field{Key: "events", Value: len(events)},
		)
		return errors.NewTracer("failed to publish trade events").Wrap(err)
	}

	p.logger.InfoContext(ctx, "Trade events published",
		logger.Field{Key: "events", Value: len(events)},
	)
	return nil
}

// Close flushes pending messages and closes the writer.
func (p *Publisher) Close() error {
	if err := p.kafkaWriter.Close(); err != nil {
		return errors.NewTracer("failed to close trade publisher").Wrap(err)
	}
	return nil
}
