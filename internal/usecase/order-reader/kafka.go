package orderreader

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"time"

	orderreaderv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/order-reader/v1"
	orderbookv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/batch-matcher/pkg/config"
	"github.com/muhammadchandra19/batch-matcher/pkg/errors"
	"github.com/muhammadchandra19/batch-matcher/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// messageReader is the subset of *kafka.Reader the source needs.
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// KafkaReader represents a Kafka Reader for consuming order events from the orders topic.
// A batch ends when no message arrives within the idle timeout, or after MaxMessages.
type KafkaReader struct {
	kafkaReader messageReader
	logger      logger.Interface
	idleTimeout time.Duration
	maxMessages int
}

// NewKafkaReader creates a new Kafka reader for consuming messages from the orders topic.
func NewKafkaReader(config config.KafkaConfig, log logger.Interface) *KafkaReader {
	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     config.Brokers,
		Topic:       config.OrdersTopic,
		GroupID:     config.GroupID,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.FirstOffset,
	})

	return newKafkaReader(kafkaReader, log, config.IdleTimeout, config.MaxMessages)
}

func newKafkaReader(reader messageReader, log logger.Interface, idleTimeout time.Duration, maxMessages int) *KafkaReader {
	if idleTimeout <= 0 {
		idleTimeout = 5 * time.Second
	}
	return &KafkaReader{
		kafkaReader: reader,
		logger:      log,
		idleTimeout: idleTimeout,
		maxMessages: maxMessages,
	}
}

// logError is a helper method to log errors consistently
func (r *KafkaReader) logError(ctx context.Context, err error, operation string) {
	r.logger.ErrorContext(ctx, err,
		logger.Field{Key: "error", Value: err.Error()},
		logger.Field{Key: "operation", Value: operation},
	)
}

// ReadAll consumes messages until the topic goes idle and returns the decoded events in
// offset order. A message that is not a JSON RawOrder becomes a BAD_INPUT event.
func (r *KafkaReader) ReadAll(ctx context.Context) ([]orderbookv1.Order, error) {
	var orders []orderbookv1.Order

	for r.maxMessages <= 0 || len(orders) < r.maxMessages {
		readCtx, cancel := context.WithTimeout(ctx, r.idleTimeout)
		msg, err := r.kafkaReader.ReadMessage(readCtx)
		cancel()

		if err != nil {
			if ctx.Err() == nil && goerrors.Is(err, context.DeadlineExceeded) {
				r.logger.InfoContext(ctx, "Order topic idle, batch complete",
					logger.Field{Key: "records", Value: len(orders)},
					logger.Field{Key: "idleTimeout", Value: r.idleTimeout.String()},
				)
				break
			}
			r.logError(ctx, err, "ReadMessage")
			return orders, errors.NewTracer("read_order_message_error").Wrap(err)
		}

		var raw orderreaderv1.RawOrder
		if err := json.Unmarshal(msg.Value, &raw); err != nil {
			r.logger.WarnContext(ctx, "Malformed order message",
				logger.Field{Key: "offset", Value: msg.Offset},
				logger.Field{Key: "code", Value: errors.MalformedRecord.String()},
				logger.Field{Key: "error", Value: err.Error()},
			)
			orders = append(orders, Malformed(nil))
			continue
		}

		order, violations := Normalize(raw)
		if violations != nil {
			r.logger.WarnContext(ctx, "Invalid order message",
				logger.Field{Key: "offset", Value: msg.Offset},
				logger.Field{Key: "codes", Value: violations.Codes()},
			)
		}
		orders = append(orders, order)
	}

	return orders, nil
}

// Close properly closes the Kafka reader.
func (r *KafkaReader) Close() error {
	if err := r.kafkaReader.Close(); err != nil {
		r.logError(context.Background(), err, "Close")
		return err
	}
	return nil
}
