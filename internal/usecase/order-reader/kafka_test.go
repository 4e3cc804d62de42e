package orderreader

import (
	"context"
	goerrors "errors"
	"testing"
	"time"

	orderbookv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/batch-matcher/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessageReader struct {
	messages []kafka.Message
	err      error
	reads    int
	closed   bool
}

func (f *fakeMessageReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if f.reads < len(f.messages) {
		msg := f.messages[f.reads]
		f.reads++
		return msg, nil
	}
	if f.err != nil {
		return kafka.Message{}, f.err
	}
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (f *fakeMessageReader) Close() error {
	f.closed = true
	return nil
}

func orderMessage(offset int64, value string) kafka.Message {
	return kafka.Message{Offset: offset, Value: []byte(value)}
}

func TestKafkaReader_ReadAll(t *testing.T) {
	testCases := []struct {
		name        string
		messages    []kafka.Message
		readErr     error
		maxMessages int
		assertFn    func(t *testing.T, orders []orderbookv1.Order, err error, reader *fakeMessageReader)
	}{
		{
			name: "stops when the topic goes idle",
			messages: []kafka.Message{
				orderMessage(0, `{"timestamp":"1","order_id":"1","instrument":"AAPL","side":"BUY","type":"LIMIT","quantity":"10","price":"100.5","action":"NEW"}`),
				orderMessage(1, `{"timestamp":"2","order_id":"2","instrument":"AAPL","side":"SELL","type":"MARKET","quantity":"5","price":"","action":"NEW"}`),
			},
			assertFn: func(t *testing.T, orders []orderbookv1.Order, err error, reader *fakeMessageReader) {
				require.NoError(t, err)
				require.Len(t, orders, 2)
				assert.Equal(t, int64(1), orders[0].ID)
				assert.Equal(t, "100.5", orderbookv1.FormatPrice(orders[0].Price))
				assert.Equal(t, orderbookv1.OrderTypeMarket, orders[1].Type)
			},
		},
		{
			name: "stops after max messages",
			messages: []kafka.Message{
				orderMessage(0, `{"timestamp":"1","order_id":"1","instrument":"AAPL","side":"BUY","type":"LIMIT","quantity":"10","price":"100","action":"NEW"}`),
				orderMessage(1, `{"timestamp":"2","order_id":"2","instrument":"AAPL","side":"BUY","type":"LIMIT","quantity":"10","price":"100","action":"NEW"}`),
				orderMessage(2, `{"timestamp":"3","order_id":"3","instrument":"AAPL","side":"BUY","type":"LIMIT","quantity":"10","price":"100","action":"NEW"}`),
			},
			maxMessages: 2,
			assertFn: func(t *testing.T, orders []orderbookv1.Order, err error, reader *fakeMessageReader) {
				require.NoError(t, err)
				assert.Len(t, orders, 2)
				assert.Equal(t, 2, reader.reads)
			},
		},
		{
			name: "undecodable message becomes bad input",
			messages: []kafka.Message{
				orderMessage(0, `not json`),
				orderMessage(1, `{"timestamp":"2","order_id":"2","instrument":"AAPL","side":"BUY","type":"LIMIT","quantity":"0","price":"100","action":"NEW"}`),
			},
			assertFn: func(t *testing.T, orders []orderbookv1.Order, err error, reader *fakeMessageReader) {
				require.NoError(t, err)
				require.Len(t, orders, 2)
				assert.Equal(t, orderbookv1.OrderTypeBadInput, orders[0].Type)
				assert.Equal(t, orderbookv1.OrderTypeBadInput, orders[1].Type)
				assert.Equal(t, int64(2), orders[1].Timestamp)
			},
		},
		{
			name: "broker error is returned",
			messages: []kafka.Message{
				orderMessage(0, `{"timestamp":"1","order_id":"1","instrument":"AAPL","side":"BUY","type":"LIMIT","quantity":"10","price":"100","action":"NEW"}`),
			},
			readErr: goerrors.New("broker unavailable"),
			assertFn: func(t *testing.T, orders []orderbookv1.Order, err error, reader *fakeMessageReader) {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "read_order_message_error")
				assert.Len(t, orders, 1)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeMessageReader{messages: tc.messages, err: tc.readErr}
			reader := newKafkaReader(fake, logger.NewNopLogger(), 20*time.Millisecond, tc.maxMessages)

			orders, err := reader.ReadAll(context.Background())
			tc.assertFn(t, orders, err, fake)
		})
	}
}

func TestKafkaReader_CanceledContext(t *testing.T) {
	fake := &fakeMessageReader{}
	reader := newKafkaReader(fake, logger.NewNopLogger(), time.Second, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := reader.ReadAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestKafkaReader_Close(t *testing.T) {
	fake := &fakeMessageReader{}
	reader := newKafkaReader(fake, logger.NewNopLogger(), 0, 0)

	assert.Equal(t, 5*time.Second, reader.idleTimeout)
	assert.NoError(t, reader.Close())
	assert.True(t, fake.closed)
}
