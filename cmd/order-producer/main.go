package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	goerrors "errors"
	"flag"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	orderreaderv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/order-reader/v1"
	"github.com/muhammadchandra19/batch-matcher/pkg/errors"
	"github.com/muhammadchandra19/batch-matcher/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// loadOrders reads raw records from a CSV file in the batch input layout. Records with
// the wrong column count are skipped since they cannot be expressed as a RawOrder.
func loadOrders(r io.Reader, log logger.Interface) ([]orderreaderv1.RawOrder, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var orders []orderreaderv1.RawOrder
	for line := 1; ; line++ {
		record, err := reader.Read()
		if goerrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.NewTracer("read_input_error").Wrap(err)
		}

		if line == 1 && len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), orderreaderv1.Columns[0]) {
			continue
		}

		raw, ok := orderreaderv1.FromRecord(record)
		if !ok {
			log.Warn("Skipping record", logger.Field{Key: "line", Value: line}, logger.Field{Key: "columns", Value: len(record)})
			continue
		}
		orders = append(orders, raw)
	}
	return orders, nil
}

// generateOrders creates count NEW events spread around basePrice. Roughly 30% are
// MARKET orders and sides are split evenly.
func generateOrders(count int, instruments []string, basePrice, priceSpread float64) []orderreaderv1.RawOrder {
	orders := make([]orderreaderv1.RawOrder, count)
	start := time.Now().UnixNano()

	for i := 0; i < count; i++ {
		orderType := "LIMIT"
		if rand.Float64() < 0.3 {
			orderType = "MARKET"
		}

		isBid := rand.Float64() < 0.5
		side := "SELL"
		if isBid {
			side = "BUY"
		}

		price := ""
		if orderType == "LIMIT" {
			p := basePrice + rand.Float64()*priceSpread*0.8
			if isBid {
				p = basePrice - rand.Float64()*priceSpread*0.8
			}
			if p <= 0 {
				p = basePrice
			}
			price = strconv.FormatFloat(p, 'f', 2, 64)
		}

		orders[i] = orderreaderv1.RawOrder{
			Timestamp:  strconv.FormatInt(start+int64(i), 10),
			OrderID:    strconv.Itoa(i + 1),
			Instrument: instruments[rand.Intn(len(instruments))],
			Side:       side,
			Type:       orderType,
			Quantity:   strconv.Itoa(rand.Intn(100) + 1),
			Price:      price,
			Action:     "NEW",
		}
	}

	return orders
}

func main() {
	var (
		brokers     = flag.String("brokers", "localhost:9092", "Kafka broker addresses (comma-separated)")
		topic       = flag.String("topic", "orders", "Kafka topic name")
		file        = flag.String("file", "", "CSV file with order events (optional, generates orders if not provided)")
		delay       = flag.Duration("delay", 0, "Delay between sending orders")
		count       = flag.Int("count", 1000, "Number of orders to generate")
		instruments = flag.String("instruments", "AAPL", "Instruments for generated orders (comma-separated)")
		basePrice   = flag.Float64("base-price", 150.0, "Base price for generated orders")
		priceSpread = flag.Float64("price-spread", 10.0, "Price spread range")
	)
	flag.Parse()

	log, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = log.Sync()
	}()

	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(*brokers, ",")...),
		Topic:        *topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
	defer writer.Close()

	ctx := context.Background()

	var orders []orderreaderv1.RawOrder
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			log.Error(err, logger.Field{Key: "file", Value: *file})
			return
		}
		orders, err = loadOrders(f, log)
		f.Close()
		if err != nil {
			log.Error(err, logger.Field{Key: "file", Value: *file})
			return
		}
		log.Info("Loaded orders", logger.Field{Key: "file", Value: *file}, logger.Field{Key: "orders", Value: len(orders)})
	} else {
		orders = generateOrders(*count, strings.Split(*instruments, ","), *basePrice, *priceSpread)
		log.Info("Generated orders", logger.Field{Key: "orders", Value: len(orders)})
	}

	sent := 0
	for i, order := range orders {
		orderJSON, err := json.Marshal(order)
		if err != nil {
			log.Error(err, logger.Field{Key: "index", Value: i})
			continue
		}

		// Keyed by instrument so that one instrument's events stay in order.
		msg := kafka.Message{
			Key:   []byte(order.Instrument),
			Value: orderJSON,
			Time:  time.Now(),
		}

		if err := writer.WriteMessages(ctx, msg); err != nil {
			log.Error(err, logger.Field{Key: "orderID", Value: order.OrderID})
			continue
		}
		sent++

		if (i+1)%100 == 0 || i == len(orders)-1 {
			log.Info("Sent orders", logger.Field{Key: "sent", Value: i + 1}, logger.Field{Key: "total", Value: len(orders)})
		}

		if *delay > 0 && i < len(orders)-1 {
			time.Sleep(*delay)
		}
	}

	log.Info("Finished sending orders",
		logger.Field{Key: "sent", Value: sent},
		logger.Field{Key: "topic", Value: *topic},
	)
}
