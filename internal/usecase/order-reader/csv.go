package orderreader

import (
	"context"
	"encoding/csv"
	goerrors "errors"
	"io"
	"os"
	"strings"

	orderreaderv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/order-reader/v1"
	orderbookv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/batch-matcher/pkg/errors"
	"github.com/muhammadchandra19/batch-matcher/pkg/logger"
)

// CSVReader reads order events from comma-separated text with the columns of
// orderreaderv1.Columns. A leading header row is skipped.
type CSVReader struct {
	reader *csv.Reader
	closer io.Closer
	logger logger.Interface
}

// NewCSVReader creates a reader over r.
func NewCSVReader(r io.Reader, log logger.Interface) *CSVReader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = false

	return &CSVReader{
		reader: reader,
		logger: log,
	}
}

// OpenCSV opens the file at path for reading.
func OpenCSV(path string, log logger.Interface) (*CSVReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewTracer("open_input_error").Wrap(err)
	}

	reader := NewCSVReader(file, log)
	reader.closer = file
	return reader, nil
}

// ReadAll returns every record of the input in file order.
func (r *CSVReader) ReadAll(ctx context.Context) ([]orderbookv1.Order, error) {
	var orders []orderbookv1.Order
	count := 0

	for {
		if err := ctx.Err(); err != nil {
			return orders, errors.TracerFromError(err)
		}

		record, err := r.reader.Read()
		if goerrors.Is(err, io.EOF) {
			break
		}
		count++

		var parseErr *csv.ParseError
		if goerrors.As(err, &parseErr) {
			r.logger.WarnContext(ctx, "Malformed input record",
				logger.Field{Key: "line", Value: parseErr.Line},
				logger.Field{Key: "code", Value: errors.MalformedRecord.String()},
				logger.Field{Key: "error", Value: parseErr.Error()},
			)
			orders = append(orders, Malformed(record))
			continue
		}
		if err != nil {
			return orders, errors.NewTracer("read_input_error").Wrap(err)
		}

		if count == 1 && isHeader(record) {
			continue
		}

		raw, ok := orderreaderv1.FromRecord(record)
		if !ok {
			r.logger.WarnContext(ctx, "Malformed input record",
				logger.Field{Key: "record", Value: count},
				logger.Field{Key: "code", Value: errors.MalformedRecord.String()},
				logger.Field{Key: "columns", Value: len(record)},
			)
			orders = append(orders, Malformed(record))
			continue
		}

		order, violations := Normalize(raw)
		if violations != nil {
			r.logger.WarnContext(ctx, "Invalid input record",
				logger.Field{Key: "record", Value: count},
				logger.Field{Key: "codes", Value: violations.Codes()},
			)
		}
		orders = append(orders, order)
	}

	r.logger.InfoContext(ctx, "Input read",
		logger.Field{Key: "records", Value: len(orders)},
	)

	return orders, nil
}

// Close closes the underlying file, if the reader opened one.
func (r *CSVReader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

func isHeader(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), orderreaderv1.Columns[0])
}
