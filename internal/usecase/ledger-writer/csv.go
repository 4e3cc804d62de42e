package ledgerwriter

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	ledgerv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/ledger/v1"
	orderbookv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/batch-matcher/pkg/errors"
)

// CSVWriter serializes ledger rows with the columns of ledgerv1.Header.
// The header is written before the first batch of rows.
type CSVWriter struct {
	writer        *csv.Writer
	closer        io.Closer
	headerWritten bool
}

// NewCSVWriter creates a writer over w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{writer: csv.NewWriter(w)}
}

// Create truncates or creates the file at path and writes the ledger into it.
func Create(path string) (*CSVWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, errors.NewTracer("create_output_error").Wrap(err)
	}

	writer := NewCSVWriter(file)
	writer.closer = file
	return writer, nil
}

// Write appends one row per result. Calling it with no results still emits the header.
func (w *CSVWriter) Write(results []orderbookv1.OrderResult) error {
	if !w.headerWritten {
		if err := w.writer.Write(ledgerv1.Header); err != nil {
			return errors.NewTracer("write_output_error").Wrap(err)
		}
		w.headerWritten = true
	}

	for _, result := range results {
		if err := w.writer.Write(Record(result)); err != nil {
			return errors.NewTracer("write_output_error").Wrap(err)
		}
	}

	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		return errors.NewTracer("flush_output_error").Wrap(err)
	}
	return nil
}

// Close flushes pending rows and closes the file, if the writer created one.
func (w *CSVWriter) Close() error {
	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		return errors.NewTracer("flush_output_error").Wrap(err)
	}

	if w.closer == nil {
		return nil
	}
	return w.closer.Close()
}

// Record formats a ledger row in Header column order.
func Record(result orderbookv1.OrderResult) []string {
	order := result.Order
	return []string{
		strconv.FormatInt(order.Timestamp, 10),
		strconv.FormatInt(order.ID, 10),
		order.Instrument,
		string(order.Side),
		string(order.Type),
		strconv.FormatInt(order.Quantity, 10),
		orderbookv1.FormatPrice(order.Price),
		string(order.Action),
		string(result.Status),
		strconv.FormatInt(result.ExecutedQuantity, 10),
		orderbookv1.FormatPrice(result.ExecutionPrice),
		strconv.FormatInt(result.CounterpartyID, 10),
	}
}
