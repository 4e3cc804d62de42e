package util

import (
	"context"
)

type key string

const (
	runIDKey      = key("run-id")
	instrumentKey = key("instrument")
)

// Fields returns a map of the key-value pairs that this package has set into `context`.
func Fields(ctx context.Context) map[string]interface{} {
	mapFields := make(map[string]interface{})
	mapFields["run_id"] = GetRunID(ctx)
	if instrument := GetInstrument(ctx); instrument != "" {
		mapFields["instrument"] = instrument
	}

	return mapFields
}

// WithInstrument returns a context carrying the instrument an engine is working on.
func WithInstrument(ctx context.Context, instrument string) context.Context {
	return context.WithValue(ctx, instrumentKey, instrument)
}

// GetInstrument returns the instrument from context
// will return empty string if not present
func GetInstrument(ctx context.Context) string {
	instrument, _ := ctx.Value(instrumentKey).(string)
	return instrument
}
