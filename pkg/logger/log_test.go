package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/muhammadchandra19/batch-matcher/pkg/errors"
	"github.com/muhammadchandra19/batch-matcher/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected Level
	}{
		{name: "debug", input: "debug", expected: DebugLevel},
		{name: "upper case warn", input: "WARN", expected: WarnLevel},
		{name: "padded error", input: " error ", expected: ErrorLevel},
		{name: "unknown falls back to info", input: "verbose", expected: InfoLevel},
		{name: "empty falls back to info", input: "", expected: InfoLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseLevel(tc.input))
		})
	}
}

func TestAppendContextFields(t *testing.T) {
	ctx := util.WithInstrument(util.WithRunID(context.Background(), "run-7"), "MSFT")

	fields := appendContextFields(ctx, []Field{NewField("action", "test")})

	assert.Equal(t, []Field{
		{Key: "action", Value: "test"},
		{Key: "run_id", Value: "run-7"},
		{Key: "instrument", Value: "MSFT"},
	}, fields)
}

func TestNewLogger_RotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matcher.log")

	log, err := NewLogger(
		WithOutputPaths([]string{"stderr"}),
		WithLoggingLevel(DebugLevel),
		WithRotatingFile(path, 1, 1),
	)
	require.NoError(t, err)

	log.Info("ledger written", NewField("rows", 3))
	log.Error(errors.NewTracer("boom"), NewField("action", "write"))
	_ = log.Sync()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"message":"ledger written"`)
	assert.Contains(t, string(content), `"rows":3`)
	assert.Contains(t, string(content), `"message":"boom"`)
}
