package errors

import (
	"bytes"
	"strings"
)

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	// GeneralBadRequestError represents a generic bad input error.
	GeneralBadRequestError ErrorCode = "general_bad_request_error"
	// GeneralRepositoryError represents a generic repository error.
	GeneralRepositoryError ErrorCode = "general_repository_error"

	// InvalidTimestamp is raised when the timestamp column is not a non-negative integer.
	InvalidTimestamp ErrorCode = "invalid_timestamp"
	// InvalidOrderID is raised when the order id column is not a positive integer.
	InvalidOrderID ErrorCode = "invalid_order_id"
	// InvalidInstrument is raised when the instrument column is empty.
	InvalidInstrument ErrorCode = "invalid_instrument"
	// InvalidSide is raised when the side column is neither BUY nor SELL.
	InvalidSide ErrorCode = "invalid_side"
	// InvalidOrderType is raised when the type column is neither LIMIT nor MARKET.
	InvalidOrderType ErrorCode = "invalid_order_type"
	// InvalidQuantity is raised when the quantity column is not a positive integer.
	InvalidQuantity ErrorCode = "invalid_quantity"
	// InvalidPrice is raised when a LIMIT price is missing, unparseable or not positive.
	InvalidPrice ErrorCode = "invalid_price"
	// InvalidAction is raised when the action column is not NEW, MODIFY or CANCEL.
	InvalidAction ErrorCode = "invalid_action"
	// MalformedRecord is raised when a record does not have the expected column count.
	MalformedRecord ErrorCode = "malformed_record"

	// DuplicateOrderID rejects a NEW whose id is already resting.
	DuplicateOrderID ErrorCode = "duplicate_order_id"
	// BadInput rejects an event whose type was downgraded during reading.
	BadInput ErrorCode = "bad_input"
	// NoLiquidity rejects a MARKET order with nothing to trade against.
	NoLiquidity ErrorCode = "no_liquidity"
	// UnknownOrderID rejects a MODIFY or CANCEL for an id that is not resting.
	UnknownOrderID ErrorCode = "unknown_order_id"
	// UnknownAction rejects an event whose action tag cannot be dispatched.
	UnknownAction ErrorCode = "unknown_action"
	// InstrumentMismatch rejects an event routed to an engine of another instrument.
	InstrumentMismatch ErrorCode = "instrument_mismatch"
	// OriginalQuantityUnknown rejects a MODIFY whose original requested quantity is not tracked.
	OriginalQuantityUnknown ErrorCode = "original_quantity_unknown"
	// InvalidBookSide is raised when a book operation receives a side other than BUY or SELL.
	InvalidBookSide ErrorCode = "invalid_book_side"
	// MarketOrderNotBookable is raised when a MARKET order is offered to the book.
	MarketOrderNotBookable ErrorCode = "market_order_not_bookable"

	// RedisConfigError represents an error when the Redis configuration is invalid or nil.
	RedisConfigError ErrorCode = "redis_config_error"
	// RedisConnectionError represents an error when connecting to Redis.
	RedisConnectionError ErrorCode = "redis_connection_error"
	// RedisDisconnectionError represents an error when disconnecting from Redis.
	RedisDisconnectionError ErrorCode = "redis_disconnection_error"
	// RedisPingError represents an error when pinging Redis.
	RedisPingError ErrorCode = "redis_pinging_error"
	// RedisGetError represents an error when getting a value from Redis.
	RedisGetError ErrorCode = "redis_get_error"
	// RedisSetError represents an error when setting a value in Redis.
	RedisSetError ErrorCode = "redis_set_error"
	// RedisDelError represents an error when deleting a value from Redis.
	RedisDelError ErrorCode = "redis_del_error"
)

// String returns the code as a plain string.
func (c ErrorCode) String() string {
	return string(c)
}

// BaseError is an `error` type containing an array of ErrorDetails.
// The reader uses it to collect every invalid column of a record at once.
type BaseError struct {
	details []*ErrorDetails
}

// NewBaseError create BaseError with ErrorDetails
func NewBaseError(details ...*ErrorDetails) *BaseError {
	return &BaseError{details: details}
}

// AddErrorDetails add more ErrorDetails to BaseError
func (b *BaseError) AddErrorDetails(errors ...*ErrorDetails) {
	b.details = append(b.details, errors...)
}

// GetDetails get array ErrorDetails on BaseError
func (b *BaseError) GetDetails() []*ErrorDetails {
	return b.details
}

// HasDetails reports whether at least one ErrorDetails was collected.
func (b *BaseError) HasDetails() bool {
	return len(b.details) > 0
}

// Error implement error interface
func (b *BaseError) Error() string {
	buff := bytes.NewBufferString("")

	buff.WriteString("Error on\n")
	for _, err := range b.details {
		buff.WriteString("code: ")
		buff.WriteString(err.Code)
		buff.WriteString("; error: ")
		buff.WriteString(err.Error())
		buff.WriteString("; field: ")
		buff.WriteString(err.Field)
		buff.WriteString("\n")
	}

	return strings.TrimSpace(buff.String())
}

// Codes returns the codes of every ErrorDetails in insertion order.
func (b *BaseError) Codes() []string {
	codes := make([]string, 0, len(b.details))
	for _, d := range b.details {
		codes = append(codes, d.Code)
	}
	return codes
}

// IsAnyCodeEqual check if any ErrorDetails code is equal with given code
func (b *BaseError) IsAnyCodeEqual(code string) bool {
	for _, d := range b.GetDetails() {
		if d.Code == code {
			return true
		}
	}
	return false
}
