// Package errors defines the error codes used across tickpulse and a thin
// stack-trace-preserving wrapper around github.com/pkg/errors. The hot path
// never produces errors; these codes cover configuration, storage and sink
// failures at the edges.
package errors

import (
	"fmt"
)

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalError represents a generic internal error.
	GeneralInternalError ErrorCode = "general_internal_error"
	// GeneralBadConfigError represents an invalid or unparsable configuration.
	GeneralBadConfigError ErrorCode = "general_bad_config_error"

	// QueueSizeError represents an invalid queue size (not a power of two).
	QueueSizeError ErrorCode = "queue_size_error"

	// FeedConfigError represents an invalid feed simulator configuration.
	FeedConfigError ErrorCode = "feed_config_error"

	// SinkWriteError represents a failure to deliver a signal to a sink.
	SinkWriteError ErrorCode = "sink_write_error"
	// SinkEncodeError represents a failure to encode a signal event.
	SinkEncodeError ErrorCode = "sink_encode_error"
	// SinkCloseError represents a failure while flushing or closing a sink.
	SinkCloseError ErrorCode = "sink_close_error"

	// QuestDBConnectionError represents an error when connecting to QuestDB.
	QuestDBConnectionError ErrorCode = "questdb_connection_error"
	// QuestDBExecError represents an error executing a QuestDB statement.
	QuestDBExecError ErrorCode = "questdb_exec_error"
	// QuestDBCopyError represents an error bulk-copying rows into QuestDB.
	QuestDBCopyError ErrorCode = "questdb_copy_error"

	// RedisConnectionError represents an error when connecting to Redis.
	RedisConnectionError ErrorCode = "redis_connection_error"
	// RedisPublishError represents an error publishing to a Redis channel.
	RedisPublishError ErrorCode = "redis_publish_error"

	// KafkaWriteError represents an error writing messages to Kafka.
	KafkaWriteError ErrorCode = "kafka_write_error"
)

// CodedError is an error carrying one of the codes above plus an optional
// underlying cause.
type CodedError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// NewCoded creates a CodedError with the given code and message.
func NewCoded(code ErrorCode, message string) *CodedError {
	return &CodedError{Code: code, Message: message}
}

// WrapCoded creates a CodedError wrapping an underlying cause.
func WrapCoded(code ErrorCode, message string, err error) *CodedError {
	return &CodedError{Code: code, Message: message, Err: err}
}

// Error implements the error interface.
func (e *CodedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *CodedError) Unwrap() error {
	return e.Err
}

// CodeEquals checks whether a given error carries a specific code.
func CodeEquals(err error, code ErrorCode) bool {
	coded, ok := err.(*CodedError)
	if !ok {
		return false
	}
	return coded.Code == code
}
