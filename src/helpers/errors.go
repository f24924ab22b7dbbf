package helpers

import "fmt"

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type MarketPulseError struct {
	Message string
	Cause   error
}

func (e *MarketPulseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *MarketPulseError) Unwrap() error {
	return e.Cause
}

// Distinct error kinds for errors.As checks at the pipeline boundary.
//
// ConfigurationError     - required configuration missing; fatal pre-flight,
//                          raised before any network activity.
// UpstreamDataError      - a quote source returned an unparseable or
//                          insufficient payload. Never retried; aborts the run.
// UpstreamTransportError - network failure or non-success status from an
//                          upstream or from the delivery webhook. Aborts.
// JournalError           - run journal unavailable or write failed.
type ConfigurationError struct{ MarketPulseError }
type UpstreamDataError struct{ MarketPulseError }
type UpstreamTransportError struct{ MarketPulseError }
type JournalError struct{ MarketPulseError }

// -----------------------------------------------------------------------------
// Constructors
// -----------------------------------------------------------------------------

func NewConfigurationError(format string, args ...interface{}) error {
	return &ConfigurationError{MarketPulseError{Message: fmt.Sprintf(format, args...)}}
}

func NewUpstreamDataError(msg string, cause error) error {
	return &UpstreamDataError{MarketPulseError{Message: msg, Cause: cause}}
}

func NewUpstreamTransportError(msg string, cause error) error {
	return &UpstreamTransportError{MarketPulseError{Message: msg, Cause: cause}}
}

func NewJournalError(msg string, cause error) error {
	return &JournalError{MarketPulseError{Message: msg, Cause: cause}}
}
