package quicmux

import (
	"errors"
	"fmt"
)

var (
	// ErrListenerClosed is returned when an operation is attempted against a
	// listener that has been unbound.
	ErrListenerClosed = errors.New("quicmux: listener closed")

	// ErrConnClosed is returned when an operation is attempted against a
	// closed connection.
	ErrConnClosed = errors.New("quicmux: connection closed")

	// ErrStreamClosed is returned from Read and Write after the stream has
	// begun its completion sequence.
	ErrStreamClosed = errors.New("quicmux: stream closed")
)

// ConfigurationError reports an invalid listener configuration detected at
// bind time. It is fatal and never retried automatically.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("quicmux: configuration: %s: %v", e.Reason, e.Err)
	}
	return "quicmux: configuration: " + e.Reason
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// InvalidOperationError reports an operation a stream's direction does not
// support, such as aborting the read side of a send-only stream.
type InvalidOperationError struct {
	Op     string
	Reason string
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("quicmux: %s: %s", e.Op, e.Reason)
}

// InvalidStateError reports an operation attempted after the stream has
// begun its completion sequence.
type InvalidStateError struct {
	Op     string
	Reason string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("quicmux: %s: %s", e.Op, e.Reason)
}
