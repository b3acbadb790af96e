package quic

import (
	"github.com/quic-go/quic-go"
)

// ErrServerClosed is returned by a listener's Accept after the listener has
// been closed. quicmux classifies it as graceful shutdown.
var ErrServerClosed = quic.ErrServerClosed

// TransportError represents a QUIC transport layer error.
type TransportError = quic.TransportError

// ApplicationError represents an application-level close of the connection.
type ApplicationError = quic.ApplicationError

// IdleTimeoutError indicates that the connection timed out due to inactivity.
type IdleTimeoutError = quic.IdleTimeoutError

// HandshakeTimeoutError indicates that the handshake did not complete in time.
type HandshakeTimeoutError = quic.HandshakeTimeoutError

// A StreamError is returned from Read and Write when the peer aborted the
// corresponding stream direction.
type StreamError = quic.StreamError

// Error codes for QUIC transport, application, and stream operations.
type (
	// TransportErrorCode identifies transport-layer protocol errors.
	TransportErrorCode = quic.TransportErrorCode
	// ApplicationErrorCode identifies application-defined connection close codes.
	ApplicationErrorCode = quic.ApplicationErrorCode
	// StreamErrorCode identifies stream abort codes.
	StreamErrorCode = quic.StreamErrorCode
)

const (
	NoError           TransportErrorCode = quic.NoError
	InternalError     TransportErrorCode = quic.InternalError
	ConnectionRefused TransportErrorCode = quic.ConnectionRefused
	StreamLimitError  TransportErrorCode = quic.StreamLimitError
	StreamStateError  TransportErrorCode = quic.StreamStateError
	ProtocolViolation TransportErrorCode = quic.ProtocolViolation
)
