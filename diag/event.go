package diag

import (
	"time"
)

// Kind names a diagnostic event.
type Kind string

const (
	// KindCertificateNotSpecified fires when a negotiation result carries no
	// server certificate source.
	KindCertificateNotSpecified Kind = "listener.certificate_not_specified"

	// KindProtocolsNotSpecified fires when a negotiation result offers no
	// application protocols.
	KindProtocolsNotSpecified Kind = "listener.protocols_not_specified"

	// KindUnknownProtocols fires when a negotiation result offers protocols
	// outside the listener's configured set. The handshake still proceeds.
	KindUnknownProtocols Kind = "listener.unknown_protocols"

	// KindConnectionAccepted fires for every connection returned by Accept.
	KindConnectionAccepted Kind = "connection.accepted"

	// KindStreamAbortRead fires when the read direction of a stream is aborted.
	KindStreamAbortRead Kind = "stream.abort_read"

	// KindStreamAbortWrite fires when the write direction of a stream is aborted.
	KindStreamAbortWrite Kind = "stream.abort_write"
)

// Event is a single diagnostic record. Only the fields relevant to the kind
// are populated. CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred.
	Timestamp time.Time `cbor:"1,keyasint"`

	// Kind classifies the event.
	Kind Kind `cbor:"2,keyasint"`

	// ConnectionID identifies the connection the event belongs to (UUID).
	ConnectionID string `cbor:"3,keyasint,omitempty"`

	// RemoteAddr is the peer address (IP:port).
	RemoteAddr string `cbor:"4,keyasint,omitempty"`

	// StreamID identifies the stream for stream-scoped events.
	StreamID int64 `cbor:"5,keyasint,omitempty"`

	// ErrorCode carries the abort error code for stream abort events.
	ErrorCode int64 `cbor:"6,keyasint,omitempty"`

	// Reason is the human-readable abort reason.
	Reason string `cbor:"7,keyasint,omitempty"`

	// Protocols lists the offending identifiers for KindUnknownProtocols.
	Protocols []string `cbor:"8,keyasint,omitempty"`
}
