// Package quic defines the transport abstraction the quicmux listener is
// built against.
//
// The interfaces here describe the small surface of a QUIC implementation
// the listener, connection wrapper and stream manager actually touch:
// accepting connections, accepting and opening streams in both directions,
// and aborting individual stream directions with an error code. Error and
// configuration types are aliased from github.com/quic-go/quic-go so callers
// can match on them with errors.Is / errors.As without importing quic-go
// themselves.
//
// The quicgo subpackage provides the production implementation. Tests
// substitute mocks for these interfaces.
package quic
