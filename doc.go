// Package quicmux provides a QUIC-based multiplexed connection listener with
// per-stream lifecycle management.
//
// A Listener is bound with Bind, accepts connections with Accept, and is torn
// down with Close. Each accepted connection is wrapped in a Conn that accepts
// and opens bidirectional and unidirectional streams. Each Stream carries
// per-direction abort operations, a lazily allocated persistent key/value
// store, and an ordered registry of completion callbacks that run in
// last-registered-first order when the stream closes.
//
// TLS parameters are produced per inbound connection by a caller-supplied
// negotiation callback. The negotiated result is validated against the
// listener's configured application protocols; mismatches are reported as
// diagnostic events to the configured diag.Logger and never fail the
// handshake.
package quicmux
