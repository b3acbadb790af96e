// Package diag is the one-way diagnostic event sink for quicmux.
//
// The listener and the per-stream lifecycle manager publish advisory events
// here: negotiation-policy findings (missing certificate, missing or unknown
// application protocols), accepted connections, and stream aborts. Events
// are observability signals only; none of them affects handshake or stream
// outcomes.
//
// Applications implement Logger, or use one of the provided sinks:
// NoopLogger, SlogLogger, MultiLogger, or the CBOR-encoding FileLogger.
package diag
