package quic

import (
	"context"
	"crypto/tls"
	"net"
)

// ListenAddrFunc is a function type for creating a QUIC listener.
// quicgo.ListenAddrEarly is the production implementation; tests substitute
// their own.
type ListenAddrFunc func(addr string, tlsConfig *tls.Config, quicConfig *Config) (Listener, error)

// Listener accepts incoming QUIC connections.
type Listener interface {
	// Accept waits for and returns the next incoming connection.
	// After Close it returns ErrServerClosed.
	Accept(ctx context.Context) (Connection, error)

	// Addr returns the listener's bound network address.
	Addr() net.Addr

	// Close closes the listener and stops accepting new connections.
	Close() error
}
