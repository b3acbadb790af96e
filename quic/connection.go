package quic

import (
	"context"
	"net"

	"github.com/quic-go/quic-go"
)

// Connection is one accepted or dialed QUIC connection. Streams of both
// directions are accepted and opened through it; the connection's context is
// canceled when the connection closes, locally or by the peer.
type Connection interface {
	// AcceptStream waits for and accepts the next incoming bidirectional stream.
	AcceptStream(ctx context.Context) (Stream, error)

	// AcceptUniStream waits for and accepts the next incoming unidirectional stream.
	AcceptUniStream(ctx context.Context) (ReceiveStream, error)

	// OpenStreamSync opens a new bidirectional stream, blocking until the
	// peer's stream limit allows it.
	OpenStreamSync(ctx context.Context) (Stream, error)

	// OpenUniStreamSync opens a new outgoing unidirectional stream, blocking
	// until the peer's stream limit allows it.
	OpenUniStreamSync(ctx context.Context) (SendStream, error)

	// CloseWithError closes the connection with an application error code and message.
	CloseWithError(code ApplicationErrorCode, msg string) error

	// ConnectionState returns the transport and TLS state of the connection.
	ConnectionState() ConnectionState

	// Context is canceled when the connection is closed.
	Context() context.Context

	// LocalAddr returns the local network address.
	LocalAddr() net.Addr

	// RemoteAddr returns the remote network address.
	RemoteAddr() net.Addr
}

// ConnectionState holds transport and TLS state for a connection.
type ConnectionState = quic.ConnectionState
