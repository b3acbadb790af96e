package quicgo

import (
	"context"
	"crypto/tls"
	"net"

	"github.com/mkotake/quicmux/quic"
	quicgo "github.com/quic-go/quic-go"
)

// DialAddrEarly dials a QUIC connection and wraps it behind the
// quic.Connection interface.
func DialAddrEarly(ctx context.Context, addr string, tlsConfig *tls.Config, quicConfig *quic.Config) (quic.Connection, error) {
	conn, err := quicgo.DialAddrEarly(ctx, addr, tlsConfig, quicConfig)
	if err != nil {
		return nil, err
	}
	return wrapConnection(conn), nil
}

func wrapConnection(conn quicgo.Connection) quic.Connection {
	if conn == nil {
		return nil
	}
	return &connWrapper{conn: conn}
}

var _ quic.Connection = (*connWrapper)(nil)

type connWrapper struct {
	conn quicgo.Connection
}

func (w *connWrapper) AcceptStream(ctx context.Context) (quic.Stream, error) {
	return w.conn.AcceptStream(ctx)
}

func (w *connWrapper) AcceptUniStream(ctx context.Context) (quic.ReceiveStream, error) {
	return w.conn.AcceptUniStream(ctx)
}

func (w *connWrapper) OpenStreamSync(ctx context.Context) (quic.Stream, error) {
	return w.conn.OpenStreamSync(ctx)
}

func (w *connWrapper) OpenUniStreamSync(ctx context.Context) (quic.SendStream, error) {
	return w.conn.OpenUniStreamSync(ctx)
}

func (w *connWrapper) CloseWithError(code quic.ApplicationErrorCode, msg string) error {
	return w.conn.CloseWithError(code, msg)
}

func (w *connWrapper) ConnectionState() quic.ConnectionState {
	return w.conn.ConnectionState()
}

func (w *connWrapper) Context() context.Context {
	return w.conn.Context()
}

func (w *connWrapper) LocalAddr() net.Addr {
	return w.conn.LocalAddr()
}

func (w *connWrapper) RemoteAddr() net.Addr {
	return w.conn.RemoteAddr()
}
