package quicgo

import (
	"context"
	"crypto/tls"
	"net"

	"github.com/mkotake/quicmux/quic"
	quicgo "github.com/quic-go/quic-go"
)

var _ quic.ListenAddrFunc = ListenAddrEarly

// ListenAddrEarly binds a quic-go listener on the given UDP address and wraps
// it behind the quic.Listener interface.
func ListenAddrEarly(addr string, tlsConfig *tls.Config, quicConfig *quic.Config) (quic.Listener, error) {
	ln, err := quicgo.ListenAddrEarly(addr, tlsConfig, quicConfig)
	if err != nil {
		return nil, err
	}
	return &listenerWrapper{listener: ln}, nil
}

var _ quic.Listener = (*listenerWrapper)(nil)

type listenerWrapper struct {
	listener *quicgo.EarlyListener
}

func (w *listenerWrapper) Accept(ctx context.Context) (quic.Connection, error) {
	conn, err := w.listener.Accept(ctx)
	if err != nil {
		return nil, err
	}
	return wrapConnection(conn), nil
}

func (w *listenerWrapper) Addr() net.Addr {
	return w.listener.Addr()
}

func (w *listenerWrapper) Close() error {
	return w.listener.Close()
}
