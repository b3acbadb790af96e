package quicmux

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mkotake/quicmux/diag"
	"github.com/mkotake/quicmux/quic"
)

// Listener owns one bound QUIC transport listener. It is created by Bind and
// accepts connections until Close.
type Listener struct {
	protocols []string
	negotiate NegotiateFunc
	base      *tls.Config
	logger    *slog.Logger
	diags     diag.Logger
	backlog   int

	ln   quic.Listener
	addr net.Addr

	closeOnce sync.Once
	closed    atomic.Bool
}

// Addr returns the concrete bound endpoint. When Bind was given a wildcard or
// ephemeral port, this is the resolved address.
func (l *Listener) Addr() net.Addr {
	return l.addr
}

// Accept waits for the next inbound connection to complete its
// transport-level accept. It returns (nil, nil) when the listener was closed
// while the call was blocked; that is graceful shutdown, not an error. Any
// other transport failure is returned to the caller. Multiple concurrent
// Accept calls are permitted; the transport serializes delivery.
func (l *Listener) Accept(ctx context.Context) (*Conn, error) {
	if l.closed.Load() {
		return nil, ErrListenerClosed
	}

	qc, err := l.ln.Accept(ctx)
	if err != nil {
		if errors.Is(err, quic.ErrServerClosed) {
			if l.logger != nil {
				l.logger.Debug("listener unbound during accept")
			}
			return nil, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if l.logger != nil {
			l.logger.Error("failed to accept connection", "error", err)
		}
		return nil, err
	}

	conn := newConn(qc, l.logger, l.diags, l.backlog)

	connectionsAcceptedTotal.Inc()
	l.diags.Log(diag.Event{
		Timestamp:    time.Now(),
		Kind:         diag.KindConnectionAccepted,
		ConnectionID: conn.ID(),
		RemoteAddr:   qc.RemoteAddr().String(),
	})
	if l.logger != nil {
		l.logger.Debug("accepted connection",
			"conn_id", conn.ID(),
			"remote_address", qc.RemoteAddr(),
		)
	}

	return conn, nil
}

// Close unbinds the listener and disposes the transport handle. It is
// idempotent. Accept calls blocked at the time of Close resolve as graceful
// shutdown; Accept calls made afterwards return ErrListenerClosed.
func (l *Listener) Close() error {
	var err error
	l.closeOnce.Do(func() {
		l.closed.Store(true)
		err = l.ln.Close()
		if l.logger != nil {
			l.logger.Debug("listener unbound")
		}
	})
	return err
}

// serverTLSConfig builds the TLS configuration handed to the transport. The
// negotiation callback runs per connection through GetConfigForClient, with
// the validator layered on top.
func (l *Listener) serverTLSConfig() *tls.Config {
	var conf *tls.Config
	if l.base != nil {
		conf = l.base.Clone()
	} else {
		conf = &tls.Config{}
	}
	conf.NextProtos = append([]string(nil), l.protocols...)
	conf.GetConfigForClient = l.getConfigForClient
	return conf
}

// getConfigForClient invokes the caller's negotiation callback, validates the
// result against the configured protocol set, and converts it into the TLS
// configuration the handshake proceeds with. Validation only emits
// diagnostics; the negotiated result is returned unmodified even when it
// offers protocols outside the configured set.
func (l *Listener) getConfigForClient(info *tls.ClientHelloInfo) (*tls.Config, error) {
	ctx := info.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := l.negotiate(ctx, info)
	if err != nil {
		return nil, err
	}

	if event, ok := checkNegotiation(result, l.protocols); ok {
		negotiationDiagnosticsTotal.WithLabelValues(string(event.Kind)).Inc()
		if info.Conn != nil {
			event.RemoteAddr = info.Conn.RemoteAddr().String()
		}
		l.diags.Log(event)
		if l.logger != nil {
			l.logger.Debug("negotiation diagnostic",
				"kind", string(event.Kind),
				"protocols", event.Protocols,
			)
		}
	}

	return l.tlsConfigFor(result), nil
}

func (l *Listener) tlsConfigFor(result *AuthResult) *tls.Config {
	conf := l.serverTLSConfigBase()
	if result == nil {
		return conf
	}
	if result.Certificate != nil {
		conf.Certificates = []tls.Certificate{*result.Certificate}
	}
	if result.GetCertificate != nil {
		conf.GetCertificate = result.GetCertificate
	}
	if len(result.Protocols) > 0 {
		conf.NextProtos = append([]string(nil), result.Protocols...)
	}
	return conf
}

func (l *Listener) serverTLSConfigBase() *tls.Config {
	if l.base != nil {
		return l.base.Clone()
	}
	return &tls.Config{NextProtos: append([]string(nil), l.protocols...)}
}
