package quicmux

import (
	"context"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/mkotake/quicmux/diag"
	"github.com/mkotake/quicmux/quic"
)

// Conn wraps one accepted transport connection. It owns the underlying
// handle exclusively; streams hold a back-reference to the Conn but the Conn
// keeps no stream registry.
type Conn struct {
	qc     quic.Connection
	id     uuid.UUID
	logger *slog.Logger
	diags  diag.Logger

	localClosed atomic.Bool

	// Stream fan-in: bidirectional and unidirectional accepts from the
	// transport are delivered through one surface.
	acceptOnce sync.Once
	incoming   chan *Stream
	acceptDone chan struct{}
	acceptErr  error
	errOnce    sync.Once
}

func newConn(qc quic.Connection, logger *slog.Logger, diags diag.Logger, backlog int) *Conn {
	if diags == nil {
		diags = diag.NoopLogger{}
	}
	if backlog <= 0 {
		backlog = DefaultBacklog
	}
	id := uuid.New()
	if logger != nil {
		logger = logger.With("conn_id", id.String(), "remote_address", qc.RemoteAddr().String())
	}
	return &Conn{
		qc:         qc,
		id:         id,
		logger:     logger,
		diags:      diags,
		incoming:   make(chan *Stream, backlog),
		acceptDone: make(chan struct{}),
	}
}

// ID returns the connection's identity carried in diagnostics.
func (c *Conn) ID() string { return c.id.String() }

// LocalAddr returns the local network address.
func (c *Conn) LocalAddr() net.Addr { return c.qc.LocalAddr() }

// RemoteAddr returns the peer's network address.
func (c *Conn) RemoteAddr() net.Addr { return c.qc.RemoteAddr() }

// Context is canceled when the connection closes, locally or by the peer.
func (c *Conn) Context() context.Context { return c.qc.Context() }

// ConnectionState returns the transport and TLS state of the connection.
func (c *Conn) ConnectionState() quic.ConnectionState { return c.qc.ConnectionState() }

// AcceptStream waits for the next peer-initiated stream of either direction.
func (c *Conn) AcceptStream(ctx context.Context) (*Stream, error) {
	c.acceptOnce.Do(c.startAccepting)

	select {
	case s := <-c.incoming:
		streamsAcceptedTotal.WithLabelValues(s.dir.String()).Inc()
		if c.logger != nil {
			c.logger.Debug("accepted stream", "stream_id", int64(s.id), "direction", s.dir.String())
		}
		return s, nil
	case <-c.acceptDone:
		return nil, c.acceptError()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// startAccepting pumps the transport's two accept surfaces into one
// channel. The pumps run for the lifetime of the connection.
func (c *Conn) startAccepting() {
	go func() {
		for {
			qs, err := c.qc.AcceptStream(c.qc.Context())
			if err != nil {
				c.failAccept(err)
				return
			}
			if !c.deliver(newBidiStream(c, qs)) {
				return
			}
		}
	}()
	go func() {
		for {
			rs, err := c.qc.AcceptUniStream(c.qc.Context())
			if err != nil {
				c.failAccept(err)
				return
			}
			if !c.deliver(newReceiveStream(c, rs)) {
				return
			}
		}
	}()
}

func (c *Conn) deliver(s *Stream) bool {
	select {
	case c.incoming <- s:
		return true
	case <-c.qc.Context().Done():
		return false
	}
}

func (c *Conn) failAccept(err error) {
	c.errOnce.Do(func() {
		c.acceptErr = err
		close(c.acceptDone)
	})
}

func (c *Conn) acceptError() error {
	if c.localClosed.Load() {
		return ErrConnClosed
	}
	return c.acceptErr
}

// OpenStream opens a new locally initiated stream of the given direction.
// Unidirectional streams are send-only from the opener's side. The call
// blocks while the peer's stream limit is exhausted.
func (c *Conn) OpenStream(ctx context.Context, dir Direction) (*Stream, error) {
	switch dir {
	case DirectionBidirectional:
		qs, err := c.qc.OpenStreamSync(ctx)
		if err != nil {
			return nil, err
		}
		streamsOpenedTotal.WithLabelValues(dir.String()).Inc()
		return newBidiStream(c, qs), nil
	case DirectionUnidirectional:
		ss, err := c.qc.OpenUniStreamSync(ctx)
		if err != nil {
			return nil, err
		}
		streamsOpenedTotal.WithLabelValues(dir.String()).Inc()
		return newSendStream(c, ss), nil
	default:
		return nil, &InvalidOperationError{Op: "open stream", Reason: "unknown stream direction"}
	}
}

// Close closes the connection with no error code.
func (c *Conn) Close() error {
	return c.CloseWithError(0, "")
}

// CloseWithError closes the connection with an application error code. The
// local close is recorded first so the close notification that follows is not
// misreported as peer-initiated.
func (c *Conn) CloseWithError(code quic.ApplicationErrorCode, reason string) error {
	c.localClosed.Store(true)
	return c.qc.CloseWithError(code, reason)
}

// ClosedByPeer reports whether the connection has been closed by the remote
// side. It stays false while the connection is open and when the close was
// initiated locally.
func (c *Conn) ClosedByPeer() bool {
	select {
	case <-c.qc.Context().Done():
		return !c.localClosed.Load()
	default:
		return false
	}
}
