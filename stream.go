package quicmux

import (
	"context"
	"sync"
	"time"

	"github.com/mkotake/quicmux/diag"
	"github.com/mkotake/quicmux/quic"
)

// Direction is the kind of a stream. Unidirectional streams read or write
// depending on which side opened them: peer-initiated unidirectional streams
// are read-only, locally opened ones are send-only.
type Direction uint8

const (
	DirectionBidirectional Direction = iota
	DirectionUnidirectional
)

func (d Direction) String() string {
	switch d {
	case DirectionBidirectional:
		return "bidirectional"
	case DirectionUnidirectional:
		return "unidirectional"
	default:
		return "unknown"
	}
}

// CompletionFunc is a teardown hook registered against a stream. It runs
// once the stream begins closing and may block.
type CompletionFunc func(ctx context.Context, state any) error

type completion struct {
	fn    CompletionFunc
	state any
}

// noAbortCode is the sentinel for "abort code not yet set".
const noAbortCode int64 = -1

// Stream is the lifecycle manager for one QUIC stream. It serializes abort,
// completion-registration and close operations against each other with a
// per-stream lock; that lock deliberately covers only this stream, never the
// whole connection.
type Stream struct {
	id       quic.StreamID
	dir      Direction
	canRead  bool
	canWrite bool
	conn     *Conn // back-reference; the connection does not own the stream

	mu   sync.Mutex
	recv quic.ReceiveStream // nil for send-only streams and after close
	send quic.SendStream    // nil for read-only streams and after close

	readCode    int64
	readReason  string
	writeCode   int64
	writeReason string

	closing     bool
	completions []completion

	// Allocated on first PersistentState call, then shared by all callers
	// for the stream's lifetime. Access to the map itself is assumed to stay
	// on one goroutine per stream and is not locked.
	state map[any]any
}

func newBidiStream(c *Conn, qs quic.Stream) *Stream {
	return &Stream{
		id:        qs.StreamID(),
		dir:       DirectionBidirectional,
		canRead:   true,
		canWrite:  true,
		conn:      c,
		recv:      qs,
		send:      qs,
		readCode:  noAbortCode,
		writeCode: noAbortCode,
	}
}

func newReceiveStream(c *Conn, rs quic.ReceiveStream) *Stream {
	return &Stream{
		id:        rs.StreamID(),
		dir:       DirectionUnidirectional,
		canRead:   true,
		conn:      c,
		recv:      rs,
		readCode:  noAbortCode,
		writeCode: noAbortCode,
	}
}

func newSendStream(c *Conn, ss quic.SendStream) *Stream {
	return &Stream{
		id:        ss.StreamID(),
		dir:       DirectionUnidirectional,
		canWrite:  true,
		conn:      c,
		send:      ss,
		readCode:  noAbortCode,
		writeCode: noAbortCode,
	}
}

// ID returns the stream's identifier, unique within its connection.
func (s *Stream) ID() quic.StreamID { return s.id }

// Direction returns the stream's kind, fixed at creation.
func (s *Stream) Direction() Direction { return s.dir }

// CanRead reports whether the stream supports reading. Fixed at creation.
func (s *Stream) CanRead() bool { return s.canRead }

// CanWrite reports whether the stream supports writing. Fixed at creation.
func (s *Stream) CanWrite() bool { return s.canWrite }

// Conn returns the connection the stream belongs to.
func (s *Stream) Conn() *Conn { return s.conn }

// AbortRead aborts the read direction with the given error code. Aborting a
// direction the stream does not support is an invalid operation; aborting
// after the stream has released its transport handle is a no-op. The code
// and reason are recorded once per direction, before the transport is told.
func (s *Stream) AbortRead(errorCode int64, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closing {
		return nil
	}
	if !s.canRead {
		return &InvalidOperationError{Op: "abort read", Reason: "stream does not support reading"}
	}
	if s.readCode == noAbortCode {
		s.readCode = errorCode
		s.readReason = reason
	}

	streamAbortsTotal.WithLabelValues("read").Inc()
	s.emitAbort(diag.KindStreamAbortRead, errorCode, reason)

	s.recv.CancelRead(quic.StreamErrorCode(errorCode))
	return nil
}

// AbortWrite aborts the write direction with the given error code. Semantics
// mirror AbortRead.
func (s *Stream) AbortWrite(errorCode int64, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closing {
		return nil
	}
	if !s.canWrite {
		return &InvalidOperationError{Op: "abort write", Reason: "stream does not support writing"}
	}
	if s.writeCode == noAbortCode {
		s.writeCode = errorCode
		s.writeReason = reason
	}

	streamAbortsTotal.WithLabelValues("write").Inc()
	s.emitAbort(diag.KindStreamAbortWrite, errorCode, reason)

	s.send.CancelWrite(quic.StreamErrorCode(errorCode))
	return nil
}

func (s *Stream) emitAbort(kind diag.Kind, errorCode int64, reason string) {
	event := diag.Event{
		Timestamp: time.Now(),
		Kind:      kind,
		StreamID:  int64(s.id),
		ErrorCode: errorCode,
		Reason:    reason,
	}
	if s.conn != nil {
		event.ConnectionID = s.conn.ID()
		s.conn.diags.Log(event)
		if s.conn.logger != nil {
			s.conn.logger.Debug("stream aborted",
				"kind", string(kind),
				"stream_id", int64(s.id),
				"error_code", errorCode,
				"reason", reason,
			)
		}
	}
}

// ReadAbortCode returns the recorded read-abort code, if one was set.
func (s *Stream) ReadAbortCode() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readCode, s.readCode != noAbortCode
}

// WriteAbortCode returns the recorded write-abort code, if one was set.
func (s *Stream) WriteAbortCode() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeCode, s.writeCode != noAbortCode
}

// RegisterCompletion appends a teardown hook. Registration is rejected once
// the stream has begun its completion sequence.
func (s *Stream) RegisterCompletion(fn CompletionFunc, state any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closing {
		return &InvalidStateError{Op: "register completion", Reason: "stream has begun closing"}
	}
	s.completions = append(s.completions, completion{fn: fn, state: state})
	return nil
}

// PersistentState returns the stream's key/value store, allocating it on
// first call. All callers share the same map for the stream's lifetime.
func (s *Stream) PersistentState() map[any]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil {
		s.state = make(map[any]any)
	}
	return s.state
}

// Close begins the stream's completion sequence: it marks the stream
// closing, releases the transport handles, then drains the completion
// callbacks in reverse registration order. Every registered callback is
// attempted exactly once; a callback that fails or panics is logged and does
// not stop the drain. Close is idempotent.
func (s *Stream) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closing {
		s.mu.Unlock()
		return nil
	}
	s.closing = true
	completions := s.completions
	s.completions = nil
	send := s.send
	s.recv = nil
	s.send = nil
	s.mu.Unlock()

	if send != nil {
		// Graceful FIN on the write side. An abort that already canceled the
		// write direction makes this a no-op at the transport.
		_ = send.Close()
	}

	for i := len(completions) - 1; i >= 0; i-- {
		s.runCompletion(ctx, completions[i])
	}
	return nil
}

func (s *Stream) runCompletion(ctx context.Context, c completion) {
	defer func() {
		if r := recover(); r != nil && s.conn != nil && s.conn.logger != nil {
			s.conn.logger.Error("completion callback panicked",
				"stream_id", int64(s.id),
				"panic", r,
			)
		}
	}()
	if err := c.fn(ctx, c.state); err != nil {
		if s.conn != nil && s.conn.logger != nil {
			s.conn.logger.Error("completion callback failed",
				"stream_id", int64(s.id),
				"error", err,
			)
		}
	}
}

// Read reads from the stream's receive side.
func (s *Stream) Read(p []byte) (int, error) {
	s.mu.Lock()
	recv := s.recv
	s.mu.Unlock()

	if !s.canRead {
		return 0, &InvalidOperationError{Op: "read", Reason: "stream does not support reading"}
	}
	if recv == nil {
		return 0, ErrStreamClosed
	}
	return recv.Read(p)
}

// Write writes to the stream's send side.
func (s *Stream) Write(p []byte) (int, error) {
	s.mu.Lock()
	send := s.send
	s.mu.Unlock()

	if !s.canWrite {
		return 0, &InvalidOperationError{Op: "write", Reason: "stream does not support writing"}
	}
	if send == nil {
		return 0, ErrStreamClosed
	}
	return send.Write(p)
}
