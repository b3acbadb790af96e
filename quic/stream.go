package quic

import (
	"context"
	"io"
	"time"

	"github.com/quic-go/quic-go"
)

// Stream is a bidirectional QUIC stream that implements both SendStream and ReceiveStream.
type Stream interface {
	SendStream
	ReceiveStream

	// SetDeadline sets both the read and the write deadline.
	SetDeadline(time.Time) error
}

// SendStream is the write half of a QUIC stream.
type SendStream interface {
	io.Writer
	io.Closer

	// StreamID returns the stream's identifier, unique within its connection.
	StreamID() StreamID

	// CancelWrite aborts the write direction with the given error code.
	CancelWrite(StreamErrorCode)

	// SetWriteDeadline sets the deadline for write operations.
	SetWriteDeadline(time.Time) error

	// Context is canceled when the write side of the stream is closed.
	Context() context.Context
}

// ReceiveStream is the read half of a QUIC stream.
type ReceiveStream interface {
	io.Reader

	// StreamID returns the stream's identifier, unique within its connection.
	StreamID() StreamID

	// CancelRead aborts the read direction with the given error code.
	CancelRead(StreamErrorCode)

	// SetReadDeadline sets the deadline for read operations.
	SetReadDeadline(time.Time) error
}

// StreamID uniquely identifies a stream within a QUIC connection.
type StreamID = quic.StreamID
