package diag

import (
	"context"
	"log/slog"
)

// SlogLogger writes diagnostic events to an slog.Logger at Debug level.
// Useful for development when events should show up in the console.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger creates a SlogLogger writing to the given slog.Logger.
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	return &SlogLogger{logger: logger}
}

// Log writes the event to the slog logger.
func (l *SlogLogger) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("kind", string(event.Kind)),
	}
	if event.ConnectionID != "" {
		attrs = append(attrs, slog.String("conn_id", event.ConnectionID))
	}
	if event.RemoteAddr != "" {
		attrs = append(attrs, slog.String("remote_address", event.RemoteAddr))
	}
	switch event.Kind {
	case KindStreamAbortRead, KindStreamAbortWrite:
		attrs = append(attrs,
			slog.Int64("stream_id", event.StreamID),
			slog.Int64("error_code", event.ErrorCode),
		)
		if event.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.Reason))
		}
	case KindUnknownProtocols:
		attrs = append(attrs, slog.Any("protocols", event.Protocols))
	}

	l.logger.LogAttrs(context.Background(), slog.LevelDebug, "diagnostic event", attrs...)
}

var _ Logger = (*SlogLogger)(nil)
