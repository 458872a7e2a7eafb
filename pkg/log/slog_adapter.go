package log

import (
	"context"
	"crypto/tls"
	"log/slog"
)

// SlogAdapter writes protocol events to an slog.Logger.
// Useful for development when you want to see protocol events in console.
type SlogAdapter struct {
	logger *slog.Logger
	level  slog.Level
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger
// at Debug level.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger, level: slog.LevelDebug}
}

// WithLevel returns a copy of the adapter that logs at the given level.
func (a *SlogAdapter) WithLevel(level slog.Level) *SlogAdapter {
	return &SlogAdapter{logger: a.logger, level: level}
}

// Log writes the event to the slog logger.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("conn_id", event.ConnectionID),
		slog.String("direction", event.Direction.String()),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}

	if event.Host != "" {
		attrs = append(attrs, slog.String("host", event.Host))
	}
	if event.RemoteAddr != "" {
		attrs = append(attrs, slog.String("remote", event.RemoteAddr))
	}

	switch {
	case event.Data != nil:
		attrs = append(attrs,
			slog.Int("size", event.Data.Size),
			slog.Bool("truncated", event.Data.Truncated),
		)
	case event.Handshake != nil:
		attrs = append(attrs, slog.String("step", event.Handshake.Step))
		if event.Handshake.Bytes > 0 {
			attrs = append(attrs, slog.Int("bytes", event.Handshake.Bytes))
		}
		if event.Handshake.Version != 0 {
			attrs = append(attrs,
				slog.String("version", VersionName(event.Handshake.Version)),
				slog.String("cipher_suite", tls.CipherSuiteName(event.Handshake.CipherSuite)),
			)
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("entity", event.StateChange.Entity.String()),
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.HTTP != nil:
		attrs = append(attrs, slog.String("msg_type", event.HTTP.Type.String()))
		if event.HTTP.Type == MessageTypeRequest {
			attrs = append(attrs,
				slog.String("method", event.HTTP.Method),
				slog.String("path", event.HTTP.Path),
			)
		} else {
			attrs = append(attrs,
				slog.Int("status", event.HTTP.StatusCode),
				slog.Int64("content_length", event.HTTP.ContentLength),
				slog.Bool("chunked", event.HTTP.Chunked),
			)
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
	}

	a.logger.LogAttrs(context.Background(), a.level, "protocol", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
