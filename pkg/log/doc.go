// Package log provides structured protocol logging for nio-go connections.
//
// This package defines the Logger interface and Event types for capturing
// protocol-level events at the socket, TLS and HTTP layers. It is separate
// from operational logging (slog): protocol capture provides a complete
// machine-readable trace of one connection for debugging and analysis.
//
// # Basic Usage
//
// Applications configure logging by providing a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.ProtocolLogger = log.NewSlogAdapter(slog.Default())
//
//	// For capture: write to binary file
//	cfg.ProtocolLogger, _ = log.NewFileLogger("/tmp/fetch.nlog")
//
//	// Both: use MultiLogger
//	cfg.ProtocolLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// Transports and the HTTP client emit events through a Recorder bound to
// one connection ID.
//
// # Event Types
//
//   - Transport/TLS: bytes moved (DataEvent)
//   - TLS: handshake steps and negotiated parameters (HandshakeEvent)
//   - Transport: connection state changes (StateChangeEvent)
//   - HTTP: request and response heads (HTTPEvent)
//
// Errors at any layer have a dedicated event type.
//
// # File Format
//
// Log files are a stream of CBOR items with the .nlog extension. The
// nio-log CLI tool provides viewing, filtering and statistics.
package log
