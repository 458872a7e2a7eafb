package transport

import (
	"net"
	"time"
)

// Transport is a connection with blocking-style, deadline-bounded I/O.
// Implemented by PlainConn and SecureConn. A Transport is not safe for
// concurrent use.
type Transport interface {
	// Connect opens the connection. A timeout <= 0 waits indefinitely.
	Connect(timeout time.Duration) error

	// Write blocks until every byte of p has been handed to the socket.
	Write(timeout time.Duration, p []byte) error

	// Read blocks until p is completely filled.
	Read(timeout time.Duration, p []byte) (int, error)

	// SetTimeoutMode selects per-wait (true) or elapsed (false) accounting.
	SetTimeoutMode(perWait bool)

	// State returns the lifecycle state.
	State() ConnectionState

	// LocalAddr returns the local network address, or nil before connect.
	LocalAddr() net.Addr

	// RemoteAddr returns the remote network address, or nil before connect.
	RemoteAddr() net.Addr

	// Close releases the connection. It is idempotent.
	Close() error
}

// Compile-time interface satisfaction checks.
var (
	_ Transport = (*PlainConn)(nil)
	_ Transport = (*SecureConn)(nil)
)
