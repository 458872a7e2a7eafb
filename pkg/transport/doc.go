// Package transport provides plain TCP and TLS connections with
// blocking-style, deadline-bounded reads and writes.
//
// Every operation takes a timeout. The timeout is turned into a
// deadline.Budget and every wait on the socket (connect, readiness for
// reading, readiness for writing) is bounded by that budget:
//
//	┌────────────────────────────────┐
//	│  Transport (Read/Write/Close)  │
//	├───────────────┬────────────────┤
//	│   PlainConn   │   SecureConn   │
//	│               ├────────────────┤
//	│               │   tlsengine    │
//	├───────────────┴────────────────┤
//	│  waiter (deadline-bounded I/O) │
//	├────────────────────────────────┤
//	│              TCP               │
//	└────────────────────────────────┘
//
// # Read semantics
//
// Read fills the caller buffer exactly. Bytes that arrive beyond what the
// caller asked for are retained and returned by the next Read before the
// socket is touched again.
//
// # Timeout accounting
//
// By default the timeout bounds the whole call (elapsed mode): each wait
// receives what is left. SetTimeoutMode(true) switches to per-wait mode,
// where every wait receives the full timeout.
//
// # TLS
//
// SecureConn drives a tlsengine.Engine through the handshake and the record
// layer itself, using four fixed-size buffers sized from the engine session.
// Certificate validation follows TLSConfig; it verifies against the system
// roots unless told otherwise.
package transport
