// Package tlsengine defines the TLS engine capability driven by the secure
// transport, and provides an implementation backed by crypto/tls.
//
// An Engine never touches a socket. The caller owns four buffers and moves
// bytes between them and the network itself:
//
//	        application                          network
//	  ┌───────────────────┐   Wrap   ┌──────────────────────────┐
//	  │ plaintext to send │ ───────► │ records to flush         │
//	  └───────────────────┘          └──────────────────────────┘
//	  ┌───────────────────┐  Unwrap  ┌──────────────────────────┐
//	  │ plaintext read    │ ◄─────── │ bytes read from socket   │
//	  └───────────────────┘          └──────────────────────────┘
//
// # Handshake
//
// After BeginHandshake the caller polls HandshakeStatus and reacts:
//   - WrapNeeded: call Wrap with empty input and flush what it produced.
//   - UnwrapNeeded: feed received bytes to Unwrap. BufferUnderflow means the
//     bytes do not yet hold a complete record; read more and retry.
//   - TaskNeeded: run every task returned by DelegatedTask.
//   - Complete: application data may flow.
//
// # crypto/tls Adapter
//
// crypto/tls only speaks net.Conn. CryptoEngine runs a tls.Conn over an
// in-memory connection and advances its handshake as a coroutine: the
// handshake goroutine runs only while the caller is blocked inside a
// delegated task, and parks again as soon as it needs input. There is never
// more than one runnable goroutine per engine.
package tlsengine
