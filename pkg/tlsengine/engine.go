package tlsengine

import "errors"

// HandshakeStatus tells the driver what the engine needs next.
type HandshakeStatus int

const (
	// NotHandshaking means BeginHandshake has not been called.
	NotHandshaking HandshakeStatus = iota

	// WrapNeeded means the engine has records to send.
	WrapNeeded

	// UnwrapNeeded means the engine waits for records from the peer.
	UnwrapNeeded

	// TaskNeeded means delegated tasks must run before progress is possible.
	TaskNeeded

	// Complete means the handshake finished successfully.
	Complete

	// Failed means the handshake aborted. Err returns the cause.
	Failed
)

// String returns the status name.
func (s HandshakeStatus) String() string {
	switch s {
	case NotHandshaking:
		return "NOT_HANDSHAKING"
	case WrapNeeded:
		return "WRAP_NEEDED"
	case UnwrapNeeded:
		return "UNWRAP_NEEDED"
	case TaskNeeded:
		return "TASK_NEEDED"
	case Complete:
		return "COMPLETE"
	case Failed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Status is the outcome of a single Wrap or Unwrap call.
type Status int

const (
	// OK means the call made progress (possibly zero bytes of plaintext).
	OK Status = iota

	// BufferUnderflow means the input does not hold a complete record.
	// Nothing was consumed.
	BufferUnderflow

	// BufferOverflow means the output buffer has no room.
	BufferOverflow

	// Closed means the peer sent close_notify, or the engine was closed.
	Closed
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case OK:
		return "OK"
	case BufferUnderflow:
		return "BUFFER_UNDERFLOW"
	case BufferOverflow:
		return "BUFFER_OVERFLOW"
	case Closed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// Result reports what a Wrap or Unwrap call did.
type Result struct {
	Status          Status
	HandshakeStatus HandshakeStatus
	Consumed        int
	Produced        int
}

// Session carries the buffer sizes negotiated for a session.
type Session struct {
	// ApplicationBufferSize is the largest plaintext one record can carry.
	ApplicationBufferSize int

	// PacketBufferSize is the largest record on the wire.
	PacketBufferSize int
}

// Engine is a TLS state machine that is driven by its caller.
// Implementations are not safe for concurrent use.
type Engine interface {
	// BeginHandshake starts the client handshake.
	BeginHandshake() error

	// Wrap encrypts plaintext from src into records written to dst.
	// During the handshake src is empty and Wrap emits handshake records.
	Wrap(src, dst []byte) (Result, error)

	// Unwrap decrypts at most one complete record from src into dst.
	Unwrap(src, dst []byte) (Result, error)

	// HandshakeStatus reports what the engine needs next.
	HandshakeStatus() HandshakeStatus

	// DelegatedTask returns the next pending task, or nil when none is left.
	// Tasks must be run synchronously, in order.
	DelegatedTask() func()

	// Session returns the buffer sizes for this engine.
	Session() Session

	// CloseOutbound queues a close_notify alert for the next Wrap.
	CloseOutbound()

	// Err returns the error that made the handshake fail, if any.
	Err() error

	// Close releases engine resources. It is idempotent.
	Close() error
}

// Engine errors.
var (
	ErrHandshakeNotStarted = errors.New("tlsengine: handshake not started")
	ErrHandshakeStarted    = errors.New("tlsengine: handshake already started")
	ErrEngineClosed        = errors.New("tlsengine: engine closed")
	ErrRecordTooLarge      = errors.New("tlsengine: record exceeds packet buffer size")
)

// Compile-time interface satisfaction check.
var _ Engine = (*CryptoEngine)(nil)
