package transport

// ConnectionState is the lifecycle state of a transport.
type ConnectionState int

const (
	// StateIdle indicates Connect has not been called.
	StateIdle ConnectionState = iota

	// StateConnecting indicates the TCP connect (and TLS handshake) is in progress.
	StateConnecting

	// StateOpen indicates the transport can read and write.
	StateOpen

	// StateClosed indicates the transport was closed or failed to connect.
	// A closed transport cannot be reopened.
	StateClosed
)

// String returns the connection state name.
func (s ConnectionState) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateConnecting:
		return "CONNECTING"
	case StateOpen:
		return "OPEN"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}
