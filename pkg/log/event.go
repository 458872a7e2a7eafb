package log

import (
	"time"
)

// Event represents a protocol log event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ConnectionID uniquely identifies the connection (UUID).
	ConnectionID string `cbor:"2,keyasint"`

	// Direction indicates data flow.
	Direction Direction `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// RemoteAddr is the peer address (IP:port).
	RemoteAddr string `cbor:"6,keyasint,omitempty"`

	// Host is the target host name as given by the caller.
	Host string `cbor:"7,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Data        *DataEvent        `cbor:"10,keyasint,omitempty"` // Socket or record bytes
	Handshake   *HandshakeEvent   `cbor:"11,keyasint,omitempty"` // TLS handshake steps
	StateChange *StateChangeEvent `cbor:"12,keyasint,omitempty"` // Connection state
	HTTP        *HTTPEvent        `cbor:"13,keyasint,omitempty"` // Request/response heads
	Error       *ErrorEventData   `cbor:"14,keyasint,omitempty"` // Errors at any layer
}

// Direction indicates the direction of data flow.
type Direction uint8

const (
	// DirectionIn indicates data received from the peer.
	DirectionIn Direction = 0
	// DirectionOut indicates data sent to the peer.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which protocol layer captured the event.
type Layer uint8

const (
	// LayerTransport is the socket layer (raw bytes).
	LayerTransport Layer = 0
	// LayerTLS is the TLS record layer.
	LayerTLS Layer = 1
	// LayerHTTP is the HTTP message layer.
	LayerHTTP Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerTransport:
		return "TRANSPORT"
	case LayerTLS:
		return "TLS"
	case LayerHTTP:
		return "HTTP"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryData indicates bytes moved across a layer.
	CategoryData Category = 0
	// CategoryHandshake indicates a TLS handshake step.
	CategoryHandshake Category = 1
	// CategoryState indicates a state change.
	CategoryState Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
	// CategoryMessage indicates an HTTP request or response head.
	CategoryMessage Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryData:
		return "DATA"
	case CategoryHandshake:
		return "HANDSHAKE"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	case CategoryMessage:
		return "MESSAGE"
	default:
		return "UNKNOWN"
	}
}

// DataEvent captures bytes flowing through the transport.
type DataEvent struct {
	// Size is the number of bytes moved.
	Size int `cbor:"1,keyasint"`

	// Data is the raw bytes (may be truncated for large transfers).
	Data []byte `cbor:"2,keyasint,omitempty"`

	// Truncated indicates if Data was truncated.
	Truncated bool `cbor:"3,keyasint,omitempty"`
}

// HandshakeEvent captures one step of the TLS handshake loop.
type HandshakeEvent struct {
	// Step is the engine status that drove this step (WRAP_NEEDED, ...).
	Step string `cbor:"1,keyasint"`

	// Bytes is the number of record bytes sent or consumed by the step.
	Bytes int `cbor:"2,keyasint,omitempty"`

	// Version is the negotiated TLS version (set on completion).
	Version uint16 `cbor:"3,keyasint,omitempty"`

	// CipherSuite is the negotiated cipher suite (set on completion).
	CipherSuite uint16 `cbor:"4,keyasint,omitempty"`

	// ServerName is the SNI value sent to the peer.
	ServerName string `cbor:"5,keyasint,omitempty"`
}

// StateChangeEvent captures connection lifecycle events.
type StateChangeEvent struct {
	// Entity being changed.
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// StateEntity indicates what entity changed state.
type StateEntity uint8

const (
	// StateEntityConnection indicates a transport state change.
	StateEntityConnection StateEntity = 0
	// StateEntitySession indicates a TLS session state change.
	StateEntitySession StateEntity = 1
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntityConnection:
		return "CONNECTION"
	case StateEntitySession:
		return "SESSION"
	default:
		return "UNKNOWN"
	}
}

// HTTPEvent captures an HTTP request or response head.
type HTTPEvent struct {
	// Type distinguishes request from response.
	Type MessageType `cbor:"1,keyasint"`

	// Method and Path are set for requests.
	Method string `cbor:"2,keyasint,omitempty"`
	Path   string `cbor:"3,keyasint,omitempty"`

	// StatusCode and Reason are set for responses.
	StatusCode int    `cbor:"4,keyasint,omitempty"`
	Reason     string `cbor:"5,keyasint,omitempty"`

	// Headers as sent or received.
	Headers map[string]string `cbor:"6,keyasint,omitempty"`

	// ContentLength is -1 when the message carries none.
	ContentLength int64 `cbor:"7,keyasint,omitempty"`

	// Chunked is set when the body uses chunked transfer coding.
	Chunked bool `cbor:"8,keyasint,omitempty"`
}

// MessageType distinguishes request from response.
type MessageType uint8

const (
	// MessageTypeRequest indicates a request head.
	MessageTypeRequest MessageType = 0
	// MessageTypeResponse indicates a response head.
	MessageTypeResponse MessageType = 1
)

// String returns the message type name.
func (m MessageType) String() string {
	switch m {
	case MessageTypeRequest:
		return "REQUEST"
	case MessageTypeResponse:
		return "RESPONSE"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"3,keyasint,omitempty"`
}
