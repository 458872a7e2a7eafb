package log

import (
	"time"
)

// MaxLogDataSize caps the bytes copied into a DataEvent.
const MaxLogDataSize = 1024

// Recorder stamps events with the identity of one connection and hands them
// to a Logger. A nil Recorder, or one without a Logger, discards everything,
// so callers never need to nil-check before recording.
type Recorder struct {
	logger Logger
	connID string
	host   string
	remote string
	now    func() time.Time
}

// NewRecorder creates a Recorder for one connection.
func NewRecorder(logger Logger, connectionID, host string) *Recorder {
	return &Recorder{
		logger: logger,
		connID: connectionID,
		host:   host,
		now:    time.Now,
	}
}

// ConnectionID returns the connection the recorder stamps events with.
func (r *Recorder) ConnectionID() string {
	if r == nil {
		return ""
	}
	return r.connID
}

// SetRemoteAddr records the peer address once the socket is connected.
func (r *Recorder) SetRemoteAddr(addr string) {
	if r == nil {
		return
	}
	r.remote = addr
}

// Enabled reports whether events reach a logger.
func (r *Recorder) Enabled() bool {
	return r != nil && r.logger != nil
}

// Data records bytes moved across a layer.
func (r *Recorder) Data(layer Layer, dir Direction, data []byte) {
	if !r.Enabled() || len(data) == 0 {
		return
	}
	n := min(len(data), MaxLogDataSize)
	r.emit(dir, layer, CategoryData, Event{
		Data: &DataEvent{
			Size:      len(data),
			Data:      append([]byte(nil), data[:n]...),
			Truncated: n < len(data),
		},
	})
}

// Handshake records one step of the handshake loop.
func (r *Recorder) Handshake(dir Direction, step string, n int) {
	if !r.Enabled() {
		return
	}
	r.emit(dir, LayerTLS, CategoryHandshake, Event{
		Handshake: &HandshakeEvent{Step: step, Bytes: n},
	})
}

// HandshakeComplete records the negotiated session parameters.
func (r *Recorder) HandshakeComplete(version, cipherSuite uint16, serverName string) {
	if !r.Enabled() {
		return
	}
	r.emit(DirectionIn, LayerTLS, CategoryHandshake, Event{
		Handshake: &HandshakeEvent{
			Step:        "COMPLETE",
			Version:     version,
			CipherSuite: cipherSuite,
			ServerName:  serverName,
		},
	})
}

// State records a state transition.
func (r *Recorder) State(entity StateEntity, oldState, newState, reason string) {
	if !r.Enabled() {
		return
	}
	layer := LayerTransport
	if entity == StateEntitySession {
		layer = LayerTLS
	}
	r.emit(DirectionOut, layer, CategoryState, Event{
		StateChange: &StateChangeEvent{
			Entity:   entity,
			OldState: oldState,
			NewState: newState,
			Reason:   reason,
		},
	})
}

// Request records an outgoing request head.
func (r *Recorder) Request(method, path string, headers map[string]string) {
	if !r.Enabled() {
		return
	}
	r.emit(DirectionOut, LayerHTTP, CategoryMessage, Event{
		HTTP: &HTTPEvent{
			Type:          MessageTypeRequest,
			Method:        method,
			Path:          path,
			Headers:       headers,
			ContentLength: -1,
		},
	})
}

// Response records an incoming response head.
func (r *Recorder) Response(code int, reason string, headers map[string]string, contentLength int64, chunked bool) {
	if !r.Enabled() {
		return
	}
	r.emit(DirectionIn, LayerHTTP, CategoryMessage, Event{
		HTTP: &HTTPEvent{
			Type:          MessageTypeResponse,
			StatusCode:    code,
			Reason:        reason,
			Headers:       headers,
			ContentLength: contentLength,
			Chunked:       chunked,
		},
	})
}

// Error records a failure. A nil error is ignored.
func (r *Recorder) Error(layer Layer, err error, context string) {
	if !r.Enabled() || err == nil {
		return
	}
	r.emit(DirectionIn, layer, CategoryError, Event{
		Error: &ErrorEventData{
			Layer:   layer,
			Message: err.Error(),
			Context: context,
		},
	})
}

func (r *Recorder) emit(dir Direction, layer Layer, category Category, event Event) {
	event.Timestamp = r.now()
	event.ConnectionID = r.connID
	event.Direction = dir
	event.Layer = layer
	event.Category = category
	event.RemoteAddr = r.remote
	event.Host = r.host
	r.logger.Log(event)
}
