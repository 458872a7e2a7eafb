package tlsengine

import (
	"bytes"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"
)

// errWouldBlock is returned by the in-memory connection when crypto/tls
// asks for bytes that have not been unwrapped yet. crypto/tls treats a
// temporary net.Error as retryable and keeps its record state intact.
var errWouldBlock net.Error = wouldBlockError{}

type wouldBlockError struct{}

func (wouldBlockError) Error() string   { return "tlsengine: would block" }
func (wouldBlockError) Timeout() bool   { return true }
func (wouldBlockError) Temporary() bool { return true }

// CryptoEngine adapts crypto/tls to the Engine contract.
//
// The in, out and plain buffers are shared between the caller and the
// handshake coroutine. They are never touched concurrently: ownership is
// handed over through the resume and parked channels.
type CryptoEngine struct {
	conn *tls.Conn

	in      bytes.Buffer // whole records handed to crypto/tls
	out     bytes.Buffer // records produced by crypto/tls
	plain   bytes.Buffer // decrypted data not yet delivered
	scratch []byte

	resume chan struct{}
	parked chan struct{}
	done   chan struct{}
	exited chan struct{}

	started        bool
	waiting        bool // coroutine parked for input
	taskReady      bool // input arrived while the coroutine was parked
	finished       bool // handshake returned
	hsErr          error
	inboundClosed  bool
	outboundClosed bool
	closed         bool
	closeOnce      sync.Once
}

// NewCrypto creates a client engine for the given TLS configuration.
// The configuration must carry a ServerName unless InsecureSkipVerify is set.
func NewCrypto(config *tls.Config) *CryptoEngine {
	e := &CryptoEngine{
		scratch: make([]byte, MaxPlaintext),
		resume:  make(chan struct{}),
		parked:  make(chan struct{}),
		done:    make(chan struct{}),
		exited:  make(chan struct{}),
	}
	e.conn = tls.Client(&memConn{engine: e}, config)
	return e
}

// BeginHandshake starts the handshake coroutine and lets it produce the
// ClientHello.
func (e *CryptoEngine) BeginHandshake() error {
	if e.closed {
		return ErrEngineClosed
	}
	if e.started {
		return ErrHandshakeStarted
	}
	e.started = true
	go e.run()
	e.step()
	return nil
}

// Wrap implements Engine.
func (e *CryptoEngine) Wrap(src, dst []byte) (Result, error) {
	if e.closed {
		return Result{Status: Closed}, ErrEngineClosed
	}
	if !e.started {
		return Result{}, ErrHandshakeNotStarted
	}
	if len(dst) == 0 {
		return Result{Status: BufferOverflow, HandshakeStatus: e.HandshakeStatus()}, nil
	}

	res := Result{Status: OK}
	if e.out.Len() == 0 && len(src) > 0 && e.established() {
		if e.outboundClosed {
			res.Status = Closed
			res.HandshakeStatus = e.HandshakeStatus()
			return res, nil
		}
		n := min(len(src), MaxPlaintext)
		written, err := e.conn.Write(src[:n])
		res.Consumed = written
		if err != nil {
			return res, fmt.Errorf("tlsengine: wrap: %w", err)
		}
	}

	res.Produced, _ = e.out.Read(dst)
	res.HandshakeStatus = e.HandshakeStatus()
	return res, nil
}

// Unwrap implements Engine.
func (e *CryptoEngine) Unwrap(src, dst []byte) (Result, error) {
	if e.closed {
		return Result{Status: Closed}, ErrEngineClosed
	}
	if !e.started {
		return Result{}, ErrHandshakeNotStarted
	}

	res := Result{Status: OK}
	if e.plain.Len() > 0 {
		if len(dst) == 0 {
			res.Status = BufferOverflow
		} else {
			res.Produced, _ = e.plain.Read(dst)
		}
		res.HandshakeStatus = e.HandshakeStatus()
		return res, nil
	}
	if e.inboundClosed {
		res.Status = Closed
		res.HandshakeStatus = e.HandshakeStatus()
		return res, nil
	}

	n, complete, err := recordLength(src)
	if err != nil {
		return res, err
	}
	if !complete {
		res.Status = BufferUnderflow
		res.HandshakeStatus = e.HandshakeStatus()
		return res, nil
	}

	e.in.Write(src[:n])
	res.Consumed = n

	if !e.finished {
		// The coroutine picks the record up in its next task.
		if e.waiting {
			e.taskReady = true
		}
		res.HandshakeStatus = e.HandshakeStatus()
		return res, nil
	}

	if err := e.decrypt(); err != nil {
		return res, err
	}
	if e.plain.Len() > 0 && len(dst) > 0 {
		res.Produced, _ = e.plain.Read(dst)
	}
	if res.Produced == 0 && e.inboundClosed {
		res.Status = Closed
	}
	res.HandshakeStatus = e.HandshakeStatus()
	return res, nil
}

// HandshakeStatus implements Engine.
func (e *CryptoEngine) HandshakeStatus() HandshakeStatus {
	switch {
	case !e.started:
		return NotHandshaking
	case e.out.Len() > 0:
		return WrapNeeded
	case e.finished && e.hsErr != nil:
		return Failed
	case e.finished:
		return Complete
	case e.taskReady || !e.waiting:
		return TaskNeeded
	default:
		return UnwrapNeeded
	}
}

// DelegatedTask implements Engine. The returned task resumes the handshake
// coroutine and returns once it has parked again.
func (e *CryptoEngine) DelegatedTask() func() {
	if !e.started || e.finished || e.closed {
		return nil
	}
	if !e.taskReady && e.waiting {
		return nil
	}
	return func() {
		e.taskReady = false
		e.step()
	}
}

// Session implements Engine.
func (e *CryptoEngine) Session() Session {
	return Session{
		ApplicationBufferSize: MaxPlaintext,
		PacketBufferSize:      DefaultPacketBufferSize,
	}
}

// ConnectionState returns the negotiated TLS parameters.
func (e *CryptoEngine) ConnectionState() tls.ConnectionState {
	return e.conn.ConnectionState()
}

// CloseOutbound implements Engine.
func (e *CryptoEngine) CloseOutbound() {
	if e.outboundClosed || !e.established() || e.closed {
		return
	}
	e.outboundClosed = true
	_ = e.conn.CloseWrite()
}

// Err implements Engine.
func (e *CryptoEngine) Err() error {
	return e.hsErr
}

// Close implements Engine. It stops the handshake coroutine if it is still
// parked and waits for it to exit.
func (e *CryptoEngine) Close() error {
	e.closeOnce.Do(func() {
		e.closed = true
		close(e.done)
		if e.started {
			<-e.exited
		}
	})
	return nil
}

func (e *CryptoEngine) established() bool {
	return e.finished && e.hsErr == nil
}

// decrypt drains every record crypto/tls can process from the in buffer.
func (e *CryptoEngine) decrypt() error {
	for {
		n, err := e.conn.Read(e.scratch)
		e.plain.Write(e.scratch[:n])
		switch {
		case err == nil:
		case errors.Is(err, errWouldBlock):
			return nil
		case errors.Is(err, io.EOF):
			e.inboundClosed = true
			return nil
		default:
			return fmt.Errorf("tlsengine: unwrap: %w", err)
		}
	}
}

// run is the handshake coroutine.
func (e *CryptoEngine) run() {
	defer close(e.exited)
	if !e.await() {
		return
	}
	e.hsErr = e.conn.Handshake()
	e.finished = true
	e.park()
}

// step hands control to the coroutine and blocks until it parks.
func (e *CryptoEngine) step() {
	select {
	case e.resume <- struct{}{}:
	case <-e.exited:
		return
	}
	select {
	case <-e.parked:
	case <-e.exited:
	}
}

func (e *CryptoEngine) await() bool {
	select {
	case <-e.resume:
		return true
	case <-e.done:
		return false
	}
}

func (e *CryptoEngine) park() {
	select {
	case e.parked <- struct{}{}:
	case <-e.done:
	}
}

// readRecords serves crypto/tls reads from the in buffer. During the
// handshake an empty buffer parks the coroutine; afterwards it reports
// errWouldBlock.
func (e *CryptoEngine) readRecords(p []byte) (int, error) {
	for e.in.Len() == 0 {
		if e.finished {
			return 0, errWouldBlock
		}
		e.waiting = true
		e.park()
		if !e.await() {
			return 0, net.ErrClosed
		}
		e.waiting = false
	}
	return e.in.Read(p)
}

// memConn is the net.Conn crypto/tls runs on.
type memConn struct {
	engine *CryptoEngine
}

func (c *memConn) Read(p []byte) (int, error)  { return c.engine.readRecords(p) }
func (c *memConn) Write(p []byte) (int, error) { return c.engine.out.Write(p) }
func (c *memConn) Close() error                { return nil }

func (c *memConn) LocalAddr() net.Addr              { return memAddr{} }
func (c *memConn) RemoteAddr() net.Addr             { return memAddr{} }
func (c *memConn) SetDeadline(time.Time) error      { return nil }
func (c *memConn) SetReadDeadline(time.Time) error  { return nil }
func (c *memConn) SetWriteDeadline(time.Time) error { return nil }

type memAddr struct{}

func (memAddr) Network() string { return "memory" }
func (memAddr) String() string  { return "tlsengine" }
