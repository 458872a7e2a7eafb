package transport

import (
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"github.com/easycrab/nio-go/pkg/deadline"
	"github.com/easycrab/nio-go/pkg/log"
	"github.com/easycrab/nio-go/pkg/tlsengine"
)

// EngineFactory creates the TLS engine for one connection.
type EngineFactory func(serverName string) (tlsengine.Engine, error)

// SecureConfig configures a SecureConn.
type SecureConfig struct {
	Config

	// TLS is the certificate policy used by the default engine factory.
	TLS *TLSConfig

	// EngineFactory overrides the crypto/tls backed engine.
	EngineFactory EngineFactory
}

// SecureConn is a TLS transport. It drives a tlsengine.Engine itself: the
// handshake and every record pass through four fixed buffers, and every
// socket wait is bounded by the call's budget.
type SecureConn struct {
	base
	engine  tlsengine.Engine
	factory EngineFactory
	bufs    BufferPair
}

// NewSecure creates an unconnected TLS transport to host:port.
func NewSecure(host string, port int, config SecureConfig) *SecureConn {
	factory := config.EngineFactory
	if factory == nil {
		factory = CryptoEngineFactory(config.TLS)
	}
	return &SecureConn{
		base:    newBase(host, port, config.Config),
		factory: factory,
	}
}

// Connect opens the TCP connection and completes the TLS handshake. Both
// share the timeout; running out of time in either yields ErrConnectTimeout.
func (c *SecureConn) Connect(timeout time.Duration) error {
	if err := c.begin(); err != nil {
		return err
	}
	budget := c.budget(timeout)
	if err := c.dial(budget); err != nil {
		return c.fail(err)
	}

	engine, err := c.factory(c.host)
	if err != nil {
		return c.fail(fmt.Errorf("%w: %w", ErrHandshakeFailed, err))
	}
	c.engine = engine
	session := engine.Session()
	c.bufs = NewBufferPair(session.ApplicationBufferSize, session.PacketBufferSize)

	if err := c.handshake(budget); err != nil {
		c.closeEngine()
		return c.fail(err)
	}
	c.setState(StateOpen, "")
	return nil
}

func (c *SecureConn) handshake(budget *deadline.Budget) error {
	if err := c.engine.BeginHandshake(); err != nil {
		return fmt.Errorf("%w: %w", ErrHandshakeFailed, err)
	}
	c.rec.State(log.StateEntitySession, "", "HANDSHAKING", "")

	for {
		status := c.engine.HandshakeStatus()
		switch status {
		case tlsengine.WrapNeeded:
			res, err := c.engine.Wrap(nil, c.bufs.NetWrite.Free())
			if err != nil {
				return fmt.Errorf("%w: wrap: %w", ErrHandshakeFailed, err)
			}
			c.bufs.NetWrite.Produce(res.Produced)
			c.rec.Handshake(log.DirectionOut, status.String(), res.Produced)
			if err := c.flush(budget, deadline.KindConnect); err != nil {
				return err
			}

		case tlsengine.UnwrapNeeded:
			if c.bufs.NetRead.Len() == 0 {
				if err := c.fill(budget, deadline.KindConnect); err != nil {
					return err
				}
			}
			res, err := c.engine.Unwrap(c.bufs.NetRead.Bytes(), c.bufs.AppRead.Free())
			if err != nil {
				return fmt.Errorf("%w: unwrap: %w", ErrHandshakeFailed, err)
			}
			c.bufs.NetRead.Consume(res.Consumed)
			c.bufs.AppRead.Reset()
			c.rec.Handshake(log.DirectionIn, status.String(), res.Consumed)

			switch res.Status {
			case tlsengine.BufferUnderflow:
				c.bufs.NetRead.Compact()
				if err := c.fill(budget, deadline.KindConnect); err != nil {
					return err
				}
			case tlsengine.Closed:
				return fmt.Errorf("%w: peer closed during handshake", ErrHandshakeFailed)
			}

		case tlsengine.TaskNeeded:
			tasks := 0
			for task := c.engine.DelegatedTask(); task != nil; task = c.engine.DelegatedTask() {
				task()
				tasks++
			}
			c.debug("ran delegated tasks", "count", tasks)

		case tlsengine.Complete:
			c.handshakeComplete()
			return nil

		default:
			if err := c.engine.Err(); err != nil {
				return fmt.Errorf("%w: %s: %w", ErrHandshakeFailed, status, err)
			}
			return fmt.Errorf("%w: unexpected status %s", ErrHandshakeFailed, status)
		}
	}
}

func (c *SecureConn) handshakeComplete() {
	c.rec.State(log.StateEntitySession, "HANDSHAKING", "ESTABLISHED", "")
	state, ok := c.TLSState()
	if !ok {
		c.debug("handshake complete")
		return
	}
	c.rec.HandshakeComplete(state.Version, state.CipherSuite, state.ServerName)
	c.debug("handshake complete",
		"version", log.VersionName(state.Version),
		"cipher_suite", tls.CipherSuiteName(state.CipherSuite))
}

// TLSState returns the negotiated parameters when the engine exposes them.
func (c *SecureConn) TLSState() (tls.ConnectionState, bool) {
	cs, ok := c.engine.(interface{ ConnectionState() tls.ConnectionState })
	if !ok {
		return tls.ConnectionState{}, false
	}
	return cs.ConnectionState(), true
}

// Write encrypts and sends every byte of p.
func (c *SecureConn) Write(timeout time.Duration, p []byte) error {
	if err := c.ready(); err != nil {
		return err
	}
	budget := c.budget(timeout)

	for {
		n := c.bufs.AppWrite.Fill(p)
		p = p[n:]

		res, err := c.engine.Wrap(c.bufs.AppWrite.Bytes(), c.bufs.NetWrite.Free())
		if err != nil {
			return c.ioError(fmt.Errorf("%w: wrap: %w", ErrIO, err), "write")
		}
		c.bufs.AppWrite.Consume(res.Consumed)
		c.bufs.NetWrite.Produce(res.Produced)
		if res.Status == tlsengine.Closed {
			return c.ioError(fmt.Errorf("%w: engine closed", ErrClosed), "write")
		}

		if err := c.flush(budget, deadline.KindWrite); err != nil {
			return err
		}

		more := len(p) > 0 || c.bufs.AppWrite.Len() > 0 || res.HandshakeStatus == tlsengine.WrapNeeded
		if !more {
			return nil
		}
		if res.Consumed == 0 && res.Produced == 0 && n == 0 {
			return c.ioError(fmt.Errorf("%w: wrap made no progress", ErrIO), "write")
		}
	}
}

// Read fills p completely with decrypted bytes. Plaintext left over from an
// earlier record is served first, then records already buffered, and only
// then is the socket read.
func (c *SecureConn) Read(timeout time.Duration, p []byte) (int, error) {
	if err := c.ready(); err != nil {
		return 0, err
	}
	filled := c.bufs.AppRead.Read(p)
	if filled == len(p) {
		return filled, nil
	}

	budget := c.budget(timeout)
	for filled < len(p) {
		if c.bufs.NetRead.Len() == 0 {
			if err := c.fill(budget, deadline.KindRead); err != nil {
				return filled, err
			}
		}

		res, err := c.engine.Unwrap(c.bufs.NetRead.Bytes(), c.bufs.AppRead.Free())
		if err != nil {
			return filled, c.ioError(fmt.Errorf("%w: unwrap: %w", ErrIO, err), "read")
		}
		c.bufs.NetRead.Consume(res.Consumed)
		c.bufs.AppRead.Produce(res.Produced)
		filled += c.bufs.AppRead.Read(p[filled:])

		if res.HandshakeStatus == tlsengine.WrapNeeded {
			if err := c.flushEngine(budget); err != nil {
				return filled, err
			}
		}

		switch res.Status {
		case tlsengine.BufferUnderflow:
			c.bufs.NetRead.Compact()
			if err := c.fill(budget, deadline.KindRead); err != nil {
				return filled, err
			}
		case tlsengine.Closed:
			if filled < len(p) {
				c.rec.State(log.StateEntitySession, "ESTABLISHED", "PEER_CLOSED", "close_notify")
				return filled, ErrEndOfStream
			}
		case tlsengine.BufferOverflow:
			return filled, c.ioError(fmt.Errorf("%w: application buffer overflow", ErrIO), "read")
		}
	}
	return filled, nil
}

// flushEngine sends records the engine produced on its own, such as
// responses to post-handshake messages or close_notify.
func (c *SecureConn) flushEngine(budget *deadline.Budget) error {
	for c.engine.HandshakeStatus() == tlsengine.WrapNeeded {
		res, err := c.engine.Wrap(nil, c.bufs.NetWrite.Free())
		if err != nil {
			return c.ioError(fmt.Errorf("%w: wrap: %w", ErrIO, err), "flush")
		}
		c.bufs.NetWrite.Produce(res.Produced)
		if err := c.flush(budget, deadline.KindWrite); err != nil {
			return err
		}
		if res.Produced == 0 {
			return nil
		}
	}
	return nil
}

// flush writes all of NetWrite to the socket.
func (c *SecureConn) flush(budget *deadline.Budget, kind deadline.Kind) error {
	for c.bufs.NetWrite.Len() > 0 {
		n, err := c.w.write(budget, kind, c.bufs.NetWrite.Bytes())
		c.rec.Data(log.LayerTLS, log.DirectionOut, c.bufs.NetWrite.Bytes()[:n])
		c.bufs.NetWrite.Consume(n)
		if err != nil {
			return c.ioError(err, "flush")
		}
	}
	return nil
}

// fill reads whatever the socket has into the free tail of NetRead.
func (c *SecureConn) fill(budget *deadline.Budget, kind deadline.Kind) error {
	if len(c.bufs.NetRead.Free()) == 0 {
		c.bufs.NetRead.Compact()
		if len(c.bufs.NetRead.Free()) == 0 {
			return c.ioError(fmt.Errorf("%w: network buffer full", ErrIO), "fill")
		}
	}
	n, err := c.w.read(budget, kind, c.bufs.NetRead.Free())
	c.rec.Data(log.LayerTLS, log.DirectionIn, c.bufs.NetRead.Free()[:n])
	c.bufs.NetRead.Produce(n)
	if n > 0 {
		return nil
	}
	if err != nil {
		return c.ioError(err, "fill")
	}
	return nil
}

func (c *SecureConn) ioError(err error, context string) error {
	c.rec.Error(log.LayerTLS, err, context)
	return err
}

// Close sends close_notify on a best-effort basis, then releases the wait
// handles, the socket and the engine. It is idempotent.
func (c *SecureConn) Close() error {
	if c.state == StateClosed && c.raw == nil && c.engine == nil {
		return nil
	}
	if c.state == StateOpen && c.engine != nil {
		c.engine.CloseOutbound()
		budget := deadline.New(c.config.CloseTimeout, deadline.ModeElapsed)
		if err := c.flushEngine(budget); err != nil && !errors.Is(err, ErrClosed) {
			c.debug("close_notify not sent", "error", err)
		}
	}

	err := c.closeSocket()
	c.closeEngine()
	c.setState(StateClosed, "closed")
	return err
}

func (c *SecureConn) closeEngine() {
	if c.engine == nil {
		return
	}
	if err := c.engine.Close(); err != nil {
		c.debug("engine close failed", "error", err)
	}
	c.engine = nil
}
