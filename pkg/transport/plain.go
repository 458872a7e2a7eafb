package transport

import (
	"time"

	"github.com/easycrab/nio-go/pkg/deadline"
	"github.com/easycrab/nio-go/pkg/log"
)

// PlainConn is a TCP transport. Writes are staged through a fixed-size
// buffer and flushed in full-buffer batches; bytes read beyond what the
// caller asked for are kept for the next Read.
type PlainConn struct {
	base
	rbuf *Buffer
	wbuf *Buffer
}

// NewPlain creates an unconnected TCP transport to host:port.
func NewPlain(host string, port int, config Config) *PlainConn {
	b := newBase(host, port, config)
	return &PlainConn{
		base: b,
		rbuf: NewBuffer(b.config.BufferSize),
		wbuf: NewBuffer(b.config.BufferSize),
	}
}

// Connect opens the TCP connection.
func (c *PlainConn) Connect(timeout time.Duration) error {
	if err := c.begin(); err != nil {
		return err
	}
	if err := c.dial(c.budget(timeout)); err != nil {
		return c.fail(err)
	}
	c.setState(StateOpen, "")
	return nil
}

// Write sends every byte of p.
func (c *PlainConn) Write(timeout time.Duration, p []byte) error {
	if err := c.ready(); err != nil {
		return err
	}
	budget := c.budget(timeout)
	for len(p) > 0 {
		n := c.wbuf.Fill(p)
		p = p[n:]
		if err := c.flush(budget); err != nil {
			return err
		}
	}
	return nil
}

func (c *PlainConn) flush(budget *deadline.Budget) error {
	for c.wbuf.Len() > 0 {
		n, err := c.w.write(budget, deadline.KindWrite, c.wbuf.Bytes())
		c.rec.Data(log.LayerTransport, log.DirectionOut, c.wbuf.Bytes()[:n])
		c.wbuf.Consume(n)
		if err != nil {
			c.rec.Error(log.LayerTransport, err, "write")
			return err
		}
	}
	return nil
}

// Read fills p completely, serving retained bytes first.
func (c *PlainConn) Read(timeout time.Duration, p []byte) (int, error) {
	if err := c.ready(); err != nil {
		return 0, err
	}
	filled := c.rbuf.Read(p)
	if filled == len(p) {
		return filled, nil
	}

	budget := c.budget(timeout)
	for filled < len(p) {
		n, err := c.w.read(budget, deadline.KindRead, c.rbuf.Free())
		c.rec.Data(log.LayerTransport, log.DirectionIn, c.rbuf.Free()[:n])
		c.rbuf.Produce(n)
		filled += c.rbuf.Read(p[filled:])
		if err != nil && filled < len(p) {
			c.rec.Error(log.LayerTransport, err, "read")
			return filled, err
		}
	}
	return filled, nil
}

// Buffered returns the number of retained bytes not yet delivered.
func (c *PlainConn) Buffered() int {
	return c.rbuf.Len()
}

// Close closes the socket. It is safe to call before Connect, after a failed
// Connect, and more than once.
func (c *PlainConn) Close() error {
	if c.state == StateClosed && c.raw == nil {
		return nil
	}
	err := c.closeSocket()
	c.rbuf.Reset()
	c.wbuf.Reset()
	c.setState(StateClosed, "closed")
	return err
}
