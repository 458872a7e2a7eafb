package transport

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easycrab/nio-go/pkg/log"
)

func echo(c net.Conn) {
	_, _ = io.Copy(c, c)
}

func drain(c net.Conn) {
	_, _ = io.Copy(io.Discard, c)
}

func TestPlainWriteReadRoundTrip(t *testing.T) {
	host, port := startServer(t, echo)

	c := NewPlain(host, port, DefaultConfig())
	defer c.Close()
	require.NoError(t, c.Connect(time.Second))
	assert.Equal(t, StateOpen, c.State())

	// Larger than the 256-byte write buffer: several full flushes.
	payload := bytes.Repeat([]byte("0123456789"), 100)
	require.NoError(t, c.Write(time.Second, payload))

	got := make([]byte, len(payload))
	n, err := c.Read(time.Second, got)
	require.NoError(t, err)
	assert.Equal(t, len(payload), n)
	assert.Equal(t, payload, got)
}

func TestPlainReadRetainsOverRead(t *testing.T) {
	sent := make(chan struct{})
	host, port := startServer(t, func(c net.Conn) {
		_, _ = c.Write([]byte("hello world"))
		close(sent)
	})

	c := NewPlain(host, port, DefaultConfig())
	defer c.Close()
	require.NoError(t, c.Connect(time.Second))

	<-sent
	// Give the bytes time to land so that one socket read returns all of them.
	time.Sleep(50 * time.Millisecond)

	first := make([]byte, 5)
	_, err := c.Read(time.Second, first)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(first))
	assert.Equal(t, 6, c.Buffered())

	// The peer has closed by now; the rest must come from the buffer.
	rest := make([]byte, 6)
	_, err = c.Read(time.Second, rest)
	require.NoError(t, err)
	assert.Equal(t, " world", string(rest))
	assert.Zero(t, c.Buffered())
}

func TestPlainReadTimeout(t *testing.T) {
	host, port := startServer(t, drain)

	c := NewPlain(host, port, DefaultConfig())
	defer c.Close()
	require.NoError(t, c.Connect(time.Second))

	start := time.Now()
	n, err := c.Read(500*time.Millisecond, make([]byte, 1))
	elapsed := time.Since(start)

	assert.Zero(t, n)
	assert.ErrorIs(t, err, ErrReadTimeout)
	assert.GreaterOrEqual(t, elapsed, 450*time.Millisecond)
	assert.Less(t, elapsed, 2*time.Second)

	var ne net.Error
	require.True(t, errors.As(err, &ne))
	assert.True(t, ne.Timeout())
}

func TestPlainReadEndOfStream(t *testing.T) {
	host, port := startServer(t, func(c net.Conn) {
		_, _ = c.Write([]byte("abc"))
	})

	c := NewPlain(host, port, DefaultConfig())
	defer c.Close()
	require.NoError(t, c.Connect(time.Second))

	buf := make([]byte, 10)
	n, err := c.Read(time.Second, buf)
	assert.ErrorIs(t, err, ErrEndOfStream)
	assert.Equal(t, 3, n)
	assert.Equal(t, "abc", string(buf[:n]))
}

func TestPlainTimeoutModes(t *testing.T) {
	trickle := func(c net.Conn) {
		for i := 0; i < 4; i++ {
			time.Sleep(150 * time.Millisecond)
			if _, err := c.Write([]byte{'x'}); err != nil {
				return
			}
		}
		drain(c)
	}

	t.Run("elapsed budget covers the whole read", func(t *testing.T) {
		host, port := startServer(t, trickle)
		c := NewPlain(host, port, DefaultConfig())
		defer c.Close()
		require.NoError(t, c.Connect(time.Second))

		_, err := c.Read(350*time.Millisecond, make([]byte, 4))
		assert.ErrorIs(t, err, ErrReadTimeout)
	})

	t.Run("per-wait budget restarts for every wait", func(t *testing.T) {
		host, port := startServer(t, trickle)
		c := NewPlain(host, port, DefaultConfig())
		defer c.Close()
		require.NoError(t, c.Connect(time.Second))
		c.SetTimeoutMode(true)

		n, err := c.Read(350*time.Millisecond, make([]byte, 4))
		assert.NoError(t, err)
		assert.Equal(t, 4, n)
	})
}

func TestPlainConnectRefused(t *testing.T) {
	c := NewPlain("127.0.0.1", closedPort(t), DefaultConfig())

	err := c.Connect(time.Second)
	assert.ErrorIs(t, err, ErrConnectFailed)
	assert.NotErrorIs(t, err, ErrConnectTimeout)
	assert.Equal(t, StateClosed, c.State())

	// Close after a failed connect is safe and idempotent.
	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())

	assert.ErrorIs(t, c.Connect(time.Second), ErrClosed)
}

func TestPlainConnectTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dial = func(ctx context.Context, network, address string) (net.Conn, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	c := NewPlain("192.0.2.1", 80, cfg)
	defer c.Close()

	start := time.Now()
	err := c.Connect(100 * time.Millisecond)
	assert.ErrorIs(t, err, ErrConnectTimeout)
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
	assert.Equal(t, StateClosed, c.State())
}

func TestPlainLifecycleErrors(t *testing.T) {
	host, port := startServer(t, drain)
	c := NewPlain(host, port, DefaultConfig())

	assert.ErrorIs(t, c.Write(time.Second, []byte("x")), ErrNotConnected)
	_, err := c.Read(time.Second, make([]byte, 1))
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.Nil(t, c.RemoteAddr())

	require.NoError(t, c.Connect(time.Second))
	assert.ErrorIs(t, c.Connect(time.Second), ErrAlreadyConnected)
	assert.Equal(t, c.Addr(), c.RemoteAddr().String())

	require.NoError(t, c.Close())
	assert.ErrorIs(t, c.Write(time.Second, []byte("x")), ErrClosed)
	assert.NoError(t, c.Close())
}

func TestPlainCloseBeforeConnect(t *testing.T) {
	c := NewPlain("127.0.0.1", 1, DefaultConfig())
	assert.NoError(t, c.Close())
	assert.Equal(t, StateClosed, c.State())
}

func TestPlainProtocolEvents(t *testing.T) {
	host, port := startServer(t, echo)

	var events []log.Event
	cfg := DefaultConfig()
	cfg.ConnectionID = "plain-1"
	cfg.ProtocolLogger = log.LoggerFunc(func(e log.Event) { events = append(events, e) })

	c := NewPlain(host, port, cfg)
	require.NoError(t, c.Connect(time.Second))
	require.NoError(t, c.Write(time.Second, []byte("ping")))
	_, err := c.Read(time.Second, make([]byte, 4))
	require.NoError(t, err)
	require.NoError(t, c.Close())

	var states []string
	var out, in int
	for _, e := range events {
		assert.Equal(t, "plain-1", e.ConnectionID)
		switch {
		case e.StateChange != nil:
			states = append(states, e.StateChange.NewState)
		case e.Data != nil && e.Direction == log.DirectionOut:
			out += e.Data.Size
		case e.Data != nil && e.Direction == log.DirectionIn:
			in += e.Data.Size
		}
	}
	assert.Equal(t, []string{"CONNECTING", "OPEN", "CLOSED"}, states)
	assert.Equal(t, 4, out)
	assert.Equal(t, 4, in)
}
