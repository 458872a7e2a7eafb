package tlsengine

import (
	"crypto/tls"
	"errors"
	"io"
	"net"
	"testing"

	"github.com/easycrab/nio-go/internal/testcert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// tlsPeer runs a crypto/tls server on a loopback socket.
type tlsPeer struct {
	conn net.Conn
	done chan error
}

// startPeer accepts one connection and hands the TLS server side to serve.
func startPeer(t *testing.T, config *tls.Config, serve func(*tls.Conn) error) (*tlsPeer, net.Conn) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	peer := &tlsPeer{done: make(chan error, 1)}
	accepted := make(chan net.Conn, 1)
	go func() {
		c, err := ln.Accept()
		if err != nil {
			peer.done <- err
			close(accepted)
			return
		}
		accepted <- c
		srv := tls.Server(c, config)
		err = serve(srv)
		srv.Close()
		peer.done <- err
	}()

	client, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	peer.conn = <-accepted
	return peer, client
}

func (p *tlsPeer) wait(t *testing.T) error {
	t.Helper()
	return <-p.done
}

// driveHandshake runs the engine handshake over a blocking connection.
func driveHandshake(t *testing.T, e Engine, conn net.Conn) ([]byte, HandshakeStatus) {
	t.Helper()

	session := e.Session()
	out := make([]byte, session.PacketBufferSize)
	app := make([]byte, session.ApplicationBufferSize)
	var pending []byte

	for i := 0; i < 1000; i++ {
		switch status := e.HandshakeStatus(); status {
		case WrapNeeded:
			res, err := e.Wrap(nil, out)
			require.NoError(t, err)
			_, err = conn.Write(out[:res.Produced])
			require.NoError(t, err)
		case UnwrapNeeded:
			res, err := e.Unwrap(pending, app)
			require.NoError(t, err)
			if res.Status == BufferUnderflow {
				buf := make([]byte, session.PacketBufferSize)
				n, err := conn.Read(buf)
				require.NoError(t, err)
				pending = append(pending, buf[:n]...)
				continue
			}
			pending = pending[res.Consumed:]
		case TaskNeeded:
			for task := e.DelegatedTask(); task != nil; task = e.DelegatedTask() {
				task()
			}
		default:
			return pending, status
		}
	}
	t.Fatal("handshake did not terminate")
	return nil, Failed
}

// readPlain unwraps records until n plaintext bytes are collected.
func readPlain(t *testing.T, e Engine, conn net.Conn, pending []byte, n int) ([]byte, []byte) {
	t.Helper()

	app := make([]byte, e.Session().ApplicationBufferSize)
	var got []byte
	for len(got) < n {
		res, err := e.Unwrap(pending, app)
		require.NoError(t, err)
		got = append(got, app[:res.Produced]...)
		switch res.Status {
		case BufferUnderflow:
			buf := make([]byte, e.Session().PacketBufferSize)
			m, err := conn.Read(buf)
			require.NoError(t, err)
			pending = append(pending, buf[:m]...)
		case Closed:
			t.Fatalf("peer closed after %d bytes", len(got))
		default:
			pending = pending[res.Consumed:]
		}
	}
	return got, pending
}

func TestCryptoEngineRoundTrip(t *testing.T) {
	defer goleak.VerifyNone(t)

	bundle := testcert.Generate(t)
	peer, conn := startPeer(t, bundle.ServerConfig(), func(c *tls.Conn) error {
		buf := make([]byte, 5)
		if _, err := io.ReadFull(c, buf); err != nil {
			return err
		}
		_, err := c.Write(append([]byte("echo:"), buf...))
		return err
	})
	defer conn.Close()

	e := NewCrypto(&tls.Config{ServerName: "localhost", RootCAs: bundle.Pool})
	defer e.Close()

	assert.Equal(t, NotHandshaking, e.HandshakeStatus())
	require.NoError(t, e.BeginHandshake())
	assert.Equal(t, WrapNeeded, e.HandshakeStatus(), "ClientHello must be ready after BeginHandshake")
	assert.ErrorIs(t, e.BeginHandshake(), ErrHandshakeStarted)

	pending, status := driveHandshake(t, e, conn)
	require.Equal(t, Complete, status, "handshake error: %v", e.Err())
	assert.Nil(t, e.DelegatedTask())

	out := make([]byte, e.Session().PacketBufferSize)
	res, err := e.Wrap([]byte("hello"), out)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Consumed)
	assert.Greater(t, res.Produced, 5)
	_, err = conn.Write(out[:res.Produced])
	require.NoError(t, err)

	got, _ := readPlain(t, e, conn, pending, 10)
	assert.Equal(t, "echo:hello", string(got))

	require.NoError(t, peer.wait(t))
	require.NoError(t, e.Close())
	peer.conn.Close()
}

func TestCryptoEngineCloseNotify(t *testing.T) {
	defer goleak.VerifyNone(t)

	bundle := testcert.Generate(t)
	peer, conn := startPeer(t, bundle.ServerConfig(), func(c *tls.Conn) error {
		if err := c.Handshake(); err != nil {
			return err
		}
		return c.CloseWrite()
	})
	defer conn.Close()

	e := NewCrypto(&tls.Config{ServerName: "localhost", RootCAs: bundle.Pool})
	defer e.Close()

	require.NoError(t, e.BeginHandshake())
	pending, status := driveHandshake(t, e, conn)
	require.Equal(t, Complete, status)

	app := make([]byte, e.Session().ApplicationBufferSize)
	for {
		res, err := e.Unwrap(pending, app)
		require.NoError(t, err)
		if res.Status == Closed {
			break
		}
		if res.Status == BufferUnderflow {
			buf := make([]byte, 4096)
			n, err := conn.Read(buf)
			require.NoError(t, err)
			pending = append(pending, buf[:n]...)
			continue
		}
		pending = pending[res.Consumed:]
	}

	e.CloseOutbound()
	assert.Equal(t, WrapNeeded, e.HandshakeStatus(), "close_notify must be queued")
	out := make([]byte, e.Session().PacketBufferSize)
	res, err := e.Wrap(nil, out)
	require.NoError(t, err)
	assert.Greater(t, res.Produced, 0)

	require.NoError(t, peer.wait(t))
	peer.conn.Close()
}

func TestCryptoEngineVerificationFailure(t *testing.T) {
	defer goleak.VerifyNone(t)

	bundle := testcert.Generate(t)
	peer, conn := startPeer(t, bundle.ServerConfig(), func(c *tls.Conn) error {
		return c.Handshake()
	})
	defer conn.Close()

	e := NewCrypto(&tls.Config{ServerName: "not-the-server.example", RootCAs: bundle.Pool})
	defer e.Close()

	require.NoError(t, e.BeginHandshake())
	_, status := driveHandshake(t, e, conn)
	assert.Equal(t, Failed, status)

	var certErr *tls.CertificateVerificationError
	assert.True(t, errors.As(e.Err(), &certErr), "Err() = %v", e.Err())

	conn.Close()
	assert.Error(t, peer.wait(t))
	peer.conn.Close()
}

func TestCryptoEngineCloseStopsParkedHandshake(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := NewCrypto(&tls.Config{ServerName: "localhost"})
	require.NoError(t, e.BeginHandshake())

	out := make([]byte, e.Session().PacketBufferSize)
	res, err := e.Wrap(nil, out)
	require.NoError(t, err)
	assert.Greater(t, res.Produced, 0, "ClientHello")
	assert.Equal(t, UnwrapNeeded, e.HandshakeStatus())

	require.NoError(t, e.Close())
	require.NoError(t, e.Close())

	_, err = e.Wrap(nil, out)
	assert.ErrorIs(t, err, ErrEngineClosed)
	_, err = e.Unwrap(nil, out)
	assert.ErrorIs(t, err, ErrEngineClosed)
}

func TestCryptoEngineNotStarted(t *testing.T) {
	e := NewCrypto(&tls.Config{ServerName: "localhost"})
	defer e.Close()

	_, err := e.Wrap([]byte("x"), make([]byte, 64))
	assert.ErrorIs(t, err, ErrHandshakeNotStarted)
	_, err = e.Unwrap(nil, make([]byte, 64))
	assert.ErrorIs(t, err, ErrHandshakeNotStarted)
	assert.Nil(t, e.DelegatedTask())
}

func TestCryptoEngineUnwrapUnderflowConsumesNothing(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := NewCrypto(&tls.Config{ServerName: "localhost"})
	defer e.Close()
	require.NoError(t, e.BeginHandshake())

	partial := []byte{22, 3, 3, 0, 40, 1, 2, 3}
	res, err := e.Unwrap(partial, make([]byte, 64))
	require.NoError(t, err)
	assert.Equal(t, BufferUnderflow, res.Status)
	assert.Zero(t, res.Consumed)
}

func TestRecordLength(t *testing.T) {
	tests := []struct {
		name     string
		in       []byte
		n        int
		complete bool
		err      error
	}{
		{"empty", nil, 0, false, nil},
		{"partial header", []byte{23, 3, 3}, 0, false, nil},
		{"header only", []byte{23, 3, 3, 0, 2}, 7, false, nil},
		{"complete", []byte{23, 3, 3, 0, 2, 0xaa, 0xbb}, 7, true, nil},
		{"trailing bytes", []byte{23, 3, 3, 0, 1, 0xaa, 23, 3}, 6, true, nil},
		{"oversized", []byte{23, 3, 3, 0xff, 0xff}, 0, false, ErrRecordTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, complete, err := recordLength(tt.in)
			if !errors.Is(err, tt.err) {
				t.Fatalf("err = %v, want %v", err, tt.err)
			}
			if n != tt.n || complete != tt.complete {
				t.Errorf("recordLength() = %d, %v, want %d, %v", n, complete, tt.n, tt.complete)
			}
		})
	}
}

func TestStatusStrings(t *testing.T) {
	assert.Equal(t, "TASK_NEEDED", TaskNeeded.String())
	assert.Equal(t, "UNKNOWN", HandshakeStatus(42).String())
	assert.Equal(t, "BUFFER_UNDERFLOW", BufferUnderflow.String())
	assert.Equal(t, "UNKNOWN", Status(42).String())
}
