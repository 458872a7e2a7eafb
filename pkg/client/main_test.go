package client

import (
	"bufio"
	"net"
	"testing"

	"go.uber.org/goleak"

	"github.com/easycrab/nio-go/pkg/wire"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// request is what the test server saw.
type request struct {
	head []byte
	body []byte
}

// serveOnce accepts one connection, reads the request head plus bodyLen
// bytes, reports them on the returned channel and writes response.
func serveOnce(t *testing.T, bodyLen int, response string) (int, <-chan request) {
	t.Helper()
	return serveConn(t, nil, bodyLen, response)
}

// serveConn is serveOnce with a hook that wraps the accepted connection,
// such as a TLS server.
func serveConn(t *testing.T, wrap func(net.Conn) net.Conn, bodyLen int, response string) (int, <-chan request) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	got := make(chan request, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		c, err := ln.Accept()
		if err != nil {
			return
		}
		if wrap != nil {
			c = wrap(c)
		}
		defer c.Close()
		handle(c, bodyLen, response, got)
	}()

	t.Cleanup(func() {
		ln.Close()
		<-done
	})
	return ln.Addr().(*net.TCPAddr).Port, got
}

func handle(c net.Conn, bodyLen int, response string, got chan<- request) {
	br := bufio.NewReader(c)
	head, err := wire.ReadHeaderBlock(br, 0)
	if err != nil {
		return
	}
	body := make([]byte, bodyLen)
	src := wire.NewReaderSource(br)
	if err := src.ReadFull(body); err != nil {
		return
	}
	got <- request{head: head, body: body}
	_, _ = c.Write([]byte(response))
}
