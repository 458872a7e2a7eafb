package transport

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/easycrab/nio-go/pkg/deadline"
)

// waiter performs one readiness wait followed by one I/O step on a
// connection. The wait is bounded through the connection deadlines, which
// park the goroutine on the runtime network poller until the socket is
// ready or the deadline passes.
type waiter struct {
	conn net.Conn
}

func newWaiter(conn net.Conn) *waiter {
	return &waiter{conn: conn}
}

// read waits for the connection to become readable and reads once.
func (w *waiter) read(b *deadline.Budget, kind deadline.Kind, p []byte) (int, error) {
	if w.conn == nil {
		return 0, ErrClosed
	}
	dl, err := b.Deadline(kind)
	if err != nil {
		return 0, err
	}
	if err := w.conn.SetReadDeadline(dl); err != nil {
		return 0, fmt.Errorf("%w: set read deadline: %w", ErrIO, err)
	}
	n, err := w.conn.Read(p)
	if err != nil {
		return n, classify(err, kind)
	}
	return n, nil
}

// write waits for the connection to become writable and writes once.
// It may return after a partial write when the deadline passes.
func (w *waiter) write(b *deadline.Budget, kind deadline.Kind, p []byte) (int, error) {
	if w.conn == nil {
		return 0, ErrClosed
	}
	dl, err := b.Deadline(kind)
	if err != nil {
		return 0, err
	}
	if err := w.conn.SetWriteDeadline(dl); err != nil {
		return 0, fmt.Errorf("%w: set write deadline: %w", ErrIO, err)
	}
	n, err := w.conn.Write(p)
	if err != nil {
		return n, classify(err, kind)
	}
	return n, nil
}

// release clears the deadlines and detaches the connection. The caller
// still owns the connection and closes it.
func (w *waiter) release() {
	if w.conn == nil {
		return
	}
	_ = w.conn.SetDeadline(time.Time{})
	w.conn = nil
}

// classify maps a socket error onto the transport taxonomy.
func classify(err error, kind deadline.Kind) error {
	switch {
	case errors.Is(err, os.ErrDeadlineExceeded):
		return kind.Err()
	case errors.Is(err, io.EOF):
		return ErrEndOfStream
	case errors.Is(err, net.ErrClosed):
		return ErrClosed
	default:
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
}
