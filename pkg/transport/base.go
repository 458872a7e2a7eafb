package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/easycrab/nio-go/pkg/deadline"
	"github.com/easycrab/nio-go/pkg/log"
)

// base carries the lifecycle shared by PlainConn and SecureConn.
type base struct {
	config  Config
	host    string
	addr    string
	raw     net.Conn
	w       *waiter
	state   ConnectionState
	perWait bool
	rec     *log.Recorder
}

func newBase(host string, port int, config Config) base {
	config = config.withDefaults()
	return base{
		config:  config,
		host:    host,
		addr:    net.JoinHostPort(host, strconv.Itoa(port)),
		perWait: config.PerWaitTimeout,
		rec:     log.NewRecorder(config.ProtocolLogger, config.ConnectionID, host),
	}
}

// State returns the lifecycle state.
func (b *base) State() ConnectionState {
	return b.state
}

// SetTimeoutMode selects per-wait (true) or elapsed (false) accounting for
// subsequent calls.
func (b *base) SetTimeoutMode(perWait bool) {
	b.perWait = perWait
}

// ConnectionID returns the ID that tags this connection's protocol events.
func (b *base) ConnectionID() string {
	return b.config.ConnectionID
}

// Addr returns the host:port the transport dials.
func (b *base) Addr() string {
	return b.addr
}

// LocalAddr returns the local network address, or nil when not connected.
func (b *base) LocalAddr() net.Addr {
	if b.raw == nil {
		return nil
	}
	return b.raw.LocalAddr()
}

// RemoteAddr returns the remote network address, or nil when not connected.
func (b *base) RemoteAddr() net.Addr {
	if b.raw == nil {
		return nil
	}
	return b.raw.RemoteAddr()
}

func (b *base) budget(timeout time.Duration) *deadline.Budget {
	mode := deadline.ModeElapsed
	if b.perWait {
		mode = deadline.ModePerWait
	}
	return deadline.New(timeout, mode)
}

func (b *base) setState(s ConnectionState, reason string) {
	if b.state == s {
		return
	}
	old := b.state
	b.state = s
	b.debug("state change", "old", old.String(), "new", s.String(), "reason", reason)
	b.rec.State(log.StateEntityConnection, old.String(), s.String(), reason)
}

func (b *base) debug(msg string, args ...any) {
	if b.config.Logger == nil {
		return
	}
	b.config.Logger.Debug(msg, append([]any{"conn_id", b.config.ConnectionID, "addr", b.addr}, args...)...)
}

// ready reports whether reads and writes are allowed.
func (b *base) ready() error {
	switch b.state {
	case StateOpen:
		return nil
	case StateClosed:
		return ErrClosed
	default:
		return ErrNotConnected
	}
}

// begin moves an idle transport to Connecting.
func (b *base) begin() error {
	switch b.state {
	case StateIdle:
		b.setState(StateConnecting, "")
		return nil
	case StateClosed:
		return ErrClosed
	default:
		return ErrAlreadyConnected
	}
}

// dial opens the TCP connection within the budget. Whether a failure is a
// timeout or a refusal is decided by the time spent and the dial error.
func (b *base) dial(budget *deadline.Budget) error {
	ctx := context.Background()
	dl, err := budget.Deadline(deadline.KindConnect)
	if err != nil {
		return err
	}
	if !dl.IsZero() {
		var cancel context.CancelFunc
		ctx, cancel = context.WithDeadline(ctx, dl)
		defer cancel()
	}

	raw, err := b.config.Dial(ctx, "tcp", b.addr)
	if err != nil {
		if isTimeout(err) || budget.Expired() {
			return fmt.Errorf("%w: %s: %w", ErrConnectTimeout, b.addr, err)
		}
		return fmt.Errorf("%w: %s: %w", ErrConnectFailed, b.addr, err)
	}

	b.raw = raw
	b.w = newWaiter(raw)
	b.rec.SetRemoteAddr(raw.RemoteAddr().String())
	b.debug("connected", "local", raw.LocalAddr().String(), "elapsed", budget.Elapsed())
	return nil
}

// fail tears the socket down after a failed connect.
func (b *base) fail(err error) error {
	b.rec.Error(log.LayerTransport, err, "connect")
	b.closeSocket()
	b.setState(StateClosed, err.Error())
	return err
}

// closeSocket releases the waiter before closing the socket.
func (b *base) closeSocket() error {
	if b.w != nil {
		b.w.release()
		b.w = nil
	}
	if b.raw == nil {
		return nil
	}
	err := b.raw.Close()
	b.raw = nil
	if err != nil && !errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("%w: close: %w", ErrIO, err)
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
