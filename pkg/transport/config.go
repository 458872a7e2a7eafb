package transport

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/google/uuid"

	"github.com/easycrab/nio-go/pkg/log"
)

const (
	// DefaultPlainBufferSize is the capacity of the plain read and write buffers.
	DefaultPlainBufferSize = 256

	// DefaultCloseTimeout bounds the close_notify flush on Close.
	DefaultCloseTimeout = time.Second
)

// DialFunc opens the underlying TCP connection.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Config configures a transport.
type Config struct {
	// BufferSize is the capacity of the plain buffers (default: 256).
	// Secure transports size their buffers from the TLS session instead.
	BufferSize int

	// PerWaitTimeout selects per-wait timeout accounting.
	PerWaitTimeout bool

	// CloseTimeout bounds the close_notify flush (default: 1s).
	CloseTimeout time.Duration

	// Dial overrides the TCP dialer. Mostly useful in tests.
	Dial DialFunc

	// Logger receives operational debug logs. Nil disables them.
	Logger *slog.Logger

	// ProtocolLogger receives protocol events. Nil disables them.
	ProtocolLogger log.Logger

	// ConnectionID tags protocol events. Generated when empty.
	ConnectionID string
}

// DefaultConfig returns the default transport configuration.
func DefaultConfig() Config {
	return Config{
		BufferSize:   DefaultPlainBufferSize,
		CloseTimeout: DefaultCloseTimeout,
	}
}

func (c Config) withDefaults() Config {
	if c.BufferSize <= 0 {
		c.BufferSize = DefaultPlainBufferSize
	}
	if c.CloseTimeout <= 0 {
		c.CloseTimeout = DefaultCloseTimeout
	}
	if c.Dial == nil {
		dialer := &net.Dialer{}
		c.Dial = dialer.DialContext
	}
	if c.ConnectionID == "" {
		c.ConnectionID = uuid.New().String()
	}
	return c
}
