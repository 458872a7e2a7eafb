package client

import (
	"log/slog"

	"github.com/easycrab/nio-go/pkg/log"
	"github.com/easycrab/nio-go/pkg/transport"
)

// Option configures a Client.
type Option func(*options)

type options struct {
	logger         *slog.Logger
	protocolLogger log.Logger
	tls            *transport.TLSConfig
	perWait        bool
	engineFactory  transport.EngineFactory
	dial           transport.DialFunc
	bufferSize     int
}

// WithLogger sets the operational debug logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithProtocolLogger records transport, TLS and HTTP events to l.
func WithProtocolLogger(l log.Logger) Option {
	return func(o *options) { o.protocolLogger = l }
}

// WithTLSConfig sets the certificate policy of a secure client.
func WithTLSConfig(cfg *transport.TLSConfig) Option {
	return func(o *options) { o.tls = cfg }
}

// WithPerWaitTimeout applies the full timeout to every socket wait instead
// of to each call as a whole.
func WithPerWaitTimeout(perWait bool) Option {
	return func(o *options) { o.perWait = perWait }
}

// WithEngineFactory replaces the crypto/tls engine of a secure client.
func WithEngineFactory(f transport.EngineFactory) Option {
	return func(o *options) { o.engineFactory = f }
}

// WithDialer replaces the TCP dialer.
func WithDialer(dial transport.DialFunc) Option {
	return func(o *options) { o.dial = dial }
}

// WithBufferSize sets the plain transport buffer capacity.
func WithBufferSize(n int) Option {
	return func(o *options) { o.bufferSize = n }
}
