package transport

import (
	"errors"

	"github.com/easycrab/nio-go/pkg/deadline"
)

// Timeout errors. They satisfy net.Error with Timeout() == true.
var (
	ErrConnectTimeout = deadline.ErrConnectTimeout
	ErrReadTimeout    = deadline.ErrReadTimeout
	ErrWriteTimeout   = deadline.ErrWriteTimeout
)

// Transport errors.
var (
	ErrConnectFailed    = errors.New("connect failed")
	ErrIO               = errors.New("i/o failure")
	ErrEndOfStream      = errors.New("end of stream")
	ErrHandshakeFailed  = errors.New("tls handshake failed")
	ErrNotConnected     = errors.New("not connected")
	ErrAlreadyConnected = errors.New("already connected")
	ErrClosed           = errors.New("transport closed")
	ErrPinMismatch      = errors.New("certificate does not match any pin")
)
