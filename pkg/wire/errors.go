package wire

import "errors"

// Errors returned by the message layer.
var (
	// ErrMalformedResponse covers a bad status line, a header line without
	// a colon and a non-numeric Content-Length.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrMalformedChunk covers a bad chunk size, a missing CRLF after chunk
	// data and a bad trailer line.
	ErrMalformedChunk = errors.New("malformed chunk")

	// ErrHeaderTooLarge is returned when a header block or a chunk line
	// exceeds its limit.
	ErrHeaderTooLarge = errors.New("header too large")
)
