package client

import "errors"

var (
	// ErrInvalidURL is returned for a URL that does not match
	// [scheme://]host[:port][/path].
	ErrInvalidURL = errors.New("invalid URL")

	// ErrUnsupportedScheme is returned when the URL names a scheme other
	// than the one the client speaks.
	ErrUnsupportedScheme = errors.New("unsupported scheme")
)
