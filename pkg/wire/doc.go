// Package wire reads and writes HTTP/1.1 messages on top of a transport.
//
// The package is deliberately small: a client sends exactly one request per
// connection and reads exactly one response.
//
// # Requests
//
// A Request serializes to a request line, a HOST line and the caller's
// headers in sorted key order:
//
//	GET /index.html HTTP/1.1\r\n
//	HOST: example.com\r\n
//	Accept: */*\r\n
//	\r\n
//
// # Responses
//
// ReadHeaderBlock consumes bytes one at a time until the blank line that
// ends the header block, so no body byte is ever read past the header.
// ParseResponseHeader splits the block into the status line and a
// name-to-value map. Keys keep their case; a repeated header keeps the last
// value.
//
// # Chunked bodies
//
// ChunkDecoder decodes Transfer-Encoding: chunked either into a sink
// (DecodeTo) or as an io.Reader. It reads through a Source, which is the
// exact-length read of the underlying transport.
package wire
