package client

import (
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/easycrab/nio-go/pkg/transport"
	"github.com/easycrab/nio-go/pkg/wire"
)

// Body returns the whole response body as a reader. The framing is taken
// from the response head: chunked, Content-Length, or everything up to the
// peer closing the connection. A gzip body is decompressed.
func (c *Client) Body() (io.Reader, error) {
	h, err := c.readResponse()
	if err != nil {
		return nil, err
	}

	var body io.Reader
	switch {
	case noBody(h.StatusCode):
		body = eofReader{}
	case h.IsChunked():
		body = wire.NewChunkReader(c.src)
	default:
		n, err := h.ContentLength()
		if err != nil {
			return nil, err
		}
		if n >= 0 {
			body = &fixedReader{c: c, remaining: n}
		} else {
			body = &untilCloseReader{c: c}
		}
	}

	if !h.IsGzip() || isEmpty(body) {
		return body, nil
	}
	zr, err := gzip.NewReader(body)
	if err != nil {
		return nil, fmt.Errorf("gzip body: %w", err)
	}
	return zr, nil
}

// noBody reports status codes that never carry a body.
func noBody(code int) bool {
	return (code >= 100 && code < 200) || code == 204 || code == 304
}

func isEmpty(r io.Reader) bool {
	switch r := r.(type) {
	case eofReader:
		return true
	case *fixedReader:
		return r.remaining == 0
	}
	return false
}

type eofReader struct{}

func (eofReader) Read([]byte) (int, error) { return 0, io.EOF }

// fixedReader reads a Content-Length body.
type fixedReader struct {
	c         *Client
	remaining int64
}

func (r *fixedReader) Read(p []byte) (int, error) {
	if r.remaining == 0 {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}
	p = p[:min(int64(len(p)), r.remaining)]
	n, err := r.c.conn.Read(r.c.timeout, p)
	r.remaining -= int64(n)
	if errors.Is(err, transport.ErrEndOfStream) {
		return n, io.ErrUnexpectedEOF
	}
	return n, err
}

// untilCloseReader reads a body delimited by the peer closing.
type untilCloseReader struct {
	c *Client
}

func (r *untilCloseReader) Read(p []byte) (int, error) {
	n, err := r.c.conn.Read(r.c.timeout, p)
	if errors.Is(err, transport.ErrEndOfStream) {
		return n, io.EOF
	}
	return n, err
}
