package wire

import (
	"fmt"
	"io"
	"maps"
	"strconv"
	"strings"
)

// DefaultMaxHeaderBytes bounds a response header block.
const DefaultMaxHeaderBytes = 64 << 10

// ResponseHeader is a parsed response status line and header block.
type ResponseHeader struct {
	Protocol   string
	StatusCode int
	StatusText string

	// Header maps names, with their original case, to values.
	Header map[string]string
}

// ReadHeaderBlock reads up to and including the blank line that ends a
// header block. Bytes are consumed one at a time, so nothing past the block
// is read. A limit <= 0 means DefaultMaxHeaderBytes.
func ReadHeaderBlock(r io.ByteReader, limit int) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultMaxHeaderBytes
	}

	var (
		block   []byte
		prevCR  bool // last byte was '\r'
		lineEnd bool // a CRLF ended the last line
	)
	for {
		b, err := r.ReadByte()
		if err != nil {
			return block, fmt.Errorf("read header: %w", err)
		}
		block = append(block, b)
		if len(block) > limit {
			return block, fmt.Errorf("%w: header block exceeds %d bytes", ErrHeaderTooLarge, limit)
		}

		switch {
		case prevCR && b == '\n':
			if lineEnd {
				return block, nil
			}
			prevCR, lineEnd = false, true
		case prevCR:
			prevCR, lineEnd = b == '\r', false
		case b == '\r':
			prevCR = true
		default:
			lineEnd = false
		}
	}
}

// ParseResponseHeader parses a header block as returned by ReadHeaderBlock.
func ParseResponseHeader(block []byte) (*ResponseHeader, error) {
	lines := strings.Split(string(block), "\r\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: empty header block", ErrMalformedResponse)
	}

	h := &ResponseHeader{Header: make(map[string]string, len(lines)-1)}
	if err := h.parseStatusLine(strings.TrimSpace(lines[0])); err != nil {
		return nil, err
	}

	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		i := strings.IndexByte(line, ':')
		if i <= 0 {
			return nil, fmt.Errorf("%w: invalid header line %q", ErrMalformedResponse, line)
		}
		h.Header[strings.TrimSpace(line[:i])] = strings.TrimSpace(line[i+1:])
	}
	return h, nil
}

// parseStatusLine splits "PROTOCOL CODE REASON". The reason may contain
// spaces but must be preceded by one.
func (h *ResponseHeader) parseStatusLine(line string) error {
	first := strings.IndexByte(line, ' ')
	if first <= 0 {
		return fmt.Errorf("%w: invalid status line %q", ErrMalformedResponse, line)
	}
	second := strings.IndexByte(line[first+1:], ' ')
	if second < 0 {
		return fmt.Errorf("%w: invalid status line %q", ErrMalformedResponse, line)
	}
	second += first + 1

	code, err := strconv.Atoi(line[first+1 : second])
	if err != nil {
		return fmt.Errorf("%w: invalid status code in %q", ErrMalformedResponse, line)
	}
	h.Protocol = line[:first]
	h.StatusCode = code
	h.StatusText = line[second+1:]
	return nil
}

// Get returns the value of the named header. An exact match wins over a
// case-insensitive one.
func (h *ResponseHeader) Get(name string) (string, bool) {
	if v, ok := h.Header[name]; ok {
		return v, true
	}
	for k, v := range h.Header {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}

// Headers returns a copy of the header map.
func (h *ResponseHeader) Headers() map[string]string {
	return maps.Clone(h.Header)
}

// ContentLength returns the Content-Length value, or -1 when the header is
// absent or empty.
func (h *ResponseHeader) ContentLength() (int64, error) {
	v, ok := h.Get("Content-Length")
	if !ok || v == "" {
		return -1, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return -1, fmt.Errorf("%w: invalid Content-Length %q", ErrMalformedResponse, v)
	}
	return n, nil
}

// IsChunked reports whether the body uses chunked transfer coding.
func (h *ResponseHeader) IsChunked() bool {
	v, _ := h.Get("Transfer-Encoding")
	return strings.Contains(strings.ToLower(v), "chunked")
}

// IsGzip reports whether the body is gzip encoded.
func (h *ResponseHeader) IsGzip() bool {
	v, _ := h.Get("Content-Encoding")
	return strings.EqualFold(strings.TrimSpace(v), "gzip")
}
