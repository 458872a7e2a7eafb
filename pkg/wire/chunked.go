package wire

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Chunk decoder limits.
const (
	DefaultChunkBufferSize = 4096
	MaxChunkLineBytes      = 4096
)

// ChunkDecoder decodes a Transfer-Encoding: chunked body read from a Source.
//
// Each chunk is "<hex size>[;ext]\r\n<data>\r\n". A zero size ends the body
// and is followed by optional trailer lines and a blank line.
type ChunkDecoder struct {
	src       Source
	buf       []byte
	remaining int64 // bytes left in the current chunk
	inChunk   bool
	done      bool
	read      int64
}

var _ io.Reader = (*ChunkDecoder)(nil)

// NewChunkDecoder creates a decoder that copies chunk data in increments of
// bufSize. A bufSize <= 0 means DefaultChunkBufferSize.
func NewChunkDecoder(src Source, bufSize int) *ChunkDecoder {
	if bufSize <= 0 {
		bufSize = DefaultChunkBufferSize
	}
	return &ChunkDecoder{src: src, buf: make([]byte, bufSize)}
}

// NewChunkReader returns the decoded body as an io.Reader.
func NewChunkReader(src Source) io.Reader {
	return NewChunkDecoder(src, 0)
}

// BytesRead returns the number of body bytes decoded so far.
func (d *ChunkDecoder) BytesRead() int64 {
	return d.read
}

// Done reports whether the terminal chunk and trailer have been consumed.
func (d *ChunkDecoder) Done() bool {
	return d.done
}

// DecodeTo writes the rest of the body to w and returns the number of bytes
// written.
func (d *ChunkDecoder) DecodeTo(w io.Writer) (int64, error) {
	var total int64
	for {
		n, err := d.Read(d.buf)
		if n > 0 {
			m, werr := w.Write(d.buf[:n])
			total += int64(m)
			if werr != nil {
				return total, werr
			}
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// Read reads decoded body bytes. It returns io.EOF after the terminal chunk.
func (d *ChunkDecoder) Read(p []byte) (int, error) {
	if d.done {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}
	if !d.inChunk {
		if err := d.nextChunk(); err != nil {
			return 0, err
		}
		if d.done {
			return 0, io.EOF
		}
	}

	n := int(min(int64(len(p)), d.remaining))
	if err := d.src.ReadFull(p[:n]); err != nil {
		return 0, fmt.Errorf("chunk data: %w", err)
	}
	d.remaining -= int64(n)
	d.read += int64(n)

	if d.remaining == 0 {
		d.inChunk = false
		line, err := d.readLine()
		if err != nil {
			return n, err
		}
		if line != "" {
			return n, fmt.Errorf("%w: expected CRLF after chunk data, got %q", ErrMalformedChunk, line)
		}
	}
	return n, nil
}

func (d *ChunkDecoder) nextChunk() error {
	line, err := d.readLine()
	if err != nil {
		return err
	}
	size, err := parseChunkSize(line)
	if err != nil {
		return err
	}
	if size > 0 {
		d.remaining = size
		d.inChunk = true
		return nil
	}

	if err := d.readTrailer(); err != nil {
		return err
	}
	d.done = true
	return nil
}

func parseChunkSize(line string) (int64, error) {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, fmt.Errorf("%w: empty chunk size", ErrMalformedChunk)
	}
	n, err := strconv.ParseInt(line, 16, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: invalid chunk size %q", ErrMalformedChunk, line)
	}
	return n, nil
}

// readTrailer discards trailer fields up to the final blank line.
func (d *ChunkDecoder) readTrailer() error {
	for {
		line, err := d.readLine()
		if err != nil {
			return err
		}
		if line == "" {
			return nil
		}
		if strings.IndexByte(line, ':') <= 0 {
			return fmt.Errorf("%w: invalid trailer line %q", ErrMalformedChunk, line)
		}
	}
}

// readLine reads one line without its line ending.
func (d *ChunkDecoder) readLine() (string, error) {
	var sb strings.Builder
	for {
		b, err := d.src.ReadByte()
		if err != nil {
			return "", fmt.Errorf("chunk line: %w", err)
		}
		if b == '\n' {
			break
		}
		if b != '\r' {
			sb.WriteByte(b)
		}
		if sb.Len() > MaxChunkLineBytes {
			return "", fmt.Errorf("%w: chunk line exceeds %d bytes", ErrHeaderTooLarge, MaxChunkLineBytes)
		}
	}
	return sb.String(), nil
}
