package wire

import (
	"bufio"
	"io"
)

// Source is the read side of a transport as the message layer sees it.
type Source interface {
	io.ByteReader

	// ReadFull fills p completely or returns an error.
	ReadFull(p []byte) error
}

// readerSource adapts an io.Reader.
type readerSource struct {
	r *bufio.Reader
}

// NewReaderSource returns a Source reading from r.
func NewReaderSource(r io.Reader) Source {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &readerSource{r: br}
}

func (s *readerSource) ReadByte() (byte, error) { return s.r.ReadByte() }

func (s *readerSource) ReadFull(p []byte) error {
	_, err := io.ReadFull(s.r, p)
	return err
}
