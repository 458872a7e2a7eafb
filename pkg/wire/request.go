package wire

import (
	"io"
	"slices"
	"strings"

	"github.com/valyala/bytebufferpool"
)

// Protocol is the only HTTP version spoken.
const Protocol = "HTTP/1.1"

// Request methods.
const (
	MethodGet  = "GET"
	MethodPost = "POST"
)

// Request is an HTTP/1.1 request head.
type Request struct {
	Method string
	Path   string

	// Host is sent on the HOST line unless Header carries its own Host.
	Host string

	// Header holds additional headers. Names are sent as given.
	Header map[string]string
}

// AppendTo appends the serialized request head to dst.
func (r *Request) AppendTo(dst []byte) []byte {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	r.write(buf)
	return append(dst, buf.B...)
}

// Bytes returns the serialized request head.
func (r *Request) Bytes() []byte {
	return r.AppendTo(nil)
}

// WriteTo writes the serialized request head to w.
func (r *Request) WriteTo(w io.Writer) (int64, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	r.write(buf)
	return buf.WriteTo(w)
}

func (r *Request) write(buf *bytebufferpool.ByteBuffer) {
	method := r.Method
	if method == "" {
		method = MethodGet
	}
	path := r.Path
	if path == "" {
		path = "/"
	}

	buf.WriteString(method)
	buf.WriteByte(' ')
	buf.WriteString(path)
	buf.WriteByte(' ')
	buf.WriteString(Protocol)
	buf.WriteString("\r\n")

	if !r.hasHost() {
		buf.WriteString("HOST: ")
		buf.WriteString(r.Host)
		buf.WriteString("\r\n")
	}

	keys := make([]string, 0, len(r.Header))
	for k := range r.Header {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		buf.WriteString(k)
		buf.WriteString(": ")
		buf.WriteString(r.Header[k])
		buf.WriteString("\r\n")
	}
	buf.WriteString("\r\n")
}

func (r *Request) hasHost() bool {
	for k := range r.Header {
		if strings.EqualFold(k, "Host") {
			return true
		}
	}
	return false
}
