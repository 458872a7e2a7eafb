package client

import (
	"fmt"
	"io"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/easycrab/nio-go/pkg/log"
	"github.com/easycrab/nio-go/pkg/transport"
	"github.com/easycrab/nio-go/pkg/wire"
)

// Client performs one HTTP/1.1 request over one connection.
// A Client is not safe for concurrent use.
type Client struct {
	url     string
	scheme  string
	isPost  bool
	timeout time.Duration
	opts    options

	endpoint Endpoint
	conn     transport.Transport
	connID   string
	rec      *log.Recorder
	src      *source

	requestHeaders map[string]string
	headerSent     bool

	// Memoized response head.
	responseRead bool
	response     *wire.ResponseHeader
	responseErr  error
}

// New creates a client for an http URL. A timeout <= 0 waits indefinitely.
func New(targetURL string, isPost bool, timeout time.Duration, opts ...Option) *Client {
	return newClient(SchemeHTTP, targetURL, isPost, timeout, opts)
}

// NewSecure creates a client for an https URL. Without WithTLSConfig the
// server chain is verified against the system roots.
func NewSecure(targetURL string, isPost bool, timeout time.Duration, opts ...Option) *Client {
	return newClient(SchemeHTTPS, targetURL, isPost, timeout, opts)
}

func newClient(scheme, targetURL string, isPost bool, timeout time.Duration, opts []Option) *Client {
	c := &Client{
		url:            targetURL,
		scheme:         scheme,
		isPost:         isPost,
		timeout:        timeout,
		requestHeaders: make(map[string]string),
	}
	for _, opt := range opts {
		opt(&c.opts)
	}
	return c
}

// Connect resolves the URL and opens the connection.
func (c *Client) Connect() error {
	if c.conn != nil {
		return transport.ErrAlreadyConnected
	}
	endpoint, err := ParseURL(c.url, c.scheme)
	if err != nil {
		return err
	}
	c.endpoint = endpoint
	c.connID = uuid.New().String()
	c.rec = log.NewRecorder(c.opts.protocolLogger, c.connID, endpoint.Host)

	conn := c.newTransport()
	c.debug("connecting", "url", endpoint.String(), "timeout", c.timeout)
	if err := conn.Connect(c.timeout); err != nil {
		_ = conn.Close()
		c.debug("connect failed", "error", err)
		return fmt.Errorf("connect %s: %w", endpoint.Address(), err)
	}

	c.conn = conn
	c.src = &source{c: c}
	c.headerSent = false
	c.responseRead = false
	c.response, c.responseErr = nil, nil
	return nil
}

func (c *Client) newTransport() transport.Transport {
	cfg := transport.DefaultConfig()
	if c.opts.bufferSize > 0 {
		cfg.BufferSize = c.opts.bufferSize
	}
	cfg.PerWaitTimeout = c.opts.perWait
	cfg.Dial = c.opts.dial
	cfg.Logger = c.opts.logger
	cfg.ProtocolLogger = c.opts.protocolLogger
	cfg.ConnectionID = c.connID

	if c.scheme == SchemeHTTPS {
		return transport.NewSecure(c.endpoint.Host, c.endpoint.Port, transport.SecureConfig{
			Config:        cfg,
			TLS:           c.opts.tls,
			EngineFactory: c.opts.engineFactory,
		})
	}
	return transport.NewPlain(c.endpoint.Host, c.endpoint.Port, cfg)
}

// Close closes the connection. It is safe to call before Connect, after a
// failed Connect and more than once.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// ResetTimeout changes the timeout applied to subsequent calls.
func (c *Client) ResetTimeout(timeout time.Duration) {
	c.timeout = timeout
}

// SetTimeoutMode selects per-wait (true) or elapsed (false) accounting.
func (c *Client) SetTimeoutMode(perWait bool) {
	c.opts.perWait = perWait
	if c.conn != nil {
		c.conn.SetTimeoutMode(perWait)
	}
}

// Endpoint returns the resolved target. It is zero before Connect.
func (c *Client) Endpoint() Endpoint {
	return c.endpoint
}

// ConnectionID returns the ID tagging this connection's protocol events.
func (c *Client) ConnectionID() string {
	return c.connID
}

// PrepareRequestHeader sets a request header. An empty name is ignored and
// a repeated name keeps the last value. Headers set after the request head
// has been sent have no effect.
func (c *Client) PrepareRequestHeader(name, value string) {
	if name == "" {
		return
	}
	c.requestHeaders[name] = value
}

// RemoveRequestHeader deletes a request header.
func (c *Client) RemoveRequestHeader(name string) {
	delete(c.requestHeaders, name)
}

// RequestHeaders returns a copy of the request headers.
func (c *Client) RequestHeaders() map[string]string {
	return maps.Clone(c.requestHeaders)
}

// SendData writes request body bytes, sending the request head first if it
// has not been sent yet.
func (c *Client) SendData(p []byte) error {
	if c.conn == nil {
		return transport.ErrNotConnected
	}
	if err := c.ensureRequestSent(); err != nil {
		return err
	}
	if err := c.conn.Write(c.timeout, p); err != nil {
		return fmt.Errorf("send body: %w", err)
	}
	return nil
}

func (c *Client) method() string {
	if c.isPost {
		return wire.MethodPost
	}
	return wire.MethodGet
}

func (c *Client) ensureRequestSent() error {
	if c.headerSent {
		return nil
	}
	req := wire.Request{
		Method: c.method(),
		Path:   c.endpoint.Path,
		Host:   c.endpoint.HostHeader(),
		Header: c.RequestHeaders(),
	}
	if err := c.conn.Write(c.timeout, req.Bytes()); err != nil {
		return fmt.Errorf("send request head: %w", err)
	}
	c.headerSent = true
	c.rec.Request(req.Method, req.Path, req.Header)
	c.debug("request sent", "method", req.Method, "path", req.Path, "headers", len(req.Header))
	return nil
}

// readResponse sends the request head if needed and reads the response
// head. The outcome is computed once per connection.
func (c *Client) readResponse() (*wire.ResponseHeader, error) {
	if c.conn == nil {
		return nil, transport.ErrNotConnected
	}
	if c.responseRead {
		return c.response, c.responseErr
	}
	c.responseRead = true
	c.response, c.responseErr = c.fetchResponse()
	return c.response, c.responseErr
}

func (c *Client) fetchResponse() (*wire.ResponseHeader, error) {
	if err := c.ensureRequestSent(); err != nil {
		return nil, err
	}
	block, err := wire.ReadHeaderBlock(c.src, 0)
	if err != nil {
		c.rec.Error(log.LayerHTTP, err, "read response head")
		return nil, err
	}
	h, err := wire.ParseResponseHeader(block)
	if err != nil {
		c.rec.Error(log.LayerHTTP, err, "parse response head")
		return nil, err
	}

	cl, _ := h.ContentLength()
	c.rec.Response(h.StatusCode, h.StatusText, h.Header, cl, h.IsChunked())
	c.debug("response head", "status", h.StatusCode, "reason", h.StatusText,
		"content_length", cl, "chunked", h.IsChunked())
	return h, nil
}

// StatusCode returns the response status code.
func (c *Client) StatusCode() (int, error) {
	h, err := c.readResponse()
	if err != nil {
		return 0, err
	}
	return h.StatusCode, nil
}

// StatusText returns the reason phrase of the status line.
func (c *Client) StatusText() (string, error) {
	h, err := c.readResponse()
	if err != nil {
		return "", err
	}
	return h.StatusText, nil
}

// ResponseHeaders returns a copy of the response headers.
func (c *Client) ResponseHeaders() (map[string]string, error) {
	h, err := c.readResponse()
	if err != nil {
		return nil, err
	}
	return h.Headers(), nil
}

// ContentLength returns the Content-Length value, or -1 when absent. A
// present but non-numeric value is an error.
func (c *Client) ContentLength() (int64, error) {
	h, err := c.readResponse()
	if err != nil {
		return -1, err
	}
	return h.ContentLength()
}

// IsChunked reports whether the body uses chunked transfer coding.
func (c *Client) IsChunked() (bool, error) {
	h, err := c.readResponse()
	if err != nil {
		return false, err
	}
	return h.IsChunked(), nil
}

// IsGzip reports whether the body is gzip encoded.
func (c *Client) IsGzip() (bool, error) {
	h, err := c.readResponse()
	if err != nil {
		return false, err
	}
	return h.IsGzip(), nil
}

// ReadData fills p with body bytes. It is meant for fixed-length bodies.
func (c *Client) ReadData(p []byte) (int, error) {
	if _, err := c.readResponse(); err != nil {
		return 0, err
	}
	return c.conn.Read(c.timeout, p)
}

// ReadAllChunks decodes a chunked body into w and returns the number of
// body bytes written.
func (c *Client) ReadAllChunks(w io.Writer) (int64, error) {
	if _, err := c.readResponse(); err != nil {
		return 0, err
	}
	d := wire.NewChunkDecoder(c.src, 0)
	n, err := d.DecodeTo(w)
	c.debug("chunked body", "bytes", d.BytesRead(), "error", err)
	return n, err
}

func (c *Client) debug(msg string, args ...any) {
	if c.opts.logger == nil {
		return
	}
	c.opts.logger.Debug(msg, append([]any{"conn_id", c.connID}, args...)...)
}

// source is the exact-length read of the connection as a wire.Source.
type source struct {
	c   *Client
	one [1]byte
}

func (s *source) ReadByte() (byte, error) {
	if _, err := s.c.conn.Read(s.c.timeout, s.one[:]); err != nil {
		return 0, err
	}
	return s.one[0], nil
}

func (s *source) ReadFull(p []byte) error {
	_, err := s.c.conn.Read(s.c.timeout, p)
	return err
}
