package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/jpillora/backoff"

	"github.com/easycrab/nio-go/pkg/client"
	"github.com/easycrab/nio-go/pkg/log"
	"github.com/easycrab/nio-go/pkg/transport"
)

// Fetcher runs requests described by a Profile and prints the results.
type Fetcher struct {
	out            io.Writer
	logger         *slog.Logger
	protocolLogger log.Logger
	now            func() time.Time

	// Backoff between connect attempts. Min and Max are shortened in tests.
	backoff backoff.Backoff
}

// NewFetcher creates a Fetcher printing to out.
func NewFetcher(out io.Writer, logger *slog.Logger, protocolLogger log.Logger) *Fetcher {
	return &Fetcher{
		out:            out,
		logger:         logger,
		protocolLogger: protocolLogger,
		now:            time.Now,
		backoff: backoff.Backoff{
			Factor: 1.25,
			Jitter: true,
			Min:    500 * time.Millisecond,
			Max:    time.Second,
		},
	}
}

func (f *Fetcher) printf(format string, args ...any) {
	fmt.Fprintf(f.out, "%s %s\n", f.now().Format("15:04:05.000"), fmt.Sprintf(format, args...))
}

// Fetch performs the request of p.
func (f *Fetcher) Fetch(ctx context.Context, p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	c, err := f.connect(ctx, p)
	if err != nil {
		return err
	}
	defer c.Close()

	keys := make([]string, 0, len(p.Headers))
	for k := range p.Headers {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		c.PrepareRequestHeader(k, p.Headers[k])
	}

	if p.IsPost() {
		if _, ok := p.Headers["Content-Length"]; !ok {
			c.PrepareRequestHeader("Content-Length", strconv.Itoa(len(p.Body)))
		}
		if err := c.SendData([]byte(p.Body)); err != nil {
			return fmt.Errorf("send body: %w", err)
		}
		f.printf("sent %d body bytes", len(p.Body))
	}

	code, err := c.StatusCode()
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	text, _ := c.StatusText()
	f.printf("status %d %s", code, text)

	headers, _ := c.ResponseHeaders()
	names := make([]string, 0, len(headers))
	for k := range headers {
		names = append(names, k)
	}
	slices.Sort(names)
	for _, k := range names {
		f.printf("  %s: %s", k, headers[k])
	}

	return f.printBody(c, p.MaxBody)
}

// connect opens a client, retrying refused or timed out connects with
// backoff. Certificate failures are not retried.
func (f *Fetcher) connect(ctx context.Context, p Profile) (*client.Client, error) {
	opts := []client.Option{
		client.WithLogger(f.logger),
		client.WithProtocolLogger(f.protocolLogger),
		client.WithPerWaitTimeout(p.PerWait),
	}
	secure := p.IsSecure()
	if secure {
		tlsConfig, err := p.TLSConfig()
		if err != nil {
			return nil, err
		}
		opts = append(opts, client.WithTLSConfig(tlsConfig))
	}

	b := f.backoff
	b.Reset()
	for attempt := 0; ; attempt++ {
		var c *client.Client
		if secure {
			c = client.NewSecure(p.URL, p.IsPost(), p.Timeout, opts...)
		} else {
			c = client.New(p.URL, p.IsPost(), p.Timeout, opts...)
		}

		start := f.now()
		err := c.Connect()
		if err == nil {
			f.printf("connected to %s in %s", c.Endpoint(), f.now().Sub(start).Round(time.Millisecond))
			return c, nil
		}
		if attempt >= p.Retries || !retryable(err) {
			return nil, err
		}

		wait := b.Duration()
		f.printf("connect failed (attempt %d/%d): %v; retrying in %s", attempt+1, p.Retries+1, err, wait.Round(time.Millisecond))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

func retryable(err error) bool {
	if errors.Is(err, client.ErrInvalidURL) || errors.Is(err, client.ErrUnsupportedScheme) {
		return false
	}
	return !errors.Is(err, transport.ErrHandshakeFailed)
}

func (f *Fetcher) printBody(c *client.Client, limit int) error {
	body, err := c.Body()
	if err != nil {
		return fmt.Errorf("body: %w", err)
	}
	if limit <= 0 {
		limit = DefaultMaxBody
	}

	shown, err := io.ReadAll(io.LimitReader(body, int64(limit)))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	rest, err := io.Copy(io.Discard, body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	total := int64(len(shown)) + rest
	f.printf("body %d bytes", total)
	if len(shown) > 0 {
		fmt.Fprintln(f.out, string(shown))
	}
	if rest > 0 {
		f.printf("... %d more bytes not shown", rest)
	}
	return nil
}
