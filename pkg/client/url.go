package client

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Schemes and their default ports.
const (
	SchemeHTTP  = "http"
	SchemeHTTPS = "https"

	DefaultHTTPPort  = 80
	DefaultHTTPSPort = 443
)

// Endpoint is a resolved request target.
type Endpoint struct {
	Scheme string
	Host   string
	Port   int
	Path   string
}

// Address returns host:port.
func (e Endpoint) Address() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// HostHeader returns the value for the HOST line. The port is included
// only when it differs from the scheme's default.
func (e Endpoint) HostHeader() string {
	if e.Port == defaultPort(e.Scheme) {
		return e.Host
	}
	return e.Address()
}

func (e Endpoint) String() string {
	return e.Scheme + "://" + e.Address() + e.Path
}

func defaultPort(scheme string) int {
	if scheme == SchemeHTTPS {
		return DefaultHTTPSPort
	}
	return DefaultHTTPPort
}

// ParseURL resolves raw against the grammar [scheme://]host[:port][/path].
// When raw names a scheme it must equal scheme, ignoring case. The port
// defaults to the scheme's standard port and the path to "/".
func ParseURL(raw, scheme string) (Endpoint, error) {
	scheme = strings.ToLower(scheme)
	e := Endpoint{Scheme: scheme, Port: defaultPort(scheme), Path: "/"}
	if raw == "" {
		return e, fmt.Errorf("%w: empty URL", ErrInvalidURL)
	}

	rest := raw
	if i := strings.Index(raw, "://"); i > 0 {
		if !strings.EqualFold(raw[:i], scheme) {
			return e, fmt.Errorf("%w: %q in %q, want %s", ErrUnsupportedScheme, raw[:i], raw, scheme)
		}
		rest = raw[i+3:]
	}

	colon := strings.IndexByte(rest, ':')
	slash := strings.IndexByte(rest, '/')
	if colon == 0 {
		return e, fmt.Errorf("%w: missing host in %q", ErrInvalidURL, raw)
	}

	var portStr string
	hasPort := colon > 0
	switch {
	case slash < 0:
		if hasPort {
			e.Host, portStr = rest[:colon], rest[colon+1:]
		} else {
			e.Host = rest
		}
	case slash < colon:
		return e, fmt.Errorf("%w: path before port in %q", ErrInvalidURL, raw)
	default:
		e.Path = rest[slash:]
		if hasPort {
			e.Host, portStr = rest[:colon], rest[colon+1:slash]
		} else {
			e.Host = rest[:slash]
		}
	}

	if e.Host == "" {
		return e, fmt.Errorf("%w: missing host in %q", ErrInvalidURL, raw)
	}
	if hasPort {
		port, err := strconv.Atoi(portStr)
		if err != nil || port <= 0 || port > 65535 {
			return e, fmt.Errorf("%w: bad port %q in %q", ErrInvalidURL, portStr, raw)
		}
		e.Port = port
	}
	return e, nil
}
