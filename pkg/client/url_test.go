package client

import (
	"errors"
	"testing"
)

func TestParseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		scheme  string
		want    Endpoint
		wantErr error
	}{
		{
			name:   "no scheme no port",
			raw:    "example.com/a/b",
			scheme: SchemeHTTP,
			want:   Endpoint{Scheme: "http", Host: "example.com", Port: 80, Path: "/a/b"},
		},
		{
			name:   "host only",
			raw:    "example.com",
			scheme: SchemeHTTP,
			want:   Endpoint{Scheme: "http", Host: "example.com", Port: 80, Path: "/"},
		},
		{
			name:   "https default port",
			raw:    "https://example.com",
			scheme: SchemeHTTPS,
			want:   Endpoint{Scheme: "https", Host: "example.com", Port: 443, Path: "/"},
		},
		{
			name:   "scheme case insensitive",
			raw:    "HTTP://example.com:8080/x?y=1",
			scheme: SchemeHTTP,
			want:   Endpoint{Scheme: "http", Host: "example.com", Port: 8080, Path: "/x?y=1"},
		},
		{
			name:   "port without path",
			raw:    "localhost:3000",
			scheme: SchemeHTTP,
			want:   Endpoint{Scheme: "http", Host: "localhost", Port: 3000, Path: "/"},
		},
		{name: "empty", raw: "", scheme: SchemeHTTP, wantErr: ErrInvalidURL},
		{name: "leading colon", raw: ":80/x", scheme: SchemeHTTP, wantErr: ErrInvalidURL},
		{name: "slash before colon", raw: "example.com/a:b", scheme: SchemeHTTP, wantErr: ErrInvalidURL},
		{name: "bad port", raw: "example.com:http/", scheme: SchemeHTTP, wantErr: ErrInvalidURL},
		{name: "empty port", raw: "example.com:/", scheme: SchemeHTTP, wantErr: ErrInvalidURL},
		{name: "port out of range", raw: "example.com:70000", scheme: SchemeHTTP, wantErr: ErrInvalidURL},
		{name: "missing host", raw: "http:///index.html", scheme: SchemeHTTP, wantErr: ErrInvalidURL},
		{name: "wrong scheme", raw: "https://example.com", scheme: SchemeHTTP, wantErr: ErrUnsupportedScheme},
		{name: "unknown scheme", raw: "ftp://example.com", scheme: SchemeHTTPS, wantErr: ErrUnsupportedScheme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseURL(tt.raw, tt.scheme)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseURL(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseURL(%q) error = %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ParseURL(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestEndpointHostHeader(t *testing.T) {
	tests := []struct {
		e    Endpoint
		want string
	}{
		{Endpoint{Scheme: "http", Host: "example.com", Port: 80}, "example.com"},
		{Endpoint{Scheme: "http", Host: "example.com", Port: 8080}, "example.com:8080"},
		{Endpoint{Scheme: "https", Host: "example.com", Port: 443}, "example.com"},
		{Endpoint{Scheme: "https", Host: "::1", Port: 8443}, "[::1]:8443"},
	}
	for _, tt := range tests {
		if got := tt.e.HostHeader(); got != tt.want {
			t.Errorf("%+v.HostHeader() = %q, want %q", tt.e, got, tt.want)
		}
	}
}
