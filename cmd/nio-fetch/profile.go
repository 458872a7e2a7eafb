package main

import (
	"crypto/x509"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/easycrab/nio-go/pkg/client"
	"github.com/easycrab/nio-go/pkg/transport"
)

// Profile describes one request. It can be loaded from a YAML file and is
// then overridden by the flags given on the command line.
type Profile struct {
	URL         string            `yaml:"url"`
	Method      string            `yaml:"method"`
	Headers     map[string]string `yaml:"headers"`
	Body        string            `yaml:"body"`
	Timeout     time.Duration     `yaml:"timeout"`
	PerWait     bool              `yaml:"per_wait"`
	Insecure    bool              `yaml:"insecure"`
	Pins        []string          `yaml:"pins"`
	CAFile      string            `yaml:"ca_file"`
	ServerName  string            `yaml:"server_name"`
	Retries     int               `yaml:"retries"`
	ProtocolLog string            `yaml:"protocol_log"`
	MaxBody     int               `yaml:"max_body"`
}

// DefaultMaxBody is how many body bytes are printed.
const DefaultMaxBody = 1024

// DefaultProfile returns a GET profile with a 30 second timeout.
func DefaultProfile() Profile {
	return Profile{
		Method:  "GET",
		Headers: make(map[string]string),
		Timeout: 30 * time.Second,
		MaxBody: DefaultMaxBody,
	}
}

// LoadProfile reads a YAML profile. Fields missing from the file keep
// their default values.
func LoadProfile(path string) (Profile, error) {
	p := DefaultProfile()
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse profile %s: %w", path, err)
	}
	if p.Headers == nil {
		p.Headers = make(map[string]string)
	}
	return p, nil
}

// Validate checks the fields a request cannot do without.
func (p Profile) Validate() error {
	if p.URL == "" {
		return fmt.Errorf("url is required")
	}
	switch strings.ToUpper(p.Method) {
	case "GET", "POST":
	default:
		return fmt.Errorf("unsupported method %q (use GET or POST)", p.Method)
	}
	if p.Retries < 0 {
		return fmt.Errorf("retries must not be negative")
	}
	return nil
}

// IsPost reports whether the profile sends a POST request.
func (p Profile) IsPost() bool {
	return strings.EqualFold(p.Method, "POST")
}

// IsSecure reports whether the URL uses the https scheme.
func (p Profile) IsSecure() bool {
	return strings.HasPrefix(strings.ToLower(p.URL), client.SchemeHTTPS+"://")
}

// TLSConfig builds the certificate policy of the profile.
func (p Profile) TLSConfig() (*transport.TLSConfig, error) {
	cfg := &transport.TLSConfig{
		ServerName:         p.ServerName,
		InsecureSkipVerify: p.Insecure,
	}
	for _, s := range p.Pins {
		pin, err := transport.ParsePin(s)
		if err != nil {
			return nil, err
		}
		cfg.PinnedSHA256 = append(cfg.PinnedSHA256, pin)
	}
	if p.CAFile != "" {
		pem, err := os.ReadFile(p.CAFile)
		if err != nil {
			return nil, fmt.Errorf("read ca file: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates in %s", p.CAFile)
		}
		cfg.RootCAs = pool
	}
	return cfg, nil
}

// headerFlags collects repeated -H "Name: value" flags.
type headerFlags map[string]string

func (h headerFlags) String() string {
	parts := make([]string, 0, len(h))
	for k, v := range h {
		parts = append(parts, k+": "+v)
	}
	return strings.Join(parts, ", ")
}

func (h headerFlags) Set(s string) error {
	name, value, err := parseHeader(s)
	if err != nil {
		return err
	}
	h[name] = value
	return nil
}

func parseHeader(s string) (string, string, error) {
	name, value, ok := strings.Cut(s, ":")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", fmt.Errorf("invalid header %q (want \"Name: value\")", s)
	}
	return name, strings.TrimSpace(value), nil
}
