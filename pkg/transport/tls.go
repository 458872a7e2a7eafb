package transport

import (
	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/easycrab/nio-go/pkg/tlsengine"
)

// TLSConfig is the certificate policy of a secure transport.
//
// The zero value verifies the server chain against the system roots and the
// host name. InsecureSkipVerify accepts any certificate. PinnedSHA256
// replaces chain verification with a leaf fingerprint check.
type TLSConfig struct {
	// RootCAs overrides the system root pool.
	RootCAs *x509.CertPool

	// ServerName overrides the name sent in SNI and verified against the
	// certificate. Defaults to the dialed host.
	ServerName string

	// InsecureSkipVerify disables certificate verification.
	// Only for testing - never use in production!
	InsecureSkipVerify bool

	// PinnedSHA256 lists accepted SHA-256 fingerprints of the leaf certificate.
	PinnedSHA256 [][32]byte

	// VerifyPeerCertificate is an optional callback for custom certificate
	// verification. It runs after the pin check.
	VerifyPeerCertificate func(rawCerts [][]byte, verifiedChains [][]*x509.Certificate) error

	// Certificates are presented when the server asks for a client certificate.
	Certificates []tls.Certificate

	// MinVersion is the lowest accepted protocol version (default: TLS 1.2).
	MinVersion uint16

	// NextProtos lists ALPN protocols to offer.
	NextProtos []string
}

// NewClientTLSConfig builds the crypto/tls client configuration for
// serverName.
func NewClientTLSConfig(cfg *TLSConfig, serverName string) (*tls.Config, error) {
	if cfg == nil {
		cfg = &TLSConfig{}
	}
	if cfg.ServerName != "" {
		serverName = cfg.ServerName
	}
	if serverName == "" && !cfg.InsecureSkipVerify && len(cfg.PinnedSHA256) == 0 {
		return nil, fmt.Errorf("server name is required for certificate verification")
	}

	minVersion := cfg.MinVersion
	if minVersion == 0 {
		minVersion = tls.VersionTLS12
	}

	tlsConfig := &tls.Config{
		MinVersion:   minVersion,
		ServerName:   serverName,
		RootCAs:      cfg.RootCAs,
		Certificates: cfg.Certificates,
		NextProtos:   cfg.NextProtos,

		// Curve preferences for key exchange
		CurvePreferences: []tls.CurveID{
			tls.X25519,
			tls.CurveP256,
		},

		VerifyPeerCertificate: cfg.VerifyPeerCertificate,
		InsecureSkipVerify:    cfg.InsecureSkipVerify,
	}

	if len(cfg.PinnedSHA256) > 0 {
		// The pin check stands in for chain and host name verification.
		pins := append([][32]byte(nil), cfg.PinnedSHA256...)
		custom := cfg.VerifyPeerCertificate
		tlsConfig.InsecureSkipVerify = true
		tlsConfig.VerifyPeerCertificate = func(rawCerts [][]byte, chains [][]*x509.Certificate) error {
			if err := verifyPins(rawCerts, pins); err != nil {
				return err
			}
			if custom != nil {
				return custom(rawCerts, chains)
			}
			return nil
		}
	}

	return tlsConfig, nil
}

// CryptoEngineFactory returns an EngineFactory that runs crypto/tls with
// the given certificate policy.
func CryptoEngineFactory(cfg *TLSConfig) EngineFactory {
	return func(serverName string) (tlsengine.Engine, error) {
		tlsConfig, err := NewClientTLSConfig(cfg, serverName)
		if err != nil {
			return nil, err
		}
		return tlsengine.NewCrypto(tlsConfig), nil
	}
}

func verifyPins(rawCerts [][]byte, pins [][32]byte) error {
	if len(rawCerts) == 0 {
		return fmt.Errorf("%w: no certificates presented", ErrPinMismatch)
	}
	sum := sha256.Sum256(rawCerts[0])
	for _, pin := range pins {
		if pin == sum {
			return nil
		}
	}
	return fmt.Errorf("%w: leaf sha256 %s", ErrPinMismatch, hex.EncodeToString(sum[:]))
}

// ParsePin parses a hex SHA-256 fingerprint. Colons are ignored, so both
// "ab:cd:..." and "abcd..." are accepted.
func ParsePin(s string) ([32]byte, error) {
	var pin [32]byte
	raw, err := hex.DecodeString(strings.ReplaceAll(strings.TrimSpace(s), ":", ""))
	if err != nil {
		return pin, fmt.Errorf("invalid pin %q: %w", s, err)
	}
	if len(raw) != len(pin) {
		return pin, fmt.Errorf("invalid pin %q: want %d bytes, got %d", s, len(pin), len(raw))
	}
	copy(pin[:], raw)
	return pin, nil
}
