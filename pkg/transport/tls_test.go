package transport

import (
	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easycrab/nio-go/pkg/tlsengine"
)

func TestParsePin(t *testing.T) {
	sum := sha256.Sum256([]byte("leaf"))
	plain := strings.Repeat("ab", 32)

	var colons []string
	for _, b := range sum {
		colons = append(colons, strings.ToUpper(hex.EncodeToString([]byte{b})))
	}
	var abab [32]byte
	for i := range abab {
		abab[i] = 0xab
	}

	tests := []struct {
		name    string
		in      string
		want    [32]byte
		wantErr bool
	}{
		{"plain hex", plain, abab, false},
		{"colon separated", strings.Join(colons, ":"), sum, false},
		{"surrounding space", "  " + plain + "\n", abab, false},
		{"too short", "abcd", [32]byte{}, true},
		{"not hex", strings.Repeat("zz", 32), [32]byte{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePin(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePin() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePin() = %x, want %x", got, tt.want)
			}
		})
	}
}

func TestNewClientTLSConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := NewClientTLSConfig(nil, "example.com")
		require.NoError(t, err)
		assert.Equal(t, "example.com", cfg.ServerName)
		assert.Equal(t, uint16(tls.VersionTLS12), cfg.MinVersion)
		assert.False(t, cfg.InsecureSkipVerify)
		assert.Nil(t, cfg.VerifyPeerCertificate)
	})

	t.Run("server name override", func(t *testing.T) {
		cfg, err := NewClientTLSConfig(&TLSConfig{ServerName: "internal.example"}, "10.0.0.1")
		require.NoError(t, err)
		assert.Equal(t, "internal.example", cfg.ServerName)
	})

	t.Run("missing server name", func(t *testing.T) {
		_, err := NewClientTLSConfig(&TLSConfig{}, "")
		assert.Error(t, err)
	})

	t.Run("pins replace chain verification", func(t *testing.T) {
		leaf := []byte("leaf certificate")
		pin := sha256.Sum256(leaf)
		calls := 0
		cfg, err := NewClientTLSConfig(&TLSConfig{
			PinnedSHA256: [][32]byte{pin},
			VerifyPeerCertificate: func([][]byte, [][]*x509.Certificate) error {
				calls++
				return nil
			},
		}, "")
		require.NoError(t, err)
		assert.True(t, cfg.InsecureSkipVerify)
		require.NotNil(t, cfg.VerifyPeerCertificate)

		assert.NoError(t, cfg.VerifyPeerCertificate([][]byte{leaf}, nil))
		assert.Equal(t, 1, calls)

		err = cfg.VerifyPeerCertificate([][]byte{[]byte("other")}, nil)
		assert.ErrorIs(t, err, ErrPinMismatch)
		assert.Equal(t, 1, calls, "custom verifier must not run after a pin mismatch")

		assert.ErrorIs(t, cfg.VerifyPeerCertificate(nil, nil), ErrPinMismatch)
	})
}

func TestCryptoEngineFactory(t *testing.T) {
	engine, err := CryptoEngineFactory(nil)("example.com")
	require.NoError(t, err)
	defer engine.Close()
	assert.Equal(t, tlsengine.NotHandshaking, engine.HandshakeStatus())

	_, err = CryptoEngineFactory(nil)("")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrPinMismatch))
}
