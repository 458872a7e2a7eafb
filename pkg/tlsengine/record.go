package tlsengine

import (
	"golang.org/x/crypto/cryptobyte"
)

// TLS record layer limits (RFC 8446 section 5.1, RFC 5246 section 6.2).
const (
	RecordHeaderLen = 5
	MaxPlaintext    = 16384
	MaxCiphertext   = MaxPlaintext + 2048

	// DefaultPacketBufferSize holds the largest record a peer may send.
	DefaultPacketBufferSize = RecordHeaderLen + MaxCiphertext
)

// recordLength returns the length of the first record in b, header
// included. complete is false when b does not yet hold the whole record.
func recordLength(b []byte) (n int, complete bool, err error) {
	s := cryptobyte.String(b)

	var (
		typ     uint8
		version uint16
		length  uint16
	)
	if !s.ReadUint8(&typ) || !s.ReadUint16(&version) || !s.ReadUint16(&length) {
		return 0, false, nil
	}
	if int(length) > MaxCiphertext {
		return 0, false, ErrRecordTooLarge
	}

	n = RecordHeaderLen + int(length)
	if len(b) < n {
		return n, false, nil
	}
	return n, true, nil
}
