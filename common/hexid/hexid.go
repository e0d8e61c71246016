// Package hexid provides the named recognizers and parsers for fixed-width
// path-segment identifiers: hex object ids, mosaic/namespace ids, 256-bit
// hashes, public keys, hex addresses, and base32 addresses.
//
// Each identifier kind has a boolean recognizer (IsXxx) and a parser
// (ParseXxx) that returns the normalized bytes, or ErrMalformed when the
// input fails its length or alphabet check.
package hexid

import (
	"encoding/base32"
	"encoding/hex"
	"errors"
)

// Byte widths for each fixed-width identifier.
const (
	ObjectIDLen    = 12
	MosaicIDLen    = 8
	NamespaceIDLen = 8
	Hash256Len     = 32
	PublicKeyLen   = 32
	HexAddressLen  = 25
)

// ErrMalformed is returned by the ParseXxx functions when the input fails
// its length or alphabet check - this is what the route handler maps to the
// invalid-argument (409) outcome.
var ErrMalformed = errors.New("hexid: malformed identifier")

// IsHex reports whether s decodes to exactly n raw bytes of hex.
func IsHex(s string, n int) bool {
	return len(s) == n*2 && isHexAlphabet(s)
}

func isHexAlphabet(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

func parseHex(s string, n int) ([]byte, bool) {
	if !IsHex(s, n) {
		return nil, false
	}
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != n {
		return nil, false
	}
	return b, true
}

// IsObjectID reports whether s is a 12-byte hex internal object id.
func IsObjectID(s string) bool { return IsHex(s, ObjectIDLen) }

// ParseObjectID parses a 12-byte hex internal object id.
func ParseObjectID(s string) ([]byte, error) { return parse(s, ObjectIDLen) }

// IsMosaicID reports whether s is an 8-byte hex mosaic id.
func IsMosaicID(s string) bool { return IsHex(s, MosaicIDLen) }

// ParseMosaicID parses an 8-byte hex mosaic id.
func ParseMosaicID(s string) ([]byte, error) { return parse(s, MosaicIDLen) }

// IsNamespaceID reports whether s is an 8-byte hex namespace id.
func IsNamespaceID(s string) bool { return IsHex(s, NamespaceIDLen) }

// ParseNamespaceID parses an 8-byte hex namespace id.
func ParseNamespaceID(s string) ([]byte, error) { return parse(s, NamespaceIDLen) }

// IsHash256 reports whether s is a 32-byte hex hash.
func IsHash256(s string) bool { return IsHex(s, Hash256Len) }

// ParseHash256 parses a 32-byte hex hash.
func ParseHash256(s string) ([]byte, error) { return parse(s, Hash256Len) }

// IsPublicKey reports whether s is a 32-byte hex public key.
func IsPublicKey(s string) bool { return IsHex(s, PublicKeyLen) }

// ParsePublicKey parses a 32-byte hex public key.
func ParsePublicKey(s string) ([]byte, error) { return parse(s, PublicKeyLen) }

// IsHexAddress reports whether s is a 25-byte hex address.
func IsHexAddress(s string) bool { return IsHex(s, HexAddressLen) }

// ParseHexAddress parses a 25-byte hex address.
func ParseHexAddress(s string) ([]byte, error) { return parse(s, HexAddressLen) }

func parse(s string, n int) ([]byte, error) {
	b, ok := parseHex(s, n)
	if !ok {
		return nil, ErrMalformed
	}
	return b, nil
}

var base32Encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// IsBase32Address reports whether s looks like a base32-encoded address: the
// NEM/Symbol-style encoding is 39-40 characters of the RFC 4648 alphabet.
func IsBase32Address(s string) bool {
	if len(s) < 39 || len(s) > 40 {
		return false
	}
	for _, r := range s {
		if !((r >= 'A' && r <= 'Z') || (r >= '2' && r <= '7')) {
			return false
		}
	}
	return true
}

// ParseBase32Address decodes a base32 address into its raw hex-address form,
// truncated/zero-padded to HexAddressLen to tolerate the encoder's trailing
// padding bits.
func ParseBase32Address(s string) ([]byte, error) {
	if !IsBase32Address(s) {
		return nil, ErrMalformed
	}
	padded := s
	for len(padded)%8 != 0 {
		padded += "A"
	}
	b, err := base32Encoding.DecodeString(padded)
	if err != nil {
		return nil, ErrMalformed
	}
	if len(b) < HexAddressLen {
		return nil, ErrMalformed
	}
	return b[:HexAddressLen], nil
}
