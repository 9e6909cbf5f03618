package cipher

import (
	"crypto/sha256"
	"strconv"

	"golang.org/x/crypto/pbkdf2"
)

// keySizeBytes returns the exact key size a (kind, width) combination
// requires: Blowfish 128 bits, TripleDES 192 bits, AES-256 256 bits,
// Speck64/128 128 bits, Speck96/144 144 bits, Speck128/256 256 bits.
func keySizeBytes(kind Kind, width int) (int, bool) {
	switch {
	case kind == Blowfish && (width == Width64 || width == Width96):
		return 16, true
	case kind == TripleDES && (width == Width64 || width == Width96):
		return 24, true
	case kind == AES && width == Width128:
		return 32, true
	case kind == Speck && width == Width64:
		return 16, true
	case kind == Speck && width == Width96:
		return 18, true
	case kind == Speck && width == Width128:
		return 32, true
	default:
		return 0, false
	}
}

// deriveKey runs PBKDF2-HMAC-SHA256 over the base key, salted with a
// label unique to the (kind, width) pair so the same base key never
// yields the same bytes for two different cipher slots.
func deriveKey(base []byte, kind Kind, width, size, iterations int) []byte {
	label := kind.String() + "-" + strconv.Itoa(width)
	return pbkdf2.Key(base, []byte(label), iterations, size, sha256.New)
}
