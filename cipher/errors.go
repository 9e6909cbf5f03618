package cipher

import "errors"

var (
	// ErrBaseKeyTooSmall is returned when a supplied base key is under 256 bits.
	ErrBaseKeyTooSmall = errors.New("nonce/cipher: base key must be at least 256 bits")
	// ErrKeySizeMismatch is returned when a per-width key override does not
	// match the exact key size its cipher requires.
	ErrKeySizeMismatch = errors.New("nonce/cipher: key size does not match cipher requirement")
	// ErrCipherUnsupportedForWidth is returned for combinations such as
	// AES at 64/96 bits, or a cipher whose block size cannot be matched
	// to the requested width.
	ErrCipherUnsupportedForWidth = errors.New("nonce/cipher: cipher not supported for this nonce width")
	// ErrSpeckUnavailable is returned when Speck is selected but the
	// factory was not initialized with SpeckEnabled.
	ErrSpeckUnavailable = errors.New("nonce/cipher: speck cipher support not enabled")
)
