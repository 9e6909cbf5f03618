package nonce

import (
	"errors"

	"github.com/nonceforge/nonce/cipher"
)

// Programmer errors: raised synchronously at the call site, not
// meaningfully recoverable by the caller.
var (
	ErrFactoryNotInitialized = errors.New("nonce: factory not initialized")
	ErrMachineIDOutOfRange   = errors.New("nonce: machine id out of range")
	ErrInvalidWidth          = errors.New("nonce: invalid width")
	ErrNoCipherConfigured    = errors.New("nonce: no cipher configured for width")
	ErrInvalidTail           = errors.New("nonce: non-zero tail on 96-bit value for a 64-bit cipher")

	// BaseKeyTooSmall, KeySizeMismatch, CipherUnsupportedForWidth are
	// owned by the cipher package (the layer that actually validates
	// key material) and re-exported here so callers only ever need to
	// import this package's error values.
	ErrBaseKeyTooSmall           = cipher.ErrBaseKeyTooSmall
	ErrKeySizeMismatch           = cipher.ErrKeySizeMismatch
	ErrCipherUnsupportedForWidth = cipher.ErrCipherUnsupportedForWidth
)

// Configuration failures: raised at Init.
var (
	ErrTimestampOverflow = errors.New("nonce: timestamp overflow: epoch too close to the 2^42ms horizon")
	ErrSpeckUnavailable  = cipher.ErrSpeckUnavailable
)
