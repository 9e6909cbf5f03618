package cipher

import (
	"crypto/aes"
	stdcipher "crypto/cipher"
	"crypto/des"

	"golang.org/x/crypto/blowfish"
)

// Nonce widths, mirrored from the root package to avoid an import cycle
// (this package is imported by the root package, not the other way
// round).
const (
	Width64  = 64
	Width96  = 96
	Width128 = 128
)

// Cipher is a pre-initialized, width-matched block cipher context. Its
// Encrypt/Decrypt methods each perform exactly one block operation and
// hold no mutable state of their own, so a single *Cipher is safe to
// share across goroutines on the hot path.
type Cipher struct {
	Kind Kind
	// Width is the size, in bits, of the block this cipher actually
	// operates on. For Blowfish/TripleDES applied to a 96-bit nonce
	// this is 64 — the caller is responsible for the 32-bit zero-pad
	// tail.
	Width int

	encrypt func([]byte) []byte
	decrypt func([]byte) []byte
}

// Encrypt runs one block through the cipher. The input must be exactly
// c.Width/8 bytes; callers validate width before calling, so this is
// never a user-facing failure mode.
func (c *Cipher) Encrypt(block []byte) []byte { return c.encrypt(block) }

// Decrypt is the inverse of Encrypt.
func (c *Cipher) Decrypt(block []byte) []byte { return c.decrypt(block) }

// KeySpec describes the key material and cipher selection a factory
// was initialized with.
type KeySpec struct {
	BaseKey []byte

	Key64, Key96, Key128 []byte

	Cipher64, Cipher96, Cipher128 Kind

	// PBKDF2Iterations defaults to DefaultPBKDF2Iterations when zero.
	// Preserve whichever value a deployment was initialized with; do
	// not silently change it across restarts.
	PBKDF2Iterations int

	// SpeckEnabled gates the hand-rolled Speck family behind an explicit
	// opt-in, the way an optional build-time dependency would be.
	SpeckEnabled bool
}

// DefaultPBKDF2Iterations is the released default iteration count.
const DefaultPBKDF2Iterations = 50000

// Build derives keys and pre-initializes the three per-width cipher
// contexts a factory needs. A width whose KeySpec carries no base key
// and no override returns a nil *Cipher (not an error) for that slot —
// callers that never supply key material for a width simply cannot use
// EncryptedNonce/Encrypt/Decrypt at that width.
func Build(spec KeySpec) (c64, c96, c128 *Cipher, err error) {
	if spec.BaseKey != nil && len(spec.BaseKey)*8 < 256 {
		return nil, nil, nil, ErrBaseKeyTooSmall
	}

	iterations := spec.PBKDF2Iterations
	if iterations == 0 {
		iterations = DefaultPBKDF2Iterations
	}

	c64, err = build(spec.Cipher64, Width64, spec.Key64, spec.BaseKey, iterations, spec.SpeckEnabled)
	if err != nil {
		return nil, nil, nil, err
	}
	c96, err = build(spec.Cipher96, Width96, spec.Key96, spec.BaseKey, iterations, spec.SpeckEnabled)
	if err != nil {
		return nil, nil, nil, err
	}
	c128, err = build(spec.Cipher128, Width128, spec.Key128, spec.BaseKey, iterations, spec.SpeckEnabled)
	if err != nil {
		return nil, nil, nil, err
	}
	return c64, c96, c128, nil
}

func build(kind Kind, width int, keyOverride, baseKey []byte, iterations int, speckEnabled bool) (*Cipher, error) {
	if kind == None {
		return nil, nil
	}
	if kind == AES && width != Width128 {
		return nil, ErrCipherUnsupportedForWidth
	}
	if (kind == Blowfish || kind == TripleDES) && width == Width128 {
		return nil, ErrCipherUnsupportedForWidth
	}
	if kind == Speck && !speckEnabled {
		return nil, ErrSpeckUnavailable
	}

	size, ok := keySizeBytes(kind, width)
	if !ok {
		return nil, ErrCipherUnsupportedForWidth
	}

	var key []byte
	switch {
	case keyOverride != nil:
		if len(keyOverride) != size {
			return nil, ErrKeySizeMismatch
		}
		key = keyOverride
	case baseKey != nil:
		key = deriveKey(baseKey, kind, width, size, iterations)
	default:
		return nil, nil
	}

	enc, dec, err := blockFuncs(kind, width, key)
	if err != nil {
		return nil, err
	}

	cipherWidth := width
	if (kind == Blowfish || kind == TripleDES) && width == Width96 {
		cipherWidth = Width64
	}
	return &Cipher{Kind: kind, Width: cipherWidth, encrypt: enc, decrypt: dec}, nil
}

func blockFuncs(kind Kind, width int, key []byte) (enc, dec func([]byte) []byte, err error) {
	switch kind {
	case Blowfish:
		block, berr := blowfish.NewCipher(key)
		if berr != nil {
			return nil, nil, berr
		}
		return blockEncrypter(block), blockDecrypter(block), nil

	case AES:
		block, aerr := aes.NewCipher(key)
		if aerr != nil {
			return nil, nil, aerr
		}
		return blockEncrypter(block), blockDecrypter(block), nil

	case TripleDES:
		k := append([]byte(nil), key...)
		return func(pt []byte) []byte { return tripleDESEncrypt(k, pt) },
			func(ct []byte) []byte { return tripleDESDecrypt(k, ct) }, nil

	case Speck:
		sc := newSpeck(width, key)
		return sc.Encrypt, sc.Decrypt, nil

	default:
		return nil, nil, ErrCipherUnsupportedForWidth
	}
}

func blockEncrypter(b stdcipher.Block) func([]byte) []byte {
	return func(pt []byte) []byte {
		ct := make([]byte, len(pt))
		b.Encrypt(ct, pt)
		return ct
	}
}

func blockDecrypter(b stdcipher.Block) func([]byte) []byte {
	return func(ct []byte) []byte {
		pt := make([]byte, len(ct))
		b.Decrypt(pt, ct)
		return pt
	}
}

func tripleDESEncrypt(key, pt []byte) []byte {
	block, err := des.NewTripleDESCipher(key)
	if err != nil {
		// key length was validated by keySizeBytes before this path is
		// ever reached; a mismatch here is an internal invariant
		// violation, not a caller-facing error.
		panic("nonce/cipher: 3des key schedule: " + err.Error())
	}
	iv := make([]byte, block.BlockSize())
	mode := stdcipher.NewCBCEncrypter(block, iv)
	ct := make([]byte, len(pt))
	mode.CryptBlocks(ct, pt)
	return ct
}

func tripleDESDecrypt(key, ct []byte) []byte {
	block, err := des.NewTripleDESCipher(key)
	if err != nil {
		panic("nonce/cipher: 3des key schedule: " + err.Error())
	}
	iv := make([]byte, block.BlockSize())
	mode := stdcipher.NewCBCDecrypter(block, iv)
	pt := make([]byte, len(ct))
	mode.CryptBlocks(pt, ct)
	return pt
}
