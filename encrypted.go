package nonce

// Base selects which plaintext generator feeds EncryptedNonce before
// the result is run through the factory's configured block cipher.
type Base int

const (
	// BaseCounter plaintext nonces come from the plain incrementing
	// counter (Nonce's algorithm).
	BaseCounter Base = iota
	// BaseSortable plaintext nonces come from the millisecond-aware
	// CAS algorithm (SortableNonce's algorithm). The plaintext is
	// sortable, but encryption destroys byte-level sortability, so
	// ciphertext order does not reflect call order.
	BaseSortable
)

// EncryptedNonce returns a width-bit nonce built by generating a
// plaintext nonce via base and encrypting it with the factory's
// width-matched cipher. Width 96 with a 64-bit-block cipher (Blowfish,
// TripleDES) encrypts only the 64-bit core and appends a 32-bit zero
// tail (see codec.go); width 96 with a native 96-bit cipher (Speck96)
// encrypts the entire nonce, as do widths 64 and 128.
func EncryptedNonce(name string, width int, base Base) ([]byte, error) {
	s, err := lookup(name)
	if err != nil {
		return nil, err
	}
	return s.encryptedNonce(width, base)
}

func (s *State) encryptedNonce(width int, base Base) ([]byte, error) {
	c := s.cipherFor(width)
	if c == nil {
		return nil, ErrNoCipherConfigured
	}

	narrowed := width == Width96 && c.Width == Width64
	plainWidth := width
	if narrowed {
		plainWidth = Width64
	}

	var (
		plain []byte
		err   error
	)
	switch base {
	case BaseSortable:
		plain, err = s.sortableNonce(plainWidth)
	default:
		plain, err = s.nonce(plainWidth)
	}
	if err != nil {
		return nil, err
	}

	ct := c.Encrypt(plain)
	if narrowed {
		ct = append(ct, make([]byte, 4)...)
	}
	return ct, nil
}
