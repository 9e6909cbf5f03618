// Package strenc provides string encodings for nonce byte strings:
// Base58 and Crockford Base32, both adapted from single-int64
// alphabets into arbitrary-byte-length codecs so they round-trip a
// 64/96/128-bit nonce without losing leading zero bytes. Crockford
// output has a fixed length per input byte length; Base58 output
// length varies with the value.
package strenc

import (
	"errors"
	"math/big"
)

// ErrInvalidLength is returned by a Decode* function whose decoded
// value does not fit in the requested byte width.
var ErrInvalidLength = errors.New("strenc: decoded value exceeds requested width")

var base58Alphabet = [58]byte{
	'1', '2', '3', '4', '5', '6', '7', '8', '9', 'A',
	'B', 'C', 'D', 'E', 'F', 'G', 'H', 'J', 'K', 'L',
	'M', 'N', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W',
	'X', 'Y', 'Z', 'a', 'b', 'c', 'd', 'e', 'f', 'g',
	'h', 'i', 'j', 'k', 'm', 'n', 'o', 'p', 'q', 'r',
	's', 't', 'u', 'v', 'w', 'x', 'y', 'z',
}

var base58Decode [128]int8

// ErrInvalidBase58 is returned when decoding a string with invalid
// Base58 characters.
var ErrInvalidBase58 = errors.New("strenc: invalid base58 character")

func init() {
	for i := range base58Decode {
		base58Decode[i] = -1
	}
	for i, c := range base58Alphabet {
		base58Decode[c] = int8(i)
	}
}

// EncodeBase58 returns the Base58 encoding of b, preserving leading
// zero bytes as leading '1' characters the way Bitcoin's address
// encoding does, so the encoding is injective over fixed-width input.
func EncodeBase58(b []byte) string {
	zeros := 0
	for zeros < len(b) && b[zeros] == 0 {
		zeros++
	}

	n := new(big.Int).SetBytes(b)
	var out []byte
	base := big.NewInt(58)
	mod := new(big.Int)
	for n.Sign() > 0 {
		n.DivMod(n, base, mod)
		out = append(out, base58Alphabet[mod.Int64()])
	}
	for i := 0; i < zeros; i++ {
		out = append(out, base58Alphabet[0])
	}
	reverse(out)
	if len(out) == 0 {
		return string(base58Alphabet[0])
	}
	return string(out)
}

// DecodeBase58 parses a Base58 string back into a byteLen-byte slice.
func DecodeBase58(s string, byteLen int) ([]byte, error) {
	n := new(big.Int)
	base := big.NewInt(58)
	zeros := 0
	counting := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 128 || base58Decode[c] < 0 {
			return nil, ErrInvalidBase58
		}
		if counting && c == base58Alphabet[0] {
			zeros++
			continue
		}
		counting = false
		n.Mul(n, base)
		n.Add(n, big.NewInt(int64(base58Decode[c])))
	}

	return padded(n, zeros, byteLen)
}

var crockfordAlphabet = [32]byte{
	'0', '1', '2', '3', '4', '5', '6', '7', '8', '9',
	'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'j', 'k',
	'm', 'n', 'p', 'q', 'r', 's', 't', 'v', 'w', 'x',
	'y', 'z',
}

var crockfordDecode [128]int8

// ErrInvalidCrockford is returned when decoding a string with invalid
// Crockford Base32 characters.
var ErrInvalidCrockford = errors.New("strenc: invalid crockford character")

func init() {
	for i := range crockfordDecode {
		crockfordDecode[i] = -1
	}
	for i, c := range crockfordAlphabet {
		crockfordDecode[c] = int8(i)
		if c >= 'a' && c <= 'z' {
			crockfordDecode[c-32] = int8(i)
		}
	}
	crockfordDecode['I'], crockfordDecode['i'] = 1, 1
	crockfordDecode['L'], crockfordDecode['l'] = 1, 1
	crockfordDecode['O'], crockfordDecode['o'] = 0, 0
}

// EncodeCrockford returns the Crockford Base32 encoding of b, zero
// padded to the fixed output width a byteLen-byte input always
// produces (ceil(byteLen*8/5) characters), so every nonce of a given
// width encodes to the same length string.
func EncodeCrockford(b []byte) string {
	n := new(big.Int).SetBytes(b)
	width := (len(b)*8 + 4) / 5
	out := make([]byte, width)
	mask := big.NewInt(0x1f)
	tmp := new(big.Int)
	for i := width - 1; i >= 0; i-- {
		tmp.And(n, mask)
		out[i] = crockfordAlphabet[tmp.Int64()]
		n.Rsh(n, 5)
	}
	return string(out)
}

// DecodeCrockford parses a Crockford Base32 string back into a
// byteLen-byte slice. Decoding is case-insensitive; I/L decode as 1
// and O decodes as 0, matching Crockford's substitution rules.
func DecodeCrockford(s string, byteLen int) ([]byte, error) {
	n := new(big.Int)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '-' {
			continue
		}
		if c >= 128 || crockfordDecode[c] < 0 {
			return nil, ErrInvalidCrockford
		}
		n.Lsh(n, 5)
		n.Or(n, big.NewInt(int64(crockfordDecode[c])))
	}
	return padded(n, 0, byteLen)
}

func padded(n *big.Int, leadingZeroBytes, byteLen int) ([]byte, error) {
	raw := n.Bytes()
	if len(raw)+leadingZeroBytes > byteLen {
		return nil, ErrInvalidLength
	}
	out := make([]byte, byteLen)
	copy(out[byteLen-len(raw):], raw)
	return out, nil
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
