package strenc

import (
	"bytes"
	"testing"
)

func TestBase58Roundtrip(t *testing.T) {
	tests := [][]byte{
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef},
		{0x00, 0x00, 0xff, 0x01, 0x02, 0x03, 0x04, 0x05},
		bytes.Repeat([]byte{0xff}, 12),
		bytes.Repeat([]byte{0x00}, 16),
	}
	for _, tc := range tests {
		s := EncodeBase58(tc)
		got, err := DecodeBase58(s, len(tc))
		if err != nil {
			t.Fatalf("DecodeBase58(%q): %v", s, err)
		}
		if !bytes.Equal(got, tc) {
			t.Errorf("roundtrip(%x) -> %q -> %x, want %x", tc, s, got, tc)
		}
	}
}

func TestBase58RejectsInvalidCharacter(t *testing.T) {
	if _, err := DecodeBase58("0OIl", 8); err == nil {
		t.Error("DecodeBase58 accepted excluded characters, want error")
	}
}

func TestBase58RejectsOverflow(t *testing.T) {
	s := EncodeBase58(bytes.Repeat([]byte{0xff}, 12))
	if _, err := DecodeBase58(s, 8); err != ErrInvalidLength {
		t.Errorf("DecodeBase58 with too-small width: got %v, want ErrInvalidLength", err)
	}
}

func TestCrockfordRoundtrip(t *testing.T) {
	tests := [][]byte{
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef},
		bytes.Repeat([]byte{0xff}, 12),
		bytes.Repeat([]byte{0xaa}, 16),
	}
	for _, tc := range tests {
		s := EncodeCrockford(tc)
		got, err := DecodeCrockford(s, len(tc))
		if err != nil {
			t.Fatalf("DecodeCrockford(%q): %v", s, err)
		}
		if !bytes.Equal(got, tc) {
			t.Errorf("roundtrip(%x) -> %q -> %x, want %x", tc, s, got, tc)
		}
	}
}

func TestCrockfordCaseInsensitiveSubstitutions(t *testing.T) {
	// 'I'/'L' decode as 1, 'O' decodes as 0, regardless of case.
	a, err := DecodeCrockford("I", 1)
	if err != nil {
		t.Fatal(err)
	}
	b, err := DecodeCrockford("l", 1)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("DecodeCrockford(I) = %x, DecodeCrockford(l) = %x, want equal", a, b)
	}
}

func TestCrockfordFixedWidthOutput(t *testing.T) {
	zero := EncodeCrockford(make([]byte, 8))
	full := EncodeCrockford(bytes.Repeat([]byte{0xff}, 8))
	if len(zero) != len(full) {
		t.Errorf("EncodeCrockford output width varies: %d vs %d", len(zero), len(full))
	}
}
