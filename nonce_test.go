package nonce

import (
	"sync"
	"testing"
	"time"

	"github.com/nonceforge/nonce/cipher"
)

func initTestFactory(t *testing.T, name string, opts ...Option) {
	t.Helper()
	all := append([]Option{WithName(name), WithMachineID(3)}, opts...)
	if err := Init(all...); err != nil {
		t.Fatalf("Init(%q): %v", name, err)
	}
	t.Cleanup(func() { reset(name) })
}

func TestInitDefaultsName(t *testing.T) {
	t.Cleanup(func() { reset(DefaultFactoryName) })
	if err := Init(WithMachineID(1)); err != nil {
		t.Fatalf("Init with no name: %v", err)
	}
	info, err := Lookup(DefaultFactoryName)
	if err != nil {
		t.Fatal(err)
	}
	if info.Name != DefaultFactoryName {
		t.Errorf("Name = %q, want %q", info.Name, DefaultFactoryName)
	}
}

func TestInitRejectsMachineIDOutOfRange(t *testing.T) {
	err := Init(WithName("too-big"), WithMachineID(MaxMachineID+1))
	if err != ErrMachineIDOutOfRange {
		t.Fatalf("Init: got %v, want ErrMachineIDOutOfRange", err)
	}
}

func TestNonceUnknownFactory(t *testing.T) {
	if _, err := Nonce("does-not-exist", Width64); err != ErrFactoryNotInitialized {
		t.Fatalf("Nonce: got %v, want ErrFactoryNotInitialized", err)
	}
}

func TestNonceWidths(t *testing.T) {
	initTestFactory(t, "widths")

	for _, width := range []int{Width64, Width96, Width128} {
		b, err := Nonce("widths", width)
		if err != nil {
			t.Fatalf("Nonce(width=%d): %v", width, err)
		}
		wantLen, _ := byteLenForWidth(width)
		if len(b) != wantLen {
			t.Errorf("Nonce(width=%d) len = %d, want %d", width, len(b), wantLen)
		}
	}
}

func TestNonceCounterIncrements(t *testing.T) {
	initTestFactory(t, "incrementing")

	var prev uint64
	for i := 0; i < 5; i++ {
		b, err := Nonce("incrementing", Width96)
		if err != nil {
			t.Fatal(err)
		}
		f, err := decodeNonce(Width96, b)
		if err != nil {
			t.Fatal(err)
		}
		if i > 0 && f.Counter != prev+1 {
			t.Errorf("call %d: counter = %d, want %d", i, f.Counter, prev+1)
		}
		prev = f.Counter
	}
}

func TestConcurrentGenerationIsUnique(t *testing.T) {
	initTestFactory(t, "concurrent")

	const goroutines, perGoroutine = 50, 100
	results := make(chan string, goroutines*perGoroutine)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				b, err := Nonce("concurrent", Width128)
				if err != nil {
					t.Error(err)
					return
				}
				results <- string(b)
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool, goroutines*perGoroutine)
	for r := range results {
		if seen[r] {
			t.Fatalf("duplicate nonce generated: %x", r)
		}
		seen[r] = true
	}
	if len(seen) != goroutines*perGoroutine {
		t.Fatalf("got %d unique nonces, want %d", len(seen), goroutines*perGoroutine)
	}
}

func TestSortableNonceMonotonicWithinFactory(t *testing.T) {
	initTestFactory(t, "sortable")

	var prev []byte
	for i := 0; i < 20; i++ {
		b, err := SortableNonce("sortable", Width96)
		if err != nil {
			t.Fatal(err)
		}
		if prev != nil && compareBytes(prev, b) >= 0 {
			t.Fatalf("call %d: nonce %x did not sort after %x", i, b, prev)
		}
		prev = b
	}
}

func TestSortableConcurrentIsUnique(t *testing.T) {
	initTestFactory(t, "sortable-concurrent")

	const goroutines, perGoroutine = 20, 50
	results := make(chan string, goroutines*perGoroutine)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				b, err := SortableNonce("sortable-concurrent", Width96)
				if err != nil {
					t.Error(err)
					return
				}
				results <- string(b)
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool, goroutines*perGoroutine)
	for r := range results {
		if seen[r] {
			t.Fatalf("duplicate sortable nonce generated: %x", r)
		}
		seen[r] = true
	}
}

func TestInspectRoundtrip(t *testing.T) {
	initTestFactory(t, "inspect")

	b, err := Nonce("inspect", Width96)
	if err != nil {
		t.Fatal(err)
	}
	info, err := Inspect("inspect", Width96, b)
	if err != nil {
		t.Fatal(err)
	}
	if info.MachineID != 3 {
		t.Errorf("MachineID = %d, want 3", info.MachineID)
	}
	if time.Since(info.Timestamp) > time.Minute || time.Since(info.Timestamp) < -time.Minute {
		t.Errorf("Timestamp %v not close to now", info.Timestamp)
	}
}

func TestGetDatetimeMatchesInspect(t *testing.T) {
	initTestFactory(t, "datetime")

	b, err := Nonce("datetime", Width64)
	if err != nil {
		t.Fatal(err)
	}
	got, err := GetDatetime("datetime", Width64, b)
	if err != nil {
		t.Fatal(err)
	}
	info, err := Inspect("datetime", Width64, b)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(info.Timestamp) {
		t.Errorf("GetDatetime = %v, Inspect.Timestamp = %v", got, info.Timestamp)
	}
}

func TestEncryptedNonceRoundtripsThroughDecrypt(t *testing.T) {
	initTestFactory(t, "encrypted",
		WithBaseKey(make([]byte, 32)),
		WithCipher64(cipher.Blowfish),
		WithCipher96(cipher.Blowfish),
		WithCipher128(cipher.AES),
	)

	for _, width := range []int{Width64, Width96, Width128} {
		ct, err := EncryptedNonce("encrypted", width, BaseCounter)
		if err != nil {
			t.Fatalf("EncryptedNonce(width=%d): %v", width, err)
		}
		pt, err := Decrypt("encrypted", width, ct)
		if err != nil {
			t.Fatalf("Decrypt(width=%d): %v", width, err)
		}
		wantLen, _ := byteLenForWidth(width)
		if len(pt) != wantLen {
			t.Errorf("Decrypt(width=%d) len = %d, want %d", width, len(pt), wantLen)
		}
		again, err := Encrypt("encrypted", width, pt)
		if err != nil {
			t.Fatalf("Encrypt(width=%d): %v", width, err)
		}
		if string(again) != string(ct) {
			t.Errorf("Encrypt(Decrypt(ct)) (width=%d) = %x, want %x", width, again, ct)
		}
	}
}

func TestEncryptedNonce96BitNativeSpeckRoundtrips(t *testing.T) {
	initTestFactory(t, "encrypted-speck96",
		WithSpeck(true),
		WithBaseKey(make([]byte, 32)),
		WithCipher96(cipher.Speck),
	)

	ct, err := EncryptedNonce("encrypted-speck96", Width96, BaseCounter)
	if err != nil {
		t.Fatalf("EncryptedNonce: %v", err)
	}
	if len(ct) != 12 {
		t.Fatalf("ciphertext len = %d, want 12", len(ct))
	}
	pt, err := Decrypt("encrypted-speck96", Width96, ct)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if len(pt) != 12 {
		t.Fatalf("plaintext len = %d, want 12", len(pt))
	}
}

func TestEncryptedNonceWithoutCipherFails(t *testing.T) {
	initTestFactory(t, "no-cipher")

	if _, err := EncryptedNonce("no-cipher", Width64, BaseCounter); err != ErrNoCipherConfigured {
		t.Fatalf("EncryptedNonce: got %v, want ErrNoCipherConfigured", err)
	}
}

func TestDecrypt96BitRejectsNonZeroTail(t *testing.T) {
	initTestFactory(t, "tail-check", WithBaseKey(make([]byte, 32)), WithCipher96(cipher.Blowfish))

	ct, err := EncryptedNonce("tail-check", Width96, BaseCounter)
	if err != nil {
		t.Fatal(err)
	}
	ct[len(ct)-1] ^= 1 // corrupt the zero tail
	if _, err := Decrypt("tail-check", Width96, ct); err != ErrInvalidTail {
		t.Fatalf("Decrypt with corrupted tail: got %v, want ErrInvalidTail", err)
	}
}

func TestStatsReflectsGeneratedCount(t *testing.T) {
	initTestFactory(t, "stats")

	for i := 0; i < 7; i++ {
		if _, err := Nonce("stats", Width64); err != nil {
			t.Fatal(err)
		}
	}
	s, err := Stats("stats")
	if err != nil {
		t.Fatal(err)
	}
	if s.Counter != 6 { // zero-based: 7 calls produce counters 0..6
		t.Errorf("Counter = %d, want 6", s.Counter)
	}
}

func compareBytes(a, b []byte) int {
	for i := range a {
		if a[i] != b[i] {
			return int(a[i]) - int(b[i])
		}
	}
	return 0
}
