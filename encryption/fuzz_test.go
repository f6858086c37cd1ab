package encryption_test

import (
	"bytes"
	"testing"

	"github.com/hasbyte1/go-pwrecover/encryption"
)

// FuzzOpen ensures that Sealer.Open never panics on arbitrary input.
//
// Run with: go test -fuzz=FuzzOpen ./encryption/
func FuzzOpen(f *testing.F) {
	key, _ := encryption.GenerateKey()
	s, _ := encryption.NewSealer(key)

	seeds := [][]byte{
		[]byte(""),
		[]byte("{}"),
		[]byte(`{"v":1,"cipher":"aes-256-gcm","nonce":"AAAA","tag":"AAAA"}`),
	}
	for _, pt := range []string{"hello", "", "longer plaintext value"} {
		ct, _ := s.Seal([]byte(pt))
		seeds = append(seeds, ct)
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		// Must not panic; error is acceptable.
		_, _ = s.Open(data)
	})
}

// FuzzSeal checks that every sealed plaintext opens to itself.
func FuzzSeal(f *testing.F) {
	key, _ := encryption.GenerateKey()
	s, _ := encryption.NewSealer(key)

	f.Add([]byte(""))
	f.Add([]byte{0x00, 0x01, 0x02, 0xff})
	f.Add(bytes.Repeat([]byte{0xAA}, 1024))

	f.Fuzz(func(t *testing.T, plaintext []byte) {
		sealed, err := s.Seal(plaintext)
		if err != nil {
			t.Fatalf("Seal returned unexpected error: %v", err)
		}
		got, err := s.Open(sealed)
		if err != nil {
			t.Fatalf("Open failed after Seal succeeded: %v", err)
		}
		if !bytes.Equal(got, plaintext) {
			t.Fatalf("round-trip mismatch for input len=%d", len(plaintext))
		}
	})
}
