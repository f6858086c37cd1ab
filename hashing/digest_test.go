package hashing_test

import (
	"crypto/sha512"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/hasbyte1/go-pwrecover/hashing"
)

func TestDigest_KnownVectors(t *testing.T) {
	m := hashing.NewDefaultManager()
	cases := []struct {
		alg   hashing.Algorithm
		input string
		want  string
	}{
		{hashing.MD5, "cat", "d077f244def8a70e5ea758bd8352fcd8"},
		{hashing.SHA1, "cat", "9d989e8d27dc9e0ec3389fc855f142c3d40f0c50"},
		{hashing.SHA256, "cat", "77af778b51abd4a3c51c5ddd97204a9c3ae614ebccb75a606c3b6865aed6744e"},
		{hashing.SHA512, "cat", "4241b986a49591d445ebb840bc4b49c12b10b392b49222bc45dfd8b871cb3d0e742cdba152aa782e253026c7fc93fe8287b95c5fd0e22467e99c89501a502cd4"},
		{hashing.SHA512, "", "cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e"},
		{hashing.SHA3_256, "cat", "d616607d3e4ba96a74f323cffc5f20a3c78e7cab8ecbdbb03b13fa8ffc9bf644"},
		{hashing.SHA3_512, "cat", "fe37dd66fa849ca98684160d542538b22c1edb576271d76b319ded4965d90143a0806fe1edf29b82b8740ec177880769629bdd1a0fb7cb97d7640e60c44833d3"},
		{hashing.BLAKE2b256, "cat", "6a7178d382cfb186b49fd344db9231f636975548d72c4d2541d1f5655b8983e1"},
		{hashing.BLAKE2b512, "cat", "06b059c0112019db8506d93d3a899f830c99f9eac9aa9cfa7cb847e0a77c963be233a7e330ae9d71a793eb5d12254f55831410d3521b6dc4c64f075729753e57"},
		{hashing.BLAKE3, "", "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262"},
		{hashing.Murmur3, "", "00000000000000000000000000000000"},
	}
	for _, tc := range cases {
		t.Run(string(tc.alg)+"/"+tc.input, func(t *testing.T) {
			d, err := m.Digester(tc.alg)
			if err != nil {
				t.Fatalf("Digester(%q): %v", tc.alg, err)
			}
			if got := d.Digest(tc.input); got != tc.want {
				t.Errorf("Digest(%q) = %s, want %s", tc.input, got, tc.want)
			}
			if len(tc.want) != d.Size()*2 {
				t.Errorf("Size() = %d, want %d", d.Size(), len(tc.want)/2)
			}
		})
	}
}

func TestDigest_Lowercase(t *testing.T) {
	d, _ := hashing.NewDefaultManager().Digester(hashing.SHA512)
	got := d.Digest("Password1")
	if got != strings.ToLower(got) {
		t.Errorf("digest %q is not lowercase", got)
	}
}

func TestNewHexDigester_Validation(t *testing.T) {
	if _, err := hashing.NewHexDigester("", sha512.New); !errors.Is(err, hashing.ErrEmptyAlgorithm) {
		t.Errorf("empty name: got %v, want ErrEmptyAlgorithm", err)
	}
	if _, err := hashing.NewHexDigester("x", nil); !errors.Is(err, hashing.ErrNilDriver) {
		t.Errorf("nil constructor: got %v, want ErrNilDriver", err)
	}
}

func TestHexDigester_ConcurrentUse(t *testing.T) {
	d, _ := hashing.NewHexDigester(hashing.SHA512, sha512.New)
	want := d.Digest("concurrent")
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if got := d.Digest("concurrent"); got != want {
					t.Errorf("concurrent digest mismatch: %s", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestIsHexDigest(t *testing.T) {
	cases := []struct {
		in   string
		size int
		want bool
	}{
		{"d077f244def8a70e5ea758bd8352fcd8", 16, true},
		{"D077F244DEF8A70E5EA758BD8352FCD8", 16, true},
		{"d077f244def8a70e5ea758bd8352fcd", 16, false},
		{"z077f244def8a70e5ea758bd8352fcd8", 16, false},
		{"", 0, true},
	}
	for _, tc := range cases {
		if got := hashing.IsHexDigest(tc.in, tc.size); got != tc.want {
			t.Errorf("IsHexDigest(%q, %d) = %v, want %v", tc.in, tc.size, got, tc.want)
		}
	}
}

func TestDetectAlgorithm(t *testing.T) {
	cases := []struct {
		in   string
		want hashing.Algorithm
		ok   bool
	}{
		{"$2a$10$abc", hashing.Bcrypt, true},
		{"$2b$04$abc", hashing.Bcrypt, true},
		{"$2y$12$abc", hashing.Bcrypt, true},
		{"$argon2id$v=19$m=8,t=1,p=1$c2FsdA$aGFzaA", hashing.Argon2id, true},
		{"$argon2i$v=19$m=8,t=1,p=1$c2FsdA$aGFzaA", hashing.Argon2i, true},
		{"4241b986a49591d4", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := hashing.DetectAlgorithm(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("DetectAlgorithm(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
