package hashing_test

import (
	"testing"

	"github.com/hasbyte1/go-pwrecover/hashing"
)

func benchmarkDigest(b *testing.B, alg hashing.Algorithm) {
	d, err := hashing.NewDefaultManager().Digester(alg)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = d.Digest("bench-password")
	}
}

func BenchmarkDigest_SHA512(b *testing.B)  { benchmarkDigest(b, hashing.SHA512) }
func BenchmarkDigest_SHA256(b *testing.B)  { benchmarkDigest(b, hashing.SHA256) }
func BenchmarkDigest_BLAKE3(b *testing.B)  { benchmarkDigest(b, hashing.BLAKE3) }
func BenchmarkDigest_SHA3512(b *testing.B) { benchmarkDigest(b, hashing.SHA3_512) }
