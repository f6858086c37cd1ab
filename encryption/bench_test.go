package encryption_test

import (
	"bytes"
	"testing"

	"github.com/hasbyte1/go-pwrecover/encryption"
)

func BenchmarkSeal_64KB(b *testing.B) { benchmarkSeal(b, 64<<10) }
func BenchmarkSeal_1MB(b *testing.B)  { benchmarkSeal(b, 1<<20) }
func BenchmarkOpen_64KB(b *testing.B) { benchmarkOpen(b, 64<<10) }
func BenchmarkOpen_1MB(b *testing.B)  { benchmarkOpen(b, 1<<20) }

func benchmarkSeal(b *testing.B, size int) {
	key, _ := encryption.GenerateKey()
	s, _ := encryption.NewSealer(key)
	data := bytes.Repeat([]byte("m"), size)
	b.SetBytes(int64(size))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Seal(data); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkOpen(b *testing.B, size int) {
	key, _ := encryption.GenerateKey()
	s, _ := encryption.NewSealer(key)
	sealed, _ := s.Seal(bytes.Repeat([]byte("m"), size))
	b.SetBytes(int64(size))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Open(sealed); err != nil {
			b.Fatal(err)
		}
	}
}
