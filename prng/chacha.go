// Package prng provides seeded, independent pseudorandom streams backed by the
// ChaCha20 keystream.
//
// Every (seed, stream) pair yields its own reproducible sequence, so parallel
// candidate generators can each draw from a private stream while a run as a
// whole stays reproducible from a single seed:
//
//	r := prng.NewRand(42, 0) // worker 0
//	s := prng.NewRand(42, 1) // worker 1, uncorrelated with worker 0
package prng

import (
	"encoding/binary"
	"math/rand/v2"

	"github.com/aead/chacha20/chacha"
)

const (
	// Rounds is the number of ChaCha rounds used for the keystream.
	Rounds = 20

	bufSize = 512
)

// ChaCha is a [rand.Source] that reads 64-bit values from a ChaCha20
// keystream. The key is derived from the seed and the 8-byte nonce carries
// the stream identifier.
//
// A ChaCha is not safe for concurrent use; give each goroutine its own.
type ChaCha struct {
	stream *chacha.Cipher
	buf    [bufSize]byte
	off    int
}

var _ rand.Source = (*ChaCha)(nil)

// New returns the keystream source for the given seed and stream identifier.
func New(seed, stream uint64) *ChaCha {
	var key [32]byte
	var nonce [8]byte
	// Spread the seed over the whole key so nearby seeds do not share words.
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint64(key[i*8:], seed^(uint64(i)*0x9e3779b97f4a7c15))
	}
	binary.LittleEndian.PutUint64(nonce[:], stream)

	c, err := chacha.NewCipher(nonce[:], key[:], Rounds)
	if err != nil {
		// Key and nonce sizes are fixed above.
		panic("prng: " + err.Error())
	}
	s := &ChaCha{stream: c}
	s.refill()
	return s
}

// NewRand wraps New in a [rand.Rand].
func NewRand(seed, stream uint64) *rand.Rand {
	return rand.New(New(seed, stream))
}

// Uint64 returns the next 64 bits of keystream.
func (s *ChaCha) Uint64() uint64 {
	if s.off+8 > bufSize {
		s.refill()
	}
	v := binary.LittleEndian.Uint64(s.buf[s.off:])
	s.off += 8
	return v
}

func (s *ChaCha) refill() {
	clear(s.buf[:])
	s.stream.XORKeyStream(s.buf[:], s.buf[:])
	s.off = 0
}
