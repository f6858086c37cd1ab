package hashing

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"sync"

	sha256 "github.com/minio/sha256-simd"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// HexDigester renders the output of a [hash.Hash] as lowercase hexadecimal.
//
// Hash states are pooled, so a HexDigester is safe for concurrent use and
// does not allocate a new hash per candidate.
type HexDigester struct {
	alg  Algorithm
	size int
	pool sync.Pool
}

// NewHexDigester wraps a hash constructor as a [Digester].
func NewHexDigester(alg Algorithm, newHash func() hash.Hash) (*HexDigester, error) {
	if alg == "" {
		return nil, ErrEmptyAlgorithm
	}
	if newHash == nil {
		return nil, ErrNilDriver
	}
	d := &HexDigester{alg: alg, size: newHash().Size()}
	d.pool.New = func() any { return newHash() }
	return d, nil
}

// Algorithm returns the digest algorithm name.
func (d *HexDigester) Algorithm() Algorithm { return d.alg }

// Size returns the digest length in bytes.
func (d *HexDigester) Size() int { return d.size }

// Digest returns the lowercase hex digest of plaintext.
func (d *HexDigester) Digest(plaintext string) string {
	h := d.pool.Get().(hash.Hash)
	h.Reset()
	_, _ = h.Write([]byte(plaintext))
	var buf [64]byte
	sum := h.Sum(buf[:0])
	d.pool.Put(h)
	return hex.EncodeToString(sum)
}

// builtinDigests lists the digest constructors registered by
// [NewDefaultManager].
var builtinDigests = []struct {
	alg     Algorithm
	newHash func() hash.Hash
}{
	{MD5, md5.New},
	{SHA1, sha1.New},
	{SHA256, sha256.New},
	{SHA512, sha512.New},
	{SHA3_256, sha3.New256},
	{SHA3_512, sha3.New512},
	{BLAKE2b256, mustBlake2b(blake2b.New256)},
	{BLAKE2b512, mustBlake2b(blake2b.New512)},
	{BLAKE3, func() hash.Hash { return blake3.New() }},
	{Murmur3, func() hash.Hash { return murmur3.New128() }},
}

// mustBlake2b adapts the keyed BLAKE2b constructors, which only fail for
// keys longer than 64 bytes.
func mustBlake2b(fn func(key []byte) (hash.Hash, error)) func() hash.Hash {
	return func() hash.Hash {
		h, err := fn(nil)
		if err != nil {
			panic("hashing: blake2b: " + err.Error())
		}
		return h
	}
}
