package hashing

import "strings"

// Algorithm identifies a hash algorithm driver.
type Algorithm string

const (
	MD5        Algorithm = "md5"
	SHA1       Algorithm = "sha1"
	SHA256     Algorithm = "sha256"
	SHA512     Algorithm = "sha512"
	SHA3_256   Algorithm = "sha3-256"
	SHA3_512   Algorithm = "sha3-512"
	BLAKE2b256 Algorithm = "blake2b-256"
	BLAKE2b512 Algorithm = "blake2b-512"
	BLAKE3     Algorithm = "blake3"
	// Murmur3 is the 128-bit x64 MurmurHash3. It is not a cryptographic hash
	// and is only provided for recovering identifiers hashed with it.
	Murmur3 Algorithm = "murmur3-128"

	Bcrypt   Algorithm = "bcrypt"
	Argon2i  Algorithm = "argon2i"
	Argon2id Algorithm = "argon2id"
)

// DefaultAlgorithm is the digest algorithm used when none is configured.
const DefaultAlgorithm = SHA512

// Digester computes unsalted digests of candidate plaintexts.
//
// All implementations must be safe for concurrent use by multiple goroutines.
type Digester interface {
	// Digest hashes the UTF-8 bytes of plaintext and returns the digest as a
	// lowercase hexadecimal string.
	Digest(plaintext string) string

	// Size returns the digest length in bytes.
	Size() int

	// Algorithm returns the algorithm implemented by this digester.
	Algorithm() Algorithm
}

// Verifier checks candidates against self-salted encoded hashes.
//
// All implementations must be safe for concurrent use by multiple goroutines.
type Verifier interface {
	// Make hashes password with a fresh random salt and returns the encoded
	// hash string.
	Make(password string) (string, error)

	// Check reports whether password matches the encoded hash.
	// Returns (false, err) if the hash is structurally invalid or belongs to
	// another algorithm.
	Check(password, hash string) (bool, error)

	// Info extracts the parameters encoded in hash without verifying it.
	Info(hash string) (HashInfo, error)

	// Algorithm returns the algorithm implemented by this verifier.
	Algorithm() Algorithm
}

// HashInfo carries metadata parsed from an encoded hash string.
type HashInfo struct {
	Algorithm Algorithm

	// Params holds algorithm-specific parameters.
	//
	// For bcrypt:
	//   "cost" → int
	//
	// For Argon2i and Argon2id:
	//   "version" → int
	//   "memory"  → uint32 (KiB)
	//   "time"    → uint32
	//   "threads" → uint8
	//   "key_len" → uint32
	Params map[string]any
}

// DetectAlgorithm inspects an encoded hash and returns the verifier
// algorithm that produced it. It is a prefix heuristic and does not validate
// the rest of the string.
//
// The second return value is false for plain hexadecimal digests and
// anything else that is not a recognised encoded format.
func DetectAlgorithm(hash string) (Algorithm, bool) {
	switch {
	case strings.HasPrefix(hash, "$argon2id$"):
		return Argon2id, true
	case strings.HasPrefix(hash, "$argon2i$"):
		return Argon2i, true
	case strings.HasPrefix(hash, "$2a$"),
		strings.HasPrefix(hash, "$2b$"),
		strings.HasPrefix(hash, "$2y$"):
		return Bcrypt, true
	default:
		return "", false
	}
}

// IsHexDigest reports whether s is a lowercase or uppercase hexadecimal
// string of exactly size bytes.
func IsHexDigest(s string, size int) bool {
	if len(s) != size*2 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
