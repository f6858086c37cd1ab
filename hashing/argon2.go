package hashing

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

// ──────────────────────────────────────────────────────────────────────────────
// Options
// ──────────────────────────────────────────────────────────────────────────────

// Argon2Options configures hashes produced by [Argon2Verifier.Make].
// Check reads every parameter from the target hash itself.
type Argon2Options struct {
	// Memory is the memory cost in KiB. Minimum: 8 * Threads.
	Memory uint32
	// Time is the number of passes over memory. Minimum: 1.
	Time uint32
	// Threads is the degree of parallelism. Minimum: 1.
	Threads uint8
	// KeyLen is the derived key length in bytes. Minimum: 4.
	KeyLen uint32
	// SaltLen is the random salt length in bytes. Minimum: 8.
	SaltLen uint32
}

// DefaultArgon2Options returns the parameters used for test fixtures and the
// built-in verifiers: m=64 MiB, t=3, p=2, 32-byte key, 16-byte salt.
func DefaultArgon2Options() Argon2Options {
	return Argon2Options{
		Memory:  64 * 1024,
		Time:    3,
		Threads: 2,
		KeyLen:  32,
		SaltLen: 16,
	}
}

func validateArgon2Options(opts Argon2Options) error {
	if opts.Time < 1 {
		return fmt.Errorf("%w: argon2 time must be ≥ 1, got %d", ErrInvalidOption, opts.Time)
	}
	if opts.Threads < 1 {
		return fmt.Errorf("%w: argon2 threads must be ≥ 1, got %d", ErrInvalidOption, opts.Threads)
	}
	if opts.Memory < 8*uint32(opts.Threads) {
		return fmt.Errorf("%w: argon2 memory (%d KiB) must be ≥ 8×threads (%d KiB)",
			ErrInvalidOption, opts.Memory, 8*uint32(opts.Threads))
	}
	if opts.KeyLen < 4 {
		return fmt.Errorf("%w: argon2 key_len must be ≥ 4, got %d", ErrInvalidOption, opts.KeyLen)
	}
	if opts.SaltLen < 8 {
		return fmt.Errorf("%w: argon2 salt_len must be ≥ 8, got %d", ErrInvalidOption, opts.SaltLen)
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Argon2Verifier
// ──────────────────────────────────────────────────────────────────────────────

// Argon2Verifier checks candidates against Argon2i or Argon2id PHC strings.
//
// Every Check recomputes the full key derivation with the parameters stored
// in the target, so a target with m=64 MiB costs 64 MiB and several
// milliseconds per candidate.
//
// Argon2Verifier is immutable after construction and safe for concurrent use.
type Argon2Verifier struct {
	variant Algorithm
	opts    Argon2Options
}

// NewArgon2Verifier constructs a verifier for variant ([Argon2i] or [Argon2id]).
func NewArgon2Verifier(variant Algorithm, opts Argon2Options) (*Argon2Verifier, error) {
	if variant != Argon2i && variant != Argon2id {
		return nil, fmt.Errorf("%w: %q is not an argon2 variant", ErrInvalidOption, variant)
	}
	if err := validateArgon2Options(opts); err != nil {
		return nil, err
	}
	return &Argon2Verifier{variant: variant, opts: opts}, nil
}

// Algorithm returns the configured Argon2 variant.
func (v *Argon2Verifier) Algorithm() Algorithm { return v.variant }

// Make hashes password and returns a PHC-formatted string.
func (v *Argon2Verifier) Make(password string) (string, error) {
	salt := make([]byte, v.opts.SaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("hashing: argon2: failed to generate salt: %w", err)
	}
	key := v.derive([]byte(password), salt, v.opts.Time, v.opts.Memory, v.opts.Threads, v.opts.KeyLen)
	return encodePHC(v.variant, argon2.Version,
		v.opts.Memory, v.opts.Time, v.opts.Threads, salt, key), nil
}

// Check verifies that password matches the PHC hash.
func (v *Argon2Verifier) Check(password, hash string) (bool, error) {
	p, err := v.decode(hash)
	if err != nil {
		return false, err
	}
	computed := v.derive([]byte(password), p.salt, p.time, p.memory, p.threads, p.keyLen)
	return subtle.ConstantTimeCompare(computed, p.hash) == 1, nil
}

// Info parses the PHC string and returns the encoded parameters.
func (v *Argon2Verifier) Info(hash string) (HashInfo, error) {
	p, err := v.decode(hash)
	if err != nil {
		return HashInfo{}, err
	}
	return HashInfo{
		Algorithm: p.variant,
		Params: map[string]any{
			"version": int(p.version),
			"memory":  p.memory,
			"time":    p.time,
			"threads": p.threads,
			"key_len": p.keyLen,
		},
	}, nil
}

func (v *Argon2Verifier) decode(hash string) (*argon2Params, error) {
	p, err := decodePHC(hash)
	if err != nil {
		return nil, err
	}
	if p.variant != v.variant {
		return nil, fmt.Errorf("%w: hash is %s, not %s", ErrAlgorithmMismatch, p.variant, v.variant)
	}
	return p, nil
}

func (v *Argon2Verifier) derive(password, salt []byte, time, memory uint32, threads uint8, keyLen uint32) []byte {
	if v.variant == Argon2i {
		return argon2.Key(password, salt, time, memory, threads, keyLen)
	}
	return argon2.IDKey(password, salt, time, memory, threads, keyLen)
}

// ──────────────────────────────────────────────────────────────────────────────
// PHC string format helpers
// ──────────────────────────────────────────────────────────────────────────────

type argon2Params struct {
	variant Algorithm
	version uint32
	memory  uint32
	time    uint32
	threads uint8
	keyLen  uint32
	salt    []byte
	hash    []byte
}

// encodePHC serialises an Argon2 hash as
//
//	$argon2id$v=19$m=65536,t=3,p=2$<salt_base64>$<hash_base64>
//
// using unpadded standard base64.
func encodePHC(variant Algorithm, version, memory, time uint32, threads uint8, salt, hash []byte) string {
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		string(variant),
		version,
		memory,
		time,
		threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)
}

// decodePHC parses an Argon2 PHC hash string.
func decodePHC(encoded string) (*argon2Params, error) {
	// The leading "$" produces an empty first element.
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, fmt.Errorf("%w: expected 5-segment PHC string, got %d segments",
			ErrInvalidHash, len(parts)-1)
	}

	var variant Algorithm
	switch parts[1] {
	case string(Argon2i):
		variant = Argon2i
	case string(Argon2id):
		variant = Argon2id
	default:
		return nil, fmt.Errorf("%w: unknown argon2 variant %q", ErrInvalidHash, parts[1])
	}

	version, err := parseKV(parts[2], "v")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}

	kvs, err := parseParams(parts[3])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	memory, ok1 := kvs["m"]
	time, ok2 := kvs["t"]
	threads, ok3 := kvs["p"]
	if !ok1 || !ok2 || !ok3 {
		return nil, fmt.Errorf("%w: missing m/t/p in parameter segment %q", ErrInvalidHash, parts[3])
	}
	if threads == 0 || threads > 255 || time == 0 || memory > 1<<32-1 {
		return nil, fmt.Errorf("%w: parameters out of range in %q", ErrInvalidHash, parts[3])
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid salt base64: %v", ErrInvalidHash, err)
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid hash base64: %v", ErrInvalidHash, err)
	}
	if len(hash) == 0 {
		return nil, fmt.Errorf("%w: empty hash segment", ErrInvalidHash)
	}

	return &argon2Params{
		variant: variant,
		version: uint32(version),
		memory:  uint32(memory),
		time:    uint32(time),
		threads: uint8(threads),
		keyLen:  uint32(len(hash)),
		salt:    salt,
		hash:    hash,
	}, nil
}

// parseKV parses "key=value" and returns the numeric value.
func parseKV(s, key string) (uint64, error) {
	prefix := key + "="
	if !strings.HasPrefix(s, prefix) {
		return 0, fmt.Errorf("expected %q prefix in %q", prefix, s)
	}
	return strconv.ParseUint(s[len(prefix):], 10, 64)
}

// parseParams splits "m=65536,t=3,p=2" into a map.
func parseParams(s string) (map[string]uint64, error) {
	out := make(map[string]uint64)
	for _, kv := range strings.Split(s, ",") {
		eq := strings.IndexByte(kv, '=')
		if eq <= 0 {
			return nil, fmt.Errorf("malformed param %q", kv)
		}
		v, err := strconv.ParseUint(kv[eq+1:], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("non-numeric value in %q: %v", kv, err)
		}
		out[kv[:eq]] = v
	}
	return out, nil
}
