package hashing

import (
	"fmt"
	"sort"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// Manager is a thread-safe registry of [Digester] and [Verifier] drivers
// with a default digest algorithm.
//
// A [sync.RWMutex] serialises registration while allowing concurrent lookups,
// so one Manager can be shared by every cracking worker.
type Manager struct {
	mu        sync.RWMutex
	digesters map[Algorithm]Digester
	verifiers map[Algorithm]Verifier
	def       Algorithm
}

// NewManager creates an empty Manager with the given default digest
// algorithm. Drivers must be registered before they can be resolved.
func NewManager(def Algorithm) *Manager {
	return &Manager{
		digesters: make(map[Algorithm]Digester),
		verifiers: make(map[Algorithm]Verifier),
		def:       def,
	}
}

// NewDefaultManager creates a Manager with every built-in digest and
// verifier registered. The default algorithm is [SHA512].
func NewDefaultManager() *Manager {
	m := NewManager(DefaultAlgorithm)
	for _, b := range builtinDigests {
		d, err := NewHexDigester(b.alg, b.newHash)
		if err != nil {
			panic(err)
		}
		_ = m.RegisterDigester(d)
	}
	bc, _ := NewBcryptVerifier(bcrypt.DefaultCost)
	a2i, _ := NewArgon2Verifier(Argon2i, DefaultArgon2Options())
	a2id, _ := NewArgon2Verifier(Argon2id, DefaultArgon2Options())
	_ = m.RegisterVerifier(bc)
	_ = m.RegisterVerifier(a2i)
	_ = m.RegisterVerifier(a2id)
	return m
}

// RegisterDigester adds or replaces the digester for d.Algorithm().
func (m *Manager) RegisterDigester(d Digester) error {
	if d == nil {
		return ErrNilDriver
	}
	if d.Algorithm() == "" {
		return ErrEmptyAlgorithm
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.digesters[d.Algorithm()] = d
	return nil
}

// RegisterVerifier adds or replaces the verifier for v.Algorithm().
func (m *Manager) RegisterVerifier(v Verifier) error {
	if v == nil {
		return ErrNilDriver
	}
	if v.Algorithm() == "" {
		return ErrEmptyAlgorithm
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verifiers[v.Algorithm()] = v
	return nil
}

// Digester returns the digester registered under alg, or
// [ErrAlgorithmNotFound].
func (m *Manager) Digester(alg Algorithm) (Digester, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.digesters[alg]
	if !ok {
		return nil, fmt.Errorf("%w: digest %q", ErrAlgorithmNotFound, alg)
	}
	return d, nil
}

// Verifier returns the verifier registered under alg, or
// [ErrAlgorithmNotFound].
func (m *Manager) Verifier(alg Algorithm) (Verifier, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.verifiers[alg]
	if !ok {
		return nil, fmt.Errorf("%w: verifier %q", ErrAlgorithmNotFound, alg)
	}
	return v, nil
}

// VerifierFor detects the algorithm of an encoded hash and returns the
// matching verifier. Returns [ErrInvalidHash] for unrecognised formats.
func (m *Manager) VerifierFor(hash string) (Verifier, error) {
	alg, ok := DetectAlgorithm(hash)
	if !ok {
		return nil, ErrInvalidHash
	}
	return m.Verifier(alg)
}

// SetDefault changes the default digest algorithm. The algorithm must
// already be registered as a digester.
func (m *Manager) SetDefault(alg Algorithm) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.digesters[alg]; !ok {
		return fmt.Errorf("%w: %q is not registered; call RegisterDigester first",
			ErrAlgorithmNotFound, alg)
	}
	m.def = alg
	return nil
}

// Default returns the default digest algorithm name.
func (m *Manager) Default() Algorithm {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.def
}

// DefaultDigester resolves the default digest algorithm.
func (m *Manager) DefaultDigester() (Digester, error) {
	return m.Digester(m.Default())
}

// Algorithms returns every registered digest and verifier name in sorted
// order.
func (m *Manager) Algorithms() []Algorithm {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Algorithm, 0, len(m.digesters)+len(m.verifiers))
	for a := range m.digesters {
		out = append(out, a)
	}
	for a := range m.verifiers {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
