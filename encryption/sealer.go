package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"fmt"
)

const (
	// gcmTagSize is the AES-GCM authentication tag length in bytes (128 bits).
	gcmTagSize = 16
)

// Option is a functional option for [NewSealer].
type Option func(*sealerOptions)

type sealerOptions struct {
	previousKeys [][]byte
}

// WithPreviousKeys registers keys that [Sealer.Open] still accepts after a
// rotation. Seal always uses the primary key.
//
// Example:
//
//	s, _ := encryption.NewSealer(newKey, encryption.WithPreviousKeys(oldKey))
func WithPreviousKeys(keys ...[]byte) Option {
	return func(o *sealerOptions) {
		for _, k := range keys {
			o.previousKeys = append(o.previousKeys, cloneBytes(k))
		}
	}
}

// Sealer provides AES-256-GCM authenticated encryption of whole files.
//
// # Nonce management
//
// A fresh 12-byte nonce is generated for every [Sealer.Seal] call using
// crypto/rand. Rotate the key well before 2^32 seals.
//
// A Sealer is immutable after construction and safe for concurrent use.
type Sealer struct {
	primary keyEntry
	keys    []keyEntry
}

type keyEntry struct {
	id   string
	aead cipher.AEAD
}

// NewSealer constructs a [Sealer] for a [KeySize]-byte key.
func NewSealer(key []byte, opts ...Option) (*Sealer, error) {
	var o sealerOptions
	for _, opt := range opts {
		opt(&o)
	}
	s := &Sealer{}
	for i, k := range append([][]byte{key}, o.previousKeys...) {
		if err := checkKey(k); err != nil {
			if i > 0 {
				return nil, fmt.Errorf("previous key %d: %w", i-1, err)
			}
			return nil, err
		}
		ke, err := newKeyEntry(k)
		if err != nil {
			return nil, err
		}
		s.keys = append(s.keys, ke)
	}
	s.primary = s.keys[0]
	return s, nil
}

func newKeyEntry(key []byte) (keyEntry, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return keyEntry{}, fmt.Errorf("encryption: failed to create AES cipher: %w", err)
	}
	aead, err := cipher.NewGCMWithTagSize(block, gcmTagSize)
	if err != nil {
		return keyEntry{}, fmt.Errorf("encryption: failed to initialise AES-GCM: %w", err)
	}
	return keyEntry{id: keyID(key), aead: aead}, nil
}

// Seal encrypts plaintext under the primary key and returns the JSON
// envelope.
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	nonce, err := randomBytes(s.primary.aead.NonceSize())
	if err != nil {
		return nil, err
	}
	env := &Envelope{Version: envelopeVersion, Cipher: Cipher, KeyID: s.primary.id}

	// Seal appends the tag after the ciphertext: output = ciphertext || tag.
	sealed := s.primary.aead.Seal(nil, nonce, plaintext, env.additionalData())
	env.Nonce = base64.StdEncoding.EncodeToString(nonce)
	env.Value = base64.StdEncoding.EncodeToString(sealed[:len(sealed)-gcmTagSize])
	env.Tag = base64.StdEncoding.EncodeToString(sealed[len(sealed)-gcmTagSize:])
	return env.marshal()
}

// Open authenticates and decrypts an envelope produced by [Sealer.Seal].
// The key whose id matches the envelope is tried first, then every other
// configured key. Returns [ErrOpenFailed] if none authenticates.
func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	env, err := unmarshalEnvelope(sealed)
	if err != nil {
		return nil, err
	}
	nonce, ciphertext, tag, err := env.decode()
	if err != nil {
		return nil, err
	}
	if len(tag) != gcmTagSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidTag, gcmTagSize, len(tag))
	}
	if len(nonce) != s.primary.aead.NonceSize() {
		return nil, fmt.Errorf("%w: nonce is %d bytes", ErrInvalidEnvelope, len(nonce))
	}

	box := make([]byte, 0, len(ciphertext)+len(tag))
	box = append(append(box, ciphertext...), tag...)
	ad := env.additionalData()
	for _, k := range s.ordered(env.KeyID) {
		if plaintext, err := k.aead.Open(nil, nonce, box, ad); err == nil {
			return plaintext, nil
		}
	}
	return nil, ErrOpenFailed
}

// IsSealed reports whether data has the shape of an envelope. It does not
// attempt decryption.
func IsSealed(data []byte) bool {
	_, err := unmarshalEnvelope(data)
	return err == nil
}

// ordered returns the keys with the one matching id first.
func (s *Sealer) ordered(id string) []keyEntry {
	out := make([]keyEntry, 0, len(s.keys))
	for _, k := range s.keys {
		if k.id == id {
			out = append(out, k)
		}
	}
	for _, k := range s.keys {
		if k.id != id {
			out = append(out, k)
		}
	}
	return out
}
