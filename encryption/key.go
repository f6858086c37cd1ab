package encryption

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
)

// KeySize is the AES-256 key length in bytes.
const KeySize = 32

// GenerateKey returns a random [KeySize]-byte key from crypto/rand.
//
// Example:
//
//	key, err := encryption.GenerateKey()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(encryption.EncodeKey(key)) // store in PWRECOVER_MODEL_KEY
func GenerateKey() ([]byte, error) {
	return randomBytes(KeySize)
}

// EncodeKey returns the standard base64 encoding of key.
func EncodeKey(key []byte) string {
	return base64.StdEncoding.EncodeToString(key)
}

// DecodeKey decodes a key produced by [EncodeKey]. It accepts both the
// standard and the URL-safe base64 alphabets and checks the key length.
func DecodeKey(encoded string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		// Try URL-safe variant before giving up.
		key, err = base64.URLEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("encryption: failed to decode key: %w", err)
		}
	}
	if err := checkKey(key); err != nil {
		return nil, err
	}
	return key, nil
}

// keyID is a short public fingerprint of key stored in every envelope so
// Open can try the matching key first.
func keyID(key []byte) string {
	sum := sha256.Sum256(key)
	return hex.EncodeToString(sum[:4])
}

func checkKey(key []byte) error {
	if len(key) == 0 {
		return ErrEmptyKey
	}
	if len(key) != KeySize {
		return fmt.Errorf("%w: need %d bytes, got %d", ErrInvalidKeyLength, KeySize, len(key))
	}
	return nil
}

// randomBytes returns n cryptographically random bytes from crypto/rand.
func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("encryption: failed to generate %d random bytes: %w", n, err)
	}
	return b, nil
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
