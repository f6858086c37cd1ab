package encryption

import "errors"

// Sentinel errors returned by encryption operations.
//
// Callers should use errors.Is for comparisons:
//
//	_, err := sealer.Open(data)
//	if errors.Is(err, encryption.ErrOpenFailed) {
//	    // wrong key or tampered file
//	}
var (
	// ErrInvalidEnvelope is returned when sealed data is not valid JSON, has
	// an unknown version or cipher, or misses required fields.
	ErrInvalidEnvelope = errors.New("encryption: invalid envelope")

	// ErrInvalidTag is returned when the authentication tag is absent, cannot
	// be decoded, or has an unexpected length.
	ErrInvalidTag = errors.New("encryption: invalid or missing authentication tag")

	// ErrInvalidKeyLength is returned when a key is not [KeySize] bytes.
	ErrInvalidKeyLength = errors.New("encryption: invalid key length")

	// ErrOpenFailed is returned when no configured key authenticates the
	// envelope.
	ErrOpenFailed = errors.New("encryption: authentication failed")

	// ErrEmptyKey is returned when a nil or zero-length key is provided.
	ErrEmptyKey = errors.New("encryption: key must not be empty")
)
