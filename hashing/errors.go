package hashing

import "errors"

// Sentinel errors returned by hashing operations.
//
// Use [errors.Is] for comparisons:
//
//	ok, err := verifier.Check(candidate, encoded)
//	if errors.Is(err, hashing.ErrInvalidHash) {
//	    // encoded hash is malformed
//	}
var (
	// ErrInvalidHash is returned when an encoded hash cannot be parsed because
	// it has an unrecognised format, missing fields, or invalid encoding.
	ErrInvalidHash = errors.New("hashing: invalid or unrecognised hash string")

	// ErrInvalidOption is returned when a constructor is called with a
	// parameter value outside the allowed range.
	ErrInvalidOption = errors.New("hashing: invalid option value")

	// ErrAlgorithmNotFound is returned by [Manager.Digester] and
	// [Manager.Verifier] when the requested algorithm has not been registered.
	ErrAlgorithmNotFound = errors.New("hashing: algorithm not found")

	// ErrEmptyAlgorithm is returned when a driver is registered under an
	// empty name.
	ErrEmptyAlgorithm = errors.New("hashing: algorithm name must not be empty")

	// ErrNilDriver is returned when a nil driver is registered.
	ErrNilDriver = errors.New("hashing: driver must not be nil")

	// ErrAlgorithmMismatch is returned by a [Verifier] when the encoded hash
	// was produced by a different algorithm than the one it implements.
	ErrAlgorithmMismatch = errors.New("hashing: hash was produced by a different algorithm")
)
