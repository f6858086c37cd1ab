package hashing

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptVerifier checks candidates against bcrypt hashes.
//
// The cost used by [BcryptVerifier.Make] only affects newly produced hashes;
// Check always uses the cost and salt encoded in the target hash.
//
// BcryptVerifier is immutable after construction and safe for concurrent use.
type BcryptVerifier struct {
	cost int
}

// NewBcryptVerifier constructs a BcryptVerifier whose Make uses cost.
// Returns [ErrInvalidOption] if cost is outside [bcrypt.MinCost, bcrypt.MaxCost].
func NewBcryptVerifier(cost int) (*BcryptVerifier, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: bcrypt cost %d must be in [%d, %d]",
			ErrInvalidOption, cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &BcryptVerifier{cost: cost}, nil
}

// Algorithm returns [Bcrypt].
func (v *BcryptVerifier) Algorithm() Algorithm { return Bcrypt }

// Make hashes password with bcrypt and returns the Modular Crypt Format string.
func (v *BcryptVerifier) Make(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), v.cost)
	if err != nil {
		return "", fmt.Errorf("hashing: bcrypt: failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Check verifies that password matches the bcrypt-encoded hash.
// Returns (false, nil) on mismatch.
func (v *BcryptVerifier) Check(password, hash string) (bool, error) {
	if alg, ok := DetectAlgorithm(hash); !ok || alg != Bcrypt {
		return false, fmt.Errorf("%w: hash does not appear to be bcrypt", ErrAlgorithmMismatch)
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	return true, nil
}

// Info extracts the work factor from a bcrypt hash string.
func (v *BcryptVerifier) Info(hash string) (HashInfo, error) {
	if alg, ok := DetectAlgorithm(hash); !ok || alg != Bcrypt {
		return HashInfo{}, fmt.Errorf("%w: hash does not appear to be bcrypt", ErrAlgorithmMismatch)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return HashInfo{}, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	return HashInfo{
		Algorithm: Bcrypt,
		Params:    map[string]any{"cost": cost},
	}, nil
}
