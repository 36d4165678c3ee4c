// Package password derives and verifies salted adaptive password hashes.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	apperrors "reciclothes/internal/errors"
)

// DefaultCost is the bcrypt work factor used for every stored hash.
const DefaultCost = 10

// bcrypt hashes look like $2a$10$<22 char salt><31 char digest>.
const saltPrefixLen = 29

// Hasher hashes new passwords and verifies candidates against stored hashes.
type Hasher interface {
	// Hash returns the hash and the salt it was derived with.
	Hash(plain string) (hash string, salt string, err error)
	// Verify returns nil when plain matches hash and apperrors.ErrWrongPassword when it does not.
	Verify(hash, plain string) error
}

// BcryptHasher implements Hasher with a fixed bcrypt cost.
type BcryptHasher struct {
	cost int
}

var _ Hasher = (*BcryptHasher)(nil)

// NewBcryptHasher creates a hasher; cost outside bcrypt's range falls back to DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Cost returns the configured work factor.
func (h *BcryptHasher) Cost() int {
	return h.cost
}

// Hash generates a fresh random salt and hashes plain with it.
func (h *BcryptHasher) Hash(plain string) (string, string, error) {
	if plain == "" {
		return "", "", apperrors.ErrEmptyPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", "", apperrors.ErrPasswordTooLong
		}
		return "", "", fmt.Errorf("hash password: %w", err)
	}

	hash := string(hashed)
	return hash, Salt(hash), nil
}

// Verify re-derives the digest from plain and the salt embedded in hash.
// The digest comparison runs in constant time.
func (h *BcryptHasher) Verify(hash, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return apperrors.ErrWrongPassword
	default:
		return fmt.Errorf("verify password: %w", err)
	}
}

// Salt extracts the encoded salt (version, cost and 22 salt characters) from a bcrypt hash.
func Salt(hash string) string {
	if len(hash) < saltPrefixLen {
		return ""
	}
	return hash[:saltPrefixLen]
}
