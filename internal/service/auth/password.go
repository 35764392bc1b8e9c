package auth

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

var (
	unknownUserHashOnce sync.Once
	unknownUserHashVal  string
)

// unknownUserHash returns a bcrypt hash at bcrypt.DefaultCost that no login
// is meant to match. Logins for unknown usernames are compared against it so
// they take as long as a wrong password.
func unknownUserHash() string {
	unknownUserHashOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("no user has this password"), bcrypt.DefaultCost)
		if err == nil {
			unknownUserHashVal = string(hash)
		}
	})
	return unknownUserHashVal
}

// PasswordVerifier defines the interface for comparing passwords.
type PasswordVerifier interface {
	// Compare compares a hashed password with its possible plaintext equivalent.
	// Returns nil on success, or an error on failure (e.g., mismatch).
	Compare(hashedPassword, password string) error
}

// PasswordHasher turns a plaintext password into a storable hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// BcryptVerifier implements PasswordVerifier using bcrypt.
type BcryptVerifier struct{}

// NewBcryptVerifier creates a new BcryptVerifier.
func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{}
}

// Compare implements the PasswordVerifier interface using bcrypt.
func (v *BcryptVerifier) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// BcryptHasher implements PasswordHasher with a fixed bcrypt cost.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher. A cost outside bcrypt's range is
// replaced with bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash implements PasswordHasher.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
