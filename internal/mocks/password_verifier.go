package mocks

import "errors"

// MockPasswordVerifier implements auth.PasswordVerifier for testing
type MockPasswordVerifier struct {
	// ShouldSucceed determines whether the password comparison should succeed
	ShouldSucceed bool

	// CompareFn allows for custom comparison logic in tests
	CompareFn func(hashedPassword, password string) error

	// CompareCallCount tracks how many times Compare was called
	CompareCallCount int
}

// Compare implements the auth.PasswordVerifier interface
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	m.CompareCallCount++

	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.ShouldSucceed {
		return nil
	}
	return errors.New("password mismatch")
}

// MockPasswordHasher implements auth.PasswordHasher for testing. Without
// HashFn it prefixes the password with "hashed:".
type MockPasswordHasher struct {
	HashFn func(password string) (string, error)
}

// Hash implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return "hashed:" + password, nil
}
