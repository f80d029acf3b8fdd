package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// fixed work factor, not tunable per call
const bcryptCost = 12

// hashes a plaintext password with a per-hash random salt
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password must not be empty")
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}

	return string(digest), nil
}

// VerifyPassword checks a plaintext password against a stored digest.
// A mismatch is (false, nil); only a malformed digest is an error.
func VerifyPassword(password, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	if err == nil {
		return true, nil
	}

	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}

	return false, fmt.Errorf("%w: %v", ErrHashFormat, err)
}
