package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is used when no cost is configured.
const DefaultBcryptCost = 12

// HashPassword hashes a plaintext password with the configured cost. bcrypt
// keeps no shared state, so concurrent calls are safe; each call burns tens of
// milliseconds of CPU on purpose.
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	if cost <= 0 {
		cost = DefaultBcryptCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword checks a plaintext password against its stored digest. A
// malformed or mismatched digest yields false; an empty digest is a programmer
// error and reported as such.
func VerifyPassword(password, digest string) (bool, error) {
	if digest == "" {
		return false, errors.New("empty password digest")
	}
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	if err != nil {
		return false, nil
	}
	return true, nil
}
