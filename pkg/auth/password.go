package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Password hashing errors.
var (
	ErrEmptyPassword    = errors.New("password must not be empty")
	ErrPasswordMismatch = errors.New("password does not match hash")
)

// HashPassword generates a bcrypt hash of the given password.
// The plaintext is never persisted anywhere.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(h), err
}

// ComparePasswordAndHash validates the given cleartext password against the
// stored hash.
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return err
	}
	return nil
}
