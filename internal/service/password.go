package service

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Plaintext is a password as the caller supplied it. It never reaches
// storage; the type boundary replaces any need to sniff whether a given
// string has already been hashed.
type Plaintext string

// Hash is a bcrypt password hash.
type Hash string

var errNotAHash = errors.New("stored password is not a bcrypt hash")

// HashPassword derives a one-way hash from a plaintext password.
func HashPassword(p Plaintext) (Hash, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(p), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return Hash(hashed), nil
}

// Compare checks a plaintext candidate against the hash.
func (h Hash) Compare(p Plaintext) error {
	return bcrypt.CompareHashAndPassword([]byte(h), []byte(p))
}

// ParseHash accepts a stored value as a Hash only if it has bcrypt's format.
// Write-time guard: a plaintext value can never enter the password column.
func ParseHash(stored string) (Hash, error) {
	if !strings.HasPrefix(stored, "$2a$") && !strings.HasPrefix(stored, "$2b$") && !strings.HasPrefix(stored, "$2y$") {
		return "", errNotAHash
	}
	return Hash(stored), nil
}
