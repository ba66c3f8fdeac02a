package auth

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Iterations = 10000
	pbkdf2KeyLen     = 64
	passwordSaltLen  = 16
)

// ErrEmptyPassword is returned when attempting to hash an empty password.
var ErrEmptyPassword = errors.New("password cannot be empty")

// PasswordHasher derives and verifies salted password digests.
type PasswordHasher interface {
	// Set derives fresh hash material for the password. A new random
	// salt is generated on every call; re-setting a password never
	// reuses the previous salt.
	Set(password string) (key, salt []byte, err error)

	// Verify re-derives the key from the stored salt and compares it
	// against the stored key in constant time. Malformed stored
	// material is treated as a non-match, never an error.
	Verify(password string, key, salt []byte) bool
}

// PBKDF2Hasher implements PasswordHasher using PBKDF2-SHA512.
type PBKDF2Hasher struct{}

// NewPBKDF2Hasher creates a new PBKDF2Hasher.
func NewPBKDF2Hasher() *PBKDF2Hasher {
	return &PBKDF2Hasher{}
}

// Set derives a 64-byte key from the password with a fresh 128-bit salt.
func (h *PBKDF2Hasher) Set(password string) (key, salt []byte, err error) {
	if password == "" {
		return nil, nil, ErrEmptyPassword
	}

	salt = make([]byte, passwordSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("generate salt: %w", err)
	}

	key = pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, pbkdf2KeyLen, sha512.New)
	return key, salt, nil
}

// Verify checks the password against stored hash material.
func (h *PBKDF2Hasher) Verify(password string, key, salt []byte) bool {
	if password == "" || len(key) == 0 || len(salt) == 0 {
		return false
	}
	computed := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, len(key), sha512.New)
	return subtle.ConstantTimeCompare(computed, key) == 1
}
