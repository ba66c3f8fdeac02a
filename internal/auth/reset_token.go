package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"
)

// Reset token configuration.
const (
	ResetTokenBytes  = 32               // 32 bytes = 64 hex chars
	ResetTokenLen    = 2 * ResetTokenBytes
	ResetTokenExpiry = 15 * time.Minute
)

// GenerateResetToken creates a high-entropy one-time token and its digest.
// The plaintext token is handed to the user once via the reset link; only
// the digest is ever persisted.
func GenerateResetToken() (token, digest string, err error) {
	tokenBytes := make([]byte, ResetTokenBytes)
	if _, err = rand.Read(tokenBytes); err != nil {
		return "", "", fmt.Errorf("generate reset token: %w", err)
	}

	token = hex.EncodeToString(tokenBytes)
	digest = HashResetToken(token)

	return token, digest, nil
}

// HashResetToken computes the SHA-256 digest of a plaintext token.
func HashResetToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// VerifyResetToken checks the plaintext token against a stored digest in
// constant time.
func VerifyResetToken(token, digest string) bool {
	if token == "" || digest == "" {
		return false
	}
	computed := HashResetToken(token)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}
