// Package cryptox implements one-way hashing of user and home secrets.
package cryptox

import (
	"golang.org/x/crypto/bcrypt"
)

const (
	// HashCost is the bcrypt work factor used for every stored secret.
	HashCost = 10

	// MaxSecretBytes is how much of a secret bcrypt takes into account.
	// Longer secrets are cut to this length before hashing and comparing.
	MaxSecretBytes = 72
)

// generateFromPassword is a seam for tests that need hashing to fail.
var generateFromPassword = bcrypt.GenerateFromPassword

func clamp(secret string) []byte {
	b := []byte(secret)
	if len(b) > MaxSecretBytes {
		b = b[:MaxSecretBytes]
	}
	return b
}

// HashPassword returns a bcrypt hash of secret. Each call uses a fresh
// random salt, so hashing the same secret twice yields different strings.
func HashPassword(secret string) (string, error) {
	hash, err := generateFromPassword(clamp(secret), HashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ComparePassword reports whether secret matches the stored hash.
// A malformed hash is treated as a mismatch.
func ComparePassword(hash, secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), clamp(secret)) == nil
}
