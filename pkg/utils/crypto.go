package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashSecret returns the bcrypt hash of a short-lived secret (confirmation
// codes) for storage at rest.
func HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckSecretHash reports whether secret matches the stored bcrypt hash
func CheckSecretHash(secret, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
