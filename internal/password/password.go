// Package password wraps bcrypt hashing for stored credentials.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hash returns a salted bcrypt hash of plain. The per-call salt is embedded
// in the hash, so Verify needs no separate salt storage.
func Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Verify reports whether plain matches hash. A malformed hash verifies as
// false rather than erroring.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
