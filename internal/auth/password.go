package auth

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest password bcrypt hashes without truncation.
const MaxPasswordBytes = 72

// ErrPasswordTooLong is returned when a password would be truncated by bcrypt.
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

var (
	decoyOnce sync.Once
	decoyHash []byte
)

// HashPassword hashes a plaintext password. Costs outside bcrypt's range fall
// back to the default.
func HashPassword(password string, cost int) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// PasswordMatches reports whether plain matches hashed. An empty hash stands for
// an unknown account; it is still compared against a decoy so that lookups for
// missing emails cost the same as wrong passwords.
func PasswordMatches(hashed, plain string) bool {
	if hashed == "" {
		decoyOnce.Do(func() {
			decoyHash, _ = bcrypt.GenerateFromPassword([]byte("decoy-password"), bcrypt.DefaultCost)
		})
		_ = bcrypt.CompareHashAndPassword(decoyHash, []byte(plain))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
