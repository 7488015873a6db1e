package auth

import (
	"github.com/frahmantamala/user-management/internal"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher wraps bcrypt with a fixed work factor. Each Hash call salts
// freshly, so hashing the same plaintext twice yields different digests.
type PasswordHasher struct {
	cost int
}

const defaultBcryptCost = 12

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost == 0 {
		cost = defaultBcryptCost
	}
	return &PasswordHasher{cost: cost}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", internal.NewValidationFieldError("password", "password cannot be empty", internal.ErrCodeInvalidPassword)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether the plaintext matches the digest. Empty inputs and
// malformed digests verify as false; this is the one place an internal
// failure is swallowed, the safe default being "not verified".
func (h *PasswordHasher) Verify(password, digest string) bool {
	if password == "" || digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
