package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/phrazzld/courses-api/internal/domain"
)

// DefaultBcryptCost is the work factor used for new password hashes.
const DefaultBcryptCost = 10

// PasswordVerifier defines the interface for comparing passwords.
type PasswordVerifier interface {
	// Compare compares a hashed password with its possible plaintext equivalent.
	// Returns nil on success, or an error on failure (e.g., mismatch).
	Compare(hashedPassword, password string) error
}

// PasswordHasher turns a plaintext secret into a salted one-way hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// BcryptHasher implements PasswordHasher and PasswordVerifier using bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher. A cost outside bcrypt's accepted
// range falls back to DefaultBcryptCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &BcryptHasher{cost: cost}
}

// NewBcryptVerifier creates a verifier; comparison does not depend on cost.
func NewBcryptVerifier() *BcryptHasher {
	return NewBcryptHasher(DefaultBcryptCost)
}

// Cost returns the work factor used for new hashes.
func (h *BcryptHasher) Cost() int {
	return h.cost
}

// Hash implements PasswordHasher.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Compare implements PasswordVerifier.
func (h *BcryptHasher) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// Verify reports whether plaintext matches the stored hash.
func Verify(v PasswordVerifier, plaintext, storedHash string) bool {
	if storedHash == "" {
		return false
	}
	return v.Compare(storedHash, plaintext) == nil
}

// PrepareAccount replaces the account's plaintext password with its hash.
// After it returns successfully the account holds no plaintext and is safe
// to persist. It must be called exactly once, before the account is stored.
func PrepareAccount(h PasswordHasher, account *domain.Account) error {
	if account.Password == "" {
		return ErrNoPlaintextPassword
	}

	hash, err := h.Hash(account.Password)
	if err != nil {
		return err
	}

	account.PasswordHash = hash
	account.Password = ""
	return nil
}
