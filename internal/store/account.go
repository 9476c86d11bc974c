package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/courses-api/internal/domain"
)

// AccountStore defines the interface for account persistence.
type AccountStore interface {
	// Create saves a new account. The account must already carry its
	// password hash; the plaintext password is never written.
	// Returns ErrEmailExists if the email address is already taken.
	Create(ctx context.Context, account *domain.Account) error

	// GetByEmail retrieves an account by its exact (case-sensitive) email.
	// Returns ErrAccountNotFound if no account matches.
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)

	// WithTx returns an AccountStore bound to the given transaction.
	WithTx(tx *sql.Tx) AccountStore
}
