package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/courses-api/internal/domain"
	"github.com/phrazzld/courses-api/internal/platform/logger"
	"github.com/phrazzld/courses-api/internal/store"
)

// PostgresAccountStore implements store.AccountStore on PostgreSQL.
type PostgresAccountStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAccountStore creates an account store on db (a pool or a
// transaction). If logger is nil, the default logger is used.
func NewPostgresAccountStore(db store.DBTX, logger *slog.Logger) *PostgresAccountStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAccountStore{
		db:     db,
		logger: logger.With(slog.String("component", "account_store")),
	}
}

// Ensure PostgresAccountStore implements store.AccountStore interface
var _ store.AccountStore = (*PostgresAccountStore)(nil)

// Create implements store.AccountStore.Create.
func (s *PostgresAccountStore) Create(ctx context.Context, account *domain.Account) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if account.PasswordHash == "" || account.Password != "" {
		return fmt.Errorf("%w: account password must be hashed before storage", store.ErrInvalidEntity)
	}

	const query = `
		INSERT INTO accounts (id, first_name, last_name, email_address, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, query,
		account.ID,
		account.FirstName,
		account.LastName,
		account.EmailAddress,
		account.PasswordHash,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		err = MapError(err)
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("account email already exists", slog.String("account_id", account.ID.String()))
			return err
		}
		return store.NewStoreError("account", "create", err)
	}

	log.Debug("account created", slog.String("account_id", account.ID.String()))
	return nil
}

// GetByEmail implements store.AccountStore.GetByEmail.
func (s *PostgresAccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	const query = `
		SELECT id, first_name, last_name, email_address, password_hash, created_at, updated_at
		FROM accounts
		WHERE email_address = $1`

	var account domain.Account
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&account.ID,
		&account.FirstName,
		&account.LastName,
		&account.EmailAddress,
		&account.PasswordHash,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrAccountNotFound
		}
		return nil, store.NewStoreError("account", "get_by_email", MapError(err))
	}

	return &account, nil
}

// WithTx implements store.AccountStore.WithTx.
func (s *PostgresAccountStore) WithTx(tx *sql.Tx) store.AccountStore {
	return &PostgresAccountStore{
		db:     tx,
		logger: s.logger,
	}
}
