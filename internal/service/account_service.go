package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/courses-api/internal/domain"
	"github.com/phrazzld/courses-api/internal/platform/logger"
	"github.com/phrazzld/courses-api/internal/service/auth"
	"github.com/phrazzld/courses-api/internal/store"
)

// NewAccountInput carries the fields a client supplies to register.
type NewAccountInput struct {
	FirstName    string
	LastName     string
	EmailAddress string
	Password     string
}

// AccountService provides account registration.
type AccountService interface {
	// CreateAccount validates the input, hashes the password and stores the
	// account. Returns a *domain.ValidationError for bad input and
	// store.ErrEmailExists if the email address is taken.
	CreateAccount(ctx context.Context, input NewAccountInput) (*domain.Account, error)
}

type accountServiceImpl struct {
	accounts store.AccountStore
	hasher   auth.PasswordHasher
	db       *sql.DB
	logger   *slog.Logger
}

// NewAccountService creates an AccountService.
func NewAccountService(
	accounts store.AccountStore,
	hasher auth.PasswordHasher,
	db *sql.DB,
	logger *slog.Logger,
) AccountService {
	if accounts == nil || hasher == nil || db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependencies
		panic("account store, hasher and db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &accountServiceImpl{
		accounts: accounts,
		hasher:   hasher,
		db:       db,
		logger:   logger.With("component", "account_service"),
	}
}

// CreateAccount implements AccountService.CreateAccount.
func (s *accountServiceImpl) CreateAccount(
	ctx context.Context,
	input NewAccountInput,
) (*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	account, err := domain.NewAccount(input.FirstName, input.LastName, input.EmailAddress, input.Password)
	if err != nil {
		log.Debug("account input rejected", "error", err)
		return nil, err
	}

	if err := auth.PrepareAccount(s.hasher, account); err != nil {
		log.Error("failed to hash password", "error", err)
		return nil, NewServiceError("create account", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.accounts.WithTx(tx).Create(ctx, account)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("attempted to create account with existing email")
			return nil, err
		}
		log.Error("failed to save account", "error", err)
		return nil, NewServiceError("create account", err)
	}

	log.Info("account created", "account_id", account.ID)
	return account, nil
}
