package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/courses-api/internal/domain"
	"github.com/phrazzld/courses-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockAccountStore is a mock of store.AccountStore for use with testify/mock
type TestifyMockAccountStore struct {
	mock.Mock
}

// Create is a mock implementation of store.AccountStore.Create
func (m *TestifyMockAccountStore) Create(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// GetByEmail is a mock implementation of store.AccountStore.GetByEmail
func (m *TestifyMockAccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if account, ok := args.Get(0).(*domain.Account); ok {
		return account, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTx returns the mock itself so expectations set on it apply inside transactions.
func (m *TestifyMockAccountStore) WithTx(tx *sql.Tx) store.AccountStore {
	return m
}
