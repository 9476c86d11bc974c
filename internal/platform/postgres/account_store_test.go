package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/courses-api/internal/domain"
	"github.com/phrazzld/courses-api/internal/store"
)

var accountColumns = []string{
	"id", "first_name", "last_name", "email_address", "password_hash", "created_at", "updated_at",
}

func hashedAccount() *domain.Account {
	now := time.Now().UTC()
	return &domain.Account{
		ID:           uuid.New(),
		FirstName:    "Jane",
		LastName:     "Doe",
		EmailAddress: "jane@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuuJ3Qw6N8pWkvbnmFa3Fv7yUdXk4yJ6gW",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestNewPostgresAccountStore(t *testing.T) {
	t.Run("nil db panics", func(t *testing.T) {
		assert.Panics(t, func() { NewPostgresAccountStore(nil, nil) })
	})

	t.Run("nil logger uses default", func(t *testing.T) {
		s := NewPostgresAccountStore(&sql.DB{}, nil)
		assert.NotNil(t, s.logger)
	})
}

func TestPostgresAccountStore_Create(t *testing.T) {
	insert := regexp.QuoteMeta("INSERT INTO accounts")

	tests := []struct {
		name    string
		mutate  func(a *domain.Account)
		setup   func(mock sqlmock.Sqlmock, a *domain.Account)
		wantErr error
	}{
		{
			name: "success",
			setup: func(mock sqlmock.Sqlmock, a *domain.Account) {
				mock.ExpectExec(insert).
					WithArgs(a.ID, "Jane", "Doe", "jane@example.com", a.PasswordHash, sqlmock.AnyArg(), sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "duplicate email",
			setup: func(mock sqlmock.Sqlmock, a *domain.Account) {
				mock.ExpectExec(insert).
					WillReturnError(newPgError(uniqueViolationCode, emailUniqueConstraint))
			},
			wantErr: store.ErrEmailExists,
		},
		{
			name:    "plaintext password rejected",
			mutate:  func(a *domain.Account) { a.Password = "secret" },
			setup:   func(mock sqlmock.Sqlmock, a *domain.Account) {},
			wantErr: store.ErrInvalidEntity,
		},
		{
			name:    "missing hash rejected",
			mutate:  func(a *domain.Account) { a.PasswordHash = "" },
			setup:   func(mock sqlmock.Sqlmock, a *domain.Account) {},
			wantErr: store.ErrInvalidEntity,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer func() { _ = db.Close() }()

			account := hashedAccount()
			if tc.mutate != nil {
				tc.mutate(account)
			}
			tc.setup(mock, account)

			err = NewPostgresAccountStore(db, nil).Create(context.Background(), account)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresAccountStore_GetByEmail(t *testing.T) {
	query := regexp.QuoteMeta("FROM accounts")

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		want := hashedAccount()
		mock.ExpectQuery(query).
			WithArgs("jane@example.com").
			WillReturnRows(sqlmock.NewRows(accountColumns).AddRow(
				want.ID.String(), want.FirstName, want.LastName, want.EmailAddress,
				want.PasswordHash, want.CreatedAt, want.UpdatedAt,
			))

		got, err := NewPostgresAccountStore(db, nil).GetByEmail(context.Background(), "jane@example.com")
		require.NoError(t, err)
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.PasswordHash, got.PasswordHash)
		assert.Empty(t, got.Password)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectQuery(query).
			WithArgs("Jane@example.com").
			WillReturnError(sql.ErrNoRows)

		_, err = NewPostgresAccountStore(db, nil).GetByEmail(context.Background(), "Jane@example.com")
		assert.ErrorIs(t, err, store.ErrAccountNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresAccountStore_WithTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)

	base := NewPostgresAccountStore(db, nil)
	txStore, ok := base.WithTx(tx).(*PostgresAccountStore)
	require.True(t, ok)
	assert.Equal(t, tx, txStore.db)
	assert.Equal(t, db, base.db)
}
