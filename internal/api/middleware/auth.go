package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/courses-api/internal/api/shared"
	"github.com/phrazzld/courses-api/internal/domain"
	"github.com/phrazzld/courses-api/internal/platform/logger"
	"github.com/phrazzld/courses-api/internal/service/auth"
	"github.com/phrazzld/courses-api/internal/store"
)

// dummySecret is hashed once at construction. Unknown accounts are compared
// against it so they cost the same as a wrong password.
const dummySecret = "courses-api-timing-equaliser"

// BasicAuthMiddleware authenticates requests with HTTP Basic credentials
// checked against stored accounts.
type BasicAuthMiddleware struct {
	accounts  store.AccountStore
	verifier  auth.PasswordVerifier
	realm     string
	dummyHash string
	logger    *slog.Logger
}

// NewBasicAuthMiddleware creates a BasicAuthMiddleware. hasher is only used
// to produce the dummy hash and should use the same cost as stored hashes.
func NewBasicAuthMiddleware(
	accounts store.AccountStore,
	verifier auth.PasswordVerifier,
	hasher auth.PasswordHasher,
	realm string,
	logger *slog.Logger,
) (*BasicAuthMiddleware, error) {
	if accounts == nil || verifier == nil || hasher == nil {
		return nil, errors.New("account store, verifier and hasher are required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	dummyHash, err := hasher.Hash(dummySecret)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}

	return &BasicAuthMiddleware{
		accounts:  accounts,
		verifier:  verifier,
		realm:     realm,
		dummyHash: dummyHash,
		logger:    logger.With("component", "basic_auth"),
	}, nil
}

// Authenticate rejects the request with an empty 401 unless it carries
// valid credentials. On success the account is stored in the request context.
func (m *BasicAuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account, err := m.authenticate(r)
		if err != nil {
			log := logger.FromContextOrDefault(r.Context(), m.logger)
			if errors.Is(err, auth.ErrMissingCredentials) || errors.Is(err, auth.ErrInvalidCredentials) {
				log.Warn("authentication denied",
					"reason", err.Error(),
					"path", r.URL.Path,
					"method", r.Method)
				m.challenge(w)
				return
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				"An unexpected error occurred", err)
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithAccount(r.Context(), account)))
	})
}

func (m *BasicAuthMiddleware) authenticate(r *http.Request) (*domain.Account, error) {
	email, password, ok := r.BasicAuth()
	if !ok || email == "" {
		return nil, auth.ErrMissingCredentials
	}

	account, err := m.accounts.GetByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			_ = m.verifier.Compare(m.dummyHash, password)
			return nil, fmt.Errorf("%w: unknown account", auth.ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	if !auth.Verify(m.verifier, password, account.PasswordHash) {
		return nil, fmt.Errorf("%w: password mismatch", auth.ErrInvalidCredentials)
	}

	return account, nil
}

func (m *BasicAuthMiddleware) challenge(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", fmt.Sprintf("Basic realm=%q, charset=\"UTF-8\"", m.realm))
	w.WriteHeader(http.StatusUnauthorized)
}

// AccountFromContext returns the account set by Authenticate.
func AccountFromContext(r *http.Request) (*domain.Account, bool) {
	return shared.AccountFromContext(r.Context())
}
