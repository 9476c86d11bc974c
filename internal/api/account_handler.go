package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/courses-api/internal/api/middleware"
	"github.com/phrazzld/courses-api/internal/api/shared"
	"github.com/phrazzld/courses-api/internal/domain"
	"github.com/phrazzld/courses-api/internal/service"
)

// AccountHandler handles the /users endpoints.
type AccountHandler struct {
	accounts service.AccountService
	logger   *slog.Logger
}

// NewAccountHandler creates an AccountHandler.
func NewAccountHandler(accounts service.AccountService, logger *slog.Logger) *AccountHandler {
	if accounts == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("account service cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountHandler{
		accounts: accounts,
		logger:   logger.With("component", "account_handler"),
	}
}

// GetCurrent handles GET /api/users and returns the authenticated account.
func (h *AccountHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.AccountFromContext(r)
	if !ok {
		shared.RespondWithStatus(w, http.StatusUnauthorized)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, currentAccountToResponse(account))
}

// Create handles POST /api/users.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, domain.NewValidationError(msgInvalidJSON))
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, domain.NewValidationError(requestValidationMessages(err)...))
		return
	}

	_, err := h.accounts.CreateAccount(r.Context(), service.NewAccountInput{
		FirstName:    *req.FirstName,
		LastName:     *req.LastName,
		EmailAddress: *req.EmailAddress,
		Password:     *req.Password,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondCreated(w, "/")
}
