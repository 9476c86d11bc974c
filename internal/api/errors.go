package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/courses-api/internal/api/shared"
	"github.com/phrazzld/courses-api/internal/domain"
	"github.com/phrazzld/courses-api/internal/service"
	"github.com/phrazzld/courses-api/internal/store"
)

const (
	msgUnexpected    = "An unexpected error occurred"
	msgInvalidJSON   = "The request body must be a valid JSON object"
	msgInvalidEntity = "The submitted data was rejected"
)

// validationMessages maps a request field and the failed validator tag to
// the message shown to clients.
var validationMessages = map[string]string{
	"FirstName.required":    domain.MsgFirstNameRequired,
	"FirstName.notblank":    domain.MsgFirstNameEmpty,
	"LastName.required":     domain.MsgLastNameRequired,
	"LastName.notblank":     domain.MsgLastNameEmpty,
	"EmailAddress.required": domain.MsgEmailRequired,
	"EmailAddress.email":    domain.MsgEmailInvalid,
	"Password.required":     domain.MsgPasswordRequired,
	"Password.notblank":     domain.MsgPasswordEmpty,
	"Password.max":          domain.MsgPasswordTooLong,
	"Title.required":        domain.MsgTitleRequired,
	"Title.notblank":        domain.MsgTitleRequired,
	"Description.required":  domain.MsgDescriptionRequired,
	"Description.notblank":  domain.MsgDescriptionRequired,
}

// requestValidationMessages converts validator failures into client
// messages, in field order.
func requestValidationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{msgInvalidJSON}
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := validationMessages[fe.StructField()+"."+fe.Tag()]
		if !ok {
			msg = "Invalid value for " + fe.Field()
		}
		messages = append(messages, msg)
	}
	return messages
}

// MapErrorToStatusCode maps service and store errors to HTTP status codes.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		store.IsDuplicateError(err),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotOwned):
		return http.StatusForbidden
	case store.IsNotFoundError(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// HandleAPIError writes the response for err. Validation and uniqueness
// failures produce 400 {"errors":[...]}; ownership and existence failures
// produce empty 403 and 404 responses; anything else is a generic 500 whose
// details are only logged.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	if msgs, ok := domain.ValidationMessages(err); ok {
		shared.RespondWithValidationErrors(w, r, msgs)
		return
	}

	switch status := MapErrorToStatusCode(err); {
	case errors.Is(err, store.ErrEmailExists):
		shared.RespondWithValidationErrors(w, r, []string{domain.MsgEmailExists})
	case status == http.StatusBadRequest:
		shared.RespondWithValidationErrors(w, r, []string{msgInvalidEntity})
	case status == http.StatusForbidden, status == http.StatusNotFound:
		shared.RespondWithStatus(w, status)
	default:
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, msgUnexpected, err)
	}
}
