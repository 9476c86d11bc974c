package domain

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// MaxPasswordLength is the largest secret bcrypt will accept, in bytes.
const MaxPasswordLength = 72

// Account validation messages. They are returned to API clients as-is.
const (
	MsgFirstNameRequired = "Your first name is required!"
	MsgFirstNameEmpty    = "Please provide your first name!"
	MsgLastNameRequired  = "Your last name is required!"
	MsgLastNameEmpty     = "Please provide your last name!"
	MsgEmailRequired     = "Your email address is required!"
	MsgEmailInvalid      = "Please provide a valid email address"
	MsgEmailExists       = "The email you entered already exists!"
	MsgPasswordRequired  = "Your password is required!"
	MsgPasswordEmpty     = "Please provide a password!"
	MsgPasswordTooLong   = "Your password must be at most 72 characters long!"
)

var validate = validator.New()

// Account is a registered user of the API. The email address is the unique
// key used for authentication and for course ownership checks.
type Account struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	EmailAddress string    `json:"emailAddress"`
	Password     string    `json:"-"` // Plaintext, only set between NewAccount and hashing
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewAccount creates an unsaved Account with a fresh ID and timestamps.
// The plaintext password is kept on the account until it is prepared for
// storage; it must never be persisted as-is.
func NewAccount(firstName, lastName, emailAddress, password string) (*Account, error) {
	now := time.Now().UTC()
	account := &Account{
		ID:           uuid.New(),
		FirstName:    firstName,
		LastName:     lastName,
		EmailAddress: emailAddress,
		Password:     password,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	return account, nil
}

// Validate checks every field and returns a *ValidationError listing all
// violations, or nil.
func (a *Account) Validate() error {
	verr := &ValidationError{}

	if isBlank(a.FirstName) {
		verr.Add(MsgFirstNameEmpty)
	}
	if isBlank(a.LastName) {
		verr.Add(MsgLastNameEmpty)
	}
	if validate.Var(a.EmailAddress, "required,email") != nil {
		verr.Add(MsgEmailInvalid)
	}

	switch {
	case !isBlank(a.Password):
		if len(a.Password) > MaxPasswordLength {
			verr.Add(MsgPasswordTooLong)
		}
	case a.Password != "", a.PasswordHash == "":
		// Stored accounts carry only the hash.
		verr.Add(MsgPasswordEmpty)
	}

	return verr.ErrOrNil()
}

// isBlank reports whether s is empty or holds only whitespace.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Owner returns the public projection of the account.
func (a *Account) Owner() *Owner {
	return &Owner{
		ID:           a.ID,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		EmailAddress: a.EmailAddress,
	}
}

// Owner is the public view of an Account attached to a course. It has no
// credential fields, so nothing that embeds it can leak a password hash.
type Owner struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	EmailAddress string    `json:"emailAddress"`
}
