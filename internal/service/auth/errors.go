package auth

import "errors"

// Common authentication errors.
var (
	// ErrMissingCredentials indicates the request carried no usable Basic credentials.
	ErrMissingCredentials = errors.New("authentication credentials are missing")

	// ErrInvalidCredentials covers both an unknown identifier and a wrong
	// secret; callers must not be able to tell them apart.
	ErrInvalidCredentials = errors.New("invalid authentication credentials")

	// ErrNoPlaintextPassword is returned when an account is prepared for
	// storage without a plaintext password to hash.
	ErrNoPlaintextPassword = errors.New("account has no plaintext password to hash")
)
