package domain

import (
	"errors"
	"fmt"
)

// Every error here is an expected, user-recoverable condition; nothing in the
// storefront is fatal to the process. Handlers map these to HTTP statuses.
var (
	// ErrCatalogUnavailable means the upstream catalog could not be reached
	// or answered with a bad status. Previously cached products stay valid.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrNotFound covers product and user lookup misses.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a registration collided with an existing email.
	ErrConflict = errors.New("email already registered")

	// ErrInvalidCredentials means the password did not match the stored hash.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmptyCart blocks checkout when there is nothing to buy.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrOrderPlaced rejects transitions on an already-placed order.
	ErrOrderPlaced = errors.New("order already placed")
)

// ValidationError reports missing or malformed required input. It never
// mutates any store; the caller fixes the input and retries.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
