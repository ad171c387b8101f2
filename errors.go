package client

import (
	internalerrors "github.com/rentalert/rentalert-go/internal/errors"
	"github.com/rentalert/rentalert-go/internal/types"
)

// Shared sentinels, re-exported so callers compare against a single
// symbol.
var (
	// ErrNotAuthenticated is returned when a mutation is attempted with
	// no active principal. Usage error, not a transient condition.
	ErrNotAuthenticated = types.ErrNotAuthenticated

	// ErrNotFound is returned when the backend has no record for the
	// requested resource.
	ErrNotFound = types.ErrNotFound
)

// AuthError is a failure reported by the external auth provider. Its
// UserMessage maps the provider code to a displayable message.
type AuthError = internalerrors.AuthError

// ValidationError reports a filter field outside its allowed domain.
type ValidationError = types.ValidationError

// IsRecoverable reports whether err is transient: the user re-triggering
// the action may succeed. Unclassified errors count as recoverable so
// the UI errs on the side of offering a retry.
func IsRecoverable(err error) bool {
	return !internalerrors.IsIrrecoverable(err)
}
