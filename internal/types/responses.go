package types

import "errors"

// ListListingsResponse wraps the listings query result.
type ListListingsResponse struct {
	Listings []Listing `json:"listings"`
}

// ErrNotFound is returned when the backend has no record for the
// requested resource.
var ErrNotFound = errors.New("not found")

// ErrNotAuthenticated is returned when a mutation is attempted with no
// active principal. This is a usage error, not a transient condition.
var ErrNotAuthenticated = errors.New("not authenticated")
