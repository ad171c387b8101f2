// Package errors classifies failures so callers and the retry path can
// tell transient network trouble apart from errors that must not be
// retried.
package errors

import "fmt"

// Category determines how an error is handled by retry logic.
type Category int

const (
	// Recoverable failures may succeed on retry: 5xx responses,
	// timeouts, transport-level errors.
	Recoverable Category = iota

	// Irrecoverable failures must fail fast: 4xx responses other than
	// 408/429, malformed requests.
	Irrecoverable
)

func (c Category) String() string {
	switch c {
	case Recoverable:
		return "recoverable"
	case Irrecoverable:
		return "irrecoverable"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// ClassifiedError carries a Category alongside the underlying failure.
// StatusCode is zero for non-HTTP errors.
type ClassifiedError struct {
	Category   Category
	StatusCode int
	Body       string
	Underlying error
}

func (e *ClassifiedError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("[%s] HTTP %d: %v", e.Category, e.StatusCode, e.Underlying)
	}
	return fmt.Sprintf("[%s] %v", e.Category, e.Underlying)
}

func (e *ClassifiedError) Unwrap() error { return e.Underlying }

// IsIrrecoverable reports whether err must not be retried.
func IsIrrecoverable(err error) bool {
	if ce, ok := err.(*ClassifiedError); ok {
		return ce.Category == Irrecoverable
	}
	return false
}
